package tracker

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/idilsaglam/expense-tracker/internal/model"
	"github.com/idilsaglam/expense-tracker/internal/store/jsonstore"
)

var fixedNow = time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)

func newTestTracker(t *testing.T) (*Tracker, string) {
	t.Helper()
	dir := t.TempDir()
	tr := New(
		filepath.Join(dir, "expenses.json"),
		filepath.Join(dir, "budget.json"),
		WithClock(func() time.Time { return fixedNow }),
	)
	return tr, dir
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func seed(t *testing.T, tr *Tracker, expenses ...model.Expense) {
	t.Helper()
	if err := tr.expenses.Save(expenses); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func TestAddAssignsSequentialIDs(t *testing.T) {
	tr, _ := newTestTracker(t)
	for i := 1; i <= 5; i++ {
		e, err := tr.AddExpense(NewExpense{Description: "item", Amount: dec("1.25")})
		if err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
		if e.ID != i {
			t.Fatalf("expected id %d, got %d", i, e.ID)
		}
	}
	all, err := tr.Expenses()
	if err != nil || len(all) != 5 {
		t.Fatalf("expected 5 expenses, got %d (err=%v)", len(all), err)
	}
	for i, e := range all {
		if e.ID != i+1 {
			t.Fatalf("position %d has id %d", i, e.ID)
		}
	}
}

func TestAddDefaultsAndDate(t *testing.T) {
	tr, _ := newTestTracker(t)
	e, err := tr.AddExpense(NewExpense{Description: "  coffee ", Amount: dec("3.5")})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if e.Category != model.Miscellaneous {
		t.Fatalf("expected default category, got %q", e.Category)
	}
	if e.Description != "coffee" {
		t.Fatalf("expected trimmed description, got %q", e.Description)
	}
	if e.Date.String() != "2026-03-14" {
		t.Fatalf("expected today's date, got %s", e.Date)
	}
}

func TestAddRejectsInvalidInputWithoutWriting(t *testing.T) {
	tr, dir := newTestTracker(t)
	cases := []struct {
		in   NewExpense
		want error
	}{
		{NewExpense{Description: "x", Amount: decimal.Zero}, model.ErrInvalidAmount},
		{NewExpense{Description: "x", Amount: dec("-2")}, model.ErrInvalidAmount},
		{NewExpense{Description: "", Amount: dec("2")}, model.ErrEmptyDescription},
		{NewExpense{Description: "x", Amount: dec("2"), Category: "Travel"}, model.ErrUnknownCategory},
	}
	for i, tc := range cases {
		if _, err := tr.AddExpense(tc.in); !errors.Is(err, tc.want) {
			t.Fatalf("case %d: expected %v, got %v", i, tc.want, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "expenses.json")); !os.IsNotExist(err) {
		t.Fatalf("expected no file to be written, stat err=%v", err)
	}
}

func TestAddAfterDeletingHighestIDDoesNotCollide(t *testing.T) {
	tr, _ := newTestTracker(t)
	seed(t, tr,
		model.Expense{ID: 1, Date: model.NewDate(2026, 1, 1), Amount: dec("1"), Description: "a", Category: model.Bills},
		model.Expense{ID: 3, Date: model.NewDate(2026, 1, 2), Amount: dec("1"), Description: "b", Category: model.Bills},
		model.Expense{ID: 2, Date: model.NewDate(2026, 1, 3), Amount: dec("1"), Description: "c", Category: model.Bills},
	)
	e, err := tr.AddExpense(NewExpense{Description: "d", Amount: dec("1")})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if e.ID != 4 {
		t.Fatalf("expected id 4 (max+1), got %d", e.ID)
	}
}

func TestAddCustomCategories(t *testing.T) {
	dir := t.TempDir()
	tr := New(filepath.Join(dir, "e.json"), filepath.Join(dir, "b.json"),
		WithCategories(model.NewCategorySet("Travel")))
	if _, err := tr.AddExpense(NewExpense{Description: "train", Amount: dec("40"), Category: "Travel"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := tr.AddExpense(NewExpense{Description: "rent", Amount: dec("40"), Category: model.Bills}); !errors.Is(err, model.ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestListExpensesFilter(t *testing.T) {
	tr, _ := newTestTracker(t)
	seed(t, tr,
		model.Expense{ID: 1, Date: model.NewDate(2026, 1, 1), Amount: dec("5"), Description: "a", Category: model.Bills},
		model.Expense{ID: 2, Date: model.NewDate(2026, 1, 2), Amount: dec("6"), Description: "b", Category: model.Groceries},
		model.Expense{ID: 3, Date: model.NewDate(2026, 1, 3), Amount: dec("7"), Description: "c", Category: model.Bills},
	)

	all, total, err := tr.ListExpenses("")
	if err != nil || len(all) != 3 || total != 3 {
		t.Fatalf("unexpected list: %d/%d (err=%v)", len(all), total, err)
	}
	bills, total, err := tr.ListExpenses(model.Bills)
	if err != nil || len(bills) != 2 || total != 3 || bills[0].ID != 1 || bills[1].ID != 3 {
		t.Fatalf("unexpected filter: %+v (total=%d err=%v)", bills, total, err)
	}
	none, total, err := tr.ListExpenses(model.Education)
	if err != nil || len(none) != 0 || total != 3 {
		t.Fatalf("expected no match, got %+v (err=%v)", none, err)
	}
}

func TestUpdateExpense(t *testing.T) {
	tr, _ := newTestTracker(t)
	seed(t, tr,
		model.Expense{ID: 1, Date: model.NewDate(2026, 1, 1), Amount: dec("5"), Description: "a", Category: model.Bills},
		model.Expense{ID: 2, Date: model.NewDate(2026, 1, 2), Amount: dec("6"), Description: "b", Category: model.Groceries},
	)

	amount := dec("60")
	got, err := tr.UpdateExpense(2, ExpenseUpdate{Amount: &amount})
	if err != nil || !got.Amount.Equal(amount) || got.Description != "b" {
		t.Fatalf("amount update: %+v (err=%v)", got, err)
	}
	desc := "weekly shop"
	got, err = tr.UpdateExpense(2, ExpenseUpdate{Description: &desc})
	if err != nil || got.Description != desc || !got.Amount.Equal(amount) {
		t.Fatalf("description update: %+v (err=%v)", got, err)
	}

	all, _ := tr.Expenses()
	if all[1].Description != desc || !all[1].Amount.Equal(amount) || all[1].Category != model.Groceries {
		t.Fatalf("update not persisted: %+v", all[1])
	}
	if all[0].Description != "a" {
		t.Fatalf("other record changed: %+v", all[0])
	}
}

func TestUpdateExpenseErrors(t *testing.T) {
	tr, _ := newTestTracker(t)
	seed(t, tr, model.Expense{ID: 1, Date: model.NewDate(2026, 1, 1), Amount: dec("5"), Description: "a", Category: model.Bills})

	amount := dec("9")
	if _, err := tr.UpdateExpense(7, ExpenseUpdate{Amount: &amount}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := tr.UpdateExpense(1, ExpenseUpdate{}); !errors.Is(err, ErrNothingToUpdate) {
		t.Fatalf("expected ErrNothingToUpdate, got %v", err)
	}
	bad := dec("0")
	if _, err := tr.UpdateExpense(1, ExpenseUpdate{Amount: &bad}); !errors.Is(err, model.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	all, _ := tr.Expenses()
	if !all[0].Amount.Equal(dec("5")) {
		t.Fatalf("failed update must not write: %+v", all[0])
	}
}

func TestDeleteExpense(t *testing.T) {
	tr, _ := newTestTracker(t)
	seed(t, tr,
		model.Expense{ID: 1, Date: model.NewDate(2026, 1, 1), Amount: dec("10"), Description: "a", Category: model.Bills},
		model.Expense{ID: 2, Date: model.NewDate(2026, 1, 2), Amount: dec("20"), Description: "b", Category: model.Bills},
	)
	if err := tr.DeleteExpense(1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	all, _ := tr.Expenses()
	if len(all) != 1 || all[0].ID != 2 {
		t.Fatalf("expected only id 2, got %+v", all)
	}
}

func TestDeleteMissingLeavesStoreUnchanged(t *testing.T) {
	tr, dir := newTestTracker(t)
	seed(t, tr, model.Expense{ID: 1, Date: model.NewDate(2026, 1, 1), Amount: dec("10"), Description: "a", Category: model.Bills})
	p := filepath.Join(dir, "expenses.json")
	before, _ := os.ReadFile(p)

	if err := tr.DeleteExpense(99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	after, _ := os.ReadFile(p)
	if string(before) != string(after) {
		t.Fatalf("store changed:\n%s\n->\n%s", before, after)
	}
}

func TestDeleteExpensesIsAllOrNothing(t *testing.T) {
	tr, dir := newTestTracker(t)
	seed(t, tr,
		model.Expense{ID: 1, Date: model.NewDate(2026, 1, 1), Amount: dec("10"), Description: "a", Category: model.Bills},
		model.Expense{ID: 2, Date: model.NewDate(2026, 1, 2), Amount: dec("20"), Description: "b", Category: model.Bills},
		model.Expense{ID: 3, Date: model.NewDate(2026, 1, 3), Amount: dec("30"), Description: "c", Category: model.Bills},
	)
	p := filepath.Join(dir, "expenses.json")
	before, _ := os.ReadFile(p)

	if err := tr.DeleteExpenses(1, 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	after, _ := os.ReadFile(p)
	if string(before) != string(after) {
		t.Fatalf("store changed after failed batch")
	}

	if err := tr.DeleteExpenses(1, 3); err != nil {
		t.Fatalf("delete: %v", err)
	}
	all, _ := tr.Expenses()
	if len(all) != 1 || all[0].ID != 2 {
		t.Fatalf("expected only id 2, got %+v", all)
	}
}

func TestOperationsRefuseCorruptStore(t *testing.T) {
	tr, dir := newTestTracker(t)
	p := filepath.Join(dir, "expenses.json")
	if err := os.WriteFile(p, []byte("{oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := tr.AddExpense(NewExpense{Description: "x", Amount: dec("1")})
	var perr *jsonstore.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	b, _ := os.ReadFile(p)
	if string(b) != "{oops" {
		t.Fatalf("corrupt file was overwritten: %s", b)
	}
}
