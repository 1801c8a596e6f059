// Package tracker implements the expense and budget operations. Each call
// loads the relevant store, validates its input before touching anything,
// and rewrites the file only when every check has passed.
package tracker

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	applog "github.com/idilsaglam/expense-tracker/internal/log"
	"github.com/idilsaglam/expense-tracker/internal/model"
	"github.com/idilsaglam/expense-tracker/internal/store/jsonstore"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrNothingToUpdate = errors.New("nothing to update")
	ErrNoExpenses      = errors.New("no expenses recorded")
)

type Tracker struct {
	expenses   *jsonstore.Store[model.Expense]
	budgets    *jsonstore.Store[model.Budget]
	categories model.CategorySet
	now        func() time.Time
	log        *applog.Logger
}

type Option func(*Tracker)

// WithClock overrides time.Now for dating new expenses and naming exports.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

func WithCategories(set model.CategorySet) Option {
	return func(t *Tracker) { t.categories = set }
}

func WithLogger(l *applog.Logger) Option {
	return func(t *Tracker) { t.log = l }
}

func New(expensesPath, budgetsPath string, opts ...Option) *Tracker {
	t := &Tracker{
		categories: model.DefaultCategories(),
		now:        time.Now,
		log:        applog.Discard(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.expenses = jsonstore.New[model.Expense](expensesPath, t.log)
	t.budgets = jsonstore.New[model.Budget](budgetsPath, t.log)
	t.log = t.log.WithComponent(applog.ComponentTracker)
	return t
}

func (t *Tracker) Categories() model.CategorySet { return t.categories }

// NewExpense is the input to AddExpense.
type NewExpense struct {
	Description string
	Amount      decimal.Decimal
	Category    model.Category // empty means model.DefaultCategory
}

// AddExpense appends a record dated today and returns it.
func (t *Tracker) AddExpense(in NewExpense) (model.Expense, error) {
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		return model.Expense{}, model.ErrEmptyDescription
	}
	if err := model.ValidateAmount(in.Amount); err != nil {
		return model.Expense{}, err
	}
	cat := in.Category
	if cat == "" {
		cat = model.DefaultCategory
	}
	if _, err := t.categories.Parse(string(cat)); err != nil {
		return model.Expense{}, err
	}

	all, err := t.expenses.Load()
	if err != nil {
		return model.Expense{}, err
	}
	e := model.Expense{
		ID:          jsonstore.NextID(all),
		Date:        model.DateOf(t.now()),
		Amount:      in.Amount,
		Description: desc,
		Category:    cat,
	}
	all = append(all, e)
	if err := t.expenses.Save(all); err != nil {
		return model.Expense{}, err
	}
	t.log.Debug("expense added", applog.FieldOperation, applog.OpCreate, applog.FieldID, e.ID,
		applog.FieldAmount, e.Amount.String(), applog.FieldCategory, string(e.Category))
	return e, nil
}

// Expenses returns every stored expense in file order.
func (t *Tracker) Expenses() ([]model.Expense, error) {
	return t.expenses.Load()
}

// ListExpenses returns the expenses matching category (all when empty) and
// the size of the whole store, so callers can tell "empty" from "no match".
func (t *Tracker) ListExpenses(category model.Category) ([]model.Expense, int, error) {
	all, err := t.expenses.Load()
	if err != nil {
		return nil, 0, err
	}
	if category == "" {
		return all, len(all), nil
	}
	matches := make([]model.Expense, 0, len(all))
	for _, e := range all {
		if e.Category == category {
			matches = append(matches, e)
		}
	}
	return matches, len(all), nil
}

// ExpenseUpdate holds the fields update may change; nil means unchanged.
type ExpenseUpdate struct {
	Description *string
	Amount      *decimal.Decimal
}

func (t *Tracker) UpdateExpense(id int, upd ExpenseUpdate) (model.Expense, error) {
	if upd.Description == nil && upd.Amount == nil {
		return model.Expense{}, ErrNothingToUpdate
	}
	if upd.Description != nil && strings.TrimSpace(*upd.Description) == "" {
		return model.Expense{}, model.ErrEmptyDescription
	}
	if upd.Amount != nil {
		if err := model.ValidateAmount(*upd.Amount); err != nil {
			return model.Expense{}, err
		}
	}

	all, err := t.expenses.Load()
	if err != nil {
		return model.Expense{}, err
	}
	idx := indexOf(all, id)
	if idx < 0 {
		return model.Expense{}, fmt.Errorf("expense %d: %w", id, ErrNotFound)
	}
	if upd.Amount != nil {
		all[idx].Amount = *upd.Amount
	}
	if upd.Description != nil {
		all[idx].Description = strings.TrimSpace(*upd.Description)
	}
	if err := t.expenses.Save(all); err != nil {
		return model.Expense{}, err
	}
	t.log.Debug("expense updated", applog.FieldOperation, applog.OpUpdate, applog.FieldID, id)
	return all[idx], nil
}

func (t *Tracker) DeleteExpense(id int) error {
	return t.DeleteExpenses(id)
}

// DeleteExpenses removes every listed id in one save. If any id is missing
// nothing is removed.
func (t *Tracker) DeleteExpenses(ids ...int) error {
	if len(ids) == 0 {
		return nil
	}
	all, err := t.expenses.Load()
	if err != nil {
		return err
	}
	drop := make(map[int]bool, len(ids))
	for _, id := range ids {
		if indexOf(all, id) < 0 {
			return fmt.Errorf("expense %d: %w", id, ErrNotFound)
		}
		drop[id] = true
	}
	remaining := make([]model.Expense, 0, len(all))
	for _, e := range all {
		if !drop[e.ID] {
			remaining = append(remaining, e)
		}
	}
	if err := t.expenses.Save(remaining); err != nil {
		return err
	}
	t.log.Debug("expenses deleted", applog.FieldOperation, applog.OpDelete, applog.FieldCount, len(drop))
	return nil
}

func indexOf[T jsonstore.Record](records []T, id int) int {
	for i, r := range records {
		if r.RecordID() == id {
			return i
		}
	}
	return -1
}
