package cli

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/idilsaglam/expense-tracker/internal/model"
)

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func browserExpenses() []model.Expense {
	return []model.Expense{
		{ID: 1, Date: model.NewDate(2026, 3, 1), Amount: decimal.NewFromInt(10), Description: "coffee", Category: model.Groceries},
		{ID: 2, Date: model.NewDate(2026, 3, 2), Amount: decimal.NewFromInt(20), Description: "rent", Category: model.Bills},
	}
}

func TestBrowserDeleteAndUndo(t *testing.T) {
	var m tea.Model = newBrowser(browserExpenses())

	m, _ = m.Update(keyPress("d"))
	b := m.(browser)
	if len(b.list.Items()) != 1 || len(b.deleted) != 1 || b.deleted[0] != 1 {
		t.Fatalf("after delete: items=%d deleted=%v", len(b.list.Items()), b.deleted)
	}
	if b.list.Title != "Expenses  1  total $20.00" {
		t.Fatalf("title not refreshed: %q", b.list.Title)
	}

	m, _ = m.Update(keyPress("u"))
	b = m.(browser)
	if len(b.list.Items()) != 2 || len(b.deleted) != 0 {
		t.Fatalf("after undo: items=%d deleted=%v", len(b.list.Items()), b.deleted)
	}
	if first := b.list.Items()[0].(expenseItem); first.e.ID != 1 {
		t.Fatalf("undo should restore position, got id %d first", first.e.ID)
	}

	// A second undo has nothing to restore.
	m, _ = m.Update(keyPress("u"))
	if b = m.(browser); len(b.list.Items()) != 2 {
		t.Fatalf("second undo changed items: %d", len(b.list.Items()))
	}
}

func TestBrowserQuit(t *testing.T) {
	var m tea.Model = newBrowser(browserExpenses())
	_, cmd := m.Update(keyPress("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestExpenseItem(t *testing.T) {
	it := expenseItem{e: browserExpenses()[1]}
	if it.Title() != "rent" {
		t.Fatalf("title: %q", it.Title())
	}
	if it.Description() != "#2 · 2026-03-02 · Bills · $20.00" {
		t.Fatalf("description: %q", it.Description())
	}
	if it.FilterValue() != "rent Bills" {
		t.Fatalf("filter value: %q", it.FilterValue())
	}
}
