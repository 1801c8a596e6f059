package cli

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/idilsaglam/expense-tracker/internal/model"
	"github.com/idilsaglam/expense-tracker/internal/ui"
)

// expenseItem adapts model.Expense to bubbles/list.Item
type expenseItem struct {
	e model.Expense
}

func (i expenseItem) Title() string { return i.e.Description }
func (i expenseItem) Description() string {
	return fmt.Sprintf("#%d · %s · %s · %s", i.e.ID, i.e.Date, i.e.Category, model.FormatAmount(i.e.Amount))
}
func (i expenseItem) FilterValue() string { return i.e.Description + " " + string(i.e.Category) }

type browser struct {
	list    list.Model
	deleted []int

	// single-level undo of the last deletion
	undoIndex int
	undoItem  *expenseItem
}

func newBrowser(expenses []model.Expense) browser {
	items := make([]list.Item, 0, len(expenses))
	for _, e := range expenses {
		items = append(items, expenseItem{e: e})
	}
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("expense", "expenses")
	l.Styles.Title = ui.Current().Title
	l.FilterInput.Prompt = "/ "

	// d and u belong to delete/undo here, not paging.
	l.KeyMap.NextPage.SetKeys("right", "l", "pgdown", "f")
	l.KeyMap.PrevPage.SetKeys("left", "h", "pgup", "b")
	deleteBind := key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	undoBind := key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo"))
	l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{deleteBind, undoBind} }
	l.AdditionalFullHelpKeys = func() []key.Binding { return []key.Binding{deleteBind, undoBind} }

	b := browser{list: l}
	b.refreshTitle()
	return b
}

// runBrowser starts the Bubble Tea list and returns the ids removed in it.
func runBrowser(expenses []model.Expense) ([]int, error) {
	p := tea.NewProgram(newBrowser(expenses), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	b, ok := final.(browser)
	if !ok {
		return nil, nil
	}
	return b.deleted, nil
}

func (b browser) Init() tea.Cmd { return nil }

func (b browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.list.SetSize(msg.Width-4, msg.Height-2)
		return b, nil
	case tea.KeyMsg:
		// Typing into the filter goes straight to the list.
		if b.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "q":
			return b, tea.Quit
		case "esc":
			if b.list.FilterState() == list.Unfiltered {
				return b, tea.Quit
			}
		case "d":
			cmd := b.remove()
			return b, cmd
		case "u":
			cmd := b.undo()
			return b, cmd
		}
	}
	var cmd tea.Cmd
	b.list, cmd = b.list.Update(msg)
	return b, cmd
}

func (b browser) View() string {
	return ui.Panel([]string{b.list.View()})
}

// remove deletes the selected expense. The list index is looked up by id
// because the cursor indexes the filtered view.
func (b *browser) remove() tea.Cmd {
	sel, ok := b.list.SelectedItem().(expenseItem)
	if !ok {
		return nil
	}
	items := b.list.Items()
	idx := -1
	for i, it := range items {
		if ei, ok := it.(expenseItem); ok && ei.e.ID == sel.e.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	next := make([]list.Item, 0, len(items)-1)
	next = append(next, items[:idx]...)
	next = append(next, items[idx+1:]...)

	b.deleted = append(b.deleted, sel.e.ID)
	b.undoIndex, b.undoItem = idx, &sel
	cmd := b.list.SetItems(next)
	b.refreshTitle()
	return cmd
}

func (b *browser) undo() tea.Cmd {
	if b.undoItem == nil {
		return nil
	}
	items := b.list.Items()
	idx := b.undoIndex
	if idx > len(items) {
		idx = len(items)
	}
	next := make([]list.Item, 0, len(items)+1)
	next = append(next, items[:idx]...)
	next = append(next, *b.undoItem)
	next = append(next, items[idx:]...)

	id := b.undoItem.e.ID
	for i, d := range b.deleted {
		if d == id {
			b.deleted = append(b.deleted[:i], b.deleted[i+1:]...)
			break
		}
	}
	b.undoItem = nil
	cmd := b.list.SetItems(next)
	b.refreshTitle()
	return cmd
}

func (b *browser) refreshTitle() {
	total := decimal.Zero
	for _, it := range b.list.Items() {
		if ei, ok := it.(expenseItem); ok {
			total = total.Add(ei.e.Amount)
		}
	}
	b.list.Title = fmt.Sprintf("Expenses  %d  total %s", len(b.list.Items()), model.FormatAmount(total))
}
