package cli

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	applog "github.com/idilsaglam/expense-tracker/internal/log"
	"github.com/idilsaglam/expense-tracker/internal/model"
	"github.com/idilsaglam/expense-tracker/internal/tracker"
	"github.com/idilsaglam/expense-tracker/internal/ui"
)

func (c *command) add(args []string) int {
	fs := c.flags()
	desc := fs.String("description", "", "expense description")
	amount := fs.String("amount", "", "expense amount")
	category := fs.String("category", string(model.DefaultCategory), "expense category")
	if !c.parse(fs, args, "description", "amount") {
		return ExitUsage
	}

	cat, err := c.opt.Tracker.Categories().Parse(*category)
	if err != nil {
		c.fail(fmt.Sprintf("The category %q is currently not available. Allowed categories include %s.",
			*category, c.opt.Tracker.Categories()))
		return ExitUsage
	}
	amt, err := model.ParseAmount(*amount)
	if err != nil {
		return c.report(err)
	}

	e, err := c.opt.Tracker.AddExpense(tracker.NewExpense{Description: *desc, Amount: amt, Category: cat})
	if err != nil {
		return c.report(err)
	}
	c.ok(fmt.Sprintf("Expense added successfully (ID: %d)", e.ID))
	return ExitOK
}

func (c *command) list(args []string) int {
	fs := c.flags()
	category := fs.String("category", "", "only show this category")
	if !c.parse(fs, args) {
		return ExitUsage
	}

	expenses, total, err := c.opt.Tracker.ListExpenses(model.Category(*category))
	if err != nil {
		return c.report(err)
	}
	if total == 0 {
		ui.Info(c.opt.Stdout, "No expense recorded yet.")
		return ExitOK
	}
	if len(expenses) == 0 {
		ui.Info(c.opt.Stdout, fmt.Sprintf("No expense made for the category %q.", *category))
		return ExitOK
	}

	sum := decimal.Zero
	rows := make([][]string, 0, len(expenses))
	for _, e := range expenses {
		sum = sum.Add(e.Amount)
		rows = append(rows, []string{
			strconv.Itoa(e.ID),
			e.Date.String(),
			e.Description,
			string(e.Category),
			model.FormatAmount(e.Amount),
		})
	}
	fmt.Fprintln(c.opt.Stdout, ui.Table([]string{"ID", "Date", "Description", "Category", "Amount"}, rows, 4))
	ui.Info(c.opt.Stdout, fmt.Sprintf("%d %s, total %s", len(expenses), plural(len(expenses), "expense", "expenses"), model.FormatAmount(sum)))
	return ExitOK
}

func (c *command) summary(args []string) int {
	fs := c.flags()
	monthArg := fs.String("month", "", "month number 1-12")
	if !c.parse(fs, args) {
		return ExitUsage
	}

	var month time.Month
	if *monthArg != "" {
		m, err := model.ParseMonth(*monthArg)
		if err != nil {
			return c.report(err)
		}
		month = m
	}

	s, err := c.opt.Tracker.Summarize(month)
	if err != nil {
		return c.report(err)
	}
	if month == 0 {
		fmt.Fprintf(c.opt.Stdout, "Total expenses: %s\n", model.FormatAmount(s.Total))
		return ExitOK
	}
	fmt.Fprintf(c.opt.Stdout, "Total expenses for %s: %s\n", month, model.FormatAmount(s.Total))

	if s.Budget != nil {
		ratio, _ := s.Total.Div(s.Budget.Amount).Float64()
		fmt.Fprintln(c.opt.Stdout, ui.Panel([]string{
			ui.Current().Title.Render(month.String() + " budget"),
			fmt.Sprintf("Spent %s of %s", model.FormatAmount(s.Total), model.FormatAmount(s.Budget.Amount)),
			ui.ProgressBar(ratio, 28),
		}))
		if s.Exceeded() {
			ui.Warn(c.opt.Stdout, fmt.Sprintf("Warning: You have exceeded your budget of %s for %s by %s.",
				model.FormatAmount(s.Budget.Amount), month, model.FormatAmount(s.Overspend())))
		}
	}
	return ExitOK
}

func (c *command) update(args []string) int {
	fs := c.flags()
	idArg := fs.String("id", "", "expense id")
	desc := fs.String("description", "", "new description")
	amount := fs.String("amount", "", "new amount")
	if !c.parse(fs, args, "id") {
		return ExitUsage
	}

	id, err := model.ParseID(*idArg)
	if err != nil {
		return c.report(err)
	}
	var upd tracker.ExpenseUpdate
	if *amount != "" {
		amt, err := model.ParseAmount(*amount)
		if err != nil {
			return c.report(err)
		}
		upd.Amount = &amt
	}
	if *desc != "" {
		upd.Description = desc
	}

	if _, err := c.opt.Tracker.UpdateExpense(id, upd); err != nil {
		if errors.Is(err, tracker.ErrNotFound) {
			c.fail(fmt.Sprintf("Expense with id:%d does not exist.", id))
			return ExitError
		}
		return c.report(err)
	}
	c.ok(fmt.Sprintf("Update of expense with id:%d successful", id))
	return ExitOK
}

func (c *command) delete(args []string) int {
	fs := c.flags()
	idArg := fs.String("id", "", "expense id")
	if !c.parse(fs, args, "id") {
		return ExitUsage
	}

	id, err := model.ParseID(*idArg)
	if err != nil {
		return c.report(err)
	}
	if err := c.opt.Tracker.DeleteExpense(id); err != nil {
		if errors.Is(err, tracker.ErrNotFound) {
			c.fail(fmt.Sprintf("Expense with id:%d does not exist.", id))
			return ExitError
		}
		return c.report(err)
	}
	c.ok(fmt.Sprintf("Deletion of expense with id:%d successful", id))
	return ExitOK
}

func (c *command) setBudget(args []string) int {
	fs := c.flags()
	monthArg := fs.String("month", "", "month number 1-12")
	amount := fs.String("amount", "", "budget amount")
	if !c.parse(fs, args, "month", "amount") {
		return ExitUsage
	}

	month, err := model.ParseMonth(*monthArg)
	if err != nil {
		return c.report(err)
	}
	amt, err := model.ParseAmount(*amount)
	if err != nil {
		return c.report(err)
	}
	b, _, err := c.opt.Tracker.SetBudget(month, amt)
	if err != nil {
		return c.report(err)
	}
	c.ok(fmt.Sprintf("Budget for %s set to %s", b.MonthName(), model.FormatAmount(b.Amount)))
	return ExitOK
}

func (c *command) viewBudget(args []string) int {
	if !c.parse(c.flags(), args) {
		return ExitUsage
	}
	budgets, err := c.opt.Tracker.Budgets()
	if err != nil {
		return c.report(err)
	}
	if len(budgets) == 0 {
		ui.Info(c.opt.Stdout, "No budget set yet.")
		return ExitOK
	}
	rows := make([][]string, 0, len(budgets))
	for _, b := range budgets {
		rows = append(rows, []string{strconv.Itoa(b.ID), b.MonthName(), model.FormatAmount(b.Amount)})
	}
	fmt.Fprintln(c.opt.Stdout, ui.Table([]string{"ID", "Month", "Amount"}, rows, 2))
	return ExitOK
}

func (c *command) exportCSV(args []string) int {
	if !c.parse(c.flags(), args) {
		return ExitUsage
	}
	path, n, err := c.opt.Tracker.ExportCSV(c.opt.ExportDir)
	if errors.Is(err, tracker.ErrNoExpenses) {
		ui.Info(c.opt.Stdout, "No expense recorded yet.")
		return ExitOK
	}
	if err != nil {
		return c.report(err)
	}
	c.ok(fmt.Sprintf("Expenses exported to %s (%d %s)", path, n, plural(n, "record", "records")))
	return ExitOK
}

func (c *command) browse(args []string) int {
	if !c.parse(c.flags(), args) {
		return ExitUsage
	}
	expenses, err := c.opt.Tracker.Expenses()
	if err != nil {
		return c.report(err)
	}
	if len(expenses) == 0 {
		ui.Info(c.opt.Stdout, "No expense recorded yet.")
		return ExitOK
	}
	deleted, err := c.opt.Browse(expenses)
	if err != nil {
		c.log.Error("browser failed", applog.FieldError, err)
		c.fail("browse: " + err.Error())
		return ExitError
	}
	if err := c.opt.Tracker.DeleteExpenses(deleted...); err != nil {
		if errors.Is(err, tracker.ErrNotFound) {
			c.fail(fmt.Sprintf("Nothing deleted: %v", err))
			return ExitError
		}
		return c.report(err)
	}
	if len(deleted) > 0 {
		c.ok(fmt.Sprintf("Deleted %d %s", len(deleted), plural(len(deleted), "expense", "expenses")))
	}
	return ExitOK
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
