package tracker

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/idilsaglam/expense-tracker/internal/model"
)

// Summary is the result of totalling expenses, optionally for one month.
type Summary struct {
	Month  time.Month // zero means all months
	Total  decimal.Decimal
	Count  int
	Budget *model.Budget // set only for a month summary with a budget
}

// Exceeded reports whether the total is over the month's budget.
func (s Summary) Exceeded() bool {
	return s.Budget != nil && s.Total.GreaterThan(s.Budget.Amount)
}

// Overspend is how far the total is over budget, or zero.
func (s Summary) Overspend() decimal.Decimal {
	if !s.Exceeded() {
		return decimal.Zero
	}
	return s.Total.Sub(s.Budget.Amount)
}

// Summarize totals every expense when month is zero. Otherwise it totals
// the expenses dated in that month of any year and attaches its budget.
func (t *Tracker) Summarize(month time.Month) (Summary, error) {
	if month != 0 {
		if err := model.ValidateMonth(int(month)); err != nil {
			return Summary{}, err
		}
	}
	all, err := t.expenses.Load()
	if err != nil {
		return Summary{}, err
	}

	s := Summary{Month: month, Total: decimal.Zero}
	for _, e := range all {
		if month != 0 && e.Date.Month() != month {
			continue
		}
		s.Total = s.Total.Add(e.Amount)
		s.Count++
	}
	if month == 0 {
		return s, nil
	}

	b, err := t.BudgetFor(month)
	if err != nil {
		return Summary{}, err
	}
	s.Budget = b
	return s, nil
}
