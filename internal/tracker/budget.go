package tracker

import (
	"time"

	"github.com/shopspring/decimal"

	applog "github.com/idilsaglam/expense-tracker/internal/log"
	"github.com/idilsaglam/expense-tracker/internal/model"
	"github.com/idilsaglam/expense-tracker/internal/store/jsonstore"
)

// SetBudget stores amount as the budget for month, replacing any existing
// one. created reports whether a new record was appended.
func (t *Tracker) SetBudget(month time.Month, amount decimal.Decimal) (b model.Budget, created bool, err error) {
	if err := model.ValidateMonth(int(month)); err != nil {
		return model.Budget{}, false, err
	}
	if err := model.ValidateAmount(amount); err != nil {
		return model.Budget{}, false, err
	}

	all, err := t.budgets.Load()
	if err != nil {
		return model.Budget{}, false, err
	}
	idx := budgetIndex(all, month)
	if idx < 0 {
		b = model.Budget{ID: jsonstore.NextID(all), Month: int(month), Amount: amount}
		all = append(all, b)
		created = true
	} else {
		all[idx].Amount = amount
		b = all[idx]
	}
	if err := t.budgets.Save(all); err != nil {
		return model.Budget{}, false, err
	}
	t.log.Debug("budget set", applog.FieldOperation, applog.OpUpsert, applog.FieldMonth, int(month),
		applog.FieldAmount, amount.String(), "created", created)
	return b, created, nil
}

func (t *Tracker) Budgets() ([]model.Budget, error) {
	return t.budgets.Load()
}

// BudgetFor returns the budget for month, or nil when none is set.
func (t *Tracker) BudgetFor(month time.Month) (*model.Budget, error) {
	all, err := t.budgets.Load()
	if err != nil {
		return nil, err
	}
	if idx := budgetIndex(all, month); idx >= 0 {
		b := all[idx]
		return &b, nil
	}
	return nil, nil
}

func budgetIndex(all []model.Budget, month time.Month) int {
	for i, b := range all {
		if b.Month == int(month) {
			return i
		}
	}
	return -1
}
