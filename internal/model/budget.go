package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Budget is the spending limit for one calendar month.
type Budget struct {
	ID     int             `json:"id"`
	Month  int             `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

func (b Budget) RecordID() int { return b.ID }

func (b Budget) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID     int         `json:"id"`
		Month  int         `json:"month"`
		Amount json.Number `json:"amount"`
	}{b.ID, b.Month, amountNumber(b.Amount)})
}

// MonthName renders the month as e.g. "March".
func (b Budget) MonthName() string {
	return time.Month(b.Month).String()
}

func (b Budget) Validate() error {
	if b.ID < 1 {
		return fmt.Errorf("%w %d: must be positive", ErrInvalidID, b.ID)
	}
	if err := ValidateMonth(b.Month); err != nil {
		return err
	}
	return ValidateAmount(b.Amount)
}
