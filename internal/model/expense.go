package model

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Expense is one stored spending record.
type Expense struct {
	ID          int             `json:"id"`
	Date        Date            `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    Category        `json:"category"`
}

// MarshalJSON writes the amount as a bare JSON number.
func (e Expense) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID          int         `json:"id"`
		Date        Date        `json:"date"`
		Amount      json.Number `json:"amount"`
		Description string      `json:"description"`
		Category    Category    `json:"category"`
	}{e.ID, e.Date, amountNumber(e.Amount), e.Description, e.Category})
}

// RecordID lets the store compute the next id.
func (e Expense) RecordID() int { return e.ID }

// Validate checks the stored shape of a record. Description is free text and
// category membership is a write-time rule, so neither is checked here.
func (e Expense) Validate() error {
	if e.ID < 1 {
		return fmt.Errorf("%w %d: must be positive", ErrInvalidID, e.ID)
	}
	if e.Date.IsZero() {
		return fmt.Errorf("%w: missing", ErrInvalidDate)
	}
	if err := ValidateAmount(e.Amount); err != nil {
		return err
	}
	if e.Category == "" {
		return fmt.Errorf("%w: missing", ErrUnknownCategory)
	}
	return nil
}
