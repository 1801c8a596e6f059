package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// amountPlaces is the finest unit an amount may carry (cents).
	amountPlaces = 2
	// maxAmountDigits bounds the integer part of an amount.
	maxAmountDigits = 15
)

// ParseAmount accepts a positive decimal number with at most two decimal
// places and at most fifteen integer digits.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w %q: not a number", ErrInvalidAmount, s)
	}
	if err := ValidateAmount(d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

// ValidateAmount only inspects sign, coefficient and exponent, so absurd
// exponents are rejected without ever expanding the number.
func ValidateAmount(d decimal.Decimal) error {
	if d.Sign() <= 0 {
		return fmt.Errorf("%w: must be positive", ErrInvalidAmount)
	}
	exp := int(d.Exponent())
	if d.NumDigits()+exp > maxAmountDigits {
		return fmt.Errorf("%w: more than %d integer digits", ErrInvalidAmount, maxAmountDigits)
	}
	if exp < -amountPlaces {
		// Trailing zeros are fine ("1.500"); anything finer than a cent is not.
		if -exp-amountPlaces > d.NumDigits() || !d.Equal(d.Truncate(amountPlaces)) {
			return fmt.Errorf("%w: more than %d decimal places", ErrInvalidAmount, amountPlaces)
		}
	}
	return nil
}

// ParseMonth parses a 1-based month number.
func ParseMonth(s string) (time.Month, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w %q: not a number", ErrInvalidMonth, s)
	}
	if err := ValidateMonth(n); err != nil {
		return 0, err
	}
	return time.Month(n), nil
}

func ValidateMonth(m int) error {
	if m < 1 || m > 12 {
		return fmt.Errorf("%w %d: must be between 1 and 12", ErrInvalidMonth, m)
	}
	return nil
}

// ParseID converts a CLI id argument once; everything after compares ints.
func ParseID(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w %q: must be a positive integer", ErrInvalidID, s)
	}
	return n, nil
}

// amountNumber is the stored form of an amount. Decoding goes through
// decimal's own UnmarshalJSON, which takes numbers and quoted strings.
func amountNumber(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

// FormatAmount renders a decimal as dollars with two places.
func FormatAmount(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
