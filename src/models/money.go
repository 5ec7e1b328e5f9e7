package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an exact fixed-point monetary amount. It embeds
// decimal.Decimal for arithmetic and overrides JSON marshaling so that
// amounts always serialize as numbers with exactly two fraction digits
// (e.g. 90.00, never 90 or "90").
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money {
	return Money{d}
}

func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Money{}, fmt.Errorf("invalid monetary value %q: %w", s, err)
	}
	return Money{d}, nil
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.StringFixed(2)), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid monetary value %s: %w", data, err)
	}
	m.Decimal = d
	return nil
}

// String renders the canonical two-digit form used in reports.
func (m Money) String() string {
	return m.StringFixed(2)
}
