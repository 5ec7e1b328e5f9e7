package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseMoney normalizes a locale-formatted monetary string and parses it as
// an exact decimal. Handles comma decimal separators, embedded whitespace
// (including non-breaking spaces used as thousand separators) and a trailing "AZN"
// currency marker.
func ParseMoney(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	s = strings.ToUpper(s)
	s = strings.TrimSuffix(s, "AZN")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("unparseable amount %q: %w", raw, err)
	}
	return d, nil
}

// RoundHalfUp rounds to two decimal places, halves away from zero. All
// monetary line amounts in this system are non-negative, so this matches
// the half-up rule the tax formulas require.
func RoundHalfUp(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FormatMoney renders an amount with exactly two fraction digits, the wire
// representation every report uses.
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}
