package validation

import (
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

var strictHTMLPolicy = bluemonday.StrictPolicy()

const maxCounterpartyNameRunes = 50

// SanitizeCounterpartyName cleans a free-text counterparty name from a
// source row: strips any HTML, drops unprintable characters and truncates
// to the 50-rune limit the qaimə exports use.
func SanitizeCounterpartyName(name string) string {
	s := strictHTMLPolicy.Sanitize(name)
	s = StripUnprintable(s)
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) > maxCounterpartyNameRunes {
		s = string(runes[:maxCounterpartyNameRunes])
	}
	return s
}

// SanitizeForFormulaInjection prepends a single quote if the string starts
// with a formula character, so spreadsheet software treats it as text.
func SanitizeForFormulaInjection(s string) string {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) > 0 {
		firstChar := rune(trimmed[0])
		if firstChar == '=' || firstChar == '+' || firstChar == '-' || firstChar == '@' || firstChar == '\t' || firstChar == '\r' {
			return "'" + s
		}
	}
	return s
}

// StripUnprintable removes non-printable characters, allowing common
// whitespace like space, tab, newline, and carriage return.
func StripUnprintable(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || r == '\t' || r == '\n' || r == '\r' {
			return r
		}
		return -1
	}, s)
}
