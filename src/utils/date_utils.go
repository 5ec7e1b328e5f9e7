package utils

import (
	"fmt"
	"strings"
	"time"
)

const DefaultDateFormat = "02-01-2006"

// AcceptedDateFormats lists the layouts accepted for record dates, in the
// order they are tried. Qaimə exports use DD-MM-YYYY; API payloads often
// carry ISO dates.
var AcceptedDateFormats = []string{
	"02-01-2006",
	"02/01/2006",
	"2006-01-02",
}

// ParseFlexibleDate parses a date string against each accepted format in
// turn. Only the first 10 characters are considered, so timestamps like
// "2026-02-20T00:00:00" parse as their date part. Returns an error when no
// format matches; invalid calendar dates (e.g. 31-02-2026) are rejected,
// not normalized.
func ParseFlexibleDate(dateStr string) (time.Time, error) {
	s := strings.TrimSpace(dateStr)
	if len(s) > 10 {
		s = s[:10]
	}
	for _, layout := range AcceptedDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q (accepted formats: DD-MM-YYYY, DD/MM/YYYY, YYYY-MM-DD)", dateStr)
}

// FormatDate renders a date in the default DD-MM-YYYY format.
func FormatDate(t time.Time) string {
	return t.Format(DefaultDateFormat)
}
