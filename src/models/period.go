package models

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidPeriod marks periods that have no calendar meaning (start after
// end, month outside 1..12). Such requests are rejected, never clamped.
var ErrInvalidPeriod = errors.New("invalid period")

// Period is a closed calendar range: both Start and End belong to the
// period. Time-of-day is irrelevant; only the date parts are compared.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewPeriod builds a custom period from an explicit [start, end] range.
func NewPeriod(start, end time.Time) (Period, error) {
	start = truncateToDay(start)
	end = truncateToDay(end)
	if start.After(end) {
		return Period{}, fmt.Errorf("%w: start %s after end %s",
			ErrInvalidPeriod, start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	return Period{Start: start, End: end}, nil
}

// MonthPeriod covers a calendar month, day 1 through the last day of that
// month.
func MonthPeriod(year int, month int) (Period, error) {
	if month < 1 || month > 12 {
		return Period{}, fmt.Errorf("%w: month %d", ErrInvalidPeriod, month)
	}
	if year <= 0 {
		return Period{}, fmt.Errorf("%w: year %d", ErrInvalidPeriod, year)
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return Period{Start: start, End: end}, nil
}

// YearPeriod covers Jan 1 through Dec 31 of the given year.
func YearPeriod(year int) (Period, error) {
	if year <= 0 {
		return Period{}, fmt.Errorf("%w: year %d", ErrInvalidPeriod, year)
	}
	return Period{
		Start: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
	}, nil
}

// Contains reports whether the date falls inside the closed range.
func (p Period) Contains(t time.Time) bool {
	d := truncateToDay(t)
	return !d.Before(p.Start) && !d.After(p.End)
}

func (p Period) String() string {
	return fmt.Sprintf("%s..%s", p.Start.Format("2006-01-02"), p.End.Format("2006-01-02"))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
