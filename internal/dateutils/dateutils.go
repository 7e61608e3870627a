// Package dateutils provides the date operations used throughout the
// application. All persisted dates are ISO YYYY-MM-DD.
package dateutils

import (
	"fmt"
	"time"
)

// DateLayoutISO is the layout of every persisted date.
const DateLayoutISO = "2006-01-02"

// MonthLayout is the layout of the billing-month key.
const MonthLayout = "2006-01"

// ParseISODate parses a YYYY-MM-DD date string.
func ParseISODate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayoutISO, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse date: %s", s)
	}
	return t, nil
}

// ToISODate formats a time as YYYY-MM-DD.
func ToISODate(t time.Time) string {
	return t.Format(DateLayoutISO)
}

// MonthKey returns the YYYY-MM key of the month containing t.
func MonthKey(t time.Time) string {
	return t.Format(MonthLayout)
}

// IsFirstOfMonth reports whether t falls on the first day of a month.
func IsFirstOfMonth(t time.Time) bool {
	return t.Day() == 1
}

// CompareDates compares the calendar dates of two times, ignoring the time
// of day. Returns -1 if t1 is before t2, 0 if equal, 1 if after.
func CompareDates(t1, t2 time.Time) int {
	d1 := time.Date(t1.Year(), t1.Month(), t1.Day(), 0, 0, 0, 0, time.UTC)
	d2 := time.Date(t2.Year(), t2.Month(), t2.Day(), 0, 0, 0, 0, time.UTC)
	switch {
	case d1.Before(d2):
		return -1
	case d1.After(d2):
		return 1
	default:
		return 0
	}
}
