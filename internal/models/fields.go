package models

import (
	"fmt"
	"strings"
	"time"

	"fjacquet/taxi-ledger/internal/dateutils"
)

// Date is a calendar date persisted as YYYY-MM-DD. The CSV hooks make it
// usable directly in the persisted record structs.
type Date struct {
	time.Time
}

// NewDate truncates a time to its calendar date in UTC.
func NewDate(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := dateutils.ParseISODate(strings.TrimSpace(s))
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

// MarshalCSV implements the gocsv marshaller.
func (d Date) MarshalCSV() (string, error) {
	return dateutils.ToISODate(d.Time), nil
}

// UnmarshalCSV implements the gocsv unmarshaller.
func (d *Date) UnmarshalCSV(s string) error {
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) String() string {
	return dateutils.ToISODate(d.Time)
}

// YesNo is a boolean persisted as Y or N.
type YesNo bool

// MarshalCSV implements the gocsv marshaller.
func (y YesNo) MarshalCSV() (string, error) {
	if y {
		return "Y", nil
	}
	return "N", nil
}

// UnmarshalCSV implements the gocsv unmarshaller.
func (y *YesNo) UnmarshalCSV(s string) error {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "Y":
		*y = true
	case "N":
		*y = false
	default:
		return fmt.Errorf("invalid Y/N value: %q", s)
	}
	return nil
}

// RentalType distinguishes daily from weekly rentals. The persisted form is
// the single letter d or w.
type RentalType string

const (
	Daily  RentalType = "d"
	Weekly RentalType = "w"
)

// ParseRentalType accepts the persisted single-letter form, case-insensitive.
func ParseRentalType(s string) (RentalType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "d":
		return Daily, nil
	case "w":
		return Weekly, nil
	default:
		return "", fmt.Errorf("invalid rental type: %q (want d or w)", s)
	}
}

// MarshalCSV implements the gocsv marshaller.
func (t RentalType) MarshalCSV() (string, error) {
	return string(t), nil
}

// UnmarshalCSV implements the gocsv unmarshaller.
func (t *RentalType) UnmarshalCSV(s string) error {
	parsed, err := ParseRentalType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Label returns the human-readable name of the rental type.
func (t RentalType) Label() string {
	if t == Weekly {
		return "Weekly"
	}
	return "Daily"
}

// Unit returns the duration unit for prompts and confirmations.
func (t RentalType) Unit() string {
	if t == Weekly {
		return "week(s)"
	}
	return "day(s)"
}
