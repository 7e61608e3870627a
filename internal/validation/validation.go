// Package validation enforces the field-level input contract for ledger
// entities. The console layer re-prompts until these rules pass; the billing
// engine enforces them again so the contract holds regardless of input
// source.
package validation

import (
	"strconv"
	"time"

	"fjacquet/taxi-ledger/internal/dateutils"
	"fjacquet/taxi-ledger/internal/ledgererror"

	"github.com/shopspring/decimal"
)

// allowedTextChars is the character set permitted in free-text fields such
// as names and addresses.
const allowedTextChars = "1234567890 .-'ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// phoneLength is the required digit count of a phone number.
const phoneLength = 10

func isAllowedTextChar(r rune) bool {
	for _, allowed := range allowedTextChars {
		if r == allowed {
			return true
		}
	}
	return false
}

// IsDigits reports whether s is non-empty and consists only of ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Text validates a free-text field: non-empty, every character from the
// allowed set.
func Text(field, value string) error {
	if value == "" {
		return &ledgererror.ValidationError{Field: field, Value: value, Reason: "must not be empty"}
	}
	for _, r := range value {
		if !isAllowedTextChar(r) {
			return &ledgererror.ValidationError{Field: field, Value: value, Reason: "contains a disallowed character"}
		}
	}
	return nil
}

// Phone validates a phone number: exactly 10 digits.
func Phone(value string) error {
	if len(value) != phoneLength || !IsDigits(value) {
		return &ledgererror.ValidationError{Field: "phone number", Value: value, Reason: "must be exactly 10 digits"}
	}
	return nil
}

// Digits validates an all-digit field of any length, such as a license or
// policy number.
func Digits(field, value string) error {
	if !IsDigits(value) {
		return &ledgererror.ValidationError{Field: field, Value: value, Reason: "must be numeric"}
	}
	return nil
}

// LicenseExpiry validates that a license expiry date is not in the past.
// This is enforced at creation time only, never re-checked later.
func LicenseExpiry(expiry, today time.Time) error {
	if dateutils.CompareDates(expiry, today) < 0 {
		return &ledgererror.ValidationError{
			Field:  "license expiry",
			Value:  dateutils.ToISODate(expiry),
			Reason: "license is expired",
		}
	}
	return nil
}

// RentalDuration validates a rental duration: a positive integer.
func RentalDuration(duration int) error {
	if duration <= 0 {
		return &ledgererror.ValidationError{
			Field:  "rental duration",
			Value:  strconv.Itoa(duration),
			Reason: "must be a positive integer",
		}
	}
	return nil
}

// PaymentAmount validates a payment amount: strictly positive.
func PaymentAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return &ledgererror.ValidationError{
			Field:  "payment amount",
			Value:  amount.String(),
			Reason: "must be positive",
		}
	}
	return nil
}
