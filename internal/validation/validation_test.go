package validation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"fjacquet/taxi-ledger/internal/ledgererror"
)

func TestText(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"simple name", "Mary Brown", false},
		{"apostrophe and hyphen", "O'Neill-Smith", false},
		{"address with digits", "12 Main St.", false},
		{"empty", "", true},
		{"comma", "Brown, Mary", true},
		{"hash", "Apt #4", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Text("name", tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				var vErr *ledgererror.ValidationError
				assert.ErrorAs(t, err, &vErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPhone(t *testing.T) {
	assert.NoError(t, Phone("7095551234"))
	assert.Error(t, Phone("709555123"))
	assert.Error(t, Phone("70955512345"))
	assert.Error(t, Phone("709-555-12"))
	assert.Error(t, Phone(""))
}

func TestDigits(t *testing.T) {
	assert.NoError(t, Digits("license number", "123456"))
	assert.Error(t, Digits("license number", "12A456"))
	assert.Error(t, Digits("license number", ""))
}

func TestLicenseExpiry(t *testing.T) {
	today := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	assert.NoError(t, LicenseExpiry(time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), today))
	// Expiring today is still valid.
	assert.NoError(t, LicenseExpiry(time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC), today))
	assert.Error(t, LicenseExpiry(time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC), today))
}

func TestRentalDuration(t *testing.T) {
	assert.NoError(t, RentalDuration(1))
	assert.NoError(t, RentalDuration(14))
	assert.Error(t, RentalDuration(0))
	assert.Error(t, RentalDuration(-3))
}

func TestPaymentAmount(t *testing.T) {
	assert.NoError(t, PaymentAmount(decimal.RequireFromString("50.00")))
	assert.NoError(t, PaymentAmount(decimal.RequireFromString("0.01")))
	assert.Error(t, PaymentAmount(decimal.Zero))
	assert.Error(t, PaymentAmount(decimal.RequireFromString("-10.00")))
}
