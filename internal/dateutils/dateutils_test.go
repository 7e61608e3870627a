package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseISODate(t *testing.T) {
	d, err := ParseISODate("2026-02-01")
	require.NoError(t, err)
	assert.Equal(t, 2026, d.Year())
	assert.Equal(t, time.February, d.Month())
	assert.Equal(t, 1, d.Day())
}

func TestParseISODateInvalid(t *testing.T) {
	for _, s := range []string{"", "01-02-2026", "2026/02/01", "not a date"} {
		_, err := ParseISODate(s)
		assert.Error(t, err, s)
	}
}

func TestToISODate(t *testing.T) {
	d := time.Date(2026, 8, 28, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "2026-08-28", ToISODate(d))
}

func TestMonthKey(t *testing.T) {
	d := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-08", MonthKey(d))
}

func TestIsFirstOfMonth(t *testing.T) {
	assert.True(t, IsFirstOfMonth(time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)))
	assert.False(t, IsFirstOfMonth(time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)))
}

func TestCompareDates(t *testing.T) {
	earlier := time.Date(2026, 8, 27, 23, 0, 0, 0, time.UTC)
	later := time.Date(2026, 8, 28, 1, 0, 0, 0, time.UTC)

	assert.Equal(t, -1, CompareDates(earlier, later))
	assert.Equal(t, 1, CompareDates(later, earlier))
	// Same calendar day, different times of day.
	assert.Equal(t, 0, CompareDates(later, time.Date(2026, 8, 28, 22, 0, 0, 0, time.UTC)))
}
