package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/taxi-ledger/internal/ledgererror"
	"fjacquet/taxi-ledger/internal/models"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func mustDate(t *testing.T, s string) models.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	require.NoError(t, err)
	return d
}

func testEmployee(t *testing.T, driverNumber int, name string) models.EmployeeRecord {
	t.Helper()
	return models.EmployeeRecord{
		DriverNumber:     driverNumber,
		Name:             name,
		Address:          "12 Main St.",
		Phone:            "7095551234",
		LicenseNumber:    "123456",
		LicenseExpiry:    mustDate(t, "2027-05-01"),
		InsuranceCompany: "Aviva",
		PolicyNumber:     "998877",
		OwnsCar:          true,
	}
}

func TestCounterStoreDefaultsOnEmptyDatabase(t *testing.T) {
	db := openTestDB(t)
	s := NewCounterStore(db)

	c, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 143, c.NextTransactionNumber)
	assert.Equal(t, 1922, c.NextDriverNumber)
	assert.Equal(t, "175.00", c.MonthlyStandFee.StringFixed(2))
	assert.Empty(t, c.LastBilledMonth)
}

func TestCounterStoreRoundTrip(t *testing.T) {
	db := openTestDB(t)
	s := NewCounterStore(db)

	c := models.DefaultCounters()
	c.NextTransactionNumber = 150
	c.LastBilledMonth = "2026-08"
	require.NoError(t, s.Save(c))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 150, loaded.NextTransactionNumber)
	assert.Equal(t, "2026-08", loaded.LastBilledMonth)
	assert.True(t, c.HSTRate.Equal(loaded.HSTRate))
}

func TestEmployeeStoreLifecycle(t *testing.T) {
	db := openTestDB(t)
	s := NewEmployeeStore(db)

	rec := testEmployee(t, 1922, "Mary Brown")
	rec.BalanceDue = decimal.RequireFromString("999.00")
	require.NoError(t, s.Append(rec))
	require.NoError(t, s.Append(testEmployee(t, 1923, "John White")))

	// Balance is forced to zero on append.
	found, err := s.Find(1922)
	require.NoError(t, err)
	assert.Equal(t, "0.00", found.BalanceDue.StringFixed(2))
	assert.Equal(t, "Mary Brown", found.Name)

	exists, err := s.Exists(1923)
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = s.Find(9999)
	var notFound *ledgererror.NotFoundError
	require.ErrorAs(t, err, &notFound)

	require.NoError(t, s.AdjustBalance(1922, decimal.RequireFromString("175.00")))
	require.NoError(t, s.AdjustAllBalances(decimal.RequireFromString("25.00")))

	records, err := s.All()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "200.00", records[0].BalanceDue.StringFixed(2))
	assert.Equal(t, "25.00", records[1].BalanceDue.StringFixed(2))
}

func TestRevenueLedgerLifecycle(t *testing.T) {
	db := openTestDB(t)
	l := NewRevenueLedger(db)

	assert.True(t, l.Available())

	last, err := l.LoadLast()
	require.NoError(t, err)
	assert.Nil(t, last)

	tx := models.RevenueTransaction{
		TransactionNumber: 143,
		Date:              mustDate(t, "2026-08-01"),
		Description:       "Monthly Stand Fee",
		DriverNumber:      1922,
		Amount:            decimal.RequireFromString("175.00"),
		HST:               decimal.RequireFromString("26.25"),
		Total:             decimal.RequireFromString("201.25"),
	}
	require.NoError(t, l.Reset(tx))

	tx.TransactionNumber = 144
	tx.Description = "Airport run"
	tx.Total = decimal.RequireFromString("69.00")
	require.NoError(t, l.Append(tx))

	last, err = l.LoadLast()
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, 144, last.TransactionNumber)

	total, err := l.Total()
	require.NoError(t, err)
	assert.Equal(t, "270.25", total.StringFixed(2))

	// Reset replaces all existing rows.
	require.NoError(t, l.Reset(tx))
	txs, err := l.All()
	require.NoError(t, err)
	assert.Len(t, txs, 1)
}

func TestRentalLedgerRoundTrip(t *testing.T) {
	db := openTestDB(t)
	l := NewRentalLedger(db)

	tx := models.RentalTransaction{
		RentalID:     7,
		DriverNumber: 1922,
		CarNumber:    12,
		Date:         mustDate(t, "2026-08-20"),
		Type:         models.Weekly,
		Duration:     2,
		Amount:       decimal.RequireFromString("600.00"),
		HST:          decimal.RequireFromString("90.00"),
		Total:        decimal.RequireFromString("690.00"),
	}
	require.NoError(t, l.Append(tx))

	txs, err := l.All()
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, 7, txs[0].RentalID)
	assert.Equal(t, models.Weekly, txs[0].Type)
	assert.Equal(t, 2, txs[0].Duration)
	assert.Equal(t, "2026-08-20", txs[0].Date.String())
	assert.Equal(t, "690.00", txs[0].Total.StringFixed(2))
}

func TestPaymentLedgerTotalsByDriver(t *testing.T) {
	db := openTestDB(t)
	l := NewPaymentLedger(db)

	pay := func(driver int, amount string) {
		require.NoError(t, l.Append(models.PaymentRecord{
			DriverNumber: driver,
			Amount:       decimal.RequireFromString(amount),
			Date:         mustDate(t, "2026-08-15"),
		}))
	}
	pay(1922, "50.00")
	pay(1923, "25.00")
	pay(1922, "100.00")

	totals, err := l.TotalsByDriver()
	require.NoError(t, err)
	assert.Equal(t, "150.00", totals[1922].StringFixed(2))
	assert.Equal(t, "25.00", totals[1923].StringFixed(2))
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "ledger.db")
	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, path, db.Path())
}
