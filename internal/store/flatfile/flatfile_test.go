package flatfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/taxi-ledger/internal/ledgererror"
	"fjacquet/taxi-ledger/internal/models"
)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readTestFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
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

func TestCounterStoreDefaultsOnMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Defaults.dat")
	s := NewCounterStore(path)

	c, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 143, c.NextTransactionNumber)
	assert.Equal(t, 1922, c.NextDriverNumber)
	assert.Equal(t, "175.00", c.MonthlyStandFee.StringFixed(2))
	assert.Equal(t, "60.00", c.DailyRentalFee.StringFixed(2))
	assert.Equal(t, "300.00", c.WeeklyRentalFee.StringFixed(2))
	assert.Equal(t, "0.15", c.HSTRate.String())

	// The defaults are persisted for the next run.
	assert.FileExists(t, path)
}

func TestCounterStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Defaults.dat")
	s := NewCounterStore(path)

	c := models.DefaultCounters()
	c.NextTransactionNumber = 150
	c.LastBilledMonth = "2026-08"
	require.NoError(t, s.Save(c))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 150, loaded.NextTransactionNumber)
	assert.Equal(t, "2026-08", loaded.LastBilledMonth)
	assert.True(t, c.MonthlyStandFee.Equal(loaded.MonthlyStandFee))
}

func TestCounterStoreLegacySixFieldLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Defaults.dat")
	writeTestFile(t, path, "143, 1922, 175.0, 60.0, 300.0, 0.15\n")

	c, err := NewCounterStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, 143, c.NextTransactionNumber)
	assert.Equal(t, 1922, c.NextDriverNumber)
	assert.Empty(t, c.LastBilledMonth)
}

func TestCounterStoreCorruptFileRestoresDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Defaults.dat")
	writeTestFile(t, path, "garbage, not, a, counter, record\n")

	c, err := NewCounterStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, 143, c.NextTransactionNumber)

	// The corrupt contents were replaced with the defaults.
	loaded, err := NewCounterStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, 1922, loaded.NextDriverNumber)
}

func TestEmployeeStoreAppendForcesZeroBalance(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Employees.dat")
	s := NewEmployeeStore(path)

	rec := testEmployee(t, 1922, "Mary Brown")
	rec.BalanceDue = decimal.RequireFromString("500.00")
	require.NoError(t, s.Append(rec))

	records, err := s.All()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "0.00", records[0].BalanceDue.StringFixed(2))
}

func TestEmployeeStoreFindAndExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Employees.dat")
	s := NewEmployeeStore(path)

	require.NoError(t, s.Append(testEmployee(t, 1922, "Mary Brown")))
	require.NoError(t, s.Append(testEmployee(t, 1923, "John White")))

	exists, err := s.Exists(1923)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = s.Exists(9999)
	require.NoError(t, err)
	assert.False(t, exists)

	rec, err := s.Find(1922)
	require.NoError(t, err)
	assert.Equal(t, "Mary Brown", rec.Name)

	_, err = s.Find(9999)
	var notFound *ledgererror.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, 9999, notFound.Key)
}

func TestEmployeeStoreAdjustBalanceIsolated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Employees.dat")
	s := NewEmployeeStore(path)

	require.NoError(t, s.Append(testEmployee(t, 1922, "Mary Brown")))
	require.NoError(t, s.Append(testEmployee(t, 1923, "John White")))

	require.NoError(t, s.AdjustBalance(1922, decimal.RequireFromString("175.00")))

	records, err := s.All()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "175.00", records[0].BalanceDue.StringFixed(2))
	assert.Equal(t, "0.00", records[1].BalanceDue.StringFixed(2))

	err = s.AdjustBalance(9999, decimal.RequireFromString("10.00"))
	var notFound *ledgererror.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestEmployeeStoreAdjustAllBalances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Employees.dat")
	s := NewEmployeeStore(path)

	require.NoError(t, s.Append(testEmployee(t, 1922, "Mary Brown")))
	require.NoError(t, s.Append(testEmployee(t, 1923, "John White")))
	require.NoError(t, s.AdjustBalance(1923, decimal.RequireFromString("-50.00")))

	require.NoError(t, s.AdjustAllBalances(decimal.RequireFromString("175.00")))

	records, err := s.All()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "175.00", records[0].BalanceDue.StringFixed(2))
	assert.Equal(t, "125.00", records[1].BalanceDue.StringFixed(2))
}

func TestEmployeeStorePreservesMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Employees.dat")
	s := NewEmployeeStore(path)

	require.NoError(t, s.Append(testEmployee(t, 1922, "Mary Brown")))
	malformed := "this line is not an employee record"
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.WriteString(malformed + "\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())
	require.NoError(t, s.Append(testEmployee(t, 1923, "John White")))

	// Reads skip the malformed line.
	records, err := s.All()
	require.NoError(t, err)
	assert.Len(t, records, 2)

	// A rewrite keeps it byte-for-byte.
	require.NoError(t, s.AdjustAllBalances(decimal.RequireFromString("175.00")))
	content := readTestFile(t, path)
	assert.Contains(t, content, malformed)

	lines := strings.Split(strings.TrimSpace(content), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, malformed, lines[1])
}

func TestRevenueLedgerAppendAndTotal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Revenue.dat")
	l := NewRevenueLedger(path)

	tx := models.RevenueTransaction{
		TransactionNumber: 143,
		Date:              mustDate(t, "2026-08-01"),
		Description:       "Monthly Stand Fee",
		DriverNumber:      1922,
		Amount:            decimal.RequireFromString("175.00"),
		HST:               decimal.RequireFromString("26.25"),
		Total:             decimal.RequireFromString("201.25"),
	}
	require.NoError(t, l.Append(tx))

	tx.TransactionNumber = 144
	tx.Description = "Airport run"
	tx.Amount = decimal.RequireFromString("60.00")
	tx.HST = decimal.RequireFromString("9.00")
	tx.Total = decimal.RequireFromString("69.00")
	require.NoError(t, l.Append(tx))

	total, err := l.Total()
	require.NoError(t, err)
	assert.Equal(t, "270.25", total.StringFixed(2))

	txs, err := l.All()
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, 143, txs[0].TransactionNumber)
	assert.Equal(t, 144, txs[1].TransactionNumber)
}

func TestRevenueLedgerTotalSkipsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Revenue.dat")
	writeTestFile(t, path,
		"143, 2026-08-01, Monthly Stand Fee, 1922, 175.00, 26.25, 201.25\n"+
			"garbage line\n"+
			"144, 2026-08-02, Airport run, 1922, 60.00, 9.00, 69.00\n")

	total, err := NewRevenueLedger(path).Total()
	require.NoError(t, err)
	assert.Equal(t, "270.25", total.StringFixed(2))
}

func TestRevenueLedgerLoadLast(t *testing.T) {
	dir := t.TempDir()

	// Missing file counts as empty.
	l := NewRevenueLedger(filepath.Join(dir, "missing.dat"))
	last, err := l.LoadLast()
	require.NoError(t, err)
	assert.Nil(t, last)
	assert.False(t, l.Available())

	// Malformed last line counts as empty.
	path := filepath.Join(dir, "Revenue.dat")
	writeTestFile(t, path, "143, 2026-08-01, Monthly Stand Fee, 1922, 175.00, 26.25, 201.25\nbroken\n")
	l = NewRevenueLedger(path)
	last, err = l.LoadLast()
	require.NoError(t, err)
	assert.Nil(t, last)

	// Well-formed last line is returned.
	writeTestFile(t, path, "143, 2026-08-01, Monthly Stand Fee, 1922, 175.00, 26.25, 201.25\n")
	last, err = l.LoadLast()
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, 143, last.TransactionNumber)
	assert.True(t, l.Available())
}

func TestRevenueLedgerReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Revenue.dat")
	writeTestFile(t, path, "old content\nmore old content\n")

	l := NewRevenueLedger(path)
	tx := models.RevenueTransaction{
		TransactionNumber: 143,
		Date:              mustDate(t, "2026-08-28"),
		Description:       "Revenue description",
		DriverNumber:      1922,
		Amount:            decimal.RequireFromString("175.00"),
		HST:               decimal.RequireFromString("26.25"),
		Total:             decimal.RequireFromString("201.25"),
	}
	require.NoError(t, l.Reset(tx))

	txs, err := l.All()
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "Revenue description", txs[0].Description)
}

func TestPaymentLedgerTotalsByDriver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "EmployeePayments.dat")
	l := NewPaymentLedger(path)

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

	recs, err := l.All()
	require.NoError(t, err)
	assert.Len(t, recs, 3)
}

func TestRentalLedgerAppendAndAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Rentals.dat")
	l := NewRentalLedger(path)

	tx := models.RentalTransaction{
		RentalID:     7,
		DriverNumber: 1922,
		CarNumber:    12,
		Date:         mustDate(t, "2026-08-20"),
		Type:         models.Daily,
		Duration:     3,
		Amount:       decimal.RequireFromString("180.00"),
		HST:          decimal.RequireFromString("27.00"),
		Total:        decimal.RequireFromString("207.00"),
	}
	require.NoError(t, l.Append(tx))

	txs, err := l.All()
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, 7, txs[0].RentalID)
	assert.Equal(t, models.Daily, txs[0].Type)
	assert.Equal(t, 3, txs[0].Duration)
	assert.Equal(t, "207.00", txs[0].Total.StringFixed(2))
}

func TestExpenseLedgerTotal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Expenses.dat")
	writeTestFile(t, path,
		"1, 2026-08-01, Fuel, 120.50\n"+
			"2, 2026-08-02, Tires, 300.00\n"+
			"short line\n"+
			"3, 2026-08-03, Oil change, not-a-number\n")

	l := NewExpenseLedger(path)
	assert.True(t, l.Available())

	total, err := l.Total()
	require.NoError(t, err)
	assert.Equal(t, "420.50", total.StringFixed(2))
}

func TestExpenseLedgerMissingFile(t *testing.T) {
	l := NewExpenseLedger(filepath.Join(t.TempDir(), "Expenses.dat"))
	assert.False(t, l.Available())

	total, err := l.Total()
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}
