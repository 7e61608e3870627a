package container

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/taxi-ledger/internal/config"
)

func testConfig(t *testing.T, backend string) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.Log.Level = "error"
	cfg.Log.Format = "text"
	cfg.Storage.Backend = backend
	cfg.Storage.Directory = t.TempDir()
	cfg.Storage.SQLitePath = "ledger.db"
	cfg.Files.Counters = "Defaults.dat"
	cfg.Files.Revenue = "Revenue.dat"
	cfg.Files.Employees = "Employees.dat"
	cfg.Files.Rentals = "Rentals.dat"
	cfg.Files.Payments = "EmployeePayments.dat"
	cfg.Files.Expenses = "Expenses.dat"
	return cfg
}

func TestNewContainerFlatfile(t *testing.T) {
	c, err := NewContainer(testConfig(t, config.BackendFlatfile))
	require.NoError(t, err)
	defer c.Close()

	assert.NotNil(t, c.Logger())
	assert.NotNil(t, c.Config())
	assert.NotNil(t, c.Engine())
	assert.NotNil(t, c.Reports())
	assert.NotNil(t, c.Stores().Counters)
	assert.NotNil(t, c.Stores().Expenses)

	assert.NoError(t, c.Close())
}

func TestNewContainerSQLite(t *testing.T) {
	c, err := NewContainer(testConfig(t, config.BackendSQLite))
	require.NoError(t, err)
	defer c.Close()

	// The sqlite backend still answers through the store contracts.
	counters, err := c.Stores().Counters.Load()
	require.NoError(t, err)
	assert.Equal(t, 143, counters.NextTransactionNumber)
}

func TestNewContainerNilConfig(t *testing.T) {
	_, err := NewContainer(nil)
	assert.Error(t, err)
}

func TestNewContainerUnknownBackend(t *testing.T) {
	_, err := NewContainer(testConfig(t, "postgres"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown storage backend")
}
