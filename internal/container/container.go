// Package container provides dependency injection for the taxi-ledger
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"fjacquet/taxi-ledger/internal/billing"
	"fjacquet/taxi-ledger/internal/codec"
	"fjacquet/taxi-ledger/internal/config"
	"fjacquet/taxi-ledger/internal/fileutils"
	"fjacquet/taxi-ledger/internal/report"
	"fjacquet/taxi-ledger/internal/store"
	"fjacquet/taxi-ledger/internal/store/flatfile"
	"fjacquet/taxi-ledger/internal/store/sqlite"
)

// Container holds all application dependencies and provides methods to
// access them. Fields are private so dependencies cannot be swapped after
// initialization.
type Container struct {
	logger  *logrus.Logger
	config  *config.Config
	stores  store.Stores
	engine  *billing.Engine
	reports *report.Generator
	db      *sqlite.DB
}

// NewContainer creates and wires all application dependencies from the
// configuration. The storage backend is chosen here; everything downstream
// works against the store interfaces.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	logger := config.ConfigureLoggingFromConfig(cfg)
	codec.SetLogger(logger)
	fileutils.SetLogger(logger)
	flatfile.SetLogger(logger)
	sqlite.SetLogger(logger)

	c := &Container{
		logger: logger,
		config: cfg,
	}

	switch cfg.Storage.Backend {
	case config.BackendFlatfile:
		c.stores = store.Stores{
			Counters:  flatfile.NewCounterStore(cfg.CountersPath()),
			Employees: flatfile.NewEmployeeStore(cfg.EmployeesPath()),
			Revenue:   flatfile.NewRevenueLedger(cfg.RevenuePath()),
			Rentals:   flatfile.NewRentalLedger(cfg.RentalsPath()),
			Payments:  flatfile.NewPaymentLedger(cfg.PaymentsPath()),
			Expenses:  flatfile.NewExpenseLedger(cfg.ExpensesPath()),
		}
	case config.BackendSQLite:
		db, err := sqlite.Open(cfg.SQLiteDBPath())
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		c.db = db
		c.stores = store.Stores{
			Counters:  sqlite.NewCounterStore(db),
			Employees: sqlite.NewEmployeeStore(db),
			Revenue:   sqlite.NewRevenueLedger(db),
			Rentals:   sqlite.NewRentalLedger(db),
			Payments:  sqlite.NewPaymentLedger(db),
			// Expenses stay in the externally maintained flat file even when
			// the ledger itself lives in sqlite.
			Expenses: flatfile.NewExpenseLedger(cfg.ExpensesPath()),
		}
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
	}

	c.engine = billing.NewEngine(c.stores, logger)
	c.reports = report.NewGenerator(c.stores, logger)

	logger.WithField("backend", cfg.Storage.Backend).Debug("Container initialized")
	return c, nil
}

// Logger returns the configured logger instance.
func (c *Container) Logger() *logrus.Logger {
	return c.logger
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Stores returns the wired store bundle.
func (c *Container) Stores() store.Stores {
	return c.stores
}

// Engine returns the billing engine.
func (c *Container) Engine() *billing.Engine {
	return c.engine
}

// Reports returns the report generator.
func (c *Container) Reports() *report.Generator {
	return c.reports
}

// Close releases backend resources. Safe to call on a flat-file container.
func (c *Container) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}
