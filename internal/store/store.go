// Package store defines the persistence contracts for the ledger entities.
// The flat-file backend is the reference implementation; the sqlite backend
// implements the same contracts so that the choice of storage is an
// implementation detail of the container wiring.
package store

import (
	"fjacquet/taxi-ledger/internal/models"

	"github.com/shopspring/decimal"
)

// CounterStore holds the singleton counter record.
type CounterStore interface {
	// Load returns the current counters. If the backing storage is absent
	// or unparsable, the built-in defaults are persisted and returned.
	Load() (models.Counters, error)
	// Save overwrites the counter record in full.
	Save(models.Counters) error
}

// RevenueLedger is the append-only sequence of revenue transactions.
type RevenueLedger interface {
	Append(models.RevenueTransaction) error
	// All returns the well-formed transactions in insertion order.
	// Malformed records are skipped, not fatal.
	All() ([]models.RevenueTransaction, error)
	// LoadLast returns the most recent transaction, or nil when the ledger
	// is empty or its last record is malformed.
	LoadLast() (*models.RevenueTransaction, error)
	// Reset replaces the ledger contents with a single record. Used only to
	// bootstrap an empty or corrupt ledger.
	Reset(models.RevenueTransaction) error
	// Total sums the total column across all well-formed records.
	Total() (decimal.Decimal, error)
	// Available reports whether the ledger has backing storage at all.
	Available() bool
}

// EmployeeStore is the mutable collection of driver records, keyed by driver
// number. Insertion order is preserved across mutations.
type EmployeeStore interface {
	// Append adds a new driver with the balance forced to zero.
	Append(models.EmployeeRecord) error
	All() ([]models.EmployeeRecord, error)
	Exists(driverNumber int) (bool, error)
	// Find returns the record for a driver number, or a NotFoundError.
	Find(driverNumber int) (*models.EmployeeRecord, error)
	// AdjustBalance adds delta to one driver's balance, leaving every other
	// record untouched.
	AdjustBalance(driverNumber int, delta decimal.Decimal) error
	// AdjustAllBalances adds delta to every driver's balance in one pass.
	AdjustAllBalances(delta decimal.Decimal) error
}

// RentalLedger is the append-only sequence of rental transactions.
type RentalLedger interface {
	Append(models.RentalTransaction) error
	All() ([]models.RentalTransaction, error)
}

// PaymentLedger is the append-only payment log.
type PaymentLedger interface {
	Append(models.PaymentRecord) error
	All() ([]models.PaymentRecord, error)
	// TotalsByDriver sums payment amounts per driver number, skipping
	// malformed records.
	TotalsByDriver() (map[int]decimal.Decimal, error)
}

// ExpenseLedger is the read-only view over the externally maintained
// expenses file.
type ExpenseLedger interface {
	// Total sums the amount column across all well-formed records; a
	// missing file contributes zero.
	Total() (decimal.Decimal, error)
	Available() bool
}

// Stores bundles every store behind one handle for the engines.
type Stores struct {
	Counters  CounterStore
	Employees EmployeeStore
	Revenue   RevenueLedger
	Rentals   RentalLedger
	Payments  PaymentLedger
	Expenses  ExpenseLedger
}
