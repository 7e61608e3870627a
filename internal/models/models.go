// Package models defines the entities persisted by the ledger: the counter
// record, revenue transactions, employee (driver) records, rental
// transactions and payment records. All monetary values are decimals; HST and
// totals are rounded to 2 places at the point of computation.
package models

import (
	"github.com/shopspring/decimal"
)

// Field counts of the persisted line formats. A decoded line whose field
// count differs is malformed.
const (
	CountersFields           = 7
	RevenueTransactionFields = 7
	EmployeeRecordFields     = 10
	RentalTransactionFields  = 9
	PaymentRecordFields      = 3
)

// Counters is the singleton record holding the sequence counters and the fee
// configuration. It is rewritten in full after every change.
type Counters struct {
	NextTransactionNumber int
	NextDriverNumber      int
	MonthlyStandFee       decimal.Decimal
	DailyRentalFee        decimal.Decimal
	WeeklyRentalFee       decimal.Decimal
	HSTRate               decimal.Decimal
	// LastBilledMonth is the YYYY-MM month the stand fee was last charged,
	// empty when billing has never run. Legacy counter lines without this
	// field decode with it empty.
	LastBilledMonth string
}

// DefaultCounters returns the built-in counter record written on first run.
func DefaultCounters() Counters {
	return Counters{
		NextTransactionNumber: 143,
		NextDriverNumber:      1922,
		MonthlyStandFee:       decimal.RequireFromString("175.00"),
		DailyRentalFee:        decimal.RequireFromString("60.00"),
		WeeklyRentalFee:       decimal.RequireFromString("300.00"),
		HSTRate:               decimal.RequireFromString("0.15"),
	}
}

// RentalRate returns the configured rate for the given rental type.
func (c Counters) RentalRate(t RentalType) decimal.Decimal {
	if t == Weekly {
		return c.WeeklyRentalFee
	}
	return c.DailyRentalFee
}

// RevenueTransaction is one append-only revenue ledger entry. Records are
// never mutated or deleted once written; file order is chronological order.
type RevenueTransaction struct {
	TransactionNumber int
	Date              Date
	Description       string
	// DriverNumber may reference a non-existent driver for generic revenue.
	DriverNumber int
	Amount       decimal.Decimal
	HST          decimal.Decimal
	Total        decimal.Decimal
}

// EmployeeRecord is one driver, keyed by DriverNumber. BalanceDue is signed:
// positive means the driver owes the company, negative means overpayment.
type EmployeeRecord struct {
	DriverNumber     int
	Name             string
	Address          string
	Phone            string
	LicenseNumber    string
	LicenseExpiry    Date
	InsuranceCompany string
	PolicyNumber     string
	OwnsCar          YesNo
	BalanceDue       decimal.Decimal
}

// RentalTransaction is one append-only rental ledger entry.
type RentalTransaction struct {
	// RentalID is a user-supplied tag; uniqueness is not enforced.
	RentalID     int
	DriverNumber int
	CarNumber    int
	Date         Date
	Type         RentalType
	// Duration is in days for daily rentals and weeks for weekly rentals.
	Duration int
	Amount   decimal.Decimal
	HST      decimal.Decimal
	Total    decimal.Decimal
}

// PaymentRecord is one append-only payment log entry. The authoritative
// balance lives on the EmployeeRecord; this log is the audit trail.
type PaymentRecord struct {
	DriverNumber int
	Amount       decimal.Decimal
	Date         Date
}
