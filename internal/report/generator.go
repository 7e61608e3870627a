// Package report builds the company profit listing and the per-driver
// financial listing from the stores, and renders them as text, JSON or YAML.
package report

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"fjacquet/taxi-ledger/internal/store"
)

// Generator builds reports over the ledger stores.
type Generator struct {
	stores store.Stores
	logger *logrus.Logger
}

// NewGenerator creates a report generator.
func NewGenerator(stores store.Stores, logger *logrus.Logger) *Generator {
	if logger == nil {
		logger = logrus.New()
	}
	return &Generator{stores: stores, logger: logger}
}

// ProfitListing is the company-wide revenue and expense summary. Profit is
// revenue total minus expense total; Notices flags data that was missing at
// generation time.
type ProfitListing struct {
	Revenue  decimal.Decimal
	Expenses decimal.Decimal
	Profit   decimal.Decimal
	Notices  []string
}

// Profit builds the profit listing. An unavailable revenue ledger or
// expenses file contributes zero and adds a notice rather than failing.
func (g *Generator) Profit() (*ProfitListing, error) {
	listing := &ProfitListing{
		Revenue:  decimal.Zero,
		Expenses: decimal.Zero,
	}

	if g.stores.Revenue.Available() {
		total, err := g.stores.Revenue.Total()
		if err != nil {
			return nil, err
		}
		listing.Revenue = total
	} else {
		g.logger.Warn("Revenue ledger unavailable, reporting zero revenue")
		listing.Notices = append(listing.Notices, "revenue ledger unavailable, revenue reported as zero")
	}

	if g.stores.Expenses.Available() {
		total, err := g.stores.Expenses.Total()
		if err != nil {
			return nil, err
		}
		listing.Expenses = total
	} else {
		g.logger.Warn("Expenses file unavailable, reporting zero expenses")
		listing.Notices = append(listing.Notices, "expenses file unavailable, expenses reported as zero")
	}

	listing.Profit = listing.Revenue.Sub(listing.Expenses)
	return listing, nil
}

// DriverFinancials is one driver's row in the financial listing. BalanceDue
// is the stored balance, already net of payments; TotalPayments is the sum
// of the payment log for audit.
type DriverFinancials struct {
	DriverNumber  int
	Name          string
	BalanceDue    decimal.Decimal
	TotalPayments decimal.Decimal
}

// DriverListing is the per-driver financial listing in store order.
type DriverListing struct {
	Drivers      []DriverFinancials
	TotalBalance decimal.Decimal
}

// Drivers builds the driver financial listing. Drivers with no payments get
// a zero payment total.
func (g *Generator) Drivers() (*DriverListing, error) {
	employees, err := g.stores.Employees.All()
	if err != nil {
		return nil, err
	}
	payments, err := g.stores.Payments.TotalsByDriver()
	if err != nil {
		return nil, err
	}

	listing := &DriverListing{TotalBalance: decimal.Zero}
	for _, emp := range employees {
		listing.Drivers = append(listing.Drivers, DriverFinancials{
			DriverNumber:  emp.DriverNumber,
			Name:          emp.Name,
			BalanceDue:    emp.BalanceDue,
			TotalPayments: payments[emp.DriverNumber],
		})
		listing.TotalBalance = listing.TotalBalance.Add(emp.BalanceDue)
	}
	return listing, nil
}
