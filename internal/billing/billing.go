// Package billing implements the business operations that mutate the ledger
// stores: monthly stand-fee billing, adding drivers, recording rentals and
// recording payments. Each operation reads the current counters, performs
// its store mutations and persists the updated counters; there is no
// rollback beyond the stores' own full-rewrite semantics.
package billing

import (
	"errors"
	"time"

	"fjacquet/taxi-ledger/internal/dateutils"
	"fjacquet/taxi-ledger/internal/ledgererror"
	"fjacquet/taxi-ledger/internal/models"
	"fjacquet/taxi-ledger/internal/store"
	"fjacquet/taxi-ledger/internal/validation"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Descriptions written to the revenue ledger.
const (
	standFeeDescription  = "Monthly Stand Fee"
	bootstrapDescription = "Revenue description"
)

// ErrAlreadyBilled indicates the stand fee was already charged for the
// requested month.
var ErrAlreadyBilled = errors.New("stand fees already billed for this month")

// Engine drives the operations that touch multiple stores.
type Engine struct {
	stores store.Stores
	log    *logrus.Logger
	now    func() time.Time
}

// NewEngine creates a billing engine over the given stores.
func NewEngine(stores store.Stores, logger *logrus.Logger) *Engine {
	if logger == nil {
		logger = logrus.New()
	}
	return &Engine{
		stores: stores,
		log:    logger,
		now:    time.Now,
	}
}

// SetClock overrides the engine's time source.
func (e *Engine) SetClock(now func() time.Time) {
	if now != nil {
		e.now = now
	}
}

// Bootstrap ensures the counters exist and the revenue ledger holds at least
// one well-formed record. When the ledger is empty, or its last record is
// malformed, a synthetic record stamped with the current counters replaces
// the ledger contents.
func (e *Engine) Bootstrap() (models.Counters, error) {
	c, err := e.stores.Counters.Load()
	if err != nil {
		return models.Counters{}, err
	}

	last, err := e.stores.Revenue.LoadLast()
	if err != nil {
		return models.Counters{}, err
	}
	if last != nil {
		return c, nil
	}

	amount := models.RoundCurrency(c.MonthlyStandFee)
	hst := models.HST(amount, c.HSTRate)
	tx := models.RevenueTransaction{
		TransactionNumber: c.NextTransactionNumber,
		Date:              models.NewDate(e.now()),
		Description:       bootstrapDescription,
		DriverNumber:      c.NextDriverNumber,
		Amount:            amount,
		HST:               hst,
		Total:             amount.Add(hst),
	}
	if err := e.stores.Revenue.Reset(tx); err != nil {
		return models.Counters{}, err
	}

	e.log.WithFields(logrus.Fields{
		"transaction_number": tx.TransactionNumber,
		"total":              tx.Total.StringFixed(2),
	}).Info("Initialized revenue ledger with default record")

	return c, nil
}

// StandFeeBilling summarizes one monthly stand-fee billing run.
type StandFeeBilling struct {
	Month          string
	Transaction    models.RevenueTransaction
	DriversCharged int
}

// BillStandFees charges the monthly stand fee: it appends one revenue
// transaction, advances the transaction counter and adds the fee to every
// driver's balance. The run is idempotent per calendar month through the
// last-billed-month counter; force re-runs it within an already-billed
// month. Drivers added after the balance pass are not charged until the next
// month.
func (e *Engine) BillStandFees(asOf time.Time, force bool) (*StandFeeBilling, error) {
	c, err := e.stores.Counters.Load()
	if err != nil {
		return nil, err
	}

	month := dateutils.MonthKey(asOf)
	if !force && c.LastBilledMonth == month {
		return nil, ErrAlreadyBilled
	}

	amount := models.RoundCurrency(c.MonthlyStandFee)
	hst := models.HST(amount, c.HSTRate)
	tx := models.RevenueTransaction{
		TransactionNumber: c.NextTransactionNumber,
		Date:              models.NewDate(asOf),
		Description:       standFeeDescription,
		DriverNumber:      c.NextDriverNumber,
		Amount:            amount,
		HST:               hst,
		Total:             amount.Add(hst),
	}
	if err := e.stores.Revenue.Append(tx); err != nil {
		return nil, err
	}

	c.NextTransactionNumber++
	c.LastBilledMonth = month
	if err := e.stores.Counters.Save(c); err != nil {
		return nil, err
	}

	drivers, err := e.stores.Employees.All()
	if err != nil {
		return nil, err
	}
	if err := e.stores.Employees.AdjustAllBalances(amount); err != nil {
		return nil, err
	}

	e.log.WithFields(logrus.Fields{
		"month":           month,
		"drivers_charged": len(drivers),
		"stand_fee":       amount.StringFixed(2),
	}).Info("Monthly stand fees charged")

	return &StandFeeBilling{
		Month:          month,
		Transaction:    tx,
		DriversCharged: len(drivers),
	}, nil
}

// NewDriver carries the validated-on-entry fields of a driver to add. The
// driver number and balance are assigned by the engine.
type NewDriver struct {
	Name             string
	Address          string
	Phone            string
	LicenseNumber    string
	LicenseExpiry    models.Date
	InsuranceCompany string
	PolicyNumber     string
	OwnsCar          bool
}

// AddDriver validates the input, assigns the next driver number, appends the
// record with a zero balance and advances the driver counter. The assigned
// record is returned.
func (e *Engine) AddDriver(in NewDriver) (*models.EmployeeRecord, error) {
	checks := []error{
		validation.Text("name", in.Name),
		validation.Text("address", in.Address),
		validation.Phone(in.Phone),
		validation.Digits("license number", in.LicenseNumber),
		validation.LicenseExpiry(in.LicenseExpiry.Time, e.now()),
		validation.Text("insurance company", in.InsuranceCompany),
		validation.Digits("policy number", in.PolicyNumber),
	}
	for _, err := range checks {
		if err != nil {
			return nil, err
		}
	}

	c, err := e.stores.Counters.Load()
	if err != nil {
		return nil, err
	}

	rec := models.EmployeeRecord{
		DriverNumber:     c.NextDriverNumber,
		Name:             in.Name,
		Address:          in.Address,
		Phone:            in.Phone,
		LicenseNumber:    in.LicenseNumber,
		LicenseExpiry:    in.LicenseExpiry,
		InsuranceCompany: in.InsuranceCompany,
		PolicyNumber:     in.PolicyNumber,
		OwnsCar:          models.YesNo(in.OwnsCar),
		BalanceDue:       models.ZeroBalance(),
	}
	if err := e.stores.Employees.Append(rec); err != nil {
		return nil, err
	}

	c.NextDriverNumber++
	if err := e.stores.Counters.Save(c); err != nil {
		return nil, err
	}

	e.log.WithFields(logrus.Fields{
		"driver_number": rec.DriverNumber,
		"name":          rec.Name,
	}).Info("Driver added")

	return &rec, nil
}

// RentalInput describes one car rental to record.
type RentalInput struct {
	RentalID     int
	DriverNumber int
	CarNumber    int
	Date         models.Date
	Type         models.RentalType
	Duration     int
}

// RecordRental computes the charge from the configured rate for the rental
// type and appends the transaction. Rentals never touch driver balances;
// the rental ledger is the sole record of the charge.
func (e *Engine) RecordRental(in RentalInput) (*models.RentalTransaction, error) {
	if err := validation.RentalDuration(in.Duration); err != nil {
		return nil, err
	}

	exists, err := e.stores.Employees.Exists(in.DriverNumber)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, &ledgererror.NotFoundError{Entity: "driver", Key: in.DriverNumber}
	}

	c, err := e.stores.Counters.Load()
	if err != nil {
		return nil, err
	}

	rate := c.RentalRate(in.Type)
	amount := models.RoundCurrency(rate.Mul(decimal.NewFromInt(int64(in.Duration))))
	hst := models.HST(amount, c.HSTRate)
	tx := models.RentalTransaction{
		RentalID:     in.RentalID,
		DriverNumber: in.DriverNumber,
		CarNumber:    in.CarNumber,
		Date:         in.Date,
		Type:         in.Type,
		Duration:     in.Duration,
		Amount:       amount,
		HST:          hst,
		Total:        amount.Add(hst),
	}
	if err := e.stores.Rentals.Append(tx); err != nil {
		return nil, err
	}

	e.log.WithFields(logrus.Fields{
		"rental_id":     tx.RentalID,
		"driver_number": tx.DriverNumber,
		"total":         tx.Total.StringFixed(2),
	}).Info("Rental recorded")

	return &tx, nil
}

// PaymentReceipt reports the outcome of one recorded payment.
type PaymentReceipt struct {
	Payment    models.PaymentRecord
	DriverName string
	NewBalance decimal.Decimal
}

// RecordPayment applies a payment against a driver's balance and appends it
// to the payment log. The payment is dated with the engine's clock.
func (e *Engine) RecordPayment(driverNumber int, amount decimal.Decimal) (*PaymentReceipt, error) {
	if err := validation.PaymentAmount(amount); err != nil {
		return nil, err
	}

	driver, err := e.stores.Employees.Find(driverNumber)
	if err != nil {
		return nil, err
	}

	amount = models.RoundCurrency(amount)
	if err := e.stores.Employees.AdjustBalance(driverNumber, amount.Neg()); err != nil {
		return nil, err
	}

	rec := models.PaymentRecord{
		DriverNumber: driverNumber,
		Amount:       amount,
		Date:         models.NewDate(e.now()),
	}
	if err := e.stores.Payments.Append(rec); err != nil {
		return nil, err
	}

	newBalance := models.RoundCurrency(driver.BalanceDue.Sub(amount))

	e.log.WithFields(logrus.Fields{
		"driver_number": driverNumber,
		"amount":        amount.StringFixed(2),
		"new_balance":   newBalance.StringFixed(2),
	}).Info("Payment recorded")

	return &PaymentReceipt{
		Payment:    rec,
		DriverName: driver.Name,
		NewBalance: newBalance,
	}, nil
}
