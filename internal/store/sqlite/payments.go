package sqlite

import (
	"fjacquet/taxi-ledger/internal/models"

	"github.com/shopspring/decimal"
)

// PaymentLedger persists the payment audit log in the payments table.
type PaymentLedger struct {
	db *DB
}

// NewPaymentLedger creates a payment ledger on the given database.
func NewPaymentLedger(db *DB) *PaymentLedger {
	return &PaymentLedger{db: db}
}

// Append adds one payment record.
func (l *PaymentLedger) Append(rec models.PaymentRecord) error {
	date, err := rec.Date.MarshalCSV()
	if err != nil {
		return err
	}
	_, err = l.db.db.Exec(`
		INSERT INTO payments (driver_number, amount, date) VALUES (?, ?, ?)`,
		rec.DriverNumber, rec.Amount.String(), date)
	return err
}

// All returns the payments in insertion order, skipping malformed rows.
func (l *PaymentLedger) All() ([]models.PaymentRecord, error) {
	rows, err := l.db.db.Query(`SELECT driver_number, amount, date FROM payments ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []models.PaymentRecord
	for rows.Next() {
		var rec models.PaymentRecord
		var amount, date string
		if err := rows.Scan(&rec.DriverNumber, &amount, &date); err != nil {
			log.WithError(err).Warn("Skipping malformed payment row")
			continue
		}
		if rec.Amount, err = parseAmount("amount", amount); err != nil {
			log.WithError(err).Warn("Skipping malformed payment row")
			continue
		}
		if rec.Date, err = parseDate("date", date); err != nil {
			log.WithError(err).Warn("Skipping malformed payment row")
			continue
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// TotalsByDriver sums payment amounts per driver number.
func (l *PaymentLedger) TotalsByDriver() (map[int]decimal.Decimal, error) {
	recs, err := l.All()
	if err != nil {
		return nil, err
	}

	totals := make(map[int]decimal.Decimal, len(recs))
	for _, rec := range recs {
		totals[rec.DriverNumber] = totals[rec.DriverNumber].Add(rec.Amount)
	}
	return totals, nil
}
