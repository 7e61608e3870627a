package flatfile

import (
	"fjacquet/taxi-ledger/internal/codec"
	"fjacquet/taxi-ledger/internal/models"

	"github.com/shopspring/decimal"
)

const paymentEntity = "payment record"

// PaymentLedger persists the payment audit log, append-only, one per line.
type PaymentLedger struct {
	path string
}

// NewPaymentLedger creates a payment ledger backed by the given file.
func NewPaymentLedger(path string) *PaymentLedger {
	return &PaymentLedger{path: path}
}

// Append writes one payment line, preserving existing content.
func (l *PaymentLedger) Append(rec models.PaymentRecord) error {
	line, err := codec.EncodeLine(rec)
	if err != nil {
		return err
	}
	return appendLine(l.path, line)
}

// All returns the well-formed payments in file order, skipping malformed
// lines with a warning.
func (l *PaymentLedger) All() ([]models.PaymentRecord, error) {
	lines, err := readLines(l.path)
	if err != nil {
		return nil, err
	}

	recs := make([]models.PaymentRecord, 0, len(lines))
	for _, line := range lines {
		rec, derr := codec.DecodeLine[models.PaymentRecord](paymentEntity, line, models.PaymentRecordFields)
		if derr != nil {
			log.WithError(derr).WithField("file", l.path).Warn("Skipping malformed payment record")
			continue
		}
		recs = append(recs, rec)
	}
	return recs, nil
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
