package flatfile

import (
	"fjacquet/taxi-ledger/internal/codec"
	"fjacquet/taxi-ledger/internal/models"
)

const rentalEntity = "rental transaction"

// RentalLedger persists rental transactions, append-only, one per line.
type RentalLedger struct {
	path string
}

// NewRentalLedger creates a rental ledger backed by the given file.
func NewRentalLedger(path string) *RentalLedger {
	return &RentalLedger{path: path}
}

// Append writes one rental line, preserving existing content.
func (l *RentalLedger) Append(tx models.RentalTransaction) error {
	line, err := codec.EncodeLine(tx)
	if err != nil {
		return err
	}
	return appendLine(l.path, line)
}

// All returns the well-formed rentals in file order, skipping malformed
// lines with a warning.
func (l *RentalLedger) All() ([]models.RentalTransaction, error) {
	lines, err := readLines(l.path)
	if err != nil {
		return nil, err
	}

	txs := make([]models.RentalTransaction, 0, len(lines))
	for _, line := range lines {
		tx, derr := codec.DecodeLine[models.RentalTransaction](rentalEntity, line, models.RentalTransactionFields)
		if derr != nil {
			log.WithError(derr).WithField("file", l.path).Warn("Skipping malformed rental record")
			continue
		}
		txs = append(txs, tx)
	}
	return txs, nil
}
