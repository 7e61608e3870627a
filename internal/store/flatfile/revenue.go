package flatfile

import (
	"fjacquet/taxi-ledger/internal/codec"
	"fjacquet/taxi-ledger/internal/fileutils"
	"fjacquet/taxi-ledger/internal/models"

	"github.com/shopspring/decimal"
)

const revenueEntity = "revenue transaction"

// RevenueLedger persists revenue transactions, append-only, one per line.
type RevenueLedger struct {
	path string
}

// NewRevenueLedger creates a revenue ledger backed by the given file.
func NewRevenueLedger(path string) *RevenueLedger {
	return &RevenueLedger{path: path}
}

// Append writes one transaction line, preserving existing content.
func (l *RevenueLedger) Append(tx models.RevenueTransaction) error {
	line, err := codec.EncodeLine(tx)
	if err != nil {
		return err
	}
	return appendLine(l.path, line)
}

// All returns the well-formed transactions in file order. Malformed lines
// are skipped with a warning.
func (l *RevenueLedger) All() ([]models.RevenueTransaction, error) {
	lines, err := readLines(l.path)
	if err != nil {
		return nil, err
	}

	txs := make([]models.RevenueTransaction, 0, len(lines))
	for _, line := range lines {
		tx, derr := codec.DecodeLine[models.RevenueTransaction](revenueEntity, line, models.RevenueTransactionFields)
		if derr != nil {
			log.WithError(derr).WithField("file", l.path).Warn("Skipping malformed revenue record")
			continue
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// LoadLast returns the most recent transaction. An absent file or a
// malformed last line means the ledger counts as empty: nil, nil.
func (l *RevenueLedger) LoadLast() (*models.RevenueTransaction, error) {
	lines, err := readLines(l.path)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, nil
	}

	tx, derr := codec.DecodeLine[models.RevenueTransaction](revenueEntity, lines[len(lines)-1], models.RevenueTransactionFields)
	if derr != nil {
		log.WithError(derr).WithField("file", l.path).Warn("Last revenue record malformed, treating ledger as empty")
		return nil, nil
	}
	return &tx, nil
}

// Reset replaces the ledger contents with a single record.
func (l *RevenueLedger) Reset(tx models.RevenueTransaction) error {
	line, err := codec.EncodeLine(tx)
	if err != nil {
		return err
	}
	return writeLines(l.path, []string{line})
}

// Total sums the total column across all well-formed records.
func (l *RevenueLedger) Total() (decimal.Decimal, error) {
	txs, err := l.All()
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, tx := range txs {
		total = total.Add(tx.Total)
	}
	return total, nil
}

// Available reports whether the ledger file exists.
func (l *RevenueLedger) Available() bool {
	return fileutils.FileExists(l.path)
}
