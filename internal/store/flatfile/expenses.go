package flatfile

import (
	"fjacquet/taxi-ledger/internal/codec"
	"fjacquet/taxi-ledger/internal/fileutils"

	"github.com/shopspring/decimal"
)

// expenseAmountIndex is the position of the amount column in the externally
// maintained expenses file. The rest of its format is not ours to define.
const expenseAmountIndex = 3

// ExpenseLedger reads the external expenses file. This application never
// writes it.
type ExpenseLedger struct {
	path string
}

// NewExpenseLedger creates a read-only view over the given expenses file.
func NewExpenseLedger(path string) *ExpenseLedger {
	return &ExpenseLedger{path: path}
}

// Total sums the amount column across all well-formed records. A missing
// file contributes zero; malformed lines are skipped with a warning.
func (l *ExpenseLedger) Total() (decimal.Decimal, error) {
	lines, err := readLines(l.path)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, line := range lines {
		fields, ferr := codec.Fields("expense record", line)
		if ferr != nil || len(fields) <= expenseAmountIndex {
			log.WithField("file", l.path).Warn("Skipping malformed expense record")
			continue
		}
		amount, derr := decimal.NewFromString(fields[expenseAmountIndex])
		if derr != nil {
			log.WithError(derr).WithField("file", l.path).Warn("Skipping expense record with unparsable amount")
			continue
		}
		total = total.Add(amount)
	}
	return total, nil
}

// Available reports whether the expenses file exists.
func (l *ExpenseLedger) Available() bool {
	return fileutils.FileExists(l.path)
}
