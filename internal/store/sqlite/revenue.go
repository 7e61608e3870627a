package sqlite

import (
	"database/sql"
	"errors"

	"fjacquet/taxi-ledger/internal/models"

	"github.com/shopspring/decimal"
)

// RevenueLedger persists revenue transactions in the revenue table,
// append-only, insertion order by rowid.
type RevenueLedger struct {
	db *DB
}

// NewRevenueLedger creates a revenue ledger on the given database.
func NewRevenueLedger(db *DB) *RevenueLedger {
	return &RevenueLedger{db: db}
}

func insertRevenue(exec func(string, ...any) (sql.Result, error), tx models.RevenueTransaction) error {
	date, err := tx.Date.MarshalCSV()
	if err != nil {
		return err
	}
	_, err = exec(`
		INSERT INTO revenue (transaction_number, date, description,
		                     driver_number, amount, hst, total)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		tx.TransactionNumber, date, tx.Description, tx.DriverNumber,
		tx.Amount.String(), tx.HST.String(), tx.Total.String())
	return err
}

// Append adds one revenue transaction.
func (l *RevenueLedger) Append(tx models.RevenueTransaction) error {
	return insertRevenue(l.db.db.Exec, tx)
}

func scanRevenue(scan func(...any) error) (models.RevenueTransaction, error) {
	var tx models.RevenueTransaction
	var date, amount, hst, total string
	if err := scan(&tx.TransactionNumber, &date, &tx.Description,
		&tx.DriverNumber, &amount, &hst, &total); err != nil {
		return models.RevenueTransaction{}, err
	}

	var err error
	if tx.Date, err = parseDate("date", date); err != nil {
		return models.RevenueTransaction{}, err
	}
	if tx.Amount, err = parseAmount("amount", amount); err != nil {
		return models.RevenueTransaction{}, err
	}
	if tx.HST, err = parseAmount("hst", hst); err != nil {
		return models.RevenueTransaction{}, err
	}
	if tx.Total, err = parseAmount("total", total); err != nil {
		return models.RevenueTransaction{}, err
	}
	return tx, nil
}

const revenueColumns = `transaction_number, date, description, driver_number, amount, hst, total`

// All returns the transactions in insertion order, skipping malformed rows.
func (l *RevenueLedger) All() ([]models.RevenueTransaction, error) {
	rows, err := l.db.db.Query(`SELECT ` + revenueColumns + ` FROM revenue ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []models.RevenueTransaction
	for rows.Next() {
		tx, serr := scanRevenue(rows.Scan)
		if serr != nil {
			log.WithError(serr).Warn("Skipping malformed revenue row")
			continue
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

// LoadLast returns the most recent transaction, or nil when the ledger is
// empty or its last row is malformed.
func (l *RevenueLedger) LoadLast() (*models.RevenueTransaction, error) {
	row := l.db.db.QueryRow(`SELECT ` + revenueColumns + ` FROM revenue ORDER BY id DESC LIMIT 1`)
	tx, err := scanRevenue(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.WithError(err).Warn("Last revenue row malformed, treating ledger as empty")
		return nil, nil
	}
	return &tx, nil
}

// Reset replaces the ledger contents with a single record.
func (l *RevenueLedger) Reset(tx models.RevenueTransaction) error {
	return l.db.Transaction(func(sqlTx *sql.Tx) error {
		if _, err := sqlTx.Exec(`DELETE FROM revenue`); err != nil {
			return err
		}
		return insertRevenue(sqlTx.Exec, tx)
	})
}

// Total sums the total column across all well-formed rows.
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

// Available always reports true: the table exists once the database opens.
func (l *RevenueLedger) Available() bool {
	return true
}
