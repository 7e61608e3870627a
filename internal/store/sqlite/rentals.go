package sqlite

import (
	"fjacquet/taxi-ledger/internal/models"
)

// RentalLedger persists rental transactions in the rentals table.
type RentalLedger struct {
	db *DB
}

// NewRentalLedger creates a rental ledger on the given database.
func NewRentalLedger(db *DB) *RentalLedger {
	return &RentalLedger{db: db}
}

// Append adds one rental transaction.
func (l *RentalLedger) Append(tx models.RentalTransaction) error {
	date, err := tx.Date.MarshalCSV()
	if err != nil {
		return err
	}
	_, err = l.db.db.Exec(`
		INSERT INTO rentals (rental_id, driver_number, car_number, date,
		                     rental_type, duration, amount, hst, total)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.RentalID, tx.DriverNumber, tx.CarNumber, date, string(tx.Type),
		tx.Duration, tx.Amount.String(), tx.HST.String(), tx.Total.String())
	return err
}

// All returns the rentals in insertion order, skipping malformed rows.
func (l *RentalLedger) All() ([]models.RentalTransaction, error) {
	rows, err := l.db.db.Query(`
		SELECT rental_id, driver_number, car_number, date, rental_type,
		       duration, amount, hst, total
		FROM rentals ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []models.RentalTransaction
	for rows.Next() {
		var tx models.RentalTransaction
		var date, rentalType, amount, hst, total string
		if err := rows.Scan(&tx.RentalID, &tx.DriverNumber, &tx.CarNumber,
			&date, &rentalType, &tx.Duration, &amount, &hst, &total); err != nil {
			log.WithError(err).Warn("Skipping malformed rental row")
			continue
		}

		serr := func() error {
			var err error
			if tx.Date, err = parseDate("date", date); err != nil {
				return err
			}
			if tx.Type, err = models.ParseRentalType(rentalType); err != nil {
				return err
			}
			if tx.Amount, err = parseAmount("amount", amount); err != nil {
				return err
			}
			if tx.HST, err = parseAmount("hst", hst); err != nil {
				return err
			}
			tx.Total, err = parseAmount("total", total)
			return err
		}()
		if serr != nil {
			log.WithError(serr).Warn("Skipping malformed rental row")
			continue
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}
