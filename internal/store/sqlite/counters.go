package sqlite

import (
	"database/sql"
	"errors"

	"fjacquet/taxi-ledger/internal/models"

	"github.com/shopspring/decimal"
)

// CounterStore persists the singleton counter record in the counters table.
type CounterStore struct {
	db *DB
}

// NewCounterStore creates a counter store on the given database.
func NewCounterStore(db *DB) *CounterStore {
	return &CounterStore{db: db}
}

// Load returns the persisted counters, creating the built-in defaults when
// the row is absent or holds unparsable amounts.
func (s *CounterStore) Load() (models.Counters, error) {
	row := s.db.db.QueryRow(`
		SELECT next_transaction_number, next_driver_number, monthly_stand_fee,
		       daily_rental_fee, weekly_rental_fee, hst_rate, last_billed_month
		FROM counters WHERE id = 1`)

	var c models.Counters
	var standFee, dailyFee, weeklyFee, hstRate string
	err := row.Scan(&c.NextTransactionNumber, &c.NextDriverNumber,
		&standFee, &dailyFee, &weeklyFee, &hstRate, &c.LastBilledMonth)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return s.restoreDefaults()
	case err != nil:
		return models.Counters{}, err
	}

	for _, field := range []struct {
		column string
		raw    string
		dst    *decimal.Decimal
	}{
		{"monthly_stand_fee", standFee, &c.MonthlyStandFee},
		{"daily_rental_fee", dailyFee, &c.DailyRentalFee},
		{"weekly_rental_fee", weeklyFee, &c.WeeklyRentalFee},
		{"hst_rate", hstRate, &c.HSTRate},
	} {
		parsed, perr := parseAmount(field.column, field.raw)
		if perr != nil {
			log.WithError(perr).Warn("Counters row unparsable, restoring defaults")
			return s.restoreDefaults()
		}
		*field.dst = parsed
	}

	return c, nil
}

func (s *CounterStore) restoreDefaults() (models.Counters, error) {
	defaults := models.DefaultCounters()
	if err := s.Save(defaults); err != nil {
		return models.Counters{}, err
	}
	return defaults, nil
}

// Save overwrites the counter row in full.
func (s *CounterStore) Save(c models.Counters) error {
	_, err := s.db.db.Exec(`
		INSERT INTO counters (id, next_transaction_number, next_driver_number,
		                      monthly_stand_fee, daily_rental_fee,
		                      weekly_rental_fee, hst_rate, last_billed_month)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
		    next_transaction_number = excluded.next_transaction_number,
		    next_driver_number = excluded.next_driver_number,
		    monthly_stand_fee = excluded.monthly_stand_fee,
		    daily_rental_fee = excluded.daily_rental_fee,
		    weekly_rental_fee = excluded.weekly_rental_fee,
		    hst_rate = excluded.hst_rate,
		    last_billed_month = excluded.last_billed_month`,
		c.NextTransactionNumber, c.NextDriverNumber,
		c.MonthlyStandFee.String(), c.DailyRentalFee.String(),
		c.WeeklyRentalFee.String(), c.HSTRate.String(), c.LastBilledMonth)
	return err
}
