package sqlite

import (
	"database/sql"
	"errors"

	"fjacquet/taxi-ledger/internal/ledgererror"
	"fjacquet/taxi-ledger/internal/models"

	"github.com/shopspring/decimal"
)

// EmployeeStore persists driver records in the employees table. Driver
// numbers only ever increase, so rowid order is insertion order.
type EmployeeStore struct {
	db *DB
}

// NewEmployeeStore creates an employee store on the given database.
func NewEmployeeStore(db *DB) *EmployeeStore {
	return &EmployeeStore{db: db}
}

// Append adds a new driver record with the balance forced to zero.
func (s *EmployeeStore) Append(rec models.EmployeeRecord) error {
	rec.BalanceDue = models.ZeroBalance()
	expiry, err := rec.LicenseExpiry.MarshalCSV()
	if err != nil {
		return err
	}

	_, err = s.db.db.Exec(`
		INSERT INTO employees (driver_number, name, address, phone,
		                       license_number, license_expiry,
		                       insurance_company, policy_number, owns_car,
		                       balance_due)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.DriverNumber, rec.Name, rec.Address, rec.Phone,
		rec.LicenseNumber, expiry, rec.InsuranceCompany, rec.PolicyNumber,
		yesNoText(rec.OwnsCar), rec.BalanceDue.String())
	return err
}

func scanEmployee(scan func(...any) error) (models.EmployeeRecord, error) {
	var rec models.EmployeeRecord
	var expiry, ownsCar, balance string
	if err := scan(&rec.DriverNumber, &rec.Name, &rec.Address, &rec.Phone,
		&rec.LicenseNumber, &expiry, &rec.InsuranceCompany,
		&rec.PolicyNumber, &ownsCar, &balance); err != nil {
		return models.EmployeeRecord{}, err
	}

	var err error
	if rec.LicenseExpiry, err = parseDate("license_expiry", expiry); err != nil {
		return models.EmployeeRecord{}, err
	}
	if rec.OwnsCar, err = parseYesNo("owns_car", ownsCar); err != nil {
		return models.EmployeeRecord{}, err
	}
	if rec.BalanceDue, err = parseAmount("balance_due", balance); err != nil {
		return models.EmployeeRecord{}, err
	}
	return rec, nil
}

const employeeColumns = `driver_number, name, address, phone, license_number,
	license_expiry, insurance_company, policy_number, owns_car, balance_due`

// All returns the driver records in insertion order.
func (s *EmployeeStore) All() ([]models.EmployeeRecord, error) {
	rows, err := s.db.db.Query(`SELECT ` + employeeColumns + ` FROM employees ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.EmployeeRecord
	for rows.Next() {
		rec, serr := scanEmployee(rows.Scan)
		if serr != nil {
			log.WithError(serr).Warn("Skipping malformed employee row")
			continue
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Exists reports whether a driver number is present.
func (s *EmployeeStore) Exists(driverNumber int) (bool, error) {
	var one int
	err := s.db.db.QueryRow(`SELECT 1 FROM employees WHERE driver_number = ?`, driverNumber).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Find returns the record for a driver number.
func (s *EmployeeStore) Find(driverNumber int) (*models.EmployeeRecord, error) {
	row := s.db.db.QueryRow(`SELECT `+employeeColumns+` FROM employees WHERE driver_number = ?`, driverNumber)
	rec, err := scanEmployee(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &ledgererror.NotFoundError{Entity: "driver", Key: driverNumber}
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// AdjustBalance adds delta to one driver's balance.
func (s *EmployeeStore) AdjustBalance(driverNumber int, delta decimal.Decimal) error {
	return s.db.Transaction(func(tx *sql.Tx) error {
		var balance string
		err := tx.QueryRow(`SELECT balance_due FROM employees WHERE driver_number = ?`, driverNumber).Scan(&balance)
		if errors.Is(err, sql.ErrNoRows) {
			return &ledgererror.NotFoundError{Entity: "driver", Key: driverNumber}
		}
		if err != nil {
			return err
		}

		current, err := parseAmount("balance_due", balance)
		if err != nil {
			return err
		}
		updated := models.RoundCurrency(current.Add(delta))

		_, err = tx.Exec(`UPDATE employees SET balance_due = ? WHERE driver_number = ?`,
			updated.String(), driverNumber)
		return err
	})
}

// AdjustAllBalances adds delta to every driver's balance in one transaction.
func (s *EmployeeStore) AdjustAllBalances(delta decimal.Decimal) error {
	return s.db.Transaction(func(tx *sql.Tx) error {
		rows, err := tx.Query(`SELECT driver_number, balance_due FROM employees ORDER BY rowid`)
		if err != nil {
			return err
		}

		type update struct {
			driverNumber int
			balance      string
		}
		var updates []update
		for rows.Next() {
			var u update
			var balance string
			if err := rows.Scan(&u.driverNumber, &balance); err != nil {
				rows.Close()
				return err
			}
			current, perr := parseAmount("balance_due", balance)
			if perr != nil {
				rows.Close()
				return perr
			}
			u.balance = models.RoundCurrency(current.Add(delta)).String()
			updates = append(updates, u)
		}
		if err := rows.Close(); err != nil {
			return err
		}
		if err := rows.Err(); err != nil {
			return err
		}

		for _, u := range updates {
			if _, err := tx.Exec(`UPDATE employees SET balance_due = ? WHERE driver_number = ?`,
				u.balance, u.driverNumber); err != nil {
				return err
			}
		}
		return nil
	})
}
