package flatfile

import (
	"fjacquet/taxi-ledger/internal/codec"
	"fjacquet/taxi-ledger/internal/ledgererror"
	"fjacquet/taxi-ledger/internal/models"

	"github.com/shopspring/decimal"
)

const employeeEntity = "employee"

// EmployeeStore persists driver records, one per line, in insertion order.
// Malformed lines are excluded from reads and adjustments but preserved
// byte-for-byte across rewrites so a rewrite never loses data.
type EmployeeStore struct {
	path string
}

// NewEmployeeStore creates an employee store backed by the given file.
func NewEmployeeStore(path string) *EmployeeStore {
	return &EmployeeStore{path: path}
}

// employeeEntry pairs a raw line with its decoded record; rec is nil when
// the line is malformed.
type employeeEntry struct {
	raw string
	rec *models.EmployeeRecord
}

func (s *EmployeeStore) load() ([]employeeEntry, error) {
	lines, err := readLines(s.path)
	if err != nil {
		return nil, err
	}

	entries := make([]employeeEntry, 0, len(lines))
	for _, line := range lines {
		rec, derr := codec.DecodeLine[models.EmployeeRecord](employeeEntity, line, models.EmployeeRecordFields)
		if derr != nil {
			log.WithError(derr).WithField("file", s.path).Warn("Skipping malformed employee record")
			entries = append(entries, employeeEntry{raw: line})
			continue
		}
		entries = append(entries, employeeEntry{raw: line, rec: &rec})
	}
	return entries, nil
}

func (s *EmployeeStore) rewrite(entries []employeeEntry) error {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.rec == nil {
			lines = append(lines, e.raw)
			continue
		}
		line, err := codec.EncodeLine(*e.rec)
		if err != nil {
			return err
		}
		lines = append(lines, line)
	}
	return writeLines(s.path, lines)
}

// Append adds a new driver record with the balance forced to zero.
func (s *EmployeeStore) Append(rec models.EmployeeRecord) error {
	rec.BalanceDue = models.ZeroBalance()
	line, err := codec.EncodeLine(rec)
	if err != nil {
		return err
	}
	return appendLine(s.path, line)
}

// All returns the well-formed driver records in file order.
func (s *EmployeeStore) All() ([]models.EmployeeRecord, error) {
	entries, err := s.load()
	if err != nil {
		return nil, err
	}

	records := make([]models.EmployeeRecord, 0, len(entries))
	for _, e := range entries {
		if e.rec != nil {
			records = append(records, *e.rec)
		}
	}
	return records, nil
}

// Exists reports whether a driver number is present in the store.
func (s *EmployeeStore) Exists(driverNumber int) (bool, error) {
	records, err := s.All()
	if err != nil {
		return false, err
	}
	for _, rec := range records {
		if rec.DriverNumber == driverNumber {
			return true, nil
		}
	}
	return false, nil
}

// Find returns the record for a driver number.
func (s *EmployeeStore) Find(driverNumber int) (*models.EmployeeRecord, error) {
	records, err := s.All()
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].DriverNumber == driverNumber {
			return &records[i], nil
		}
	}
	return nil, &ledgererror.NotFoundError{Entity: "driver", Key: driverNumber}
}

// AdjustBalance adds delta to one driver's balance and rewrites the store,
// preserving the order and contents of every other record.
func (s *EmployeeStore) AdjustBalance(driverNumber int, delta decimal.Decimal) error {
	entries, err := s.load()
	if err != nil {
		return err
	}

	found := false
	for _, e := range entries {
		if e.rec != nil && e.rec.DriverNumber == driverNumber {
			e.rec.BalanceDue = models.RoundCurrency(e.rec.BalanceDue.Add(delta))
			found = true
			break
		}
	}
	if !found {
		return &ledgererror.NotFoundError{Entity: "driver", Key: driverNumber}
	}

	return s.rewrite(entries)
}

// AdjustAllBalances adds delta to every driver's balance in one pass.
func (s *EmployeeStore) AdjustAllBalances(delta decimal.Decimal) error {
	entries, err := s.load()
	if err != nil {
		return err
	}

	for _, e := range entries {
		if e.rec != nil {
			e.rec.BalanceDue = models.RoundCurrency(e.rec.BalanceDue.Add(delta))
		}
	}

	return s.rewrite(entries)
}
