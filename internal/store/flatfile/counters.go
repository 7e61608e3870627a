package flatfile

import (
	"fjacquet/taxi-ledger/internal/codec"
	"fjacquet/taxi-ledger/internal/models"
)

const countersEntity = "counters"

// CounterStore persists the singleton counter record as a single line.
type CounterStore struct {
	path string
}

// NewCounterStore creates a counter store backed by the given file.
func NewCounterStore(path string) *CounterStore {
	return &CounterStore{path: path}
}

// Load returns the persisted counters. An absent or unparsable file yields
// the built-in defaults, which are persisted before returning.
func (s *CounterStore) Load() (models.Counters, error) {
	lines, err := readLines(s.path)
	if err != nil {
		return models.Counters{}, err
	}

	if len(lines) > 0 {
		fields, ferr := codec.Fields(countersEntity, lines[0])
		if ferr == nil {
			// Legacy counter lines predate the last-billed-month field.
			if len(fields) == models.CountersFields-1 {
				fields = append(fields, "")
			}
			c, derr := codec.DecodeFields[models.Counters](countersEntity, fields, models.CountersFields)
			if derr == nil {
				return c, nil
			}
			log.WithError(derr).WithField("file", s.path).Warn("Counters record unparsable, restoring defaults")
		} else {
			log.WithError(ferr).WithField("file", s.path).Warn("Counters record unreadable, restoring defaults")
		}
	}

	defaults := models.DefaultCounters()
	if err := s.Save(defaults); err != nil {
		return models.Counters{}, err
	}
	return defaults, nil
}

// Save overwrites the counter record in full.
func (s *CounterStore) Save(c models.Counters) error {
	line, err := codec.EncodeLine(c)
	if err != nil {
		return err
	}
	return writeLines(s.path, []string{line})
}
