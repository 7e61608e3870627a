// Package codec serializes ledger entities to and from comma-delimited text
// lines, one entity per line, without headers. Fields are trimmed of
// surrounding whitespace on decode; a line with the wrong field count or an
// unparsable numeric or date field yields a DecodeError, and each store
// decides what to do with it.
package codec

import (
	"bytes"
	"encoding/csv"
	"strings"

	"fjacquet/taxi-ledger/internal/ledgererror"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// EncodeLine serializes a single entity to a comma-delimited line without a
// trailing newline.
func EncodeLine[T any](record T) (string, error) {
	var buf bytes.Buffer
	if err := gocsv.MarshalWithoutHeaders([]T{record}, &buf); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\r\n"), nil
}

// Fields splits a delimited line into its whitespace-trimmed fields.
func Fields(entity, line string) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.TrimLeadingSpace = true
	fields, err := r.Read()
	if err != nil {
		return nil, &ledgererror.DecodeError{Entity: entity, Line: line, Reason: "unreadable line", Err: err}
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields, nil
}

// DecodeFields decodes an already-split record into an entity. The field
// count must match arity exactly.
func DecodeFields[T any](entity string, fields []string, arity int) (T, error) {
	var zero T
	line := strings.Join(fields, ",")
	if len(fields) != arity {
		return zero, &ledgererror.DecodeError{
			Entity: entity,
			Line:   line,
			Reason: "wrong field count",
		}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(fields); err != nil {
		return zero, &ledgererror.DecodeError{Entity: entity, Line: line, Reason: "unwritable record", Err: err}
	}
	w.Flush()

	var out []T
	if err := gocsv.UnmarshalWithoutHeaders(&buf, &out); err != nil {
		return zero, &ledgererror.DecodeError{Entity: entity, Line: line, Reason: "unparsable field", Err: err}
	}
	if len(out) != 1 {
		return zero, &ledgererror.DecodeError{Entity: entity, Line: line, Reason: "no record decoded"}
	}
	return out[0], nil
}

// DecodeLine decodes a single delimited line into an entity.
func DecodeLine[T any](entity, line string, arity int) (T, error) {
	fields, err := Fields(entity, line)
	if err != nil {
		var zero T
		return zero, err
	}
	return DecodeFields[T](entity, fields, arity)
}
