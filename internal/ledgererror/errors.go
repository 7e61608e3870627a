// Package ledgererror defines the typed errors shared by the stores and the
// billing and reporting engines.
package ledgererror

import "fmt"

// DecodeError reports a persisted line that could not be decoded into an
// entity: wrong field count, or an unparsable numeric or date field.
type DecodeError struct {
	Entity string
	Line   string
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: failed to decode record %q: %s: %v", e.Entity, e.Line, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: failed to decode record %q: %s", e.Entity, e.Line, e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ValidationError reports a field value that violates the input contract.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// NotFoundError reports a reference to an entity that does not exist, such
// as a rental or payment against an unknown driver number.
type NotFoundError struct {
	Entity string
	Key    int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d does not exist", e.Entity, e.Key)
}
