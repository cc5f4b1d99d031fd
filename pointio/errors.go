package pointio

import (
	"errors"
	"fmt"
)

var (
	// ErrFieldCount is returned when a record's field count differs from the
	// dimension of the first record.
	ErrFieldCount = errors.New("wrong number of fields")

	// ErrEmptyRecord is returned for a record without fields.
	ErrEmptyRecord = errors.New("empty record")

	// ErrNotFinite is returned for NaN or infinite coordinates.
	ErrNotFinite = errors.New("coordinate is not finite")

	// ErrDimensionMismatch is returned by CSVWriter for points whose length
	// differs from the first point written.
	ErrDimensionMismatch = errors.New("point dimension mismatch")
)

// ParseError reports a malformed input record.
//
// Field is the 1-based column, or 0 when the whole record is at fault.
type ParseError struct {
	Line  int
	Field int
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Field > 0 {
		return fmt.Sprintf("line %d, field %d (%q): %v", e.Line, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
