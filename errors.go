package activitystats

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingRequiredField reports a required column absent from the source
	// or a required value absent from a row.
	ErrMissingRequiredField = errors.New("missing required field")
	// ErrUnparseableValue reports a value that could not be coerced to its type.
	ErrUnparseableValue = errors.New("unparseable value")
	// ErrNoUsableTime reports a source in which no row has a usable time.
	ErrNoUsableTime = errors.New("no row has a usable time field")
)

// FieldError ties a row-level failure to a row and field.
type FieldError struct {
	Row   int
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("row %d: %s: %v", e.Row, e.Field, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// SchemaError reports required columns missing from the whole source.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%v: %s", ErrMissingRequiredField, strings.Join(e.Missing, ", "))
}

func (e *SchemaError) Unwrap() error { return ErrMissingRequiredField }
