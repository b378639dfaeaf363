package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFieldName is returned when a field name is not part of a record kind.
	ErrInvalidFieldName = errors.New("invalid field name")

	// ErrFieldReadOnly is returned when assigning or clearing a derived field.
	ErrFieldReadOnly = errors.New("field is read-only")
)

// ParseError is returned when a string value cannot be converted to a field's typed form.
type ParseError struct {
	Field Field
	Value string
	Kind  string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse %s: invalid %s %q: %v", e.Field, e.Kind, e.Value, e.Err)
	}
	return fmt.Sprintf("parse %s: invalid %s %q", e.Field, e.Kind, e.Value)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
