package repository

import "context"

// RecordRepository defines the scan-based operations over an ordered
// collection of one record kind. Order is insertion order, except that
// ReplaceFirst moves the new record to the end.
//
// Field names are the wire names of the record kind. An unknown field name
// yields domain.ErrInvalidFieldName; a search that matches nothing is not an error.
type RecordRepository[T any] interface {
	// Create appends a record. No validation or duplicate check is made.
	Create(ctx context.Context, rec T) error

	// GetAll returns a copy of every record in store order.
	GetAll(ctx context.Context) ([]T, error)

	// SearchFirst returns the earliest record whose field renders as value.
	// Returns nil if no record matches.
	SearchFirst(ctx context.Context, field, value string) (*T, error)

	// SearchAll returns every record whose field renders as value, in store order.
	SearchAll(ctx context.Context, field, value string) ([]T, error)

	// UpdateField assigns value to field on every record matching
	// matchField == matchValue and returns how many were updated.
	UpdateField(ctx context.Context, matchField, matchValue, field, value string) (int, error)

	// ClearField resets field to its zero value on every matching record.
	ClearField(ctx context.Context, matchField, matchValue, field string) (int, error)

	// UpdateWhere applies fn to every matching record in place.
	UpdateWhere(ctx context.Context, matchField, matchValue string, fn func(*T) error) (int, error)

	// ReplaceFirst removes the first matching record, if any, then appends rec.
	ReplaceFirst(ctx context.Context, matchField, matchValue string, rec T) error

	// RemoveFirst removes the first matching record. It reports whether a
	// record was removed.
	RemoveFirst(ctx context.Context, field, value string) (bool, error)
}
