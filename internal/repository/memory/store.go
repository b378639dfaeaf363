// Package memory provides the in-process record stores. Every operation holds
// the store lock for its whole duration, so multi-step mutations such as
// ReplaceFirst are atomic with respect to concurrent callers.
package memory

import (
	"context"
	"sync"

	"rideshare/internal/domain"
	"rideshare/internal/repository"
)

// Store is an ordered, scan-based collection of one record kind. T must be a
// plain value type: records are copied in and out by assignment.
type Store[T any] struct {
	mu      sync.RWMutex
	records []T
	fields  domain.FieldTable[T]
}

// NewStore creates an empty store whose searches use fields.
func NewStore[T any](fields domain.FieldTable[T]) *Store[T] {
	return &Store[T]{fields: fields}
}

// Ensure the stores satisfy the repository contracts.
var (
	_ repository.RiderRepository  = (*Store[domain.Rider])(nil)
	_ repository.DriverRepository = (*Store[domain.Driver])(nil)
	_ repository.RideRepository   = (*Store[domain.Ride])(nil)
)

// NewRiderStore creates an empty rider store.
func NewRiderStore() *Store[domain.Rider] {
	return NewStore(domain.RiderFields)
}

// NewDriverStore creates an empty driver store.
func NewDriverStore() *Store[domain.Driver] {
	return NewStore(domain.DriverFields)
}

// NewRideStore creates an empty ride store.
func NewRideStore() *Store[domain.Ride] {
	return NewStore(domain.RideFields)
}

// Len returns the number of records held.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Create appends a record.
func (s *Store[T]) Create(ctx context.Context, rec T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

// GetAll returns a copy of every record in store order.
func (s *Store[T]) GetAll(ctx context.Context) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.records))
	copy(out, s.records)
	return out, nil
}

// SearchFirst returns the earliest matching record, or nil.
func (s *Store[T]) SearchFirst(ctx context.Context, field, value string) (*T, error) {
	if err := s.fields.Validate(field); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, err := s.indexOf(field, value)
	if err != nil || i < 0 {
		return nil, err
	}
	rec := s.records[i]
	return &rec, nil
}

// SearchAll returns every matching record in store order.
func (s *Store[T]) SearchAll(ctx context.Context, field, value string) ([]T, error) {
	if err := s.fields.Validate(field); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0)
	for _, rec := range s.records {
		ok, err := s.fields.Matches(rec, field, value)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

// UpdateField assigns value to field on every matching record.
func (s *Store[T]) UpdateField(ctx context.Context, matchField, matchValue, field, value string) (int, error) {
	if err := s.fields.Validate(field); err != nil {
		return 0, err
	}
	return s.UpdateWhere(ctx, matchField, matchValue, func(rec *T) error {
		return s.fields.Assign(rec, field, value)
	})
}

// ClearField resets field on every matching record.
func (s *Store[T]) ClearField(ctx context.Context, matchField, matchValue, field string) (int, error) {
	if err := s.fields.Validate(field); err != nil {
		return 0, err
	}
	return s.UpdateWhere(ctx, matchField, matchValue, func(rec *T) error {
		return s.fields.Reset(rec, field)
	})
}

// UpdateWhere applies fn to every matching record. The first error from fn
// aborts the call and leaves every record as it was before the call.
func (s *Store[T]) UpdateWhere(ctx context.Context, matchField, matchValue string, fn func(*T) error) (int, error) {
	if err := s.fields.Validate(matchField); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	type change struct {
		index int
		rec   T
	}
	var changes []change
	for i, rec := range s.records {
		ok, err := s.fields.Matches(rec, matchField, matchValue)
		if err != nil {
			return 0, err
		}
		if !ok {
			continue
		}
		updated := rec
		if err := fn(&updated); err != nil {
			return 0, err
		}
		changes = append(changes, change{index: i, rec: updated})
	}
	for _, c := range changes {
		s.records[c.index] = c.rec
	}
	return len(changes), nil
}

// ReplaceFirst removes the first matching record, if any, and appends rec.
func (s *Store[T]) ReplaceFirst(ctx context.Context, matchField, matchValue string, rec T) error {
	if err := s.fields.Validate(matchField); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i, err := s.indexOf(matchField, matchValue)
	if err != nil {
		return err
	}
	if i >= 0 {
		s.removeAt(i)
	}
	s.records = append(s.records, rec)
	return nil
}

// RemoveFirst removes the first matching record.
func (s *Store[T]) RemoveFirst(ctx context.Context, field, value string) (bool, error) {
	if err := s.fields.Validate(field); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i, err := s.indexOf(field, value)
	if err != nil || i < 0 {
		return false, err
	}
	s.removeAt(i)
	return true, nil
}

// indexOf returns the position of the first match or -1. Callers hold the lock.
func (s *Store[T]) indexOf(field, value string) (int, error) {
	for i, rec := range s.records {
		ok, err := s.fields.Matches(rec, field, value)
		if err != nil {
			return -1, err
		}
		if ok {
			return i, nil
		}
	}
	return -1, nil
}

func (s *Store[T]) removeAt(i int) {
	copy(s.records[i:], s.records[i+1:])
	var zero T
	s.records[len(s.records)-1] = zero
	s.records = s.records[:len(s.records)-1]
}
