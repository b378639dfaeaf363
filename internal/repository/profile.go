package repository

import (
	"context"

	"rideshare/internal/domain"
)

// ProfileRepository stores caller profiles keyed by principal, with a
// secondary index from profile name to the principal that last claimed it.
type ProfileRepository interface {
	// Get retrieves the profile of a principal.
	// Returns nil if the principal has no profile.
	Get(ctx context.Context, principal string) (*domain.Profile, error)

	// GetByName retrieves the profile currently indexed under name.
	// Returns nil if the name is unknown.
	GetByName(ctx context.Context, name string) (*domain.Profile, error)

	// Put stores the profile for principal and points its name at principal.
	Put(ctx context.Context, principal string, profile domain.Profile) error
}
