package memory

import (
	"context"
	"sync"

	"rideshare/internal/domain"
	"rideshare/internal/repository"
)

var _ repository.ProfileRepository = (*ProfileStore)(nil)

// ProfileStore keeps caller profiles in process memory.
type ProfileStore struct {
	mu       sync.RWMutex
	profiles map[string]domain.Profile
	names    map[string]string
}

// NewProfileStore creates an empty ProfileStore.
func NewProfileStore() *ProfileStore {
	return &ProfileStore{
		profiles: make(map[string]domain.Profile),
		names:    make(map[string]string),
	}
}

// Get retrieves the profile of a principal.
func (s *ProfileStore) Get(ctx context.Context, principal string) (*domain.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[principal]
	if !ok {
		return nil, nil
	}
	p = p.Clone()
	return &p, nil
}

// GetByName retrieves the profile indexed under name.
func (s *ProfileStore) GetByName(ctx context.Context, name string) (*domain.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	principal, ok := s.names[name]
	if !ok {
		return nil, nil
	}
	p, ok := s.profiles[principal]
	if !ok {
		return nil, nil
	}
	p = p.Clone()
	return &p, nil
}

// Put stores the profile and re-points its name at principal.
func (s *ProfileStore) Put(ctx context.Context, principal string, profile domain.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.names[profile.Name] = principal
	s.profiles[principal] = profile.Clone()
	return nil
}
