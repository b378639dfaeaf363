package service

import (
	"context"

	"go.uber.org/zap"

	"rideshare/internal/domain"
	"rideshare/internal/observability"
	"rideshare/internal/repository"
)

// ProfileService handles caller profiles.
type ProfileService struct {
	profileRepo repository.ProfileRepository
	logger      *zap.Logger
}

// NewProfileService creates a new ProfileService.
func NewProfileService(profileRepo repository.ProfileRepository, logger *zap.Logger) *ProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{profileRepo: profileRepo, logger: logger}
}

// GetSelf returns the caller's own profile, or nil if they have none.
func (s *ProfileService) GetSelf(ctx context.Context, caller string) (*domain.Profile, error) {
	if caller == "" {
		return nil, ErrInvalidCaller
	}
	profile, err := s.profileRepo.Get(ctx, caller)
	observability.ObserveStoreOp("profiles", "get_self", err)
	return profile, err
}

// Get returns the profile currently published under name, or nil.
func (s *ProfileService) Get(ctx context.Context, name string) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByName(ctx, name)
	observability.ObserveStoreOp("profiles", "get", err)
	return profile, err
}

// Update stores the caller's profile and points its name at the caller.
func (s *ProfileService) Update(ctx context.Context, caller string, profile domain.Profile) error {
	if caller == "" {
		return ErrInvalidCaller
	}
	err := s.profileRepo.Put(ctx, caller, profile)
	observability.ObserveStoreOp("profiles", "update", err)
	if err != nil {
		s.logger.Warn("failed to update profile", zap.String("caller", caller), zap.Error(err))
		return err
	}
	return nil
}
