package service

import (
	"context"

	"go.uber.org/zap"

	"rideshare/internal/domain"
	"rideshare/internal/events"
	"rideshare/internal/repository"
)

// RiderService handles rider operations. Riders are addressed by address.
type RiderService struct {
	riderRepo repository.RiderRepository
	obs       observer
}

// NewRiderService creates a new RiderService.
func NewRiderService(riderRepo repository.RiderRepository, publisher events.Publisher, logger *zap.Logger) *RiderService {
	return &RiderService{
		riderRepo: riderRepo,
		obs:       newObserver("riders", publisher, logger),
	}
}

// Register appends a rider.
func (s *RiderService) Register(ctx context.Context, rider domain.Rider) error {
	err := s.riderRepo.Create(ctx, rider)
	s.obs.observe("register", err)
	if err != nil {
		return err
	}
	s.obs.emit(ctx, events.RiderRegistered, rider.Address, rider)
	return nil
}

// List returns every rider in store order.
func (s *RiderService) List(ctx context.Context) ([]domain.Rider, error) {
	riders, err := s.riderRepo.GetAll(ctx)
	s.obs.observe("list", err)
	return riders, err
}

// Search returns every rider whose field renders as value.
func (s *RiderService) Search(ctx context.Context, field, value string) ([]domain.Rider, error) {
	riders, err := s.riderRepo.SearchAll(ctx, field, value)
	s.obs.observe("search", err)
	return riders, err
}

// Find returns the first rider whose field renders as value, or nil.
func (s *RiderService) Find(ctx context.Context, field, value string) (*domain.Rider, error) {
	rider, err := s.riderRepo.SearchFirst(ctx, field, value)
	s.obs.observe("find", err)
	return rider, err
}

// FindByAddress returns the first rider with the given address, or nil.
func (s *RiderService) FindByAddress(ctx context.Context, address string) (*domain.Rider, error) {
	return s.Find(ctx, string(domain.FieldAddress), address)
}

// UpdateField sets field on every rider with the given address.
func (s *RiderService) UpdateField(ctx context.Context, address, field, value string) (int, error) {
	n, err := s.riderRepo.UpdateField(ctx, string(domain.FieldAddress), address, field, value)
	s.obs.observe("update_field", err)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.obs.emit(ctx, events.RiderUpdated, address, map[string]string{"field": field, "value": value})
	}
	return n, nil
}

// ClearField resets field on every rider with the given address.
func (s *RiderService) ClearField(ctx context.Context, address, field string) (int, error) {
	n, err := s.riderRepo.ClearField(ctx, string(domain.FieldAddress), address, field)
	s.obs.observe("clear_field", err)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.obs.emit(ctx, events.RiderUpdated, address, map[string]string{"field": field})
	}
	return n, nil
}

// Replace removes the first rider with the given address and appends rider.
func (s *RiderService) Replace(ctx context.Context, address string, rider domain.Rider) error {
	err := s.riderRepo.ReplaceFirst(ctx, string(domain.FieldAddress), address, rider)
	s.obs.observe("replace", err)
	if err != nil {
		return err
	}
	s.obs.emit(ctx, events.RiderUpdated, address, rider)
	return nil
}

// Remove deletes the first rider with the given address.
func (s *RiderService) Remove(ctx context.Context, address string) (bool, error) {
	removed, err := s.riderRepo.RemoveFirst(ctx, string(domain.FieldAddress), address)
	s.obs.observe("remove", err)
	if err != nil {
		return false, err
	}
	if removed {
		s.obs.emit(ctx, events.RiderRemoved, address, nil)
	}
	return removed, nil
}
