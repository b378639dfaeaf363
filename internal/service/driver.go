package service

import (
	"context"
	"math"

	"go.uber.org/zap"

	"rideshare/internal/domain"
	"rideshare/internal/events"
	"rideshare/internal/repository"
)

// DriverService handles driver operations. Drivers are updated by name and
// replaced by address; they are never removed.
type DriverService struct {
	driverRepo repository.DriverRepository
	obs        observer
}

// NewDriverService creates a new DriverService.
func NewDriverService(driverRepo repository.DriverRepository, publisher events.Publisher, logger *zap.Logger) *DriverService {
	return &DriverService{
		driverRepo: driverRepo,
		obs:        newObserver("drivers", publisher, logger),
	}
}

// Register appends a driver.
func (s *DriverService) Register(ctx context.Context, driver domain.Driver) error {
	err := s.driverRepo.Create(ctx, driver)
	s.obs.observe("register", err)
	if err != nil {
		return err
	}
	s.obs.emit(ctx, events.DriverRegistered, driver.Name, driver)
	return nil
}

// List returns every driver in store order.
func (s *DriverService) List(ctx context.Context) ([]domain.Driver, error) {
	drivers, err := s.driverRepo.GetAll(ctx)
	s.obs.observe("list", err)
	return drivers, err
}

// Search returns every driver whose field renders as value.
func (s *DriverService) Search(ctx context.Context, field, value string) ([]domain.Driver, error) {
	drivers, err := s.driverRepo.SearchAll(ctx, field, value)
	s.obs.observe("search", err)
	return drivers, err
}

// Find returns the first driver whose field renders as value, or nil.
func (s *DriverService) Find(ctx context.Context, field, value string) (*domain.Driver, error) {
	driver, err := s.driverRepo.SearchFirst(ctx, field, value)
	s.obs.observe("find", err)
	return driver, err
}

// FindByName returns the first driver with the given name, or nil.
func (s *DriverService) FindByName(ctx context.Context, name string) (*domain.Driver, error) {
	return s.Find(ctx, string(domain.FieldName), name)
}

// FindByContact returns the first driver with the given contact, or nil.
func (s *DriverService) FindByContact(ctx context.Context, contact string) (*domain.Driver, error) {
	return s.Find(ctx, string(domain.FieldContact), contact)
}

// FindByAddress returns the first driver with the given address, or nil.
func (s *DriverService) FindByAddress(ctx context.Context, address string) (*domain.Driver, error) {
	return s.Find(ctx, string(domain.FieldAddress), address)
}

// UpdateRating sets the rating of every driver with the given name.
func (s *DriverService) UpdateRating(ctx context.Context, name string, rating float64) (int, error) {
	if math.IsNaN(rating) || math.IsInf(rating, 0) {
		return 0, ErrInvalidRating
	}

	n, err := s.driverRepo.UpdateWhere(ctx, string(domain.FieldName), name, func(d *domain.Driver) error {
		d.Rating = rating
		return nil
	})
	s.obs.observe("update_rating", err)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.obs.emit(ctx, events.DriverUpdated, name, map[string]any{"rating": rating})
	}
	return n, nil
}

// UpdateStatus sets the status of every driver with the given name.
func (s *DriverService) UpdateStatus(ctx context.Context, name string, status domain.CurrentStatus) (int, error) {
	n, err := s.driverRepo.UpdateWhere(ctx, string(domain.FieldName), name, func(d *domain.Driver) error {
		d.CurrentStatus = status
		return nil
	})
	s.obs.observe("update_status", err)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.obs.emit(ctx, events.DriverUpdated, name, map[string]any{"currentstatus": status.String()})
	}
	return n, nil
}

// UpdateField sets field on every driver with the given name.
func (s *DriverService) UpdateField(ctx context.Context, name, field, value string) (int, error) {
	n, err := s.driverRepo.UpdateField(ctx, string(domain.FieldName), name, field, value)
	s.obs.observe("update_field", err)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.obs.emit(ctx, events.DriverUpdated, name, map[string]any{"field": field, "value": value})
	}
	return n, nil
}

// ClearField resets field on every driver with the given name.
func (s *DriverService) ClearField(ctx context.Context, name, field string) (int, error) {
	n, err := s.driverRepo.ClearField(ctx, string(domain.FieldName), name, field)
	s.obs.observe("clear_field", err)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.obs.emit(ctx, events.DriverUpdated, name, map[string]any{"field": field})
	}
	return n, nil
}

// Replace removes the first driver with the given address and appends driver.
func (s *DriverService) Replace(ctx context.Context, address string, driver domain.Driver) error {
	err := s.driverRepo.ReplaceFirst(ctx, string(domain.FieldAddress), address, driver)
	s.obs.observe("replace", err)
	if err != nil {
		return err
	}
	s.obs.emit(ctx, events.DriverUpdated, driver.Name, driver)
	return nil
}
