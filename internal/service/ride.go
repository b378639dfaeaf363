package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"rideshare/internal/domain"
	"rideshare/internal/events"
	"rideshare/internal/observability"
	"rideshare/internal/redis"
	"rideshare/internal/repository"
)

const (
	rideStoreLockName = "rides"
	defaultLockTTL    = 5 * time.Second
)

// RideService handles ride operations. Rides are addressed by ride id, which
// rides created through RequestRide leave empty.
type RideService struct {
	rideRepo   repository.RideRepository
	driverRepo repository.DriverRepository
	lockStore  redis.LockStoreInterface
	lockTTL    time.Duration
	obs        observer

	// requestMu serializes the driver read and ride insert of RequestRide
	// within this process; lockStore extends that across instances.
	requestMu sync.Mutex
}

// RideServiceOption configures a RideService.
type RideServiceOption func(*RideService)

// WithLockStore makes RequestRide hold a distributed lock around its
// read-then-insert. A nil store leaves only the in-process lock.
func WithLockStore(store redis.LockStoreInterface, ttl time.Duration) RideServiceOption {
	return func(s *RideService) {
		s.lockStore = store
		if ttl > 0 {
			s.lockTTL = ttl
		}
	}
}

// NewRideService creates a new RideService.
func NewRideService(
	rideRepo repository.RideRepository,
	driverRepo repository.DriverRepository,
	publisher events.Publisher,
	logger *zap.Logger,
	opts ...RideServiceOption,
) *RideService {
	s := &RideService{
		rideRepo:   rideRepo,
		driverRepo: driverRepo,
		lockTTL:    defaultLockTTL,
		obs:        newObserver("rides", publisher, logger),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RequestRideRequest contains the parameters for requesting a ride.
type RequestRideRequest struct {
	Rider     domain.Rider
	Pickup    string
	Dropoff   string
	Timestamp string
}

// RequestRide assigns the first Active driver, in store order, to a new ride
// for the rider and appends it to the ride store. If no driver is Active the
// ride store is left unchanged and ErrNoAvailableDriver is returned.
func (s *RideService) RequestRide(ctx context.Context, req RequestRideRequest) (*domain.Ride, error) {
	ride, err := s.requestRide(ctx, req)
	observability.RideRequestsTotal.WithLabelValues(requestOutcome(err)).Inc()
	s.obs.observe("request", err)
	if err != nil {
		return nil, err
	}

	s.obs.logger.Info("ride requested",
		zap.String("rider", ride.Rider.Name),
		zap.String("driver", ride.Driver.Name),
		zap.String("pickup", ride.Pickup),
		zap.String("dropoff", ride.Dropoff),
	)
	s.obs.emit(ctx, events.RideRequested, ride.RideID, ride)
	return ride, nil
}

func (s *RideService) requestRide(ctx context.Context, req RequestRideRequest) (*domain.Ride, error) {
	s.requestMu.Lock()
	defer s.requestMu.Unlock()

	if s.lockStore != nil {
		token, ok, err := s.lockStore.AcquireStoreLock(ctx, rideStoreLockName, s.lockTTL)
		if err != nil {
			return nil, fmt.Errorf("acquire ride store lock: %w", err)
		}
		if !ok {
			return nil, ErrStoreBusy
		}
		defer func() {
			// The lock expires on its own if this release fails.
			if err := s.lockStore.ReleaseStoreLock(context.WithoutCancel(ctx), rideStoreLockName, token); err != nil {
				s.obs.logger.Warn("failed to release ride store lock", zap.Error(err))
			}
		}()
	}

	driver, err := s.driverRepo.SearchFirst(ctx, string(domain.FieldCurrentStatus), domain.CurrentStatusActive.String())
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, ErrNoAvailableDriver
	}

	ride := domain.NewRequestedRide(*driver, req.Rider, req.Pickup, req.Dropoff, req.Timestamp)
	if err := s.rideRepo.Create(ctx, ride); err != nil {
		return nil, err
	}
	return &ride, nil
}

func requestOutcome(err error) string {
	switch {
	case err == nil:
		return "assigned"
	case errors.Is(err, ErrNoAvailableDriver):
		return "no_driver"
	case errors.Is(err, ErrStoreBusy):
		return "busy"
	default:
		return "error"
	}
}

// Register appends a ride as given.
func (s *RideService) Register(ctx context.Context, ride domain.Ride) error {
	err := s.rideRepo.Create(ctx, ride)
	s.obs.observe("register", err)
	if err != nil {
		return err
	}
	s.obs.emit(ctx, events.RideRegistered, ride.RideID, ride)
	return nil
}

// List returns every ride in store order.
func (s *RideService) List(ctx context.Context) ([]domain.Ride, error) {
	rides, err := s.rideRepo.GetAll(ctx)
	s.obs.observe("list", err)
	return rides, err
}

// Search returns every ride whose field renders as value.
func (s *RideService) Search(ctx context.Context, field, value string) ([]domain.Ride, error) {
	rides, err := s.rideRepo.SearchAll(ctx, field, value)
	s.obs.observe("search", err)
	return rides, err
}

// Find returns the first ride whose field renders as value, or nil.
func (s *RideService) Find(ctx context.Context, field, value string) (*domain.Ride, error) {
	ride, err := s.rideRepo.SearchFirst(ctx, field, value)
	s.obs.observe("find", err)
	return ride, err
}

// FindByID returns the first ride with the given ride id, or nil.
func (s *RideService) FindByID(ctx context.Context, rideID string) (*domain.Ride, error) {
	return s.Find(ctx, string(domain.FieldRideID), rideID)
}

// UpdateField sets field on every ride with the given ride id.
func (s *RideService) UpdateField(ctx context.Context, rideID, field, value string) (int, error) {
	n, err := s.rideRepo.UpdateField(ctx, string(domain.FieldRideID), rideID, field, value)
	s.obs.observe("update_field", err)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.obs.emit(ctx, events.RideUpdated, rideID, map[string]string{"field": field, "value": value})
	}
	return n, nil
}

// ClearField resets field on every ride with the given ride id.
func (s *RideService) ClearField(ctx context.Context, rideID, field string) (int, error) {
	n, err := s.rideRepo.ClearField(ctx, string(domain.FieldRideID), rideID, field)
	s.obs.observe("clear_field", err)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.obs.emit(ctx, events.RideUpdated, rideID, map[string]string{"field": field})
	}
	return n, nil
}

// UpdateDriverForRide swaps the driver snapshot on every ride with the given ride id.
func (s *RideService) UpdateDriverForRide(ctx context.Context, rideID string, driver domain.Driver) (int, error) {
	n, err := s.rideRepo.UpdateWhere(ctx, string(domain.FieldRideID), rideID, func(r *domain.Ride) error {
		r.Driver = driver
		return nil
	})
	s.obs.observe("update_driver", err)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.obs.emit(ctx, events.RideUpdated, rideID, map[string]any{"driver": driver})
	}
	return n, nil
}

// UpdateRiderForRide swaps the rider snapshot on every ride with the given ride id.
func (s *RideService) UpdateRiderForRide(ctx context.Context, rideID string, rider domain.Rider) (int, error) {
	n, err := s.rideRepo.UpdateWhere(ctx, string(domain.FieldRideID), rideID, func(r *domain.Ride) error {
		r.Rider = rider
		return nil
	})
	s.obs.observe("update_rider", err)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.obs.emit(ctx, events.RideUpdated, rideID, map[string]any{"rider": rider})
	}
	return n, nil
}

// Replace removes the first ride with the given ride id and appends ride.
func (s *RideService) Replace(ctx context.Context, rideID string, ride domain.Ride) error {
	err := s.rideRepo.ReplaceFirst(ctx, string(domain.FieldRideID), rideID, ride)
	s.obs.observe("replace", err)
	if err != nil {
		return err
	}
	s.obs.emit(ctx, events.RideUpdated, rideID, ride)
	return nil
}

// Remove deletes the first ride with the given ride id.
func (s *RideService) Remove(ctx context.Context, rideID string) (bool, error) {
	removed, err := s.rideRepo.RemoveFirst(ctx, string(domain.FieldRideID), rideID)
	s.obs.observe("remove", err)
	if err != nil {
		return false, err
	}
	if removed {
		s.obs.emit(ctx, events.RideRemoved, rideID, nil)
	}
	return removed, nil
}
