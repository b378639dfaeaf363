package tests

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"

	"rideshare/internal/domain"
	"rideshare/internal/events"
	"rideshare/internal/service"
)

// ──────────────────────────────────────────────
// 1. RIDE REQUEST ASSIGNMENT
// ──────────────────────────────────────────────

func TestRequestRide_AssignsActiveDriver(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	driverRepo := NewFaultyDriverRepository(domain.Driver{Name: "B", CurrentStatus: domain.CurrentStatusActive})
	rideRepo := NewFaultyRideRepository()
	publisher := &RecordingPublisher{}
	rideService := service.NewRideService(rideRepo, driverRepo, publisher, zap.NewNop())

	ride, err := rideService.RequestRide(ctx, service.RequestRideRequest{
		Rider:     domain.Rider{Name: "A"},
		Pickup:    "X",
		Dropoff:   "Y",
		Timestamp: "t",
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if ride.Rider.Name != "A" {
		t.Errorf("expected rider A, got %q", ride.Rider.Name)
	}
	if ride.Driver.Name != "B" {
		t.Errorf("expected driver B, got %q", ride.Driver.Name)
	}
	if ride.Status.String() != "Active" {
		t.Errorf("expected status Active, got %s", ride.Status)
	}
	if ride.RideID != "" {
		t.Errorf("expected empty ride id, got %q", ride.RideID)
	}
	if ride.Pickup != "X" || ride.Dropoff != "Y" || ride.Timestamp != "t" {
		t.Errorf("unexpected trip endpoints %+v", ride)
	}
	if ride.Rating != 0 || ride.DriverRating != 0 || ride.RiderRating != 0 {
		t.Errorf("expected zero ratings, got %v/%v/%v", ride.Rating, ride.DriverRating, ride.RiderRating)
	}
	if ride.DriverFeedback != "" || ride.RiderFeedback != "" || ride.RiderConfirmation != "" || ride.DriverConfirmation != "" {
		t.Errorf("expected empty feedback and confirmations, got %+v", ride)
	}

	stored, _ := rideRepo.GetAll(ctx)
	if len(stored) != 1 {
		t.Fatalf("expected 1 stored ride, got %d", len(stored))
	}
	if stored[0] != *ride {
		t.Errorf("expected stored ride %+v, got %+v", *ride, stored[0])
	}

	if types := publisher.Types(); len(types) != 1 || types[0] != events.RideRequested {
		t.Errorf("expected one ride.requested event, got %v", types)
	}
}

func TestRequestRide_SkipsInactiveDrivers(t *testing.T) {
	t.Parallel()

	driverRepo := NewFaultyDriverRepository(
		domain.Driver{Name: "sleepy", CurrentStatus: domain.CurrentStatusInactive},
		domain.Driver{Name: "unset"},
		domain.Driver{Name: "ready", CurrentStatus: domain.CurrentStatusActive},
		domain.Driver{Name: "later", CurrentStatus: domain.CurrentStatusActive},
	)
	rideService := service.NewRideService(NewFaultyRideRepository(), driverRepo, nil, nil)

	ride, err := rideService.RequestRide(context.Background(), service.RequestRideRequest{Rider: domain.Rider{Name: "A"}})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if ride.Driver.Name != "ready" {
		t.Errorf("expected first active driver 'ready', got %q", ride.Driver.Name)
	}
}

func TestRequestRide_NoActiveDriver_LeavesRidesUnchanged(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	driverRepo := NewFaultyDriverRepository(domain.Driver{Name: "B", CurrentStatus: domain.CurrentStatusInactive})
	rideRepo := NewFaultyRideRepository()
	_ = rideRepo.Create(ctx, domain.Ride{RideID: "existing"})
	publisher := &RecordingPublisher{}
	lockStore := NewMockLockStore()
	rideService := service.NewRideService(rideRepo, driverRepo, publisher, zap.NewNop(), service.WithLockStore(lockStore, 0))

	ride, err := rideService.RequestRide(ctx, service.RequestRideRequest{Rider: domain.Rider{Name: "A"}})

	if !errors.Is(err, service.ErrNoAvailableDriver) {
		t.Fatalf("expected ErrNoAvailableDriver, got: %v", err)
	}
	if ride != nil {
		t.Errorf("expected no ride, got %+v", ride)
	}
	if rideRepo.Len() != 1 {
		t.Errorf("expected ride store unchanged at 1 record, got %d", rideRepo.Len())
	}
	if len(publisher.Types()) != 0 {
		t.Errorf("expected no events, got %v", publisher.Types())
	}
	if lockStore.IsHeld("rides") {
		t.Error("expected ride store lock to be released")
	}
}

func TestRequestRide_EmptyDriverStore(t *testing.T) {
	t.Parallel()

	rideService := service.NewRideService(NewFaultyRideRepository(), NewFaultyDriverRepository(), nil, nil)

	_, err := rideService.RequestRide(context.Background(), service.RequestRideRequest{})
	if !errors.Is(err, service.ErrNoAvailableDriver) {
		t.Errorf("expected ErrNoAvailableDriver, got: %v", err)
	}
}

// ──────────────────────────────────────────────
// 2. SNAPSHOT SEMANTICS
// ──────────────────────────────────────────────

func TestRequestRide_DriverSnapshotIsDetached(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	driverRepo := NewFaultyDriverRepository(domain.Driver{Name: "B", Rating: 3, CurrentStatus: domain.CurrentStatusActive})
	rideRepo := NewFaultyRideRepository()
	driverService := service.NewDriverService(driverRepo, nil, nil)
	rideService := service.NewRideService(rideRepo, driverRepo, nil, nil)

	if _, err := rideService.RequestRide(ctx, service.RequestRideRequest{Rider: domain.Rider{Name: "A"}}); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if _, err := driverService.UpdateRating(ctx, "B", 5); err != nil {
		t.Fatalf("update rating: %v", err)
	}
	if _, err := driverService.UpdateStatus(ctx, "B", domain.CurrentStatusInactive); err != nil {
		t.Fatalf("update status: %v", err)
	}

	rides, _ := rideRepo.GetAll(ctx)
	if rides[0].Driver.Rating != 3 || rides[0].Driver.CurrentStatus != domain.CurrentStatusActive {
		t.Errorf("expected ride snapshot to keep rating 3 and Active, got %+v", rides[0].Driver)
	}
}

func TestUpdateDriverForRide_SwapsSnapshotOnEveryMatch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	driverRepo := NewFaultyDriverRepository(domain.Driver{Name: "B", CurrentStatus: domain.CurrentStatusActive})
	rideRepo := NewFaultyRideRepository()
	rideService := service.NewRideService(rideRepo, driverRepo, nil, nil)

	for i := 0; i < 2; i++ {
		if _, err := rideService.RequestRide(ctx, service.RequestRideRequest{Rider: domain.Rider{Name: "A"}}); err != nil {
			t.Fatalf("request %d: %v", i, err)
		}
	}
	_ = rideService.Register(ctx, domain.Ride{RideID: "other", Driver: domain.Driver{Name: "B"}})

	// Rides from the request flow all carry an empty ride id.
	n, err := rideService.UpdateDriverForRide(ctx, "", domain.Driver{Name: "C"})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 rides updated, got %d", n)
	}

	rides, _ := rideRepo.GetAll(ctx)
	for _, r := range rides {
		want := "C"
		if r.RideID == "other" {
			want = "B"
		}
		if r.Driver.Name != want {
			t.Errorf("ride %q: expected driver %s, got %s", r.RideID, want, r.Driver.Name)
		}
	}

	n, err = rideService.UpdateRiderForRide(ctx, "other", domain.Rider{Name: "Z"})
	if err != nil || n != 1 {
		t.Fatalf("expected 1 rider swap, got %d (%v)", n, err)
	}
	found, _ := rideService.FindByID(ctx, "other")
	if found == nil || found.Rider.Name != "Z" {
		t.Errorf("expected rider Z on ride other, got %+v", found)
	}
}

// ──────────────────────────────────────────────
// 3. LOCKING AND CONCURRENCY
// ──────────────────────────────────────────────

func TestRequestRide_LockContention_ReturnsStoreBusy(t *testing.T) {
	t.Parallel()

	driverRepo := NewFaultyDriverRepository(domain.Driver{Name: "B", CurrentStatus: domain.CurrentStatusActive})
	rideRepo := NewFaultyRideRepository()
	lockStore := NewMockLockStore()
	lockStore.Contended = true
	rideService := service.NewRideService(rideRepo, driverRepo, nil, nil, service.WithLockStore(lockStore, 0))

	_, err := rideService.RequestRide(context.Background(), service.RequestRideRequest{})

	if !errors.Is(err, service.ErrStoreBusy) {
		t.Fatalf("expected ErrStoreBusy, got: %v", err)
	}
	if driverRepo.SearchFirstCallCount != 0 {
		t.Errorf("expected no driver lookup without the lock, got %d", driverRepo.SearchFirstCallCount)
	}
	if rideRepo.Len() != 0 {
		t.Errorf("expected no rides, got %d", rideRepo.Len())
	}
}

func TestRequestRide_LockErrorIsWrapped(t *testing.T) {
	t.Parallel()

	lockErr := errors.New("redis down")
	lockStore := NewMockLockStore()
	lockStore.AcquireError = lockErr
	rideService := service.NewRideService(NewFaultyRideRepository(), NewFaultyDriverRepository(), nil, nil, service.WithLockStore(lockStore, 0))

	_, err := rideService.RequestRide(context.Background(), service.RequestRideRequest{})
	if !errors.Is(err, lockErr) {
		t.Errorf("expected wrapped lock error, got: %v", err)
	}
}

func TestRequestRide_ReleasesLockAfterSuccess(t *testing.T) {
	t.Parallel()

	lockStore := NewMockLockStore()
	driverRepo := NewFaultyDriverRepository(domain.Driver{Name: "B", CurrentStatus: domain.CurrentStatusActive})
	rideService := service.NewRideService(NewFaultyRideRepository(), driverRepo, nil, nil, service.WithLockStore(lockStore, 0))

	for i := 0; i < 3; i++ {
		if _, err := rideService.RequestRide(context.Background(), service.RequestRideRequest{}); err != nil {
			t.Fatalf("request %d: %v", i, err)
		}
	}

	if lockStore.AcquireCallCount != 3 || lockStore.ReleaseCallCount != 3 {
		t.Errorf("expected 3 acquires and releases, got %d/%d", lockStore.AcquireCallCount, lockStore.ReleaseCallCount)
	}
	if lockStore.IsHeld("rides") {
		t.Error("expected lock to be released")
	}
}

func TestRequestRide_ConcurrentRequests(t *testing.T) {
	t.Parallel()

	const n = 50
	driverRepo := NewFaultyDriverRepository(domain.Driver{Name: "B", CurrentStatus: domain.CurrentStatusActive})
	rideRepo := NewFaultyRideRepository()
	rideService := service.NewRideService(rideRepo, driverRepo, nil, nil, service.WithLockStore(NewMockLockStore(), 0))

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := rideService.RequestRide(context.Background(), service.RequestRideRequest{Rider: domain.Rider{Name: "A"}}); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("unexpected error: %v", err)
	}
	if rideRepo.Len() != n {
		t.Errorf("expected %d rides, got %d", n, rideRepo.Len())
	}
}

// ──────────────────────────────────────────────
// 4. FAILURE PROPAGATION
// ──────────────────────────────────────────────

func TestRequestRide_DriverLookupError(t *testing.T) {
	t.Parallel()

	lookupErr := errors.New("driver store unavailable")
	driverRepo := NewFaultyDriverRepository(domain.Driver{Name: "B", CurrentStatus: domain.CurrentStatusActive})
	driverRepo.SearchFirstError = lookupErr
	rideRepo := NewFaultyRideRepository()
	rideService := service.NewRideService(rideRepo, driverRepo, nil, nil)

	_, err := rideService.RequestRide(context.Background(), service.RequestRideRequest{})

	if !errors.Is(err, lookupErr) {
		t.Errorf("expected lookup error, got: %v", err)
	}
	if rideRepo.CreateCallCount != 0 {
		t.Errorf("expected no ride insert, got %d", rideRepo.CreateCallCount)
	}
}

func TestRequestRide_InsertErrorPublishesNothing(t *testing.T) {
	t.Parallel()

	insertErr := errors.New("insert failed")
	rideRepo := NewFaultyRideRepository()
	rideRepo.CreateError = insertErr
	publisher := &RecordingPublisher{}
	driverRepo := NewFaultyDriverRepository(domain.Driver{Name: "B", CurrentStatus: domain.CurrentStatusActive})
	rideService := service.NewRideService(rideRepo, driverRepo, publisher, nil)

	_, err := rideService.RequestRide(context.Background(), service.RequestRideRequest{})

	if !errors.Is(err, insertErr) {
		t.Errorf("expected insert error, got: %v", err)
	}
	if len(publisher.Types()) != 0 {
		t.Errorf("expected no events, got %v", publisher.Types())
	}
}

func TestRequestRide_PublishFailureDoesNotFailRequest(t *testing.T) {
	t.Parallel()

	publisher := &RecordingPublisher{PublishError: errors.New("broker down")}
	driverRepo := NewFaultyDriverRepository(domain.Driver{Name: "B", CurrentStatus: domain.CurrentStatusActive})
	rideRepo := NewFaultyRideRepository()
	rideService := service.NewRideService(rideRepo, driverRepo, publisher, zap.NewNop())

	if _, err := rideService.RequestRide(context.Background(), service.RequestRideRequest{}); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if rideRepo.Len() != 1 {
		t.Errorf("expected ride to be stored, got %d", rideRepo.Len())
	}
}
