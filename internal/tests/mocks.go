package tests

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"rideshare/internal/domain"
	"rideshare/internal/events"
	"rideshare/internal/redis"
	"rideshare/internal/repository"
	"rideshare/internal/repository/memory"
)

// ──────────────────────────────────────────────
// FAULTY DRIVER REPOSITORY
// ──────────────────────────────────────────────

// FaultyDriverRepository is an in-memory driver store with call counters
// and error injection on the lookups RequestRide depends on.
type FaultyDriverRepository struct {
	*memory.Store[domain.Driver]

	// Counters for verification
	SearchFirstCallCount int32

	// Error injection
	SearchFirstError error
}

// NewFaultyDriverRepository creates a driver repository holding drivers in order.
func NewFaultyDriverRepository(drivers ...domain.Driver) *FaultyDriverRepository {
	store := memory.NewDriverStore()
	for _, d := range drivers {
		_ = store.Create(context.Background(), d)
	}
	return &FaultyDriverRepository{Store: store}
}

func (m *FaultyDriverRepository) SearchFirst(ctx context.Context, field, value string) (*domain.Driver, error) {
	atomic.AddInt32(&m.SearchFirstCallCount, 1)
	if m.SearchFirstError != nil {
		return nil, m.SearchFirstError
	}
	return m.Store.SearchFirst(ctx, field, value)
}

// ──────────────────────────────────────────────
// FAULTY RIDE REPOSITORY
// ──────────────────────────────────────────────

// FaultyRideRepository is an in-memory ride store with error injection on Create.
type FaultyRideRepository struct {
	*memory.Store[domain.Ride]

	CreateCallCount int32
	CreateError     error
}

// NewFaultyRideRepository creates an empty ride repository.
func NewFaultyRideRepository() *FaultyRideRepository {
	return &FaultyRideRepository{Store: memory.NewRideStore()}
}

func (m *FaultyRideRepository) Create(ctx context.Context, ride domain.Ride) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	return m.Store.Create(ctx, ride)
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is an in-process LockStoreInterface.
type MockLockStore struct {
	mu   sync.Mutex
	held map[string]string
	next int

	// Contended makes every acquire report the lock as held elsewhere.
	Contended bool

	AcquireCallCount int32
	ReleaseCallCount int32
	AcquireError     error
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{held: make(map[string]string)}
}

func (m *MockLockStore) AcquireStoreLock(ctx context.Context, store string, ttl time.Duration) (string, bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return "", false, m.AcquireError
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Contended {
		return "", false, nil
	}
	if _, ok := m.held[store]; ok {
		return "", false, nil
	}
	m.next++
	token := strconv.Itoa(m.next)
	m.held[store] = token
	return token, true, nil
}

func (m *MockLockStore) ReleaseStoreLock(ctx context.Context, store, token string) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.held[store] == token {
		delete(m.held, store)
	}
	return nil
}

// IsHeld reports whether the named store lock is currently held.
func (m *MockLockStore) IsHeld(store string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.held[store]
	return ok
}

// ──────────────────────────────────────────────
// RECORDING PUBLISHER
// ──────────────────────────────────────────────

// RecordingPublisher keeps every published event.
type RecordingPublisher struct {
	mu     sync.Mutex
	events []events.Event

	PublishError error
}

func (p *RecordingPublisher) Publish(ctx context.Context, event events.Event) error {
	if p.PublishError != nil {
		return p.PublishError
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *RecordingPublisher) Close() error { return nil }

// Types returns the types of the recorded events in publish order.
func (p *RecordingPublisher) Types() []events.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]events.Type, len(p.events))
	for i, e := range p.events {
		types[i] = e.Type
	}
	return types
}

// Ensure mocks implement interfaces.
var (
	_ repository.DriverRepository = (*FaultyDriverRepository)(nil)
	_ repository.RideRepository   = (*FaultyRideRepository)(nil)
	_ redis.LockStoreInterface    = (*MockLockStore)(nil)
	_ events.Publisher            = (*RecordingPublisher)(nil)
)
