package redis

import (
	"context"
	"time"
)

// LockStoreInterface defines the interface for distributed locking.
type LockStoreInterface interface {
	AcquireStoreLock(ctx context.Context, store string, ttl time.Duration) (string, bool, error)
	ReleaseStoreLock(ctx context.Context, store, token string) error
}

// Ensure concrete types implement interfaces.
var (
	_ LockStoreInterface = (*LockStore)(nil)
)
