package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock only while it still holds the caller's token,
// so an expired lock re-acquired by another instance is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// LockStore handles distributed locking of record stores in Redis.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

func storeLockKey(store string) string {
	return fmt.Sprintf("lock:store:%s", store)
}

// AcquireStoreLock attempts to acquire the lock for the named store.
// It returns the token that must be passed to ReleaseStoreLock, and false
// if the lock is already held elsewhere.
func (s *LockStore) AcquireStoreLock(ctx context.Context, store string, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()

	ok, err := s.client.SetNX(ctx, storeLockKey(store), token, ttl).Result()
	if err != nil {
		return "", false, err
	}
	if !ok {
		return "", false, nil
	}

	return token, true, nil
}

// ReleaseStoreLock releases the lock for the named store if token still owns it.
func (s *LockStore) ReleaseStoreLock(ctx context.Context, store, token string) error {
	return releaseScript.Run(ctx, s.client, []string{storeLockKey(store)}, token).Err()
}
