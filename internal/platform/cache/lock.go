package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Locker provides short-TTL advisory locks via SETNX. It is a fast-path
// guard only; callers must still rely on a store-level invariant.
type Locker struct {
	client *redis.Client
}

// NewLocker constructs a Locker.
func NewLocker(client *redis.Client) *Locker {
	return &Locker{client: client}
}

// TryLock acquires the key for ttl. Returns false when already held.
func (l *Locker) TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if l == nil || l.client == nil {
		return true, nil
	}
	return l.client.SetNX(ctx, key, "1", ttl).Result()
}

// Unlock releases the key early.
func (l *Locker) Unlock(ctx context.Context, key string) {
	if l == nil || l.client == nil {
		return
	}
	l.client.Del(ctx, key)
}
