package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// ReplayLock implements usecase.ReplayLock with a per-account SetNX
// key. The TTL bounds how long a crashed replay can block the account
// before the lock expires on its own.
type ReplayLock struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewReplayLock creates a new ReplayLock.
func NewReplayLock(client *redis.Client, ttl time.Duration) *ReplayLock {
	return &ReplayLock{
		client: client,
		prefix: "replay:",
		ttl:    ttl,
	}
}

// Acquire takes the account's replay lock. It returns false without
// error when another replay already holds it.
func (l *ReplayLock) Acquire(ctx context.Context, accountID string) (bool, error) {
	return l.client.SetNX(ctx, l.prefix+accountID, "locked", l.ttl).Result()
}

// Release frees the account's replay lock.
func (l *ReplayLock) Release(ctx context.Context, accountID string) error {
	return l.client.Del(ctx, l.prefix+accountID).Err()
}
