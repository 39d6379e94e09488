package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const lockKeyPrefix = "lock:"

// ErrLockHeld is returned when the advisory lock could not be acquired in time.
var ErrLockHeld = fmt.Errorf("advisory lock is held by another request")

// releaseScript deletes the lock only if it still carries our token, so an
// expired lock re-acquired by someone else is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// AdvisoryLock is a Redis-backed mutual-exclusion lock keyed by an arbitrary
// string (one key per service at checkout time). The TTL bounds how long a
// crashed holder can block other checkouts.
type AdvisoryLock struct {
	Client *redis.Client
}

// Acquire takes the lock for key, retrying briefly before giving up. It
// returns a release function that must be called when the critical section
// (validate ledger, then write) completes.
func (l *AdvisoryLock) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	token := uuid.New().String()
	fullKey := lockKeyPrefix + key

	const attempts = 10
	for i := 0; i < attempts; i++ {
		ok, err := l.Client.SetNX(ctx, fullKey, token, ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
		}
		if ok {
			release := func() {
				releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				_ = releaseScript.Run(releaseCtx, l.Client, []string{fullKey}, token).Err()
			}
			return release, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
	}
	return nil, ErrLockHeld
}
