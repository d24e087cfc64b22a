package limiters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// AttemptConfig holds the lockout tuning parameters.
type AttemptConfig struct {
	AttemptWindow time.Duration
}

var (
	// ErrAttemptsUnavailable indicates the attempt/lock backend is unreachable.
	// Every return value it accompanies is the documented degraded fallback.
	ErrAttemptsUnavailable = errors.New("attempt backend unavailable")
)

// AttemptTracker counts consecutive failed logins per username and carries
// the temporary lock marker that repeated failure converts into.
type AttemptTracker struct {
	redis  redis.UniversalClient
	config AttemptConfig
}

// NewAttemptTracker creates a tracker backed by the given Redis client.
func NewAttemptTracker(redisClient redis.UniversalClient, cfg AttemptConfig) *AttemptTracker {
	return &AttemptTracker{redis: redisClient, config: cfg}
}

func attemptKey(username string) string {
	return "la:" + username
}

func lockKey(username string) string {
	return "lk:" + username
}

// RecordFailure atomically increments the failure counter and returns the new
// count. The rolling window TTL is set on the first failure only. Degraded
// fallback: count of one, so a store outage delays lockout instead of
// blocking the reject path.
func (t *AttemptTracker) RecordFailure(ctx context.Context, username string) (int64, error) {
	count, err := t.redis.Incr(ctx, attemptKey(username)).Result()
	if err != nil {
		return 1, fmt.Errorf("%w: %v", ErrAttemptsUnavailable, err)
	}

	if count == 1 && t.config.AttemptWindow > 0 {
		if err := t.redis.Expire(ctx, attemptKey(username), t.config.AttemptWindow).Err(); err != nil {
			return count, fmt.Errorf("%w: %v", ErrAttemptsUnavailable, err)
		}
	}

	return count, nil
}

// FailureCount returns the current counter. Missing keys read as zero and do
// not reveal account existence. Degraded fallback: zero.
func (t *AttemptTracker) FailureCount(ctx context.Context, username string) (int64, error) {
	count, err := t.redis.Get(ctx, attemptKey(username)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: %v", ErrAttemptsUnavailable, err)
	}
	if count < 0 {
		return 0, nil
	}
	return count, nil
}

// IsLocked reports whether a lock marker exists. Degraded fallback: unlocked
// (fail open).
func (t *AttemptTracker) IsLocked(ctx context.Context, username string) (bool, error) {
	n, err := t.redis.Exists(ctx, lockKey(username)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrAttemptsUnavailable, err)
	}
	return n > 0, nil
}

// LockRemaining returns the time left on an active lock, or zero when no lock
// exists. Degraded fallback: zero.
func (t *AttemptTracker) LockRemaining(ctx context.Context, username string) (time.Duration, error) {
	d, err := t.redis.TTL(ctx, lockKey(username)).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrAttemptsUnavailable, err)
	}
	// TTL reports negative values for missing keys and keys without expiry.
	if d < 0 {
		return 0, nil
	}
	return d, nil
}

// Lock sets the lock marker with the given TTL and clears the failure
// counter, so counter and lock are mutually exclusive in steady state.
// A plain SET makes concurrent lockers idempotent.
func (t *AttemptTracker) Lock(ctx context.Context, username string, duration time.Duration) error {
	if err := t.redis.Set(ctx, lockKey(username), 1, duration).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrAttemptsUnavailable, err)
	}
	if err := t.redis.Del(ctx, attemptKey(username)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrAttemptsUnavailable, err)
	}
	return nil
}

// Reset clears the failure counter after a successful login. It deliberately
// leaves any active lock in place: locks expire on their own schedule.
func (t *AttemptTracker) Reset(ctx context.Context, username string) error {
	if err := t.redis.Del(ctx, attemptKey(username)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrAttemptsUnavailable, err)
	}
	return nil
}
