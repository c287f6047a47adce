package ratelimiter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter allows one action per subject per window using a Redis SetNX
// lock. A nil Redis client disables limiting.
type Limiter struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *Limiter {
	return &Limiter{rdb: rdb}
}

func key(subject, action string) string {
	return fmt.Sprintf("rate_limit:%s:%s", action, subject)
}

// CheckAndSet reports whether the action is allowed and, if so, starts a new
// window for it.
func (l *Limiter) CheckAndSet(ctx context.Context, subject, action string, window time.Duration) (bool, error) {
	if l == nil || l.rdb == nil || window <= 0 {
		return true, nil
	}

	wasSet, err := l.rdb.SetNX(ctx, key(subject, action), "locked", window).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit in redis: %w", err)
	}

	return wasSet, nil
}

// TTL returns how long until the subject may perform action again.
func (l *Limiter) TTL(ctx context.Context, subject, action string) (time.Duration, error) {
	if l == nil || l.rdb == nil {
		return 0, nil
	}
	return l.rdb.TTL(ctx, key(subject, action)).Result()
}

// Clear releases the window early, e.g. when the attempt was rejected
// before any state changed.
func (l *Limiter) Clear(ctx context.Context, subject, action string) error {
	if l == nil || l.rdb == nil {
		return nil
	}
	return l.rdb.Del(ctx, key(subject, action)).Err()
}
