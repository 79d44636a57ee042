package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxAttempts = 10
	defaultWindow      = 15 * time.Minute
)

// LoginLimiter throttles login attempts per account using a Redis counter.
// Key format: login_attempts:<email>
type LoginLimiter struct {
	client *redis.Client
	max    int64
	window time.Duration
}

// NewLoginLimiter creates a LoginLimiter wrapping the given Redis client.
// Non-positive max/window fall back to defaults.
func NewLoginLimiter(client *redis.Client, max int, window time.Duration) *LoginLimiter {
	l := &LoginLimiter{client: client, max: int64(max), window: window}
	if l.max <= 0 {
		l.max = defaultMaxAttempts
	}
	if l.window <= 0 {
		l.window = defaultWindow
	}
	return l
}

// Allow counts one attempt for key and reports whether it is still within
// the window budget. The window starts at the first attempt.
func (l *LoginLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := l.key(key)
	n, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("limiter incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return false, fmt.Errorf("limiter expire: %w", err)
		}
	}
	return n <= l.max, nil
}

// Reset clears the attempt counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, l.key(key)).Err(); err != nil {
		return fmt.Errorf("limiter reset: %w", err)
	}
	return nil
}

func (l *LoginLimiter) key(k string) string {
	return "login_attempts:" + k
}
