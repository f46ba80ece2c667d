package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginThrottle rate-limits credential attempts per username with a fixed
// window counter in Redis. Key format: login_attempts:<username>
type LoginThrottle struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
}

// NewLoginThrottle creates a LoginThrottle wrapping the given Redis client.
func NewLoginThrottle(client *redis.Client, maxAttempts int, window time.Duration) *LoginThrottle {
	if maxAttempts <= 0 {
		maxAttempts = 10
	}
	if window <= 0 {
		window = 5 * time.Minute
	}
	return &LoginThrottle{client: client, maxAttempts: maxAttempts, window: window}
}

// Allow records an attempt and reports whether it is within the window limit.
// The expiry is set only when the key is first created so the window is fixed,
// not sliding.
func (t *LoginThrottle) Allow(ctx context.Context, username string) (bool, error) {
	key := t.key(username)

	n, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("throttle incr: %w", err)
	}
	if n == 1 {
		if err := t.client.Expire(ctx, key, t.window).Err(); err != nil {
			return false, fmt.Errorf("throttle expire: %w", err)
		}
	}
	return n <= int64(t.maxAttempts), nil
}

// Reset clears the counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, username string) error {
	return t.client.Del(ctx, t.key(username)).Err()
}

func (t *LoginThrottle) key(username string) string {
	return fmt.Sprintf("login_attempts:%s", username)
}
