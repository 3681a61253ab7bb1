package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginThrottle limits login attempts per username and source address
// using a fixed-window counter in Redis. It caps how fast an attacker can
// burn bcrypt verifications against a single account.
// Key format: login:<username>:<ip>
type LoginThrottle struct {
	client *redis.Client
	limit  int
	window time.Duration
}

// NewLoginThrottle creates a LoginThrottle allowing limit attempts per window.
func NewLoginThrottle(client *redis.Client, limit int, window time.Duration) *LoginThrottle {
	if limit <= 0 {
		limit = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	return &LoginThrottle{client: client, limit: limit, window: window}
}

// Allow records one attempt and reports whether it is within the limit.
// The window starts at the first attempt and expires as a whole.
func (t *LoginThrottle) Allow(ctx context.Context, username, ip string) (bool, error) {
	key := fmt.Sprintf("login:%s:%s", username, ip)

	n, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("login throttle: %w", err)
	}
	if n == 1 {
		if err := t.client.Expire(ctx, key, t.window).Err(); err != nil {
			return false, fmt.Errorf("login throttle: %w", err)
		}
	}
	return n <= int64(t.limit), nil
}
