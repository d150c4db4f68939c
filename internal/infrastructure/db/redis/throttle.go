package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	throttleWindow   = 15 * time.Minute
	throttleAttempts = 10
)

// LoginThrottle counts login attempts per email over a fixed window.
// Key format: login_attempts:<email>
type LoginThrottle struct {
	client *redis.Client
}

// NewLoginThrottle creates a LoginThrottle wrapping the given Redis client.
func NewLoginThrottle(client *redis.Client) *LoginThrottle {
	return &LoginThrottle{client: client}
}

// Allow records one attempt for the email and reports whether it is still
// within the window's budget.
func (t *LoginThrottle) Allow(ctx context.Context, email string) (bool, error) {
	key := t.key(email)
	n, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("login throttle: %w", err)
	}
	if n == 1 {
		// First attempt in the window starts the clock.
		if err := t.client.Expire(ctx, key, throttleWindow).Err(); err != nil {
			return false, fmt.Errorf("login throttle expire: %w", err)
		}
	}
	return n <= throttleAttempts, nil
}

// Reset forgets the email's attempts, called after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, email string) error {
	return t.client.Del(ctx, t.key(email)).Err()
}

func (t *LoginThrottle) key(email string) string {
	return "login_attempts:" + strings.ToLower(email)
}
