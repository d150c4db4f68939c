package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

func newTestThrottle(t *testing.T) (*LoginThrottle, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewLoginThrottle(client), mr
}

func TestLoginThrottle_Budget(t *testing.T) {
	throttle, _ := newTestThrottle(t)
	ctx := context.Background()

	for i := 0; i < throttleAttempts; i++ {
		ok, err := throttle.Allow(ctx, "bob@example.com")
		if err != nil {
			t.Fatalf("allow %d: %v", i, err)
		}
		if !ok {
			t.Fatalf("attempt %d should be within budget", i+1)
		}
	}

	ok, err := throttle.Allow(ctx, "bob@example.com")
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if ok {
		t.Fatalf("attempt %d should be rejected", throttleAttempts+1)
	}
}

func TestLoginThrottle_PerEmail(t *testing.T) {
	throttle, _ := newTestThrottle(t)
	ctx := context.Background()

	for i := 0; i <= throttleAttempts; i++ {
		_, _ = throttle.Allow(ctx, "bob@example.com")
	}

	ok, err := throttle.Allow(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if !ok {
		t.Fatalf("other emails must keep their own budget")
	}
}

func TestLoginThrottle_Reset(t *testing.T) {
	throttle, _ := newTestThrottle(t)
	ctx := context.Background()

	for i := 0; i <= throttleAttempts; i++ {
		_, _ = throttle.Allow(ctx, "bob@example.com")
	}
	if err := throttle.Reset(ctx, "bob@example.com"); err != nil {
		t.Fatalf("reset: %v", err)
	}

	ok, err := throttle.Allow(ctx, "bob@example.com")
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if !ok {
		t.Fatalf("reset should restore the budget")
	}
}

func TestLoginThrottle_WindowExpires(t *testing.T) {
	throttle, mr := newTestThrottle(t)
	ctx := context.Background()

	for i := 0; i <= throttleAttempts; i++ {
		_, _ = throttle.Allow(ctx, "bob@example.com")
	}

	mr.FastForward(throttleWindow + time.Second)

	ok, err := throttle.Allow(ctx, "bob@example.com")
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if !ok {
		t.Fatalf("expired window should restore the budget")
	}
}

func TestLoginThrottle_CaseInsensitiveEmail(t *testing.T) {
	throttle, _ := newTestThrottle(t)
	ctx := context.Background()

	for i := 0; i <= throttleAttempts; i++ {
		_, _ = throttle.Allow(ctx, "Bob@Example.com")
	}

	ok, err := throttle.Allow(ctx, "bob@example.com")
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if ok {
		t.Fatalf("email casing must not evade the throttle")
	}
}
