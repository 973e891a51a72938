package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/postable/content-api/internal/core/domain"
)

func newTestLimiter(t *testing.T, maxAttempts int) (*LoginLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewLoginLimiter(client, maxAttempts, time.Minute), mr
}

func TestLoginLimiter_AllowsWithinBudget(t *testing.T) {
	limiter, _ := newTestLimiter(t, 3)

	for i := 0; i < 3; i++ {
		if err := limiter.Allow(context.Background(), "a@gmail.com", "10.0.0.1"); err != nil {
			t.Fatalf("attempt %d: unexpected error: %v", i+1, err)
		}
	}
}

func TestLoginLimiter_BlocksWhenExhausted(t *testing.T) {
	limiter, _ := newTestLimiter(t, 2)

	_ = limiter.Allow(context.Background(), "a@gmail.com", "")
	_ = limiter.Allow(context.Background(), "a@gmail.com", "")

	if err := limiter.Allow(context.Background(), "a@gmail.com", ""); !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	// Other identifiers keep their own budget.
	if err := limiter.Allow(context.Background(), "b@gmail.com", ""); err != nil {
		t.Fatalf("unexpected error for fresh email: %v", err)
	}
}

func TestLoginLimiter_WindowExpires(t *testing.T) {
	limiter, mr := newTestLimiter(t, 1)

	_ = limiter.Allow(context.Background(), "a@gmail.com", "")
	if err := limiter.Allow(context.Background(), "a@gmail.com", ""); !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if err := limiter.Allow(context.Background(), "a@gmail.com", ""); err != nil {
		t.Fatalf("expected budget reset after window, got %v", err)
	}
}
