package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/postable/content-api/internal/core/domain"
)

// LoginLimiter throttles login attempts with a fixed window per email and
// per client IP. Key format: login:<email> / loginip:<ip>.
type LoginLimiter struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
}

func NewLoginLimiter(client *redis.Client, maxAttempts int, window time.Duration) *LoginLimiter {
	if maxAttempts <= 0 {
		maxAttempts = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	return &LoginLimiter{client: client, maxAttempts: maxAttempts, window: window}
}

// Allow counts this attempt against both keys and returns
// domain.ErrRateLimited once either budget is exhausted. Any other error
// means the backend is unavailable; the caller decides whether to fail open.
func (l *LoginLimiter) Allow(ctx context.Context, email, ip string) error {
	if err := l.allowKey(ctx, "login:"+email); err != nil {
		return err
	}
	if ip != "" {
		return l.allowKey(ctx, "loginip:"+ip)
	}
	return nil
}

func (l *LoginLimiter) allowKey(ctx context.Context, key string) error {
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("limiter incr: %w", err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return fmt.Errorf("limiter expire: %w", err)
		}
	}
	if count > int64(l.maxAttempts) {
		return domain.ErrRateLimited
	}
	return nil
}
