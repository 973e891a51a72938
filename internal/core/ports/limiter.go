package ports

import "context"

// LoginLimiter throttles login attempts before credential verification.
type LoginLimiter interface {
	// Allow returns domain.ErrRateLimited when the attempt budget for the
	// email or the client IP is exhausted.
	Allow(ctx context.Context, email, ip string) error
}
