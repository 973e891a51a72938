// Package redis holds the Redis-backed pieces of the infrastructure: the
// connection helper and the login limiter that rides on it. Redis is an
// auxiliary store here; nothing durable lives in it, only short-lived
// throttle counters.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultPingTimeout = 5 * time.Second

// Config captures the connection settings. Password and PoolSize are
// optional; zero values fall through to the client's defaults.
type Config struct {
	Addr     string
	Password string
	DB       int
	PoolSize int

	// PingTimeout bounds the startup connectivity check only; per-command
	// deadlines come from the request context.
	PingTimeout time.Duration
}

// Connect builds a client and proves connectivity with a ping before
// handing it out. A client that cannot reach Redis at startup is a
// deployment error, not something to discover on the first login.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}

	return client, nil
}
