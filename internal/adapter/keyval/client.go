// Package keyval implements the log-backend storage adapters on Redis:
// submissions stored as JSON records under composite keys with a bounded
// per-form index, and rate limiting on the store's native atomic counter.
//
// Read-after-write consistency across readers is the store's, not this
// package's: a list or point lookup racing a store may not observe the new
// submission yet.
package keyval

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/formsink/formsink/internal/config"
)

// NewClient creates a Redis client configured from RedisConfig and pings it
// for fail-fast validation.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}
