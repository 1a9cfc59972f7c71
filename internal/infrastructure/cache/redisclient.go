package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/orris-inc/backoffice/internal/shared/config"
)

// NewRedisClient connects and pings the configured Redis.
func NewRedisClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.GetAddr(), err)
	}
	return client, nil
}

// NewLockStore returns a Redis-backed store when Redis is enabled and an
// in-process one otherwise. The returned close func releases the client.
func NewLockStore(ctx context.Context, cfg *config.RedisConfig, ttl time.Duration) (LockStore, func() error, error) {
	if !cfg.Enabled {
		return NewMemoryLockStore(ttl), func() error { return nil }, nil
	}
	client, err := NewRedisClient(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return NewRedisLockStore(client, "backoffice:lock:", ttl), client.Close, nil
}
