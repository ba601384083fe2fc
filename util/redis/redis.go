// Package redis wraps a go-redis client used for the optional session store
// and the auth-endpoint rate limiter. When no address is configured the
// package stays disabled and callers fall back to in-process behavior.
package redis

import (
	"context"
	"time"

	"picturestream/logger"

	"github.com/redis/go-redis/v9"
)

var (
	client  *redis.Client
	ctx     = context.Background()
	enabled = false
)

// Init connects to redis at addr. An empty addr leaves the package disabled.
func Init(addr, password string, db int) error {
	if addr == "" {
		enabled = false
		return nil
	}

	c := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := c.Ping(ctx).Err(); err != nil {
		logger.Warning("redis unreachable, continuing without it:", err)
		enabled = false
		return err
	}

	client = c
	enabled = true
	logger.Info("redis connected:", addr)
	return nil
}

func IsEnabled() bool {
	return enabled
}

// Client returns the underlying go-redis client, or nil when disabled.
func Client() *redis.Client {
	return client
}

func Incr(key string) (int64, error) {
	return client.Incr(ctx, key).Result()
}

func Expire(key string, expiration time.Duration) error {
	return client.Expire(ctx, key, expiration).Err()
}

func Close() error {
	if client == nil {
		return nil
	}
	err := client.Close()
	client = nil
	enabled = false
	return err
}
