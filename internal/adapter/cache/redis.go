// Package cache wraps the Redis client the export rate limiter shares
// across replicas.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis only serves one script call per export request; calls must give up
// quickly so the limiter can fail open.
const (
	redisPoolSize     = 4
	redisDialTimeout  = 2 * time.Second
	redisIOTimeout    = 500 * time.Millisecond
	redisPoolWait     = time.Second
	redisIdleConnTime = 10 * time.Minute
)

// Cache is a connected Redis client.
type Cache struct {
	client *redis.Client
}

func clientOptions(redisURL string) (*redis.Options, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opt.PoolSize = redisPoolSize
	opt.MinIdleConns = 1
	opt.DialTimeout = redisDialTimeout
	opt.ReadTimeout = redisIOTimeout
	opt.WriteTimeout = redisIOTimeout
	opt.PoolTimeout = redisPoolWait
	opt.ConnMaxIdleTime = redisIdleConnTime
	opt.MaxRetries = 0
	return opt, nil
}

// New connects to redisURL and pings it once. The caller owns Close.
func New(ctx context.Context, redisURL string) (*Cache, error) {
	opt, err := clientOptions(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", opt.Addr, err)
	}
	return &Cache{client: client}, nil
}

// Ping backs the readiness check.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	return c.client.Close()
}
