// Package cache provides a Dragonfly/Redis client wrapper for short-lived values.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache wraps a Redis/Dragonfly client.
type Cache struct {
	Client *redis.Client
	prefix string
}

// ParseURL validates a Redis connection URL.
func ParseURL(url string) (*redis.Options, error) {
	if url == "" {
		return nil, fmt.Errorf("cache URL is empty")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid cache URL: %w", err)
	}
	return opts, nil
}

// New creates a new cache client. Every key is stored under prefix.
func New(ctx context.Context, url, prefix string) (*Cache, error) {
	opts, err := ParseURL(url)
	if err != nil {
		return nil, err
	}

	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging cache: %w", err)
	}

	return &Cache{Client: client, prefix: prefix}, nil
}

// Key returns the full key for name.
func (c *Cache) Key(name string) string {
	if c.prefix == "" {
		return name
	}
	return c.prefix + ":" + name
}

// SetTTL stores value under name until ttl elapses.
func (c *Cache) SetTTL(ctx context.Context, name string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("ttl must be positive, got %s", ttl)
	}
	if err := c.Client.Set(ctx, c.Key(name), value, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", name, err)
	}
	return nil
}

// Get returns the value stored under name. A missing or expired key reports
// false with a nil error.
func (c *Cache) Get(ctx context.Context, name string) ([]byte, bool, error) {
	b, err := c.Client.Get(ctx, c.Key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get %s: %w", name, err)
	}
	return b, true, nil
}

// Close shuts down the cache client.
func (c *Cache) Close() error {
	return c.Client.Close()
}

// HealthCheck verifies the cache connection is alive.
func (c *Cache) HealthCheck(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}
