package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSequenceCounter is a sequence counter shared by every server
// instance. A missing key is seeded with SETNX so concurrent first uses
// agree on the starting value; INCR then hands out numbers atomically.
type RedisSequenceCounter struct {
	client    redis.Cmdable
	keyPrefix string
	expiring  []expiry
}

type expiry struct {
	prefix string
	ttl    time.Duration
}

// RedisSequenceOption configures a RedisSequenceCounter
type RedisSequenceOption func(*RedisSequenceCounter)

// WithKeyTTL expires counters whose key starts with prefix after ttl.
// Per-day invoice counters use this so old days do not accumulate.
func WithKeyTTL(prefix string, ttl time.Duration) RedisSequenceOption {
	return func(c *RedisSequenceCounter) {
		if ttl > 0 {
			c.expiring = append(c.expiring, expiry{prefix: prefix, ttl: ttl})
		}
	}
}

// NewRedisSequenceCounter creates a counter storing keys under keyPrefix
func NewRedisSequenceCounter(client redis.Cmdable, keyPrefix string, opts ...RedisSequenceOption) *RedisSequenceCounter {
	c := &RedisSequenceCounter{client: client, keyPrefix: keyPrefix}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Next increments the key and returns the new value. A missing key is
// first initialised to seed().
func (c *RedisSequenceCounter) Next(ctx context.Context, key string, seed func(ctx context.Context) (int64, error)) (int64, error) {
	full := c.keyPrefix + key

	exists, err := c.client.Exists(ctx, full).Result()
	if err != nil {
		return 0, fmt.Errorf("check sequence %s: %w", key, err)
	}
	if exists == 0 {
		var initial int64
		if seed != nil {
			if initial, err = seed(ctx); err != nil {
				return 0, err
			}
		}
		if err := c.client.SetNX(ctx, full, initial, c.ttlFor(key)).Err(); err != nil {
			return 0, fmt.Errorf("seed sequence %s: %w", key, err)
		}
	}

	n, err := c.client.Incr(ctx, full).Result()
	if err != nil {
		return 0, fmt.Errorf("increment sequence %s: %w", key, err)
	}
	return n, nil
}

func (c *RedisSequenceCounter) ttlFor(key string) time.Duration {
	for _, e := range c.expiring {
		if strings.HasPrefix(key, e.prefix) {
			return e.ttl
		}
	}
	return 0
}
