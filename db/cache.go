package db

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
)

// CacheClient is the contract the discount resolver uses for caching.
// Keeping it an interface lets tests run without a Redis instance.
type CacheClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	DeletePrefix(ctx context.Context, prefix string) error
}

// ErrCacheMiss is returned when a key is not present in the cache
var ErrCacheMiss = redis.Nil

// RedisClient implements CacheClient on top of Redis
type RedisClient struct {
	rdb *redis.Client
}

// NewRedisClient connects to Redis using the REDIS_ADDR environment
// variable. Returns nil (no cache) when REDIS_ADDR is not set: the cache is
// an optimization, not a requirement.
func NewRedisClient() *RedisClient {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Printf("⚠️  Redis not configured (REDIS_ADDR empty), discount cache disabled")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Printf("⚠️  Redis ping failed for %s: %v (discount cache disabled)", addr, err)
		return nil
	}

	log.Printf("✓ Redis connection established (%s)", addr)
	return &RedisClient{rdb: rdb}
}

// Get retrieves the value for a key, ErrCacheMiss when absent
func (c *RedisClient) Get(ctx context.Context, key string) (string, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrCacheMiss
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// Set stores a value under a key with the given expiration
func (c *RedisClient) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return c.rdb.Set(ctx, key, value, expiration).Err()
}

// Delete removes a key from the cache
func (c *RedisClient) Delete(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, key).Err()
}

// DeletePrefix removes every key under a prefix. Uses SCAN to avoid
// blocking Redis the way KEYS would.
func (c *RedisClient) DeletePrefix(ctx context.Context, prefix string) error {
	iter := c.rdb.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete key %s: %w", iter.Val(), err)
		}
	}
	return iter.Err()
}
