package idempotency

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Guard claims event keys so each event is applied at most once.
type Guard interface {
	// Acquire claims key. It returns false when the key was already claimed.
	Acquire(ctx context.Context, key string) (bool, error)
	// Release forgets key so a redelivery can be applied again.
	Release(ctx context.Context, key string) error
}

// NopGuard admits every key.
type NopGuard struct{}

func (NopGuard) Acquire(ctx context.Context, key string) (bool, error) { return true, nil }

func (NopGuard) Release(ctx context.Context, key string) error { return nil }

// keyStore is the subset of redis.Cmdable the guard uses.
type keyStore interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisGuard claims keys with SETNX and a TTL.
type RedisGuard struct {
	client keyStore
	prefix string
	ttl    time.Duration
}

// NewRedisGuard creates a guard over an existing Redis client.
func NewRedisGuard(client keyStore, prefix string, ttl time.Duration) *RedisGuard {
	return &RedisGuard{client: client, prefix: prefix, ttl: ttl}
}

func (g *RedisGuard) Acquire(ctx context.Context, key string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.prefix+key, 1, g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim event key %s: %w", key, err)
	}
	return ok, nil
}

func (g *RedisGuard) Release(ctx context.Context, key string) error {
	if err := g.client.Del(ctx, g.prefix+key).Err(); err != nil {
		return fmt.Errorf("failed to release event key %s: %w", key, err)
	}
	return nil
}

// NewClient connects to Redis and verifies the connection.
func NewClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}
