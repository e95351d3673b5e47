package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/infoboard/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key written by the cache.
const DefaultPrefix = "infoboard:"

// Cache implements ports.HeaderCache using Redis.
type Cache struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Cache)

// WithTTL sets the expiration for the cached dataset.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(c *Cache) {
		c.prefix = prefix
	}
}

// New creates a new Redis cache with options.
func New(address, password string, db int, opts ...Option) *Cache {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis cache from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Cache {
	cache := &Cache{
		client: client,
		prefix: DefaultPrefix,
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

func (c *Cache) key() string {
	return c.prefix + "header"
}

// Get retrieves the dataset from Redis.
func (c *Cache) Get(ctx context.Context) (domain.HeaderInfo, error) {
	val, err := c.client.Get(ctx, c.key()).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return domain.HeaderInfo{}, domain.ErrCacheMiss
		}
		return domain.HeaderInfo{}, fmt.Errorf("failed to get from redis: %w", err)
	}

	var info domain.HeaderInfo
	if err := json.Unmarshal(val, &info); err != nil {
		return domain.HeaderInfo{}, fmt.Errorf("failed to unmarshal header: %w", err)
	}
	return info, nil
}

// Set persists the dataset to Redis. A zero TTL keeps it until cleared.
func (c *Cache) Set(ctx context.Context, info domain.HeaderInfo) error {
	data, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}

	if err := c.client.Set(ctx, c.key(), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Clear removes the dataset.
func (c *Cache) Clear(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key()).Err(); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}
	return nil
}

// Ping checks connectivity.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the redis client.
func (c *Cache) Close() error {
	return c.client.Close()
}
