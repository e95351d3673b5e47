package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/aretw0/infoboard/pkg/domain"
)

// Cache implements ports.HeaderCache in memory.
// Safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	info    *domain.HeaderInfo
	expires time.Time
	ttl     time.Duration
	now     func() time.Time
}

// Option configures the Cache.
type Option func(*Cache)

// WithTTL sets how long a value stays valid. Zero means no expiration.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// New creates an empty in-memory cache.
func New(opts ...Option) *Cache {
	c := &Cache{now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns a copy of the cached dataset.
func (c *Cache) Get(ctx context.Context) (domain.HeaderInfo, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.info == nil || (c.ttl > 0 && !c.now().Before(c.expires)) {
		return domain.HeaderInfo{}, domain.ErrCacheMiss
	}
	return clone(*c.info), nil
}

// Set stores a copy of info.
func (c *Cache) Set(ctx context.Context, info domain.HeaderInfo) error {
	copied := clone(info)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.info = &copied
	c.expires = c.now().Add(c.ttl)
	return nil
}

// Clear drops the cached dataset.
func (c *Cache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.info = nil
	return nil
}

// Copy on both sides so callers can't mutate cached items by reference.
func clone(info domain.HeaderInfo) domain.HeaderInfo {
	info.Items = slices.Clone(info.Items)
	return info
}
