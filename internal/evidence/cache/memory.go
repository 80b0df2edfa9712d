package cache

import (
	"context"
	"sync"
	"time"

	"idverify/internal/evidence/providers"
)

type entry struct {
	result    providers.LookupResult
	expiresAt time.Time
}

// InMemoryCache is a process-local Cache with per-entry expiry.
type InMemoryCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// NewInMemoryCache creates an empty cache. A nil clock uses time.Now.
func NewInMemoryCache(now func() time.Time) *InMemoryCache {
	if now == nil {
		now = time.Now
	}
	return &InMemoryCache{
		entries: make(map[string]entry),
		now:     now,
	}
}

// Get returns a copy of the stored result, or ErrMiss.
func (c *InMemoryCache) Get(_ context.Context, key string) (*providers.LookupResult, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, ErrMiss
	}
	if !c.now().Before(e.expiresAt) {
		c.mu.Lock()
		if cur, ok := c.entries[key]; ok && cur.expiresAt.Equal(e.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, ErrMiss
	}
	result := e.result
	return &result, nil
}

// Set stores a copy of result. A nil result or non-positive TTL is a no-op.
func (c *InMemoryCache) Set(_ context.Context, key string, result *providers.LookupResult, ttl time.Duration) error {
	if result == nil || ttl <= 0 {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{result: *result, expiresAt: c.now().Add(ttl)}
	return nil
}
