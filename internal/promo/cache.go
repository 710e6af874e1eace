package promo

import (
	"context"
	"sync"
	"time"

	"fitflow-box/internal/model"

	"golang.org/x/sync/singleflight"
)

// Cache is a TTL lookup cache for promo rows with in-flight request
// deduplication: concurrent misses for the same code share a single load.
// It is injected into the validator rather than held at package scope so
// tests can reset state between runs. Negative results (code not found) are
// cached too.
//
// Time-window and usage-cap checks run against the cached row on every
// Resolve call; only the row itself is cached, so with a short TTL a
// just-exhausted code stops applying within one cache lifetime.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	group   singleflight.Group
	now     func() time.Time
}

type cacheEntry struct {
	promo     *model.PromoCode
	expiresAt time.Time
}

// NewCache creates a promo cache with the given entry TTL.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// GetOrLoad returns the cached row for code, or runs load and caches its
// result. Concurrent callers for the same code during a miss share one load.
func (c *Cache) GetOrLoad(ctx context.Context, code string, load func(ctx context.Context) (*model.PromoCode, error)) (*model.PromoCode, error) {
	c.mu.RLock()
	entry, ok := c.entries[code]
	c.mu.RUnlock()
	if ok && c.now().Before(entry.expiresAt) {
		return entry.promo, nil
	}

	v, err, _ := c.group.Do(code, func() (interface{}, error) {
		// Re-check under the flight: another caller may have just
		// populated the entry.
		c.mu.RLock()
		entry, ok := c.entries[code]
		c.mu.RUnlock()
		if ok && c.now().Before(entry.expiresAt) {
			return entry.promo, nil
		}

		p, err := load(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[code] = cacheEntry{promo: p, expiresAt: c.now().Add(c.ttl)}
		c.mu.Unlock()
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	return v.(*model.PromoCode), nil
}

// Invalidate drops a single code from the cache.
func (c *Cache) Invalidate(code string) {
	c.mu.Lock()
	delete(c.entries, code)
	c.mu.Unlock()
}

// Reset clears all cached entries.
func (c *Cache) Reset() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}

// Len returns the number of cached entries, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
