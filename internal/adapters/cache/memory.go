package cache

import (
	"context"
	"sync"
	"time"

	portsrepo "github.com/ratefeed/converter-api/internal/core/ports/repositories"
)

// cleanupInterval is how often expired entries are swept from the store.
const cleanupInterval = 5 * time.Minute

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCache implements RateCache using in-process storage. Suitable for
// single-instance deployments and tests.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryCache creates a new in-memory cache and starts its background
// cleanup goroutine.
func NewMemoryCache() *MemoryCache {
	c := newMemoryCache(time.Now)
	go c.cleanup()
	return c
}

func newMemoryCache(now func() time.Time) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		now:     now,
	}
}

// Get retrieves a value from the cache. Expired entries count as misses.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[key]
	if !exists {
		return nil, nil
	}
	if c.now().After(entry.expiresAt) {
		return nil, nil
	}
	return entry.value, nil
}

// Set stores a value in the cache with the given TTL.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = memoryEntry{
		value:     value,
		expiresAt: c.now().Add(ttl),
	}
	return nil
}

// Delete removes a single key from the cache.
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
	return nil
}

// Clear removes every entry from the cache.
func (c *MemoryCache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]memoryEntry)
	return nil
}

// cleanup periodically removes expired entries so the map does not grow
// unbounded between reads.
func (c *MemoryCache) cleanup() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		now := c.now()
		for key, entry := range c.entries {
			if now.After(entry.expiresAt) {
				delete(c.entries, key)
			}
		}
		c.mu.Unlock()
	}
}

// Ensure implementation matches interface
var _ portsrepo.RateCache = (*MemoryCache)(nil)
