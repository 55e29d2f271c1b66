// Package cache provides the in-memory RateCache adapter. Entries live for
// the TTL given at Set time and are dropped lazily on read plus by a
// periodic sweep, so the map does not grow without bound.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// MemoryCache is a thread-safe map-backed cache with per-entry TTL.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// NewMemoryCache creates an empty cache and starts the background sweep.
func NewMemoryCache() *MemoryCache {
	c := &MemoryCache{entries: make(map[string]entry)}
	go c.sweep()
	return c
}

// Get returns the value stored under key, or found=false when the key is
// absent or its entry has expired. Expiry is decided at read time, so a hit
// is never stale.
func (c *MemoryCache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

// Set stores value under key for ttl. An existing entry is replaced
// wholesale; entries are never mutated in place.
func (c *MemoryCache) Set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = entry{value: value, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
}

// Len reports the number of entries currently held, expired or not.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// sweep drops expired entries every few minutes. Correctness does not
// depend on it; Get already treats expired entries as misses.
func (c *MemoryCache) sweep() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		c.mu.Lock()
		for key, e := range c.entries {
			if now.After(e.expiresAt) {
				delete(c.entries, key)
			}
		}
		c.mu.Unlock()
	}
}
