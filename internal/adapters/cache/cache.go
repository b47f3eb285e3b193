// Package cache implements the bounded compiled-component cache on an LRU
// with eviction-driven ref revocation.
package cache

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mosaic-ui/mosaic/internal/core/domain"
	"github.com/mosaic-ui/mosaic/internal/core/ports"
)

var _ ports.ComponentCache = (*Cache)(nil)

// Cache is a bounded LRU over compiled component entries. Evicting an entry
// revokes its loadable ref so the executor releases the module instance.
type Cache struct {
	mu      sync.Mutex
	entries *lru.Cache[string, domain.CacheEntry]

	hits      uint64
	misses    uint64
	evictions uint64
}

// New creates a Cache bounded to maxEntries.
func New(maxEntries int) (*Cache, error) {
	c := &Cache{}
	entries, err := lru.NewWithEvict(maxEntries, func(_ string, entry domain.CacheEntry) {
		c.evictions++
		if entry.Ref != nil {
			entry.Ref.Revoke()
		}
	})
	if err != nil {
		return nil, err
	}
	c.entries = entries
	return c, nil
}

// Get returns the entry for hash and refreshes its recency.
func (c *Cache) Get(hash string) (domain.CacheEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries.Get(hash)
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return entry, ok
}

// Peek returns the entry for hash without refreshing recency or counting a
// hit or miss. Ownership checks use it so inspecting an entry never distorts
// eviction order.
func (c *Cache) Peek(hash string) (domain.CacheEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Peek(hash)
}

// Put inserts the entry for hash. Re-inserting an existing hash only
// refreshes recency; the resident entry and its ref stay untouched.
func (c *Cache) Put(hash string, entry domain.CacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries.Peek(hash); ok {
		// Touch recency without replacing, so the resident ref survives.
		c.entries.Get(hash)
		return
	}
	c.entries.Add(hash, entry)
}

// Remove drops the entry for hash and revokes its ref. Returns false when
// the hash is not resident.
func (c *Cache) Remove(hash string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.entries.Contains(hash) {
		return false
	}
	// Remove fires the evict callback, which revokes the ref; undo its
	// eviction count since this is an explicit removal.
	c.entries.Remove(hash)
	c.evictions--
	return true
}

// Len reports the current entry count.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Len()
}

// Stats returns hit/miss/eviction counters.
func (c *Cache) Stats() ports.CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ports.CacheStats{Hits: c.hits, Misses: c.misses, Evictions: c.evictions}
}
