package ports

import "github.com/mosaic-ui/mosaic/internal/core/domain"

// CacheStats exposes cache effectiveness counters.
type CacheStats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// ComponentCache stores compiled output keyed by content hash with a bounded
// entry count and least-recently-used eviction. Eviction revokes the evicted
// entry's loadable ref.
//
//go:generate mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type ComponentCache interface {
	// Get returns the entry for hash and refreshes its recency.
	Get(hash string) (domain.CacheEntry, bool)

	// Peek returns the entry for hash without refreshing recency and
	// without touching the hit/miss counters.
	Peek(hash string) (domain.CacheEntry, bool)

	// Put inserts the entry for hash. Inserting an existing hash is a no-op
	// that extends recency; it never duplicates storage or revokes the
	// resident ref.
	Put(hash string, entry domain.CacheEntry)

	// Remove drops the entry for hash and revokes its ref.
	Remove(hash string) bool

	// Len reports the current entry count.
	Len() int

	// Stats returns hit/miss/eviction counters.
	Stats() CacheStats
}
