package domain

import "time"

// CacheEntry holds the compiled output for one content hash. Entries are
// content-addressed: two records whose sources compile to the same text share
// one entry and one loadable ref.
type CacheEntry struct {
	CompiledSource string
	CompiledHash   string
	// Constructor is the live component extracted at load time; a hit
	// serves it directly without re-evaluating the module.
	Constructor  Component
	Ref          *LoadableRef
	Dependencies []string
	CreatedAt    time.Time
	SizeEstimate int
}
