package domain

import "sync"

// LoadableRef is a revocable handle to an ephemeral in-memory module.
// Revoke releases the underlying module exactly once; revoking an already
// revoked ref is a no-op, so cache eviction and record destruction cannot
// double-release.
type LoadableRef struct {
	id     string
	mu     sync.Mutex
	once   sync.Once
	closed bool
	revoke func()
}

// NewLoadableRef creates a ref with the given identity and revocation hook.
func NewLoadableRef(id string, revoke func()) *LoadableRef {
	return &LoadableRef{id: id, revoke: revoke}
}

// ID returns the ref's identity within the loader's module registry.
func (r *LoadableRef) ID() string {
	return r.id
}

// Revoke releases the underlying module. Safe to call more than once.
func (r *LoadableRef) Revoke() {
	r.once.Do(func() {
		r.mu.Lock()
		r.closed = true
		r.mu.Unlock()
		if r.revoke != nil {
			r.revoke()
		}
	})
}

// Revoked reports whether the ref has been released.
func (r *LoadableRef) Revoked() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}
