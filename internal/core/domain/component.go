// Package domain contains core domain types for the component pipeline.
package domain

import "time"

// Origin identifies where a component's source text came from.
type Origin uint8

const (
	// OriginGenerated marks source produced by the AI generation collaborator.
	OriginGenerated Origin = iota
	// OriginRemoteImport marks source fetched from a remote URL.
	OriginRemoteImport
	// OriginBuiltinLibrary marks source shipped with the built-in library.
	OriginBuiltinLibrary
)

// String returns the origin name as used in logs and metrics.
func (o Origin) String() string {
	switch o {
	case OriginGenerated:
		return "generated"
	case OriginRemoteImport:
		return "remote-import"
	case OriginBuiltinLibrary:
		return "built-in-library"
	default:
		return "unknown"
	}
}

// Metrics records per-record compile statistics.
type Metrics struct {
	// CompileDuration is the wall-clock time of the last compile.
	CompileDuration time.Duration
	// DependencyCount is the number of external specifiers after rewriting.
	DependencyCount int
	// CacheHit reports whether the last request was served from cache.
	CacheHit bool
}

// ComponentRecord is the unit of work and storage tracked per loadable
// component. OriginalSource is immutable once set; the compiled fields are
// (re)computed whenever the source changes or a forced recompile is requested.
type ComponentRecord struct {
	ID             string
	OriginalSource string
	CompiledSource string
	OriginalHash   string
	CompiledHash   string
	Origin         Origin
	// OriginLocator is the source URL when Origin is OriginRemoteImport.
	OriginLocator string
	// Prompt carries prompt-derived metadata when Origin is OriginGenerated.
	Prompt string
	// Precompiled carries library-provided compiled text; when non-empty the
	// pipeline skips the rewriter and transpiler for this record.
	Precompiled string
	// Ref is the live loadable handle from the last successful load.
	// It is never persisted across sessions.
	Ref     *LoadableRef
	Metrics Metrics
}

// Component is a live, mountable component constructor extracted from a
// loaded module's default export.
type Component interface {
	// Render invokes the constructor with the given props and returns the
	// produced render tree.
	Render(props map[string]any) (*VNode, error)
}
