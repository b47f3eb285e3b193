package ports

import (
	"context"

	"github.com/mosaic-ui/mosaic/internal/core/domain"
)

// Executable is a successfully loaded component: the extracted default-export
// constructor plus the revocable handle for the backing in-memory module.
type Executable struct {
	Constructor domain.Component
	Ref         *domain.LoadableRef
}

// Loader materializes an ephemeral in-memory module from compiled text,
// evaluates it, and extracts the default export.
//
//go:generate mockgen -source=loader.go -destination=mocks/mock_loader.go -package=mocks
type Loader interface {
	// Load evaluates compiled module text. Failures classify as ErrLoad
	// (the unit could not be materialized or a dependency fetch failed) or
	// ErrRuntime (the module body threw during evaluation).
	Load(ctx context.Context, name, compiled string) (*Executable, error)
}
