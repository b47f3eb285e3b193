package ports

import (
	"context"
	"io"
)

//go:generate mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Tracer is the entry point for creating spans around pipeline stages.
type Tracer interface {
	// Start creates a new span.
	Start(ctx context.Context, name string, opts ...SpanOption) (context.Context, Span)
}

// Span represents a unit of work.
type Span interface {
	io.Writer
	// End completes the span; err is nil on success.
	End(err error)
	// Cached marks the span as served from cache.
	Cached()
	// SetAttribute adds a key-value pair to the span.
	SetAttribute(key string, value any)
}

// SpanConfig holds configuration for a starting span.
type SpanConfig struct {
	// Internal reserves the span for diagnostics-only rendering.
	Internal bool
}

// SpanOption is a functional option for configuring a span.
type SpanOption func(*SpanConfig)

// WithInternal marks a span as internal.
func WithInternal() SpanOption {
	return func(c *SpanConfig) { c.Internal = true }
}
