// Package telemetry provides tracing adapters for the compile pipeline.
package telemetry

import (
	"context"

	"github.com/mosaic-ui/mosaic/internal/core/ports"
)

// NoOpTracer is a no-op implementation of ports.Tracer.
type NoOpTracer struct{}

// NewNoOpTracer creates a new NoOpTracer.
func NewNoOpTracer() *NoOpTracer {
	return &NoOpTracer{}
}

// Start creates a new no-op span.
func (t *NoOpTracer) Start(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
	return ctx, &NoOpSpan{}
}

// NoOpSpan is a no-op implementation of ports.Span.
type NoOpSpan struct{}

// End does nothing.
func (s *NoOpSpan) End(_ error) {}

// Cached does nothing.
func (s *NoOpSpan) Cached() {}

// SetAttribute does nothing.
func (s *NoOpSpan) SetAttribute(_ string, _ any) {}

// Write does nothing and reports p as written.
func (s *NoOpSpan) Write(p []byte) (n int, err error) {
	return len(p), nil
}
