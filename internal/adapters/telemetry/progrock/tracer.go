// Package progrock implements the tracing adapter on the progrock progress
// UI. Each pipeline stage records as a vertex on a tape.
package progrock

import (
	"context"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"

	"github.com/mosaic-ui/mosaic/internal/core/ports"
)

var _ ports.Tracer = (*Tracer)(nil)

// Tracer implements ports.Tracer by recording spans as progrock vertexes.
type Tracer struct {
	w   progrock.Writer
	rec *progrock.Recorder
}

// New creates a Tracer recording onto a fresh in-memory tape.
func New() *Tracer {
	return NewWithWriter(progrock.NewTape())
}

// NewWithWriter creates a Tracer recording onto w.
func NewWithWriter(w progrock.Writer) *Tracer {
	return &Tracer{w: w, rec: progrock.NewRecorder(w)}
}

// Start records a new vertex for the span. Internal spans carry a marker
// attribute so renderers can fold them away.
func (t *Tracer) Start(ctx context.Context, name string, opts ...ports.SpanOption) (context.Context, ports.Span) {
	cfg := &ports.SpanConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	v := t.rec.Vertex(digest.FromString(name), name)
	span := &Span{vertex: v}
	if cfg.Internal {
		span.SetAttribute("internal", true)
	}
	return ctx, span
}

// Close flushes and closes the recording session.
func (t *Tracer) Close() error {
	if c, ok := t.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
