package progrock

import (
	"fmt"

	"github.com/vito/progrock"

	"github.com/mosaic-ui/mosaic/internal/core/ports"
)

var _ ports.Span = (*Span)(nil)

// Span implements ports.Span wrapping *progrock.VertexRecorder.
type Span struct {
	vertex *progrock.VertexRecorder
}

// Write streams log output onto the vertex's stdout stream.
func (s *Span) Write(p []byte) (n int, err error) {
	return s.vertex.Stdout().Write(p)
}

// End completes the vertex; err is nil on success.
func (s *Span) End(err error) {
	s.vertex.Done(err)
}

// Cached marks the vertex as a cache hit.
func (s *Span) Cached() {
	s.vertex.Cached()
}

// SetAttribute records a key-value pair as a line on the vertex's stdout.
func (s *Span) SetAttribute(key string, value any) {
	_, _ = fmt.Fprintf(s.vertex.Stdout(), "%s=%v\n", key, value)
}
