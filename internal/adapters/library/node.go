package library

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/mosaic-ui/mosaic/internal/core/ports"
)

// NodeID is the unique identifier for the Library Graft node.
const NodeID graft.ID = "adapter.library"

func init() {
	graft.Register(graft.Node[ports.Library]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Library, error) {
			return New(), nil
		},
	})
}
