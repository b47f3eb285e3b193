package detect

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/mosaic-ui/mosaic/internal/core/ports"
)

// NodeID is the unique identifier for the Detector Graft node.
const NodeID graft.ID = "adapter.detector"

func init() {
	graft.Register(graft.Node[ports.Detector]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Detector, error) {
			return New(), nil
		},
	})
}
