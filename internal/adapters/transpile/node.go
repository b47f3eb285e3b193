package transpile

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/mosaic-ui/mosaic/internal/core/ports"
)

// NodeID is the unique identifier for the Transpiler Graft node.
const NodeID graft.ID = "adapter.transpiler"

func init() {
	graft.Register(graft.Node[ports.Transpiler]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Transpiler, error) {
			return New(), nil
		},
	})
}
