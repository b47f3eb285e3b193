package rewrite

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/mosaic-ui/mosaic/internal/adapters/config"
	"github.com/mosaic-ui/mosaic/internal/core/ports"
)

// NodeID is the unique identifier for the Rewriter Graft node.
const NodeID graft.ID = "adapter.rewriter"

func init() {
	graft.Register(graft.Node[ports.Rewriter]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.Rewriter, error) {
			cfg, err := graft.Dep[*config.Config](ctx)
			if err != nil {
				return nil, err
			}
			return New(cfg.RegistryBase, cfg.StrictImports), nil
		},
	})
}
