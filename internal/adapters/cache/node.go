package cache

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/mosaic-ui/mosaic/internal/adapters/config"
	"github.com/mosaic-ui/mosaic/internal/core/ports"
)

// NodeID is the unique identifier for the ComponentCache Graft node.
const NodeID graft.ID = "adapter.cache"

func init() {
	graft.Register(graft.Node[ports.ComponentCache]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.ComponentCache, error) {
			cfg, err := graft.Dep[*config.Config](ctx)
			if err != nil {
				return nil, err
			}
			return New(cfg.CacheMaxEntries)
		},
	})
}
