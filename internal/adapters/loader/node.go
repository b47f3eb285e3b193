package loader

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/mosaic-ui/mosaic/internal/adapters/config"
	"github.com/mosaic-ui/mosaic/internal/adapters/fetch"
	"github.com/mosaic-ui/mosaic/internal/adapters/logger"
	"github.com/mosaic-ui/mosaic/internal/core/ports"
)

// NodeID is the unique identifier for the Loader Graft node.
const NodeID graft.ID = "adapter.loader"

func init() {
	graft.Register(graft.Node[ports.Loader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, fetch.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.Loader, error) {
			cfg, err := graft.Dep[*config.Config](ctx)
			if err != nil {
				return nil, err
			}
			fetcher, err := graft.Dep[ports.Fetcher](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(cfg.Singletons, fetcher, log), nil
		},
	})
}
