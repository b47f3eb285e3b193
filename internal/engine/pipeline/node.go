package pipeline

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/mosaic-ui/mosaic/internal/adapters/cache"
	"github.com/mosaic-ui/mosaic/internal/adapters/config"
	"github.com/mosaic-ui/mosaic/internal/adapters/detect"
	"github.com/mosaic-ui/mosaic/internal/adapters/hash"
	"github.com/mosaic-ui/mosaic/internal/adapters/loader"
	"github.com/mosaic-ui/mosaic/internal/adapters/logger"
	"github.com/mosaic-ui/mosaic/internal/adapters/rewrite"
	progrockadapter "github.com/mosaic-ui/mosaic/internal/adapters/telemetry/progrock"
	"github.com/mosaic-ui/mosaic/internal/adapters/transpile"
	"github.com/mosaic-ui/mosaic/internal/core/ports"
)

// NodeID is the unique identifier for the Pipeline Graft node.
const NodeID graft.ID = "engine.pipeline"

func init() {
	graft.Register(graft.Node[*Pipeline]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			detect.NodeID,
			rewrite.NodeID,
			transpile.NodeID,
			cache.NodeID,
			loader.NodeID,
			hash.NodeID,
			progrockadapter.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Pipeline, error) {
			cfg, err := graft.Dep[*config.Config](ctx)
			if err != nil {
				return nil, err
			}
			detector, err := graft.Dep[ports.Detector](ctx)
			if err != nil {
				return nil, err
			}
			rewriter, err := graft.Dep[ports.Rewriter](ctx)
			if err != nil {
				return nil, err
			}
			transpiler, err := graft.Dep[ports.Transpiler](ctx)
			if err != nil {
				return nil, err
			}
			componentCache, err := graft.Dep[ports.ComponentCache](ctx)
			if err != nil {
				return nil, err
			}
			moduleLoader, err := graft.Dep[ports.Loader](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(detector, rewriter, transpiler, componentCache, moduleLoader,
				hasher, tracer, log, cfg.Singletons), nil
		},
	})
}
