package app

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/mosaic-ui/mosaic/internal/adapters/cache"
	"github.com/mosaic-ui/mosaic/internal/adapters/config"
	"github.com/mosaic-ui/mosaic/internal/adapters/fetch"
	"github.com/mosaic-ui/mosaic/internal/adapters/hash"
	"github.com/mosaic-ui/mosaic/internal/adapters/library"
	"github.com/mosaic-ui/mosaic/internal/adapters/logger"
	"github.com/mosaic-ui/mosaic/internal/adapters/manifest"
	"github.com/mosaic-ui/mosaic/internal/core/ports"
	"github.com/mosaic-ui/mosaic/internal/engine/pipeline"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			pipeline.NodeID,
			fetch.NodeID,
			library.NodeID,
			cache.NodeID,
			hash.NodeID,
			manifest.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			pipe, err := graft.Dep[*pipeline.Pipeline](ctx)
			if err != nil {
				return nil, err
			}
			fetcher, err := graft.Dep[ports.Fetcher](ctx)
			if err != nil {
				return nil, err
			}
			lib, err := graft.Dep[ports.Library](ctx)
			if err != nil {
				return nil, err
			}
			componentCache, err := graft.Dep[ports.ComponentCache](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[ports.ManifestStore](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(pipe, fetcher, lib, componentCache, hasher, store, log), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			library.NodeID,
			config.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	application, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	lib, err := graft.Dep[ports.Library](ctx)
	if err != nil {
		return nil, err
	}
	cfg, err := graft.Dep[*config.Config](ctx)
	if err != nil {
		return nil, err
	}
	return &Components{
		App:     application,
		Logger:  log,
		Library: lib,
		Config:  cfg,
	}, nil
}
