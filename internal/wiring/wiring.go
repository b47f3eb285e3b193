// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/mosaic-ui/mosaic/internal/adapters/cache"
	_ "github.com/mosaic-ui/mosaic/internal/adapters/config"
	_ "github.com/mosaic-ui/mosaic/internal/adapters/detect"
	_ "github.com/mosaic-ui/mosaic/internal/adapters/fetch"
	_ "github.com/mosaic-ui/mosaic/internal/adapters/hash"
	_ "github.com/mosaic-ui/mosaic/internal/adapters/library"
	_ "github.com/mosaic-ui/mosaic/internal/adapters/loader"
	_ "github.com/mosaic-ui/mosaic/internal/adapters/logger"
	_ "github.com/mosaic-ui/mosaic/internal/adapters/manifest"
	_ "github.com/mosaic-ui/mosaic/internal/adapters/rewrite"
	_ "github.com/mosaic-ui/mosaic/internal/adapters/telemetry/progrock"
	_ "github.com/mosaic-ui/mosaic/internal/adapters/transpile"
	// Register app and engine nodes.
	_ "github.com/mosaic-ui/mosaic/internal/app"
	_ "github.com/mosaic-ui/mosaic/internal/engine/pipeline"
)
