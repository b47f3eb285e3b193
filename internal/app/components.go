package app

import (
	"github.com/mosaic-ui/mosaic/internal/adapters/config"
	"github.com/mosaic-ui/mosaic/internal/core/ports"
)

// Components contains all the initialized application components. This
// struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App     *App
	Logger  ports.Logger
	Library ports.Library
	Config  *config.Config
}
