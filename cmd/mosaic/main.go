// Package main is the entry point for the mosaic component pipeline.
package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/grindlemire/graft"

	"github.com/mosaic-ui/mosaic/cmd/mosaic/commands"
	"github.com/mosaic-ui/mosaic/internal/adapters/config"
	"github.com/mosaic-ui/mosaic/internal/app"
	_ "github.com/mosaic-ui/mosaic/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	applyConfigFlag(os.Args[1:])

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available if initialization failed.
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}

	cli := commands.New(components)
	if err := cli.Execute(ctx); err != nil {
		components.Logger.Error(err)
		return 1
	}
	return 0
}

// applyConfigFlag maps --config onto the discovery env var. Adapters resolve
// configuration while the dependency graph executes, before cobra parses
// flags, so the override has to land first.
func applyConfigFlag(args []string) {
	for i, arg := range args {
		switch {
		case arg == "--config" || arg == "-c":
			if i+1 < len(args) {
				_ = os.Setenv(config.EnvConfigPath, args[i+1])
			}
		case strings.HasPrefix(arg, "--config="):
			_ = os.Setenv(config.EnvConfigPath, strings.TrimPrefix(arg, "--config="))
		}
	}
}
