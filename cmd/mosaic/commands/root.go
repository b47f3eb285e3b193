// Package commands implements the CLI commands for the mosaic component
// pipeline.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/mosaic-ui/mosaic/internal/app"
	"github.com/mosaic-ui/mosaic/internal/build"
)

// CLI represents the command line interface for mosaic.
type CLI struct {
	components *app.Components
	rootCmd    *cobra.Command
}

// New creates a new CLI instance over the initialized components.
func New(components *app.Components) *CLI {
	rootCmd := &cobra.Command{
		Use:           "mosaic",
		Short:         "Compile and run dynamic UI components",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	// Consumed before the graph initializes; see cmd/mosaic/main.go.
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the configuration file")

	c := &CLI{
		components: components,
		rootCmd:    rootCmd,
	}

	rootCmd.AddCommand(c.newCompileCmd())
	rootCmd.AddCommand(c.newRenderCmd())
	rootCmd.AddCommand(c.newLibraryCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput redirects command output. Used for testing.
func (c *CLI) SetOutput(w io.Writer) {
	c.rootCmd.SetOut(w)
	c.rootCmd.SetErr(w)
}
