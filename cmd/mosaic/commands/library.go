package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newLibraryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "library",
		Short: "List the built-in component library",
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range c.components.Library.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}
