package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (c *CLI) newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Compile a component and print its rendered markup",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := c.ingest(cmd, args)
			if err != nil {
				return err
			}
			force, _ := cmd.Flags().GetBool("force")
			exec, err := c.components.App.RequestExecutable(cmd.Context(), rec.ID, force)
			if err != nil {
				return err
			}

			pairs, _ := cmd.Flags().GetStringArray("prop")
			props := make(map[string]any, len(pairs))
			for _, pair := range pairs {
				key, value, _ := strings.Cut(pair, "=")
				props[key] = value
			}

			node, err := exec.Constructor.Render(props)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), node.HTML())
			return nil
		},
	}
	addSourceFlags(cmd)
	cmd.Flags().BoolP("force", "f", false, "Recompile even when a cached entry exists")
	cmd.Flags().StringArray("prop", nil, "Component prop as key=value (repeatable)")
	return cmd
}
