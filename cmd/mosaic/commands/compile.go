package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newCompileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile [file]",
		Short: "Compile a component and report hashes and dependencies",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := c.ingest(cmd, args)
			if err != nil {
				return err
			}
			force, _ := cmd.Flags().GetBool("force")
			if _, err := c.components.App.RequestExecutable(cmd.Context(), rec.ID, force); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "id:            %s\n", rec.ID)
			fmt.Fprintf(out, "original hash: %s\n", rec.OriginalHash)
			fmt.Fprintf(out, "compiled hash: %s\n", rec.CompiledHash)
			fmt.Fprintf(out, "dependencies:  %d\n", rec.Metrics.DependencyCount)
			fmt.Fprintf(out, "cache hit:     %t\n", rec.Metrics.CacheHit)
			fmt.Fprintf(out, "duration:      %s\n", rec.Metrics.CompileDuration)

			if printSource, _ := cmd.Flags().GetBool("print-source"); printSource {
				fmt.Fprintln(out, rec.CompiledSource)
			}
			return nil
		},
	}
	addSourceFlags(cmd)
	cmd.Flags().BoolP("force", "f", false, "Recompile even when a cached entry exists")
	cmd.Flags().Bool("print-source", false, "Print the compiled module text")
	return cmd
}
