package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/zerr"

	"github.com/mosaic-ui/mosaic/internal/core/domain"
)

// addSourceFlags registers the flags shared by commands that take component
// source from one of the three origins.
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().String("url", "", "Fetch component source from a remote URL")
	cmd.Flags().String("builtin", "", "Use a built-in library component")
}

// ingest resolves the command's source selection into a component record:
// a remote URL, a built-in name, or a file argument ("-" reads stdin).
func (c *CLI) ingest(cmd *cobra.Command, args []string) (*domain.ComponentRecord, error) {
	url, _ := cmd.Flags().GetString("url")
	builtin, _ := cmd.Flags().GetString("builtin")

	switch {
	case url != "":
		return c.components.App.IngestRemote(cmd.Context(), url)
	case builtin != "":
		return c.components.App.IngestBuiltin(builtin)
	case len(args) == 1:
		source, err := readSource(cmd, args[0])
		if err != nil {
			return nil, err
		}
		return c.components.App.IngestGenerated(source, "")
	default:
		return nil, zerr.New("no component source: pass a file, --url, or --builtin")
	}
}

func readSource(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", zerr.Wrap(err, "failed to read source from stdin")
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", zerr.Wrap(err, "failed to read source file")
	}
	return string(data), nil
}
