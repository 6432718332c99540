// Package commands implements the back office command line.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gamevault/backoffice/internal/infra/dependency"
)

// Provider resolves the wired application for a command run.
type Provider func(ctx context.Context) (*dependency.Injector, error)

func writeJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// readInput reads a JSON body from path, or from the command's stdin when path is "-".
func readInput(cmd *cobra.Command, path string, v interface{}) error {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}

	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("failed to decode request: %w", err)
	}
	return nil
}
