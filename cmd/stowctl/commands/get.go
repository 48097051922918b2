package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/marmos91/stowfs/pkg/storage"
)

var getCmd = &cobra.Command{
	Use:   "get <path> [local-file]",
	Short: "Download a file",
	Long: `Download a stored file to the local filesystem. Without a local file
argument the file is written next to the working directory under its
base name. Use "-" to write to stdout.

Examples:
  # Download to ./report.pdf
  stowctl get reports/2026/report.pdf

  # Download to a specific location
  stowctl get reports/2026/report.pdf /tmp/report.pdf

  # Stream to stdout
  stowctl get notes/today.txt -`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	remote := args[0]

	local := filepath.Base(remote)
	if len(args) == 2 {
		local = args[1]
	}

	store, cleanup, err := openAdapter(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	rc, err := store.ReadStream(cmd.Context(), remote)
	if err != nil {
		if storage.IsNotFound(err) {
			return fmt.Errorf("no such file: %s", remote)
		}
		return err
	}
	defer rc.Close()

	if local == "-" {
		_, err = io.Copy(os.Stdout, rc)
		return err
	}

	f, err := os.Create(local)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", local, err)
	}

	if _, err := io.Copy(f, rc); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	printSuccess(fmt.Sprintf("Downloaded '%s' to '%s'", remote, local))
	return nil
}
