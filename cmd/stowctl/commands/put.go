package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var putVisibility string

var putCmd = &cobra.Command{
	Use:   "put <local-file> <path>",
	Short: "Upload a local file",
	Long: `Upload a local file to the storage backend. Parent directories are
created as needed. Use "-" as the local file to read from stdin.

Examples:
  # Upload a file
  stowctl put ./report.pdf reports/2026/report.pdf

  # Upload from stdin with public visibility
  cat notes.txt | stowctl put - notes/today.txt --visibility public`,
	Args: cobra.ExactArgs(2),
	RunE: runPut,
}

func init() {
	putCmd.Flags().StringVar(&putVisibility, "visibility", "", "Visibility for the new file (public|private)")
}

func runPut(cmd *cobra.Command, args []string) error {
	local, remote := args[0], args[1]

	opts, err := parseVisibility(putVisibility)
	if err != nil {
		return err
	}

	var r io.Reader
	if local == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(local)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", local, err)
		}
		defer f.Close()
		r = f
	}

	store, cleanup, err := openAdapter(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	if err := store.WriteStream(cmd.Context(), remote, r, opts); err != nil {
		return err
	}

	printSuccess(fmt.Sprintf("Uploaded to '%s'", remote))
	return nil
}
