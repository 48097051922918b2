package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

var catCmd = &cobra.Command{
	Use:   "cat <path>",
	Short: "Print file contents to stdout",
	Long: `Stream the contents of a stored file to stdout.

Examples:
  stowctl cat docs/readme.md`,
	Args: cobra.ExactArgs(1),
	RunE: runCat,
}

func runCat(cmd *cobra.Command, args []string) error {
	store, cleanup, err := openAdapter(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	rc, err := store.ReadStream(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	defer rc.Close()

	_, err = io.Copy(os.Stdout, rc)
	return err
}
