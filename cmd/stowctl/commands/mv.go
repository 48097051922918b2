package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var mvCmd = &cobra.Command{
	Use:   "mv <source> <destination>",
	Short: "Move a file",
	Long: `Move a file within the storage backend. An existing destination is
overwritten; parent directories of the destination are created as
needed.

Examples:
  stowctl mv drafts/post.md published/post.md`,
	Args: cobra.ExactArgs(2),
	RunE: runMv,
}

func runMv(cmd *cobra.Command, args []string) error {
	source, destination := args[0], args[1]

	store, cleanup, err := openAdapter(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	moved, err := store.Rename(cmd.Context(), source, destination)
	if err != nil {
		return err
	}
	if !moved {
		return fmt.Errorf("no such file: %s", source)
	}

	printSuccess(fmt.Sprintf("Moved '%s' to '%s'", source, destination))
	return nil
}
