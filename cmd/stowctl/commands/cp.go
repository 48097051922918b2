package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cpCmd = &cobra.Command{
	Use:   "cp <source> <destination>",
	Short: "Copy a file",
	Long: `Copy a file within the storage backend. An existing destination is
overwritten; parent directories of the destination are created as
needed.

Examples:
  stowctl cp docs/readme.md docs/readme.bak`,
	Args: cobra.ExactArgs(2),
	RunE: runCp,
}

func runCp(cmd *cobra.Command, args []string) error {
	source, destination := args[0], args[1]

	store, cleanup, err := openAdapter(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	copied, err := store.Copy(cmd.Context(), source, destination)
	if err != nil {
		return err
	}
	if !copied {
		return fmt.Errorf("no such file: %s", source)
	}

	printSuccess(fmt.Sprintf("Copied '%s' to '%s'", source, destination))
	return nil
}
