package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/stowfs/internal/cli/prompt"
)

var (
	rmRecursive bool
	rmForce     bool
)

var rmCmd = &cobra.Command{
	Use:   "rm <path>",
	Short: "Delete a file or directory",
	Long: `Delete a file from the storage backend. With --recursive, delete a
directory and everything under it.

Deleting a missing file is not an error.

Examples:
  # Delete a file
  stowctl rm docs/old.md

  # Delete a directory tree with confirmation
  stowctl rm docs -r

  # Delete without confirmation
  stowctl rm docs -r --force`,
	Args: cobra.ExactArgs(1),
	RunE: runRm,
}

func init() {
	rmCmd.Flags().BoolVarP(&rmRecursive, "recursive", "r", false, "Delete a directory and its contents")
	rmCmd.Flags().BoolVarP(&rmForce, "force", "f", false, "Skip confirmation prompt")
}

func runRm(cmd *cobra.Command, args []string) error {
	path := args[0]

	store, cleanup, err := openAdapter(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	if rmRecursive {
		confirmed, err := prompt.ConfirmWithForce(fmt.Sprintf("Delete directory '%s' and all its contents?", path), rmForce)
		if err != nil {
			if prompt.IsAborted(err) {
				fmt.Println("\nAborted.")
				return nil
			}
			return err
		}
		if !confirmed {
			fmt.Println("Aborted.")
			return nil
		}

		if err := store.DeleteDir(cmd.Context(), path); err != nil {
			return err
		}
		printSuccess(fmt.Sprintf("Directory '%s' deleted", path))
		return nil
	}

	if err := store.Delete(cmd.Context(), path); err != nil {
		return err
	}
	printSuccess(fmt.Sprintf("File '%s' deleted", path))
	return nil
}
