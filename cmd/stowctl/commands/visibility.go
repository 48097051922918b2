package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/stowfs/pkg/storage"
)

var visibilityCmd = &cobra.Command{
	Use:   "visibility",
	Short: "Get or set entry visibility",
	Long: `Get or set the visibility of a stored file or directory.

Not every backend supports visibility; unsupported backends report an
error without touching the entry.

Subcommands:
  get  Show the visibility of a path
  set  Change the visibility of a path`,
}

var visibilityGetCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Show the visibility of a path",
	Args:  cobra.ExactArgs(1),
	RunE:  runVisibilityGet,
}

var visibilitySetCmd = &cobra.Command{
	Use:   "set <path> <public|private>",
	Short: "Change the visibility of a path",
	Args:  cobra.ExactArgs(2),
	RunE:  runVisibilitySet,
}

func init() {
	visibilityCmd.AddCommand(visibilityGetCmd)
	visibilityCmd.AddCommand(visibilitySetCmd)
}

func runVisibilityGet(cmd *cobra.Command, args []string) error {
	path := args[0]

	store, cleanup, err := openAdapter(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	v, err := storage.GetVisibility(cmd.Context(), store, path)
	if err != nil {
		if storage.IsNotSupported(err) {
			return fmt.Errorf("the configured backend does not support visibility")
		}
		if storage.IsNotFound(err) {
			return fmt.Errorf("no such path: %s", path)
		}
		return err
	}

	fmt.Println(v)
	return nil
}

func runVisibilitySet(cmd *cobra.Command, args []string) error {
	path := args[0]

	v := storage.Visibility(args[1])
	if !v.Valid() {
		return fmt.Errorf("invalid visibility %q (valid: public, private)", args[1])
	}

	store, cleanup, err := openAdapter(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	entry, err := storage.SetVisibility(cmd.Context(), store, path, v)
	if err != nil {
		if storage.IsNotSupported(err) {
			return fmt.Errorf("the configured backend does not support visibility")
		}
		if storage.IsNotFound(err) {
			return fmt.Errorf("no such path: %s", path)
		}
		return err
	}

	printSuccess(fmt.Sprintf("Visibility of '%s' set to %s", entry.Path, entry.Visibility))
	return nil
}
