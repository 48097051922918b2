package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/stowfs/pkg/storage"
)

var mkdirVisibility string

var mkdirCmd = &cobra.Command{
	Use:   "mkdir <path>",
	Short: "Create a directory",
	Long: `Create a directory in the storage backend. Parent directories are
created as needed; creating an existing directory is not an error.

Examples:
  stowctl mkdir docs/archive
  stowctl mkdir shared --visibility public`,
	Args: cobra.ExactArgs(1),
	RunE: runMkdir,
}

func init() {
	mkdirCmd.Flags().StringVar(&mkdirVisibility, "visibility", "", "Visibility for the new directory (public|private)")
}

func runMkdir(cmd *cobra.Command, args []string) error {
	path := args[0]

	var opts storage.WriteOptions
	if mkdirVisibility != "" {
		v := storage.Visibility(mkdirVisibility)
		if !v.Valid() {
			return fmt.Errorf("invalid visibility %q (valid: public, private)", mkdirVisibility)
		}
		opts.DirVisibility = v
	}

	store, cleanup, err := openAdapter(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	if err := store.CreateDir(cmd.Context(), path, opts); err != nil {
		return err
	}

	printSuccess(fmt.Sprintf("Directory '%s' created", path))
	return nil
}
