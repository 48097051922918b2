package commands

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/marmos91/stowfs/internal/bytesize"
	"github.com/marmos91/stowfs/pkg/storage"
)

var lsRecursive bool

var lsCmd = &cobra.Command{
	Use:   "ls [path]",
	Short: "List directory contents",
	Long: `List the contents of a directory in the storage backend.

Without a path argument the root is listed.

Examples:
  # List the root
  stowctl ls

  # List a subdirectory recursively
  stowctl ls docs -r

  # List as JSON
  stowctl ls docs -o json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLs,
}

func init() {
	lsCmd.Flags().BoolVarP(&lsRecursive, "recursive", "r", false, "List recursively")
}

// EntryList is a list of entries for table rendering.
type EntryList []storage.Entry

// Headers implements TableRenderer.
func (el EntryList) Headers() []string {
	return []string{"NAME", "TYPE", "SIZE", "MODIFIED", "VISIBILITY"}
}

// Rows implements TableRenderer.
func (el EntryList) Rows() [][]string {
	rows := make([][]string, 0, len(el))
	for _, e := range el {
		size := "-"
		if e.IsFile() {
			size = bytesize.ByteSize(e.Size).String()
		}
		modified := "-"
		if !e.ModTime.IsZero() {
			modified = e.ModTime.Format(time.RFC3339)
		}
		visibility := string(e.Visibility)
		if visibility == "" {
			visibility = "-"
		}
		rows = append(rows, []string{e.Path, e.Kind.String(), size, modified, visibility})
	}
	return rows
}

func runLs(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}

	store, cleanup, err := openAdapter(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	entries, err := store.ListContents(cmd.Context(), path, lsRecursive)
	if err != nil {
		return err
	}

	return printOutput(os.Stdout, entries, len(entries) == 0, "No entries found.", EntryList(entries))
}
