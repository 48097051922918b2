package commands

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/marmos91/stowfs/internal/bytesize"
	"github.com/marmos91/stowfs/internal/cli/output"
	"github.com/marmos91/stowfs/pkg/storage"
)

var statCmd = &cobra.Command{
	Use:   "stat <path>",
	Short: "Show file metadata",
	Long: `Show size, modification time, MIME type, and visibility of a stored
file.

Examples:
  stowctl stat docs/readme.md
  stowctl stat docs/readme.md -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runStat,
}

// fileInfo collects the metadata shown by stat.
type fileInfo struct {
	Path         string    `json:"path" yaml:"path"`
	Size         int64     `json:"size" yaml:"size"`
	LastModified time.Time `json:"last_modified" yaml:"last_modified"`
	MimeType     string    `json:"mime_type,omitempty" yaml:"mime_type,omitempty"`
	Visibility   string    `json:"visibility,omitempty" yaml:"visibility,omitempty"`
}

func runStat(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx := cmd.Context()

	store, cleanup, err := openAdapter(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	info := fileInfo{Path: path}

	info.Size, err = store.Size(ctx, path)
	if err != nil {
		if storage.IsNotFound(err) {
			return fmt.Errorf("no such file: %s", path)
		}
		return err
	}

	info.LastModified, err = store.LastModified(ctx, path)
	if err != nil {
		return err
	}

	// MIME detection can legitimately come up empty
	mime, err := store.MimeType(ctx, path)
	switch {
	case err == nil:
		info.MimeType = mime
	case errors.Is(err, storage.ErrUnknownMimeType):
		info.MimeType = ""
	default:
		return err
	}

	// Visibility is a capability; skip the field when unsupported
	v, err := storage.GetVisibility(ctx, store, path)
	switch {
	case err == nil:
		info.Visibility = string(v)
	case storage.IsNotSupported(err):
		info.Visibility = ""
	default:
		return err
	}

	format, err := output.ParseFormat(outputFormat)
	if err != nil {
		return err
	}
	if format != output.FormatTable {
		return output.NewPrinter(os.Stdout, format, !noColor).Print(info)
	}

	pairs := [][2]string{
		{"Path", info.Path},
		{"Size", bytesize.ByteSize(info.Size).String()},
		{"Modified", info.LastModified.Format(time.RFC3339)},
	}
	if info.MimeType != "" {
		pairs = append(pairs, [2]string{"MIME type", info.MimeType})
	}
	if info.Visibility != "" {
		pairs = append(pairs, [2]string{"Visibility", info.Visibility})
	}
	return output.SimpleTable(os.Stdout, pairs)
}
