package commands

import (
	"bytes"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/marmos91/stowfs/internal/logger"
	"github.com/marmos91/stowfs/pkg/storage"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the configured backend is usable",
	Long: `Run a write/read/delete round trip against the configured backend
using a unique scratch path. The scratch file is removed afterwards.

Examples:
  stowctl check
  STOWFS_STORAGE_BACKEND=memory stowctl check`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, cleanup, err := openAdapter(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	// A UUID path avoids clobbering real data on shared backends
	scratch := fmt.Sprintf(".stowfs-check/%s", uuid.NewString())
	payload := []byte(fmt.Sprintf("stowfs check %s", time.Now().Format(time.RFC3339)))

	start := time.Now()

	if err := store.Write(ctx, scratch, payload, storage.WriteOptions{}); err != nil {
		return fmt.Errorf("write failed: %w", err)
	}

	read, err := store.Read(ctx, scratch)
	if err != nil {
		return fmt.Errorf("read back failed: %w", err)
	}
	if !bytes.Equal(read, payload) {
		return fmt.Errorf("read back returned different contents")
	}

	if err := store.Delete(ctx, scratch); err != nil {
		return fmt.Errorf("cleanup delete failed: %w", err)
	}
	if err := store.DeleteDir(ctx, ".stowfs-check"); err != nil {
		return fmt.Errorf("cleanup delete failed: %w", err)
	}

	logger.Debug("check round trip complete",
		logger.Path(scratch),
		logger.DurationMs(logger.Duration(start)))

	printSuccess("Backend check passed")
	return nil
}
