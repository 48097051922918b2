package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/marmos91/stowfs/internal/cli/output"
	"github.com/marmos91/stowfs/internal/logger"
	"github.com/marmos91/stowfs/pkg/config"
	"github.com/marmos91/stowfs/pkg/storage"
	"github.com/marmos91/stowfs/pkg/storage/instrument"
	"github.com/marmos91/stowfs/pkg/storage/store/badger"
	"github.com/marmos91/stowfs/pkg/storage/store/fs"
	"github.com/marmos91/stowfs/pkg/storage/store/memory"
	"github.com/marmos91/stowfs/pkg/storage/store/s3"
)

// openAdapter loads configuration, initializes logging, and builds the
// configured storage backend. The returned cleanup function closes the
// adapter and must be called before the command exits.
func openAdapter(ctx context.Context) (storage.Adapter, func(), error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}

	if err := logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}); err != nil {
		return nil, nil, err
	}

	store, err := buildBackend(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	if cfg.Metrics.Enabled {
		store = instrument.New(store, cfg.Storage.Backend, prometheus.DefaultRegisterer)
	}

	logger.Debug("storage backend ready", logger.Backend(cfg.Storage.Backend))

	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close storage backend", logger.Err(err))
		}
	}
	return store, cleanup, nil
}

// buildBackend constructs the adapter selected by cfg.Storage.Backend.
func buildBackend(ctx context.Context, cfg *config.Config) (storage.Adapter, error) {
	switch cfg.Storage.Backend {
	case "memory":
		return memory.New(), nil

	case "fs":
		return fs.NewWithPath(cfg.Storage.FS.Path)

	case "badger":
		return badger.New(badger.Config{
			Path:     cfg.Storage.Badger.Path,
			InMemory: cfg.Storage.Badger.InMemory,
		})

	case "s3":
		return s3.NewFromConfig(ctx, s3.Config{
			Bucket:         cfg.Storage.S3.Bucket,
			Region:         cfg.Storage.S3.Region,
			Endpoint:       cfg.Storage.S3.Endpoint,
			KeyPrefix:      cfg.Storage.S3.KeyPrefix,
			ForcePathStyle: cfg.Storage.S3.ForcePathStyle,
		})

	default:
		return nil, fmt.Errorf("unknown storage backend: %q", cfg.Storage.Backend)
	}
}

// parseVisibility converts a --visibility flag value into WriteOptions.
func parseVisibility(value string) (storage.WriteOptions, error) {
	if value == "" {
		return storage.WriteOptions{}, nil
	}
	v := storage.Visibility(value)
	if !v.Valid() {
		return storage.WriteOptions{}, fmt.Errorf("invalid visibility %q (valid: public, private)", value)
	}
	return storage.WriteOptions{Visibility: v}, nil
}

// printOutput prints data in the format selected by the global --output
// flag. For table format it displays emptyMsg if data is empty,
// otherwise uses the tableRenderer.
func printOutput(w io.Writer, data any, isEmpty bool, emptyMsg string, tableRenderer output.TableRenderer) error {
	format, err := output.ParseFormat(outputFormat)
	if err != nil {
		return err
	}

	switch format {
	case output.FormatJSON:
		return output.PrintJSON(w, data)
	case output.FormatYAML:
		return output.PrintYAML(w, data)
	default:
		if isEmpty {
			_, _ = fmt.Fprintln(w, emptyMsg)
			return nil
		}
		return output.PrintTable(w, tableRenderer)
	}
}

// printSuccess prints a success message when the output format is table.
func printSuccess(msg string) {
	format, err := output.ParseFormat(outputFormat)
	if err != nil || format != output.FormatTable {
		return
	}
	output.NewPrinter(os.Stdout, format, !noColor).Success(msg)
}
