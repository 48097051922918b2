//go:build integration

package badger_test

import (
	"path/filepath"
	"testing"

	"github.com/marmos91/stowfs/pkg/storage"
	"github.com/marmos91/stowfs/pkg/storage/storagetest"
	"github.com/marmos91/stowfs/pkg/storage/store/badger"
)

func TestConformance(t *testing.T) {
	storagetest.RunConformanceSuite(t, func(t *testing.T) storage.Adapter {
		dbPath := filepath.Join(t.TempDir(), "stowfs.db")
		store, err := badger.NewWithPath(dbPath)
		if err != nil {
			t.Fatalf("NewWithPath() failed: %v", err)
		}
		t.Cleanup(func() {
			store.Close()
		})
		return store
	})
}

// TestConformanceInMemory exercises the same contract against Badger's
// in-memory mode, which is what the CLI smoke tests use.
func TestConformanceInMemory(t *testing.T) {
	storagetest.RunConformanceSuite(t, func(t *testing.T) storage.Adapter {
		store, err := badger.New(badger.Config{InMemory: true})
		if err != nil {
			t.Fatalf("New() failed: %v", err)
		}
		t.Cleanup(func() {
			store.Close()
		})
		return store
	})
}
