package fs_test

import (
	"testing"

	"github.com/marmos91/stowfs/pkg/storage"
	"github.com/marmos91/stowfs/pkg/storage/storagetest"
	"github.com/marmos91/stowfs/pkg/storage/store/fs"
)

func TestConformance(t *testing.T) {
	storagetest.RunConformanceSuite(t, func(t *testing.T) storage.Adapter {
		store, err := fs.NewWithPath(t.TempDir())
		if err != nil {
			t.Fatalf("NewWithPath() failed: %v", err)
		}
		t.Cleanup(func() {
			store.Close()
		})
		return store
	})
}
