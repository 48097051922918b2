package memory_test

import (
	"testing"

	"github.com/marmos91/stowfs/pkg/storage"
	"github.com/marmos91/stowfs/pkg/storage/storagetest"
	"github.com/marmos91/stowfs/pkg/storage/store/memory"
)

func TestConformance(t *testing.T) {
	storagetest.RunConformanceSuite(t, func(t *testing.T) storage.Adapter {
		return memory.New()
	})
}
