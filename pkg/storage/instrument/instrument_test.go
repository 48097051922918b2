package instrument_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/stowfs/pkg/storage"
	"github.com/marmos91/stowfs/pkg/storage/instrument"
	"github.com/marmos91/stowfs/pkg/storage/store/memory"
	"github.com/marmos91/stowfs/pkg/storage/storagetest"
)

func TestConformance(t *testing.T) {
	// The decorator must be contract-transparent
	storagetest.RunConformanceSuite(t, func(t *testing.T) storage.Adapter {
		reg := prometheus.NewRegistry()
		store := instrument.New(memory.New(), "memory", reg)
		t.Cleanup(func() {
			store.Close()
		})
		return store
	})
}

func TestOperationCounters(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	store := instrument.New(memory.New(), "memory", reg)
	defer store.Close()

	require.NoError(t, store.Write(ctx, "file.txt", []byte("contents"), storage.WriteOptions{}))

	_, err := store.Read(ctx, "file.txt")
	require.NoError(t, err)

	_, err = store.Read(ctx, "missing.txt")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	metrics, err := reg.Gather()
	require.NoError(t, err)

	counts := map[string]float64{}
	for _, mf := range metrics {
		if mf.GetName() != "stowfs_storage_operations_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			var op, status string
			for _, label := range m.GetLabel() {
				switch label.GetName() {
				case "operation":
					op = label.GetValue()
				case "status":
					status = label.GetValue()
				}
			}
			counts[op+"/"+status] = m.GetCounter().GetValue()
		}
	}

	assert.Equal(t, 1.0, counts["write/success"])
	assert.Equal(t, 1.0, counts["read/success"])
	assert.Equal(t, 1.0, counts["read/error"])
}

func TestBytesTransferred(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	store := instrument.New(memory.New(), "memory", reg)
	defer store.Close()

	payload := []byte("twelve bytes")
	require.NoError(t, store.Write(ctx, "file.txt", payload, storage.WriteOptions{}))

	data, err := store.Read(ctx, "file.txt")
	require.NoError(t, err)
	require.Equal(t, payload, data)

	metrics, err := reg.Gather()
	require.NoError(t, err)

	byDirection := map[string]float64{}
	for _, mf := range metrics {
		if mf.GetName() != "stowfs_storage_bytes_transferred_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, label := range m.GetLabel() {
				if label.GetName() == "direction" {
					byDirection[label.GetValue()] = m.GetCounter().GetValue()
				}
			}
		}
	}

	assert.Equal(t, float64(len(payload)), byDirection["write"])
	assert.Equal(t, float64(len(payload)), byDirection["read"])
}

func TestVisibilityCapabilityForwarded(t *testing.T) {
	reg := prometheus.NewRegistry()

	store := instrument.New(memory.New(), "memory", reg)
	defer store.Close()

	// memory supports visibility, so the wrapper must too
	assert.NotNil(t, storage.AsVisibilityAdapter(store))
}
