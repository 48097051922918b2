// Package storagetest provides a conformance test suite for storage adapter
// implementations.
//
// All adapter backends (memory, fs, badger, s3) should pass these tests.
// The suite verifies that every implementation satisfies the storage.Adapter
// behavioral contract — write/read round-trips, absence sentinels, deletion
// no-ops, listing partitioning, copy/move collision policy and the optional
// visibility capability — catching regressions when adapter code changes.
//
// Usage:
//
//	func TestConformance(t *testing.T) {
//	    storagetest.RunConformanceSuite(t, func(t *testing.T) storage.Adapter {
//	        return memory.New()
//	    })
//	}
//
// The factory function receives *testing.T so it can call t.TempDir() for
// adapters that need filesystem paths (e.g., BadgerDB) and t.Cleanup for
// teardown. The factory may return a shared long-lived backend (e.g. one S3
// bucket): the suite empties the backing store before every scenario, so
// scenarios never observe leftover state from a previous run.
package storagetest
