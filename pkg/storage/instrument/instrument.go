// Package instrument wraps a storage.Adapter with Prometheus metrics.
//
// The wrapper records an operation counter (labelled by operation and
// status), a duration histogram and a bytes-transferred counter for
// every adapter call, then delegates to the wrapped adapter unchanged.
//
// Example usage:
//
//	store := memory.New()
//	instrumented := instrument.New(store, "memory", prometheus.DefaultRegisterer)
//	data, err := instrumented.Read(ctx, "file.txt")
package instrument

import (
	"context"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/marmos91/stowfs/pkg/storage"
)

// Metrics holds the Prometheus collectors shared by instrumented adapters.
type Metrics struct {
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	bytesTransferred  *prometheus.CounterVec
}

// NewMetrics registers the storage collectors against reg.
//
// Call this once per registry; registering the same collectors twice
// panics, which is the promauto contract.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		operationsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "stowfs_storage_operations_total",
				Help: "Total number of storage operations by backend, operation and status",
			},
			[]string{"backend", "operation", "status"},
		),
		operationDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "stowfs_storage_operation_duration_milliseconds",
				Help: "Duration of storage operations in milliseconds",
				Buckets: []float64{
					1,    // 1ms - in-memory operations
					10,   // 10ms - local disk
					50,   // 50ms
					100,  // 100ms - remote metadata calls
					500,  // 500ms
					1000, // 1s - remote transfers
					5000, // 5s - large objects
				},
			},
			[]string{"backend", "operation"},
		),
		bytesTransferred: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "stowfs_storage_bytes_transferred_total",
				Help: "Total bytes read from and written to storage",
			},
			[]string{"backend", "direction"},
		),
	}
}

func (m *Metrics) observe(backend, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.operationsTotal.WithLabelValues(backend, operation, status).Inc()
	m.operationDuration.WithLabelValues(backend, operation).Observe(float64(time.Since(start).Milliseconds()))
}

func (m *Metrics) recordBytes(backend, direction string, bytes int64) {
	if bytes <= 0 {
		return
	}
	m.bytesTransferred.WithLabelValues(backend, direction).Add(float64(bytes))
}

// adapter instruments the base contract.
type adapter struct {
	inner   storage.Adapter
	backend string
	metrics *Metrics
}

// visibilityAdapter additionally forwards the visibility capability.
// Used when the wrapped adapter supports it, so capability probes on
// the instrumented adapter report the same answer as on the inner one.
type visibilityAdapter struct {
	adapter
	vis storage.VisibilityAdapter
}

// New wraps inner with metrics registered against reg. The backend
// label tags every sample, so one registry can serve several adapters.
//
// The returned adapter implements storage.VisibilityAdapter exactly
// when inner does.
func New(inner storage.Adapter, backend string, reg prometheus.Registerer) storage.Adapter {
	return WithMetrics(inner, backend, NewMetrics(reg))
}

// WithMetrics wraps inner using already-registered collectors. Use this
// when instrumenting several backends against the same registry.
func WithMetrics(inner storage.Adapter, backend string, m *Metrics) storage.Adapter {
	base := adapter{inner: inner, backend: backend, metrics: m}
	if vis := storage.AsVisibilityAdapter(inner); vis != nil {
		return &visibilityAdapter{adapter: base, vis: vis}
	}
	return &base
}

func (a *adapter) Write(ctx context.Context, path string, contents []byte, opts storage.WriteOptions) error {
	start := time.Now()
	err := a.inner.Write(ctx, path, contents, opts)
	a.metrics.observe(a.backend, "write", start, err)
	if err == nil {
		a.metrics.recordBytes(a.backend, "write", int64(len(contents)))
	}
	return err
}

func (a *adapter) WriteStream(ctx context.Context, path string, r io.Reader, opts storage.WriteOptions) error {
	start := time.Now()
	counted := &countingReader{r: r}
	err := a.inner.WriteStream(ctx, path, counted, opts)
	a.metrics.observe(a.backend, "write_stream", start, err)
	if err == nil {
		a.metrics.recordBytes(a.backend, "write", counted.n)
	}
	return err
}

func (a *adapter) Read(ctx context.Context, path string) ([]byte, error) {
	start := time.Now()
	data, err := a.inner.Read(ctx, path)
	a.metrics.observe(a.backend, "read", start, err)
	if err == nil {
		a.metrics.recordBytes(a.backend, "read", int64(len(data)))
	}
	return data, err
}

func (a *adapter) ReadStream(ctx context.Context, path string) (io.ReadCloser, error) {
	start := time.Now()
	rc, err := a.inner.ReadStream(ctx, path)
	a.metrics.observe(a.backend, "read_stream", start, err)
	if err != nil {
		return nil, err
	}
	return &countingReadCloser{rc: rc, adapter: a}, nil
}

func (a *adapter) Has(ctx context.Context, path string) (bool, error) {
	start := time.Now()
	ok, err := a.inner.Has(ctx, path)
	a.metrics.observe(a.backend, "has", start, err)
	return ok, err
}

func (a *adapter) Delete(ctx context.Context, path string) error {
	start := time.Now()
	err := a.inner.Delete(ctx, path)
	a.metrics.observe(a.backend, "delete", start, err)
	return err
}

func (a *adapter) DeleteDir(ctx context.Context, path string) error {
	start := time.Now()
	err := a.inner.DeleteDir(ctx, path)
	a.metrics.observe(a.backend, "delete_dir", start, err)
	return err
}

func (a *adapter) CreateDir(ctx context.Context, path string, opts storage.WriteOptions) error {
	start := time.Now()
	err := a.inner.CreateDir(ctx, path, opts)
	a.metrics.observe(a.backend, "create_dir", start, err)
	return err
}

func (a *adapter) Copy(ctx context.Context, source, destination string) (bool, error) {
	start := time.Now()
	ok, err := a.inner.Copy(ctx, source, destination)
	a.metrics.observe(a.backend, "copy", start, err)
	return ok, err
}

func (a *adapter) Rename(ctx context.Context, source, destination string) (bool, error) {
	start := time.Now()
	ok, err := a.inner.Rename(ctx, source, destination)
	a.metrics.observe(a.backend, "rename", start, err)
	return ok, err
}

func (a *adapter) ListContents(ctx context.Context, path string, recursive bool) ([]storage.Entry, error) {
	start := time.Now()
	entries, err := a.inner.ListContents(ctx, path, recursive)
	a.metrics.observe(a.backend, "list_contents", start, err)
	return entries, err
}

func (a *adapter) Size(ctx context.Context, path string) (int64, error) {
	start := time.Now()
	size, err := a.inner.Size(ctx, path)
	a.metrics.observe(a.backend, "size", start, err)
	return size, err
}

func (a *adapter) LastModified(ctx context.Context, path string) (time.Time, error) {
	start := time.Now()
	mod, err := a.inner.LastModified(ctx, path)
	a.metrics.observe(a.backend, "last_modified", start, err)
	return mod, err
}

func (a *adapter) MimeType(ctx context.Context, path string) (string, error) {
	start := time.Now()
	mime, err := a.inner.MimeType(ctx, path)
	a.metrics.observe(a.backend, "mime_type", start, err)
	return mime, err
}

func (a *adapter) Close() error {
	start := time.Now()
	err := a.inner.Close()
	a.metrics.observe(a.backend, "close", start, err)
	return err
}

func (a *visibilityAdapter) Visibility(ctx context.Context, path string) (storage.Visibility, error) {
	start := time.Now()
	v, err := a.vis.Visibility(ctx, path)
	a.metrics.observe(a.backend, "visibility", start, err)
	return v, err
}

func (a *visibilityAdapter) SetVisibility(ctx context.Context, path string, visibility storage.Visibility) (storage.Entry, error) {
	start := time.Now()
	entry, err := a.vis.SetVisibility(ctx, path, visibility)
	a.metrics.observe(a.backend, "set_visibility", start, err)
	return entry, err
}

// countingReader counts bytes pulled through WriteStream.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// countingReadCloser records read bytes when the stream is closed.
type countingReadCloser struct {
	rc      io.ReadCloser
	adapter *adapter
	n       int64
}

func (c *countingReadCloser) Read(p []byte) (int, error) {
	n, err := c.rc.Read(p)
	c.n += int64(n)
	return n, err
}

func (c *countingReadCloser) Close() error {
	c.adapter.metrics.recordBytes(c.adapter.backend, "read", c.n)
	return c.rc.Close()
}

var (
	_ storage.Adapter           = (*adapter)(nil)
	_ storage.Adapter           = (*visibilityAdapter)(nil)
	_ storage.VisibilityAdapter = (*visibilityAdapter)(nil)
)
