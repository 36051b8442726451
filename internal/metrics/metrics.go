package metrics

import (
	"sync"
	"time"
)

type opStats struct {
	calls       int
	errors      int
	lastLatency time.Duration
}

type uploadStats struct {
	accepted int
	rejected int
	bytes    int64
}

type cacheStats struct {
	hits   int
	misses int
}

// Recorder captures lightweight, in-memory metrics about store operations,
// image uploads and cache lookups, mirroring them to OpenTelemetry when
// instruments are configured.
type Recorder struct {
	mu      sync.Mutex
	ops     map[string]*opStats
	uploads uploadStats
	cache   cacheStats
	otel    *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		ops:  make(map[string]*opStats),
		otel: otel,
	}
}

// RecordStoreOp increments counters for a store operation and stores the last observed latency.
func (r *Recorder) RecordStoreOp(op string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats, ok := r.ops[op]
	if !ok {
		stats = &opStats{}
		r.ops[op] = stats
	}
	stats.calls++
	stats.lastLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordStoreOp(op, duration, err)
	}
}

// RecordUpload tracks an accepted image upload of size bytes.
func (r *Recorder) RecordUpload(size int64) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.uploads.accepted++
	r.uploads.bytes += size
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordUpload(size)
	}
}

// RecordUploadRejected tracks an upload refused for reason.
func (r *Recorder) RecordUploadRejected(reason string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.uploads.rejected++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordUploadRejected(reason)
	}
}

// RecordCacheLookup tracks a listing cache hit or miss.
func (r *Recorder) RecordCacheLookup(hit bool) {
	if r == nil {
		return
	}
	r.mu.Lock()
	if hit {
		r.cache.hits++
	} else {
		r.cache.misses++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordCacheLookup(hit)
	}
}

// StoreCalls returns the total calls recorded for a store operation.
func (r *Recorder) StoreCalls(op string) int {
	return r.Snapshot(op).Calls
}

// StoreErrors returns the failed calls recorded for a store operation.
func (r *Recorder) StoreErrors(op string) int {
	return r.Snapshot(op).Errors
}

// Snapshot returns a copy of the current stats for a store operation.
type Snapshot struct {
	Calls       int
	Errors      int
	LastLatency time.Duration
}

func (r *Recorder) Snapshot(op string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.ops[op]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:       stats.calls,
		Errors:      stats.errors,
		LastLatency: stats.lastLatency,
	}
}

// UploadSnapshot summarises recorded uploads.
type UploadSnapshot struct {
	Accepted int
	Rejected int
	Bytes    int64
}

func (r *Recorder) Uploads() UploadSnapshot {
	if r == nil {
		return UploadSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return UploadSnapshot{Accepted: r.uploads.accepted, Rejected: r.uploads.rejected, Bytes: r.uploads.bytes}
}

// CacheHits returns hits and misses recorded so far.
func (r *Recorder) CacheHits() (hits, misses int) {
	if r == nil {
		return 0, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cache.hits, r.cache.misses
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}
