// Package statsbackend decorates a persistent backend with operation
// metrics.
package statsbackend

import (
	"context"
	"errors"
	"time"

	"github.com/owlworks/recall/backend"
	"github.com/owlworks/recall/internal/stats"
)

// Compile-time check that Backend implements backend.Backend.
var _ backend.Backend = (*Backend)(nil)

// Backend wraps another backend and records operation counts, failures
// and latencies through a stats collector.
type Backend struct {
	inner     backend.Backend
	collector stats.Collector
}

// New wraps inner with metric recording.
// The collector is optional; if nil, a no-op collector is used.
func New(inner backend.Backend, collector stats.Collector) *Backend {
	if collector == nil {
		collector = stats.NewNoop()
	}
	return &Backend{
		inner:     inner,
		collector: collector,
	}
}

// Contains reports whether a value is stored under key.
func (b *Backend) Contains(ctx context.Context, key string) (bool, error) {
	start := time.Now()
	ok, err := b.inner.Contains(ctx, key)
	b.record(stats.MetricBackendChecks, start, err)
	return ok, err
}

// Get returns the value stored under key.
func (b *Backend) Get(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	data, err := b.inner.Get(ctx, key)
	b.record(stats.MetricBackendGets, start, err)
	return data, err
}

// Set stores value under key.
func (b *Backend) Set(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	err := b.inner.Set(ctx, key, value)
	b.record(stats.MetricBackendSets, start, err)
	return err
}

// record counts the operation and its latency. A missing key is normal
// cache behavior, not a failure.
func (b *Backend) record(counter string, start time.Time, err error) {
	b.collector.IncCounter(counter, 1)
	b.collector.ObserveHistogram(stats.MetricBackendOpSeconds, time.Since(start).Seconds())
	if err != nil && !errors.Is(err, backend.ErrNotFound) {
		b.collector.IncCounter(stats.MetricBackendErrors, 1)
	}
}
