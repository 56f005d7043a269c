// Package stats provides a unified interface for collecting cache metrics.
package stats

// Metric names used throughout the library.
const (
	// Transient memoizer metrics.
	MetricCalls     = "recall_calls_total"
	MetricHits      = "recall_hits_total"
	MetricMisses    = "recall_misses_total"
	MetricEvictions = "recall_evictions_total"
	MetricEntries   = "recall_entries"

	// Persistent memoizer metrics.
	MetricBackendHits   = "recall_backend_hits_total"
	MetricBackendMisses = "recall_backend_misses_total"
	MetricBackendWrites = "recall_backend_writes_total"

	// Backend operation metrics recorded by the instrumented backend.
	MetricBackendChecks    = "recall_backend_checks_total"
	MetricBackendGets      = "recall_backend_gets_total"
	MetricBackendSets      = "recall_backend_sets_total"
	MetricBackendErrors    = "recall_backend_errors_total"
	MetricBackendOpSeconds = "recall_backend_op_seconds"
)

// Collector defines the interface for collecting metrics.
type Collector interface {
	// IncCounter increments a counter metric by delta.
	IncCounter(name string, delta int64)

	// SetGauge sets a gauge metric to value.
	SetGauge(name string, value int64)

	// ObserveHistogram records a value in a histogram metric.
	ObserveHistogram(name string, value float64)
}
