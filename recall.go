// Package recall provides two-tier function memoization: a transient,
// in-process, size-bounded tier keyed by derived call arguments, and a
// persistent tier that writes through a pluggable storage backend selected
// per dynamic scope.
//
// Example usage:
//
//	memo, err := recall.New(func(ctx context.Context, args ...any) (int, error) {
//	    return expensive(args[0].(int), args[1].(int)), nil
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	sum, err := memo.Call(ctx, 1, 2) // computed
//	sum, err = memo.Call(ctx, 1, 2)  // served from cache
//
// Persistent memoization activates only inside a backend scope:
//
//	ctx = recall.WithBackend(ctx, fsBackend)
//	result, err := persistentMemo.Call(ctx, 10)
package recall

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"github.com/owlworks/recall/internal/keyer"
	"github.com/owlworks/recall/internal/registry"
	"github.com/owlworks/recall/internal/stats"
)

// Sentinel errors for well-defined error conditions.
var (
	// ErrNoFunc indicates no function was provided.
	ErrNoFunc = errors.New("recall: no function provided")

	// ErrNoName indicates a persistent memoizer was created without a name.
	ErrNoName = errors.New("recall: persistent memoizer requires a name")

	// ErrKeyDerivation indicates the call's arguments could not be turned
	// into a cache key.
	ErrKeyDerivation = errors.New("recall: cannot derive cache key from arguments")

	// ErrCodec indicates a stored value could not be encoded or decoded.
	ErrCodec = errors.New("recall: cache value codec failure")

	// ErrBadCacheSize indicates a non-positive cache size other than Unbounded.
	ErrBadCacheSize = errors.New("recall: cache size must be positive or Unbounded")
)

const (
	// DefaultCacheSize bounds a cache when no size is given.
	DefaultCacheSize = 5

	// Unbounded disables capacity enforcement for a cache.
	Unbounded = -1
)

// Func is a memoizable function. Arguments must be derivable into a cache
// key by the configured mapper; results must be serializable when used
// with a persistent memoizer.
type Func[R any] func(ctx context.Context, args ...any) (R, error)

// Mapper derives a cache key from a call's arguments. The returned value
// is used verbatim; equal keys mark calls as equivalent for memoization.
// The value must be usable as a map key.
type Mapper func(args ...any) (any, error)

// CallOptions controls caching for a single call. The zero value uses the
// default cache with the memoizer's default size.
type CallOptions struct {
	// Cache names the cache to use. Empty string is the default cache.
	Cache string

	// Disable bypasses caching entirely for this call: the function runs
	// and no cache is read or written.
	Disable bool

	// Size bounds the named cache for this call. Zero means the
	// memoizer's default; Unbounded disables eviction. A smaller size
	// than previous calls used retroactively shrinks the cache.
	Size int
}

// Memo memoizes a function in process memory. Each Memo owns a registry
// of independently-sized named caches, created lazily per cache name.
// A Memo is safe for concurrent use by multiple goroutines.
type Memo[R any] struct {
	fn          Func[R]
	keyer       keyer.Keyer
	registry    *registry.Registry
	defaultSize int
	stats       stats.Collector
	logger      *zap.Logger
}

// New creates a memoized version of fn with the given options.
func New[R any](fn Func[R], opts ...Option) (*Memo[R], error) {
	if fn == nil {
		return nil, ErrNoFunc
	}

	cfg := defaultOptions()
	for _, opt := range opts {
		opt.apply(&cfg)
	}
	if cfg.defaultSize != Unbounded && cfg.defaultSize < 1 {
		return nil, fmt.Errorf("%w: %d", ErrBadCacheSize, cfg.defaultSize)
	}

	m := &Memo[R]{
		fn:          fn,
		keyer:       cfg.keyer,
		registry:    registry.New(),
		defaultSize: cfg.defaultSize,
		stats:       cfg.stats,
		logger:      cfg.logger,
	}

	m.logger.Debug("memoizer initialized",
		zap.Int("defaultCacheSize", m.defaultSize),
	)

	return m, nil
}

// Call invokes the memoized function through the default cache.
func (m *Memo[R]) Call(ctx context.Context, args ...any) (R, error) {
	return m.CallWith(ctx, CallOptions{}, args...)
}

// CallWith invokes the memoized function with per-call cache controls.
// On a hit the stored result is returned and fn does not run. On a miss
// fn runs and its result is stored under the derived key. Errors from fn
// are returned unstored.
func (m *Memo[R]) CallWith(ctx context.Context, co CallOptions, args ...any) (R, error) {
	var zero R

	if co.Disable {
		return m.fn(ctx, args...)
	}

	size := co.Size
	if size == 0 {
		size = m.defaultSize
	}
	if size != Unbounded && size < 1 {
		return zero, fmt.Errorf("%w: %d", ErrBadCacheSize, co.Size)
	}

	m.stats.IncCounter(stats.MetricCalls, 1)

	cache := m.registry.Cache(co.Cache)

	key, err := m.keyer.Key(args)
	if err != nil {
		return zero, fmt.Errorf("%w: %v", ErrKeyDerivation, err)
	}
	if err := checkMapKey(key); err != nil {
		return zero, err
	}

	if v, ok := cache.Get(key); ok {
		m.stats.IncCounter(stats.MetricHits, 1)
		m.logger.Debug("cache hit", zap.String("cache", co.Cache))
		return v.(R), nil
	}
	m.stats.IncCounter(stats.MetricMisses, 1)

	result, err := m.fn(ctx, args...)
	if err != nil {
		return zero, err
	}

	if evicted := cache.Put(key, result, size); evicted > 0 {
		m.stats.IncCounter(stats.MetricEvictions, int64(evicted))
	}
	m.stats.SetGauge(stats.MetricEntries, int64(m.registry.Entries()))

	return result, nil
}

// Reset empties every cache owned by this memoizer.
func (m *Memo[R]) Reset() {
	m.registry.Clear()
	m.stats.SetGauge(stats.MetricEntries, 0)
}

// Entries returns the total number of cached results across all named
// caches.
func (m *Memo[R]) Entries() int {
	return m.registry.Entries()
}

// checkMapKey verifies a derived key can be used as a map key.
// Custom mappers may return arbitrary values; an uncomparable one would
// otherwise panic inside the cache.
func checkMapKey(key any) error {
	if key == nil {
		return nil
	}
	if !reflect.TypeOf(key).Comparable() {
		return fmt.Errorf("%w: %T is not comparable", ErrKeyDerivation, key)
	}
	return nil
}

// mapperKeyer adapts a user-supplied Mapper to the internal keyer contract.
type mapperKeyer struct {
	fn Mapper
}

func (k mapperKeyer) Key(args []any) (any, error) {
	return k.fn(args...)
}
