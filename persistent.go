package recall

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/owlworks/recall/internal/keyer"
	"github.com/owlworks/recall/internal/stats"
	"github.com/owlworks/recall/internal/valuecodec"
)

// PersistentMemo memoizes a function through the backend active in the
// calling context. With no active backend the function runs uncached;
// persistence is opt-in per dynamic scope via WithBackend.
//
// Storage keys combine the memoizer's name with the serialized form of
// the derived key, so the name must be globally unique across every
// function sharing a backend. That uniqueness is the caller's contract;
// the engine does not enforce it.
type PersistentMemo[R any] struct {
	name   string
	fn     Func[R]
	keyer  keyer.Keyer
	codec  valuecodec.Codec
	stats  stats.Collector
	logger *zap.Logger
}

// NewPersistent creates a persistently-memoized version of fn registered
// under name.
func NewPersistent[R any](name string, fn Func[R], opts ...Option) (*PersistentMemo[R], error) {
	if fn == nil {
		return nil, ErrNoFunc
	}
	if name == "" {
		return nil, ErrNoName
	}

	cfg := defaultOptions()
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	p := &PersistentMemo[R]{
		name:   name,
		fn:     fn,
		keyer:  cfg.keyer,
		codec:  cfg.codec,
		stats:  cfg.stats,
		logger: cfg.logger,
	}

	p.logger.Debug("persistent memoizer initialized",
		zap.String("name", p.name),
	)

	return p, nil
}

// Name returns the storage name this memoizer was registered under.
func (p *PersistentMemo[R]) Name() string {
	return p.name
}

// Call invokes the memoized function. If the active backend holds a
// result for the derived key it is decoded and returned without running
// fn; otherwise fn runs and its result is stored. Codec failures surface
// as ErrCodec with no recompute fallback, so corrupted state is never
// masked by a stale-looking recomputed value. Backend I/O errors
// propagate unchanged.
func (p *PersistentMemo[R]) Call(ctx context.Context, args ...any) (R, error) {
	var zero R

	b, ok := ActiveBackend(ctx)
	if !ok {
		return p.fn(ctx, args...)
	}

	key, err := p.keyer.Key(args)
	if err != nil {
		return zero, fmt.Errorf("%w: %v", ErrKeyDerivation, err)
	}
	storageKey, err := p.storageKey(key)
	if err != nil {
		return zero, err
	}

	found, err := b.Contains(ctx, storageKey)
	if err != nil {
		return zero, fmt.Errorf("checking backend for %q: %w", storageKey, err)
	}

	if found {
		data, err := b.Get(ctx, storageKey)
		if err != nil {
			return zero, fmt.Errorf("reading backend value %q: %w", storageKey, err)
		}
		var result R
		if err := p.codec.Unmarshal(data, &result); err != nil {
			return zero, fmt.Errorf("%w: decoding %q: %v", ErrCodec, storageKey, err)
		}
		p.stats.IncCounter(stats.MetricBackendHits, 1)
		p.logger.Debug("backend hit", zap.String("key", storageKey))
		return result, nil
	}
	p.stats.IncCounter(stats.MetricBackendMisses, 1)

	result, err := p.fn(ctx, args...)
	if err != nil {
		return zero, err
	}

	data, err := p.codec.Marshal(result)
	if err != nil {
		return zero, fmt.Errorf("%w: encoding %q: %v", ErrCodec, storageKey, err)
	}
	if err := b.Set(ctx, storageKey, data); err != nil {
		return zero, fmt.Errorf("writing backend value %q: %w", storageKey, err)
	}
	p.stats.IncCounter(stats.MetricBackendWrites, 1)

	return result, nil
}

// storageKey combines the registered name with the serialized form of a
// derived key.
func (p *PersistentMemo[R]) storageKey(key any) (string, error) {
	if s, ok := key.(string); ok {
		return p.name + ":" + s, nil
	}
	encoded, err := keyer.Encode(key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrKeyDerivation, err)
	}
	return p.name + ":" + encoded, nil
}
