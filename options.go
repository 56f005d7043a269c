package recall

import (
	"go.uber.org/zap"

	"github.com/owlworks/recall/internal/keyer"
	"github.com/owlworks/recall/internal/stats"
	"github.com/owlworks/recall/internal/valuecodec"
)

// Option configures a memoizer.
type Option interface {
	apply(*options)
}

// options holds the memoizer configuration.
type options struct {
	keyer       keyer.Keyer
	defaultSize int
	stats       stats.Collector
	logger      *zap.Logger
	codec       valuecodec.Codec
}

// defaultOptions returns the default configuration.
func defaultOptions() options {
	return options{
		keyer:       keyer.NewCanonical(),
		defaultSize: DefaultCacheSize,
		stats:       stats.NewNoop(),
		logger:      zap.NewNop(),
		codec:       valuecodec.NewMsgpack(),
	}
}

// optionFunc wraps a function to implement Option.
type optionFunc func(*options)

// Compile-time check that optionFunc implements Option.
var _ Option = optionFunc(nil)

func (f optionFunc) apply(o *options) { f(o) }

// WithMapper sets a custom key-deriving function. Its return value is
// used as the cache key verbatim; equal keys must be equal under Go's
// comparison semantics.
func WithMapper(m Mapper) Option {
	return optionFunc(func(o *options) {
		o.keyer = mapperKeyer{fn: m}
	})
}

// WithDefaultCacheSize sets the cache capacity used when a call does not
// supply one. Default is 5. Unbounded disables eviction.
func WithDefaultCacheSize(n int) Option {
	return optionFunc(func(o *options) {
		o.defaultSize = n
	})
}

// WithStats sets the stats collector.
// If not set, a no-op collector is used.
func WithStats(c stats.Collector) Option {
	return optionFunc(func(o *options) {
		o.stats = c
	})
}

// WithLogger sets the logger.
// If not set, a no-op logger is used.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(o *options) {
		o.logger = l
	})
}

// WithCodec sets the value codec used by persistent memoizers.
// If not set, MessagePack is used.
func WithCodec(c valuecodec.Codec) Option {
	return optionFunc(func(o *options) {
		o.codec = c
	})
}
