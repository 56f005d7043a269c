// Package redisbackend implements a Redis-backed persistent backend.
package redisbackend

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/owlworks/recall/backend"
)

// Compile-time check that Backend implements backend.Backend.
var _ backend.Backend = (*Backend)(nil)

// Backend stores values in a Redis key-value store.
// The caller owns the redis.Client lifecycle.
type Backend struct {
	client *redis.Client
	prefix string
}

// Option configures a Backend.
type Option func(*Backend)

// WithPrefix namespaces all keys under prefix. Keys are stored as
// "prefix:key". Empty prefix (the default) stores keys verbatim.
func WithPrefix(prefix string) Option {
	return func(b *Backend) {
		b.prefix = prefix
	}
}

// New creates a Redis backend on an existing client.
func New(client *redis.Client, opts ...Option) *Backend {
	b := &Backend{client: client}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Contains reports whether a value is stored under key.
func (b *Backend) Contains(ctx context.Context, key string) (bool, error) {
	n, err := b.client.Exists(ctx, b.prefixKey(key)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return n > 0, nil
}

// Get returns the value stored under key.
func (b *Backend) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := b.client.Get(ctx, b.prefixKey(key)).Bytes()
	if err == redis.Nil {
		return nil, backend.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return data, nil
}

// Set stores value under key with no expiry.
func (b *Backend) Set(ctx context.Context, key string, value []byte) error {
	if err := b.client.Set(ctx, b.prefixKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (b *Backend) prefixKey(key string) string {
	if b.prefix == "" {
		return key
	}
	return b.prefix + ":" + key
}
