// Package membackend provides an in-memory backend for testing and
// ephemeral use.
package membackend

import (
	"context"
	"sync"

	"github.com/owlworks/recall/backend"
)

// Compile-time check that Backend implements backend.Backend.
var _ backend.Backend = (*Backend)(nil)

// Backend is a thread-safe in-memory backend.
type Backend struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// New creates a new in-memory backend.
func New() *Backend {
	return &Backend{
		values: make(map[string][]byte),
	}
}

// Contains reports whether a value is stored under key.
func (b *Backend) Contains(ctx context.Context, key string) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.values[key]
	return ok, nil
}

// Get returns the value stored under key.
func (b *Backend) Get(ctx context.Context, key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	value, ok := b.values[key]
	if !ok {
		return nil, backend.ErrNotFound
	}
	return value, nil
}

// Set stores value under key. The value is copied to prevent caller
// mutations from affecting the store.
func (b *Backend) Set(ctx context.Context, key string, value []byte) error {
	copied := make([]byte, len(value))
	copy(copied, value)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.values[key] = copied
	return nil
}

// Len returns the number of stored keys.
func (b *Backend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.values)
}
