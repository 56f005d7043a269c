// Package backend defines the storage contract persistent memoization
// backends must satisfy.
package backend

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when a key has no stored value.
// Callers should check Contains first or handle this error.
var ErrNotFound = errors.New("backend: key not found")

// Backend is the minimal capability set a persistent store must expose.
// Values are opaque serialized payloads; the memoization engine owns
// serialization. Get, Set and Contains may perform slow synchronous I/O;
// retry and timeout discipline belongs to the implementation.
type Backend interface {
	// Contains reports whether a value is stored under key.
	Contains(ctx context.Context, key string) (bool, error)

	// Get returns the value stored under key.
	// Returns ErrNotFound if the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key string, value []byte) error
}
