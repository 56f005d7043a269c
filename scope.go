package recall

import (
	"context"

	"github.com/owlworks/recall/backend"
)

// backendKey is the context key for the active persistent backend.
type backendKey struct{}

// WithBackend returns a context in which b is the active persistent
// backend. The binding lasts for the dynamic extent of the derived
// context: nested WithBackend calls shadow outer ones, and discarding the
// derived context restores whatever was active before, on every exit
// path. Contexts are per call chain, so a backend activated in one
// goroutine is never visible to another unless its context is passed
// there explicitly.
func WithBackend(ctx context.Context, b backend.Backend) context.Context {
	return context.WithValue(ctx, backendKey{}, b)
}

// WithoutBackend returns a context in which no persistent backend is
// active, masking any backend bound by an enclosing scope.
func WithoutBackend(ctx context.Context) context.Context {
	return context.WithValue(ctx, backendKey{}, nil)
}

// ActiveBackend returns the backend bound to the innermost enclosing
// scope, or false if none is active. Absence of a backend is normal
// operation: persistent memoizers simply run their function uncached.
func ActiveBackend(ctx context.Context) (backend.Backend, bool) {
	b, ok := ctx.Value(backendKey{}).(backend.Backend)
	if !ok || b == nil {
		return nil, false
	}
	return b, true
}
