// Package registry owns the named bounded caches of one memoizer.
package registry

import (
	"sync"

	"github.com/owlworks/recall/internal/boundedcache"
)

// DefaultName is the cache used when a call names no cache.
const DefaultName = ""

// Registry maps cache names to bounded caches. Caches are created lazily
// on first use and live as long as the registry.
type Registry struct {
	mu     sync.Mutex
	caches map[string]*boundedcache.Cache
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		caches: make(map[string]*boundedcache.Cache),
	}
}

// Cache returns the bounded cache for the given name, creating it if needed.
func (r *Registry) Cache(name string) *boundedcache.Cache {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.caches[name]
	if !ok {
		c = boundedcache.New()
		r.caches[name] = c
	}
	return c
}

// Len returns the number of named caches that have been created.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.caches)
}

// Entries returns the total number of entries across all caches.
func (r *Registry) Entries() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	total := 0
	for _, c := range r.caches {
		total += c.Len()
	}
	return total
}

// Clear empties every cache in the registry.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.caches {
		c.Purge()
	}
}
