// Package boundedcache implements an LRU-ordered cache whose capacity is
// re-applied on every write, so a later write with a smaller capacity
// shrinks the cache to the most recently used entries.
package boundedcache

import (
	"math"
	"sync"

	"github.com/hashicorp/golang-lru/v2/simplelru"
)

// Unbounded disables capacity enforcement for a write.
const Unbounded = -1

// maxCapacity is the backing size used while the cache is unbounded.
const maxCapacity = math.MaxInt32

// Cache is a thread-safe LRU cache with per-write capacity.
// Lookups and writes are atomic with respect to each other, including the
// eviction pass a write performs.
type Cache struct {
	mu  sync.Mutex
	lru *simplelru.LRU[any, any]
}

// New creates an empty cache. Capacity is applied per Put.
func New() *Cache {
	// simplelru only evicts when over its size, so a maximal size means
	// no eviction until a Put narrows it.
	lru, err := simplelru.NewLRU[any, any](maxCapacity, nil)
	if err != nil {
		// Unreachable: size is a positive constant.
		panic(err)
	}
	return &Cache{lru: lru}
}

// Get looks up a key, marking the entry most-recently-used on a hit.
// A miss has no side effects.
func (c *Cache) Get(key any) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Get(key)
}

// Put applies the write's capacity, then inserts or replaces an entry,
// marking it most-recently-used. Least-recently-used entries are evicted
// only while the cache exceeds the current write's capacity, so a larger
// capacity than the previous write's takes effect before the insert.
// Unbounded skips enforcement. Returns the number of entries evicted.
func (c *Cache) Put(key, value any, capacity int) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if capacity == Unbounded {
		capacity = maxCapacity
	}
	evicted := c.lru.Resize(capacity)
	if c.lru.Add(key, value) {
		evicted++
	}
	return evicted
}

// Len returns the number of entries in the cache.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Contains reports whether a key is present without updating recency.
func (c *Cache) Contains(key any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Contains(key)
}

// Purge removes all entries.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Purge()
}
