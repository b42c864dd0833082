// Package trustcache provides a time-boxed lookup cache keyed by domain.
// It is an explicit object with an injected clock, owned by whichever
// component performs lookups; there is deliberately no package-level state.
package trustcache

import (
	"sync"
	"time"
)

// DefaultTTL is the validity window used by rating lookups.
const DefaultTTL = 24 * time.Hour

type entry[T any] struct {
	value    T
	storedAt time.Time
}

// Cache memoizes values per key for a fixed validity window. Expired
// entries are treated as absent rather than actively purged; they are
// reclaimed when overwritten. Growth is bounded by the number of distinct
// keys seen during the owner's lifetime.
type Cache[T any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry[T]
}

// New returns a cache with the given validity window. A nil now func
// defaults to time.Now.
func New[T any](ttl time.Duration, now func() time.Time) *Cache[T] {
	if now == nil {
		now = time.Now
	}
	return &Cache[T]{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]entry[T]),
	}
}

// Get returns the cached value for key while it is still within the
// validity window. An expired or missing entry reports ok=false.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || c.now().Sub(e.storedAt) >= c.ttl {
		var zero T
		return zero, false
	}
	return e.value, true
}

// Put stores value under key with a fresh timestamp, overwriting any
// previous entry.
func (c *Cache[T]) Put(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[T]{value: value, storedAt: c.now()}
}

// Len returns the number of entries held, including expired ones.
func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear drops every entry.
func (c *Cache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry[T])
}
