// Package cache provides a bounded in-memory key-value cache with TTL expiry
// and least-recently-used eviction.
//
// Recency is tracked with a global access counter: every hit and every write
// stamps the entry with the next counter value, and when a write pushes the
// store past capacity the single entry with the lowest stamp is evicted. A
// write grows the store by at most one entry, so one eviction per Set is
// enough to hold the bound.
//
// A single mutex per instance guards all operations, including the eviction
// scan; instances are safe to share across request goroutines.
package cache

import (
	"sync"
	"time"
)

// Config controls expiry and capacity.
//
//   - TTL <= 0 means entries never expire
//   - MaxItems must be positive
type Config struct {
	TTL      time.Duration
	MaxItems int
}

// DefaultMaxItems bounds the cache when no capacity is configured.
const DefaultMaxItems = 512

type entry[V any] struct {
	value     V
	expiresAt time.Time
	hasExpiry bool
	recency   uint64
}

// Cache is a TTL+LRU cache from string keys to values of type V.
type Cache[V any] struct {
	mu sync.Mutex

	ttl      time.Duration
	maxItems int
	items    map[string]*entry[V]
	counter  uint64

	now func() time.Time // overridable for tests
}

// New constructs a cache. New never returns nil.
func New[V any](cfg Config) *Cache[V] {
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = DefaultMaxItems
	}
	return &Cache[V]{
		ttl:      cfg.TTL,
		maxItems: cfg.MaxItems,
		items:    make(map[string]*entry[V]),
		now:      time.Now,
	}
}

// Get returns the live value for key. An entry whose expiry has passed is
// deleted as a side effect and reported as absent. A hit refreshes the
// entry's recency stamp.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		return zero, false
	}
	if e.hasExpiry && !e.expiresAt.After(c.now()) {
		delete(c.items, key)
		return zero, false
	}

	e.recency = c.counter
	c.counter++
	return e.value, true
}

// Set inserts or overwrites key, recomputing its expiry and recency, then
// evicts the least-recently-used entry if the store exceeds capacity.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := &entry[V]{
		value:   value,
		recency: c.counter,
	}
	c.counter++
	if c.ttl > 0 {
		e.hasExpiry = true
		e.expiresAt = c.now().Add(c.ttl)
	}
	c.items[key] = e

	if len(c.items) > c.maxItems {
		c.evictOldestLocked()
	}
}

// Delete removes key if present.
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Clear empties the store and resets the recency counter.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*entry[V])
	c.counter = 0
}

// Len returns the number of stored entries, expired ones included until they
// are touched.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// evictOldestLocked removes the entry with the lowest recency stamp.
func (c *Cache[V]) evictOldestLocked() {
	var (
		oldestKey string
		oldest    uint64
		found     bool
	)
	for k, e := range c.items {
		if !found || e.recency < oldest {
			oldestKey = k
			oldest = e.recency
			found = true
		}
	}
	if found {
		delete(c.items, oldestKey)
	}
}
