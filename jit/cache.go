package jit

import (
	"sync"
	"sync/atomic"
)

// Cache keeps resolved rule nodes per raw candidate. Entries are valid only
// for the fingerprint cache was created with: registry contents plus
// authored layer CSS.
type Cache struct {
	fingerprint uint64
	entries     sync.Map // raw candidate -> *cacheEntry

	hits   atomic.Int64
	misses atomic.Int64
}

type cacheEntry struct {
	once  sync.Once
	nodes []RuleNode // nil for unrecognized candidates
	err   error
}

// NewCache creates empty cache for fingerprint.
func NewCache(fingerprint uint64) *Cache {
	return &Cache{fingerprint: fingerprint}
}

// Fingerprint returns fingerprint cache entries belong to.
func (c *Cache) Fingerprint() uint64 {
	return c.fingerprint
}

// Get returns cached nodes for raw, computing them with resolve exactly once
// even when requested concurrently.
func (c *Cache) Get(raw string, resolve func(string) ([]RuleNode, error)) ([]RuleNode, error) {
	v, loaded := c.entries.LoadOrStore(raw, &cacheEntry{})
	e := v.(*cacheEntry)
	if loaded {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	e.once.Do(func() {
		e.nodes, e.err = resolve(raw)
	})
	return e.nodes, e.err
}

// Stats returns number of cache hits and misses so far.
func (c *Cache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
