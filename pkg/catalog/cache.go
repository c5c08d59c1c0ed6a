package catalog

import "sync"

// Cache is a thread-safe memo of decoded document bodies keyed by
// (layer, path). Entries never expire and nothing is evicted: layers are
// append-only within a session, so a cached body cannot go stale. Clear
// drops everything at once.
type Cache struct {
	mu      sync.Mutex
	entries map[cacheKey]any
}

type cacheKey struct {
	layer Layer
	path  string
}

// NewCache creates an empty document cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[cacheKey]any)}
}

// Get retrieves a cached document. ok is false on a miss.
func (c *Cache) Get(layer Layer, path string) (doc any, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc, ok = c.entries[cacheKey{layer, path}]
	return doc, ok
}

// Put stores a document under (layer, path).
func (c *Cache) Put(layer Layer, path string, doc any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[cacheKey{layer, path}] = doc
}

// Clear empties the cache unconditionally.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[cacheKey]any)
}

// Len returns the number of cached documents.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}
