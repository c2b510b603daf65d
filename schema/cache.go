package schema

import "sync"

// Cache stores loaded schema documents keyed by file path, avoiding repeated
// disk reads when many documentation files validate against the same schema.
//
// The cache is safe for concurrent reads but is designed for the sequential
// pipeline: a single validator owns one cache. Clear exists for test
// isolation and for reloading schemas modified at runtime.
type Cache struct {
	mu      sync.Mutex
	schemas map[string]map[string]any
}

// NewCache returns an empty schema cache.
func NewCache() *Cache {
	return &Cache{schemas: make(map[string]map[string]any)}
}

// Get returns the cached schema for path, if present.
func (c *Cache) Get(path string) (map[string]any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.schemas[path]
	return s, ok
}

// Put stores a schema under path.
func (c *Cache) Put(path string, schema map[string]any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.schemas[path] = schema
}

// Clear removes all cached schemas.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.schemas)
}

// Len returns the number of cached schemas.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.schemas)
}
