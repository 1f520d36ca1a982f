package pokeapi

import (
	"sync"

	"mandashop/core/types"
)

// Cache holds species lookups for a Client. Once full it evicts the oldest
// entry first. A Cache is owned by whoever constructs it and is safe for
// concurrent use.
type Cache struct {
	mu         sync.Mutex
	maxEntries int
	entries    map[string]*types.Species
	order      []string
}

// NewCache creates a cache holding at most maxEntries species. A
// non-positive maxEntries disables eviction.
func NewCache(maxEntries int) *Cache {
	return &Cache{
		maxEntries: maxEntries,
		entries:    make(map[string]*types.Species),
	}
}

// Get returns a cached species
func (c *Cache) Get(key string) (*types.Species, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.entries[key]
	return s, ok
}

// Put stores a species, evicting the oldest entry when full
func (c *Cache) Put(key string, s *types.Species) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		c.entries[key] = s
		return
	}
	if c.maxEntries > 0 && len(c.order) >= c.maxEntries {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[key] = s
	c.order = append(c.order, key)
}

// Len returns the number of cached entries
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear removes all entries
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*types.Species)
	c.order = nil
}
