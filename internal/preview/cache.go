package preview

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache keeps rendered previews so reopening an image does not download it again
type Cache struct {
	lru *lru.Cache[string, string]
}

// NewCache creates a cache holding size renders; size <= 0 uses 32
func NewCache(size int) *Cache {
	if size <= 0 {
		size = 32
	}
	c, err := lru.New[string, string](size)
	if err != nil {
		// only fails for a non-positive size
		panic(err)
	}
	return &Cache{lru: c}
}

// Key identifies one render of url at a given box
func Key(url string, cols, rows int) string {
	return fmt.Sprintf("%s@%dx%d", url, cols, rows)
}

// Get returns a cached render
func (c *Cache) Get(key string) (string, bool) {
	return c.lru.Get(key)
}

// Add stores a render
func (c *Cache) Add(key, rendered string) {
	c.lru.Add(key, rendered)
}

// Len returns the number of cached renders
func (c *Cache) Len() int {
	return c.lru.Len()
}
