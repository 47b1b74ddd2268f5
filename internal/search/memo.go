package search

import (
	"sync"

	"github.com/hyperjump/omoide/internal/models"
)

// memoCache memoizes the last search result, keyed by snapshot version and
// filter key. The engine recomputes on every state change in a reactive
// model, so a single entry covers the common case of repeated identical
// derivations; any version bump or filter change invalidates it.
type memoCache struct {
	mu      sync.Mutex
	valid   bool
	version uint64
	key     string
	resp    *models.SearchResponse
}

func (c *memoCache) get(version uint64, key string) (*models.SearchResponse, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.valid || c.version != version || c.key != key {
		return nil, false
	}
	return c.resp, true
}

func (c *memoCache) put(version uint64, key string, resp *models.SearchResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.valid = true
	c.version = version
	c.key = key
	c.resp = resp
}

func (c *memoCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.valid = false
	c.resp = nil
}
