package browser

import (
	"image"

	"github.com/sirupsen/logrus"
)

// CacheEntry is one decoded thumbnail. Entries are inserted whole and
// removed whole, never mutated in place.
type CacheEntry struct {
	Path         string
	Thumb        image.Image
	LoadedAtPage int
}

// ThumbCache maps file paths to decoded thumbnails. It is owned
// exclusively by the controller and only touched from its goroutine,
// so there is no locking. The only eviction is directory-membership
// pruning: Prune must run on every rescan before new load requests go
// out, so a request for a just-deleted file is never re-queued.
type ThumbCache struct {
	entries map[string]CacheEntry
}

// NewThumbCache creates an empty cache
func NewThumbCache() *ThumbCache {
	return &ThumbCache{entries: make(map[string]CacheEntry)}
}

// Get looks up a thumbnail by path
func (c *ThumbCache) Get(path string) (CacheEntry, bool) {
	entry, ok := c.entries[path]
	return entry, ok
}

// Has reports whether a path is cached without copying the entry
func (c *ThumbCache) Has(path string) bool {
	_, ok := c.entries[path]
	return ok
}

// Insert stores a thumbnail, overwriting any prior entry for the same
// path. A later successful decode always wins.
func (c *ThumbCache) Insert(entry CacheEntry) {
	c.entries[entry.Path] = entry
}

// Prune removes every cached path that is not in live
func (c *ThumbCache) Prune(live Snapshot) {
	for path := range c.entries {
		if !live.Contains(path) {
			logrus.Infof("Removing %s from cached thumbnails", path)
			delete(c.entries, path)
		}
	}
}

// Len returns the number of cached thumbnails
func (c *ThumbCache) Len() int {
	return len(c.entries)
}
