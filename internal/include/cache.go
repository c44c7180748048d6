// Package include resolves a profile's declared dependencies, merging every
// required profile into the target according to the restrictiveness rules in
// the profile package. Resolution is best-effort: missing dependencies,
// stale versions and cyclical imports are logged and skipped, never fatal.
package include

import (
	"github.com/interopcheck/interopcheck/internal/profile"
)

// Cache memoizes locator outcomes for the lifetime of one resolution run,
// keyed by the target filename. Failed lookups are cached as nil so a
// dependency referenced by many profiles is fetched and parsed at most once.
// Construct one per top-level resolution; it is not safe for concurrent use.
type Cache struct {
	entries map[string]profile.Document
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]profile.Document)}
}

// Lookup returns the cached document for key. The second return reports
// whether an outcome (including a failed one) was recorded.
func (c *Cache) Lookup(key string) (profile.Document, bool) {
	doc, ok := c.entries[key]
	return doc, ok
}

// Store records the outcome of a lookup. doc may be nil to record a failure.
func (c *Cache) Store(key string, doc profile.Document) {
	c.entries[key] = doc
}

// Len returns the number of recorded outcomes.
func (c *Cache) Len() int {
	return len(c.entries)
}
