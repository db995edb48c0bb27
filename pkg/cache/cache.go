// Package cache provides the bounded hostname-to-address store used by the
// resolver. Capacity is enforced by LRU eviction and staleness by a per-entry
// TTL; expired entries are treated as absent even before they are purged.
package cache

import (
	"time"

	cache "github.com/go-pkgz/expirable-cache/v2"
)

const (
	DefaultCapacity = 100
	DefaultTTL      = time.Hour
)

// Cache maps a hostname to a single resolved address.
type Cache struct {
	entries cache.Cache[string, string]
}

// New creates a cache holding at most capacity entries, each living for ttl.
// Non-positive values fall back to the defaults.
func New(capacity int, ttl time.Duration) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Cache{
		entries: cache.NewCache[string, string]().
			WithMaxKeys(capacity).
			WithLRU().
			WithTTL(ttl),
	}
}

// Get returns the address cached for host. A hit refreshes the entry's
// recency; an expired entry reports absent.
func (c *Cache) Get(host string) (string, bool) {
	return c.entries.Get(host)
}

// Set inserts or overwrites the address for host. Inserting beyond capacity
// evicts the least-recently-used entry.
func (c *Cache) Set(host string, address string) {
	c.entries.Set(host, address, 0)
}

// Has reports whether host is cached and unexpired, without refreshing its
// recency.
func (c *Cache) Has(host string) bool {
	_, ok := c.entries.Peek(host)
	return ok
}

// Len returns the number of live entries, expired ones included until purged.
func (c *Cache) Len() int {
	return c.entries.Len()
}
