package jwks

import (
	"sync"
	"time"
)

// cacheTTL is the fixed freshness window for a cached key set. Unlike a
// generic per-entry TTL cache, this window is not configurable: a JWKS
// document older than this is treated as a miss and refetched.
const cacheTTL = 5 * time.Minute

// maxCacheEntries bounds the number of distinct JWKS URIs held at once.
// Reaching the bound evicts the entry with the oldest fetchedAt before a
// new one is inserted.
const maxCacheEntries = 100

// maxURILength rejects pathologically long URIs before they ever reach the
// cache or an outbound request.
const maxURILength = 2048

type cacheEntry struct {
	keys      []JWK
	fetchedAt time.Time
}

// Cache maps a JWKS URI to the key set last fetched from it. Reads take
// only the shared read lock, so concurrent hits do not block one another;
// writers hold the lock only long enough to mutate the map, never across
// network I/O.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

// NewCache builds an empty JWKS cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]cacheEntry)}
}

// Get returns the cached key set for uri if present and fetched within the
// last cacheTTL, or ok=false on miss or expiry.
func (c *Cache) Get(uri string) (keys []JWK, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, found := c.entries[uri]
	if !found || time.Since(entry.fetchedAt) >= cacheTTL {
		return nil, false
	}
	return entry.keys, true
}

// Set inserts or replaces the key set cached for uri, evicting the oldest
// entry first if the cache is at capacity.
func (c *Cache) Set(uri string, keys []JWK) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[uri]; !exists && len(c.entries) >= maxCacheEntries {
		c.evictOldestLocked()
	}
	c.entries[uri] = cacheEntry{keys: keys, fetchedAt: time.Now()}
}

func (c *Cache) evictOldestLocked() {
	var oldestURI string
	var oldestAt time.Time
	first := true
	for uri, entry := range c.entries {
		if first || entry.fetchedAt.Before(oldestAt) {
			oldestURI = uri
			oldestAt = entry.fetchedAt
			first = false
		}
	}
	if !first {
		delete(c.entries, oldestURI)
	}
}

// Size returns the number of JWKS URIs currently cached.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear removes all cached entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}
