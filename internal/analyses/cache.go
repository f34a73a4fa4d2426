package analyses

import (
	"strings"
	"sync"
	"time"
)

// DefaultCacheTTL is how long a computed analysis is served from memory.
const DefaultCacheTTL = 24 * time.Hour

type cacheEntry struct {
	result    *Result
	createdAt time.Time
}

// Cache memoizes analysis results per keyword. Expired entries are evicted
// lazily when read.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewCache constructs a Cache. A nil now uses time.Now; a non-positive ttl
// uses DefaultCacheTTL.
func NewCache(ttl time.Duration, now func() time.Time) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Cache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     now,
	}
}

// Get returns the stored result for key if it is younger than the TTL.
func (c *Cache) Get(key string) (*Result, bool) {
	key = cacheKey(key)
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.createdAt) < c.ttl {
		return entry.result, true
	}

	c.mu.Lock()
	if current, ok := c.entries[key]; ok && current.result == entry.result && current.createdAt.Equal(entry.createdAt) {
		delete(c.entries, key)
	}
	c.mu.Unlock()
	return nil, false
}

// Set stores result under key, replacing any previous entry.
func (c *Cache) Set(key string, result *Result) {
	key = cacheKey(key)
	c.mu.Lock()
	c.entries[key] = cacheEntry{result: result, createdAt: c.now()}
	c.mu.Unlock()
}

// Clear drops every entry and returns how many were removed.
func (c *Cache) Clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.entries)
	c.entries = make(map[string]cacheEntry)
	return n
}

// Len reports the number of stored entries, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func cacheKey(keyword string) string {
	return strings.ToLower(strings.TrimSpace(keyword))
}
