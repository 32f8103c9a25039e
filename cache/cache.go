// Package cache wraps an in-memory byte cache used to keep fetched
// feeds, schedules, and fact lookups off the upstream services
// between refreshes.
package cache

import (
	"time"

	"github.com/coocood/freecache"
)

// Cache is a TTL byte cache. Values expire on their own; callers
// treat a miss and an expired entry the same way.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration)
	Delete(key string)
}

// Memory is a freecache-backed Cache.
type Memory struct {
	inner *freecache.Cache
}

// NewMemory allocates a cache of the given size in megabytes.
func NewMemory(sizeMB int) *Memory {
	if sizeMB < 1 {
		sizeMB = 1
	}
	return &Memory{inner: freecache.NewCache(sizeMB * 1024 * 1024)}
}

func (c *Memory) Get(key string) ([]byte, bool) {
	value, err := c.inner.Get([]byte(key))
	if err != nil {
		return nil, false
	}
	return value, true
}

func (c *Memory) Set(key string, value []byte, ttl time.Duration) {
	seconds := int(ttl / time.Second)
	if ttl > 0 && seconds == 0 {
		seconds = 1
	}
	// Oversized entries are rejected by freecache; dropping them is
	// fine, the next reader just refetches.
	_ = c.inner.Set([]byte(key), value, seconds)
}

func (c *Memory) Delete(key string) {
	c.inner.Del([]byte(key))
}

// Noop satisfies Cache without storing anything. Handy in tests and
// when caching is disabled.
type Noop struct{}

func (Noop) Get(string) ([]byte, bool)         { return nil, false }
func (Noop) Set(string, []byte, time.Duration) {}
func (Noop) Delete(string)                     {}
