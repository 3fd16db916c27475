package tmdb

import (
	"sync"
	"time"
)

type cacheEntry[T any] struct {
	value   *T
	expires time.Time
}

// cache holds detail lookups by TMDB id.
type cache[T any] struct {
	mu      sync.RWMutex
	entries map[int64]cacheEntry[T]
	ttl     time.Duration
}

func newCache[T any](ttl time.Duration) *cache[T] {
	return &cache[T]{
		entries: make(map[int64]cacheEntry[T]),
		ttl:     ttl,
	}
}

func (c *cache[T]) get(id int64) (*T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[id]
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expires) {
		return nil, false
	}
	return entry.value, true
}

func (c *cache[T]) set(id int64, value *T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[id] = cacheEntry[T]{
		value:   value,
		expires: time.Now().Add(c.ttl),
	}
}
