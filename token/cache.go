package token

import (
	"context"
	"strconv"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// FetchFunc obtains a fresh token of kind T from an issuance endpoint.
type FetchFunc[T Token] func(ctx context.Context) (T, error)

// Cache is an in-memory store mapping an identity's cache key to the most
// recently issued token of one kind. Entries are created lazily on first
// request, overwritten in place when found expired, and never evicted; the
// cache grows with the number of distinct identities requested.
//
// At most one fetch is in flight per key at any time. Callers asking for the
// same key while a fetch is running share its outcome; fetches for other keys
// proceed independently. A failed fetch stores nothing, so the next caller
// retries cleanly.
type Cache[T Token] struct {
	mu      sync.RWMutex
	entries map[uint64]T
	group   singleflight.Group
}

// NewCache creates an empty cache for tokens of kind T.
func NewCache[T Token]() *Cache[T] {
	return &Cache[T]{entries: make(map[uint64]T)}
}

// Get returns the entry at key if one exists and is still valid.
func (c *Cache[T]) Get(key uint64) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	if !ok || !IsValid(entry, NowTimeFunc().Unix()) {
		var zero T
		return zero, false
	}
	return entry, true
}

// GetOrFetch returns the valid cached token at key, or calls fetch to obtain
// a replacement and stores it. It fails only if the fetch fails.
func (c *Cache[T]) GetOrFetch(ctx context.Context, key uint64, fetch FetchFunc[T]) (T, error) {
	if entry, ok := c.Get(key); ok {
		log.Trace().Uint64("cache_key", key).Msg("valid token found in cache")
		return entry, nil
	}

	v, err, shared := c.group.Do(strconv.FormatUint(key, 16), func() (any, error) {
		// Another caller may have refreshed the entry between the read
		// above and this flight starting.
		if entry, ok := c.Get(key); ok {
			return entry, nil
		}
		log.Trace().Uint64("cache_key", key).Msg("no valid token in cache, fetching")
		entry, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[key] = entry
		c.mu.Unlock()
		return entry, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	if shared {
		log.Trace().Uint64("cache_key", key).Msg("shared in-flight token fetch")
	}
	return v.(T), nil
}

// Len returns the number of cached entries, valid or not.
func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear removes all entries.
func (c *Cache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[uint64]T)
}
