// Package cache holds short-lived responses keyed by request.
package cache

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/jrsteele09/go-ukci-client/internal/metrics"
	"golang.org/x/sync/singleflight"
)

type entry[T any] struct {
	value     T
	expiresAt time.Time
}

// Cache is a TTL cache with per-call expiry.
//
// There is no background eviction. An expired entry stays in memory until the
// next miss for its key overwrites it, or until Cleanup or Clear runs. That is
// fine for a bounded, reused key set such as search queries and company
// numbers; a long-lived process with an unbounded key space should call
// Cleanup periodically.
type Cache[T any] struct {
	name    string
	mu      sync.RWMutex
	entries map[string]entry[T]
	gen     uint64
	group   singleflight.Group
	nowFunc func() time.Time
}

type Option[T any] func(*Cache[T])

// WithNowFunc replaces the clock, for tests.
func WithNowFunc[T any](now func() time.Time) Option[T] {
	return func(c *Cache[T]) {
		c.nowFunc = now
	}
}

// New creates an empty cache. name labels its hit and miss metrics.
func New[T any](name string, opts ...Option[T]) *Cache[T] {
	c := &Cache[T]{
		name:    name,
		entries: make(map[string]entry[T]),
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the live entry for key, if there is one.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || !c.nowFunc().Before(e.expiresAt) {
		var zero T
		return zero, false
	}
	return e.value, true
}

// Set stores value under key until now+ttl.
func (c *Cache[T]) Set(key string, value T, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[T]{value: value, expiresAt: c.nowFunc().Add(ttl)}
}

// GetOrFetch returns the live entry for key or calls fetch and stores what it
// returns for ttl. Concurrent misses for one key share a single fetch, which
// runs detached from any one caller's cancellation; a caller whose ctx ends
// stops waiting and gets ctx.Err() while the others still receive the result.
// A failed fetch is not stored; its value is still handed back alongside the error.
func (c *Cache[T]) GetOrFetch(ctx context.Context, key string, fetch func(ctx context.Context) (T, error), ttl time.Duration) (T, error) {
	if v, ok := c.Get(key); ok {
		metrics.CacheHits.WithLabelValues(c.name).Inc()
		return v, nil
	}
	metrics.CacheMisses.WithLabelValues(c.name).Inc()

	c.mu.RLock()
	gen := c.gen
	c.mu.RUnlock()

	// Keying the flight on the generation stops a call made after Clear from
	// joining a fetch that started before it.
	flightKey := strconv.FormatUint(gen, 10) + "\x00" + key
	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(flightKey, func() (any, error) {
		value, err := fetch(fetchCtx)
		if err != nil {
			return value, err
		}
		c.mu.Lock()
		if c.gen == gen {
			c.entries[key] = entry[T]{value: value, expiresAt: c.nowFunc().Add(ttl)}
		}
		c.mu.Unlock()
		return value, nil
	})

	select {
	case res := <-ch:
		value, _ := res.Val.(T)
		return value, res.Err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Delete drops one entry.
func (c *Cache[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear drops every entry. Fetches already in flight will not store their results.
func (c *Cache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry[T])
	c.gen++
}

// Cleanup removes expired entries.
func (c *Cache[T]) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.nowFunc()
	removed := 0
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len counts stored entries, expired ones included.
func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
