// Package cache is the storefront's data layer: a request-deduplicating
// cache keyed by resource identity. Concurrent identical requests share one
// in-flight backend call, and entries live until explicitly invalidated by
// the mutation that made them stale — there is no TTL and no blanket
// refetch-everything.
package cache

import (
	"context"
	"net/url"
	"strings"
	"sync"
)

// Key builds the canonical cache key for a resource: entity type, id, and
// query params. params are encoded in sorted order so equivalent queries
// collide.
func Key(resource, id string, params url.Values) string {
	var b strings.Builder
	b.WriteString(resource)
	b.WriteByte('/')
	b.WriteString(id)
	if len(params) > 0 {
		b.WriteByte('?')
		b.WriteString(params.Encode())
	}
	return b.String()
}

type entry struct {
	done chan struct{}
	val  any
	err  error
}

// Cache deduplicates in-flight fetches and memoizes successful results.
// Errors are returned to every caller sharing the flight but never cached.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func New() *Cache {
	return &Cache{entries: make(map[string]*entry)}
}

// Do returns the cached value for key, or runs fetch to produce it. If
// another fetch for the same key is already in flight, the caller waits for
// that one instead of issuing its own.
func (c *Cache) Do(ctx context.Context, key string, fetch func(ctx context.Context) (any, error)) (any, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		c.mu.Unlock()
		select {
		case <-e.done:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		if e.err != nil {
			return nil, e.err
		}
		return e.val, nil
	}

	e := &entry{done: make(chan struct{})}
	c.entries[key] = e
	c.mu.Unlock()

	e.val, e.err = fetch(ctx)
	close(e.done)

	if e.err != nil {
		// Failed fetches are not memoized: the next caller retries.
		c.mu.Lock()
		if c.entries[key] == e {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, e.err
	}
	return e.val, nil
}

// Invalidate drops one key. The next Do for it hits the backend.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// InvalidateResource drops every key for an entity type, for mutations whose
// blast radius is a whole collection (a created album stales every album
// list page).
func (c *Cache) InvalidateResource(resource string) {
	prefix := resource + "/"
	c.mu.Lock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()
}

// Get is a typed wrapper over Do.
func Get[T any](ctx context.Context, c *Cache, key string, fetch func(ctx context.Context) (T, error)) (T, error) {
	v, err := c.Do(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
