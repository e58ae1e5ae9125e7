// Package admin backs the back-office console: per-entity collections with
// real pagination, local splice/filter after successful mutations, and
// client-side sorting of the fetched page.
package admin

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/aigerim-zh/kshop/pkg/storefront/api"
)

// FetchPage loads one page of an entity collection and reports the total
// count across all pages.
type FetchPage[T any] func(ctx context.Context, page, limit int) ([]T, int, error)

// Collection is one admin screen's view of an entity list. A mutation does
// not refetch: the server's returned record is spliced into (create/update)
// or filtered out of (delete) the local slice.
type Collection[T any] struct {
	fetch FetchPage[T]
	keyOf func(T) string
	limit int

	mu    sync.RWMutex
	items []T
	total int
	page  int
}

// NewCollection creates a collection; keyOf extracts the identity used for
// splice and filter.
func NewCollection[T any](fetch FetchPage[T], keyOf func(T) string, limit int) *Collection[T] {
	if limit < 1 {
		limit = 20
	}
	return &Collection[T]{fetch: fetch, keyOf: keyOf, limit: limit, page: 1}
}

// Load fetches the given page, replacing the local slice.
func (c *Collection[T]) Load(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}
	items, total, err := c.fetch(ctx, page, c.limit)
	if err != nil {
		return fmt.Errorf("load page %d: %w", page, err)
	}

	c.mu.Lock()
	c.items = items
	c.total = total
	c.page = page
	c.mu.Unlock()
	return nil
}

// Items returns the current page's records.
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.items
}

// Total is the collection size across all pages, as last reported by the
// server.
func (c *Collection[T]) Total() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.total
}

// Page is the currently loaded page number.
func (c *Collection[T]) Page() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.page
}

// Pages is the page count for the last known total.
func (c *Collection[T]) Pages() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.total == 0 {
		return 1
	}
	return (c.total + c.limit - 1) / c.limit
}

// Upsert splices a server-returned record into the local slice: replacing
// the record with the same key, or appending when it is new.
func (c *Collection[T]) Upsert(item T) {
	key := c.keyOf(item)

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.keyOf(c.items[i]) == key {
			c.items[i] = item
			return
		}
	}
	c.items = append(c.items, item)
	c.total++
}

// Remove filters the record with the given key out of the local slice.
func (c *Collection[T]) Remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.keyOf(c.items[i]) == key {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.total--
			return
		}
	}
}

// Sort re-sorts the already-fetched page in place; no server round trip.
func (c *Collection[T]) Sort(cmp func(a, b T) int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	slices.SortStableFunc(c.items, cmp)
}

// DashboardAPI is the slice of the gateway client the overview screen needs.
// The console uses the admin list endpoints, so out_of_stock albums count too.
type DashboardAPI interface {
	AdminListArtists(ctx context.Context, page, limit int) (*api.ArtistList, error)
	AdminListAlbums(ctx context.Context, page, limit int) (*api.AlbumList, error)
	AdminListUsers(ctx context.Context, page, limit int) (*api.UserList, error)
	AdminListOrders(ctx context.Context, page, limit int) (*api.OrderList, error)
}

// Dashboard is the joined first page of every entity the overview shows.
type Dashboard struct {
	Artists *api.ArtistList
	Albums  *api.AlbumList
	Users   *api.UserList
	Orders  *api.OrderList
}

// LoadDashboard issues the four collection fetches concurrently and joins
// them. Any single failure fails the whole screen; partial results are
// discarded, not displayed.
func LoadDashboard(ctx context.Context, client DashboardAPI, limit int) (*Dashboard, error) {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		dash Dashboard
		errs []error
	)

	record := func(err error) {
		if err != nil {
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
		}
	}

	wg.Add(4)
	go func() {
		defer wg.Done()
		artists, err := client.AdminListArtists(ctx, 1, limit)
		dash.Artists = artists
		record(err)
	}()
	go func() {
		defer wg.Done()
		albums, err := client.AdminListAlbums(ctx, 1, limit)
		dash.Albums = albums
		record(err)
	}()
	go func() {
		defer wg.Done()
		users, err := client.AdminListUsers(ctx, 1, limit)
		dash.Users = users
		record(err)
	}()
	go func() {
		defer wg.Done()
		orders, err := client.AdminListOrders(ctx, 1, limit)
		dash.Orders = orders
		record(err)
	}()
	wg.Wait()

	if len(errs) > 0 {
		return nil, fmt.Errorf("load dashboard: %w", errs[0])
	}
	return &dash, nil
}
