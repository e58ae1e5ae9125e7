// Package cart is the client-side cart aggregate: it never computes prices
// itself, it displays what the server derived and refetches after every
// mutation so the view always shows server truth.
package cart

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/aigerim-zh/kshop/pkg/storefront/api"
)

// ErrCartEmpty is the local validation error for checkout on an empty cart.
// No network call is made in that case.
var ErrCartEmpty = errors.New("cart is empty")

// State is the view lifecycle: Loading → Loaded → Mutating → Loaded,
// or Loading → Error.
type State int

const (
	StateLoading State = iota
	StateLoaded
	StateMutating
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateMutating:
		return "mutating"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// CartAPI is the slice of the gateway client the view needs.
type CartAPI interface {
	GetCart(ctx context.Context) (*api.Cart, error)
	AddToCart(ctx context.Context, versionID uuid.UUID, quantity int) (*api.Cart, error)
	RemoveCartItem(ctx context.Context, itemID uuid.UUID) error
	Checkout(ctx context.Context) (*api.Order, error)
}

// View is one cart screen instance. Safe for concurrent use.
type View struct {
	client CartAPI

	mu     sync.RWMutex
	state  State
	items  []api.CartItem
	totals api.CartTotals
	err    error
}

func NewView(client CartAPI) *View {
	return &View{client: client, state: StateLoading}
}

func (v *View) State() State {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

func (v *View) Items() []api.CartItem {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.items
}

// Totals returns zero values until a fetch succeeds, and zero values when
// the server response omitted them.
func (v *View) Totals() api.CartTotals {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.totals
}

func (v *View) Err() error {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.err
}

// Fetch loads the current cart from the server.
func (v *View) Fetch(ctx context.Context) error {
	v.setState(StateLoading)
	return v.refetch(ctx)
}

// Add puts a version in the cart and refetches.
func (v *View) Add(ctx context.Context, versionID uuid.UUID, quantity int) error {
	v.setState(StateMutating)
	if _, err := v.client.AddToCart(ctx, versionID, quantity); err != nil {
		v.fail(err)
		return err
	}
	return v.refetch(ctx)
}

// Remove deletes one cart item, then unconditionally refetches the whole
// cart. Removing an id the server no longer has is not an error.
func (v *View) Remove(ctx context.Context, itemID uuid.UUID) error {
	v.setState(StateMutating)
	if err := v.client.RemoveCartItem(ctx, itemID); err != nil {
		v.fail(err)
		return err
	}
	return v.refetch(ctx)
}

// Checkout creates an order from the cart. An empty cart fails locally with
// ErrCartEmpty before any network call; on success the now-empty cart is
// refetched and the created order returned.
func (v *View) Checkout(ctx context.Context) (*api.Order, error) {
	v.mu.RLock()
	empty := len(v.items) == 0
	v.mu.RUnlock()
	if empty {
		return nil, ErrCartEmpty
	}

	v.setState(StateMutating)
	order, err := v.client.Checkout(ctx)
	if err != nil {
		v.fail(err)
		return nil, err
	}
	if err := v.refetch(ctx); err != nil {
		return order, err
	}
	return order, nil
}

func (v *View) refetch(ctx context.Context) error {
	cart, err := v.client.GetCart(ctx)
	if err != nil {
		v.fail(err)
		return err
	}

	v.mu.Lock()
	v.state = StateLoaded
	v.items = cart.Items
	v.totals = cart.Totals
	v.err = nil
	v.mu.Unlock()
	return nil
}

func (v *View) setState(s State) {
	v.mu.Lock()
	v.state = s
	v.mu.Unlock()
}

func (v *View) fail(err error) {
	v.mu.Lock()
	v.state = StateError
	v.err = err
	v.mu.Unlock()
}

// LineDisplay is how one cart row renders its price: with a discount the
// base price is struck through next to the final price and a "-N%" badge;
// without one only the base price shows.
type LineDisplay struct {
	Base       string
	Final      string
	Badge      string
	Discounted bool
}

// DisplayLine formats one item using the server-supplied per-item values.
func DisplayLine(item api.CartItem) LineDisplay {
	if item.DiscountPercent.Float64() > 0 {
		return LineDisplay{
			Base:       fmt.Sprintf("%.2f", item.BasePrice.Float64()),
			Final:      fmt.Sprintf("%.2f", item.FinalPrice.Float64()),
			Badge:      fmt.Sprintf("-%s%%", strconv.FormatFloat(item.DiscountPercent.Float64(), 'f', -1, 64)),
			Discounted: true,
		}
	}
	return LineDisplay{Base: fmt.Sprintf("%.2f", item.BasePrice.Float64())}
}
