package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aigerim-zh/kshop/pkg/storefront/api"
)

type fakeCartAPI struct {
	cart       *api.Cart
	getErr     error
	removeErr  error
	checkoutFn func() (*api.Order, error)

	getCalls      int
	addCalls      int
	removeCalls   int
	checkoutCalls int
}

func (f *fakeCartAPI) GetCart(ctx context.Context) (*api.Cart, error) {
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.cart, nil
}

func (f *fakeCartAPI) AddToCart(ctx context.Context, versionID uuid.UUID, quantity int) (*api.Cart, error) {
	f.addCalls++
	return f.cart, nil
}

func (f *fakeCartAPI) RemoveCartItem(ctx context.Context, itemID uuid.UUID) error {
	f.removeCalls++
	return f.removeErr
}

func (f *fakeCartAPI) Checkout(ctx context.Context) (*api.Order, error) {
	f.checkoutCalls++
	if f.checkoutFn != nil {
		return f.checkoutFn()
	}
	return &api.Order{ID: uuid.New(), Status: "created"}, nil
}

func loadedCart() *api.Cart {
	return &api.Cart{
		Items: []api.CartItem{
			{ID: uuid.New(), AlbumTitle: "Born Pink", Quantity: 2, BasePrice: 25, DiscountPercent: 30, FinalPrice: 17.5},
			{ID: uuid.New(), AlbumTitle: "Golden", Quantity: 1, BasePrice: 20, FinalPrice: 20},
		},
		Totals: api.CartTotals{BaseTotal: 70, FinalTotal: 55, TotalDiscount: 15},
	}
}

func TestView_FetchLoadsItemsAndTotals(t *testing.T) {
	client := &fakeCartAPI{cart: loadedCart()}
	view := NewView(client)

	assert.Equal(t, StateLoading, view.State())
	require.NoError(t, view.Fetch(t.Context()))

	assert.Equal(t, StateLoaded, view.State())
	assert.Len(t, view.Items(), 2)
	assert.Equal(t, 55.0, view.Totals().FinalTotal.Float64())
}

func TestView_AbsentTotalsDefaultToZero(t *testing.T) {
	client := &fakeCartAPI{cart: &api.Cart{Items: []api.CartItem{{ID: uuid.New()}}}}
	view := NewView(client)

	require.NoError(t, view.Fetch(t.Context()))

	totals := view.Totals()
	assert.Zero(t, totals.BaseTotal.Float64())
	assert.Zero(t, totals.FinalTotal.Float64())
	assert.Zero(t, totals.TotalDiscount.Float64())
}

func TestView_FetchFailureEntersErrorState(t *testing.T) {
	client := &fakeCartAPI{getErr: assert.AnError}
	view := NewView(client)

	err := view.Fetch(t.Context())

	require.Error(t, err)
	assert.Equal(t, StateError, view.State())
	assert.Equal(t, assert.AnError, view.Err())
}

func TestView_RemoveRefetchesWholeCart(t *testing.T) {
	client := &fakeCartAPI{cart: loadedCart()}
	view := NewView(client)
	require.NoError(t, view.Fetch(t.Context()))

	itemID := view.Items()[0].ID
	client.cart = &api.Cart{Items: view.Items()[1:], Totals: api.CartTotals{BaseTotal: 20, FinalTotal: 20}}

	require.NoError(t, view.Remove(t.Context(), itemID))

	assert.Equal(t, 1, client.removeCalls)
	assert.Equal(t, 2, client.getCalls, "remove must be followed by a full refetch")
	assert.Len(t, view.Items(), 1)
	assert.Equal(t, StateLoaded, view.State())
}

func TestView_RemoveAbsentItemKeepsTotals(t *testing.T) {
	client := &fakeCartAPI{cart: loadedCart()}
	view := NewView(client)
	require.NoError(t, view.Fetch(t.Context()))

	before := view.Totals()

	// Server treats removing an unknown item as a no-op success.
	require.NoError(t, view.Remove(t.Context(), uuid.New()))

	assert.Equal(t, before, view.Totals())
	assert.Equal(t, StateLoaded, view.State())
}

func TestView_CheckoutEmptyCartMakesNoNetworkCall(t *testing.T) {
	client := &fakeCartAPI{cart: &api.Cart{}}
	view := NewView(client)
	require.NoError(t, view.Fetch(t.Context()))

	callsBefore := client.getCalls
	order, err := view.Checkout(t.Context())

	assert.ErrorIs(t, err, ErrCartEmpty)
	assert.Nil(t, order)
	assert.Zero(t, client.checkoutCalls)
	assert.Equal(t, callsBefore, client.getCalls)
}

func TestView_CheckoutRefetchesEmptiedCart(t *testing.T) {
	client := &fakeCartAPI{cart: loadedCart()}
	view := NewView(client)
	require.NoError(t, view.Fetch(t.Context()))

	client.cart = &api.Cart{}

	order, err := view.Checkout(t.Context())

	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, 1, client.checkoutCalls)
	assert.Empty(t, view.Items())
	assert.Equal(t, StateLoaded, view.State())
}

func TestDisplayLine(t *testing.T) {
	discounted := DisplayLine(api.CartItem{BasePrice: 25, DiscountPercent: 30, FinalPrice: 17.5})
	assert.Equal(t, "25.00", discounted.Base)
	assert.Equal(t, "17.50", discounted.Final)
	assert.Equal(t, "-30%", discounted.Badge)
	assert.True(t, discounted.Discounted)

	plain := DisplayLine(api.CartItem{BasePrice: 20, FinalPrice: 20})
	assert.Equal(t, "20.00", plain.Base)
	assert.Empty(t, plain.Final)
	assert.Empty(t, plain.Badge)
	assert.False(t, plain.Discounted)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "loading", StateLoading.String())
	assert.Equal(t, "loaded", StateLoaded.String())
	assert.Equal(t, "mutating", StateMutating.String())
	assert.Equal(t, "error", StateError.String())
}
