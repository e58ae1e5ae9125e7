package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aigerim-zh/kshop/internal/gateway/middleware"
	"github.com/aigerim-zh/kshop/internal/modules/cart/application"
	catalogdomain "github.com/aigerim-zh/kshop/internal/modules/catalog/domain"
)

type cartServiceMock struct {
	mock.Mock
}

func (m *cartServiceMock) GetCart(ctx context.Context, userID uuid.UUID) (*application.CartView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*application.CartView), args.Error(1)
}

func (m *cartServiceMock) AddItem(ctx context.Context, userID, versionID uuid.UUID, quantity int) (*application.CartView, error) {
	args := m.Called(ctx, userID, versionID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*application.CartView), args.Error(1)
}

func (m *cartServiceMock) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error {
	return m.Called(ctx, userID, itemID).Error(0)
}

func (m *cartServiceMock) Clear(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func authedRequest(method, target string, body []byte, userID uuid.UUID) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	ctx := context.WithValue(req.Context(), middleware.ContextKeyUserID, userID)
	return req.WithContext(ctx)
}

func TestCartHandler_Get(t *testing.T) {
	svc := new(cartServiceMock)
	handler := NewCartHandler(svc)

	userID := uuid.New()
	svc.On("GetCart", mock.Anything, userID).Return(&application.CartView{
		Items:  []application.ItemView{{AlbumTitle: "Get Up", FinalPrice: 17.5}},
		Totals: application.Totals{BaseTotal: 25, FinalTotal: 17.5, TotalDiscount: 7.5},
	}, nil)

	rec := httptest.NewRecorder()
	handler.Get(rec, authedRequest(http.MethodGet, "/cart", nil, userID))

	require.Equal(t, http.StatusOK, rec.Code)
	var view application.CartView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, 17.5, view.Totals.FinalTotal)
}

func TestCartHandler_Get_NoUser(t *testing.T) {
	handler := NewCartHandler(new(cartServiceMock))

	rec := httptest.NewRecorder()
	handler.Get(rec, httptest.NewRequest(http.MethodGet, "/cart", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCartHandler_AddItem_DefaultsQuantity(t *testing.T) {
	svc := new(cartServiceMock)
	handler := NewCartHandler(svc)

	userID := uuid.New()
	versionID := uuid.New()
	svc.On("AddItem", mock.Anything, userID, versionID, 1).Return(&application.CartView{}, nil)

	body, _ := json.Marshal(AddItemRequest{VersionID: versionID})
	rec := httptest.NewRecorder()
	handler.AddItem(rec, authedRequest(http.MethodPost, "/cart", body, userID))

	assert.Equal(t, http.StatusCreated, rec.Code)
	svc.AssertExpectations(t)
}

func TestCartHandler_AddItem_UnknownVersion(t *testing.T) {
	svc := new(cartServiceMock)
	handler := NewCartHandler(svc)

	userID := uuid.New()
	versionID := uuid.New()
	svc.On("AddItem", mock.Anything, userID, versionID, 2).
		Return(nil, catalogdomain.ErrVersionNotFound)

	body, _ := json.Marshal(AddItemRequest{VersionID: versionID, Quantity: 2})
	rec := httptest.NewRecorder()
	handler.AddItem(rec, authedRequest(http.MethodPost, "/cart", body, userID))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartHandler_RemoveItem_AlwaysNoContent(t *testing.T) {
	svc := new(cartServiceMock)
	handler := NewCartHandler(svc)

	userID := uuid.New()
	itemID := uuid.New()
	svc.On("RemoveItem", mock.Anything, userID, itemID).Return(nil)

	req := authedRequest(http.MethodDelete, "/cart/items/"+itemID.String(), nil, userID)
	req.SetPathValue("itemId", itemID.String())
	rec := httptest.NewRecorder()
	handler.RemoveItem(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCartHandler_Clear(t *testing.T) {
	svc := new(cartServiceMock)
	handler := NewCartHandler(svc)

	userID := uuid.New()
	svc.On("Clear", mock.Anything, userID).Return(nil)

	rec := httptest.NewRecorder()
	handler.Clear(rec, authedRequest(http.MethodPost, "/cart/clear", nil, userID))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
