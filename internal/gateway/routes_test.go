package gateway

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aigerim-zh/kshop/internal/gateway/middleware"
	auth_http "github.com/aigerim-zh/kshop/internal/modules/auth/interfaces/http"
	cart_http "github.com/aigerim-zh/kshop/internal/modules/cart/interfaces/http"
	catalog_http "github.com/aigerim-zh/kshop/internal/modules/catalog/interfaces/http"
	discount_http "github.com/aigerim-zh/kshop/internal/modules/discount/interfaces/http"
	notification_http "github.com/aigerim-zh/kshop/internal/modules/notification/interfaces/http"
	order_http "github.com/aigerim-zh/kshop/internal/modules/order/interfaces/http"
	wishlist_http "github.com/aigerim-zh/kshop/internal/modules/wishlist/interfaces/http"
)

func testRouterConfig() RouterConfig {
	return RouterConfig{
		AuthHandler:         &auth_http.AuthHandler{},
		AuthMiddleware:      middleware.NewAuthMiddleware("test-secret"),
		CatalogHandler:      &catalog_http.CatalogHandler{},
		AdminCatalogHandler: &catalog_http.AdminCatalogHandler{},
		DiscountHandler:     &discount_http.DiscountHandler{},
		CartHandler:         &cart_http.CartHandler{},
		OrderHandler:        &order_http.OrderHandler{},
		WishlistHandler:     &wishlist_http.WishlistHandler{},
		NotificationHandler: &notification_http.NotificationHandler{},
	}
}

func TestSetupRoutes(t *testing.T) {
	mux := SetupRoutes(testRouterConfig())
	assert.NotNil(t, mux)
}

func TestSetupRoutes_HealthCheck(t *testing.T) {
	mux := SetupRoutes(testRouterConfig())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())
}

func TestSetupRoutes_ProtectedRoutesRequireAuth(t *testing.T) {
	mux := SetupRoutes(testRouterConfig())

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/cart"},
		{http.MethodPost, "/orders"},
		{http.MethodGet, "/wishlist"},
		{http.MethodGet, "/admin/orders"},
		{http.MethodGet, "/admin/albums"},
		{http.MethodGet, "/admin/artists"},
	}

	for _, route := range protected {
		req := httptest.NewRequest(route.method, route.path, nil)
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, "%s %s should require auth", route.method, route.path)
	}
}

func TestSetupRoutes_ArtistCategoriesIsPublic(t *testing.T) {
	mux := SetupRoutes(testRouterConfig())

	req := httptest.NewRequest(http.MethodGet, "/artist_categories", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "female_group")
}

func TestSetupRoutes_UploadsDisabledByDefault(t *testing.T) {
	mux := SetupRoutes(testRouterConfig())

	req := httptest.NewRequest(http.MethodGet, "/uploads/covers/test.jpg", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
