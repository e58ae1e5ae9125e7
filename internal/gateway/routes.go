package gateway

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aigerim-zh/kshop/internal/gateway/middleware"
	auth_http "github.com/aigerim-zh/kshop/internal/modules/auth/interfaces/http"
	cart_http "github.com/aigerim-zh/kshop/internal/modules/cart/interfaces/http"
	catalog_http "github.com/aigerim-zh/kshop/internal/modules/catalog/interfaces/http"
	discount_http "github.com/aigerim-zh/kshop/internal/modules/discount/interfaces/http"
	notification_http "github.com/aigerim-zh/kshop/internal/modules/notification/interfaces/http"
	order_http "github.com/aigerim-zh/kshop/internal/modules/order/interfaces/http"
	wishlist_http "github.com/aigerim-zh/kshop/internal/modules/wishlist/interfaces/http"
)

// RouterConfig holds all the handlers and middleware needed for routing
type RouterConfig struct {
	AuthHandler         *auth_http.AuthHandler
	AuthMiddleware      *middleware.AuthMiddleware
	CatalogHandler      *catalog_http.CatalogHandler
	AdminCatalogHandler *catalog_http.AdminCatalogHandler
	DiscountHandler     *discount_http.DiscountHandler
	CartHandler         *cart_http.CartHandler
	OrderHandler        *order_http.OrderHandler
	WishlistHandler     *wishlist_http.WishlistHandler
	NotificationHandler *notification_http.NotificationHandler
	UserAdminHandler    *auth_http.UserAdminHandler

	// UploadsDir enables static serving of locally stored images under
	// /uploads/. Empty when an object store serves images directly.
	UploadsDir string
}

// SetupRoutes creates and configures all application routes
func SetupRoutes(config RouterConfig) *http.ServeMux {
	mux := http.NewServeMux()

	// Health Check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus Metrics Endpoint
	mux.Handle("/metrics", promhttp.Handler())

	if config.UploadsDir != "" {
		mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(config.UploadsDir))))
	}

	requireAuth := func(h http.HandlerFunc) http.Handler {
		return config.AuthMiddleware.RequireAuth(h)
	}
	requireAdmin := func(h http.HandlerFunc) http.Handler {
		return config.AuthMiddleware.RequireAuth(config.AuthMiddleware.RequireAdmin(h))
	}

	// Auth Routes
	mux.HandleFunc("POST /register", config.AuthHandler.Register)
	mux.HandleFunc("POST /login", config.AuthHandler.Login)
	mux.HandleFunc("POST /google-login", config.AuthHandler.GoogleLogin)
	mux.Handle("GET /check-auth", requireAuth(config.AuthHandler.CheckAuth))

	// Catalog Routes
	mux.HandleFunc("GET /artist_categories", config.CatalogHandler.ListArtistCategories)
	mux.HandleFunc("GET /artists", config.CatalogHandler.ListArtists)
	mux.HandleFunc("GET /artists/{id}", config.CatalogHandler.GetArtist)
	mux.HandleFunc("GET /artists/{id}/albums", config.CatalogHandler.ListArtistAlbums)
	mux.HandleFunc("GET /albums", config.CatalogHandler.ListAlbums)
	mux.HandleFunc("GET /albums/{id}", config.CatalogHandler.GetAlbum)
	mux.HandleFunc("GET /albums/{id}/discounts", config.DiscountHandler.ForAlbum)

	// Cart Routes
	mux.Handle("GET /cart", requireAuth(config.CartHandler.Get))
	mux.Handle("POST /cart", requireAuth(config.CartHandler.AddItem))
	mux.Handle("DELETE /cart/items/{itemId}", requireAuth(config.CartHandler.RemoveItem))
	mux.Handle("POST /cart/clear", requireAuth(config.CartHandler.Clear))

	// Order & Payment Routes
	mux.Handle("POST /orders", requireAuth(config.OrderHandler.Checkout))
	mux.Handle("GET /orders", requireAuth(config.OrderHandler.List))
	mux.Handle("GET /orders/{id}", requireAuth(config.OrderHandler.Get))
	mux.Handle("POST /orders/{id}/pay", requireAuth(config.OrderHandler.Pay))
	mux.Handle("POST /payments/verify", requireAuth(config.OrderHandler.VerifyPayment))

	// Wishlist Routes
	mux.Handle("GET /wishlist", requireAuth(config.WishlistHandler.List))
	mux.Handle("POST /wishlist", requireAuth(config.WishlistHandler.Add))
	mux.Handle("DELETE /wishlist/{albumId}", requireAuth(config.WishlistHandler.Remove))

	// Notification Routes
	mux.Handle("GET /notifications", requireAuth(config.NotificationHandler.List))
	mux.Handle("PATCH /notifications/{id}/read", requireAuth(config.NotificationHandler.MarkAsRead))
	mux.Handle("PATCH /notifications/read-all", requireAuth(config.NotificationHandler.MarkAllAsRead))
	mux.Handle("GET /notifications/unread-count", requireAuth(config.NotificationHandler.UnreadCount))
	mux.Handle("GET /ws", requireAuth(config.NotificationHandler.Subscribe))

	// Admin Routes
	mux.Handle("GET /admin/users", requireAdmin(config.UserAdminHandler.List))
	mux.Handle("PATCH /admin/users/{id}", requireAdmin(config.UserAdminHandler.Update))
	mux.Handle("DELETE /admin/users/{id}", requireAdmin(config.UserAdminHandler.Delete))

	mux.Handle("GET /admin/artists", requireAdmin(config.AdminCatalogHandler.ListArtists))
	mux.Handle("POST /admin/artists", requireAdmin(config.AdminCatalogHandler.CreateArtist))
	mux.Handle("PUT /admin/artists/{id}", requireAdmin(config.AdminCatalogHandler.UpdateArtist))
	mux.Handle("DELETE /admin/artists/{id}", requireAdmin(config.AdminCatalogHandler.DeleteArtist))
	mux.Handle("POST /admin/artists/{id}/image", requireAdmin(config.AdminCatalogHandler.UploadArtistImage))

	mux.Handle("GET /admin/albums", requireAdmin(config.AdminCatalogHandler.ListAlbums))
	mux.Handle("POST /admin/albums", requireAdmin(config.AdminCatalogHandler.CreateAlbum))
	mux.Handle("PUT /admin/albums/{id}", requireAdmin(config.AdminCatalogHandler.UpdateAlbum))
	mux.Handle("DELETE /admin/albums/{id}", requireAdmin(config.AdminCatalogHandler.DeleteAlbum))
	mux.Handle("POST /admin/albums/{id}/cover", requireAdmin(config.AdminCatalogHandler.UploadAlbumCover))

	mux.Handle("POST /admin/discounts", requireAdmin(config.DiscountHandler.Create))
	mux.Handle("GET /admin/discounts", requireAdmin(config.DiscountHandler.List))
	mux.Handle("GET /admin/discounts/{id}", requireAdmin(config.DiscountHandler.Get))
	mux.Handle("PUT /admin/discounts/{id}", requireAdmin(config.DiscountHandler.Update))
	mux.Handle("DELETE /admin/discounts/{id}", requireAdmin(config.DiscountHandler.Delete))
	mux.Handle("PUT /admin/discounts/{id}/albums", requireAdmin(config.DiscountHandler.SetAlbums))

	mux.Handle("GET /admin/orders", requireAdmin(config.OrderHandler.AdminList))
	mux.Handle("PATCH /admin/orders/{id}/status", requireAdmin(config.OrderHandler.AdminUpdateStatus))

	return mux
}
