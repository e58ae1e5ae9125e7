package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/aigerim-zh/kshop/internal/gateway"
	"github.com/aigerim-zh/kshop/internal/gateway/middleware"
	"github.com/aigerim-zh/kshop/internal/modules/auth"
	"github.com/aigerim-zh/kshop/internal/modules/cart"
	"github.com/aigerim-zh/kshop/internal/modules/catalog"
	"github.com/aigerim-zh/kshop/internal/modules/discount"
	"github.com/aigerim-zh/kshop/internal/modules/filestorage"
	"github.com/aigerim-zh/kshop/internal/modules/notification"
	"github.com/aigerim-zh/kshop/internal/modules/order"
	"github.com/aigerim-zh/kshop/internal/modules/wishlist"
	"github.com/aigerim-zh/kshop/internal/shared/infrastructure/config"
	"github.com/aigerim-zh/kshop/internal/shared/infrastructure/database"
	"github.com/aigerim-zh/kshop/pkg/migration"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	ctx := context.Background()

	db, err := database.NewPostgresDB(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if cfg.Migrations.Auto {
		runner := migration.NewRunner(&migration.Config{
			MigrationsPath: cfg.Migrations.Path,
			DatabaseURL:    cfg.Database.URL(),
		})
		if err := runner.Up(); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	redisClient, err := database.NewRedis(cfg.Redis)
	if err != nil {
		log.Printf("Redis unavailable, album cache disabled: %v", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	storageModule, err := filestorage.NewModule(ctx, cfg.FileStorage)
	if err != nil {
		log.Fatalf("Failed to initialize file storage: %v", err)
	}

	authModule := auth.NewModule(db, cfg.JWT.Secret, cfg.JWT.Expiry, cfg.Google.ClientID)
	catalogModule := catalog.NewModule(db, redisClient, storageModule.Service())
	discountModule := discount.NewModule(db)
	cartModule := cart.NewModule(db, catalogModule.VersionFinder(), discountModule.Finder())
	notificationModule := notification.NewModule(db, authModule.Repository())
	defer notificationModule.Stop()
	orderModule := order.NewModule(db, cartModule.Service(), notificationModule.Service(), cfg.Razorpay)
	wishlistModule := wishlist.NewModule(db, catalogModule.Service())

	uploadsDir := ""
	if !cfg.FileStorage.UseS3 {
		uploadsDir = cfg.FileStorage.LocalPath
	}

	mux := gateway.SetupRoutes(gateway.RouterConfig{
		AuthHandler:         authModule.HTTPHandler(),
		AuthMiddleware:      middleware.NewAuthMiddleware(cfg.JWT.Secret),
		CatalogHandler:      catalogModule.HTTPHandler(),
		AdminCatalogHandler: catalogModule.AdminHTTPHandler(),
		DiscountHandler:     discountModule.HTTPHandler(),
		CartHandler:         cartModule.HTTPHandler(),
		OrderHandler:        orderModule.HTTPHandler(),
		WishlistHandler:     wishlistModule.HTTPHandler(),
		NotificationHandler: notificationModule.HTTPHandler(),
		UserAdminHandler:    authModule.AdminHTTPHandler(),
		UploadsDir:          uploadsDir,
	})

	handler := middleware.CORSMiddleware(middleware.PrometheusMiddleware(mux), cfg.Server.AllowedOrigins)

	server := gateway.NewServer(cfg.Server.Port, handler)
	if err := server.Start(); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}
