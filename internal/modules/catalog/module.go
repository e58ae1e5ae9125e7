package catalog

import (
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/aigerim-zh/kshop/internal/modules/catalog/application"
	"github.com/aigerim-zh/kshop/internal/modules/catalog/domain"
	catalogpg "github.com/aigerim-zh/kshop/internal/modules/catalog/infrastructure/persistence/postgres"
	cataloghttp "github.com/aigerim-zh/kshop/internal/modules/catalog/interfaces/http"
)

// Module bundles the artist and album catalog.
type Module struct {
	service      *application.CatalogService
	albumRepo    *catalogpg.PgAlbumRepository
	handler      *cataloghttp.CatalogHandler
	adminHandler *cataloghttp.AdminCatalogHandler
}

func NewModule(db *sqlx.DB, redisClient *redis.Client, images cataloghttp.ImageService) *Module {
	artistRepo := catalogpg.NewArtistRepository(db)
	albumRepo := catalogpg.NewAlbumRepository(db)
	service := application.NewCatalogService(artistRepo, albumRepo)

	return &Module{
		service:      service,
		albumRepo:    albumRepo,
		handler:      cataloghttp.NewCatalogHandler(service, redisClient),
		adminHandler: cataloghttp.NewAdminCatalogHandler(service, images, redisClient),
	}
}

func (m *Module) Service() *application.CatalogService {
	return m.service
}

// VersionFinder is used by the cart module to price album versions.
func (m *Module) VersionFinder() domain.VersionFinder {
	return m.albumRepo
}

func (m *Module) HTTPHandler() *cataloghttp.CatalogHandler {
	return m.handler
}

func (m *Module) AdminHTTPHandler() *cataloghttp.AdminCatalogHandler {
	return m.adminHandler
}
