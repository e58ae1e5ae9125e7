package wishlist

import (
	"github.com/jmoiron/sqlx"

	"github.com/aigerim-zh/kshop/internal/modules/wishlist/application"
	wishlistpg "github.com/aigerim-zh/kshop/internal/modules/wishlist/infrastructure/persistence/postgres"
	wishlisthttp "github.com/aigerim-zh/kshop/internal/modules/wishlist/interfaces/http"
)

type Module struct {
	service *application.WishlistService
	handler *wishlisthttp.WishlistHandler
}

func NewModule(db *sqlx.DB, albums application.AlbumChecker) *Module {
	service := application.NewWishlistService(wishlistpg.NewWishlistRepository(db), albums)
	return &Module{
		service: service,
		handler: wishlisthttp.NewWishlistHandler(service),
	}
}

func (m *Module) Service() *application.WishlistService {
	return m.service
}

func (m *Module) HTTPHandler() *wishlisthttp.WishlistHandler {
	return m.handler
}
