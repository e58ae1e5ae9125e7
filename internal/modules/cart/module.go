package cart

import (
	"github.com/jmoiron/sqlx"

	"github.com/aigerim-zh/kshop/internal/modules/cart/application"
	cartpg "github.com/aigerim-zh/kshop/internal/modules/cart/infrastructure/persistence/postgres"
	carthttp "github.com/aigerim-zh/kshop/internal/modules/cart/interfaces/http"
	catalogdomain "github.com/aigerim-zh/kshop/internal/modules/catalog/domain"
	discountdomain "github.com/aigerim-zh/kshop/internal/modules/discount/domain"
)

type Module struct {
	service *application.CartService
	handler *carthttp.CartHandler
}

func NewModule(db *sqlx.DB, versions catalogdomain.VersionFinder, discounts discountdomain.DiscountFinder) *Module {
	repo := cartpg.NewCartRepository(db)
	service := application.NewCartService(repo, versions, discounts)
	return &Module{
		service: service,
		handler: carthttp.NewCartHandler(service),
	}
}

func (m *Module) Service() *application.CartService {
	return m.service
}

func (m *Module) HTTPHandler() *carthttp.CartHandler {
	return m.handler
}
