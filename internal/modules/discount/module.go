package discount

import (
	"github.com/jmoiron/sqlx"

	"github.com/aigerim-zh/kshop/internal/modules/discount/application"
	"github.com/aigerim-zh/kshop/internal/modules/discount/domain"
	discountpg "github.com/aigerim-zh/kshop/internal/modules/discount/infrastructure/persistence/postgres"
	discounthttp "github.com/aigerim-zh/kshop/internal/modules/discount/interfaces/http"
)

type Module struct {
	repo    *discountpg.PgDiscountRepository
	service *application.DiscountService
	handler *discounthttp.DiscountHandler
}

func NewModule(db *sqlx.DB) *Module {
	repo := discountpg.NewDiscountRepository(db)
	service := application.NewDiscountService(repo)
	return &Module{
		repo:    repo,
		service: service,
		handler: discounthttp.NewDiscountHandler(service),
	}
}

func (m *Module) Service() *application.DiscountService {
	return m.service
}

// Finder exposes the read side used by cart pricing.
func (m *Module) Finder() domain.DiscountFinder {
	return m.repo
}

func (m *Module) HTTPHandler() *discounthttp.DiscountHandler {
	return m.handler
}
