package order

import (
	"github.com/jmoiron/sqlx"

	"github.com/aigerim-zh/kshop/internal/modules/order/application"
	orderpg "github.com/aigerim-zh/kshop/internal/modules/order/infrastructure/persistence/postgres"
	"github.com/aigerim-zh/kshop/internal/modules/order/infrastructure/razorpay"
	orderhttp "github.com/aigerim-zh/kshop/internal/modules/order/interfaces/http"
	"github.com/aigerim-zh/kshop/internal/shared/infrastructure/config"
)

type Module struct {
	service *application.OrderService
	handler *orderhttp.OrderHandler
}

func NewModule(db *sqlx.DB, cart application.CartReader, notifier application.Notifier, cfg config.RazorpayConfig) *Module {
	repo := orderpg.NewOrderRepository(db)
	gateway := razorpay.NewGateway(cfg.KeyID, cfg.KeySecret)
	service := application.NewOrderService(repo, cart, gateway, notifier, cfg.KeyID)
	return &Module{
		service: service,
		handler: orderhttp.NewOrderHandler(service),
	}
}

func (m *Module) Service() *application.OrderService {
	return m.service
}

func (m *Module) HTTPHandler() *orderhttp.OrderHandler {
	return m.handler
}
