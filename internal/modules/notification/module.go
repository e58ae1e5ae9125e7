package notification

import (
	"github.com/jmoiron/sqlx"

	"github.com/aigerim-zh/kshop/internal/modules/notification/application"
	"github.com/aigerim-zh/kshop/internal/modules/notification/infrastructure/persistence/postgres"
	"github.com/aigerim-zh/kshop/internal/modules/notification/infrastructure/websocket"
	notificationhttp "github.com/aigerim-zh/kshop/internal/modules/notification/interfaces/http"
)

type Module struct {
	service *application.NotificationService
	handler *notificationhttp.NotificationHandler
	hub     *websocket.Hub
}

func NewModule(db *sqlx.DB, admins application.AdminLister) *Module {
	repo := postgres.NewPgNotificationRepository(db)
	hub := websocket.NewHub()
	go hub.Run()

	service := application.NewNotificationService(repo, hub, admins)
	handler := notificationhttp.NewNotificationHandler(service, hub)

	return &Module{
		service: service,
		handler: handler,
		hub:     hub,
	}
}

func (m *Module) HTTPHandler() *notificationhttp.NotificationHandler {
	return m.handler
}

func (m *Module) Service() *application.NotificationService {
	return m.service
}

func (m *Module) Stop() {
	m.hub.Stop()
}
