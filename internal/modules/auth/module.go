package auth

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/aigerim-zh/kshop/internal/modules/auth/application"
	"github.com/aigerim-zh/kshop/internal/modules/auth/domain"
	persistence "github.com/aigerim-zh/kshop/internal/modules/auth/infrastructure/persistence/postgres"
	authHttp "github.com/aigerim-zh/kshop/internal/modules/auth/interfaces/http"
)

// Module wires the auth feature: accounts, sessions, and the admin user screen.
type Module struct {
	repo         *persistence.PgUserRepository
	service      *application.AuthService
	handler      *authHttp.AuthHandler
	adminHandler *authHttp.UserAdminHandler
}

// NewModule creates and initializes the Auth module
func NewModule(db *sqlx.DB, jwtSecret string, jwtExpiry time.Duration, googleClientID string) *Module {
	repo := persistence.NewUserRepository(db)
	service := application.NewAuthService(repo, jwtSecret, jwtExpiry)

	return &Module{
		repo:         repo,
		service:      service,
		handler:      authHttp.NewAuthHandler(service, googleClientID),
		adminHandler: authHttp.NewUserAdminHandler(service),
	}
}

// Repository exposes the user repository to other modules (notification
// fan-out needs admin ids).
func (m *Module) Repository() domain.UserRepository {
	return m.repo
}

// Service returns the auth service
func (m *Module) Service() *application.AuthService {
	return m.service
}

// HTTPHandler returns the public auth HTTP handler
func (m *Module) HTTPHandler() *authHttp.AuthHandler {
	return m.handler
}

// AdminHTTPHandler returns the admin users HTTP handler
func (m *Module) AdminHTTPHandler() *authHttp.UserAdminHandler {
	return m.adminHandler
}
