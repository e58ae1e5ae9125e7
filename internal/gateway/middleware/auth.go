package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/aigerim-zh/kshop/internal/modules/auth/infrastructure/jwt"
)

type contextKey string

const (
	ContextKeyUserID  contextKey = "user_id"
	ContextKeyIsAdmin contextKey = "is_admin"
)

// UserID extracts the authenticated user id from a request context.
func UserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ContextKeyUserID).(uuid.UUID)
	return id, ok
}

// IsAdmin reports whether the request context belongs to an admin.
func IsAdmin(ctx context.Context) bool {
	isAdmin, _ := ctx.Value(ContextKeyIsAdmin).(bool)
	return isAdmin
}

type AuthMiddleware struct {
	jwtSecret string
}

// NewAuthMiddleware initializes the middleware with the JWT secret used for
// token validation.
func NewAuthMiddleware(jwtSecret string) *AuthMiddleware {
	return &AuthMiddleware{jwtSecret: jwtSecret}
}

// RequireAuth enforces a valid Bearer token and injects the user's id and
// admin flag into the request context. Every failure mode answers 401 with a
// JSON error body; the storefront client treats any 401 as a signal to drop
// its persisted session.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := ""
		authHeader := r.Header.Get("Authorization")

		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenStr = parts[1]
			}
		}

		// The websocket endpoint cannot set headers from the browser.
		if tokenStr == "" {
			tokenStr = r.URL.Query().Get("token")
		}

		if tokenStr == "" {
			http.Error(w, `{"error": "missing or invalid authorization"}`, http.StatusUnauthorized)
			return
		}

		claims, err := jwt.ValidateToken(tokenStr, m.jwtSecret)
		if err != nil {
			http.Error(w, `{"error": "invalid or expired token"}`, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyUserID, claims.UserID)
		ctx = context.WithValue(ctx, ContextKeyIsAdmin, claims.IsAdmin)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin stacks on RequireAuth and rejects non-admin users with 403.
// Used for every /admin/* route.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdmin(r.Context()) {
			http.Error(w, `{"error": "admin access required"}`, http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	}))
}
