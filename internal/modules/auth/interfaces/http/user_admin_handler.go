package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/aigerim-zh/kshop/internal/modules/auth/application"
	"github.com/aigerim-zh/kshop/internal/modules/auth/domain"
)

// UserAdminService defines the admin-console operations on accounts
type UserAdminService interface {
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, int, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req application.UpdateUserRequest) (*domain.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type UserAdminHandler struct {
	service UserAdminService
}

func NewUserAdminHandler(service UserAdminService) *UserAdminHandler {
	return &UserAdminHandler{service: service}
}

// UserListResponse is a paged collection, the shape all admin list endpoints
// share so the console can page instead of fetching everything at once.
type UserListResponse struct {
	Users []domain.User `json:"users"`
	Total int           `json:"total"`
}

func (h *UserAdminHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r, 50)

	users, total, err := h.service.ListUsers(r.Context(), limit, (page-1)*limit)
	if err != nil {
		http.Error(w, `{"error": "failed to list users"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(UserListResponse{Users: users, Total: total})
}

func (h *UserAdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, `{"error": "invalid id"}`, http.StatusBadRequest)
		return
	}

	var req application.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}

	user, err := h.service.UpdateUser(r.Context(), id, req)
	if err != nil {
		if err == domain.ErrUserNotFound {
			http.Error(w, `{"error": "user not found"}`, http.StatusNotFound)
			return
		}
		http.Error(w, `{"error": "`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

func (h *UserAdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, `{"error": "invalid id"}`, http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteUser(r.Context(), id); err != nil {
		if err == domain.ErrUserNotFound {
			http.Error(w, `{"error": "user not found"}`, http.StatusNotFound)
			return
		}
		http.Error(w, `{"error": "`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// pageParams reads page/limit query params with sane bounds. Shared shape for
// the admin collection endpoints.
func pageParams(r *http.Request, defaultLimit int) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 200 {
		limit = defaultLimit
	}
	return page, limit
}
