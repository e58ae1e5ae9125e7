package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/aigerim-zh/kshop/internal/gateway/middleware"
	"github.com/aigerim-zh/kshop/internal/modules/cart/application"
	"github.com/aigerim-zh/kshop/internal/modules/cart/domain"
	catalogdomain "github.com/aigerim-zh/kshop/internal/modules/catalog/domain"
)

type CartService interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*application.CartView, error)
	AddItem(ctx context.Context, userID, versionID uuid.UUID, quantity int) (*application.CartView, error)
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

type AddItemRequest struct {
	VersionID uuid.UUID `json:"version_id"`
	Quantity  int       `json:"quantity"`
}

// CartHandler serves the authenticated user's cart. All routes sit behind
// RequireAuth, so a missing user id in context is a programming error.
type CartHandler struct {
	service CartService
}

func NewCartHandler(service CartService) *CartHandler {
	return &CartHandler{service: service}
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, `{"error": "unauthorized"}`, http.StatusUnauthorized)
		return
	}

	view, err := h.service.GetCart(r.Context(), userID)
	if err != nil {
		log.Printf("[CartHandler.Get] %v", err)
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, `{"error": "unauthorized"}`, http.StatusUnauthorized)
		return
	}

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	view, err := h.service.AddItem(r.Context(), userID, req.VersionID, req.Quantity)
	switch err {
	case nil:
	case domain.ErrInvalidQuantity:
		http.Error(w, `{"error": "quantity must be at least 1"}`, http.StatusBadRequest)
		return
	case catalogdomain.ErrVersionNotFound:
		http.Error(w, `{"error": "version not found"}`, http.StatusNotFound)
		return
	default:
		log.Printf("[CartHandler.AddItem] %v", err)
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// RemoveItem always answers 204: deleting an already-removed line leaves the
// cart in the requested state.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, `{"error": "unauthorized"}`, http.StatusUnauthorized)
		return
	}

	itemID, err := uuid.Parse(r.PathValue("itemId"))
	if err != nil {
		http.Error(w, `{"error": "invalid item id"}`, http.StatusBadRequest)
		return
	}

	if err := h.service.RemoveItem(r.Context(), userID, itemID); err != nil {
		log.Printf("[CartHandler.RemoveItem] %v", err)
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, `{"error": "unauthorized"}`, http.StatusUnauthorized)
		return
	}

	if err := h.service.Clear(r.Context(), userID); err != nil {
		log.Printf("[CartHandler.Clear] %v", err)
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
