package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/aigerim-zh/kshop/internal/gateway/middleware"
	catalogdomain "github.com/aigerim-zh/kshop/internal/modules/catalog/domain"
	"github.com/aigerim-zh/kshop/internal/modules/wishlist/domain"
)

type WishlistService interface {
	List(ctx context.Context, userID uuid.UUID) ([]domain.Item, error)
	Add(ctx context.Context, userID, albumID uuid.UUID) error
	Remove(ctx context.Context, userID, albumID uuid.UUID) error
}

type AddRequest struct {
	AlbumID uuid.UUID `json:"album_id"`
}

type WishlistHandler struct {
	service WishlistService
}

func NewWishlistHandler(service WishlistService) *WishlistHandler {
	return &WishlistHandler{service: service}
}

func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, `{"error": "unauthorized"}`, http.StatusUnauthorized)
		return
	}

	items, err := h.service.List(r.Context(), userID)
	if err != nil {
		log.Printf("[WishlistHandler.List] %v", err)
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}
	if items == nil {
		items = []domain.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, `{"error": "unauthorized"}`, http.StatusUnauthorized)
		return
	}

	var req AddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}

	err := h.service.Add(r.Context(), userID, req.AlbumID)
	switch err {
	case nil:
		w.WriteHeader(http.StatusCreated)
	case domain.ErrAlreadyInWishlist:
		http.Error(w, `{"error": "album already in wishlist"}`, http.StatusBadRequest)
	case catalogdomain.ErrAlbumNotFound:
		http.Error(w, `{"error": "album not found"}`, http.StatusNotFound)
	default:
		log.Printf("[WishlistHandler.Add] %v", err)
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
	}
}

// Remove answers 404 when the album was never saved. Unlike cart lines, the
// storefront surfaces this to the user.
func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, `{"error": "unauthorized"}`, http.StatusUnauthorized)
		return
	}

	albumID, err := uuid.Parse(r.PathValue("albumId"))
	if err != nil {
		http.Error(w, `{"error": "invalid album id"}`, http.StatusBadRequest)
		return
	}

	err = h.service.Remove(r.Context(), userID, albumID)
	switch err {
	case nil:
		w.WriteHeader(http.StatusNoContent)
	case domain.ErrNotInWishlist:
		http.Error(w, `{"error": "album not in wishlist"}`, http.StatusNotFound)
	default:
		log.Printf("[WishlistHandler.Remove] %v", err)
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
