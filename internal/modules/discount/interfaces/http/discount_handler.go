package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/aigerim-zh/kshop/internal/modules/discount/application"
	"github.com/aigerim-zh/kshop/internal/modules/discount/domain"
)

type DiscountService interface {
	Create(ctx context.Context, req application.DiscountRequest) (*domain.Discount, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Discount, error)
	List(ctx context.Context, limit, offset int) ([]domain.Discount, int, error)
	Update(ctx context.Context, id uuid.UUID, req application.DiscountRequest) (*domain.Discount, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetAlbums(ctx context.Context, id uuid.UUID, albumIDs []uuid.UUID) (*domain.Discount, error)
	ForAlbum(ctx context.Context, albumID uuid.UUID) ([]domain.Discount, error)
}

type DiscountListResponse struct {
	Discounts []domain.Discount `json:"discounts"`
	Total     int               `json:"total"`
	Page      int               `json:"page"`
	Limit     int               `json:"limit"`
}

type SetAlbumsRequest struct {
	AlbumIDs []uuid.UUID `json:"album_ids"`
}

// DiscountHandler serves both the public per-album discount listing and the
// admin promotion management endpoints.
type DiscountHandler struct {
	service DiscountService
}

func NewDiscountHandler(service DiscountService) *DiscountHandler {
	return &DiscountHandler{service: service}
}

// ForAlbum is public: the product page uses it to show promotion windows.
func (h *DiscountHandler) ForAlbum(w http.ResponseWriter, r *http.Request) {
	albumID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, `{"error": "invalid id"}`, http.StatusBadRequest)
		return
	}

	discounts, err := h.service.ForAlbum(r.Context(), albumID)
	if err != nil {
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}
	if discounts == nil {
		discounts = []domain.Discount{}
	}
	writeJSON(w, http.StatusOK, discounts)
}

func (h *DiscountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req application.DiscountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}

	discount, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, discount)
}

func (h *DiscountHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit < 1 {
		limit = 20
	}
	if limit > 200 {
		limit = 200
	}

	discounts, total, err := h.service.List(r.Context(), limit, (page-1)*limit)
	if err != nil {
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}
	if discounts == nil {
		discounts = []domain.Discount{}
	}
	writeJSON(w, http.StatusOK, DiscountListResponse{Discounts: discounts, Total: total, Page: page, Limit: limit})
}

func (h *DiscountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, `{"error": "invalid id"}`, http.StatusBadRequest)
		return
	}

	discount, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, discount)
}

func (h *DiscountHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, `{"error": "invalid id"}`, http.StatusBadRequest)
		return
	}

	var req application.DiscountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}

	discount, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, discount)
}

func (h *DiscountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, `{"error": "invalid id"}`, http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetAlbums replaces the set of albums a discount covers.
func (h *DiscountHandler) SetAlbums(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, `{"error": "invalid id"}`, http.StatusBadRequest)
		return
	}

	var req SetAlbumsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}

	discount, err := h.service.SetAlbums(r.Context(), id, req.AlbumIDs)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, discount)
}

func (h *DiscountHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch err {
	case domain.ErrDiscountNotFound:
		http.Error(w, `{"error": "discount not found"}`, http.StatusNotFound)
	case domain.ErrInvalidPercent, domain.ErrInvalidWindow:
		http.Error(w, `{"error": "`+err.Error()+`"}`, http.StatusBadRequest)
	default:
		log.Printf("[DiscountHandler] unexpected error: %v", err)
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
