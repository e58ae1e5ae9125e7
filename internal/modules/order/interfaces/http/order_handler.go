package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/aigerim-zh/kshop/internal/gateway/middleware"
	cartdomain "github.com/aigerim-zh/kshop/internal/modules/cart/domain"
	"github.com/aigerim-zh/kshop/internal/modules/order/application"
	"github.com/aigerim-zh/kshop/internal/modules/order/domain"
)

type OrderService interface {
	Checkout(ctx context.Context, userID uuid.UUID) (*domain.Order, error)
	Get(ctx context.Context, orderID, userID uuid.UUID, isAdmin bool) (*domain.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Order, int, error)
	List(ctx context.Context, limit, offset int) ([]domain.Order, int, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) (*domain.Order, error)
	InitiatePayment(ctx context.Context, orderID, userID uuid.UUID) (*application.PaymentInitResponse, error)
	VerifyPayment(ctx context.Context, userID uuid.UUID, req application.VerifyPaymentRequest) (*domain.Order, error)
}

type OrderListResponse struct {
	Orders []domain.Order `json:"orders"`
	Total  int            `json:"total"`
	Page   int            `json:"page"`
	Limit  int            `json:"limit"`
}

type UpdateStatusRequest struct {
	Status domain.OrderStatus `json:"status"`
}

type OrderHandler struct {
	service OrderService
}

func NewOrderHandler(service OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// Checkout converts the caller's cart into an order.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, `{"error": "unauthorized"}`, http.StatusUnauthorized)
		return
	}

	order, err := h.service.Checkout(r.Context(), userID)
	if err == cartdomain.ErrCartEmpty {
		http.Error(w, `{"error": "cart is empty"}`, http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Printf("[OrderHandler.Checkout] %v", err)
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, `{"error": "unauthorized"}`, http.StatusUnauthorized)
		return
	}

	page, limit := pageParams(r, 20)
	orders, total, err := h.service.ListByUser(r.Context(), userID, limit, (page-1)*limit)
	if err != nil {
		log.Printf("[OrderHandler.List] %v", err)
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	writeJSON(w, http.StatusOK, OrderListResponse{Orders: orders, Total: total, Page: page, Limit: limit})
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, `{"error": "unauthorized"}`, http.StatusUnauthorized)
		return
	}

	orderID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, `{"error": "invalid id"}`, http.StatusBadRequest)
		return
	}

	order, err := h.service.Get(r.Context(), orderID, userID, middleware.IsAdmin(r.Context()))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// Pay registers the order with the payment provider and returns what the
// storefront needs to open the checkout widget.
func (h *OrderHandler) Pay(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, `{"error": "unauthorized"}`, http.StatusUnauthorized)
		return
	}

	orderID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, `{"error": "invalid id"}`, http.StatusBadRequest)
		return
	}

	resp, err := h.service.InitiatePayment(r.Context(), orderID, userID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *OrderHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, `{"error": "unauthorized"}`, http.StatusUnauthorized)
		return
	}

	var req application.VerifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}

	order, err := h.service.VerifyPayment(r.Context(), userID, req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// AdminList returns every order, paged, newest first.
func (h *OrderHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r, 20)
	orders, total, err := h.service.List(r.Context(), limit, (page-1)*limit)
	if err != nil {
		log.Printf("[OrderHandler.AdminList] %v", err)
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	writeJSON(w, http.StatusOK, OrderListResponse{Orders: orders, Total: total, Page: page, Limit: limit})
}

func (h *OrderHandler) AdminUpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, `{"error": "invalid id"}`, http.StatusBadRequest)
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), orderID, req.Status)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch err {
	case domain.ErrOrderNotFound:
		http.Error(w, `{"error": "order not found"}`, http.StatusNotFound)
	case domain.ErrNotOrderOwner:
		http.Error(w, `{"error": "forbidden"}`, http.StatusForbidden)
	case domain.ErrInvalidStatus:
		http.Error(w, `{"error": "invalid order status"}`, http.StatusBadRequest)
	case domain.ErrOrderNotPayable:
		http.Error(w, `{"error": "order is not awaiting payment"}`, http.StatusConflict)
	case domain.ErrInvalidSignature, domain.ErrPaymentNotPrepared:
		http.Error(w, `{"error": "payment verification failed"}`, http.StatusBadRequest)
	default:
		log.Printf("[OrderHandler] unexpected error: %v", err)
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func pageParams(r *http.Request, defaultLimit int) (page, limit int) {
	q := r.URL.Query()
	page, _ = strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(q.Get("limit"))
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > 200 {
		limit = 200
	}
	return page, limit
}
