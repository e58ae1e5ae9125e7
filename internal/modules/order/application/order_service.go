package application

import (
	"context"
	"fmt"
	"log"
	"math"

	"github.com/google/uuid"

	cartapp "github.com/aigerim-zh/kshop/internal/modules/cart/application"
	cartdomain "github.com/aigerim-zh/kshop/internal/modules/cart/domain"
	"github.com/aigerim-zh/kshop/internal/modules/order/domain"
)

// CartReader is what checkout needs from the cart module.
type CartReader interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*cartapp.CartView, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

// PaymentGateway abstracts the payment provider.
type PaymentGateway interface {
	CreateOrder(amountPaise int, receipt string) (string, error)
	VerifySignature(razorpayOrderID, razorpayPaymentID, signature string) bool
}

// Notifier pushes events to admin users.
type Notifier interface {
	NotifyAdmins(ctx context.Context, title, message string) error
}

// PaymentInitResponse is what the storefront needs to open Razorpay checkout.
type PaymentInitResponse struct {
	RazorpayOrderID string  `json:"razorpay_order_id"`
	Amount          int     `json:"amount"`
	Currency        string  `json:"currency"`
	KeyID           string  `json:"key_id"`
	TotalAmount     float64 `json:"total_amount"`
}

type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

type OrderService struct {
	repo     domain.OrderRepository
	cart     CartReader
	gateway  PaymentGateway
	notifier Notifier
	keyID    string
}

func NewOrderService(repo domain.OrderRepository, cart CartReader, gateway PaymentGateway, notifier Notifier, razorpayKeyID string) *OrderService {
	return &OrderService{
		repo:     repo,
		cart:     cart,
		gateway:  gateway,
		notifier: notifier,
		keyID:    razorpayKeyID,
	}
}

// Checkout turns the user's cart into an order. Line prices are copied from
// the priced cart view, so the order keeps charging what the user saw even if
// discounts change later. The cart is emptied on success.
func (s *OrderService) Checkout(ctx context.Context, userID uuid.UUID) (*domain.Order, error) {
	view, err := s.cart.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(view.Items) == 0 {
		return nil, cartdomain.ErrCartEmpty
	}

	order := &domain.Order{
		UserID:      userID,
		Status:      domain.StatusCreated,
		BaseTotal:   view.Totals.BaseTotal,
		TotalAmount: view.Totals.FinalTotal,
		Items:       make([]domain.OrderItem, len(view.Items)),
	}
	for i, item := range view.Items {
		order.Items[i] = domain.OrderItem{
			VersionID:       item.VersionID,
			AlbumTitle:      item.AlbumTitle,
			ArtistName:      item.ArtistName,
			VersionName:     item.VersionName,
			UnitPrice:       item.BasePrice,
			DiscountPercent: item.DiscountPercent,
			FinalPrice:      item.FinalPrice,
			Quantity:        item.Quantity,
		}
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}

	if err := s.cart.Clear(ctx, userID); err != nil {
		// The order exists; a stale cart is recoverable.
		log.Printf("[OrderService.Checkout] cart clear failed for user %s: %v", userID, err)
	}

	s.notifyAdmins(ctx, "New order", fmt.Sprintf("Order %s placed for %.2f", order.ID, order.TotalAmount))
	return order, nil
}

func (s *OrderService) Get(ctx context.Context, orderID, userID uuid.UUID, isAdmin bool) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && order.UserID != userID {
		return nil, domain.ErrNotOrderOwner
	}
	return order, nil
}

func (s *OrderService) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Order, int, error) {
	return s.repo.ListByUser(ctx, userID, limit, offset)
}

func (s *OrderService) List(ctx context.Context, limit, offset int) ([]domain.Order, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// UpdateStatus is the admin fulfilment action.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	if err := s.repo.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, orderID)
}

// InitiatePayment registers the order with the payment provider.
func (s *OrderService) InitiatePayment(ctx context.Context, orderID, userID uuid.UUID) (*PaymentInitResponse, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domain.ErrNotOrderOwner
	}
	if order.Status != domain.StatusCreated {
		return nil, domain.ErrOrderNotPayable
	}

	amountPaise := int(math.Round(order.TotalAmount * 100))
	receipt := fmt.Sprintf("order_%s", order.ID.String()[:8])

	razorpayOrderID, err := s.gateway.CreateOrder(amountPaise, receipt)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetRazorpayOrderID(ctx, order.ID, razorpayOrderID); err != nil {
		return nil, err
	}

	return &PaymentInitResponse{
		RazorpayOrderID: razorpayOrderID,
		Amount:          amountPaise,
		Currency:        "INR",
		KeyID:           s.keyID,
		TotalAmount:     order.TotalAmount,
	}, nil
}

// VerifyPayment checks the provider signature and marks the order paid.
func (s *OrderService) VerifyPayment(ctx context.Context, userID uuid.UUID, req VerifyPaymentRequest) (*domain.Order, error) {
	order, err := s.repo.GetByRazorpayOrderID(ctx, req.RazorpayOrderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domain.ErrNotOrderOwner
	}
	if order.RazorpayOrderID == nil {
		return nil, domain.ErrPaymentNotPrepared
	}
	if order.Status != domain.StatusCreated {
		return nil, domain.ErrOrderNotPayable
	}

	if !s.gateway.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		return nil, domain.ErrInvalidSignature
	}

	if err := s.repo.UpdateStatus(ctx, order.ID, domain.StatusPaid); err != nil {
		return nil, err
	}
	order.Status = domain.StatusPaid

	s.notifyAdmins(ctx, "Payment received", fmt.Sprintf("Order %s paid (%.2f)", order.ID, order.TotalAmount))
	return order, nil
}

func (s *OrderService) notifyAdmins(ctx context.Context, title, message string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyAdmins(ctx, title, message); err != nil {
		log.Printf("[OrderService] admin notification failed: %v", err)
	}
}
