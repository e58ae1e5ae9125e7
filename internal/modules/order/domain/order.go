package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	StatusCreated   OrderStatus = "created"
	StatusPaid      OrderStatus = "paid"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// Statuses in fulfilment order. The admin console sorts by this progression.
var Statuses = []OrderStatus{StatusCreated, StatusPaid, StatusShipped, StatusDelivered, StatusCancelled}

func (s OrderStatus) Valid() bool {
	for _, status := range Statuses {
		if s == status {
			return true
		}
	}
	return false
}

// Order is a checked-out cart. Its items are snapshots: later price or
// catalog changes never touch an existing order.
type Order struct {
	ID              uuid.UUID   `db:"id" json:"id"`
	UserID          uuid.UUID   `db:"user_id" json:"user_id"`
	Status          OrderStatus `db:"status" json:"status"`
	BaseTotal       float64     `db:"base_total" json:"base_total"`
	TotalAmount     float64     `db:"total_amount" json:"total_amount"`
	RazorpayOrderID *string     `db:"razorpay_order_id" json:"razorpay_order_id,omitempty"`
	CreatedAt       time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time   `db:"updated_at" json:"updated_at"`

	// UserEmail is joined in for the admin list; empty elsewhere.
	UserEmail string `db:"user_email" json:"user_email,omitempty"`

	Items []OrderItem `db:"-" json:"items"`
}

// OrderItem records what was bought and at what price, frozen at checkout.
type OrderItem struct {
	ID              uuid.UUID `db:"id" json:"id"`
	OrderID         uuid.UUID `db:"order_id" json:"order_id"`
	VersionID       uuid.UUID `db:"version_id" json:"version_id"`
	AlbumTitle      string    `db:"album_title" json:"album_title"`
	ArtistName      string    `db:"artist_name" json:"artist_name"`
	VersionName     string    `db:"version_name" json:"version_name"`
	UnitPrice       float64   `db:"unit_price" json:"unit_price"`
	DiscountPercent float64   `db:"discount_percent" json:"discount_percent"`
	FinalPrice      float64   `db:"final_price" json:"final_price"`
	Quantity        int       `db:"quantity" json:"quantity"`
}

type OrderRepository interface {
	// Create persists the order and its items atomically.
	Create(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Order, int, error)
	List(ctx context.Context, limit, offset int) ([]Order, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status OrderStatus) error
	SetRazorpayOrderID(ctx context.Context, id uuid.UUID, razorpayOrderID string) error
	GetByRazorpayOrderID(ctx context.Context, razorpayOrderID string) (*Order, error)
}
