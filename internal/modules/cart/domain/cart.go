package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Cart is a user's single open cart. Created lazily on first access.
type Cart struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ItemRow is a cart line joined with the album version it points at. Prices
// here are raw catalog values; the application layer derives what the user
// actually pays.
type ItemRow struct {
	ItemID      uuid.UUID `db:"item_id"`
	VersionID   uuid.UUID `db:"version_id"`
	Quantity    int       `db:"quantity"`
	VersionName string    `db:"version_name"`
	PriceDiff   float64   `db:"price_diff"`
	AlbumID     uuid.UUID `db:"album_id"`
	AlbumTitle  string    `db:"album_title"`
	ArtistName  string    `db:"artist_name"`
	BasePrice   float64   `db:"base_price"`
	ImageURL    string    `db:"image_url"`
}

type CartRepository interface {
	// GetOrCreate returns the user's cart, creating it if absent.
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*Cart, error)

	// Items returns the cart's lines joined with version and album data.
	Items(ctx context.Context, cartID uuid.UUID) ([]ItemRow, error)

	// AddItem inserts a line or bumps the quantity if the version is
	// already in the cart.
	AddItem(ctx context.Context, cartID, versionID uuid.UUID, quantity int) error

	// RemoveItem deletes a line. Removing an absent line is not an error.
	RemoveItem(ctx context.Context, cartID, itemID uuid.UUID) error

	// Clear removes every line from the cart.
	Clear(ctx context.Context, cartID uuid.UUID) error
}
