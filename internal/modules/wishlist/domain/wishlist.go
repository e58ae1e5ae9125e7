package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAlreadyInWishlist = errors.New("album already in wishlist")
	ErrNotInWishlist     = errors.New("album not in wishlist")
)

// Item is a saved album joined with enough catalog data to render the list.
type Item struct {
	ID         uuid.UUID `db:"id" json:"id"`
	AlbumID    uuid.UUID `db:"album_id" json:"album_id"`
	Title      string    `db:"title" json:"title"`
	ArtistName string    `db:"artist_name" json:"artist_name"`
	ImageURL   string    `db:"image_url" json:"image_url"`
	BasePrice  float64   `db:"base_price" json:"base_price"`
	Status     string    `db:"status" json:"status"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

type WishlistRepository interface {
	List(ctx context.Context, userID uuid.UUID) ([]Item, error)
	Add(ctx context.Context, userID, albumID uuid.UUID) error
	// Remove fails with ErrNotInWishlist when the album was never saved.
	Remove(ctx context.Context, userID, albumID uuid.UUID) error
}
