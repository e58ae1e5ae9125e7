package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Discount is a percentage promotion applied to a set of albums. Overlapping
// discounts never stack; the storefront charges the single highest active one.
type Discount struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Percent     float64   `db:"percent" json:"percent"`
	StartDate   time.Time `db:"start_date" json:"start_date"`
	EndDate     time.Time `db:"end_date" json:"end_date"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`

	// AlbumIDs lists the albums this discount applies to. Populated on
	// reads, consumed on writes.
	AlbumIDs []uuid.UUID `db:"-" json:"album_ids"`
}

type DiscountRepository interface {
	Create(ctx context.Context, discount *Discount) error
	GetByID(ctx context.Context, id uuid.UUID) (*Discount, error)
	List(ctx context.Context, limit, offset int) ([]Discount, int, error)
	Update(ctx context.Context, discount *Discount) error
	Delete(ctx context.Context, id uuid.UUID) error

	// SetAlbums replaces the discount's album associations.
	SetAlbums(ctx context.Context, discountID uuid.UUID, albumIDs []uuid.UUID) error

	// ForAlbum returns every discount attached to an album.
	ForAlbum(ctx context.Context, albumID uuid.UUID) ([]Discount, error)
}

// DiscountFinder is the read side other modules use when pricing an album.
type DiscountFinder interface {
	ForAlbum(ctx context.Context, albumID uuid.UUID) ([]Discount, error)
}
