package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type AlbumStatus string

const (
	StatusInStock    AlbumStatus = "in_stock"
	StatusPreOrder   AlbumStatus = "pre_order"
	StatusOutOfStock AlbumStatus = "out_of_stock"
)

// Valid reports whether s is a known album status.
func (s AlbumStatus) Valid() bool {
	return s == StatusInStock || s == StatusPreOrder || s == StatusOutOfStock
}

// Album is a sellable release. Pricing starts from BasePrice; each Version
// adds its own PriceDiff on top.
type Album struct {
	ID           uuid.UUID   `json:"id" db:"id"`
	ArtistID     uuid.UUID   `json:"artist_id" db:"artist_id"`
	ArtistName   string      `json:"artist_name" db:"artist_name"`
	ArtistImage  string      `json:"artist_image" db:"artist_image"`
	Title        string      `json:"title" db:"title"`
	BasePrice    float64     `json:"base_price" db:"base_price"`
	Description  string      `json:"description" db:"description"`
	ReleaseDate  time.Time   `json:"release_date" db:"release_date"`
	Status       AlbumStatus `json:"status" db:"status"`
	MainImageURL string      `json:"main_image_url" db:"main_image_url"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" db:"updated_at"`

	// Relations
	Versions []Version `json:"versions"`
}

// Version is a purchasable variant of an album (standard, special edition,
// member photocard set). It exists only as part of its parent album.
type Version struct {
	ID               uuid.UUID `json:"id" db:"id"`
	AlbumID          uuid.UUID `json:"album_id" db:"album_id"`
	VersionName      string    `json:"version_name" db:"version_name"`
	PriceDiff        float64   `json:"price_diff" db:"price_diff"`
	PackagingDetails string    `json:"packaging_details" db:"packaging_details"`
	IsLimited        bool      `json:"is_limited" db:"is_limited"`
	StockQuantity    int       `json:"stock_quantity" db:"stock_quantity"`
	Position         int       `json:"-" db:"position"`
}

// AlbumFilter narrows album listings.
type AlbumFilter struct {
	ArtistID        uuid.UUID
	IncludeSoldOut  bool // admin console sees out_of_stock albums, storefront does not
	Sort            string
	Limit           int
	Offset          int
}

// AlbumRepository defines the contract for album data access
type AlbumRepository interface {
	Create(ctx context.Context, album *Album) error
	GetByID(ctx context.Context, id uuid.UUID) (*Album, error)
	List(ctx context.Context, filter AlbumFilter) ([]Album, int, error)
	Update(ctx context.Context, album *Album) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// VersionFinder resolves a version together with its album for modules that
// price cart items.
type VersionFinder interface {
	FindVersion(ctx context.Context, versionID uuid.UUID) (*Version, *Album, error)
}
