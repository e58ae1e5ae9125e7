package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryFemaleGroup Category = "female_group"
	CategoryMaleGroup   Category = "male_group"
	CategorySolo        Category = "solo"
	CategoryOther       Category = "other"
)

// Categories lists every valid artist category in display order.
var Categories = []Category{CategoryFemaleGroup, CategoryMaleGroup, CategorySolo, CategoryOther}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Artist is a group or solo performer whose albums the shop sells.
type Artist struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Category    Category  `json:"category" db:"category"`
	Description string    `json:"description" db:"description"`
	ImageURL    string    `json:"image_url" db:"image_url"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ArtistRepository defines the contract for artist data access
type ArtistRepository interface {
	Create(ctx context.Context, artist *Artist) error
	GetByID(ctx context.Context, id uuid.UUID) (*Artist, error)
	List(ctx context.Context, category Category, limit, offset int) ([]Artist, int, error)
	Update(ctx context.Context, artist *Artist) error
	Delete(ctx context.Context, id uuid.UUID) error
}
