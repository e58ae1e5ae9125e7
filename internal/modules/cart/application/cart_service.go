package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/aigerim-zh/kshop/internal/modules/cart/domain"
	catalogdomain "github.com/aigerim-zh/kshop/internal/modules/catalog/domain"
	discountdomain "github.com/aigerim-zh/kshop/internal/modules/discount/domain"
	"github.com/aigerim-zh/kshop/pkg/pricing"
)

// ItemView is a priced cart line as the storefront renders it.
type ItemView struct {
	ID              uuid.UUID `json:"id"`
	VersionID       uuid.UUID `json:"version_id"`
	AlbumID         uuid.UUID `json:"album_id"`
	AlbumTitle      string    `json:"album_title"`
	ArtistName      string    `json:"artist_name"`
	VersionName     string    `json:"version_name"`
	ImageURL        string    `json:"image_url"`
	Quantity        int       `json:"quantity"`
	BasePrice       float64   `json:"base_price"`
	DiscountPercent float64   `json:"discount_percent"`
	FinalPrice      float64   `json:"final_price"`
}

type Totals struct {
	BaseTotal     float64 `json:"base_total"`
	FinalTotal    float64 `json:"final_total"`
	TotalDiscount float64 `json:"total_discount"`
}

type CartView struct {
	Items  []ItemView `json:"items"`
	Totals Totals     `json:"totals"`
}

type CartService struct {
	repo      domain.CartRepository
	versions  catalogdomain.VersionFinder
	discounts discountdomain.DiscountFinder
	now       func() time.Time
}

func NewCartService(repo domain.CartRepository, versions catalogdomain.VersionFinder, discounts discountdomain.DiscountFinder) *CartService {
	return &CartService{
		repo:      repo,
		versions:  versions,
		discounts: discounts,
		now:       time.Now,
	}
}

// GetCart returns the user's cart with derived prices. A line's base price is
// the album price plus the version surcharge; the final price applies the
// highest active discount on the album. Discounts never stack.
func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*CartView, error) {
	cart, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.Items(ctx, cart.ID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	view := &CartView{Items: make([]ItemView, 0, len(rows))}

	// Albums repeat across versions; one discount lookup per album.
	percents := map[uuid.UUID]float64{}
	for _, row := range rows {
		percent, ok := percents[row.AlbumID]
		if !ok {
			discounts, err := s.discounts.ForAlbum(ctx, row.AlbumID)
			if err != nil {
				return nil, err
			}
			percent = pricing.MaxActivePercent(toPricing(discounts), now)
			percents[row.AlbumID] = percent
		}

		unit := pricing.RoundCents(row.BasePrice + row.PriceDiff)
		final := pricing.RoundCents(unit * (100 - percent) / 100)

		view.Items = append(view.Items, ItemView{
			ID:              row.ItemID,
			VersionID:       row.VersionID,
			AlbumID:         row.AlbumID,
			AlbumTitle:      row.AlbumTitle,
			ArtistName:      row.ArtistName,
			VersionName:     row.VersionName,
			ImageURL:        row.ImageURL,
			Quantity:        row.Quantity,
			BasePrice:       unit,
			DiscountPercent: percent,
			FinalPrice:      final,
		})

		qty := float64(row.Quantity)
		view.Totals.BaseTotal += unit * qty
		view.Totals.FinalTotal += final * qty
	}

	view.Totals.BaseTotal = pricing.RoundCents(view.Totals.BaseTotal)
	view.Totals.FinalTotal = pricing.RoundCents(view.Totals.FinalTotal)
	view.Totals.TotalDiscount = pricing.RoundCents(view.Totals.BaseTotal - view.Totals.FinalTotal)
	return view, nil
}

// AddItem puts a version in the cart, validating it exists first.
func (s *CartService) AddItem(ctx context.Context, userID, versionID uuid.UUID, quantity int) (*CartView, error) {
	if quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}
	if _, _, err := s.versions.FindVersion(ctx, versionID); err != nil {
		return nil, err
	}

	cart, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.AddItem(ctx, cart.ID, versionID, quantity); err != nil {
		return nil, err
	}
	return s.GetCart(ctx, userID)
}

// RemoveItem deletes a cart line. Removing a line that is already gone
// succeeds; the end state is the same.
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error {
	cart, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}
	return s.repo.RemoveItem(ctx, cart.ID, itemID)
}

func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	cart, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}
	return s.repo.Clear(ctx, cart.ID)
}

func toPricing(discounts []discountdomain.Discount) []pricing.Discount {
	terms := make([]pricing.Discount, len(discounts))
	for i, d := range discounts {
		terms[i] = pricing.Discount{
			Percent:   d.Percent,
			StartDate: d.StartDate,
			EndDate:   d.EndDate,
			IsActive:  d.IsActive,
		}
	}
	return terms
}
