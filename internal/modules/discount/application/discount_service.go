package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/aigerim-zh/kshop/internal/modules/discount/domain"
	"github.com/aigerim-zh/kshop/pkg/pricing"
)

type DiscountRequest struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Percent     float64     `json:"percent"`
	StartDate   time.Time   `json:"start_date"`
	EndDate     time.Time   `json:"end_date"`
	IsActive    bool        `json:"is_active"`
	AlbumIDs    []uuid.UUID `json:"album_ids"`
}

type DiscountService struct {
	repo domain.DiscountRepository
}

func NewDiscountService(repo domain.DiscountRepository) *DiscountService {
	return &DiscountService{repo: repo}
}

func validate(req DiscountRequest) error {
	if req.Percent <= 0 || req.Percent > 100 {
		return domain.ErrInvalidPercent
	}
	if req.StartDate.After(req.EndDate) {
		return domain.ErrInvalidWindow
	}
	return nil
}

func (s *DiscountService) Create(ctx context.Context, req DiscountRequest) (*domain.Discount, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	discount := &domain.Discount{
		Name:        req.Name,
		Description: req.Description,
		Percent:     req.Percent,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		IsActive:    req.IsActive,
		AlbumIDs:    req.AlbumIDs,
	}
	if err := s.repo.Create(ctx, discount); err != nil {
		return nil, err
	}
	return discount, nil
}

func (s *DiscountService) Get(ctx context.Context, id uuid.UUID) (*domain.Discount, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *DiscountService) List(ctx context.Context, limit, offset int) ([]domain.Discount, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *DiscountService) Update(ctx context.Context, id uuid.UUID, req DiscountRequest) (*domain.Discount, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	discount, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	discount.Name = req.Name
	discount.Description = req.Description
	discount.Percent = req.Percent
	discount.StartDate = req.StartDate
	discount.EndDate = req.EndDate
	discount.IsActive = req.IsActive
	discount.AlbumIDs = req.AlbumIDs

	if err := s.repo.Update(ctx, discount); err != nil {
		return nil, err
	}
	return discount, nil
}

func (s *DiscountService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *DiscountService) SetAlbums(ctx context.Context, id uuid.UUID, albumIDs []uuid.UUID) (*domain.Discount, error) {
	if err := s.repo.SetAlbums(ctx, id, albumIDs); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// ForAlbum returns the discounts attached to an album, for the product page.
func (s *DiscountService) ForAlbum(ctx context.Context, albumID uuid.UUID) ([]domain.Discount, error) {
	return s.repo.ForAlbum(ctx, albumID)
}

// PricingDiscounts converts an album's discounts into pricing terms. Used by
// the cart when computing effective prices.
func (s *DiscountService) PricingDiscounts(ctx context.Context, albumID uuid.UUID) ([]pricing.Discount, error) {
	discounts, err := s.repo.ForAlbum(ctx, albumID)
	if err != nil {
		return nil, err
	}
	terms := make([]pricing.Discount, len(discounts))
	for i, d := range discounts {
		terms[i] = pricing.Discount{
			Percent:   d.Percent,
			StartDate: d.StartDate,
			EndDate:   d.EndDate,
			IsActive:  d.IsActive,
		}
	}
	return terms, nil
}
