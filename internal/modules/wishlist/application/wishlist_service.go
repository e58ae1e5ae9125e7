package application

import (
	"context"

	"github.com/google/uuid"

	catalogdomain "github.com/aigerim-zh/kshop/internal/modules/catalog/domain"
	"github.com/aigerim-zh/kshop/internal/modules/wishlist/domain"
)

// AlbumChecker verifies an album exists before it can be saved.
type AlbumChecker interface {
	GetAlbum(ctx context.Context, id uuid.UUID) (*catalogdomain.Album, error)
}

type WishlistService struct {
	repo   domain.WishlistRepository
	albums AlbumChecker
}

func NewWishlistService(repo domain.WishlistRepository, albums AlbumChecker) *WishlistService {
	return &WishlistService{repo: repo, albums: albums}
}

func (s *WishlistService) List(ctx context.Context, userID uuid.UUID) ([]domain.Item, error) {
	return s.repo.List(ctx, userID)
}

func (s *WishlistService) Add(ctx context.Context, userID, albumID uuid.UUID) error {
	if _, err := s.albums.GetAlbum(ctx, albumID); err != nil {
		return err
	}
	return s.repo.Add(ctx, userID, albumID)
}

func (s *WishlistService) Remove(ctx context.Context, userID, albumID uuid.UUID) error {
	return s.repo.Remove(ctx, userID, albumID)
}
