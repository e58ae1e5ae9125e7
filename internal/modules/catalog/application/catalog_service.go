package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/aigerim-zh/kshop/internal/modules/catalog/domain"
)

var (
	ErrNameRequired  = errors.New("name is required")
	ErrTitleRequired = errors.New("title is required")
	ErrInvalidPrice  = errors.New("base price must be positive")
)

type CreateArtistRequest struct {
	Name        string          `json:"name"`
	Category    domain.Category `json:"category"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"`
}

type VersionInput struct {
	ID               uuid.UUID `json:"id,omitempty"`
	VersionName      string    `json:"version_name"`
	PriceDiff        float64   `json:"price_diff"`
	PackagingDetails string    `json:"packaging_details"`
	IsLimited        bool      `json:"is_limited"`
	StockQuantity    int       `json:"stock_quantity"`
}

type CreateAlbumRequest struct {
	ArtistID     uuid.UUID          `json:"artist_id"`
	Title        string             `json:"title"`
	BasePrice    float64            `json:"base_price"`
	Description  string             `json:"description"`
	ReleaseDate  time.Time          `json:"release_date"`
	Status       domain.AlbumStatus `json:"status"`
	MainImageURL string             `json:"main_image_url"`
	Versions     []VersionInput     `json:"versions"`
}

type CatalogService struct {
	artists domain.ArtistRepository
	albums  domain.AlbumRepository
}

func NewCatalogService(artists domain.ArtistRepository, albums domain.AlbumRepository) *CatalogService {
	return &CatalogService{artists: artists, albums: albums}
}

func (s *CatalogService) CreateArtist(ctx context.Context, req CreateArtistRequest) (*domain.Artist, error) {
	if req.Name == "" {
		return nil, ErrNameRequired
	}
	if !req.Category.Valid() {
		return nil, domain.ErrInvalidCategory
	}

	artist := &domain.Artist{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	if err := s.artists.Create(ctx, artist); err != nil {
		return nil, err
	}
	return artist, nil
}

func (s *CatalogService) GetArtist(ctx context.Context, id uuid.UUID) (*domain.Artist, error) {
	return s.artists.GetByID(ctx, id)
}

func (s *CatalogService) ListArtists(ctx context.Context, category domain.Category, limit, offset int) ([]domain.Artist, int, error) {
	if category != "" && !category.Valid() {
		return nil, 0, domain.ErrInvalidCategory
	}
	return s.artists.List(ctx, category, limit, offset)
}

func (s *CatalogService) UpdateArtist(ctx context.Context, id uuid.UUID, req CreateArtistRequest) (*domain.Artist, error) {
	if req.Name == "" {
		return nil, ErrNameRequired
	}
	if !req.Category.Valid() {
		return nil, domain.ErrInvalidCategory
	}

	artist, err := s.artists.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	artist.Name = req.Name
	artist.Category = req.Category
	artist.Description = req.Description
	if req.ImageURL != "" {
		artist.ImageURL = req.ImageURL
	}
	if err := s.artists.Update(ctx, artist); err != nil {
		return nil, err
	}
	return artist, nil
}

func (s *CatalogService) DeleteArtist(ctx context.Context, id uuid.UUID) error {
	return s.artists.Delete(ctx, id)
}

func (s *CatalogService) validateAlbum(req CreateAlbumRequest) error {
	if req.Title == "" {
		return ErrTitleRequired
	}
	if req.BasePrice <= 0 {
		return ErrInvalidPrice
	}
	if !req.Status.Valid() {
		return domain.ErrInvalidStatus
	}
	return nil
}

func buildVersions(inputs []VersionInput) []domain.Version {
	versions := make([]domain.Version, len(inputs))
	for i, in := range inputs {
		versions[i] = domain.Version{
			ID:               in.ID,
			VersionName:      in.VersionName,
			PriceDiff:        in.PriceDiff,
			PackagingDetails: in.PackagingDetails,
			IsLimited:        in.IsLimited,
			StockQuantity:    in.StockQuantity,
		}
	}
	return versions
}

func (s *CatalogService) CreateAlbum(ctx context.Context, req CreateAlbumRequest) (*domain.Album, error) {
	if err := s.validateAlbum(req); err != nil {
		return nil, err
	}
	// Fail early instead of surfacing a foreign key violation.
	if _, err := s.artists.GetByID(ctx, req.ArtistID); err != nil {
		return nil, err
	}

	album := &domain.Album{
		ArtistID:     req.ArtistID,
		Title:        req.Title,
		BasePrice:    req.BasePrice,
		Description:  req.Description,
		ReleaseDate:  req.ReleaseDate,
		Status:       req.Status,
		MainImageURL: req.MainImageURL,
		Versions:     buildVersions(req.Versions),
	}
	if err := s.albums.Create(ctx, album); err != nil {
		return nil, err
	}
	return album, nil
}

func (s *CatalogService) GetAlbum(ctx context.Context, id uuid.UUID) (*domain.Album, error) {
	return s.albums.GetByID(ctx, id)
}

func (s *CatalogService) ListAlbums(ctx context.Context, filter domain.AlbumFilter) ([]domain.Album, int, error) {
	return s.albums.List(ctx, filter)
}

func (s *CatalogService) UpdateAlbum(ctx context.Context, id uuid.UUID, req CreateAlbumRequest) (*domain.Album, error) {
	if err := s.validateAlbum(req); err != nil {
		return nil, err
	}

	album, err := s.albums.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	album.ArtistID = req.ArtistID
	album.Title = req.Title
	album.BasePrice = req.BasePrice
	album.Description = req.Description
	album.ReleaseDate = req.ReleaseDate
	album.Status = req.Status
	if req.MainImageURL != "" {
		album.MainImageURL = req.MainImageURL
	}
	album.Versions = buildVersions(req.Versions)

	if err := s.albums.Update(ctx, album); err != nil {
		return nil, err
	}
	return album, nil
}

func (s *CatalogService) DeleteAlbum(ctx context.Context, id uuid.UUID) error {
	return s.albums.Delete(ctx, id)
}
