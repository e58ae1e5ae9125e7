package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aigerim-zh/kshop/internal/modules/catalog/domain"
)

type artistRepoMock struct {
	mock.Mock
}

func (m *artistRepoMock) Create(ctx context.Context, artist *domain.Artist) error {
	return m.Called(ctx, artist).Error(0)
}

func (m *artistRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Artist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Artist), args.Error(1)
}

func (m *artistRepoMock) List(ctx context.Context, category domain.Category, limit, offset int) ([]domain.Artist, int, error) {
	args := m.Called(ctx, category, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Artist), args.Int(1), args.Error(2)
}

func (m *artistRepoMock) Update(ctx context.Context, artist *domain.Artist) error {
	return m.Called(ctx, artist).Error(0)
}

func (m *artistRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type albumRepoMock struct {
	mock.Mock
}

func (m *albumRepoMock) Create(ctx context.Context, album *domain.Album) error {
	return m.Called(ctx, album).Error(0)
}

func (m *albumRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Album, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Album), args.Error(1)
}

func (m *albumRepoMock) List(ctx context.Context, filter domain.AlbumFilter) ([]domain.Album, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Album), args.Int(1), args.Error(2)
}

func (m *albumRepoMock) Update(ctx context.Context, album *domain.Album) error {
	return m.Called(ctx, album).Error(0)
}

func (m *albumRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func TestCatalogService_CreateArtist_RequiresName(t *testing.T) {
	svc := NewCatalogService(new(artistRepoMock), new(albumRepoMock))

	_, err := svc.CreateArtist(context.Background(), CreateArtistRequest{Category: domain.CategorySolo})

	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestCatalogService_CreateArtist_RejectsUnknownCategory(t *testing.T) {
	svc := NewCatalogService(new(artistRepoMock), new(albumRepoMock))

	_, err := svc.CreateArtist(context.Background(), CreateArtistRequest{Name: "IU", Category: "boyband"})

	assert.ErrorIs(t, err, domain.ErrInvalidCategory)
}

func TestCatalogService_CreateAlbum_RequiresExistingArtist(t *testing.T) {
	artists := new(artistRepoMock)
	albums := new(albumRepoMock)
	svc := NewCatalogService(artists, albums)

	artistID := uuid.New()
	artists.On("GetByID", mock.Anything, artistID).Return(nil, domain.ErrArtistNotFound)

	_, err := svc.CreateAlbum(context.Background(), CreateAlbumRequest{
		ArtistID:  artistID,
		Title:     "Eternal",
		BasePrice: 20,
		Status:    domain.StatusPreOrder,
	})

	assert.ErrorIs(t, err, domain.ErrArtistNotFound)
	albums.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCatalogService_CreateAlbum_BuildsVersions(t *testing.T) {
	artists := new(artistRepoMock)
	albums := new(albumRepoMock)
	svc := NewCatalogService(artists, albums)

	artistID := uuid.New()
	artists.On("GetByID", mock.Anything, artistID).Return(&domain.Artist{ID: artistID}, nil)
	albums.On("Create", mock.Anything, mock.Anything).Return(nil)

	album, err := svc.CreateAlbum(context.Background(), CreateAlbumRequest{
		ArtistID:    artistID,
		Title:       "Get Up",
		BasePrice:   22.5,
		ReleaseDate: time.Now(),
		Status:      domain.StatusInStock,
		Versions: []VersionInput{
			{VersionName: "Standard"},
			{VersionName: "Limited", PriceDiff: 5, IsLimited: true, StockQuantity: 100},
		},
	})

	require.NoError(t, err)
	require.Len(t, album.Versions, 2)
	assert.Equal(t, "Limited", album.Versions[1].VersionName)
	assert.True(t, album.Versions[1].IsLimited)
}

func TestCatalogService_CreateAlbum_RejectsNonPositivePrice(t *testing.T) {
	svc := NewCatalogService(new(artistRepoMock), new(albumRepoMock))

	_, err := svc.CreateAlbum(context.Background(), CreateAlbumRequest{
		ArtistID: uuid.New(),
		Title:    "Free",
		Status:   domain.StatusInStock,
	})

	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestCatalogService_UpdateArtist_KeepsImageWhenOmitted(t *testing.T) {
	artists := new(artistRepoMock)
	svc := NewCatalogService(artists, new(albumRepoMock))

	id := uuid.New()
	artists.On("GetByID", mock.Anything, id).
		Return(&domain.Artist{ID: id, Name: "IU", Category: domain.CategorySolo, ImageURL: "http://cdn/iu.jpg"}, nil)
	artists.On("Update", mock.Anything, mock.MatchedBy(func(a *domain.Artist) bool {
		return a.ImageURL == "http://cdn/iu.jpg"
	})).Return(nil)

	artist, err := svc.UpdateArtist(context.Background(), id, CreateArtistRequest{Name: "IU", Category: domain.CategorySolo})

	require.NoError(t, err)
	assert.Equal(t, "http://cdn/iu.jpg", artist.ImageURL)
}
