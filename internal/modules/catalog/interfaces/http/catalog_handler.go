package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/aigerim-zh/kshop/internal/modules/catalog/application"
	"github.com/aigerim-zh/kshop/internal/modules/catalog/domain"
)

const albumCacheTTL = 10 * time.Minute

// CatalogService is what the handlers need from the application layer.
type CatalogService interface {
	CreateArtist(ctx context.Context, req application.CreateArtistRequest) (*domain.Artist, error)
	GetArtist(ctx context.Context, id uuid.UUID) (*domain.Artist, error)
	ListArtists(ctx context.Context, category domain.Category, limit, offset int) ([]domain.Artist, int, error)
	UpdateArtist(ctx context.Context, id uuid.UUID, req application.CreateArtistRequest) (*domain.Artist, error)
	DeleteArtist(ctx context.Context, id uuid.UUID) error
	CreateAlbum(ctx context.Context, req application.CreateAlbumRequest) (*domain.Album, error)
	GetAlbum(ctx context.Context, id uuid.UUID) (*domain.Album, error)
	ListAlbums(ctx context.Context, filter domain.AlbumFilter) ([]domain.Album, int, error)
	UpdateAlbum(ctx context.Context, id uuid.UUID, req application.CreateAlbumRequest) (*domain.Album, error)
	DeleteAlbum(ctx context.Context, id uuid.UUID) error
}

// CatalogHandler serves the public storefront catalog.
type CatalogHandler struct {
	service     CatalogService
	redisClient *redis.Client
}

func NewCatalogHandler(service CatalogService, redisClient *redis.Client) *CatalogHandler {
	return &CatalogHandler{service: service, redisClient: redisClient}
}

func albumCacheKey(id string) string {
	return "album:" + id
}

// ListArtistCategories returns the fixed category list the storefront uses
// to build its browse menu.
func (h *CatalogHandler) ListArtistCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, CategoriesResponse{Categories: domain.Categories})
}

func (h *CatalogHandler) ListArtists(w http.ResponseWriter, r *http.Request) {
	category := domain.Category(r.URL.Query().Get("category"))
	page, limit := pageParams(r, 20)

	artists, total, err := h.service.ListArtists(r.Context(), category, limit, (page-1)*limit)
	if err == domain.ErrInvalidCategory {
		http.Error(w, `{"error": "invalid category"}`, http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}
	if artists == nil {
		artists = []domain.Artist{}
	}

	writeJSON(w, http.StatusOK, ArtistListResponse{Artists: artists, Total: total, Page: page, Limit: limit})
}

func (h *CatalogHandler) GetArtist(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, `{"error": "invalid id"}`, http.StatusBadRequest)
		return
	}

	artist, err := h.service.GetArtist(r.Context(), id)
	if err == domain.ErrArtistNotFound {
		http.Error(w, `{"error": "artist not found"}`, http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, artist)
}

func (h *CatalogHandler) ListAlbums(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, limit := pageParams(r, 20)

	filter := domain.AlbumFilter{
		Sort:           q.Get("sort"),
		IncludeSoldOut: q.Get("include_sold_out") == "true",
		Limit:          limit,
		Offset:         (page - 1) * limit,
	}
	if artistID := q.Get("artist_id"); artistID != "" {
		id, err := uuid.Parse(artistID)
		if err != nil {
			http.Error(w, `{"error": "invalid artist_id"}`, http.StatusBadRequest)
			return
		}
		filter.ArtistID = id
	}

	albums, total, err := h.service.ListAlbums(r.Context(), filter)
	if err != nil {
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}
	if albums == nil {
		albums = []domain.Album{}
	}

	writeJSON(w, http.StatusOK, AlbumListResponse{Albums: albums, Total: total, Page: page, Limit: limit})
}

// ListArtistAlbums serves an artist's discography page: the artist's albums,
// newest release first unless another sort is requested.
func (h *CatalogHandler) ListArtistAlbums(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, `{"error": "invalid id"}`, http.StatusBadRequest)
		return
	}

	if _, err := h.service.GetArtist(r.Context(), id); err != nil {
		if err == domain.ErrArtistNotFound {
			http.Error(w, `{"error": "artist not found"}`, http.StatusNotFound)
			return
		}
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}

	page, limit := pageParams(r, 20)
	filter := domain.AlbumFilter{
		ArtistID: id,
		Sort:     r.URL.Query().Get("sort"),
		Limit:    limit,
		Offset:   (page - 1) * limit,
	}

	albums, total, err := h.service.ListAlbums(r.Context(), filter)
	if err != nil {
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}
	if albums == nil {
		albums = []domain.Album{}
	}

	writeJSON(w, http.StatusOK, AlbumListResponse{Albums: albums, Total: total, Page: page, Limit: limit})
}

func (h *CatalogHandler) GetAlbum(w http.ResponseWriter, r *http.Request) {
	idStr := r.PathValue("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		http.Error(w, `{"error": "invalid id"}`, http.StatusBadRequest)
		return
	}

	cacheKey := albumCacheKey(idStr)
	if h.redisClient != nil {
		if val, err := h.redisClient.Get(r.Context(), cacheKey).Result(); err == nil {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Cache", "HIT")
			w.Write([]byte(val))
			return
		}
	}

	album, err := h.service.GetAlbum(r.Context(), id)
	if err == domain.ErrAlbumNotFound {
		http.Error(w, `{"error": "album not found"}`, http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}

	if h.redisClient != nil {
		go func() {
			jsonBytes, err := json.Marshal(album)
			if err != nil {
				return
			}
			if err := h.redisClient.Set(context.Background(), cacheKey, jsonBytes, albumCacheTTL).Err(); err != nil {
				log.Printf("[CatalogHandler.GetAlbum] cache set failed: %v", err)
			}
		}()
	}

	w.Header().Set("X-Cache", "MISS")
	writeJSON(w, http.StatusOK, album)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// pageParams reads page/limit query parameters with sane bounds.
func pageParams(r *http.Request, defaultLimit int) (page, limit int) {
	q := r.URL.Query()
	page, _ = strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(q.Get("limit"))
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > 200 {
		limit = 200
	}
	return page, limit
}
