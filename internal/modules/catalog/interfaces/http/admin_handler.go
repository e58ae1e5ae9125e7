package http

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/aigerim-zh/kshop/internal/modules/catalog/application"
	"github.com/aigerim-zh/kshop/internal/modules/catalog/domain"
	fsdomain "github.com/aigerim-zh/kshop/internal/modules/filestorage/domain"
)

// ImageService uploads processed cover images and cleans up replaced ones.
type ImageService interface {
	ReplaceImage(ctx context.Context, file io.Reader, folder, oldURL string) (string, error)
}

// AdminCatalogHandler serves the admin console's artist and album management.
// All routes behind it require an admin token.
type AdminCatalogHandler struct {
	service     CatalogService
	images      ImageService
	redisClient *redis.Client
}

func NewAdminCatalogHandler(service CatalogService, images ImageService, redisClient *redis.Client) *AdminCatalogHandler {
	return &AdminCatalogHandler{service: service, images: images, redisClient: redisClient}
}

// ListArtists backs the admin artist table. Same shape as the public listing.
func (h *AdminCatalogHandler) ListArtists(w http.ResponseWriter, r *http.Request) {
	category := domain.Category(r.URL.Query().Get("category"))
	page, limit := pageParams(r, 20)

	artists, total, err := h.service.ListArtists(r.Context(), category, limit, (page-1)*limit)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if artists == nil {
		artists = []domain.Artist{}
	}

	writeJSON(w, http.StatusOK, ArtistListResponse{Artists: artists, Total: total, Page: page, Limit: limit})
}

// ListAlbums backs the admin album table. Unlike the public listing it always
// includes out_of_stock albums, since those are exactly what an admin restocks.
func (h *AdminCatalogHandler) ListAlbums(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r, 20)

	filter := domain.AlbumFilter{
		Sort:           r.URL.Query().Get("sort"),
		IncludeSoldOut: true,
		Limit:          limit,
		Offset:         (page - 1) * limit,
	}

	albums, total, err := h.service.ListAlbums(r.Context(), filter)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if albums == nil {
		albums = []domain.Album{}
	}

	writeJSON(w, http.StatusOK, AlbumListResponse{Albums: albums, Total: total, Page: page, Limit: limit})
}

func (h *AdminCatalogHandler) CreateArtist(w http.ResponseWriter, r *http.Request) {
	var req application.CreateArtistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}

	artist, err := h.service.CreateArtist(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, artist)
}

func (h *AdminCatalogHandler) UpdateArtist(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, `{"error": "invalid id"}`, http.StatusBadRequest)
		return
	}

	var req application.CreateArtistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}

	artist, err := h.service.UpdateArtist(r.Context(), id, req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, artist)
}

func (h *AdminCatalogHandler) DeleteArtist(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, `{"error": "invalid id"}`, http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteArtist(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadArtistImage accepts a multipart "image" field, stores the processed
// image, and saves the new URL on the artist.
func (h *AdminCatalogHandler) UploadArtistImage(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, `{"error": "invalid id"}`, http.StatusBadRequest)
		return
	}

	artist, err := h.service.GetArtist(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	url, err := h.uploadFromForm(w, r, "artists", artist.ImageURL)
	if err != nil {
		return // response already written
	}

	artist.ImageURL = url
	if _, err := h.service.UpdateArtist(r.Context(), id, application.CreateArtistRequest{
		Name:        artist.Name,
		Category:    artist.Category,
		Description: artist.Description,
		ImageURL:    url,
	}); err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, UploadResponse{URL: url})
}

func (h *AdminCatalogHandler) CreateAlbum(w http.ResponseWriter, r *http.Request) {
	var req application.CreateAlbumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}

	album, err := h.service.CreateAlbum(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, album)
}

func (h *AdminCatalogHandler) UpdateAlbum(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, `{"error": "invalid id"}`, http.StatusBadRequest)
		return
	}

	var req application.CreateAlbumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}

	album, err := h.service.UpdateAlbum(r.Context(), id, req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.invalidateAlbum(r.Context(), id)
	writeJSON(w, http.StatusOK, album)
}

func (h *AdminCatalogHandler) DeleteAlbum(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, `{"error": "invalid id"}`, http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteAlbum(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.invalidateAlbum(r.Context(), id)
	w.WriteHeader(http.StatusNoContent)
}

// UploadAlbumCover replaces the album's main image.
func (h *AdminCatalogHandler) UploadAlbumCover(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, `{"error": "invalid id"}`, http.StatusBadRequest)
		return
	}

	album, err := h.service.GetAlbum(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	url, err := h.uploadFromForm(w, r, "albums", album.MainImageURL)
	if err != nil {
		return
	}

	versions := make([]application.VersionInput, len(album.Versions))
	for i, v := range album.Versions {
		versions[i] = application.VersionInput{
			ID:               v.ID,
			VersionName:      v.VersionName,
			PriceDiff:        v.PriceDiff,
			PackagingDetails: v.PackagingDetails,
			IsLimited:        v.IsLimited,
			StockQuantity:    v.StockQuantity,
		}
	}
	if _, err := h.service.UpdateAlbum(r.Context(), id, application.CreateAlbumRequest{
		ArtistID:     album.ArtistID,
		Title:        album.Title,
		BasePrice:    album.BasePrice,
		Description:  album.Description,
		ReleaseDate:  album.ReleaseDate,
		Status:       album.Status,
		MainImageURL: url,
		Versions:     versions,
	}); err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.invalidateAlbum(r.Context(), id)
	writeJSON(w, http.StatusOK, UploadResponse{URL: url})
}

// uploadFromForm parses the multipart "image" field and stores it. On failure
// it writes the error response and returns a non-nil error.
func (h *AdminCatalogHandler) uploadFromForm(w http.ResponseWriter, r *http.Request, folder, oldURL string) (string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, 20<<20)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, `{"error": "file too large"}`, http.StatusBadRequest)
		return "", err
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		http.Error(w, `{"error": "image field is required"}`, http.StatusBadRequest)
		return "", err
	}
	defer file.Close()

	url, err := h.images.ReplaceImage(r.Context(), file, folder, oldURL)
	if err == fsdomain.ErrUnsupportedFormat {
		http.Error(w, `{"error": "unsupported image format"}`, http.StatusBadRequest)
		return "", err
	}
	if err != nil {
		log.Printf("[AdminCatalogHandler] image upload failed: %v", err)
		http.Error(w, `{"error": "image upload failed"}`, http.StatusInternalServerError)
		return "", err
	}
	return url, nil
}

func (h *AdminCatalogHandler) invalidateAlbum(ctx context.Context, id uuid.UUID) {
	if h.redisClient == nil {
		return
	}
	if err := h.redisClient.Del(ctx, albumCacheKey(id.String())).Err(); err != nil {
		log.Printf("[AdminCatalogHandler] cache invalidation failed for %s: %v", id, err)
	}
}

func (h *AdminCatalogHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch err {
	case domain.ErrArtistNotFound:
		http.Error(w, `{"error": "artist not found"}`, http.StatusNotFound)
	case domain.ErrAlbumNotFound:
		http.Error(w, `{"error": "album not found"}`, http.StatusNotFound)
	case domain.ErrInvalidCategory:
		http.Error(w, `{"error": "invalid category"}`, http.StatusBadRequest)
	case domain.ErrInvalidStatus:
		http.Error(w, `{"error": "invalid status"}`, http.StatusBadRequest)
	case application.ErrNameRequired, application.ErrTitleRequired, application.ErrInvalidPrice:
		http.Error(w, `{"error": "`+err.Error()+`"}`, http.StatusBadRequest)
	default:
		log.Printf("[AdminCatalogHandler] unexpected error: %v", err)
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
	}
}
