package http

import "github.com/aigerim-zh/kshop/internal/modules/catalog/domain"

type ArtistListResponse struct {
	Artists []domain.Artist `json:"artists"`
	Total   int             `json:"total"`
	Page    int             `json:"page"`
	Limit   int             `json:"limit"`
}

type AlbumListResponse struct {
	Albums []domain.Album `json:"albums"`
	Total  int            `json:"total"`
	Page   int            `json:"page"`
	Limit  int            `json:"limit"`
}

type UploadResponse struct {
	URL string `json:"url"`
}

type CategoriesResponse struct {
	Categories []domain.Category `json:"categories"`
}
