package application

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/aigerim-zh/kshop/internal/modules/filestorage/domain"
)

// Uploaded images are normalized to fit this box before storage.
const (
	maxImageWidth  = 500
	maxImageHeight = 500
	jpegQuality    = 85
)

// ImageService stores artist and album cover images. Every upload is decoded,
// scaled down to fit the display size, and re-encoded as JPEG so the catalog
// never serves multi-megabyte originals.
type ImageService struct {
	storage domain.FileStorage
}

func NewImageService(storage domain.FileStorage) *ImageService {
	return &ImageService{storage: storage}
}

// UploadImage processes a multipart upload and stores it under a generated
// key inside folder. Returns the public URL of the stored image.
func (s *ImageService) UploadImage(ctx context.Context, file io.Reader, folder string) (string, error) {
	img, err := imaging.Decode(file, imaging.AutoOrientation(true))
	if err != nil {
		return "", domain.ErrUnsupportedFormat
	}

	resized := normalize(img)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}

	key := fmt.Sprintf("%s/%s.jpg", folder, uuid.New().String())
	return s.storage.UploadFile(ctx, key, &buf, "image/jpeg")
}

// ReplaceImage uploads a new image and deletes the one previously stored at
// oldURL. A missing or foreign old URL is not an error; the replacement is
// what matters.
func (s *ImageService) ReplaceImage(ctx context.Context, file io.Reader, folder, oldURL string) (string, error) {
	url, err := s.UploadImage(ctx, file, folder)
	if err != nil {
		return "", err
	}
	if oldURL != "" {
		if key, err := s.storage.GetKeyFromURL(oldURL); err == nil {
			_ = s.storage.DeleteFile(ctx, key)
		}
	}
	return url, nil
}

// DeleteImage removes the image behind a public URL.
func (s *ImageService) DeleteImage(ctx context.Context, url string) error {
	key, err := s.storage.GetKeyFromURL(url)
	if err != nil {
		return err
	}
	return s.storage.DeleteFile(ctx, key)
}

func normalize(img image.Image) image.Image {
	b := img.Bounds()
	if b.Dx() <= maxImageWidth && b.Dy() <= maxImageHeight {
		return img
	}
	return imaging.Fit(img, maxImageWidth, maxImageHeight, imaging.Lanczos)
}
