package application

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aigerim-zh/kshop/internal/modules/filestorage/domain"
)

type fakeStorage struct {
	uploads map[string][]byte
	deleted []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{uploads: map[string][]byte{}}
}

func (f *fakeStorage) UploadFile(_ context.Context, key string, file io.Reader, _ string) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	f.uploads[key] = data
	return "http://cdn.test/" + key, nil
}

func (f *fakeStorage) DeleteFile(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeStorage) GetKeyFromURL(url string) (string, error) {
	if !strings.HasPrefix(url, "http://cdn.test/") {
		return "", domain.ErrUnsupportedFormat
	}
	return strings.TrimPrefix(url, "http://cdn.test/"), nil
}

func pngImage(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return &buf
}

func TestImageService_UploadImage_ResizesLargeImages(t *testing.T) {
	storage := newFakeStorage()
	svc := NewImageService(storage)

	url, err := svc.UploadImage(context.Background(), pngImage(t, 1200, 900), "albums")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://cdn.test/albums/"))
	assert.True(t, strings.HasSuffix(url, ".jpg"))

	require.Len(t, storage.uploads, 1)
	for _, data := range storage.uploads {
		stored, err := imaging.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		b := stored.Bounds()
		assert.LessOrEqual(t, b.Dx(), 500)
		assert.LessOrEqual(t, b.Dy(), 500)
	}
}

func TestImageService_UploadImage_KeepsSmallImages(t *testing.T) {
	storage := newFakeStorage()
	svc := NewImageService(storage)

	_, err := svc.UploadImage(context.Background(), pngImage(t, 300, 200), "artists")
	require.NoError(t, err)

	for _, data := range storage.uploads {
		stored, err := imaging.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, 300, stored.Bounds().Dx())
		assert.Equal(t, 200, stored.Bounds().Dy())
	}
}

func TestImageService_UploadImage_RejectsNonImages(t *testing.T) {
	svc := NewImageService(newFakeStorage())

	_, err := svc.UploadImage(context.Background(), strings.NewReader("not an image"), "albums")

	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestImageService_ReplaceImage_DeletesOld(t *testing.T) {
	storage := newFakeStorage()
	svc := NewImageService(storage)

	url, err := svc.ReplaceImage(context.Background(), pngImage(t, 100, 100), "albums", "http://cdn.test/albums/old.jpg")

	require.NoError(t, err)
	assert.NotEmpty(t, url)
	assert.Equal(t, []string{"albums/old.jpg"}, storage.deleted)
}

func TestImageService_ReplaceImage_IgnoresForeignOldURL(t *testing.T) {
	storage := newFakeStorage()
	svc := NewImageService(storage)

	_, err := svc.ReplaceImage(context.Background(), pngImage(t, 100, 100), "albums", "https://elsewhere.example/x.jpg")

	require.NoError(t, err)
	assert.Empty(t, storage.deleted)
}
