package domain

import (
	"context"
	"io"
)

// FileStorage abstracts where uploaded images end up. Implemented by the
// local filesystem backend and by S3/MinIO.
type FileStorage interface {
	// UploadFile stores the file under key and returns its public URL.
	UploadFile(ctx context.Context, key string, file io.Reader, contentType string) (string, error)

	// DeleteFile removes a file by its key.
	DeleteFile(ctx context.Context, key string) error

	// GetKeyFromURL extracts the storage key from a public URL.
	GetKeyFromURL(url string) (string, error)
}
