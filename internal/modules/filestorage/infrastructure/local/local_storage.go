package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage writes images to a directory served by the gateway under
// /uploads. Used in development and for single-node deployments.
type LocalStorage struct {
	basePath string
	baseURL  string
}

func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}, nil
}

func (l *LocalStorage) UploadFile(ctx context.Context, key string, file io.Reader, contentType string) (string, error) {
	fullPath := filepath.Join(l.basePath, key)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("create directory: %w", err)
	}

	outFile, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer outFile.Close()

	if _, err := io.Copy(outFile, file); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	return l.baseURL + "/" + key, nil
}

func (l *LocalStorage) DeleteFile(ctx context.Context, key string) error {
	return os.Remove(filepath.Join(l.basePath, key))
}

func (l *LocalStorage) GetKeyFromURL(url string) (string, error) {
	prefix := l.baseURL + "/"
	if strings.HasPrefix(url, prefix) && len(url) > len(prefix) {
		return strings.TrimPrefix(url, prefix), nil
	}
	return "", fmt.Errorf("url does not match storage base: %s", url)
}
