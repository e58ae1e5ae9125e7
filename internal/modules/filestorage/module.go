package filestorage

import (
	"context"
	"fmt"

	"github.com/aigerim-zh/kshop/internal/modules/filestorage/application"
	"github.com/aigerim-zh/kshop/internal/modules/filestorage/domain"
	"github.com/aigerim-zh/kshop/internal/modules/filestorage/infrastructure/local"
	"github.com/aigerim-zh/kshop/internal/modules/filestorage/infrastructure/s3"
	"github.com/aigerim-zh/kshop/internal/shared/infrastructure/config"
)

// Module wires cover image storage. Local disk by default, S3/MinIO when
// USE_S3 is set.
type Module struct {
	service *application.ImageService
	storage domain.FileStorage
}

func NewModule(ctx context.Context, cfg config.FileStorageConfig) (*Module, error) {
	var storage domain.FileStorage
	var err error

	if cfg.UseS3 {
		storage, err = s3.NewS3Storage(ctx, s3.S3Config{
			BucketName:     cfg.S3BucketName,
			Region:         cfg.S3Region,
			Endpoint:       cfg.S3Endpoint,
			PublicEndpoint: cfg.S3PublicEndpoint,
			AccessKey:      cfg.S3AccessKey,
			SecretKey:      cfg.S3SecretKey,
			UseSSL:         cfg.S3UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("initialize s3 storage: %w", err)
		}
	} else {
		storage, err = local.NewLocalStorage(cfg.LocalPath, cfg.LocalBaseURL)
		if err != nil {
			return nil, fmt.Errorf("initialize local storage: %w", err)
		}
	}

	return &Module{
		service: application.NewImageService(storage),
		storage: storage,
	}, nil
}

func (m *Module) Service() *application.ImageService {
	return m.service
}
