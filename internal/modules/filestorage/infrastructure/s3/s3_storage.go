package s3

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config holds configuration for S3 or MinIO storage.
type S3Config struct {
	BucketName     string
	Region         string
	Endpoint       string // internal endpoint (e.g. minio:9000)
	PublicEndpoint string // endpoint browsers can reach (e.g. localhost:9000)
	AccessKey      string
	SecretKey      string
	UseSSL         bool
}

// S3Storage stores cover images in an S3-compatible bucket. The bucket is
// expected to allow public reads; images are served directly from it.
type S3Storage struct {
	client *s3.Client
	config S3Config
}

func NewS3Storage(ctx context.Context, cfg S3Config) (*S3Storage, error) {
	if cfg.BucketName == "" {
		return nil, fmt.Errorf("bucket name is required")
	}

	var awsCfg aws.Config
	var err error

	if cfg.Endpoint != "" {
		// MinIO / LocalStack
		awsCfg, err = config.LoadDefaultConfig(ctx,
			config.WithRegion(cfg.Region),
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		)
	} else {
		awsCfg, err = config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
	}
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(withScheme(cfg.Endpoint, cfg.UseSSL))
			o.UsePathStyle = true // MinIO requires path-style addressing
		}
	})

	return &S3Storage{client: client, config: cfg}, nil
}

func (s *S3Storage) UploadFile(ctx context.Context, key string, file io.Reader, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.config.BucketName),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload to s3: %w", err)
	}

	return s.publicURL(key), nil
}

func (s *S3Storage) DeleteFile(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.config.BucketName),
		Key:    aws.String(key),
	})
	return err
}

func (s *S3Storage) publicURL(key string) string {
	if s.config.PublicEndpoint != "" {
		return fmt.Sprintf("%s/%s/%s", withScheme(s.config.PublicEndpoint, s.config.UseSSL), s.config.BucketName, key)
	}
	if s.config.Endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", withScheme(s.config.Endpoint, s.config.UseSSL), s.config.BucketName, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.config.BucketName, s.config.Region, key)
}

func (s *S3Storage) GetKeyFromURL(fileURL string) (string, error) {
	for _, endpoint := range []string{s.config.PublicEndpoint, s.config.Endpoint} {
		if endpoint == "" {
			continue
		}
		prefix := fmt.Sprintf("%s/%s/", withScheme(endpoint, s.config.UseSSL), s.config.BucketName)
		if strings.HasPrefix(fileURL, prefix) {
			return strings.TrimPrefix(fileURL, prefix), nil
		}
	}

	if s.config.Endpoint == "" {
		prefix := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", s.config.BucketName, s.config.Region)
		if strings.HasPrefix(fileURL, prefix) {
			return strings.TrimPrefix(fileURL, prefix), nil
		}
	}

	return "", fmt.Errorf("url does not match bucket format: %s", fileURL)
}

func withScheme(endpoint string, useSSL bool) string {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	if useSSL {
		return "https://" + endpoint
	}
	return "http://" + endpoint
}
