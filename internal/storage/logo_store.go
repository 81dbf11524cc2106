package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/shirokane/esports-hub-api/internal/config"
)

// LogoStore is the object-storage port for team logos. Failures to remove
// stale objects never fail the surrounding team update.
type LogoStore interface {
	Upload(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, objectName string) error
	ObjectNameFromURL(publicURL string) string
}

// MinioLogoStore stores logos in an S3-compatible bucket.
type MinioLogoStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

func NewMinioLogoStore(cfg *config.Config) (*MinioLogoStore, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	publicURL := cfg.MinioPublicURL
	if publicURL == "" {
		scheme := "http"
		if cfg.MinioUseTLS {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s", scheme, cfg.MinioEndpoint)
	}

	return &MinioLogoStore{
		client:    client,
		bucket:    cfg.MinioBucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

// Upload stores the object and returns its public URL.
func (s *MinioLogoStore) Upload(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", objectName, err)
	}
	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, objectName), nil
}

// Remove deletes the object from the bucket.
func (s *MinioLogoStore) Remove(ctx context.Context, objectName string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove %s: %w", objectName, err)
	}
	return nil
}

// ObjectNameFromURL maps a previously returned public URL back to its
// object name, empty when the URL points elsewhere.
func (s *MinioLogoStore) ObjectNameFromURL(publicURL string) string {
	u, err := url.Parse(publicURL)
	if err != nil {
		return ""
	}
	prefix := "/" + s.bucket + "/"
	if !strings.HasPrefix(u.Path, prefix) {
		return ""
	}
	return strings.TrimPrefix(u.Path, prefix)
}
