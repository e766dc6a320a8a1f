package infra

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/JuniorCesarMarques/ecommerce/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStorage wraps an S3-compatible bucket holding product images.
// Objects are addressed by path (e.g. "products/<uuid>.jpg"); uploads are
// world-readable through PublicURL.
type ObjectStorage struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewObjectStorage connects to the storage endpoint and ensures the bucket exists.
func NewObjectStorage(cfg *config.Config) (*ObjectStorage, error) {
	client, err := minio.New(cfg.StorageEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.StorageAccessKey, cfg.StorageSecretKey, ""),
		Secure: cfg.StorageUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: connect: %w", err)
	}

	s := &ObjectStorage{
		client:    client,
		bucket:    cfg.StorageBucket,
		publicURL: strings.TrimRight(cfg.StoragePublicURL, "/"),
	}

	exists, err := client.BucketExists(context.Background(), s.bucket)
	if err != nil {
		return nil, fmt.Errorf("storage: check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(context.Background(), s.bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("storage: create bucket %q: %w", s.bucket, err)
		}
	}

	return s, nil
}

// Upload writes the object at path. The caller supplies size and content type;
// no content sniffing or re-validation happens here.
func (s *ObjectStorage) Upload(ctx context.Context, path string, r io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, path, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("storage: upload %q: %w", path, err)
	}
	return nil
}

// PublicURL resolves the externally reachable URL for an uploaded object.
func (s *ObjectStorage) PublicURL(path string) string {
	return s.publicURL + "/" + s.bucket + "/" + path
}

// Remove deletes an object. Used by the orphan cleanup worker.
func (s *ObjectStorage) Remove(ctx context.Context, path string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, path, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("storage: remove %q: %w", path, err)
	}
	return nil
}
