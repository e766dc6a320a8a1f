package submission

import (
	"context"

	"github.com/JuniorCesarMarques/ecommerce/internal/infra"
)

// BucketUploader adapts ObjectStorage to the workflow's Uploader port —
// direct-to-bucket upload, the way the form talks to hosted storage.
type BucketUploader struct {
	storage *infra.ObjectStorage
}

func NewBucketUploader(storage *infra.ObjectStorage) *BucketUploader {
	return &BucketUploader{storage: storage}
}

func (u *BucketUploader) Upload(ctx context.Context, path string, img *ImageFile) error {
	src, err := img.Open()
	if err != nil {
		return err
	}
	defer src.Close()
	return u.storage.Upload(ctx, path, src, img.Size, img.ContentType())
}

func (u *BucketUploader) PublicURL(path string) string {
	return u.storage.PublicURL(path)
}
