// Package storage uploads todo card images to Google Cloud Storage.
package storage

import (
	"context"
	"io"

	"cloud.google.com/go/storage"

	"github.com/oksasatya/go-todo-cards/internal/application"
	"github.com/oksasatya/go-todo-cards/pkg/helpers"
)

type GCSStorage struct {
	client *storage.Client
	bucket string
}

func NewGCSStorage(client *storage.Client, bucket string) *GCSStorage {
	return &GCSStorage{client: client, bucket: bucket}
}

func (s *GCSStorage) Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	return helpers.UploadObject(ctx, s.client, s.bucket, objectPath, contentType, r)
}

func (s *GCSStorage) Delete(ctx context.Context, objectPath string) error {
	return helpers.DeleteObject(ctx, s.client, s.bucket, objectPath)
}

var _ application.ObjectStorage = (*GCSStorage)(nil)
