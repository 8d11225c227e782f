package storage

import (
	"context"
	"io"
)

type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// FileUploader stores poster images and resolves their public URLs.
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}

// ObjectReader reads objects back from the bucket.
type ObjectReader interface {
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// Bucket is the full object storage surface used by the service.
type Bucket interface {
	FileUploader
	ObjectReader
}
