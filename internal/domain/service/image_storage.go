package service

import (
	"context"
	"io"
)

// ImageStorage stores uploaded listing images and returns their public URL.
type ImageStorage interface {
	Upload(ctx context.Context, key, contentType string, r io.Reader) (url string, err error)
	Delete(ctx context.Context, key string) error
	// Open streams a stored object back; the caller closes the reader.
	Open(ctx context.Context, key string) (r io.ReadCloser, contentType string, err error)
}
