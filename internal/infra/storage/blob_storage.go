// Package storage keeps uploaded images in a gocloud.dev bucket.
// The bucket URL scheme picks the backend: file://, gs://, s3:// or mem://.
package storage

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"homestay/config"
	domainerrors "homestay/internal/domain/errors"
	"homestay/internal/domain/service"
	"homestay/internal/errors"

	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
)

const defaultBucketURL = "mem://"

type blobStorage struct {
	bucket    *blob.Bucket
	publicURL string
}

// NewBlobStorage wraps an open bucket. publicURL prefixes object keys in returned URLs.
func NewBlobStorage(bucket *blob.Bucket, publicURL string) service.ImageStorage {
	return &blobStorage{
		bucket:    bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}
}

// Upload streams r into the bucket under key
func (s *blobStorage) Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	w, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return "", errors.Wrapf(err, "open writer for %s", key)
	}

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()

		return "", errors.Wrapf(err, "write %s", key)
	}
	if err := w.Close(); err != nil {
		return "", errors.Wrapf(err, "commit %s", key)
	}

	return s.publicURL + "/" + key, nil
}

// Delete removes the object; a missing object is not an error
func (s *blobStorage) Delete(ctx context.Context, key string) error {
	err := s.bucket.Delete(ctx, key)
	if err != nil && !isNotFound(err) {
		return errors.Wrapf(err, "delete %s", key)
	}

	return nil
}

// Open returns a reader over the object. A missing object is ErrNotFound.
func (s *blobStorage) Open(ctx context.Context, key string) (io.ReadCloser, string, error) {
	r, err := s.bucket.NewReader(ctx, key, nil)
	if err != nil {
		if isNotFound(err) {
			return nil, "", domainerrors.ErrNotFound.WrapMessage(key)
		}

		return nil, "", errors.Wrapf(err, "open %s", key)
	}

	return r, r.ContentType(), nil
}

// Params holds the dependencies of the image storage
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// New opens the configured bucket and closes it on shutdown
func New(params Params) (service.ImageStorage, error) {
	bucketURL, publicURL := defaultBucketURL, "/media"
	if cfg := params.Config.Storage; cfg != nil {
		if cfg.BucketURL != "" {
			bucketURL = cfg.BucketURL
		}
		if cfg.PublicURL != "" {
			publicURL = cfg.PublicURL
		}
	}

	bucket, err := blob.OpenBucket(params.Ctx, bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "open bucket %s", bucketURL)
	}
	params.Logger.Info("Image storage opened", slog.String("bucket", bucketURL))

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return errors.WithStack(bucket.Close())
		},
	})

	return NewBlobStorage(bucket, publicURL), nil
}
