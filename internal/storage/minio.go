package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/meridiantrade/catalog-services/internal/config"
)

// presignTTL is the lifetime of image links when no public URL is configured.
// S3 caps presigned URLs at seven days.
const presignTTL = 7 * 24 * time.Hour

var ErrNotConfigured = errors.New("image storage is not configured")

// ImageStore stores product images and returns the URL to save on the product.
type ImageStore interface {
	PutImage(ctx context.Context, productID, filename string, r io.Reader, size int64, contentType string) (string, error)
	Ping(ctx context.Context) error
}

// MinIOStorage keeps product images in a MinIO bucket.
type MinIOStorage struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinIOStorage connects to MinIO and ensures the bucket exists.
func NewMinIOStorage(ctx context.Context, cfg config.MinIOConfig) (*MinIOStorage, error) {
	if cfg.Endpoint == "" {
		return nil, ErrNotConfigured
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio new: %w", err)
	}
	s := &MinIOStorage{client: mc, bucket: cfg.Bucket, publicURL: strings.TrimRight(cfg.PublicURL, "/")}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mc.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		exists, xerr := mc.BucketExists(ctx, s.bucket)
		if xerr != nil || !exists {
			return nil, fmt.Errorf("minio bucket ensure: %w", err)
		}
	}
	return s, nil
}

// ObjectKey names an uploaded image: products/<id>/<uuid><ext>.
func ObjectKey(productID, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return "products/" + productID + "/" + uuid.NewString() + ext
}

func (s *MinIOStorage) PutImage(ctx context.Context, productID, filename string, r io.Reader, size int64, contentType string) (string, error) {
	key := ObjectKey(productID, filename)
	if _, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType}); err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	if s.publicURL != "" {
		return s.publicURL + "/" + s.bucket + "/" + key, nil
	}
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, presignTTL, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}
	return u.String(), nil
}

func (s *MinIOStorage) Ping(ctx context.Context) error {
	ok, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("bucket %q missing", s.bucket)
	}
	return nil
}
