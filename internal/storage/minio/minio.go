// Package minio implements storage.Files on top of MinIO/S3.
package minio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	mclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/diewo77/go-freelance/internal/config"
	"github.com/diewo77/go-freelance/internal/storage"
)

// Files stores uploads as objects in a single bucket.
type Files struct {
	client     *mclient.Client
	bucket     string
	publicBase string
}

// New connects to the endpoint and fails fast when the bucket is missing.
func New(ctx context.Context, cfg config.S3Config) (*Files, error) {
	const op = "storage/minio/New"

	endpoint := cfg.Endpoint
	secure := strings.HasPrefix(endpoint, "https://")
	if u, err := url.Parse(endpoint); err == nil && u.Scheme != "" {
		endpoint = u.Host
		secure = u.Scheme == "https"
	}

	client, err := mclient.New(endpoint, &mclient.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		return nil, fmt.Errorf("%s: bucket %q does not exist", op, cfg.Bucket)
	}

	base := strings.TrimSuffix(cfg.PublicBaseURL, "/")
	if base == "" {
		scheme := "http"
		if secure {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s/%s", scheme, endpoint, cfg.Bucket)
	}
	return &Files{client: client, bucket: cfg.Bucket, publicBase: base}, nil
}

func (f *Files) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	_, err := f.client.PutObject(ctx, f.bucket, key, r, size, mclient.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("storage/minio/Put %s: %w", key, err)
	}
	return nil
}

func (f *Files) Delete(ctx context.Context, key string) error {
	if _, err := f.client.StatObject(ctx, f.bucket, key, mclient.StatObjectOptions{}); err != nil {
		var resp mclient.ErrorResponse
		if errors.As(err, &resp) && resp.Code == "NoSuchKey" {
			return storage.ErrNotFound
		}
		return fmt.Errorf("storage/minio/Delete %s: %w", key, err)
	}
	if err := f.client.RemoveObject(ctx, f.bucket, key, mclient.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("storage/minio/Delete %s: %w", key, err)
	}
	return nil
}

func (f *Files) URL(key string) string {
	if key == "" {
		return ""
	}
	return f.publicBase + "/" + strings.TrimPrefix(key, "/")
}

var _ storage.Files = (*Files)(nil)
