// Package storage uploads public assets (store logos) to Cloud Storage.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// BlobStore stores objects and returns their public URL.
type BlobStore interface {
	Upload(ctx context.Context, objectPath, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, objectPath string) error
}

// GCSStore writes to a single bucket.
type GCSStore struct {
	client        *gcs.Client
	bucket        string
	publicBaseURL string
	cacheControl  string
}

func NewGCSStore(ctx context.Context, bucket, publicBaseURL, cacheControl, credentialsFile string) (*GCSStore, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &GCSStore{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
		cacheControl:  cacheControl,
	}, nil
}

func (s *GCSStore) Upload(ctx context.Context, objectPath, contentType string, data []byte) (string, error) {
	w := s.client.Bucket(s.bucket).Object(objectPath).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = s.cacheControl

	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write %s: %w", objectPath, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize %s: %w", objectPath, err)
	}
	return PublicURL(s.publicBaseURL, objectPath), nil
}

func (s *GCSStore) Delete(ctx context.Context, objectPath string) error {
	if err := s.client.Bucket(s.bucket).Object(objectPath).Delete(ctx); err != nil && err != gcs.ErrObjectNotExist {
		return fmt.Errorf("delete %s: %w", objectPath, err)
	}
	return nil
}

func (s *GCSStore) Close() error {
	return s.client.Close()
}

// PublicURL joins base and an object path, escaping each path segment.
func PublicURL(base, objectPath string) string {
	segments := strings.Split(strings.TrimPrefix(objectPath, "/"), "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.Join(segments, "/")
}
