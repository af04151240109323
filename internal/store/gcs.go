package store

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
)

// GCSStore is a Cloud Storage-backed implementation of Store.
type GCSStore struct {
	client *storage.Client
	bucket string
	prefix string
}

// NewGCS creates a new GCSStore writing under prefix in bucket.
func NewGCS(ctx context.Context, bucket, prefix string) (*GCSStore, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}
	return &GCSStore{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}, nil
}

// Put uploads data as an object and returns its gs:// URL.
func (s *GCSStore) Put(ctx context.Context, name string, data []byte) (string, error) {
	key := s.key(name)
	writer := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	writer.ContentType = contentType(name)
	writer.ContentDisposition = fmt.Sprintf("attachment; filename=%q", name)

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return "", fmt.Errorf("uploading %s: %w", key, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("uploading %s: %w", key, err)
	}
	return fmt.Sprintf("gs://%s/%s", s.bucket, key), nil
}

// Get downloads an object. Returns false if it doesn't exist.
func (s *GCSStore) Get(ctx context.Context, name string) ([]byte, bool) {
	reader, err := s.client.Bucket(s.bucket).Object(s.key(name)).NewReader(ctx)
	if err != nil {
		return nil, false
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Close closes the GCS client.
func (s *GCSStore) Close() error {
	return s.client.Close()
}

func (s *GCSStore) key(name string) string {
	if s.prefix == "" {
		return name
	}
	return s.prefix + "/" + name
}
