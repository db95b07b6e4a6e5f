package storage

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

const publicBaseURL = "https://storage.googleapis.com"

// GCSStorage uploads publicly readable objects to a Cloud Storage bucket
type GCSStorage struct {
	client *gcs.Client
	bucket string
	logger *slog.Logger
}

// NewGCSStorage authenticates with a base64 encoded service account key.
func NewGCSStorage(ctx context.Context, bucket, keyfileBase64 string, logger *slog.Logger) (*GCSStorage, error) {
	credentials, err := base64.StdEncoding.DecodeString(keyfileBase64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode storage keyfile: %w", err)
	}

	client, err := gcs.NewClient(ctx, option.WithCredentialsJSON(credentials))
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &GCSStorage{client: client, bucket: bucket, logger: logger}, nil
}

func (s *GCSStorage) Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	object := s.client.Bucket(s.bucket).Object(key)

	w := object.NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to write object %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize object %s: %w", key, err)
	}

	if err := object.ACL().Set(ctx, gcs.AllUsers, gcs.RoleReader); err != nil {
		return "", fmt.Errorf("failed to make object %s public: %w", key, err)
	}

	s.logger.Info("Media uploaded", "bucket", s.bucket, "key", key, "content_type", contentType)
	return PublicURL(s.bucket, key), nil
}

func (s *GCSStorage) Delete(ctx context.Context, key string) error {
	err := s.client.Bucket(s.bucket).Object(key).Delete(ctx)
	if err != nil && !errors.Is(err, gcs.ErrObjectNotExist) {
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}
	return nil
}

func (s *GCSStorage) Close() error {
	return s.client.Close()
}

// PublicURL is the anonymous download URL of an object
func PublicURL(bucket, key string) string {
	return fmt.Sprintf("%s/%s/%s", publicBaseURL, bucket, key)
}
