package storage

import (
	"context"
	"io"
)

// Storage stores public media objects
type Storage interface {
	// Upload writes r under key and returns the object's public URL.
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	Close() error
}
