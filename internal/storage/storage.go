// Package storage persists uploaded media and returns the public URL for it.
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/terraincognita07/courtlog/internal/config"
)

// Store writes an object under key and returns the URL clients load it from.
type Store interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
}

// New builds the backend selected by cfg.Backend.
func New(ctx context.Context, cfg config.UploadConfig) (Store, error) {
	switch cfg.Backend {
	case "", config.UploadBackendLocal:
		return NewLocalStore(cfg.Dir, cfg.PublicPrefix)
	case config.UploadBackendS3:
		return NewS3Store(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unknown upload backend %q", cfg.Backend)
	}
}
