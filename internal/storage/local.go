package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var ErrInvalidKey = errors.New("invalid storage key")

// LocalStore keeps files in a directory that the HTTP server exposes under
// publicPrefix.
type LocalStore struct {
	dir          string
	publicPrefix string
}

func NewLocalStore(dir string, publicPrefix string) (*LocalStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("upload dir is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	prefix := "/" + strings.Trim(strings.TrimSpace(publicPrefix), "/")
	if prefix == "/" {
		prefix = "/uploads"
	}
	return &LocalStore{dir: dir, publicPrefix: prefix}, nil
}

func (store *LocalStore) Dir() string {
	return store.dir
}

func (store *LocalStore) PublicPrefix() string {
	return store.publicPrefix
}

func (store *LocalStore) Put(ctx context.Context, key string, body io.Reader, _ int64, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if key == "" || key != path.Base(key) || strings.HasPrefix(key, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	target := filepath.Join(store.dir, key)
	file, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", key, err)
	}
	if _, err := io.Copy(file, body); err != nil {
		_ = file.Close()
		_ = os.Remove(target)
		return "", fmt.Errorf("write %s: %w", key, err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", key, err)
	}
	return store.publicPrefix + "/" + url.PathEscape(key), nil
}
