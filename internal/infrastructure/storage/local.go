package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// LocalStorage keeps photos on the local filesystem under basePath.
// Used in development and tests (STORAGE_DRIVER=local).
type LocalStorage struct {
	basePath string
	baseURL  string
}

func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	log.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{basePath: basePath, baseURL: baseURL}, nil
}

// resolve maps a key to a path inside basePath and rejects traversal
func (ls *LocalStorage) resolve(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return filepath.Join(ls.basePath, clean), nil
}

func (ls *LocalStorage) Put(ctx context.Context, key string, data []byte, contentType string) error {
	dst, err := ls.resolve(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("failed to create subdirectory: %w", err)
	}

	if err := os.WriteFile(dst, data, 0o644); err != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("failed to save file content: %w", err)
	}

	log.Debug().Str("key", key).Int("bytes", len(data)).Msg("File saved")
	return nil
}

func (ls *LocalStorage) Get(ctx context.Context, key string) ([]byte, error) {
	src, err := ls.resolve(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(src)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrObjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// Delete is a no-op for missing files
func (ls *LocalStorage) Delete(ctx context.Context, key string) error {
	target, err := ls.resolve(key)
	if err != nil {
		return err
	}

	if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (ls *LocalStorage) URL(key string) string {
	return strings.TrimRight(ls.baseURL, "/") + "/" + strings.TrimLeft(key, "/")
}
