package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

var ErrObjectNotFound = errors.New("object not found")

// ObjectStorage stores opaque blobs under string keys.
// Implementations: MinIOStorage and LocalStorage.
type ObjectStorage interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// PhotoKey builds "<dir>/<slug-of-name>-<uuid>.<ext>" for an uploaded photo.
// The slug keeps keys readable; the uuid keeps them unique.
func PhotoKey(dir, name, format string) string {
	base := slug.Make(name)
	if len(base) > 60 {
		base = strings.Trim(base[:60], "-")
	}
	if base == "" {
		base = "photo"
	}
	return path.Join(dir, fmt.Sprintf("%s-%s.%s", base, uuid.NewString(), extensionFor(format)))
}

// ThumbnailKey maps a photo key to the key of its thumbnail variant
func ThumbnailKey(key string) string {
	ext := path.Ext(key)
	return strings.TrimSuffix(key, ext) + "_thumb.jpg"
}

func extensionFor(format string) string {
	switch format {
	case "jpeg":
		return "jpg"
	case "":
		return "bin"
	default:
		return format
	}
}

// ContentTypeFor returns the MIME type for a decoded image format name
func ContentTypeFor(format string) string {
	switch format {
	case "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	default:
		return "application/octet-stream"
	}
}
