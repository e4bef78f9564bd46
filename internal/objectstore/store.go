// Package objectstore uploads files into folder-scoped keys and hands back public URLs.
package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/forgeline/equipment-cms/internal/slug"
	"github.com/google/uuid"
)

var ErrInvalidFolder = errors.New("invalid storage folder")

// Object describes a stored file.
type Object struct {
	Key         string
	URL         string
	ContentType string
	Size        int64
}

type Store interface {
	// Upload stores r under folder and returns the object with its public URL.
	Upload(ctx context.Context, folder, fileName, contentType string, r io.Reader, size int64) (*Object, error)
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

// CleanFolder normalises a caller-supplied folder like "products/<slug>" and rejects
// traversal or folders outside allowed roots. An empty allowed list permits any root.
func CleanFolder(folder string, allowed []string) (string, error) {
	folder = strings.Trim(strings.TrimSpace(folder), "/")
	if folder == "" {
		return "", ErrInvalidFolder
	}
	for _, seg := range strings.Split(folder, "/") {
		if seg == "" || seg == "." || seg == ".." || slug.Make(seg) != seg {
			return "", fmt.Errorf("%w: %q", ErrInvalidFolder, folder)
		}
	}
	if len(allowed) == 0 {
		return folder, nil
	}
	root := strings.SplitN(folder, "/", 2)[0]
	for _, a := range allowed {
		if a == root {
			return folder, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidFolder, folder)
}

// ObjectKey builds a collision-free key: folder/<unix-ms>-<short-uuid>-<slugged-name>.<ext>.
func ObjectKey(folder, fileName string, now time.Time) string {
	ext := strings.ToLower(path.Ext(fileName))
	base := slug.Make(strings.TrimSuffix(path.Base(fileName), path.Ext(fileName)))
	if base == "" {
		base = "file"
	}
	if slug.Make(strings.TrimPrefix(ext, ".")) == "" {
		ext = ""
	}
	id := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("%s/%d-%s-%s%s", folder, now.UnixMilli(), id, base, ext)
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}
