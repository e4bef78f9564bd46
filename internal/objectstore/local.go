package objectstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Local writes objects below a directory that the HTTP server exposes at PublicBase.
type Local struct {
	Dir        string
	PublicBase string
	Allowed    []string
	now        func() time.Time
}

func NewLocal(dir, publicBase string, allowed []string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Local{Dir: dir, PublicBase: publicBase, Allowed: allowed, now: time.Now}, nil
}

func (s *Local) Upload(ctx context.Context, folder, fileName, contentType string, r io.Reader, size int64) (*Object, error) {
	folder, err := CleanFolder(folder, s.Allowed)
	if err != nil {
		return nil, err
	}
	key := ObjectKey(folder, fileName, s.now())
	dst := filepath.Join(s.Dir, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return nil, fmt.Errorf("create folder: %w", err)
	}

	f, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create object: %w", err)
	}

	written, err := io.Copy(f, &ctxReader{ctx: ctx, r: r})
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(dst)
		return nil, fmt.Errorf("write object: %w", err)
	}

	return &Object{Key: key, URL: s.PublicURL(key), ContentType: contentType, Size: written}, nil
}

func (s *Local) Delete(ctx context.Context, key string) error {
	clean := filepath.Clean("/" + key)
	if strings.Contains(key, "..") || clean == "/" {
		return fmt.Errorf("%w: %q", ErrInvalidFolder, key)
	}
	err := os.Remove(filepath.Join(s.Dir, filepath.FromSlash(clean)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *Local) PublicURL(key string) string {
	return joinURL(s.PublicBase, key)
}

// ctxReader stops a copy once the request context is cancelled.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
