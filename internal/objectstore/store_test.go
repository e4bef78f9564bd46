package objectstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanFolder(t *testing.T) {
	allowed := []string{"products", "components"}

	got, err := CleanFolder("/products/industrial-mixer-x/", allowed)
	require.NoError(t, err)
	assert.Equal(t, "products/industrial-mixer-x", got)

	for _, bad := range []string{"", "../etc", "products/../news", "news", "products/Upper", "products//x"} {
		_, err := CleanFolder(bad, allowed)
		assert.ErrorIs(t, err, ErrInvalidFolder, bad)
	}

	got, err = CleanFolder("anything", nil)
	require.NoError(t, err)
	assert.Equal(t, "anything", got)
}

func TestObjectKey(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	key := ObjectKey("products", "Mixer Front View.JPG", now)

	assert.True(t, strings.HasPrefix(key, "products/1700000000000-"), key)
	assert.True(t, strings.HasSuffix(key, "-mixer-front-view.jpg"), key)

	assert.True(t, strings.HasSuffix(ObjectKey("media", "...", now), "-file"))
}

func TestLocal_UploadAndDelete(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocal(dir, "http://localhost:8080/uploads/", []string{"products"})
	require.NoError(t, err)

	obj, err := s.Upload(context.Background(), "products/mixer", "spec sheet.pdf", "application/pdf", strings.NewReader("pdf-bytes"), 9)
	require.NoError(t, err)
	assert.Equal(t, int64(9), obj.Size)
	assert.Equal(t, "http://localhost:8080/uploads/"+obj.Key, obj.URL)

	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(obj.Key)))
	require.NoError(t, err)
	assert.Equal(t, "pdf-bytes", string(data))

	require.NoError(t, s.Delete(context.Background(), obj.Key))
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(obj.Key)))
	assert.True(t, os.IsNotExist(err))

	assert.Error(t, s.Delete(context.Background(), "../outside"))
}

func TestLocal_UploadRejectsFolder(t *testing.T) {
	s, err := NewLocal(t.TempDir(), "http://x", []string{"products"})
	require.NoError(t, err)

	_, err = s.Upload(context.Background(), "news", "a.png", "image/png", strings.NewReader("x"), 1)
	assert.True(t, errors.Is(err, ErrInvalidFolder))
}

func TestLocal_UploadCancelled(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocal(dir, "http://x", nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.Upload(ctx, "products", "a.png", "image/png", strings.NewReader("data"), 4)
	require.Error(t, err)

	entries, _ := os.ReadDir(filepath.Join(dir, "products"))
	assert.Empty(t, entries)
}
