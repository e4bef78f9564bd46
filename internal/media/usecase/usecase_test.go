package usecase

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/forgeline/equipment-cms/internal/logger"
	"github.com/forgeline/equipment-cms/internal/media/dto"
	"github.com/forgeline/equipment-cms/internal/model"
	"github.com/forgeline/equipment-cms/internal/objectstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	items     map[string]model.MediaAsset
	createErr error
}

func (r *fakeRepo) Create(ctx context.Context, a *model.MediaAsset) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.items[a.ID] = *a
	return nil
}

func (r *fakeRepo) FindByID(ctx context.Context, id string) (*model.MediaAsset, error) {
	a, ok := r.items[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return &a, nil
}

func (r *fakeRepo) FindAll(ctx context.Context, f *dto.MediaFilters) ([]model.MediaAsset, int, error) {
	return nil, 0, nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	delete(r.items, id)
	return nil
}

type fakeStore struct {
	objects map[string]string
	deleted []string
}

func (s *fakeStore) Upload(ctx context.Context, folder, fileName, contentType string, r io.Reader, size int64) (*objectstore.Object, error) {
	if _, err := objectstore.CleanFolder(folder, []string{"media", "products"}); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	key := folder + "/" + fileName
	s.objects[key] = string(data)
	return &objectstore.Object{Key: key, URL: s.PublicURL(key), ContentType: contentType, Size: int64(len(data))}, nil
}

func (s *fakeStore) Delete(ctx context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	delete(s.objects, key)
	return nil
}

func (s *fakeStore) PublicURL(key string) string { return "https://cdn.test/" + key }

func TestUpload(t *testing.T) {
	repo := &fakeRepo{items: map[string]model.MediaAsset{}}
	store := &fakeStore{objects: map[string]string{}}
	uc := NewMediaUseCase(repo, store, logger.NewNop())

	a, err := uc.Upload(context.Background(), &dto.UploadInput{
		FileName: "brochure.pdf", ContentType: "application/pdf", Body: strings.NewReader("%PDF"), UploadedBy: "u1",
	})
	require.NoError(t, err)
	assert.Equal(t, "media", a.Folder)
	assert.Equal(t, "https://cdn.test/media/brochure.pdf", a.URL)
	assert.Equal(t, int64(4), a.SizeBytes)
	assert.Contains(t, repo.items, a.ID)

	_, err = uc.Upload(context.Background(), &dto.UploadInput{Folder: "../etc", FileName: "x.png", Body: strings.NewReader("x")})
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "folder")
}

func TestUpload_IndexFailureRemovesObject(t *testing.T) {
	repo := &fakeRepo{items: map[string]model.MediaAsset{}, createErr: errors.New("db down")}
	store := &fakeStore{objects: map[string]string{}}
	uc := NewMediaUseCase(repo, store, logger.NewNop())

	_, err := uc.Upload(context.Background(), &dto.UploadInput{Folder: "products", FileName: "a.png", Body: strings.NewReader("png")})
	require.Error(t, err)
	assert.Empty(t, store.objects)
	assert.Equal(t, []string{"products/a.png"}, store.deleted)
}

func TestDeleteAsset(t *testing.T) {
	repo := &fakeRepo{items: map[string]model.MediaAsset{"m1": {ID: "m1", ObjectKey: "media/a.png"}}}
	store := &fakeStore{objects: map[string]string{"media/a.png": "x"}}
	uc := NewMediaUseCase(repo, store, logger.NewNop())

	require.NoError(t, uc.DeleteAsset(context.Background(), "m1"))
	assert.Empty(t, repo.items)
	assert.Equal(t, []string{"media/a.png"}, store.deleted)

	assert.ErrorIs(t, uc.DeleteAsset(context.Background(), "m1"), model.ErrNotFound)
}
