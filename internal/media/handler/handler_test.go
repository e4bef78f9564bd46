package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/forgeline/equipment-cms/internal/logger"
	"github.com/forgeline/equipment-cms/internal/media"
	"github.com/forgeline/equipment-cms/internal/media/dto"
	"github.com/forgeline/equipment-cms/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUseCase struct {
	media.UseCase
	got  *dto.UploadInput
	body string
}

func (s *stubUseCase) Upload(ctx context.Context, in *dto.UploadInput) (*model.MediaAsset, error) {
	s.got = in
	data, _ := io.ReadAll(in.Body)
	s.body = string(data)
	return &model.MediaAsset{ID: "m1", Folder: in.Folder, FileName: in.FileName}, nil
}

func multipartBody(t *testing.T, folder, name string, content []byte) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("folder", folder))
	fw, err := mw.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUpload(t *testing.T) {
	uc := &stubUseCase{}
	mux := http.NewServeMux()
	NewMediaHandler(uc, 1<<20, logger.NewNop()).Register(mux)

	body, ct := multipartBody(t, "products/mixer", "front.jpg", []byte("jpegdata"))
	req := httptest.NewRequest(http.MethodPost, "/admin/api/media", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "products/mixer", uc.got.Folder)
	assert.Equal(t, "front.jpg", uc.got.FileName)
	assert.Equal(t, "jpegdata", uc.body)
}

func TestUpload_TooLarge(t *testing.T) {
	uc := &stubUseCase{}
	mux := http.NewServeMux()
	NewMediaHandler(uc, 64, logger.NewNop()).Register(mux)

	body, ct := multipartBody(t, "media", "big.bin", bytes.Repeat([]byte("x"), 1024))
	req := httptest.NewRequest(http.MethodPost, "/admin/api/media", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Nil(t, uc.got)
}
