package handler

import (
	"errors"
	"net/http"

	"github.com/forgeline/equipment-cms/internal/auth"
	"github.com/forgeline/equipment-cms/internal/httpx"
	"github.com/forgeline/equipment-cms/internal/logger"
	"github.com/forgeline/equipment-cms/internal/media"
	"github.com/forgeline/equipment-cms/internal/media/dto"
	"github.com/forgeline/equipment-cms/internal/model"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
	// multipart parts above this spill to temp files.
	maxMemory = 8 << 20
)

type MediaHandler struct {
	uc             media.UseCase
	maxUploadBytes int64
	logger         logger.ZapLogger
}

func NewMediaHandler(uc media.UseCase, maxUploadBytes int64, log logger.ZapLogger) *MediaHandler {
	return &MediaHandler{
		uc:             uc,
		maxUploadBytes: maxUploadBytes,
		logger:         log,
	}
}

func (h *MediaHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /admin/api/media", h.ListAssets)
	mux.HandleFunc("POST /admin/api/media", h.Upload)
	mux.HandleFunc("DELETE /admin/api/media/{id}", h.DeleteAsset)
}

// Upload expects a multipart form with a "file" part and an optional "folder".
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > h.maxUploadBytes {
		httpx.WriteStatus(w, http.StatusRequestEntityTooLarge, "file is too large")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httpx.WriteStatus(w, http.StatusRequestEntityTooLarge, "file is too large")
			return
		}
		httpx.WriteStatus(w, http.StatusBadRequest, "malformed upload")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		v := model.NewValidationError()
		v.Add("file", "file is required")
		httpx.WriteError(w, h.logger, "read upload", v)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	asset, err := h.uc.Upload(r.Context(), &dto.UploadInput{
		Folder:      r.FormValue("folder"),
		FileName:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Body:        file,
		UploadedBy:  auth.UserID(r.Context()),
	})
	if err != nil {
		httpx.WriteError(w, h.logger, "upload media", err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, asset)
}

func (h *MediaHandler) ListAssets(w http.ResponseWriter, r *http.Request) {
	filters := &dto.MediaFilters{
		Folder:   r.URL.Query().Get("folder"),
		Page:     max(httpx.QueryInt(r, "page", 1), 1),
		PageSize: min(max(httpx.QueryInt(r, "page_size", defaultPageSize), 1), maxPageSize),
	}
	assets, total, err := h.uc.ListAssets(r.Context(), filters)
	if err != nil {
		httpx.WriteError(w, h.logger, "list media", err)
		return
	}
	if assets == nil {
		assets = []model.MediaAsset{}
	}
	httpx.WriteJSON(w, http.StatusOK, httpx.Page[model.MediaAsset]{
		Items: assets, Total: total, Page: filters.Page, PageSize: filters.PageSize,
	})
}

func (h *MediaHandler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteAsset(r.Context(), r.PathValue("id")); err != nil {
		httpx.WriteError(w, h.logger, "delete media", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
