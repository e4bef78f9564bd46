// Package handler exposes the product editors over the admin API. Each call
// posts the editor state plus one operation and gets the resulting state back;
// nothing is persisted until the product form is saved.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/forgeline/equipment-cms/internal/auth"
	"github.com/forgeline/equipment-cms/internal/editor"
	"github.com/forgeline/equipment-cms/internal/httpx"
	"github.com/forgeline/equipment-cms/internal/logger"
	"github.com/forgeline/equipment-cms/internal/model"
)

const maxMemory = 8 << 20

// ComponentCatalog supplies the active components offered by the assignment editor.
type ComponentCatalog interface {
	ListActive(ctx context.Context) ([]model.Component, error)
}

type EditorHandler struct {
	catalog        ComponentCatalog
	uploader       editor.Uploader
	maxUploadBytes int64
	logger         logger.ZapLogger
}

func NewEditorHandler(catalog ComponentCatalog, uploader editor.Uploader, maxUploadBytes int64, log logger.ZapLogger) *EditorHandler {
	return &EditorHandler{
		catalog:        catalog,
		uploader:       uploader,
		maxUploadBytes: maxUploadBytes,
		logger:         log,
	}
}

func (h *EditorHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /admin/api/editors/specs", h.Specs)
	mux.HandleFunc("POST /admin/api/editors/media", h.Media)
	mux.HandleFunc("POST /admin/api/editors/media/upload", h.MediaUpload)
	mux.HandleFunc("POST /admin/api/editors/components", h.Components)
}

type SpecRequest struct {
	Rows   []editor.SpecRow `json:"rows"`
	Op     string           `json:"op"`
	Key    string           `json:"key"`
	NewKey string           `json:"new_key"`
	Kind   model.SpecKind   `json:"kind"`
	Raw    string           `json:"raw"`
}

type SpecResponse struct {
	Rows    []editor.SpecRow `json:"rows"`
	Map     model.SpecMap    `json:"map"`
	Changed bool             `json:"changed"`
	Key     string           `json:"key,omitempty"`
}

func (h *EditorHandler) Specs(w http.ResponseWriter, r *http.Request) {
	var req SpecRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, h.logger, "decode spec editor", err)
		return
	}

	var emitted model.SpecMap
	e := editor.NewSpecEditorFromRows(req.Rows, func(m model.SpecMap) { emitted = m })
	resp := SpecResponse{}
	switch req.Op {
	case "append":
		resp.Key = e.Append()
	case "rename":
		e.Rename(req.Key, req.NewKey)
	case "change_type":
		e.ChangeType(req.Key, req.Kind)
	case "set_value":
		e.SetValue(req.Key, req.Raw)
	case "remove":
		e.Remove(req.Key)
	case "":
	default:
		httpx.WriteError(w, h.logger, "apply spec editor", unknownOp(req.Op))
		return
	}

	resp.Rows = e.Rows()
	resp.Changed = emitted != nil
	resp.Map = e.Map()
	httpx.WriteJSON(w, http.StatusOK, resp)
}

type MediaRequest struct {
	Items   []model.ProductMedia `json:"items"`
	Op      string               `json:"op"`
	Index   int                  `json:"index"`
	URL     string               `json:"url"`
	AltText string               `json:"alt_text"`
}

type MediaResponse struct {
	Items   []model.ProductMedia `json:"items"`
	Primary int                  `json:"primary"`
}

func (h *EditorHandler) Media(w http.ResponseWriter, r *http.Request) {
	var req MediaRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, h.logger, "decode media editor", err)
		return
	}

	l := editor.NewMediaList(req.Items, nil, "")
	var err error
	switch req.Op {
	case "add_url":
		_, err = l.AddURL(req.URL, req.AltText)
	case "move_up":
		l.MoveUp(req.Index)
	case "move_down":
		l.MoveDown(req.Index)
	case "remove":
		_, err = l.Remove(req.Index)
	case "set_primary":
		err = l.SetPrimary(req.Index)
	case "set_alt":
		err = l.SetAltText(req.Index, req.AltText)
	case "":
	default:
		err = unknownOp(req.Op)
	}
	if err != nil {
		httpx.WriteError(w, h.logger, "apply media editor", invalid(err))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, MediaResponse{Items: l.Items(), Primary: l.Primary()})
}

// MediaUpload takes a multipart form with "state" (the current items as JSON),
// "folder" and "file", uploads the file into the media library and appends it.
func (h *EditorHandler) MediaUpload(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > h.maxUploadBytes {
		httpx.WriteStatus(w, http.StatusRequestEntityTooLarge, "file is too large")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		httpx.WriteStatus(w, http.StatusBadRequest, "malformed upload")
		return
	}
	defer r.MultipartForm.RemoveAll()

	var items []model.ProductMedia
	if state := r.FormValue("state"); state != "" {
		if err := json.Unmarshal([]byte(state), &items); err != nil {
			httpx.WriteError(w, h.logger, "decode media editor", invalid(err))
			return
		}
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		v := model.NewValidationError()
		v.Add("file", "file is required")
		httpx.WriteError(w, h.logger, "read upload", v)
		return
	}
	defer file.Close()

	l := editor.NewMediaList(items, h.uploader, r.FormValue("folder"))
	contentType := header.Header.Get("Content-Type")
	if _, err := l.AddFile(r.Context(), header.Filename, contentType, file, header.Size, auth.UserID(r.Context())); err != nil {
		httpx.WriteError(w, h.logger, "upload editor media", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, MediaResponse{Items: l.Items(), Primary: l.Primary()})
}

type ComponentRequest struct {
	ProductID   string                   `json:"product_id"`
	Items       []model.ProductComponent `json:"items"`
	Op          string                   `json:"op"`
	ComponentID string                   `json:"component_id"`
	Quantity    int                      `json:"quantity"`
	Optional    bool                     `json:"optional"`
	Notes       string                   `json:"notes"`
	Term        string                   `json:"term"`
}

type ComponentResponse struct {
	Items     []model.ProductComponent `json:"items"`
	Available []model.Component        `json:"available"`
}

func (h *EditorHandler) Components(w http.ResponseWriter, r *http.Request) {
	var req ComponentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, h.logger, "decode component editor", err)
		return
	}
	catalog, err := h.catalog.ListActive(r.Context())
	if err != nil {
		httpx.WriteError(w, h.logger, "load component catalog", err)
		return
	}

	a := editor.NewAssignments(req.ProductID, req.Items, catalog)
	switch req.Op {
	case "add":
		_, err = a.Add(req.ComponentID)
	case "update":
		err = a.Update(req.ComponentID, req.Quantity, req.Optional, req.Notes)
	case "remove":
		err = a.Remove(req.ComponentID)
	case "", "search":
	default:
		err = unknownOp(req.Op)
	}
	if err != nil {
		httpx.WriteError(w, h.logger, "apply component editor", invalid(err))
		return
	}

	available := a.Available(req.Term)
	if available == nil {
		available = []model.Component{}
	}
	httpx.WriteJSON(w, http.StatusOK, ComponentResponse{Items: a.Items(), Available: available})
}

func unknownOp(op string) error {
	return fmt.Errorf("%w: unknown operation %q", model.ErrInvalidInput, op)
}

func invalid(err error) error {
	if errors.Is(err, model.ErrInvalidInput) {
		return err
	}
	return fmt.Errorf("%w: %v", model.ErrInvalidInput, err)
}
