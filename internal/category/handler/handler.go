package handler

import (
	"net/http"

	"github.com/forgeline/equipment-cms/internal/category"
	"github.com/forgeline/equipment-cms/internal/category/dto"
	"github.com/forgeline/equipment-cms/internal/httpx"
	"github.com/forgeline/equipment-cms/internal/logger"
	"github.com/forgeline/equipment-cms/internal/model"
)

type CategoryHandler struct {
	uc     category.UseCase
	logger logger.ZapLogger
}

func NewCategoryHandler(uc category.UseCase, log logger.ZapLogger) *CategoryHandler {
	return &CategoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CategoryHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /admin/api/categories", h.ListCategories)
	mux.HandleFunc("POST /admin/api/categories", h.CreateCategory)
	mux.HandleFunc("GET /admin/api/categories/{id}", h.GetCategory)
	mux.HandleFunc("PUT /admin/api/categories/{id}", h.UpdateCategory)
	mux.HandleFunc("DELETE /admin/api/categories/{id}", h.DeleteCategory)
}

func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var input dto.SaveCategoryInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.WriteError(w, h.logger, "decode category", err)
		return
	}
	input.Category.ID = ""

	cat, err := h.uc.SaveCategory(r.Context(), &input)
	if err != nil {
		httpx.WriteError(w, h.logger, "create category", err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, cat)
}

func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var input dto.SaveCategoryInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.WriteError(w, h.logger, "decode category", err)
		return
	}
	input.Category.ID = r.PathValue("id")

	cat, err := h.uc.SaveCategory(r.Context(), &input)
	if err != nil {
		httpx.WriteError(w, h.logger, "update category", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, cat)
}

func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	cat, err := h.uc.GetCategory(r.Context(), r.PathValue("id"))
	if err != nil {
		httpx.WriteError(w, h.logger, "get category", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, cat)
}

// ListCategories accepts ?parent_id= (empty value for roots), ?active= and ?tree=true.
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	filters := &dto.CategoryFilters{
		IsActive: httpx.QueryBool(r, "active"),
	}
	if r.URL.Query().Has("parent_id") {
		parent := r.URL.Query().Get("parent_id")
		filters.ParentID = &parent
	}
	if tree := httpx.QueryBool(r, "tree"); tree != nil {
		filters.Tree = *tree
	}

	categories, err := h.uc.ListCategories(r.Context(), filters)
	if err != nil {
		httpx.WriteError(w, h.logger, "list categories", err)
		return
	}
	if categories == nil {
		categories = []model.Category{}
	}
	httpx.WriteJSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteCategory(r.Context(), r.PathValue("id")); err != nil {
		httpx.WriteError(w, h.logger, "delete category", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
