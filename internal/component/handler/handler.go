package handler

import (
	"net/http"

	"github.com/forgeline/equipment-cms/internal/component"
	"github.com/forgeline/equipment-cms/internal/component/dto"
	"github.com/forgeline/equipment-cms/internal/httpx"
	"github.com/forgeline/equipment-cms/internal/logger"
	"github.com/forgeline/equipment-cms/internal/model"
)

type ComponentHandler struct {
	uc     component.UseCase
	logger logger.ZapLogger
}

func NewComponentHandler(uc component.UseCase, log logger.ZapLogger) *ComponentHandler {
	return &ComponentHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ComponentHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /admin/api/components", h.ListComponents)
	mux.HandleFunc("POST /admin/api/components", h.CreateComponent)
	mux.HandleFunc("GET /admin/api/components/{id}", h.GetComponent)
	mux.HandleFunc("PUT /admin/api/components/{id}", h.UpdateComponent)
	mux.HandleFunc("DELETE /admin/api/components/{id}", h.DeleteComponent)
}

func (h *ComponentHandler) CreateComponent(w http.ResponseWriter, r *http.Request) {
	var input dto.SaveComponentInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.WriteError(w, h.logger, "decode component", err)
		return
	}
	input.Component.ID = ""

	c, err := h.uc.SaveComponent(r.Context(), &input)
	if err != nil {
		httpx.WriteError(w, h.logger, "create component", err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, c)
}

func (h *ComponentHandler) UpdateComponent(w http.ResponseWriter, r *http.Request) {
	var input dto.SaveComponentInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.WriteError(w, h.logger, "decode component", err)
		return
	}
	input.Component.ID = r.PathValue("id")

	c, err := h.uc.SaveComponent(r.Context(), &input)
	if err != nil {
		httpx.WriteError(w, h.logger, "update component", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, c)
}

func (h *ComponentHandler) GetComponent(w http.ResponseWriter, r *http.Request) {
	c, err := h.uc.GetComponent(r.Context(), r.PathValue("id"))
	if err != nil {
		httpx.WriteError(w, h.logger, "get component", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, c)
}

func (h *ComponentHandler) ListComponents(w http.ResponseWriter, r *http.Request) {
	filters := &dto.ComponentFilters{
		IsActive:      httpx.QueryBool(r, "active"),
		ComponentType: r.URL.Query().Get("type"),
		SearchQuery:   r.URL.Query().Get("q"),
	}
	comps, err := h.uc.ListComponents(r.Context(), filters)
	if err != nil {
		httpx.WriteError(w, h.logger, "list components", err)
		return
	}
	if comps == nil {
		comps = []model.Component{}
	}
	httpx.WriteJSON(w, http.StatusOK, comps)
}

func (h *ComponentHandler) DeleteComponent(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteComponent(r.Context(), r.PathValue("id")); err != nil {
		httpx.WriteError(w, h.logger, "delete component", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
