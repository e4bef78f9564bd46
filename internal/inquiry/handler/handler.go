package handler

import (
	"net/http"

	"github.com/forgeline/equipment-cms/internal/auth"
	"github.com/forgeline/equipment-cms/internal/httpx"
	"github.com/forgeline/equipment-cms/internal/inquiry"
	"github.com/forgeline/equipment-cms/internal/inquiry/dto"
	"github.com/forgeline/equipment-cms/internal/logger"
	"github.com/forgeline/equipment-cms/internal/model"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type InquiryHandler struct {
	uc     inquiry.UseCase
	logger logger.ZapLogger
}

func NewInquiryHandler(uc inquiry.UseCase, log logger.ZapLogger) *InquiryHandler {
	return &InquiryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *InquiryHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /admin/api/inquiries", h.ListInquiries)
	mux.HandleFunc("GET /admin/api/inquiries/unread", h.CountUnread)
	mux.HandleFunc("GET /admin/api/inquiries/{id}", h.GetInquiry)
	mux.HandleFunc("PATCH /admin/api/inquiries/{id}", h.UpdateInquiry)
	mux.HandleFunc("DELETE /admin/api/inquiries/{id}", h.DeleteInquiry)
}

func (h *InquiryHandler) ListInquiries(w http.ResponseWriter, r *http.Request) {
	filters := &dto.InquiryFilters{
		Status:      r.URL.Query().Get("status"),
		AssignedTo:  r.URL.Query().Get("assigned_to"),
		SearchQuery: r.URL.Query().Get("q"),
		Page:        max(httpx.QueryInt(r, "page", 1), 1),
		PageSize:    min(max(httpx.QueryInt(r, "page_size", defaultPageSize), 1), maxPageSize),
	}
	if filters.Status != "" && !model.OneOf(filters.Status, model.InquiryStatuses) {
		httpx.WriteStatus(w, http.StatusBadRequest, "unknown status")
		return
	}

	items, total, err := h.uc.ListInquiries(r.Context(), filters)
	if err != nil {
		httpx.WriteError(w, h.logger, "list inquiries", err)
		return
	}
	if items == nil {
		items = []model.CustomerInquiry{}
	}
	httpx.WriteJSON(w, http.StatusOK, httpx.Page[model.CustomerInquiry]{
		Items: items, Total: total, Page: filters.Page, PageSize: filters.PageSize,
	})
}

func (h *InquiryHandler) GetInquiry(w http.ResponseWriter, r *http.Request) {
	q, err := h.uc.GetInquiry(r.Context(), r.PathValue("id"))
	if err != nil {
		httpx.WriteError(w, h.logger, "get inquiry", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, q)
}

func (h *InquiryHandler) UpdateInquiry(w http.ResponseWriter, r *http.Request) {
	var input dto.UpdateInquiryInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.WriteError(w, h.logger, "decode inquiry", err)
		return
	}
	input.ID = r.PathValue("id")

	q, err := h.uc.UpdateInquiry(r.Context(), &input)
	if err != nil {
		httpx.WriteError(w, h.logger, "update inquiry", err)
		return
	}
	h.logger.Debug("inquiry workflow changed", zap.String("id", q.ID), zap.String("by", auth.UserID(r.Context())))
	httpx.WriteJSON(w, http.StatusOK, q)
}

func (h *InquiryHandler) DeleteInquiry(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteInquiry(r.Context(), r.PathValue("id")); err != nil {
		httpx.WriteError(w, h.logger, "delete inquiry", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *InquiryHandler) CountUnread(w http.ResponseWriter, r *http.Request) {
	n, err := h.uc.CountUnread(r.Context())
	if err != nil {
		httpx.WriteError(w, h.logger, "count unread inquiries", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]int{"unread": n})
}
