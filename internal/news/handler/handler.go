package handler

import (
	"net/http"

	"github.com/forgeline/equipment-cms/internal/httpx"
	"github.com/forgeline/equipment-cms/internal/logger"
	"github.com/forgeline/equipment-cms/internal/model"
	"github.com/forgeline/equipment-cms/internal/news"
	"github.com/forgeline/equipment-cms/internal/news/dto"
)

type NewsHandler struct {
	uc     news.UseCase
	logger logger.ZapLogger
}

func NewNewsHandler(uc news.UseCase, log logger.ZapLogger) *NewsHandler {
	return &NewsHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *NewsHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /admin/api/news", h.ListArticles)
	mux.HandleFunc("POST /admin/api/news", h.CreateArticle)
	mux.HandleFunc("GET /admin/api/news/{id}", h.GetArticle)
	mux.HandleFunc("PUT /admin/api/news/{id}", h.UpdateArticle)
	mux.HandleFunc("DELETE /admin/api/news/{id}", h.DeleteArticle)
}

func (h *NewsHandler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	var input dto.SaveNewsInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.WriteError(w, h.logger, "decode article", err)
		return
	}
	input.Article.ID = ""

	n, err := h.uc.SaveArticle(r.Context(), &input)
	if err != nil {
		httpx.WriteError(w, h.logger, "create article", err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, n)
}

func (h *NewsHandler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	var input dto.SaveNewsInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.WriteError(w, h.logger, "decode article", err)
		return
	}
	input.Article.ID = r.PathValue("id")

	n, err := h.uc.SaveArticle(r.Context(), &input)
	if err != nil {
		httpx.WriteError(w, h.logger, "update article", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, n)
}

func (h *NewsHandler) GetArticle(w http.ResponseWriter, r *http.Request) {
	n, err := h.uc.GetArticle(r.Context(), r.PathValue("id"))
	if err != nil {
		httpx.WriteError(w, h.logger, "get article", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, n)
}

func (h *NewsHandler) ListArticles(w http.ResponseWriter, r *http.Request) {
	filters := &dto.NewsFilters{
		IsPublished: httpx.QueryBool(r, "published"),
		NewsType:    r.URL.Query().Get("type"),
		SearchQuery: r.URL.Query().Get("q"),
	}
	articles, err := h.uc.ListArticles(r.Context(), filters)
	if err != nil {
		httpx.WriteError(w, h.logger, "list articles", err)
		return
	}
	if articles == nil {
		articles = []model.NewsArticle{}
	}
	httpx.WriteJSON(w, http.StatusOK, articles)
}

func (h *NewsHandler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteArticle(r.Context(), r.PathValue("id")); err != nil {
		httpx.WriteError(w, h.logger, "delete article", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
