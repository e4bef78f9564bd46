package handler

import (
	"net/http"

	"github.com/forgeline/equipment-cms/internal/httpx"
	"github.com/forgeline/equipment-cms/internal/logger"
	"github.com/forgeline/equipment-cms/internal/model"
	"github.com/forgeline/equipment-cms/internal/product"
	"github.com/forgeline/equipment-cms/internal/product/dto"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

// Register mounts the admin product API on mux.
func (h *ProductHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /admin/api/products", h.ListProducts)
	mux.HandleFunc("POST /admin/api/products", h.CreateProduct)
	mux.HandleFunc("GET /admin/api/products/{id}", h.GetProduct)
	mux.HandleFunc("PUT /admin/api/products/{id}", h.UpdateProduct)
	mux.HandleFunc("DELETE /admin/api/products/{id}", h.DeleteProduct)
}

func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var input dto.SaveProductInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.WriteError(w, h.logger, "decode product", err)
		return
	}
	input.Product.ID = ""

	p, err := h.uc.SaveProduct(r.Context(), &input)
	if err != nil {
		httpx.WriteError(w, h.logger, "create product", err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, p)
}

func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var input dto.SaveProductInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.WriteError(w, h.logger, "decode product", err)
		return
	}
	input.Product.ID = r.PathValue("id")

	p, err := h.uc.SaveProduct(r.Context(), &input)
	if err != nil {
		httpx.WriteError(w, h.logger, "update product", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.uc.GetProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		httpx.WriteError(w, h.logger, "get product", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := &dto.ProductFilters{
		Status:      q.Get("status"),
		CategoryID:  q.Get("category_id"),
		ProductType: q.Get("product_type"),
		Featured:    httpx.QueryBool(r, "featured"),
		Bestseller:  httpx.QueryBool(r, "bestseller"),
		SearchQuery: q.Get("q"),
		SortBy:      q.Get("sort"),
		SortOrder:   q.Get("order"),
		Page:        httpx.QueryInt(r, "page", 1),
		PageSize:    httpx.QueryInt(r, "page_size", defaultPageSize),
	}
	if filters.Status != "" && !model.OneOf(filters.Status, model.ProductStatuses) {
		httpx.WriteStatus(w, http.StatusBadRequest, "unknown status filter")
		return
	}
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 || filters.PageSize > maxPageSize {
		filters.PageSize = defaultPageSize
	}

	products, total, err := h.uc.ListProducts(r.Context(), filters)
	if err != nil {
		httpx.WriteError(w, h.logger, "list products", err)
		return
	}
	if products == nil {
		products = []model.Product{}
	}
	httpx.WriteJSON(w, http.StatusOK, httpx.Page[model.Product]{
		Items:    products,
		Total:    total,
		Page:     filters.Page,
		PageSize: filters.PageSize,
	})
}

func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteProduct(r.Context(), r.PathValue("id")); err != nil {
		httpx.WriteError(w, h.logger, "delete product", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
