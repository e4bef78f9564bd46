package site

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	catdto "github.com/forgeline/equipment-cms/internal/category/dto"
	"github.com/forgeline/equipment-cms/internal/model"
	newsdto "github.com/forgeline/equipment-cms/internal/news/dto"
	productdto "github.com/forgeline/equipment-cms/internal/product/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeProducts struct {
	items []model.Product
	err   error
}

func (f *fakeProducts) ListPublished(ctx context.Context) ([]model.Product, error) {
	return f.items, f.err
}

func (f *fakeProducts) GetPublished(ctx context.Context, slug string) (*productdto.ProductDetail, error) {
	for i := range f.items {
		if f.items[i].Slug == slug {
			return &productdto.ProductDetail{Product: &f.items[i]}, nil
		}
	}
	return nil, model.ErrNotFound
}

func (f *fakeProducts) ListUsingComponent(ctx context.Context, componentID string) ([]model.Product, error) {
	return f.items, nil
}

type fakeComponents struct{ items []model.Component }

func (f *fakeComponents) ListActive(ctx context.Context) ([]model.Component, error) {
	return f.items, nil
}

func (f *fakeComponents) GetActive(ctx context.Context, id string) (*model.Component, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			return &f.items[i], nil
		}
	}
	return nil, model.ErrNotFound
}

type fakeNews struct{ items []model.NewsArticle }

func (f *fakeNews) ListPublished(ctx context.Context) ([]model.NewsArticle, error) {
	return f.items, nil
}

func (f *fakeNews) GetPublished(ctx context.Context, ref string) (*newsdto.ArticlePage, error) {
	for i := range f.items {
		if f.items[i].Slug == ref {
			return &newsdto.ArticlePage{Article: &f.items[i], HTML: "<p>rendered body</p>"}, nil
		}
	}
	return nil, model.ErrNotFound
}

type fakeCategories struct{ filters *catdto.CategoryFilters }

func (f *fakeCategories) ListCategories(ctx context.Context, filters *catdto.CategoryFilters) ([]model.Category, error) {
	f.filters = filters
	return []model.Category{{BaseModel: model.BaseModel{ID: "c1"}, Name: "Mixers"}}, nil
}

func newSite(t *testing.T, products *fakeProducts) (*http.ServeMux, *fakeCategories) {
	t.Helper()
	content, err := LoadContent("")
	require.NoError(t, err)

	cats := &fakeCategories{}
	s, err := New(content, products,
		&fakeComponents{items: []model.Component{{BaseModel: model.BaseModel{ID: "m1"}, Name: "Servo Drive", ComponentType: "drive"}}},
		&fakeNews{items: []model.NewsArticle{{Slug: "new-plant", Title: "New plant opened", NewsType: "news"}}},
		cats, zaptest.NewLogger(t))
	require.NoError(t, err)

	mux := http.NewServeMux()
	s.Register(mux)
	return mux, cats
}

func get(mux http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func sampleCatalog() *fakeProducts {
	price := 12000.0
	return &fakeProducts{items: []model.Product{
		{Slug: "industrial-mixer-x", Name: "Industrial Mixer X", ProductType: model.ProductTypeMachine, Price: &price, Currency: "EUR", IsFeatured: true},
		{Slug: "bottling-line", Name: "Bottling Line", ProductType: model.ProductTypeProductionLine},
	}}
}

func TestHome_ShowsFeaturedAndNews(t *testing.T) {
	mux, _ := newSite(t, sampleCatalog())

	rec := get(mux, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	body := rec.Body.String()
	assert.Contains(t, body, "Forgeline Industrial")
	assert.Contains(t, body, "Industrial Mixer X")
	assert.Contains(t, body, "New plant opened")
}

func TestProductList_FiltersByType(t *testing.T) {
	mux, cats := newSite(t, sampleCatalog())

	rec := get(mux, "/products?type=production_line")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Bottling Line")
	assert.NotContains(t, body, "Industrial Mixer X")
	require.NotNil(t, cats.filters)
	assert.True(t, cats.filters.Tree)
	assert.True(t, *cats.filters.IsActive)
}

func TestProductDetail(t *testing.T) {
	mux, _ := newSite(t, sampleCatalog())

	rec := get(mux, "/products/industrial-mixer-x")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Quote request: Industrial Mixer X")

	rec = get(mux, "/products/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found")
}

func TestListFailureRendersErrorPage(t *testing.T) {
	mux, _ := newSite(t, &fakeProducts{err: errors.New("db down")})

	rec := get(mux, "/products")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Something went wrong")
	assert.NotContains(t, rec.Body.String(), "db down")
}

func TestComponentAndNewsPages(t *testing.T) {
	mux, _ := newSite(t, sampleCatalog())

	rec := get(mux, "/components/m1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Servo Drive")

	rec = get(mux, "/news/new-plant")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<p>rendered body</p>")

	assert.Equal(t, http.StatusNotFound, get(mux, "/components/nope").Code)
}

func TestInquiryNotice(t *testing.T) {
	mux, _ := newSite(t, sampleCatalog())

	rec := get(mux, "/about?inquiry=sent")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "your inquiry has been received")
}

func TestLoadContent_OverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	require.NoError(t, os.WriteFile(path, []byte("company:\n  name: Acme Presses\n"), 0o600))

	c, err := LoadContent(path)

	require.NoError(t, err)
	assert.Equal(t, "Acme Presses", c.Company.Name)
	assert.NotEmpty(t, c.Hero.Title)
}

func TestLoadContent_MissingFile(t *testing.T) {
	_, err := LoadContent(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
