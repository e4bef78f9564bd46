// Package site renders the public marketing pages.
package site

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"net/http"
	"slices"

	"github.com/forgeline/equipment-cms/internal/catalog"
	catdto "github.com/forgeline/equipment-cms/internal/category/dto"
	"github.com/forgeline/equipment-cms/internal/logger"
	"github.com/forgeline/equipment-cms/internal/model"
	newsdto "github.com/forgeline/equipment-cms/internal/news/dto"
	productdto "github.com/forgeline/equipment-cms/internal/product/dto"
	"go.uber.org/zap"
)

const (
	homeProducts = 4
	homeNews     = 3
)

type Products interface {
	ListPublished(ctx context.Context) ([]model.Product, error)
	GetPublished(ctx context.Context, slug string) (*productdto.ProductDetail, error)
	ListUsingComponent(ctx context.Context, componentID string) ([]model.Product, error)
}

type Components interface {
	ListActive(ctx context.Context) ([]model.Component, error)
	GetActive(ctx context.Context, id string) (*model.Component, error)
}

type News interface {
	ListPublished(ctx context.Context) ([]model.NewsArticle, error)
	GetPublished(ctx context.Context, ref string) (*newsdto.ArticlePage, error)
}

type Categories interface {
	ListCategories(ctx context.Context, filters *catdto.CategoryFilters) ([]model.Category, error)
}

type Site struct {
	content    *Content
	pages      map[string]*template.Template
	products   Products
	components Components
	news       News
	categories Categories
	logger     logger.ZapLogger
}

func New(content *Content, products Products, components Components, news News, categories Categories, log logger.ZapLogger) (*Site, error) {
	pages, err := parsePages()
	if err != nil {
		return nil, err
	}
	return &Site{
		content:    content,
		pages:      pages,
		products:   products,
		components: components,
		news:       news,
		categories: categories,
		logger:     log,
	}, nil
}

func (s *Site) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", s.Home)
	mux.HandleFunc("GET /about", s.About)
	mux.HandleFunc("GET /products", s.ProductList)
	mux.HandleFunc("GET /products/{slug}", s.ProductDetail)
	mux.HandleFunc("GET /components", s.ComponentList)
	mux.HandleFunc("GET /components/{id}", s.ComponentDetail)
	mux.HandleFunc("GET /news", s.NewsList)
	mux.HandleFunc("GET /news/{id}", s.NewsDetail)
	mux.HandleFunc("GET /auth", s.Auth)
}

// inquiryForm prefills the contact form embedded in a page.
type inquiryForm struct {
	Path      string
	ProductID string
	Subject   string
}

type view struct {
	Site        *Content
	Description string
	Inquiry     string
	Form        inquiryForm
	Page        interface{}
}

func (s *Site) render(w http.ResponseWriter, r *http.Request, status int, name string, v view) {
	v.Site = s.content
	v.Inquiry = r.URL.Query().Get("inquiry")
	if v.Form.Path == "" {
		v.Form.Path = r.URL.Path
	}

	var buf bytes.Buffer
	if err := s.pages[name].ExecuteTemplate(&buf, "layout", v); err != nil {
		s.logger.Error("failed to render page", zap.String("page", name), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

type errorPage struct {
	Title   string
	Message string
}

// fail renders the not-found page for ErrNotFound and a generic error page otherwise.
func (s *Site) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, model.ErrNotFound) {
		s.render(w, r, http.StatusNotFound, "error", view{Page: errorPage{
			Title: "Page not found", Message: "The page you are looking for does not exist or is no longer available.",
		}})
		return
	}
	s.logger.Error("failed to "+op, zap.String("path", r.URL.Path), zap.Error(err))
	s.render(w, r, http.StatusInternalServerError, "error", view{Page: errorPage{
		Title: "Something went wrong", Message: "Please try again in a moment.",
	}})
}

type homePage struct {
	Featured    []model.Product
	Bestsellers []model.Product
	News        []model.NewsArticle
}

func (s *Site) Home(w http.ResponseWriter, r *http.Request) {
	products, err := s.products.ListPublished(r.Context())
	if err != nil {
		s.fail(w, r, "load home products", err)
		return
	}
	articles, err := s.news.ListPublished(r.Context())
	if err != nil {
		s.fail(w, r, "load home news", err)
		return
	}

	page := homePage{News: firstN(catalog.News(articles, catalog.NewsQuery{}), homeNews)}
	for _, p := range products {
		if p.IsFeatured && len(page.Featured) < homeProducts {
			page.Featured = append(page.Featured, p)
		}
		if p.IsBestseller && len(page.Bestsellers) < homeProducts {
			page.Bestsellers = append(page.Bestsellers, p)
		}
	}
	s.render(w, r, http.StatusOK, "home", view{Description: s.content.Company.Tagline, Page: page})
}

func firstN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func (s *Site) About(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "about", view{Description: s.content.About.Intro})
}

func (s *Site) Auth(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "auth", view{})
}

type sortOption struct {
	Value string
	Label string
}

var productSorts = []sortOption{
	{catalog.SortName, "Name A-Z"},
	{catalog.SortNameDesc, "Name Z-A"},
	{catalog.SortPriceAsc, "Price, low to high"},
	{catalog.SortPriceDesc, "Price, high to low"},
	{catalog.SortNewest, "Newest"},
}

type productsPage struct {
	Query      catalog.ProductQuery
	Products   []model.Product
	Categories []model.Category
	Types      []string
	Sorts      []sortOption
}

func (s *Site) ProductList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := catalog.ProductQuery{
		Term:        q.Get("q"),
		CategoryID:  q.Get("category"),
		ProductType: q.Get("type"),
		Sort:        q.Get("sort"),
	}
	if query.Sort == "" {
		query.Sort = catalog.SortName
	}

	products, err := s.products.ListPublished(r.Context())
	if err != nil {
		s.fail(w, r, "list products", err)
		return
	}
	active := true
	categories, err := s.categories.ListCategories(r.Context(), &catdto.CategoryFilters{IsActive: &active, Tree: true})
	if err != nil {
		s.fail(w, r, "list categories", err)
		return
	}

	s.render(w, r, http.StatusOK, "products", view{Page: productsPage{
		Query:      query,
		Products:   catalog.Products(products, query),
		Categories: categories,
		Types:      model.ProductTypes,
		Sorts:      productSorts,
	}})
}

func (s *Site) ProductDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := s.products.GetPublished(r.Context(), r.PathValue("slug"))
	if err != nil {
		s.fail(w, r, "load product", err)
		return
	}
	p := detail.Product
	s.render(w, r, http.StatusOK, "product", view{
		Description: firstNonEmpty(p.SEODescription, p.ShortDescription),
		Form:        inquiryForm{ProductID: p.ID, Subject: "Quote request: " + p.Name},
		Page:        detail,
	})
}

type componentsPage struct {
	Query      catalog.ComponentQuery
	Components []model.Component
	Types      []string
}

func (s *Site) ComponentList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := catalog.ComponentQuery{Term: q.Get("q"), ComponentType: q.Get("type"), Sort: q.Get("sort")}
	if query.Sort == "" {
		query.Sort = catalog.SortName
	}

	comps, err := s.components.ListActive(r.Context())
	if err != nil {
		s.fail(w, r, "list components", err)
		return
	}
	var types []string
	for _, c := range comps {
		if c.ComponentType != "" && !slices.Contains(types, c.ComponentType) {
			types = append(types, c.ComponentType)
		}
	}
	slices.Sort(types)

	s.render(w, r, http.StatusOK, "components", view{Page: componentsPage{
		Query:      query,
		Components: catalog.Components(comps, query),
		Types:      types,
	}})
}

type componentPage struct {
	Component *model.Component
	Products  []model.Product
}

func (s *Site) ComponentDetail(w http.ResponseWriter, r *http.Request) {
	c, err := s.components.GetActive(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, "load component", err)
		return
	}
	products, err := s.products.ListUsingComponent(r.Context(), c.ID)
	if err != nil {
		s.fail(w, r, "list products using component", err)
		return
	}
	s.render(w, r, http.StatusOK, "component", view{
		Description: c.Description,
		Page:        componentPage{Component: c, Products: products},
	})
}

type newsPage struct {
	Query    catalog.NewsQuery
	Articles []model.NewsArticle
	Types    []string
}

func (s *Site) NewsList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := catalog.NewsQuery{Term: q.Get("q"), NewsType: q.Get("type"), Sort: q.Get("sort")}

	articles, err := s.news.ListPublished(r.Context())
	if err != nil {
		s.fail(w, r, "list news", err)
		return
	}
	s.render(w, r, http.StatusOK, "news", view{Page: newsPage{
		Query:    query,
		Articles: catalog.News(articles, query),
		Types:    model.NewsTypes,
	}})
}

func (s *Site) NewsDetail(w http.ResponseWriter, r *http.Request) {
	page, err := s.news.GetPublished(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, "load article", err)
		return
	}
	n := page.Article
	s.render(w, r, http.StatusOK, "article", view{
		Description: firstNonEmpty(n.SEODescription, n.Excerpt),
		Page:        page,
	})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
