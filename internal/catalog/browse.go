// Package catalog filters and sorts already-fetched collections for the public
// browse views. Everything happens in memory on the caller's slice copy.
package catalog

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/forgeline/equipment-cms/internal/model"
)

const (
	SortName         = "name"
	SortNameDesc     = "name_desc"
	SortPriceAsc     = "price_asc"
	SortPriceDesc    = "price_desc"
	SortNewest       = "newest"
	SortOldest       = "oldest"
	SortManufacturer = "manufacturer"
	SortType         = "type"
)

// Apply keeps the items matching term (in any of fields) and keep, then stably
// sorts them with less. A nil less keeps fetch order. The input is not modified.
func Apply[T any](items []T, term string, fields func(T) []string, keep func(T) bool, less func(a, b T) int) []T {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep != nil && !keep(it) {
			continue
		}
		if term != "" && !matches(term, fields(it)) {
			continue
		}
		out = append(out, it)
	}
	if less != nil {
		slices.SortStableFunc(out, less)
	}
	return out
}

func matches(term string, fields []string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func byText(a, b string) int {
	return cmp.Compare(strings.ToLower(a), strings.ToLower(b))
}

func byTime(a, b time.Time) int {
	return a.Compare(b)
}

type ProductQuery struct {
	Term        string `json:"q"`
	CategoryID  string `json:"category"`
	ProductType string `json:"type"`
	Sort        string `json:"sort"`
}

// Products searches name, short description, description and tags.
func Products(items []model.Product, q ProductQuery) []model.Product {
	keep := func(p model.Product) bool {
		if q.CategoryID != "" && model.Deref(p.CategoryID) != q.CategoryID {
			return false
		}
		if q.ProductType != "" && p.ProductType != q.ProductType {
			return false
		}
		return true
	}
	fields := func(p model.Product) []string {
		return []string{p.Name, p.ShortDescription, p.Description, strings.Join(p.Tags, " ")}
	}
	return Apply(items, q.Term, fields, keep, productOrder(q.Sort))
}

func productOrder(sort string) func(a, b model.Product) int {
	switch sort {
	case SortName:
		return func(a, b model.Product) int { return byText(a.Name, b.Name) }
	case SortNameDesc:
		return func(a, b model.Product) int { return byText(b.Name, a.Name) }
	case SortPriceAsc:
		return func(a, b model.Product) int { return comparePrice(a.Price, b.Price, false) }
	case SortPriceDesc:
		return func(a, b model.Product) int { return comparePrice(a.Price, b.Price, true) }
	case SortNewest:
		return func(a, b model.Product) int { return byTime(b.CreatedAt, a.CreatedAt) }
	case SortOldest:
		return func(a, b model.Product) int { return byTime(a.CreatedAt, b.CreatedAt) }
	case SortType:
		return func(a, b model.Product) int { return byText(a.ProductType, b.ProductType) }
	}
	return nil
}

// comparePrice sorts products without a price ("on request") last in both directions.
func comparePrice(a, b *float64, desc bool) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case desc:
		return cmp.Compare(*b, *a)
	default:
		return cmp.Compare(*a, *b)
	}
}

type ComponentQuery struct {
	Term          string `json:"q"`
	ComponentType string `json:"type"`
	Sort          string `json:"sort"`
}

// Components searches name, description, type and manufacturer.
func Components(items []model.Component, q ComponentQuery) []model.Component {
	keep := func(c model.Component) bool {
		return q.ComponentType == "" || c.ComponentType == q.ComponentType
	}
	fields := func(c model.Component) []string {
		return []string{c.Name, c.Description, c.ComponentType, c.Manufacturer}
	}
	var less func(a, b model.Component) int
	switch q.Sort {
	case SortName:
		less = func(a, b model.Component) int { return byText(a.Name, b.Name) }
	case SortNameDesc:
		less = func(a, b model.Component) int { return byText(b.Name, a.Name) }
	case SortManufacturer:
		less = func(a, b model.Component) int { return byText(a.Manufacturer, b.Manufacturer) }
	case SortType:
		less = func(a, b model.Component) int { return byText(a.ComponentType, b.ComponentType) }
	case SortNewest:
		less = func(a, b model.Component) int { return byTime(b.CreatedAt, a.CreatedAt) }
	}
	return Apply(items, q.Term, fields, keep, less)
}

type NewsQuery struct {
	Term     string `json:"q"`
	NewsType string `json:"type"`
	Sort     string `json:"sort"`
}

// News searches title, excerpt and tags. The default order is newest first.
func News(items []model.NewsArticle, q NewsQuery) []model.NewsArticle {
	keep := func(n model.NewsArticle) bool {
		return q.NewsType == "" || n.NewsType == q.NewsType
	}
	fields := func(n model.NewsArticle) []string {
		return []string{n.Title, n.Excerpt, strings.Join(n.Tags, " ")}
	}
	less := func(a, b model.NewsArticle) int { return byTime(publishedAt(b), publishedAt(a)) }
	switch q.Sort {
	case SortOldest:
		less = func(a, b model.NewsArticle) int { return byTime(publishedAt(a), publishedAt(b)) }
	case SortName:
		less = func(a, b model.NewsArticle) int { return byText(a.Title, b.Title) }
	}
	return Apply(items, q.Term, fields, keep, less)
}

func publishedAt(n model.NewsArticle) time.Time {
	if n.PublishedAt != nil {
		return *n.PublishedAt
	}
	return n.CreatedAt
}
