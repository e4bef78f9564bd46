package repository

import (
	"context"
	"strings"
	"time"

	"github.com/forgeline/equipment-cms/internal/model"
	"github.com/forgeline/equipment-cms/internal/product/dto"
	"github.com/forgeline/equipment-cms/internal/remote"
	"github.com/google/uuid"
)

const (
	productsTable   = "products"
	mediaTable      = "product_media"
	linksTable      = "product_components"
	componentsTable = "components"
)

var productColumns = []string{
	"id", "slug", "name", "short_description", "description", "price", "currency",
	"price_mode", "category_id", "product_type", "automation_level", "specifications",
	"tags", "weight_kg", "dimensions", "power_consumption", "production_capacity",
	"lead_time", "warranty", "certifications", "status", "is_featured", "is_bestseller",
	"seo_title", "seo_description", "created_at", "updated_at",
}

var mediaColumns = []string{"id", "product_id", "media_type", "url", "alt_text", "sort_order", "is_primary"}

var linkColumns = []string{"id", "product_id", "component_id", "quantity", "is_optional", "notes", "sort_order"}

type PGRepository struct {
	DB *remote.Client
}

func NewPGRepository(db *remote.Client) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product, media []model.ProductMedia, links []model.ProductComponent) error {
	return r.DB.WithTx(ctx, func(tx *remote.Client) error {
		if err := tx.From(productsTable).Select(productColumns...).Insert(ctx, p); err != nil {
			return err
		}
		return replaceChildren(ctx, tx, p.ID, media, links)
	})
}

func (r *PGRepository) Update(ctx context.Context, p *model.Product, media []model.ProductMedia, links []model.ProductComponent, loadedAt time.Time) error {
	return r.DB.WithTx(ctx, func(tx *remote.Client) error {
		if err := tx.UpdateVersioned(ctx, productsTable, p.ID, loadedAt, updateSet(p)); err != nil {
			return err
		}
		return replaceChildren(ctx, tx, p.ID, media, links)
	})
}

// updateSet lists every column Update rewrites; id and created_at never change.
func updateSet(p *model.Product) map[string]interface{} {
	return map[string]interface{}{
		"slug":                p.Slug,
		"name":                p.Name,
		"short_description":   p.ShortDescription,
		"description":         p.Description,
		"price":               p.Price,
		"currency":            p.Currency,
		"price_mode":          p.PriceMode,
		"category_id":         p.CategoryID,
		"product_type":        p.ProductType,
		"automation_level":    p.AutomationLevel,
		"specifications":      p.Specifications,
		"tags":                p.Tags,
		"weight_kg":           p.WeightKg,
		"dimensions":          p.Dimensions,
		"power_consumption":   p.PowerConsumption,
		"production_capacity": p.ProductionCapacity,
		"lead_time":           p.LeadTime,
		"warranty":            p.Warranty,
		"certifications":      p.Certifications,
		"status":              p.Status,
		"is_featured":         p.IsFeatured,
		"is_bestseller":       p.IsBestseller,
		"seo_title":           p.SEOTitle,
		"seo_description":     p.SEODescription,
		"updated_at":          p.UpdatedAt,
	}
}

// replaceChildren makes the stored media and component links equal the given
// lists: one delete of rows that are no longer present, then one bulk upsert of
// the final list in display order. Ids that belong to another product are
// rejected rather than moved.
func replaceChildren(ctx context.Context, tx *remote.Client, productID string, media []model.ProductMedia, links []model.ProductComponent) error {
	mediaIDs := make([]string, len(media))
	for i := range media {
		if media[i].ID == "" {
			media[i].ID = uuid.NewString()
		}
		media[i].ProductID = productID
		media[i].SortOrder = i
		mediaIDs[i] = media[i].ID
	}
	if _, err := tx.From(mediaTable).Eq("product_id", productID).NotIn("id", mediaIDs).Delete(ctx); err != nil {
		return err
	}
	if err := tx.From(mediaTable).Select(mediaColumns...).Owned("product_id").Upsert(ctx, []string{"id"}, media); err != nil {
		return err
	}

	linkIDs := make([]string, len(links))
	for i := range links {
		if links[i].ID == "" {
			links[i].ID = uuid.NewString()
		}
		links[i].ProductID = productID
		links[i].SortOrder = i
		if links[i].Quantity < 1 {
			links[i].Quantity = 1
		}
		linkIDs[i] = links[i].ID
	}
	if _, err := tx.From(linksTable).Eq("product_id", productID).NotIn("id", linkIDs).Delete(ctx); err != nil {
		return err
	}
	return tx.From(linksTable).Select(linkColumns...).Owned("product_id").Upsert(ctx, []string{"id"}, links)
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var p model.Product
	if err := r.DB.From(productsTable).Eq("id", id).One(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PGRepository) FindBySlug(ctx context.Context, slug string) (*model.Product, error) {
	var p model.Product
	if err := r.DB.From(productsTable).Eq("slug", slug).One(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PGRepository) filtered(f *dto.ProductFilters) *remote.Query {
	q := r.DB.From(productsTable)
	if f.Status != "" {
		q = q.Eq("status", f.Status)
	}
	if f.CategoryID != "" {
		q = q.Eq("category_id", f.CategoryID)
	}
	if f.ProductType != "" {
		q = q.Eq("product_type", f.ProductType)
	}
	if f.Featured != nil {
		q = q.Eq("is_featured", *f.Featured)
	}
	if f.Bestseller != nil {
		q = q.Eq("is_bestseller", *f.Bestseller)
	}
	if f.SearchQuery != "" {
		q = q.Search(f.SearchQuery, "name", "short_description", "slug")
	}
	return q
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	count, err := r.filtered(f).Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	// Whitelisted sort columns
	orderBy := "created_at"
	switch f.SortBy {
	case "name":
		orderBy = "name"
	case "price":
		orderBy = "price"
	case "updated_at":
		orderBy = "updated_at"
	}
	asc := strings.EqualFold(f.SortOrder, "asc")
	if f.SortBy == "" {
		asc = false
	}

	var products []model.Product
	q := r.filtered(f).Order(orderBy, asc).Order("id", true)
	if f.PageSize > 0 {
		q = q.Page(f.Page, f.PageSize)
	}
	if err := q.Many(ctx, &products); err != nil {
		return nil, 0, err
	}
	return products, count, nil
}

func (r *PGRepository) FindMedia(ctx context.Context, productID string) ([]model.ProductMedia, error) {
	var media []model.ProductMedia
	err := r.DB.From(mediaTable).Eq("product_id", productID).Order("sort_order", true).Many(ctx, &media)
	return media, err
}

func (r *PGRepository) FindPrimaryMedia(ctx context.Context, productIDs []string) ([]model.ProductMedia, error) {
	var media []model.ProductMedia
	err := r.DB.From(mediaTable).In("product_id", productIDs).Eq("is_primary", true).Many(ctx, &media)
	return media, err
}

// FindComponents loads the links in display order with their components attached.
func (r *PGRepository) FindComponents(ctx context.Context, productID string) ([]model.ProductComponent, error) {
	var links []model.ProductComponent
	if err := r.DB.From(linksTable).Eq("product_id", productID).Order("sort_order", true).Many(ctx, &links); err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return links, nil
	}

	ids := make([]string, len(links))
	for i, l := range links {
		ids[i] = l.ComponentID
	}
	var comps []model.Component
	if err := r.DB.From(componentsTable).In("id", ids).Many(ctx, &comps); err != nil {
		return nil, err
	}
	byID := make(map[string]*model.Component, len(comps))
	for i := range comps {
		byID[comps[i].ID] = &comps[i]
	}
	for i := range links {
		links[i].Component = byID[links[i].ComponentID]
	}
	return links, nil
}

func (r *PGRepository) FindByComponent(ctx context.Context, componentID string) ([]model.Product, error) {
	var links []model.ProductComponent
	if err := r.DB.From(linksTable).Select("id", "product_id", "component_id").Eq("component_id", componentID).Many(ctx, &links); err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return nil, nil
	}
	ids := make([]string, len(links))
	for i, l := range links {
		ids[i] = l.ProductID
	}
	var products []model.Product
	err := r.DB.From(productsTable).In("id", ids).Eq("status", model.StatusPublished).Order("name", true).Many(ctx, &products)
	return products, err
}

// FindRelated returns other published products of the same category.
func (r *PGRepository) FindRelated(ctx context.Context, p *model.Product, limit int) ([]model.Product, error) {
	if p.CategoryID == nil {
		return nil, nil
	}
	var products []model.Product
	err := r.DB.From(productsTable).
		Eq("category_id", *p.CategoryID).
		Eq("status", model.StatusPublished).
		Neq("id", p.ID).
		Order("is_featured", false).
		Order("name", true).
		Limit(limit).
		Many(ctx, &products)
	return products, err
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	n, err := r.DB.From(productsTable).Eq("id", id).Delete(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *PGRepository) IsSlugUnique(ctx context.Context, slug, excludeID string) (bool, error) {
	q := r.DB.From(productsTable).Eq("slug", slug)
	if excludeID != "" {
		q = q.Neq("id", excludeID)
	}
	n, err := q.Count(ctx)
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

func (r *PGRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	out := make(map[string]int, len(model.ProductStatuses))
	for _, s := range model.ProductStatuses {
		n, err := r.DB.From(productsTable).Eq("status", s).Count(ctx)
		if err != nil {
			return nil, err
		}
		out[s] = n
	}
	return out, nil
}
