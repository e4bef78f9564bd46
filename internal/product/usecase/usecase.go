package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/forgeline/equipment-cms/internal/broker"
	"github.com/forgeline/equipment-cms/internal/cache"
	"github.com/forgeline/equipment-cms/internal/logger"
	"github.com/forgeline/equipment-cms/internal/model"
	"github.com/forgeline/equipment-cms/internal/product"
	"github.com/forgeline/equipment-cms/internal/product/dto"
	"github.com/forgeline/equipment-cms/internal/search"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	relatedLimit   = 4
	sideEffectWait = 10 * time.Second

	EventProductSaved   = "ProductSaved"
	EventProductDeleted = "ProductDeleted"
)

const indexMapping = `{
	"mappings": {
		"properties": {
			"slug": { "type": "keyword" },
			"name": { "type": "text" },
			"short_description": { "type": "text" },
			"description": { "type": "text" },
			"tags": { "type": "keyword" },
			"product_type": { "type": "keyword" },
			"category_id": { "type": "keyword" },
			"status": { "type": "keyword" },
			"price": { "type": "double" },
			"created_at": { "type": "date" }
		}
	}
}`

type productUseCase struct {
	repo      product.Repository
	cache     cache.ListCache
	es        *search.Client
	index     string
	publisher broker.Publisher
	logger    logger.ZapLogger
	// async runs side effects that outlive the request.
	async func(func(ctx context.Context))
}

// NewProductUseCase wires the use case. cache and es may be nil; publisher may be
// broker.Nop{}.
func NewProductUseCase(repo product.Repository, lists *cache.Lists, es *search.Client, index string, publisher broker.Publisher, log logger.ZapLogger) product.UseCase {
	uc := &productUseCase{
		repo:      repo,
		cache:     lists,
		es:        es,
		index:     index,
		publisher: publisher,
		logger:    log,
	}
	uc.async = func(fn func(ctx context.Context)) {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), sideEffectWait)
			defer cancel()
			fn(ctx)
		}()
	}
	if es != nil {
		ctx, cancel := context.WithTimeout(context.Background(), sideEffectWait)
		defer cancel()
		if err := es.CreateIndex(ctx, index, indexMapping); err != nil {
			log.Warn("failed to ensure product index", zap.String("index", index), zap.Error(err))
		}
	}
	return uc
}

func (uc *productUseCase) SaveProduct(ctx context.Context, input *dto.SaveProductInput) (*model.Product, error) {
	p := input.Product
	if err := product.Prepare(&p); err != nil {
		return nil, err
	}
	if err := product.CheckLinks(input.Components); err != nil {
		return nil, err
	}

	unique, err := uc.repo.IsSlugUnique(ctx, p.Slug, p.ID)
	if err != nil {
		return nil, err
	}
	if !unique {
		v := model.NewValidationError()
		v.Add("slug", "slug is already used by another product")
		return nil, v
	}

	now := model.Now()
	p.UpdatedAt = now
	media := append([]model.ProductMedia(nil), input.Media...)
	links := append([]model.ProductComponent(nil), input.Components...)

	if p.ID == "" {
		p.ID = uuid.New().String()
		p.CreatedAt = now
		err = uc.repo.Create(ctx, &p, media, links)
	} else {
		err = uc.repo.Update(ctx, &p, media, links, input.LoadedAt)
	}
	if err != nil {
		return nil, err
	}
	p.Media = media
	p.Components = links

	uc.invalidateProductCache(ctx)
	saved := p
	uc.async(func(ctx context.Context) {
		uc.syncToElastic(ctx, &saved)
		uc.publish(ctx, EventProductSaved, &saved)
	})
	return &p, nil
}

func (uc *productUseCase) syncToElastic(ctx context.Context, p *model.Product) {
	if uc.es == nil {
		return
	}
	// Only published products are searchable.
	if !p.IsPublished() {
		if err := uc.es.Delete(ctx, uc.index, p.ID); err != nil {
			uc.logger.Error("failed to remove product from index", zap.String("id", p.ID), zap.Error(err))
		}
		return
	}
	doc := *p
	doc.Components = nil
	if err := uc.es.Index(ctx, uc.index, p.ID, doc); err != nil {
		uc.logger.Error("failed to index product", zap.String("id", p.ID), zap.Error(err))
	}
}

func (uc *productUseCase) invalidateProductCache(ctx context.Context) {
	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.logger.Warn("failed to invalidate product cache", zap.Error(err))
	}
}

func (uc *productUseCase) publish(ctx context.Context, eventType string, p *model.Product) {
	ev, err := broker.NewEvent(eventType, dto.Event{ID: p.ID, Slug: p.Slug, Status: p.Status})
	if err != nil {
		uc.logger.Error("failed to build product event", zap.Error(err))
		return
	}
	if err := uc.publisher.Publish(ctx, p.ID, ev); err != nil {
		uc.logger.Error("failed to publish product event", zap.String("event", eventType), zap.Error(err))
	}
}

// GetProduct returns the product with media and component links for editing.
func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.attachChildren(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (uc *productUseCase) attachChildren(ctx context.Context, p *model.Product) error {
	media, err := uc.repo.FindMedia(ctx, p.ID)
	if err != nil {
		return err
	}
	links, err := uc.repo.FindComponents(ctx, p.ID)
	if err != nil {
		return err
	}
	p.Media = media
	p.Components = links
	return nil
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	if filters.SearchQuery != "" && uc.es != nil {
		products, total, err := uc.searchElastic(ctx, filters)
		if err == nil {
			return products, total, nil
		}
		// If ES fails, fall through to DB
		uc.logger.Error("ES search failed, falling back to DB", zap.Error(err))
	}
	return uc.repo.FindAll(ctx, filters)
}

func (uc *productUseCase) searchElastic(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	filters := map[string]interface{}{}
	if f.Status != "" {
		filters["status"] = f.Status
	}
	if f.CategoryID != "" {
		filters["category_id"] = f.CategoryID
	}
	if f.ProductType != "" {
		filters["product_type"] = f.ProductType
	}
	page := f.Page
	if page < 1 {
		page = 1
	}
	q := search.MatchQuery(f.SearchQuery, []string{"name^3", "short_description^2", "description", "tags"}, filters, (page-1)*f.PageSize, f.PageSize)

	res, err := uc.es.Search(ctx, uc.index, q)
	if err != nil {
		return nil, 0, err
	}
	products := make([]model.Product, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var p model.Product
		if err := json.Unmarshal(hit.Source, &p); err != nil {
			uc.logger.Warn("skipping undecodable search hit", zap.String("id", hit.ID), zap.Error(err))
			continue
		}
		products = append(products, p)
	}
	return products, res.Hits.Total.Value, nil
}

// ListPublished returns every published product with its primary image,
// cached until the next product write.
func (uc *productUseCase) ListPublished(ctx context.Context) ([]model.Product, error) {
	filters := &dto.ProductFilters{Status: model.StatusPublished, SortBy: "name", SortOrder: "asc"}

	var cached []model.Product
	if hit, err := uc.cache.Get(ctx, filters, &cached); err != nil {
		uc.logger.Warn("product cache read failed", zap.Error(err))
	} else if hit {
		return cached, nil
	}

	products, _, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, err
	}
	if err := uc.attachPrimaryImages(ctx, products); err != nil {
		return nil, err
	}

	if err := uc.cache.Set(ctx, filters, products); err != nil {
		uc.logger.Warn("product cache write failed", zap.Error(err))
	}
	return products, nil
}

func (uc *productUseCase) attachPrimaryImages(ctx context.Context, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	media, err := uc.repo.FindPrimaryMedia(ctx, ids)
	if err != nil {
		return err
	}
	byProduct := make(map[string]model.ProductMedia, len(media))
	for _, m := range media {
		byProduct[m.ProductID] = m
	}
	for i := range products {
		if m, ok := byProduct[products[i].ID]; ok {
			products[i].Media = []model.ProductMedia{m}
		}
	}
	return nil
}

func (uc *productUseCase) GetPublished(ctx context.Context, slug string) (*dto.ProductDetail, error) {
	p, err := uc.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !p.IsPublished() {
		return nil, model.ErrNotFound
	}
	if err := uc.attachChildren(ctx, p); err != nil {
		return nil, err
	}

	related, err := uc.repo.FindRelated(ctx, p, relatedLimit)
	if err != nil {
		// The page still renders without related products.
		uc.logger.Warn("failed to load related products", zap.String("slug", slug), zap.Error(err))
		related = nil
	}
	if err := uc.attachPrimaryImages(ctx, related); err != nil {
		uc.logger.Warn("failed to load related images", zap.Error(err))
	}
	return &dto.ProductDetail{Product: p, Related: related}, nil
}

func (uc *productUseCase) ListUsingComponent(ctx context.Context, componentID string) ([]model.Product, error) {
	products, err := uc.repo.FindByComponent(ctx, componentID)
	if err != nil {
		return nil, err
	}
	if err := uc.attachPrimaryImages(ctx, products); err != nil {
		return nil, err
	}
	return products, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id string) error {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.invalidateProductCache(ctx)
	deleted := *p
	uc.async(func(ctx context.Context) {
		if uc.es != nil {
			if err := uc.es.Delete(ctx, uc.index, id); err != nil {
				uc.logger.Error("failed to delete product from ES", zap.Error(err))
			}
		}
		uc.publish(ctx, EventProductDeleted, &deleted)
	})
	return nil
}

func (uc *productUseCase) CountByStatus(ctx context.Context) (map[string]int, error) {
	return uc.repo.CountByStatus(ctx)
}
