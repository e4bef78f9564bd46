package repository

import (
	"context"
	"time"

	"github.com/forgeline/equipment-cms/internal/model"
	"github.com/forgeline/equipment-cms/internal/news/dto"
	"github.com/forgeline/equipment-cms/internal/remote"
)

const newsTable = "news_articles"

var newsColumns = []string{
	"id", "title", "slug", "content", "excerpt", "news_type", "tags", "image_url", "gallery",
	"is_published", "published_at", "seo_title", "seo_description", "created_at", "updated_at",
}

type PGRepository struct {
	DB *remote.Client
}

func NewPGRepository(db *remote.Client) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, n *model.NewsArticle) error {
	return r.DB.From(newsTable).Select(newsColumns...).Insert(ctx, n)
}

func (r *PGRepository) Update(ctx context.Context, n *model.NewsArticle, loadedAt time.Time) error {
	return r.DB.UpdateVersioned(ctx, newsTable, n.ID, loadedAt, map[string]interface{}{
		"title":           n.Title,
		"slug":            n.Slug,
		"content":         n.Content,
		"excerpt":         n.Excerpt,
		"news_type":       n.NewsType,
		"tags":            n.Tags,
		"image_url":       n.ImageURL,
		"gallery":         n.Gallery,
		"is_published":    n.IsPublished,
		"published_at":    n.PublishedAt,
		"seo_title":       n.SEOTitle,
		"seo_description": n.SEODescription,
		"updated_at":      n.UpdatedAt,
	})
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.NewsArticle, error) {
	var n model.NewsArticle
	if err := r.DB.From(newsTable).Eq("id", id).One(ctx, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *PGRepository) FindBySlug(ctx context.Context, slug string) (*model.NewsArticle, error) {
	var n model.NewsArticle
	if err := r.DB.From(newsTable).Eq("slug", slug).One(ctx, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.NewsFilters) ([]model.NewsArticle, error) {
	q := r.DB.From(newsTable)
	if f.IsPublished != nil {
		q = q.Eq("is_published", *f.IsPublished)
	}
	if f.NewsType != "" {
		q = q.Eq("news_type", f.NewsType)
	}
	if f.SearchQuery != "" {
		q = q.Search(f.SearchQuery, "title", "excerpt")
	}

	var articles []model.NewsArticle
	err := q.Order("published_at", false).Order("created_at", false).Many(ctx, &articles)
	return articles, err
}

func (r *PGRepository) IsSlugUnique(ctx context.Context, slug, excludeID string) (bool, error) {
	q := r.DB.From(newsTable).Eq("slug", slug)
	if excludeID != "" {
		q = q.Neq("id", excludeID)
	}
	n, err := q.Count(ctx)
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	n, err := r.DB.From(newsTable).Eq("id", id).Delete(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *PGRepository) CountPublished(ctx context.Context) (int, error) {
	return r.DB.From(newsTable).Eq("is_published", true).Count(ctx)
}
