package news

import (
	"context"
	"time"

	"github.com/forgeline/equipment-cms/internal/model"
	"github.com/forgeline/equipment-cms/internal/news/dto"
)

type Repository interface {
	Create(ctx context.Context, n *model.NewsArticle) error
	Update(ctx context.Context, n *model.NewsArticle, loadedAt time.Time) error
	FindByID(ctx context.Context, id string) (*model.NewsArticle, error)
	FindBySlug(ctx context.Context, slug string) (*model.NewsArticle, error)
	FindAll(ctx context.Context, filters *dto.NewsFilters) ([]model.NewsArticle, error)
	IsSlugUnique(ctx context.Context, slug, excludeID string) (bool, error)
	Delete(ctx context.Context, id string) error
	CountPublished(ctx context.Context) (int, error)
}
