package category

import (
	"context"
	"time"

	"github.com/forgeline/equipment-cms/internal/category/dto"
	"github.com/forgeline/equipment-cms/internal/model"
)

type Repository interface {
	Create(ctx context.Context, category *model.Category) error
	Update(ctx context.Context, category *model.Category, loadedAt time.Time) error
	FindByID(ctx context.Context, id string) (*model.Category, error)
	FindBySlug(ctx context.Context, slug string) (*model.Category, error)
	FindAll(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, error)
	CountChildren(ctx context.Context, id string) (int, error)
	IsSlugUnique(ctx context.Context, slug, excludeID string) (bool, error)
	Delete(ctx context.Context, id string) error
}
