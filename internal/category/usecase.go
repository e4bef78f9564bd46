package category

import (
	"context"

	"github.com/forgeline/equipment-cms/internal/category/dto"
	"github.com/forgeline/equipment-cms/internal/model"
)

type UseCase interface {
	SaveCategory(ctx context.Context, input *dto.SaveCategoryInput) (*model.Category, error)
	GetCategory(ctx context.Context, id string) (*model.Category, error)
	ListCategories(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}
