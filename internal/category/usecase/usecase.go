package usecase

import (
	"context"

	"github.com/forgeline/equipment-cms/internal/cache"
	"github.com/forgeline/equipment-cms/internal/category"
	"github.com/forgeline/equipment-cms/internal/category/dto"
	"github.com/forgeline/equipment-cms/internal/logger"
	"github.com/forgeline/equipment-cms/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type categoryUseCase struct {
	repo     category.Repository
	products cache.Invalidator
	logger   logger.ZapLogger
}

// NewCategoryUseCase wires the use case. products is the product list cache,
// dropped on every category write since cached products carry category data.
func NewCategoryUseCase(repo category.Repository, products cache.Invalidator, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:     repo,
		products: products,
		logger:   log,
	}
}

func (uc *categoryUseCase) SaveCategory(ctx context.Context, input *dto.SaveCategoryInput) (*model.Category, error) {
	c := input.Category
	if err := category.Prepare(&c); err != nil {
		return nil, err
	}

	v := model.NewValidationError()
	// Categories nest one level deep: the parent must itself be a root.
	if c.ParentID != nil {
		parent, err := uc.repo.FindByID(ctx, *c.ParentID)
		switch {
		case model.IsNotFound(err):
			v.Add("parent_id", "parent category does not exist")
		case err != nil:
			return nil, err
		case parent.ParentID != nil:
			v.Add("parent_id", "parent must be a top-level category")
		}
		if c.ID != "" && v.Fields["parent_id"] == "" {
			children, err := uc.repo.CountChildren(ctx, c.ID)
			if err != nil {
				return nil, err
			}
			if children > 0 {
				v.Add("parent_id", "a category with subcategories cannot be nested")
			}
		}
	}

	unique, err := uc.repo.IsSlugUnique(ctx, c.Slug, c.ID)
	if err != nil {
		return nil, err
	}
	if !unique {
		v.Add("slug", "slug is already used by another category")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	now := model.Now()
	c.UpdatedAt = now
	if c.ID == "" {
		c.ID = uuid.New().String()
		c.CreatedAt = now
		err = uc.repo.Create(ctx, &c)
	} else {
		err = uc.repo.Update(ctx, &c, input.LoadedAt)
	}
	if err != nil {
		return nil, err
	}

	uc.invalidateProducts(ctx)
	uc.logger.Info("category saved", zap.String("id", c.ID), zap.String("slug", c.Slug))
	return &c, nil
}

func (uc *categoryUseCase) invalidateProducts(ctx context.Context) {
	if uc.products == nil {
		return
	}
	if err := uc.products.Invalidate(ctx); err != nil {
		uc.logger.Warn("failed to invalidate product cache", zap.Error(err))
	}
}

func (uc *categoryUseCase) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *categoryUseCase) ListCategories(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, error) {
	categories, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, err
	}
	if filters.Tree {
		return model.BuildCategoryTree(categories), nil
	}
	return categories, nil
}

// DeleteCategory removes a category. Subcategories and products keep existing
// with their parent reference cleared by the database.
func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidateProducts(ctx)
	return nil
}
