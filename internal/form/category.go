package form

import (
	"context"

	"github.com/forgeline/equipment-cms/internal/category"
	"github.com/forgeline/equipment-cms/internal/category/dto"
	"github.com/forgeline/equipment-cms/internal/model"
	"golang.org/x/sync/errgroup"
)

type CategoryService interface {
	GetCategory(ctx context.Context, id string) (*model.Category, error)
	ListCategories(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, error)
	SaveCategory(ctx context.Context, input *dto.SaveCategoryInput) (*model.Category, error)
}

type CategoryForm struct {
	lifecycle

	categories CategoryService

	Category model.Category
	// Parents are the top-level categories this one may be nested under.
	Parents []model.Category
}

func NewCategoryForm(categories CategoryService) *CategoryForm {
	return &CategoryForm{categories: categories}
}

func (f *CategoryForm) Load(ctx context.Context, id string) error {
	f.state = Loading

	var (
		c    *model.Category
		flat []model.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	if id != "" {
		g.Go(func() error {
			var err error
			c, err = f.categories.GetCategory(gctx, id)
			return err
		})
	}
	g.Go(func() error {
		var err error
		flat, err = f.categories.ListCategories(gctx, &dto.CategoryFilters{})
		return err
	})
	if err := g.Wait(); err != nil {
		return f.loaded(err, f.loadedAt)
	}

	if c == nil {
		c = &model.Category{IsActive: true}
	}
	f.Category = *c
	f.Parents = f.Parents[:0]
	for _, p := range flat {
		if p.ParentID == nil && p.ID != c.ID {
			f.Parents = append(f.Parents, p)
		}
	}
	return f.loaded(nil, c.UpdatedAt)
}

func (f *CategoryForm) Submit(ctx context.Context) (*model.Category, error) {
	if err := f.begin(); err != nil {
		return nil, err
	}

	c := f.Category
	if err := category.Prepare(&c); err != nil {
		return nil, f.finish(err, f.loadedAt)
	}
	f.Category.Slug = c.Slug

	saved, err := f.categories.SaveCategory(ctx, &dto.SaveCategoryInput{Category: c, LoadedAt: f.loadedAt})
	if err != nil {
		return nil, f.finish(err, f.loadedAt)
	}
	f.Category = *saved
	return saved, f.finish(nil, saved.UpdatedAt)
}
