package repository

import (
	"context"
	"time"

	"github.com/forgeline/equipment-cms/internal/category/dto"
	"github.com/forgeline/equipment-cms/internal/model"
	"github.com/forgeline/equipment-cms/internal/remote"
)

const categoriesTable = "categories"

var categoryColumns = []string{"id", "parent_id", "name", "slug", "description", "sort_order", "is_active", "created_at", "updated_at"}

type PGRepository struct {
	DB *remote.Client
}

func NewPGRepository(db *remote.Client) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, c *model.Category) error {
	return r.DB.From(categoriesTable).Select(categoryColumns...).Insert(ctx, c)
}

func (r *PGRepository) Update(ctx context.Context, c *model.Category, loadedAt time.Time) error {
	return r.DB.UpdateVersioned(ctx, categoriesTable, c.ID, loadedAt, map[string]interface{}{
		"parent_id":   c.ParentID,
		"name":        c.Name,
		"slug":        c.Slug,
		"description": c.Description,
		"sort_order":  c.SortOrder,
		"is_active":   c.IsActive,
		"updated_at":  c.UpdatedAt,
	})
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Category, error) {
	var c model.Category
	if err := r.DB.From(categoriesTable).Eq("id", id).One(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PGRepository) FindBySlug(ctx context.Context, slug string) (*model.Category, error) {
	var c model.Category
	if err := r.DB.From(categoriesTable).Eq("slug", slug).One(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.CategoryFilters) ([]model.Category, error) {
	q := r.DB.From(categoriesTable)
	if f.ParentID != nil {
		if *f.ParentID == "" {
			q = q.Eq("parent_id", nil)
		} else {
			q = q.Eq("parent_id", *f.ParentID)
		}
	}
	if f.IsActive != nil {
		q = q.Eq("is_active", *f.IsActive)
	}

	var categories []model.Category
	err := q.Order("sort_order", true).Order("name", true).Many(ctx, &categories)
	return categories, err
}

func (r *PGRepository) CountChildren(ctx context.Context, id string) (int, error) {
	return r.DB.From(categoriesTable).Eq("parent_id", id).Count(ctx)
}

func (r *PGRepository) IsSlugUnique(ctx context.Context, slug, excludeID string) (bool, error) {
	q := r.DB.From(categoriesTable).Eq("slug", slug)
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
	n, err := r.DB.From(categoriesTable).Eq("id", id).Delete(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}
