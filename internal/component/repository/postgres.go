package repository

import (
	"context"
	"time"

	"github.com/forgeline/equipment-cms/internal/component/dto"
	"github.com/forgeline/equipment-cms/internal/model"
	"github.com/forgeline/equipment-cms/internal/remote"
)

const componentsTable = "components"

var componentColumns = []string{
	"id", "name", "description", "component_type", "specifications", "manufacturer",
	"model_number", "image_url", "is_active", "created_at", "updated_at",
}

type PGRepository struct {
	DB *remote.Client
}

func NewPGRepository(db *remote.Client) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, c *model.Component) error {
	return r.DB.From(componentsTable).Select(componentColumns...).Insert(ctx, c)
}

func (r *PGRepository) Update(ctx context.Context, c *model.Component, loadedAt time.Time) error {
	return r.DB.UpdateVersioned(ctx, componentsTable, c.ID, loadedAt, map[string]interface{}{
		"name":           c.Name,
		"description":    c.Description,
		"component_type": c.ComponentType,
		"specifications": c.Specifications,
		"manufacturer":   c.Manufacturer,
		"model_number":   c.ModelNumber,
		"image_url":      c.ImageURL,
		"is_active":      c.IsActive,
		"updated_at":     c.UpdatedAt,
	})
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Component, error) {
	var c model.Component
	if err := r.DB.From(componentsTable).Eq("id", id).One(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ComponentFilters) ([]model.Component, error) {
	q := r.DB.From(componentsTable)
	if f.IsActive != nil {
		q = q.Eq("is_active", *f.IsActive)
	}
	if f.ComponentType != "" {
		q = q.Eq("component_type", f.ComponentType)
	}
	if f.SearchQuery != "" {
		q = q.Search(f.SearchQuery, "name", "component_type", "manufacturer", "model_number")
	}

	var comps []model.Component
	err := q.Order("name", true).Many(ctx, &comps)
	return comps, err
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	n, err := r.DB.From(componentsTable).Eq("id", id).Delete(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *PGRepository) CountActive(ctx context.Context) (int, error) {
	return r.DB.From(componentsTable).Eq("is_active", true).Count(ctx)
}
