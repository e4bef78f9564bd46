package product

import (
	"context"
	"time"

	"github.com/forgeline/equipment-cms/internal/model"
	"github.com/forgeline/equipment-cms/internal/product/dto"
)

type Repository interface {
	// Create and Update write the product and replace its children in one
	// transaction. Update fails with model.ErrConflict when loadedAt is set and the
	// stored row has moved on.
	Create(ctx context.Context, p *model.Product, media []model.ProductMedia, links []model.ProductComponent) error
	Update(ctx context.Context, p *model.Product, media []model.ProductMedia, links []model.ProductComponent, loadedAt time.Time) error
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindBySlug(ctx context.Context, slug string) (*model.Product, error)
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	FindMedia(ctx context.Context, productID string) ([]model.ProductMedia, error)
	FindPrimaryMedia(ctx context.Context, productIDs []string) ([]model.ProductMedia, error)
	FindComponents(ctx context.Context, productID string) ([]model.ProductComponent, error)
	FindByComponent(ctx context.Context, componentID string) ([]model.Product, error)
	FindRelated(ctx context.Context, p *model.Product, limit int) ([]model.Product, error)
	Delete(ctx context.Context, id string) error

	IsSlugUnique(ctx context.Context, slug, excludeID string) (bool, error)
	CountByStatus(ctx context.Context) (map[string]int, error)
}
