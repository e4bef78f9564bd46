package product

import (
	"context"

	"github.com/forgeline/equipment-cms/internal/model"
	"github.com/forgeline/equipment-cms/internal/product/dto"
)

type UseCase interface {
	SaveProduct(ctx context.Context, input *dto.SaveProductInput) (*model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	DeleteProduct(ctx context.Context, id string) error

	// Public catalog reads only see published products.
	ListPublished(ctx context.Context) ([]model.Product, error)
	GetPublished(ctx context.Context, slug string) (*dto.ProductDetail, error)
	ListUsingComponent(ctx context.Context, componentID string) ([]model.Product, error)

	CountByStatus(ctx context.Context) (map[string]int, error)
}
