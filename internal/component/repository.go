package component

import (
	"context"
	"time"

	"github.com/forgeline/equipment-cms/internal/component/dto"
	"github.com/forgeline/equipment-cms/internal/model"
)

type Repository interface {
	Create(ctx context.Context, c *model.Component) error
	Update(ctx context.Context, c *model.Component, loadedAt time.Time) error
	FindByID(ctx context.Context, id string) (*model.Component, error)
	FindAll(ctx context.Context, filters *dto.ComponentFilters) ([]model.Component, error)
	Delete(ctx context.Context, id string) error
	CountActive(ctx context.Context) (int, error)
}
