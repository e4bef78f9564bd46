package media

import (
	"context"

	"github.com/forgeline/equipment-cms/internal/media/dto"
	"github.com/forgeline/equipment-cms/internal/model"
)

type Repository interface {
	Create(ctx context.Context, a *model.MediaAsset) error
	FindByID(ctx context.Context, id string) (*model.MediaAsset, error)
	FindAll(ctx context.Context, filters *dto.MediaFilters) ([]model.MediaAsset, int, error)
	Delete(ctx context.Context, id string) error
}
