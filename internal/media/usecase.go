package media

import (
	"context"

	"github.com/forgeline/equipment-cms/internal/media/dto"
	"github.com/forgeline/equipment-cms/internal/model"
)

type UseCase interface {
	Upload(ctx context.Context, input *dto.UploadInput) (*model.MediaAsset, error)
	ListAssets(ctx context.Context, filters *dto.MediaFilters) ([]model.MediaAsset, int, error)
	DeleteAsset(ctx context.Context, id string) error
}
