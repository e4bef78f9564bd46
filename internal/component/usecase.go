package component

import (
	"context"

	"github.com/forgeline/equipment-cms/internal/component/dto"
	"github.com/forgeline/equipment-cms/internal/model"
)

type UseCase interface {
	SaveComponent(ctx context.Context, input *dto.SaveComponentInput) (*model.Component, error)
	GetComponent(ctx context.Context, id string) (*model.Component, error)
	ListComponents(ctx context.Context, filters *dto.ComponentFilters) ([]model.Component, error)
	DeleteComponent(ctx context.Context, id string) error

	// ListActive is the public catalog and the assignment editor's picker source.
	ListActive(ctx context.Context) ([]model.Component, error)
	GetActive(ctx context.Context, id string) (*model.Component, error)
	CountActive(ctx context.Context) (int, error)
}
