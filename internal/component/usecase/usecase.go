package usecase

import (
	"context"

	"github.com/forgeline/equipment-cms/internal/cache"
	"github.com/forgeline/equipment-cms/internal/component"
	"github.com/forgeline/equipment-cms/internal/component/dto"
	"github.com/forgeline/equipment-cms/internal/logger"
	"github.com/forgeline/equipment-cms/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type componentUseCase struct {
	repo   component.Repository
	cache  *cache.Lists
	logger logger.ZapLogger
}

func NewComponentUseCase(repo component.Repository, lists *cache.Lists, log logger.ZapLogger) component.UseCase {
	return &componentUseCase{
		repo:   repo,
		cache:  lists,
		logger: log,
	}
}

func (uc *componentUseCase) SaveComponent(ctx context.Context, input *dto.SaveComponentInput) (*model.Component, error) {
	c := input.Component
	if err := component.Prepare(&c); err != nil {
		return nil, err
	}

	now := model.Now()
	c.UpdatedAt = now
	var err error
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

	uc.invalidate(ctx)
	return &c, nil
}

func (uc *componentUseCase) invalidate(ctx context.Context) {
	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.logger.Warn("failed to invalidate component cache", zap.Error(err))
	}
}

func (uc *componentUseCase) GetComponent(ctx context.Context, id string) (*model.Component, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *componentUseCase) ListComponents(ctx context.Context, filters *dto.ComponentFilters) ([]model.Component, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *componentUseCase) ListActive(ctx context.Context) ([]model.Component, error) {
	active := true
	filters := &dto.ComponentFilters{IsActive: &active}

	var cached []model.Component
	if hit, err := uc.cache.Get(ctx, filters, &cached); err != nil {
		uc.logger.Warn("component cache read failed", zap.Error(err))
	} else if hit {
		return cached, nil
	}

	comps, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, err
	}
	if err := uc.cache.Set(ctx, filters, comps); err != nil {
		uc.logger.Warn("component cache write failed", zap.Error(err))
	}
	return comps, nil
}

// GetActive hides inactive components from the public site.
func (uc *componentUseCase) GetActive(ctx context.Context, id string) (*model.Component, error) {
	c, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.IsActive {
		return nil, model.ErrNotFound
	}
	return c, nil
}

func (uc *componentUseCase) DeleteComponent(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx)
	return nil
}

func (uc *componentUseCase) CountActive(ctx context.Context) (int, error) {
	return uc.repo.CountActive(ctx)
}
