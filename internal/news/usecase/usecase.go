package usecase

import (
	"context"
	"time"

	"github.com/forgeline/equipment-cms/internal/cache"
	"github.com/forgeline/equipment-cms/internal/logger"
	"github.com/forgeline/equipment-cms/internal/model"
	"github.com/forgeline/equipment-cms/internal/news"
	"github.com/forgeline/equipment-cms/internal/news/dto"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type newsUseCase struct {
	repo   news.Repository
	cache  *cache.Lists
	logger logger.ZapLogger
	now    func() time.Time
}

func NewNewsUseCase(repo news.Repository, lists *cache.Lists, log logger.ZapLogger) news.UseCase {
	return &newsUseCase{
		repo:   repo,
		cache:  lists,
		logger: log,
		now:    model.Now,
	}
}

func (uc *newsUseCase) SaveArticle(ctx context.Context, input *dto.SaveNewsInput) (*model.NewsArticle, error) {
	n := input.Article
	if err := news.Prepare(&n); err != nil {
		return nil, err
	}

	unique, err := uc.repo.IsSlugUnique(ctx, n.Slug, n.ID)
	if err != nil {
		return nil, err
	}
	if !unique {
		v := model.NewValidationError()
		v.Add("slug", "slug is already used by another article")
		return nil, v
	}

	now := uc.now()
	n.UpdatedAt = now
	if n.ID == "" {
		n.ID = uuid.New().String()
		n.CreatedAt = now
		news.StampPublished(&n, nil, now)
		err = uc.repo.Create(ctx, &n)
	} else {
		existing, ferr := uc.repo.FindByID(ctx, n.ID)
		if ferr != nil {
			return nil, ferr
		}
		n.CreatedAt = existing.CreatedAt
		news.StampPublished(&n, existing.PublishedAt, now)
		err = uc.repo.Update(ctx, &n, input.LoadedAt)
	}
	if err != nil {
		return nil, err
	}

	uc.logger.Info("news article saved", zap.String("id", n.ID), zap.Bool("published", n.IsPublished))
	uc.invalidate(ctx)
	return &n, nil
}

func (uc *newsUseCase) invalidate(ctx context.Context) {
	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.logger.Warn("failed to invalidate news cache", zap.Error(err))
	}
}

func (uc *newsUseCase) GetArticle(ctx context.Context, id string) (*model.NewsArticle, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *newsUseCase) ListArticles(ctx context.Context, filters *dto.NewsFilters) ([]model.NewsArticle, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *newsUseCase) ListPublished(ctx context.Context) ([]model.NewsArticle, error) {
	published := true
	filters := &dto.NewsFilters{IsPublished: &published}

	var cached []model.NewsArticle
	if hit, err := uc.cache.Get(ctx, filters, &cached); err != nil {
		uc.logger.Warn("news cache read failed", zap.Error(err))
	} else if hit {
		return cached, nil
	}

	articles, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, err
	}
	if err := uc.cache.Set(ctx, filters, articles); err != nil {
		uc.logger.Warn("news cache write failed", zap.Error(err))
	}
	return articles, nil
}

func (uc *newsUseCase) GetPublished(ctx context.Context, ref string) (*dto.ArticlePage, error) {
	var (
		n   *model.NewsArticle
		err error
	)
	if _, perr := uuid.Parse(ref); perr == nil {
		n, err = uc.repo.FindByID(ctx, ref)
	} else {
		n, err = uc.repo.FindBySlug(ctx, ref)
	}
	if err != nil {
		return nil, err
	}
	if !n.IsPublished {
		return nil, model.ErrNotFound
	}

	html, err := news.Render(n.Content)
	if err != nil {
		return nil, err
	}
	return &dto.ArticlePage{Article: n, HTML: html}, nil
}

func (uc *newsUseCase) DeleteArticle(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx)
	return nil
}

func (uc *newsUseCase) CountPublished(ctx context.Context) (int, error) {
	return uc.repo.CountPublished(ctx)
}
