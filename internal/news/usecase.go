package news

import (
	"context"

	"github.com/forgeline/equipment-cms/internal/model"
	"github.com/forgeline/equipment-cms/internal/news/dto"
)

type UseCase interface {
	SaveArticle(ctx context.Context, input *dto.SaveNewsInput) (*model.NewsArticle, error)
	GetArticle(ctx context.Context, id string) (*model.NewsArticle, error)
	ListArticles(ctx context.Context, filters *dto.NewsFilters) ([]model.NewsArticle, error)
	DeleteArticle(ctx context.Context, id string) error

	ListPublished(ctx context.Context) ([]model.NewsArticle, error)
	// GetPublished looks the article up by id or slug.
	GetPublished(ctx context.Context, ref string) (*dto.ArticlePage, error)
	CountPublished(ctx context.Context) (int, error)
}
