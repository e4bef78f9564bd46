package form

import (
	"context"

	"github.com/forgeline/equipment-cms/internal/model"
	"github.com/forgeline/equipment-cms/internal/news"
	"github.com/forgeline/equipment-cms/internal/news/dto"
)

type NewsService interface {
	GetArticle(ctx context.Context, id string) (*model.NewsArticle, error)
	SaveArticle(ctx context.Context, input *dto.SaveNewsInput) (*model.NewsArticle, error)
}

type NewsForm struct {
	lifecycle

	articles NewsService

	Article model.NewsArticle
}

func NewNewsForm(articles NewsService) *NewsForm {
	return &NewsForm{articles: articles}
}

func (f *NewsForm) Load(ctx context.Context, id string) error {
	f.state = Loading
	n := &model.NewsArticle{NewsType: "news"}
	if id != "" {
		var err error
		if n, err = f.articles.GetArticle(ctx, id); err != nil {
			return f.loaded(err, f.loadedAt)
		}
	}
	f.Article = *n
	return f.loaded(nil, n.UpdatedAt)
}

// Publish marks the article for publication on the next Submit. The publish
// timestamp is assigned by the service the first time only.
func (f *NewsForm) Publish(on bool) {
	f.Article.IsPublished = on
}

func (f *NewsForm) Submit(ctx context.Context) (*model.NewsArticle, error) {
	if err := f.begin(); err != nil {
		return nil, err
	}

	n := f.Article
	if err := news.Prepare(&n); err != nil {
		return nil, f.finish(err, f.loadedAt)
	}
	f.Article.Slug = n.Slug

	saved, err := f.articles.SaveArticle(ctx, &dto.SaveNewsInput{Article: n, LoadedAt: f.loadedAt})
	if err != nil {
		return nil, f.finish(err, f.loadedAt)
	}
	f.Article = *saved
	return saved, f.finish(nil, saved.UpdatedAt)
}
