package news

import (
	"strings"
	"time"

	"github.com/forgeline/equipment-cms/internal/model"
	"github.com/forgeline/equipment-cms/internal/slug"
)

const defaultNewsType = "news"

// Prepare normalises an article before it is saved: the slug is derived from the
// title when empty and the type defaults to "news".
func Prepare(n *model.NewsArticle) error {
	n.Title = strings.TrimSpace(n.Title)
	n.Slug = strings.TrimSpace(n.Slug)
	if n.Slug == "" {
		n.Slug = slug.Make(n.Title)
	}
	if n.NewsType == "" {
		n.NewsType = defaultNewsType
	}

	v := model.NewValidationError()
	if n.Title == "" {
		v.Add("title", "title is required")
	}
	switch {
	case n.Slug == "":
		v.Add("slug", "slug is required")
	case !slug.Valid(n.Slug):
		v.Add("slug", "slug may only contain lowercase letters, digits and hyphens")
	}
	if !model.OneOf(n.NewsType, model.NewsTypes) {
		v.Add("news_type", "unknown news type")
	}
	return v.Err()
}

// StampPublished sets PublishedAt the first time an article is published and
// keeps the earlier value on every later save.
func StampPublished(n *model.NewsArticle, previous *time.Time, now time.Time) {
	switch {
	case previous != nil:
		n.PublishedAt = previous
	case n.IsPublished:
		if n.PublishedAt == nil {
			n.PublishedAt = &now
		}
	default:
		n.PublishedAt = nil
	}
}
