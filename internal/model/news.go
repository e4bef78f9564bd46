package model

import (
	"time"

	"github.com/lib/pq"
)

var NewsTypes = []string{"news", "press_release", "event", "case_study"}

type NewsArticle struct {
	BaseModel
	Title          string         `db:"title" json:"title"`
	Slug           string         `db:"slug" json:"slug"`
	Content        string         `db:"content" json:"content"` // Markdown
	Excerpt        string         `db:"excerpt" json:"excerpt"`
	NewsType       string         `db:"news_type" json:"news_type"`
	Tags           pq.StringArray `db:"tags" json:"tags"`
	ImageURL       *string        `db:"image_url" json:"image_url"`
	Gallery        pq.StringArray `db:"gallery" json:"gallery"`
	IsPublished    bool           `db:"is_published" json:"is_published"`
	PublishedAt    *time.Time     `db:"published_at" json:"published_at"`
	SEOTitle       string         `db:"seo_title" json:"seo_title"`
	SEODescription string         `db:"seo_description" json:"seo_description"`
}
