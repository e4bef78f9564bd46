package dto

import (
	"html/template"
	"time"

	"github.com/forgeline/equipment-cms/internal/model"
)

type NewsFilters struct {
	IsPublished *bool  `json:"published"`
	NewsType    string `json:"type"`
	SearchQuery string `json:"q"`
}

type SaveNewsInput struct {
	Article  model.NewsArticle `json:"article"`
	LoadedAt time.Time         `json:"loaded_at"`
}

// ArticlePage is a published article with its content rendered to safe HTML.
type ArticlePage struct {
	Article *model.NewsArticle
	HTML    template.HTML
}
