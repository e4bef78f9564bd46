package dto

import (
	"time"

	"github.com/forgeline/equipment-cms/internal/model"
)

type CategoryFilters struct {
	ParentID *string // Nil means ignore, empty string means root categories
	IsActive *bool
	Tree     bool // nest children under their parents
}

// SaveCategoryInput creates a category when Category.ID is empty.
type SaveCategoryInput struct {
	Category model.Category `json:"category"`
	LoadedAt time.Time      `json:"loaded_at"`
}
