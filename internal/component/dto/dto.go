package dto

import (
	"time"

	"github.com/forgeline/equipment-cms/internal/model"
)

type ComponentFilters struct {
	IsActive      *bool  `json:"active"`
	ComponentType string `json:"type"`
	SearchQuery   string `json:"q"`
}

// SaveComponentInput creates a component when Component.ID is empty.
type SaveComponentInput struct {
	Component model.Component `json:"component"`
	LoadedAt  time.Time       `json:"loaded_at"`
}
