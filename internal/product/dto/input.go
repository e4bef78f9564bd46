package dto

import (
	"time"

	"github.com/forgeline/equipment-cms/internal/model"
)

// SaveProductInput carries the whole edit session: the product, its media in
// display order and its component links in display order. An empty Product.ID
// creates a new product.
type SaveProductInput struct {
	Product    model.Product            `json:"product"`
	Media      []model.ProductMedia     `json:"media"`
	Components []model.ProductComponent `json:"components"`
	// LoadedAt is the updated_at the editor started from. Zero skips the
	// concurrent-edit check.
	LoadedAt time.Time `json:"loaded_at"`
}

// ProductDetail is the public product page payload.
type ProductDetail struct {
	Product *model.Product  `json:"product"`
	Related []model.Product `json:"related"`
}

// Event is published on every product write.
type Event struct {
	ID     string `json:"id"`
	Slug   string `json:"slug"`
	Status string `json:"status"`
}
