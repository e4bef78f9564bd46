package product

import (
	"strings"

	"github.com/forgeline/equipment-cms/internal/model"
	"github.com/forgeline/equipment-cms/internal/slug"
)

// Prepare trims input, derives the slug from the name when it is empty, fills
// defaults and validates the result. It never touches the database.
func Prepare(p *model.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Slug = strings.TrimSpace(p.Slug)
	if p.Slug == "" {
		p.Slug = slug.Make(p.Name)
	}
	if p.Currency == "" {
		p.Currency = "EUR"
	}
	if p.PriceMode == "" {
		p.PriceMode = model.PriceModeOnRequest
	}
	if p.Status == "" {
		p.Status = model.StatusDraft
	}
	if p.AutomationLevel != nil && *p.AutomationLevel == "" {
		p.AutomationLevel = nil
	}

	v := model.NewValidationError()
	if p.Name == "" {
		v.Add("name", "name is required")
	}
	switch {
	case p.Slug == "":
		v.Add("slug", "slug is required")
	case !slug.Valid(p.Slug):
		v.Add("slug", "slug may only contain lowercase letters, digits and single hyphens")
	}
	switch {
	case p.ProductType == "":
		v.Add("product_type", "product type is required")
	case !model.OneOf(p.ProductType, model.ProductTypes):
		v.Add("product_type", "unknown product type")
	}
	if p.Price != nil && *p.Price < 0 {
		v.Add("price", "price cannot be negative")
	}
	if !model.OneOf(p.PriceMode, model.PriceModes) {
		v.Add("price_mode", "unknown price mode")
	} else if p.PriceMode != model.PriceModeOnRequest && p.Price == nil {
		v.Add("price", "price is required unless it is on request")
	}
	if p.AutomationLevel != nil && !model.OneOf(*p.AutomationLevel, model.AutomationLevels) {
		v.Add("automation_level", "unknown automation level")
	}
	if p.WeightKg != nil && *p.WeightKg < 0 {
		v.Add("weight_kg", "weight cannot be negative")
	}
	if !model.OneOf(p.Status, model.ProductStatuses) {
		v.Add("status", "unknown status")
	}
	return v.Err()
}

// CheckLinks rejects a component assigned twice to the same product.
func CheckLinks(links []model.ProductComponent) error {
	v := model.NewValidationError()
	seen := make(map[string]bool, len(links))
	for _, l := range links {
		if seen[l.ComponentID] {
			v.Add("components", "component "+l.ComponentID+" is assigned more than once")
		}
		seen[l.ComponentID] = true
	}
	return v.Err()
}
