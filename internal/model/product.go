package model

import "github.com/lib/pq"

const (
	ProductTypeMachine        = "machine"
	ProductTypeProductionLine = "production_line"
	ProductTypeComponent      = "component"
	ProductTypeAccessory      = "accessory"
)

const (
	PriceModeFixed     = "fixed"
	PriceModeOnRequest = "on_request"
	PriceModeFrom      = "from"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

var (
	ProductTypes     = []string{ProductTypeMachine, ProductTypeProductionLine, ProductTypeComponent, ProductTypeAccessory}
	AutomationLevels = []string{"manual", "semi_automatic", "fully_automatic"}
	PriceModes       = []string{PriceModeFixed, PriceModeOnRequest, PriceModeFrom}
	ProductStatuses  = []string{StatusDraft, StatusPublished, StatusArchived}
)

type Product struct {
	BaseModel
	Slug               string         `db:"slug" json:"slug"`
	Name               string         `db:"name" json:"name"`
	ShortDescription   string         `db:"short_description" json:"short_description"`
	Description        string         `db:"description" json:"description"`
	Price              *float64       `db:"price" json:"price"`
	Currency           string         `db:"currency" json:"currency"`
	PriceMode          string         `db:"price_mode" json:"price_mode"`
	CategoryID         *string        `db:"category_id" json:"category_id"` // Nullable
	ProductType        string         `db:"product_type" json:"product_type"`
	AutomationLevel    *string        `db:"automation_level" json:"automation_level"`
	Specifications     SpecMap        `db:"specifications" json:"specifications"`
	Tags               pq.StringArray `db:"tags" json:"tags"`
	WeightKg           *float64       `db:"weight_kg" json:"weight_kg"`
	Dimensions         SpecMap        `db:"dimensions" json:"dimensions"`
	PowerConsumption   SpecMap        `db:"power_consumption" json:"power_consumption"`
	ProductionCapacity SpecMap        `db:"production_capacity" json:"production_capacity"`
	LeadTime           string         `db:"lead_time" json:"lead_time"`
	Warranty           string         `db:"warranty" json:"warranty"`
	Certifications     pq.StringArray `db:"certifications" json:"certifications"`
	Status             string         `db:"status" json:"status"`
	IsFeatured         bool           `db:"is_featured" json:"is_featured"`
	IsBestseller       bool           `db:"is_bestseller" json:"is_bestseller"`
	SEOTitle           string         `db:"seo_title" json:"seo_title"`
	SEODescription     string         `db:"seo_description" json:"seo_description"`

	Category   *Category          `db:"-" json:"category,omitempty"` // Joined data
	Media      []ProductMedia     `db:"-" json:"media,omitempty"`
	Components []ProductComponent `db:"-" json:"components,omitempty"`
}

func (p *Product) IsPublished() bool {
	return p.Status == StatusPublished
}

// PrimaryImage returns the primary image URL, falling back to the first image.
func (p *Product) PrimaryImage() string {
	first := ""
	for _, m := range p.Media {
		if m.MediaType != MediaImage {
			continue
		}
		if m.IsPrimary {
			return m.URL
		}
		if first == "" {
			first = m.URL
		}
	}
	return first
}
