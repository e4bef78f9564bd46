package model

type Component struct {
	BaseModel
	Name           string  `db:"name" json:"name"`
	Description    string  `db:"description" json:"description"`
	ComponentType  string  `db:"component_type" json:"component_type"`
	Specifications SpecMap `db:"specifications" json:"specifications"`
	Manufacturer   string  `db:"manufacturer" json:"manufacturer"`
	ModelNumber    string  `db:"model_number" json:"model_number"`
	ImageURL       *string `db:"image_url" json:"image_url"`
	IsActive       bool    `db:"is_active" json:"is_active"`
}

// ProductComponent links a product to a reusable component.
type ProductComponent struct {
	ID          string `db:"id" json:"id"`
	ProductID   string `db:"product_id" json:"product_id"`
	ComponentID string `db:"component_id" json:"component_id"`
	Quantity    int    `db:"quantity" json:"quantity"`
	IsOptional  bool   `db:"is_optional" json:"is_optional"`
	Notes       string `db:"notes" json:"notes"`
	SortOrder   int    `db:"sort_order" json:"sort_order"`

	Component *Component `db:"-" json:"component,omitempty"`
}
