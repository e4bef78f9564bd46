package dto

type ProductFilters struct {
	Status      string `json:"status"`
	CategoryID  string `json:"category_id"`
	ProductType string `json:"product_type"`
	Featured    *bool  `json:"featured"`
	Bestseller  *bool  `json:"bestseller"`
	SearchQuery string `json:"q"`    // name, short description, slug
	SortBy      string `json:"sort"` // name, price, created_at, updated_at
	SortOrder   string `json:"order"`
	Page        int    `json:"page"`
	PageSize    int    `json:"page_size"`
}
