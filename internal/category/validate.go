package category

import (
	"strings"

	"github.com/forgeline/equipment-cms/internal/model"
	"github.com/forgeline/equipment-cms/internal/slug"
)

// Prepare trims input, derives the slug from the name and validates the
// fields that need no lookup.
func Prepare(c *model.Category) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Slug = strings.TrimSpace(c.Slug)
	if c.Slug == "" {
		c.Slug = slug.Make(c.Name)
	}
	if c.ParentID != nil && *c.ParentID == "" {
		c.ParentID = nil
	}

	v := model.NewValidationError()
	if c.Name == "" {
		v.Add("name", "name is required")
	}
	switch {
	case c.Slug == "":
		v.Add("slug", "slug is required")
	case !slug.Valid(c.Slug):
		v.Add("slug", "slug may only contain lowercase letters, digits and single hyphens")
	}
	if c.ParentID != nil && c.ID != "" && *c.ParentID == c.ID {
		v.Add("parent_id", "a category cannot be its own parent")
	}
	if c.SortOrder < 0 {
		v.Add("sort_order", "sort order cannot be negative")
	}
	return v.Err()
}
