package component

import (
	"strings"

	"github.com/forgeline/equipment-cms/internal/model"
)

// Prepare trims the free-text fields and validates the component.
func Prepare(c *model.Component) error {
	c.Name = strings.TrimSpace(c.Name)
	c.ComponentType = strings.TrimSpace(c.ComponentType)
	c.Manufacturer = strings.TrimSpace(c.Manufacturer)
	c.ModelNumber = strings.TrimSpace(c.ModelNumber)
	if c.ImageURL != nil {
		c.ImageURL = model.StringPtr(strings.TrimSpace(*c.ImageURL))
	}
	if c.Specifications == nil {
		c.Specifications = model.SpecMap{}
	}

	v := model.NewValidationError()
	if c.Name == "" {
		v.Add("name", "name is required")
	}
	return v.Err()
}
