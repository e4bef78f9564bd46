package editor

import (
	"errors"
	"strings"

	"github.com/forgeline/equipment-cms/internal/model"
	"github.com/google/uuid"
)

var (
	ErrAlreadyAssigned  = errors.New("component already assigned")
	ErrUnknownComponent = errors.New("component not in catalog")
	ErrNotAssigned      = errors.New("component not assigned")
)

// Assignments edits the product-component links of one product against the
// catalog of active components. Nothing is persisted until the form saves.
type Assignments struct {
	productID string
	items     []model.ProductComponent
	catalog   []model.Component
	byID      map[string]model.Component
}

func NewAssignments(productID string, links []model.ProductComponent, catalog []model.Component) *Assignments {
	a := &Assignments{
		productID: productID,
		catalog:   catalog,
		byID:      make(map[string]model.Component, len(catalog)),
	}
	for _, c := range catalog {
		a.byID[c.ID] = c
	}

	seen := map[string]bool{}
	for _, l := range links {
		if seen[l.ComponentID] {
			continue
		}
		seen[l.ComponentID] = true
		if l.Quantity < 1 {
			l.Quantity = 1
		}
		if l.Component == nil {
			if c, ok := a.byID[l.ComponentID]; ok {
				l.Component = &c
			}
		}
		a.items = append(a.items, l)
	}
	a.reindex()
	return a
}

func (a *Assignments) Items() []model.ProductComponent {
	out := make([]model.ProductComponent, len(a.items))
	copy(out, a.items)
	return out
}

func (a *Assignments) IsAssigned(componentID string) bool {
	return a.index(componentID) >= 0
}

// Available lists active catalog components not yet assigned whose name, type or
// manufacturer contains term, case-insensitively.
func (a *Assignments) Available(term string) []model.Component {
	term = strings.ToLower(strings.TrimSpace(term))
	var out []model.Component
	for _, c := range a.catalog {
		if !c.IsActive || a.IsAssigned(c.ID) {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(c.Name), term) &&
			!strings.Contains(strings.ToLower(c.ComponentType), term) &&
			!strings.Contains(strings.ToLower(c.Manufacturer), term) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Add assigns a catalog component with quantity 1, not optional, at the end.
func (a *Assignments) Add(componentID string) (model.ProductComponent, error) {
	if a.IsAssigned(componentID) {
		return model.ProductComponent{}, ErrAlreadyAssigned
	}
	c, ok := a.byID[componentID]
	if !ok || !c.IsActive {
		return model.ProductComponent{}, ErrUnknownComponent
	}

	link := model.ProductComponent{
		ID:          uuid.NewString(),
		ProductID:   a.productID,
		ComponentID: componentID,
		Quantity:    1,
		SortOrder:   len(a.items),
		Component:   &c,
	}
	a.items = append(a.items, link)
	return link, nil
}

// Update changes the per-assignment fields. Quantity is clamped to at least 1.
func (a *Assignments) Update(componentID string, quantity int, optional bool, notes string) error {
	i := a.index(componentID)
	if i < 0 {
		return ErrNotAssigned
	}
	if quantity < 1 {
		quantity = 1
	}
	a.items[i].Quantity = quantity
	a.items[i].IsOptional = optional
	a.items[i].Notes = notes
	return nil
}

func (a *Assignments) Remove(componentID string) error {
	i := a.index(componentID)
	if i < 0 {
		return ErrNotAssigned
	}
	a.items = append(a.items[:i], a.items[i+1:]...)
	a.reindex()
	return nil
}

func (a *Assignments) index(componentID string) int {
	for i, l := range a.items {
		if l.ComponentID == componentID {
			return i
		}
	}
	return -1
}

func (a *Assignments) reindex() {
	for i := range a.items {
		a.items[i].SortOrder = i
		a.items[i].ProductID = a.productID
	}
}
