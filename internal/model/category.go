package model

type Category struct {
	BaseModel
	ParentID    *string    `db:"parent_id" json:"parent_id"` // Nullable
	Name        string     `db:"name" json:"name"`
	Slug        string     `db:"slug" json:"slug"`
	Description string     `db:"description" json:"description"`
	SortOrder   int        `db:"sort_order" json:"sort_order"`
	IsActive    bool       `db:"is_active" json:"is_active"`
	Children    []Category `db:"-" json:"children,omitempty"` // For tree structure, not in DB
}

// BuildCategoryTree nests children under their parents, keeping input order.
// Categories whose parent is missing from the list are treated as roots.
func BuildCategoryTree(flat []Category) []Category {
	byID := make(map[string]int, len(flat))
	for i, c := range flat {
		byID[c.ID] = i
	}

	children := make(map[string][]Category)
	var roots []string
	for _, c := range flat {
		if c.ParentID != nil {
			if _, ok := byID[*c.ParentID]; ok && *c.ParentID != c.ID {
				children[*c.ParentID] = append(children[*c.ParentID], c)
				continue
			}
		}
		roots = append(roots, c.ID)
	}

	tree := make([]Category, 0, len(roots))
	for _, id := range roots {
		c := flat[byID[id]]
		c.Children = children[id]
		tree = append(tree, c)
	}
	return tree
}
