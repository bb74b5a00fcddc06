package catalog

// Subcategory is a display name plus the identifier stored on product
// documents.
type Subcategory struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// Category maps a display name to the backend identifier and any
// subcategories that hang off it.
type Category struct {
	ID            string        `json:"id"`
	Subcategories []Subcategory `json:"subcategories,omitempty"`
}

// Taxonomy is the display-name -> category table the engine filters through.
// It is configuration: the filtering logic never hard-codes category names.
type Taxonomy map[string]Category

// DefaultTaxonomy returns the storefront's category table. Only Cameras has
// subcategories.
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		"All": {ID: "all"},
		"Cameras": {
			ID: "cameras",
			Subcategories: []Subcategory{
				{Name: "All Cameras", ID: "all-cameras"},
				{Name: "DSLR Cameras", ID: "dslr"},
				{Name: "Mirrorless Cameras", ID: "mirrorless"},
				{Name: "Cinema Cameras", ID: "cinema"},
				{Name: "Action Cameras", ID: "action"},
				{Name: "Point & Shoot", ID: "pointshoot"},
			},
		},
		"Lens":        {ID: "lens"},
		"Tripod":      {ID: "tripod"},
		"Mic":         {ID: "mic"},
		"Drone":       {ID: "drone"},
		"Gimbal":      {ID: "gimbal"},
		"Flash":       {ID: "flash"},
		"Light":       {ID: "light"},
		"Accessories": {ID: "accessories"},
	}
}

// CategoryID resolves a display name to its backend identifier.
func (t Taxonomy) CategoryID(name string) (string, bool) {
	c, ok := t[name]
	if !ok {
		return "", false
	}
	return c.ID, true
}

// SubcategoryID resolves a subcategory display name under the given category.
func (t Taxonomy) SubcategoryID(category, name string) (string, bool) {
	c, ok := t[category]
	if !ok {
		return "", false
	}
	for _, sub := range c.Subcategories {
		if sub.Name == name {
			return sub.ID, true
		}
	}
	return "", false
}
