package catalog

import (
	"sort"
	"strings"

	"github.com/shutterhub/backend/internal/models"
)

// CategoryFacet is a taxonomy entry in the shape the filter sidebar consumes.
type CategoryFacet struct {
	Name          string        `json:"name"`
	ID            string        `json:"id"`
	Subcategories []Subcategory `json:"subcategories,omitempty"`
}

// Facets carries everything the filter sidebar needs to render its controls.
type Facets struct {
	Brands     []string        `json:"brands"`
	Locations  []string        `json:"locations"`
	Categories []CategoryFacet `json:"categories"`
	PriceRange PriceRange      `json:"priceRange"`
}

// Brands returns the distinct non-empty brand values across all items,
// sorted ascending, with the "All" sentinel first.
func Brands(items []models.Product) []string {
	seen := make(map[string]struct{})
	for _, p := range items {
		if p.Brand != "" {
			seen[p.Brand] = struct{}{}
		}
	}
	brands := make([]string, 0, len(seen))
	for b := range seen {
		brands = append(brands, b)
	}
	sort.Strings(brands)
	return append([]string{SentinelAll}, brands...)
}

// Locations returns the distinct non-empty locations with the default
// service areas always present, sorted ascending, "All" sentinel first.
func Locations(items []models.Product) []string {
	seen := make(map[string]struct{})
	for _, area := range DefaultLocations {
		seen[area] = struct{}{}
	}
	for _, p := range items {
		if p.Location != "" {
			seen[p.Location] = struct{}{}
		}
	}
	locations := make([]string, 0, len(seen))
	for l := range seen {
		locations = append(locations, l)
	}
	sort.Strings(locations)
	return append([]string{SentinelAll}, locations...)
}

// PriceBounds returns the lowest and highest price across all items.
// An empty catalog yields [0, 0].
func PriceBounds(items []models.Product) PriceRange {
	if len(items) == 0 {
		return PriceRange{}
	}
	bounds := PriceRange{Min: items[0].Price, Max: items[0].Price}
	for _, p := range items[1:] {
		if p.Price < bounds.Min {
			bounds.Min = p.Price
		}
		if p.Price > bounds.Max {
			bounds.Max = p.Price
		}
	}
	return bounds
}

// Facets derives the full sidebar payload for the given items.
func (e *Engine) Facets(items []models.Product) Facets {
	categories := make([]CategoryFacet, 0, len(e.taxonomy))
	for name, c := range e.taxonomy {
		categories = append(categories, CategoryFacet{
			Name:          name,
			ID:            c.ID,
			Subcategories: c.Subcategories,
		})
	}
	// "All" leads, the rest alphabetical.
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Name == SentinelAll {
			return true
		}
		if categories[j].Name == SentinelAll {
			return false
		}
		return strings.Compare(categories[i].Name, categories[j].Name) < 0
	})

	return Facets{
		Brands:     Brands(items),
		Locations:  Locations(items),
		Categories: categories,
		PriceRange: PriceBounds(items),
	}
}
