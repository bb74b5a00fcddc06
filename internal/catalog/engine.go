// Package catalog implements the equipment browsing engine: a pure
// filter/sort pass over the full product list. It owns no state beyond its
// taxonomy table and performs no I/O, so it is safe to call concurrently and
// on every keystroke.
package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/shutterhub/backend/internal/models"
)

// Default service areas, always offered as location filters even before any
// product carries them.
var DefaultLocations = []string{"KK Nagar", "Anna Nagar"}

type Engine struct {
	taxonomy Taxonomy
}

// NewEngine builds an engine over the given taxonomy table. A nil taxonomy
// falls back to the storefront default.
func NewEngine(t Taxonomy) *Engine {
	if t == nil {
		t = DefaultTaxonomy()
	}
	return &Engine{taxonomy: t}
}

// Query returns the items matching the criteria, in display order. It never
// mutates the input slice and never fails: missing optional fields degrade to
// zero values, and a "no matches" result is an empty slice, not an error.
func (e *Engine) Query(items []models.Product, c Criteria, sortOpt SortOption) []models.Product {
	c = c.normalized()

	out := make([]models.Product, 0, len(items))
	for _, item := range items {
		if e.matches(item, c) {
			out = append(out, item)
		}
	}

	sortProducts(out, sortOpt)
	return out
}

func (e *Engine) matches(p models.Product, c Criteria) bool {
	return e.matchesSearch(p, c.SearchQuery) &&
		e.matchesCategory(p, c.Category) &&
		e.matchesSubCategory(p, c.Category, c.SubCategory) &&
		matchesBrand(p, c.Brand) &&
		matchesLocation(p, c.Location) &&
		matchesAvailability(p, c.Availability) &&
		c.PriceRange.Min <= p.Price && p.Price <= c.PriceRange.Max
}

func (e *Engine) matchesSearch(p models.Product, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	if containsFold(p.Name, q) ||
		containsFold(p.Category, q) ||
		containsFold(p.Brand, q) ||
		containsFold(p.Model, q) ||
		containsFold(p.Description, q) {
		return true
	}
	for _, tag := range p.Tags {
		if containsFold(tag, q) {
			return true
		}
	}
	return false
}

func (e *Engine) matchesCategory(p models.Product, category string) bool {
	if category == SentinelAll {
		return true
	}
	id, ok := e.taxonomy.CategoryID(category)
	if !ok {
		// Unknown display names match nothing.
		return false
	}
	return strings.EqualFold(p.Category, id)
}

// matchesSubCategory is only enforced for the Cameras category; everywhere
// else the subcategory selection is ignored.
func (e *Engine) matchesSubCategory(p models.Product, category, sub string) bool {
	if category != "Cameras" || sub == SentinelAll {
		return true
	}
	id, ok := e.taxonomy.SubcategoryID(category, sub)
	if !ok {
		return false
	}
	return p.SubCategory != "" && strings.EqualFold(p.SubCategory, id)
}

// matchesBrand is a case-sensitive exact match, unlike category matching.
func matchesBrand(p models.Product, brand string) bool {
	return brand == SentinelAll || p.Brand == brand
}

func matchesLocation(p models.Product, loc string) bool {
	if loc == SentinelAll {
		return true
	}
	if strings.EqualFold(p.Location, loc) {
		return true
	}
	// The default service areas tolerate fuller addresses ("12 KK Nagar Main Rd").
	for _, area := range DefaultLocations {
		if strings.EqualFold(loc, area) && containsFold(p.Location, strings.ToLower(area)) {
			return true
		}
	}
	return false
}

func matchesAvailability(p models.Product, a Availability) bool {
	switch a {
	case AvailabilityAvailable:
		return p.Available()
	case AvailabilityRented:
		return !p.Available()
	}
	return true
}

// containsFold reports whether s contains the already-lowercased q.
func containsFold(s, q string) bool {
	return strings.Contains(strings.ToLower(s), q)
}

// sortProducts stable-sorts in place. SortDefault is an identity pass so the
// filtered subset keeps its original relative order.
func sortProducts(items []models.Product, opt SortOption) {
	switch opt {
	case SortPriceAsc:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Price < items[j].Price })
	case SortPriceDesc:
		sort.SliceStable(items, func(i, j int) bool { return items[j].Price < items[i].Price })
	case SortNameAsc:
		coll := collate.New(language.English)
		sort.SliceStable(items, func(i, j int) bool {
			return coll.CompareString(items[i].Name, items[j].Name) < 0
		})
	case SortNameDesc:
		coll := collate.New(language.English)
		sort.SliceStable(items, func(i, j int) bool {
			return coll.CompareString(items[j].Name, items[i].Name) < 0
		})
	case SortNewest:
		sort.SliceStable(items, func(i, j int) bool {
			return items[j].CreatedAt.Before(items[i].CreatedAt)
		})
	}
}
