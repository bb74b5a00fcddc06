package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shutterhub/backend/internal/models"
)

func TestBrands(t *testing.T) {
	t.Run("distinct sorted with sentinel first", func(t *testing.T) {
		items := []models.Product{
			{Brand: "Sony"},
			{Brand: "Canon"},
			{Brand: "Sony"},
			{Brand: ""},
		}
		assert.Equal(t, []string{"All", "Canon", "Sony"}, Brands(items))
	})

	t.Run("empty catalog", func(t *testing.T) {
		assert.Equal(t, []string{"All"}, Brands(nil))
	})
}

func TestLocations(t *testing.T) {
	t.Run("defaults always present", func(t *testing.T) {
		got := Locations(nil)
		assert.Equal(t, []string{"All", "Anna Nagar", "KK Nagar"}, got)
	})

	t.Run("product locations merged in", func(t *testing.T) {
		items := []models.Product{
			{Location: "T Nagar"},
			{Location: "KK Nagar"},
		}
		got := Locations(items)
		assert.Equal(t, []string{"All", "Anna Nagar", "KK Nagar", "T Nagar"}, got)
	})
}

func TestPriceBounds(t *testing.T) {
	t.Run("empty catalog yields zero bounds", func(t *testing.T) {
		assert.Equal(t, PriceRange{}, PriceBounds(nil))
	})

	t.Run("min and max across items", func(t *testing.T) {
		items := []models.Product{
			{Price: 400},
			{Price: 120},
			{Price: 9000},
		}
		assert.Equal(t, PriceRange{Min: 120, Max: 9000}, PriceBounds(items))
	})
}

func TestEngineFacets(t *testing.T) {
	engine := NewEngine(DefaultTaxonomy())
	items := []models.Product{
		{Brand: "Canon", Location: "KK Nagar", Price: 500},
		{Brand: "DJI", Price: 2800},
	}

	f := engine.Facets(items)

	assert.Equal(t, []string{"All", "Canon", "DJI"}, f.Brands)
	assert.Equal(t, PriceRange{Min: 500, Max: 2800}, f.PriceRange)

	require.NotEmpty(t, f.Categories)
	assert.Equal(t, "All", f.Categories[0].Name)

	var cameras *CategoryFacet
	for i := range f.Categories {
		if f.Categories[i].Name == "Cameras" {
			cameras = &f.Categories[i]
		}
	}
	require.NotNil(t, cameras)
	assert.Len(t, cameras.Subcategories, 6)
}
