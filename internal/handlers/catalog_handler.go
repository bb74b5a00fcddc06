package handlers

import (
	"net/http"

	"github.com/shutterhub/backend/internal/catalog"
	"github.com/shutterhub/backend/internal/logger"
	"github.com/shutterhub/backend/internal/models"
	"github.com/shutterhub/backend/internal/services"
)

// CatalogHandler runs the browsing engine server-side so any client gets the
// same filter/sort semantics the storefront applies in memory.
type CatalogHandler struct {
	productService services.ProductService
	engine         *catalog.Engine
}

func NewCatalogHandler(productService services.ProductService, engine *catalog.Engine) *CatalogHandler {
	return &CatalogHandler{
		productService: productService,
		engine:         engine,
	}
}

// Browse filters and sorts the full catalog per query params:
// q, category, subCategory, brand, location, availability, minPrice,
// maxPrice, sort. Absent params keep the storefront defaults.
func (h *CatalogHandler) Browse(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.ListAll()
	if err != nil {
		logger.WithHandler("Browse").Error("failed to load catalog", "error", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load catalog"))
		return
	}

	criteria := criteriaFromQuery(r)
	sortOpt := catalog.ParseSortOption(r.URL.Query().Get("sort"))

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(h.engine.Query(products, criteria, sortOpt)))
}

// Facets returns the filter-sidebar data: brands, locations, the category
// taxonomy and the catalog's price bounds.
func (h *CatalogHandler) Facets(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.ListAll()
	if err != nil {
		logger.WithHandler("Facets").Error("failed to load catalog", "error", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load catalog"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(h.engine.Facets(products)))
}

func criteriaFromQuery(r *http.Request) catalog.Criteria {
	query := r.URL.Query()
	criteria := catalog.DefaultCriteria()

	criteria.SearchQuery = query.Get("q")
	if v := query.Get("category"); v != "" {
		criteria.Category = v
	}
	if v := query.Get("subCategory"); v != "" {
		criteria.SubCategory = v
	}
	if v := query.Get("brand"); v != "" {
		criteria.Brand = v
	}
	if v := query.Get("location"); v != "" {
		criteria.Location = v
	}
	if v := query.Get("availability"); v != "" {
		criteria.Availability = catalog.ParseAvailability(v)
	}
	criteria.PriceRange.Min = queryFloat(r, "minPrice", criteria.PriceRange.Min)
	criteria.PriceRange.Max = queryFloat(r, "maxPrice", criteria.PriceRange.Max)

	return criteria
}
