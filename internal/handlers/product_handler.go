package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shutterhub/backend/internal/logger"
	"github.com/shutterhub/backend/internal/models"
	"github.com/shutterhub/backend/internal/services"
)

type ProductHandler struct {
	productService services.ProductService
}

func NewProductHandler(productService services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// ListAvailable is the public storefront listing: available products only,
// newest first.
func (h *ProductHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.ListAvailable()
	if err != nil {
		logger.WithHandler("ListAvailable").Error("failed to list products", "error", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list products"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(products))
}

// Categories returns the distinct category values present in the collection.
func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.productService.Categories()
	if err != nil {
		logger.WithHandler("Categories").Error("failed to list categories", "error", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list categories"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(categories))
}

// AdminList returns every product regardless of availability.
func (h *ProductHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.ListAll()
	if err != nil {
		logger.WithHandler("AdminList").Error("failed to list products", "error", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list products"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(products))
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	product, err := h.productService.Create(&req)
	if err != nil {
		logger.WithHandler("CreateProduct").Error("failed to create product", "error", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to create product"))
		return
	}

	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(product))
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	var req models.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	product, err := h.productService.Update(productID, &req)
	if err != nil {
		if err == services.ErrProductNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Product not found"))
			return
		}
		logger.WithHandler("UpdateProduct").Error("failed to update product", "error", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to update product"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(product))
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	if err := h.productService.Delete(productID); err != nil {
		if err == services.ErrProductNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Product not found"))
			return
		}
		logger.WithHandler("DeleteProduct").Error("failed to delete product", "error", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to delete product"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]string{"message": "Product deleted successfully"}))
}
