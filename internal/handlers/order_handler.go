package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shutterhub/backend/internal/logger"
	"github.com/shutterhub/backend/internal/middleware"
	"github.com/shutterhub/backend/internal/models"
	"github.com/shutterhub/backend/internal/pricing"
	"github.com/shutterhub/backend/internal/services"
)

type OrderHandler struct {
	orderService   services.OrderService
	productService services.ProductService
}

func NewOrderHandler(orderService services.OrderService, productService services.ProductService) *OrderHandler {
	return &OrderHandler{
		orderService:   orderService,
		productService: productService,
	}
}

// Create books a rental. The total is recomputed server-side from the stored
// product prices, so a submitted total can never be spoofed.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	var req models.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	// Combined daily rate across all lines; the multi-day discount applies
	// to the rental as a whole.
	var dailyRate float64
	for _, line := range req.Lines {
		product, err := h.productService.GetByID(line.ProductID)
		if err != nil {
			if err == services.ErrProductNotFound {
				writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Product not found: "+line.ProductID))
				return
			}
			logger.WithHandler("CreateOrder").Error("failed to load product", "error", err)
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to create order"))
			return
		}
		dailyRate += product.Price * float64(line.Quantity)
	}

	quote, err := pricing.ForDates(dailyRate, req.RentalStart, req.RentalEnd)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse(err.Error()))
		return
	}

	order, err := h.orderService.Create(userID, &req, quote.PreciseTotal())
	if err != nil {
		logger.WithHandler("CreateOrder").Error("failed to create order", "error", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to create order"))
		return
	}

	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(order))
}

// ListMine returns the caller's orders, newest first.
func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	orders, err := h.orderService.ListByUser(userID)
	if err != nil {
		logger.WithHandler("ListMine").Error("failed to list orders", "error", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list orders"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(orders))
}

// AdminList returns every order with customer and product details populated.
func (h *OrderHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.ListAllDetailed()
	if err != nil {
		logger.WithHandler("AdminListOrders").Error("failed to list orders", "error", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list orders"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(orders))
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	var req models.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	order, err := h.orderService.UpdateStatus(orderID, req.Status)
	if err != nil {
		if err == services.ErrOrderNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Order not found"))
			return
		}
		logger.WithHandler("UpdateOrderStatus").Error("failed to update order", "error", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to update order"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(order))
}
