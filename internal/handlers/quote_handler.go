package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shutterhub/backend/internal/booking"
	"github.com/shutterhub/backend/internal/logger"
	"github.com/shutterhub/backend/internal/models"
	"github.com/shutterhub/backend/internal/pricing"
	"github.com/shutterhub/backend/internal/services"
)

const quoteDateLayout = "2006-01-02"

// QuoteHandler turns a product and date range into a rental quote plus the
// WhatsApp handoff link that finalizes the booking.
type QuoteHandler struct {
	productService services.ProductService
	whatsAppNumber string
}

func NewQuoteHandler(productService services.ProductService, whatsAppNumber string) *QuoteHandler {
	return &QuoteHandler{
		productService: productService,
		whatsAppNumber: whatsAppNumber,
	}
}

type QuoteRequest struct {
	ProductID     string `json:"product_id"`
	PickupDate    string `json:"pickup_date"`
	ReturnDate    string `json:"return_date"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
}

func (r *QuoteRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.ProductID == "" {
		errors["product_id"] = "Product ID is required"
	}
	if r.PickupDate == "" {
		errors["pickup_date"] = "Pickup date is required"
	}
	if r.ReturnDate == "" {
		errors["return_date"] = "Return date is required"
	}

	return errors
}

type QuoteResponse struct {
	Quote        pricing.Quote `json:"quote"`
	FloorTotal   float64       `json:"floor_total"`
	PreciseTotal float64       `json:"precise_total"`
	Message      string        `json:"message,omitempty"`
	WhatsAppURL  string        `json:"whatsapp_url,omitempty"`
}

func (h *QuoteHandler) CreateQuote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	pickup, err := time.Parse(quoteDateLayout, req.PickupDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid pickup date, expected yyyy-mm-dd"))
		return
	}
	ret, err := time.Parse(quoteDateLayout, req.ReturnDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid return date, expected yyyy-mm-dd"))
		return
	}

	product, err := h.productService.GetByID(req.ProductID)
	if err != nil {
		if err == services.ErrProductNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Product not found"))
			return
		}
		logger.WithHandler("CreateQuote").Error("failed to load product", "error", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to create quote"))
		return
	}

	quote, err := pricing.ForDates(product.Price, pickup, ret)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse(err.Error()))
		return
	}

	resp := QuoteResponse{
		Quote:        quote,
		FloorTotal:   quote.FloorTotal(),
		PreciseTotal: quote.PreciseTotal(),
	}

	// The handoff link is only useful with customer details filled in.
	if req.CustomerName != "" && req.CustomerPhone != "" {
		msg := booking.Message(product.Name, product.Category, quote, pickup, ret, req.CustomerName, req.CustomerPhone)
		resp.Message = msg
		resp.WhatsAppURL = booking.Link(h.whatsAppNumber, msg)
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(resp))
}
