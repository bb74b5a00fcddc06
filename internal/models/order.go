package models

import (
	"time"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusCancelled = "cancelled"
	OrderStatusCompleted = "completed"
)

type OrderLine struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type Order struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	Lines       []OrderLine `json:"products"`
	RentalStart time.Time   `json:"rental_start"`
	RentalEnd   time.Time   `json:"rental_end"`
	TotalPrice  float64     `json:"total_price"`
	Status      string      `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
}

// OrderDetail is the admin view of an order with the customer and product
// documents populated.
type OrderDetail struct {
	Order
	Customer *User     `json:"customer,omitempty"`
	Products []Product `json:"product_details,omitempty"`
}

type CreateOrderRequest struct {
	Lines       []OrderLine `json:"products"`
	RentalStart time.Time   `json:"rental_start"`
	RentalEnd   time.Time   `json:"rental_end"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusCancelled, OrderStatusCompleted:
		return true
	}
	return false
}

func (r *CreateOrderRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if len(r.Lines) == 0 {
		errors["products"] = "At least one product is required"
	}
	for _, line := range r.Lines {
		if line.ProductID == "" {
			errors["products"] = "Product ID is required on every line"
			break
		}
		if line.Quantity < 1 {
			errors["products"] = "Quantity must be at least 1"
			break
		}
	}
	if r.RentalStart.IsZero() {
		errors["rental_start"] = "Rental start date is required"
	}
	if r.RentalEnd.IsZero() {
		errors["rental_end"] = "Rental end date is required"
	}
	if !r.RentalStart.IsZero() && !r.RentalEnd.IsZero() && r.RentalEnd.Before(r.RentalStart) {
		errors["rental_end"] = "Rental end date must be after start date"
	}

	return errors
}

func (r *UpdateOrderStatusRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if !ValidOrderStatus(r.Status) {
		errors["status"] = "Status must be one of pending, confirmed, cancelled, completed"
	}

	return errors
}
