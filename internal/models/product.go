package models

import (
	"time"
)

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	SubCategory string    `json:"subCategory,omitempty"`
	Brand       string    `json:"brand"`
	Model       string    `json:"model,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Location    string    `json:"location,omitempty"`
	ImageURL    string    `json:"imageUrl"`
	Stock       int       `json:"stock"`
	IsAvailable *bool     `json:"isAvailable"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Available treats a missing flag as available, matching the storefront's
// "isAvailable !== false" convention.
func (p *Product) Available() bool {
	return p.IsAvailable == nil || *p.IsAvailable
}

type CreateProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	SubCategory string   `json:"subCategory"`
	Brand       string   `json:"brand"`
	Model       string   `json:"model"`
	Tags        []string `json:"tags"`
	Location    string   `json:"location"`
	ImageURL    string   `json:"imageUrl"`
	Stock       int      `json:"stock"`
}

type UpdateProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	SubCategory string   `json:"subCategory"`
	Brand       string   `json:"brand"`
	Model       string   `json:"model"`
	Tags        []string `json:"tags"`
	Location    string   `json:"location"`
	ImageURL    string   `json:"imageUrl"`
	Stock       int      `json:"stock"`
	IsAvailable *bool    `json:"isAvailable"`
}

func (r *CreateProductRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Name == "" {
		errors["name"] = "Product name is required"
	}
	if r.Description == "" {
		errors["description"] = "Description is required"
	}
	if r.Price < 0 {
		errors["price"] = "Price cannot be negative"
	}
	if r.Category == "" {
		errors["category"] = "Category is required"
	}
	if r.Brand == "" {
		errors["brand"] = "Brand is required"
	}
	if r.ImageURL == "" {
		errors["imageUrl"] = "Image URL is required"
	}
	if r.Stock < 0 {
		errors["stock"] = "Stock cannot be negative"
	}

	return errors
}

func (r *UpdateProductRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Name == "" {
		errors["name"] = "Product name is required"
	}
	if r.Price < 0 {
		errors["price"] = "Price cannot be negative"
	}
	if r.Stock < 0 {
		errors["stock"] = "Stock cannot be negative"
	}

	return errors
}
