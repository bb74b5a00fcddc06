// Package pricing computes rental quotes. Like the catalog engine it is a
// pure, stateless calculation: same inputs, same quote, no side effects.
package pricing

import (
	"errors"
	"math"
	"time"
)

const (
	// Rentals of three days or more earn the multi-day discount.
	DiscountThresholdDays = 3
	DiscountRate          = 0.15

	hoursPerDay = 24
)

var (
	ErrNegativePrice = errors.New("unit price cannot be negative")
	ErrInvalidDates  = errors.New("pickup and return dates are required")
)

// Quote is the computed rental duration and price for one item and date
// range. It is derived on demand and never persisted.
type Quote struct {
	Days         int     `json:"days"`
	UnitPrice    float64 `json:"unit_price"`
	BaseTotal    float64 `json:"base_total"`
	DiscountRate float64 `json:"discount_rate"`
	FinalTotal   float64 `json:"final_total"`
}

// ForDates quotes a rental between pickup and return. A same-day or inverted
// range still bills one day. Zero dates and negative prices are caller
// contract violations and fail fast rather than quietly producing garbage.
func ForDates(unitPrice float64, pickup, ret time.Time) (Quote, error) {
	if pickup.IsZero() || ret.IsZero() {
		return Quote{}, ErrInvalidDates
	}

	diff := ret.Sub(pickup)
	if diff < 0 {
		diff = -diff
	}
	days := int(math.Ceil(diff.Hours() / hoursPerDay))

	return ForDays(unitPrice, days)
}

// ForDays quotes a rental for a known day count. Day counts below one are
// clamped to one billable day.
func ForDays(unitPrice float64, days int) (Quote, error) {
	if unitPrice < 0 {
		return Quote{}, ErrNegativePrice
	}
	if days < 1 {
		days = 1
	}

	q := Quote{
		Days:      days,
		UnitPrice: unitPrice,
		BaseTotal: unitPrice * float64(days),
	}
	if days >= DiscountThresholdDays {
		q.DiscountRate = DiscountRate
	}
	q.FinalTotal = q.BaseTotal * (1 - q.DiscountRate)
	return q, nil
}

// FloorTotal rounds the final total down to whole currency units. This is
// the catalog-card display policy.
func (q Quote) FloorTotal() float64 {
	return math.Floor(q.FinalTotal)
}

// PreciseTotal rounds the final total to two decimal places. This is the
// booking-summary display policy. The two policies disagree on purpose: both
// exist in the storefront and callers must pick one explicitly.
func (q Quote) PreciseTotal() float64 {
	return math.Round(q.FinalTotal*100) / 100
}
