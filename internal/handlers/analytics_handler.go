package handlers

import (
	"net/http"
	"sort"

	"github.com/shutterhub/backend/internal/logger"
	"github.com/shutterhub/backend/internal/models"
	"github.com/shutterhub/backend/internal/services"
)

const monthLayout = "Jan 2006"

// AnalyticsHandler computes the admin dashboard numbers from the fetched
// collections, the same aggregations the dashboard used to run client-side.
type AnalyticsHandler struct {
	productService services.ProductService
	userService    services.UserService
	orderService   services.OrderService
}

func NewAnalyticsHandler(productService services.ProductService, userService services.UserService, orderService services.OrderService) *AnalyticsHandler {
	return &AnalyticsHandler{
		productService: productService,
		userService:    userService,
		orderService:   orderService,
	}
}

type MonthRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

type CustomerSpend struct {
	UserID string  `json:"user_id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Orders int     `json:"orders"`
	Spend  float64 `json:"spend"`
}

type AnalyticsSummary struct {
	TotalProducts   int             `json:"total_products"`
	TotalCategories int             `json:"total_categories"`
	TotalCustomers  int             `json:"total_customers"`
	TotalOrders     int             `json:"total_orders"`
	TotalRevenue    float64         `json:"total_revenue"`
	OrdersByStatus  map[string]int  `json:"orders_by_status"`
	RevenuePerMonth []MonthRevenue  `json:"revenue_per_month"`
	TopCustomers    []CustomerSpend `json:"top_customers"`
}

func (h *AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	log := logger.WithHandler("Analytics")

	products, err := h.productService.ListAll()
	if err != nil {
		log.Error("failed to load products", "error", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to compute analytics"))
		return
	}
	categories, err := h.productService.Categories()
	if err != nil {
		log.Error("failed to load categories", "error", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to compute analytics"))
		return
	}
	customers, err := h.userService.ListClients()
	if err != nil {
		log.Error("failed to load customers", "error", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to compute analytics"))
		return
	}
	orders, err := h.orderService.ListAllDetailed()
	if err != nil {
		log.Error("failed to load orders", "error", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to compute analytics"))
		return
	}

	summary := AnalyticsSummary{
		TotalProducts:   len(products),
		TotalCategories: len(categories),
		TotalCustomers:  len(customers),
		TotalOrders:     len(orders),
		OrdersByStatus:  make(map[string]int),
	}

	revenueByMonth := make(map[string]float64)
	monthOrder := make([]string, 0)
	spendByUser := make(map[string]*CustomerSpend)

	for _, o := range orders {
		summary.TotalRevenue += o.TotalPrice
		summary.OrdersByStatus[o.Status]++

		month := o.CreatedAt.Format(monthLayout)
		if _, seen := revenueByMonth[month]; !seen {
			monthOrder = append(monthOrder, month)
		}
		revenueByMonth[month] += o.TotalPrice

		entry, ok := spendByUser[o.UserID]
		if !ok {
			entry = &CustomerSpend{UserID: o.UserID}
			if o.Customer != nil {
				entry.Name = o.Customer.Name
				entry.Email = o.Customer.Email
			}
			spendByUser[o.UserID] = entry
		}
		entry.Orders++
		entry.Spend += o.TotalPrice
	}

	// Orders arrive newest first; present months oldest first.
	for i := len(monthOrder) - 1; i >= 0; i-- {
		m := monthOrder[i]
		summary.RevenuePerMonth = append(summary.RevenuePerMonth, MonthRevenue{Month: m, Revenue: revenueByMonth[m]})
	}

	top := make([]CustomerSpend, 0, len(spendByUser))
	for _, entry := range spendByUser {
		top = append(top, *entry)
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Spend == top[j].Spend {
			return top[i].UserID < top[j].UserID
		}
		return top[j].Spend < top[i].Spend
	})
	if len(top) > 5 {
		top = top[:5]
	}
	summary.TopCustomers = top

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(summary))
}
