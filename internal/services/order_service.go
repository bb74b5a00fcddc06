package services

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shutterhub/backend/internal/models"
)

type OrderService interface {
	Create(userID string, req *models.CreateOrderRequest, totalPrice float64) (*models.Order, error)
	GetByID(id string) (*models.Order, error)
	ListByUser(userID string) ([]models.Order, error)
	// ListAllDetailed returns every order with the customer and product
	// documents populated, newest first. Admin view.
	ListAllDetailed() ([]models.OrderDetail, error)
	UpdateStatus(orderID, status string) (*models.Order, error)
}

// MemoryOrderService is the map-backed implementation used in tests and
// local development without a database. Customer and product lookups for the
// detailed admin listing go through the supplied services.
type MemoryOrderService struct {
	mu       sync.RWMutex
	orders   map[string]*models.Order
	users    UserService
	products ProductService
}

func NewMemoryOrderService(users UserService, products ProductService) *MemoryOrderService {
	return &MemoryOrderService{
		orders:   make(map[string]*models.Order),
		users:    users,
		products: products,
	}
}

func (s *MemoryOrderService) Create(userID string, req *models.CreateOrderRequest, totalPrice float64) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order := &models.Order{
		ID:          uuid.New().String(),
		UserID:      userID,
		Lines:       req.Lines,
		RentalStart: req.RentalStart,
		RentalEnd:   req.RentalEnd,
		TotalPrice:  totalPrice,
		Status:      models.OrderStatusPending,
		CreatedAt:   time.Now().UTC(),
	}

	s.orders[order.ID] = order

	copied := *order
	return &copied, nil
}

func (s *MemoryOrderService) GetByID(id string) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, exists := s.orders[id]
	if !exists {
		return nil, ErrOrderNotFound
	}

	copied := *order
	return &copied, nil
}

func (s *MemoryOrderService) ListByUser(userID string) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Order, 0)
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	sortOrdersNewestFirst(out)
	return out, nil
}

func (s *MemoryOrderService) ListAllDetailed() ([]models.OrderDetail, error) {
	s.mu.RLock()
	orders := make([]models.Order, 0, len(s.orders))
	for _, o := range s.orders {
		orders = append(orders, *o)
	}
	s.mu.RUnlock()

	sortOrdersNewestFirst(orders)

	out := make([]models.OrderDetail, 0, len(orders))
	for _, o := range orders {
		detail := models.OrderDetail{Order: o}
		if customer, err := s.users.GetByID(o.UserID); err == nil {
			detail.Customer = customer
		}
		for _, line := range o.Lines {
			if p, err := s.products.GetByID(line.ProductID); err == nil {
				detail.Products = append(detail.Products, *p)
			}
		}
		out = append(out, detail)
	}
	return out, nil
}

func (s *MemoryOrderService) UpdateStatus(orderID, status string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, exists := s.orders[orderID]
	if !exists {
		return nil, ErrOrderNotFound
	}

	order.Status = status

	copied := *order
	return &copied, nil
}

func sortOrdersNewestFirst(orders []models.Order) {
	sort.Slice(orders, func(i, j int) bool {
		if orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].ID < orders[j].ID
		}
		return orders[j].CreatedAt.Before(orders[i].CreatedAt)
	})
}
