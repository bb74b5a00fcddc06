package services

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shutterhub/backend/internal/models"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailExists     = errors.New("email already registered")
	ErrInvalidPassword = errors.New("invalid password")
	ErrUnauthorized    = errors.New("unauthorized")
)

type ProductService interface {
	Create(req *models.CreateProductRequest) (*models.Product, error)
	GetByID(id string) (*models.Product, error)
	Update(id string, req *models.UpdateProductRequest) (*models.Product, error)
	Delete(id string) error
	ListAll() ([]models.Product, error)
	ListAvailable() ([]models.Product, error)
	Categories() ([]string, error)
}

// MemoryProductService is the map-backed implementation used in tests and
// local development without a database.
type MemoryProductService struct {
	mu       sync.RWMutex
	products map[string]*models.Product
}

func NewMemoryProductService() *MemoryProductService {
	return &MemoryProductService{
		products: make(map[string]*models.Product),
	}
}

func (s *MemoryProductService) Create(req *models.CreateProductRequest) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	available := true
	product := &models.Product{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		SubCategory: req.SubCategory,
		Brand:       req.Brand,
		Model:       req.Model,
		Tags:        req.Tags,
		Location:    req.Location,
		ImageURL:    req.ImageURL,
		Stock:       req.Stock,
		IsAvailable: &available,
		CreatedAt:   time.Now().UTC(),
	}

	s.products[product.ID] = product
	return product, nil
}

func (s *MemoryProductService) GetByID(id string) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, exists := s.products[id]
	if !exists {
		return nil, ErrProductNotFound
	}

	copied := *product
	return &copied, nil
}

func (s *MemoryProductService) Update(id string, req *models.UpdateProductRequest) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, exists := s.products[id]
	if !exists {
		return nil, ErrProductNotFound
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.Category = req.Category
	product.SubCategory = req.SubCategory
	product.Brand = req.Brand
	product.Model = req.Model
	product.Tags = req.Tags
	product.Location = req.Location
	product.ImageURL = req.ImageURL
	product.Stock = req.Stock
	if req.IsAvailable != nil {
		product.IsAvailable = req.IsAvailable
	}

	copied := *product
	return &copied, nil
}

func (s *MemoryProductService) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[id]; !exists {
		return ErrProductNotFound
	}

	delete(s.products, id)
	return nil
}

func (s *MemoryProductService) ListAll() ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.list(func(*models.Product) bool { return true }), nil
}

func (s *MemoryProductService) ListAvailable() ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.list(func(p *models.Product) bool { return p.Available() }), nil
}

func (s *MemoryProductService) Categories() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, p := range s.products {
		if p.Category != "" {
			seen[p.Category] = struct{}{}
		}
	}
	categories := make([]string, 0, len(seen))
	for c := range seen {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories, nil
}

// list snapshots matching products newest first. Caller must hold the lock.
func (s *MemoryProductService) list(keep func(*models.Product) bool) []models.Product {
	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		if keep(p) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[j].CreatedAt.Before(out[i].CreatedAt)
	})
	return out
}
