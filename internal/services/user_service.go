package services

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/shutterhub/backend/internal/models"
)

type UserService interface {
	Register(req *models.RegisterRequest, role string) (*models.User, error)
	Login(req *models.LoginRequest) (*models.User, error)
	GetByID(id string) (*models.User, error)
	ListClients() ([]models.User, error)
}

// MemoryUserService is the map-backed implementation used in tests and local
// development without a database.
type MemoryUserService struct {
	mu      sync.RWMutex
	users   map[string]*models.User
	byEmail map[string]string // email -> userID
}

func NewMemoryUserService() *MemoryUserService {
	return &MemoryUserService{
		users:   make(map[string]*models.User),
		byEmail: make(map[string]string),
	}
}

func (s *MemoryUserService) Register(req *models.RegisterRequest, role string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[req.Email]; exists {
		return nil, ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		Name:         req.Name,
		Phone:        req.Phone,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	s.users[user.ID] = user
	s.byEmail[user.Email] = user.ID

	copied := *user
	return &copied, nil
}

func (s *MemoryUserService) Login(req *models.LoginRequest) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	userID, exists := s.byEmail[req.Email]
	if !exists {
		return nil, ErrUserNotFound
	}

	user := s.users[userID]
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidPassword
	}

	copied := *user
	return &copied, nil
}

func (s *MemoryUserService) GetByID(id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[id]
	if !exists {
		return nil, ErrUserNotFound
	}

	copied := *user
	return &copied, nil
}

func (s *MemoryUserService) ListClients() ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		if u.Role == models.RoleClient {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}
