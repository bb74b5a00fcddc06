package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shutterhub/backend/internal/logger"
	"github.com/shutterhub/backend/internal/middleware"
	"github.com/shutterhub/backend/internal/models"
	"github.com/shutterhub/backend/internal/services"
)

type AuthHandler struct {
	userService         services.UserService
	jwtSecret           string
	jwtExpiration       time.Duration
	allowAdminBootstrap bool
}

func NewAuthHandler(userService services.UserService, jwtSecret string, jwtExpiration time.Duration, allowAdminBootstrap bool) *AuthHandler {
	return &AuthHandler{
		userService:         userService,
		jwtSecret:           jwtSecret,
		jwtExpiration:       jwtExpiration,
		allowAdminBootstrap: allowAdminBootstrap,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	// Public signup always creates client accounts.
	user, err := h.userService.Register(&req, models.RoleClient)
	if err != nil {
		if err == services.ErrEmailExists {
			writeJSON(w, http.StatusConflict, models.NewErrorResponse("Email already registered"))
			return
		}
		logger.WithHandler("Register").Error("failed to create user", "error", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to create user"))
		return
	}

	token, err := h.generateToken(user)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to generate token"))
		return
	}

	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(models.AuthResponse{
		Token: token,
		User:  *user,
	}))
}

// CreateAdmin bootstraps an admin account. Config-gated; meant for
// development environments only.
func (h *AuthHandler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	if !h.allowAdminBootstrap {
		writeJSON(w, http.StatusForbidden, models.NewErrorResponse("Admin bootstrap is disabled"))
		return
	}

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	user, err := h.userService.Register(&req, models.RoleAdmin)
	if err != nil {
		if err == services.ErrEmailExists {
			writeJSON(w, http.StatusConflict, models.NewErrorResponse("Email already registered"))
			return
		}
		logger.WithHandler("CreateAdmin").Error("failed to create admin", "error", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to create user"))
		return
	}

	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(user))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	user, err := h.userService.Login(&req)
	if err != nil {
		if err == services.ErrUserNotFound || err == services.ErrInvalidPassword {
			writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Invalid email or password"))
			return
		}
		logger.WithHandler("Login").Error("login failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Login failed"))
		return
	}

	token, err := h.generateToken(user)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to generate token"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(models.AuthResponse{
		Token: token,
		User:  *user,
	}))
}

func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	user, err := h.userService.GetByID(userID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, models.NewErrorResponse("User not found"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(user))
}

// ListCustomers returns all client-role accounts. Admin view; password
// hashes never serialize.
func (h *AuthHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.userService.ListClients()
	if err != nil {
		logger.WithHandler("ListCustomers").Error("failed to list customers", "error", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list customers"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(customers))
}

func (h *AuthHandler) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(h.jwtExpiration).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}
