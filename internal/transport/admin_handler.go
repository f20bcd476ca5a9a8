package transport

import (
	"errors"
	"net/http"

	"terra-form/internal/middleware"
	"terra-form/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// LoginRequest represents the admin login payload. Password is left
// untyped; anything but a string is simply a wrong password.
type LoginRequest struct {
	Password interface{} `json:"password"`
}

// LoginResponse carries the issued admin token
type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

// AdminHandler handles the admin login
type AdminHandler struct {
	adminService service.AdminService
	logger       *zap.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(adminService service.AdminService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		logger:       logger,
	}
}

// RegisterRoutes registers the login route behind rateLimit
func (h *AdminHandler) RegisterRoutes(r chi.Router, rateLimit func(http.Handler) http.Handler) {
	r.With(rateLimit).Post("/api/admin/login", h.Login)
}

// Login handles POST /api/admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := middleware.DecodeJSON(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	password, ok := req.Password.(string)
	if !ok {
		h.logger.Warn("Admin login failed", zap.String("remote_addr", r.RemoteAddr))
		middleware.RespondWithError(w, http.StatusUnauthorized, "Invalid password")
		return
	}

	token, err := h.adminService.Login(r.Context(), password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPassword) {
			h.logger.Warn("Admin login failed", zap.String("remote_addr", r.RemoteAddr))
			middleware.RespondWithError(w, http.StatusUnauthorized, "Invalid password")
			return
		}
		h.logger.Error("Admin login error", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	h.logger.Info("Admin logged in", zap.String("remote_addr", r.RemoteAddr))
	middleware.RespondWithJSON(w, http.StatusOK, LoginResponse{Success: true, Token: token})
}
