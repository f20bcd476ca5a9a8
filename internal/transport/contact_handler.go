package transport

import (
	"errors"
	"net/http"

	"terra-form/internal/domain"
	"terra-form/internal/middleware"
	"terra-form/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ContactRequest represents the contact form payload
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ContactHandler handles contact form submissions
type ContactHandler struct {
	contactService service.ContactService
	logger         *zap.Logger
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(contactService service.ContactService, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		logger:         logger,
	}
}

// RegisterRoutes registers the contact route behind rateLimit
func (h *ContactHandler) RegisterRoutes(r chi.Router, rateLimit func(http.Handler) http.Handler) {
	r.With(rateLimit).Post("/api/contact", h.Submit)
}

// Submit handles POST /api/contact
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := middleware.DecodeJSON(r, &req); err != nil {
		h.logger.Debug("Contact body rejected", zap.Error(err))
		middleware.RespondWithDecodeError(w, err)
		return
	}

	err := h.contactService.Submit(r.Context(), domain.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if errors.Is(err, service.ErrInvalidContact) {
		h.logger.Debug("Contact validation failed", zap.Error(err))
		middleware.RespondWithDecodeError(w, err)
		return
	}
	if err != nil {
		h.logger.Error("Error sending email", zap.String("email", req.Email), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Failed to send email")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, SuccessResponse{Success: true})
}
