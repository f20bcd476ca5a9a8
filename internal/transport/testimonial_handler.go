package transport

import (
	"net/http"

	"terra-form/internal/middleware"
	"terra-form/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CreateTestimonialRequest represents the testimonial creation payload.
// A featured flag sent by the caller is ignored.
type CreateTestimonialRequest struct {
	Author  string `json:"author" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// TestimonialHandler handles HTTP requests for testimonials
type TestimonialHandler struct {
	testimonialService service.TestimonialService
	logger             *zap.Logger
}

// NewTestimonialHandler creates a new TestimonialHandler
func NewTestimonialHandler(testimonialService service.TestimonialService, logger *zap.Logger) *TestimonialHandler {
	return &TestimonialHandler{
		testimonialService: testimonialService,
		logger:             logger,
	}
}

// RegisterRoutes registers all testimonial routes. Mutations run behind adminMiddleware.
func (h *TestimonialHandler) RegisterRoutes(r chi.Router, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/testimonials", func(r chi.Router) {
		r.Get("/", h.ListTestimonials)

		r.Group(func(r chi.Router) {
			r.Use(adminMiddleware)
			r.Post("/", h.CreateTestimonial)
			r.Delete("/{id}", h.DeleteTestimonial)
		})
	})
}

// ListTestimonials handles GET /api/testimonials
func (h *TestimonialHandler) ListTestimonials(w http.ResponseWriter, r *http.Request) {
	testimonials, err := h.testimonialService.ListFeatured(r.Context())
	if err != nil {
		h.logger.Error("Failed to list testimonials", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch testimonials")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, testimonials)
}

// CreateTestimonial handles POST /api/testimonials
func (h *TestimonialHandler) CreateTestimonial(w http.ResponseWriter, r *http.Request) {
	var req CreateTestimonialRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Testimonial validation failed", zap.Error(err))
		middleware.RespondWithDecodeError(w, err)
		return
	}

	id, err := h.testimonialService.CreateTestimonial(r.Context(), req.Author, req.Content)
	if err != nil {
		h.logger.Error("Failed to create testimonial", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Failed to create testimonial")
		return
	}

	h.logger.Info("Testimonial created", zap.Int64("testimonial_id", id))
	middleware.RespondWithJSON(w, http.StatusOK, IDResponse{ID: id})
}

// DeleteTestimonial handles DELETE /api/testimonials/{id}. Unknown identifiers still succeed.
func (h *TestimonialHandler) DeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		middleware.RespondWithJSON(w, http.StatusOK, SuccessResponse{Success: true})
		return
	}

	if err := h.testimonialService.DeleteTestimonial(r.Context(), id); err != nil {
		h.logger.Error("Failed to delete testimonial", zap.Int64("testimonial_id", id), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Failed to delete testimonial")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, SuccessResponse{Success: true})
}
