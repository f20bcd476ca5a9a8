package service

import (
	"context"
	"fmt"

	"terra-form/internal/domain"
	"terra-form/internal/repository"
)

// TestimonialService defines the interface for testimonial business logic
type TestimonialService interface {
	ListFeatured(ctx context.Context) ([]*domain.Testimonial, error)
	CreateTestimonial(ctx context.Context, author, content string) (int64, error)
	DeleteTestimonial(ctx context.Context, id int64) error
}

type testimonialService struct {
	testimonialRepo repository.TestimonialRepository
}

// NewTestimonialService creates a new instance of TestimonialService
func NewTestimonialService(testimonialRepo repository.TestimonialRepository) TestimonialService {
	return &testimonialService{testimonialRepo: testimonialRepo}
}

func (s *testimonialService) ListFeatured(ctx context.Context) ([]*domain.Testimonial, error) {
	testimonials, err := s.testimonialRepo.ListFeatured(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list testimonials: %w", err)
	}
	return testimonials, nil
}

// CreateTestimonial stores a new testimonial. It is always featured.
func (s *testimonialService) CreateTestimonial(ctx context.Context, author, content string) (int64, error) {
	testimonial := &domain.Testimonial{
		Author:   author,
		Content:  content,
		Featured: true,
	}

	if err := s.testimonialRepo.Create(ctx, testimonial); err != nil {
		return 0, fmt.Errorf("failed to create testimonial: %w", err)
	}
	return testimonial.ID, nil
}

func (s *testimonialService) DeleteTestimonial(ctx context.Context, id int64) error {
	if err := s.testimonialRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete testimonial: %w", err)
	}
	return nil
}
