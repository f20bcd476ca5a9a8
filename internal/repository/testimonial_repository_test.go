package repository

import (
	"context"
	"testing"

	"terra-form/internal/domain"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestProperty_CreatedTestimonialsAreFeatured(t *testing.T) {
	testimonialRepo := NewTestimonialRepository(testDB, testDialect)

	properties := gopter.NewProperties(nil)

	properties.Property("every created testimonial is featured and listed", prop.ForAll(
		func(author string, content string, featured bool) bool {
			ctx := context.Background()

			testimonial := &domain.Testimonial{Author: author, Content: content, Featured: featured}
			if err := testimonialRepo.Create(ctx, testimonial); err != nil {
				t.Logf("FAIL: Failed to create testimonial: %v", err)
				return false
			}
			defer testimonialRepo.Delete(ctx, testimonial.ID)

			if !testimonial.Featured {
				t.Logf("FAIL: Created testimonial is not marked featured")
				return false
			}

			featuredList, err := testimonialRepo.ListFeatured(ctx)
			if err != nil {
				t.Logf("FAIL: Failed to list testimonials: %v", err)
				return false
			}

			for _, got := range featuredList {
				if got.ID == testimonial.ID {
					return got.Featured && got.Author == author && got.Content == content
				}
			}

			t.Logf("FAIL: Testimonial %d missing from featured list", testimonial.ID)
			return false
		},
		gen.RegexMatch(`[A-Za-z .]{2,30}`),
		gen.RegexMatch(`[A-Za-z0-9 .,!]{5,200}`),
		gen.Bool(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestTestimonialListOrderedNewestFirst(t *testing.T) {
	testimonialRepo := NewTestimonialRepository(testDB, testDialect)
	ctx := context.Background()

	first := &domain.Testimonial{Author: "Anna K.", Content: "Pierwsza"}
	second := &domain.Testimonial{Author: "Marek S.", Content: "Druga"}
	for _, tm := range []*domain.Testimonial{first, second} {
		if err := testimonialRepo.Create(ctx, tm); err != nil {
			t.Fatalf("Failed to create testimonial: %v", err)
		}
		defer testimonialRepo.Delete(ctx, tm.ID)
	}

	list, err := testimonialRepo.ListFeatured(ctx)
	if err != nil {
		t.Fatalf("Failed to list testimonials: %v", err)
	}
	if len(list) < 2 || list[0].ID != second.ID || list[1].ID != first.ID {
		t.Fatalf("expected newest testimonial first, got %+v", list)
	}
}

func TestTestimonialCreateRejectsMissingAuthor(t *testing.T) {
	testimonialRepo := NewTestimonialRepository(testDB, testDialect)

	if err := testimonialRepo.Create(context.Background(), &domain.Testimonial{Content: "x"}); err == nil {
		t.Fatal("expected NOT NULL violation for a testimonial without author")
	}
}

func TestTestimonialDeleteMissingSucceeds(t *testing.T) {
	testimonialRepo := NewTestimonialRepository(testDB, testDialect)

	if err := testimonialRepo.Delete(context.Background(), 987654321); err != nil {
		t.Errorf("expected nil error deleting missing testimonial, got %v", err)
	}
}
