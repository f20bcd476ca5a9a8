package service

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestSeedFillsEmptyTables(t *testing.T) {
	ctx := context.Background()
	products := newMockProductRepository()
	testimonials := newMockTestimonialRepository()

	if err := Seed(ctx, products, testimonials, zap.NewNop()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if n, _ := products.Count(ctx); n != len(SeedProducts) {
		t.Errorf("expected %d products, got %d", len(SeedProducts), n)
	}
	if n, _ := testimonials.Count(ctx); n != len(SeedTestimonials) {
		t.Errorf("expected %d testimonials, got %d", len(SeedTestimonials), n)
	}

	featured, _ := testimonials.ListFeatured(ctx)
	if len(featured) != len(SeedTestimonials) {
		t.Errorf("expected every seeded testimonial featured, got %d", len(featured))
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	products := newMockProductRepository()
	testimonials := newMockTestimonialRepository()

	for i := 0; i < 2; i++ {
		if err := Seed(ctx, products, testimonials, zap.NewNop()); err != nil {
			t.Fatalf("run %d: unexpected error: %v", i, err)
		}
	}

	if n, _ := products.Count(ctx); n != len(SeedProducts) {
		t.Errorf("second run inserted products: have %d", n)
	}
	if n, _ := testimonials.Count(ctx); n != len(SeedTestimonials) {
		t.Errorf("second run inserted testimonials: have %d", n)
	}
}

func TestSeedLeavesPopulatedTableAlone(t *testing.T) {
	ctx := context.Background()
	products := newMockProductRepository()
	testimonials := newMockTestimonialRepository()
	_, _ = NewTestimonialService(testimonials).CreateTestimonial(ctx, "Ola", "Super")

	if err := Seed(ctx, products, testimonials, zap.NewNop()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if n, _ := testimonials.Count(ctx); n != 1 {
		t.Errorf("expected existing testimonial only, got %d", n)
	}
	if n, _ := products.Count(ctx); n != len(SeedProducts) {
		t.Errorf("expected products seeded, got %d", n)
	}
}
