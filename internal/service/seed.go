package service

import (
	"context"
	"fmt"

	"terra-form/internal/domain"
	"terra-form/internal/repository"

	"go.uber.org/zap"
)

// SeedProducts is the gallery shown on a fresh install.
var SeedProducts = []domain.Product{
	{Name: "Waza Antracytowa", Description: domain.StringPtr("Ręcznie toczona waza o surowym wykończeniu, inspirowana teksturą skał."), Price: domain.StringPtr("250 zł"), ImageURL: domain.StringPtr("/img/waza1.jpeg"), Category: domain.StringPtr("Wazy")},
	{Name: "Misa Gliniana", Description: domain.StringPtr("Głęboka misa z widocznymi śladami dłoni artysty, idealna na owoce."), Price: domain.StringPtr("180 zł"), ImageURL: domain.StringPtr("/img/misa1.jpeg"), Category: domain.StringPtr("Misy")},
	{Name: "Kubek Ziemisty", Description: domain.StringPtr("Codzienny towarzysz porannej kawy, o ergonomicznym kształcie."), Price: domain.StringPtr("65 zł"), ImageURL: domain.StringPtr("/img/kubek.jpeg"), Category: domain.StringPtr("Kubki")},
	{Name: "Waza Pustynna", Description: domain.StringPtr("Jasna ceramika o piaszczystej fakturze, idealna do suchych traw."), Price: domain.StringPtr("320 zł"), ImageURL: domain.StringPtr("/img/waza2.jpeg"), Category: domain.StringPtr("Wazy")},
	{Name: "Misa Oceaniczna", Description: domain.StringPtr("Szkliwiona na głęboki błękit misa o falistych brzegach."), Price: domain.StringPtr("210 zł"), ImageURL: domain.StringPtr("/img/misa2.jpeg"), Category: domain.StringPtr("Misy")},
	{Name: "Zestaw Espresso", Description: domain.StringPtr("Dwa małe kubeczki o minimalistycznym designie."), Price: domain.StringPtr("110 zł"), ImageURL: domain.StringPtr("/img/zestawespresso.jpeg"), Category: domain.StringPtr("Kubki")},
}

// SeedTestimonials are the quotes shown on a fresh install.
var SeedTestimonials = []domain.Testimonial{
	{Author: "Anna K.", Content: "Piękno w najczystszej postaci. Każdy detal jest dopracowany."},
	{Author: "Marek S.", Content: "Ceramika Terra & Form nadała mojej jadalni zupełnie nowy charakter."},
}

// Seed fills each empty table with the default content. Tables that
// already hold rows are left alone.
func Seed(
	ctx context.Context,
	productRepo repository.ProductRepository,
	testimonialRepo repository.TestimonialRepository,
	logger *zap.Logger,
) error {
	productCount, err := productRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if productCount == 0 {
		for i := range SeedProducts {
			product := SeedProducts[i]
			if err := productRepo.Create(ctx, &product); err != nil {
				return fmt.Errorf("failed to seed product %q: %w", product.Name, err)
			}
		}
		logger.Info("Seeded products", zap.Int("count", len(SeedProducts)))
	}

	testimonialCount, err := testimonialRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count testimonials: %w", err)
	}
	if testimonialCount == 0 {
		for i := range SeedTestimonials {
			testimonial := SeedTestimonials[i]
			if err := testimonialRepo.Create(ctx, &testimonial); err != nil {
				return fmt.Errorf("failed to seed testimonial by %q: %w", testimonial.Author, err)
			}
		}
		logger.Info("Seeded testimonials", zap.Int("count", len(SeedTestimonials)))
	}

	return nil
}
