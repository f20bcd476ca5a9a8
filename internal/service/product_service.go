package service

import (
	"context"
	"fmt"
	"time"

	"terra-form/internal/domain"
	"terra-form/internal/repository"
)

// ProductService defines the interface for catalog business logic
type ProductService interface {
	ListProducts(ctx context.Context, category string) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	CreateProduct(ctx context.Context, product *domain.Product) (int64, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type productService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new instance of ProductService
func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

// ListProducts returns the catalog newest first. An empty category lists everything.
func (s *productService) ListProducts(ctx context.Context, category string) ([]*domain.Product, error) {
	products, err := s.productRepo.List(ctx, repository.ProductFilter{Category: category})
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetProduct retrieves one product; repository.ErrProductNotFound passes through.
func (s *productService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// CreateProduct stores the product as given and returns the assigned ID.
// Identifier and creation time are always assigned by the store; required
// fields are enforced there too.
func (s *productService) CreateProduct(ctx context.Context, product *domain.Product) (int64, error) {
	product.ID = 0
	product.CreatedAt = time.Time{}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return 0, fmt.Errorf("failed to create product: %w", err)
	}
	return product.ID, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}
