package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"terra-form/internal/database"
	"terra-form/internal/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductFilter narrows a product listing. Zero value lists everything.
type ProductFilter struct {
	Category string
}

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*domain.Product, error)
	Count(ctx context.Context) (int, error)
}

type productRepository struct {
	db      *sql.DB
	dialect database.Dialect
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB, dialect database.Dialect) ProductRepository {
	return &productRepository{db: db, dialect: dialect}
}

const productColumns = `id, name, description, price, image_url, category, created_at`

// Create inserts a new product and fills in the store-assigned ID.
// An empty name is written as NULL so the store rejects it.
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now().UTC()
	}

	query := r.dialect.Rebind(`
		INSERT INTO products (name, description, price, image_url, category, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`)

	err := r.db.QueryRowContext(
		ctx,
		query,
		nullIfEmpty(product.Name),
		product.Description,
		product.Price,
		product.ImageURL,
		product.Category,
		product.CreatedAt,
	).Scan(&product.ID)

	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// Delete removes a product. Deleting a missing row is not an error.
func (r *productRepository) Delete(ctx context.Context, id int64) error {
	query := r.dialect.Rebind(`DELETE FROM products WHERE id = ?`)

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}

// FindByID retrieves a product by ID
func (r *productRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := r.dialect.Rebind(`SELECT ` + productColumns + ` FROM products WHERE id = ?`)

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

// List retrieves products newest first, optionally restricted to one category
func (r *productRepository) List(ctx context.Context, filter ProductFilter) ([]*domain.Product, error) {
	whereClause := ""
	args := []interface{}{}

	if category := strings.TrimSpace(filter.Category); category != "" {
		whereClause = "WHERE category = ?"
		args = append(args, category)
	}

	query := r.dialect.Rebind(fmt.Sprintf(`
		SELECT %s
		FROM products
		%s
		ORDER BY created_at DESC, id DESC
	`, productColumns, whereClause))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// Count returns the number of stored products
func (r *productRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return total, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var (
		product                                 domain.Product
		description, price, imageURL, category sql.NullString
	)

	err := row.Scan(
		&product.ID,
		&product.Name,
		&description,
		&price,
		&imageURL,
		&category,
		&product.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	product.Description = fromNullString(description)
	product.Price = fromNullString(price)
	product.ImageURL = fromNullString(imageURL)
	product.Category = fromNullString(category)
	product.CreatedAt = product.CreatedAt.UTC()

	return &product, nil
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
