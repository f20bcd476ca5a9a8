package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"terra-form/internal/database"
	"terra-form/internal/domain"
)

// TestimonialRepository defines the interface for testimonial data access
type TestimonialRepository interface {
	Create(ctx context.Context, testimonial *domain.Testimonial) error
	Delete(ctx context.Context, id int64) error
	ListFeatured(ctx context.Context) ([]*domain.Testimonial, error)
	Count(ctx context.Context) (int, error)
}

type testimonialRepository struct {
	db      *sql.DB
	dialect database.Dialect
}

// NewTestimonialRepository creates a new instance of TestimonialRepository
func NewTestimonialRepository(db *sql.DB, dialect database.Dialect) TestimonialRepository {
	return &testimonialRepository{db: db, dialect: dialect}
}

// Create inserts a testimonial. Every testimonial is stored as featured,
// whatever the caller set on the struct.
func (r *testimonialRepository) Create(ctx context.Context, testimonial *domain.Testimonial) error {
	if testimonial.CreatedAt.IsZero() {
		testimonial.CreatedAt = time.Now().UTC()
	}

	query := r.dialect.Rebind(`
		INSERT INTO testimonials (author, content, featured, created_at)
		VALUES (?, ?, 1, ?)
		RETURNING id
	`)

	err := r.db.QueryRowContext(
		ctx,
		query,
		nullIfEmpty(testimonial.Author),
		nullIfEmpty(testimonial.Content),
		testimonial.CreatedAt,
	).Scan(&testimonial.ID)

	if err != nil {
		return fmt.Errorf("failed to create testimonial: %w", err)
	}

	testimonial.Featured = true
	return nil
}

// Delete removes a testimonial. Deleting a missing row is not an error.
func (r *testimonialRepository) Delete(ctx context.Context, id int64) error {
	query := r.dialect.Rebind(`DELETE FROM testimonials WHERE id = ?`)

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete testimonial: %w", err)
	}

	return nil
}

// ListFeatured retrieves featured testimonials newest first
func (r *testimonialRepository) ListFeatured(ctx context.Context) ([]*domain.Testimonial, error) {
	query := `
		SELECT id, author, content, featured, created_at
		FROM testimonials
		WHERE featured = 1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list testimonials: %w", err)
	}
	defer rows.Close()

	testimonials := []*domain.Testimonial{}
	for rows.Next() {
		testimonial := &domain.Testimonial{}
		err := rows.Scan(
			&testimonial.ID,
			&testimonial.Author,
			&testimonial.Content,
			&testimonial.Featured,
			&testimonial.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan testimonial: %w", err)
		}
		testimonial.CreatedAt = testimonial.CreatedAt.UTC()
		testimonials = append(testimonials, testimonial)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating testimonials: %w", err)
	}

	return testimonials, nil
}

// Count returns the number of stored testimonials
func (r *testimonialRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM testimonials`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count testimonials: %w", err)
	}
	return total, nil
}
