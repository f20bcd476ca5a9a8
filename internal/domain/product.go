package domain

import (
	"time"
)

// Product represents a ceramic piece in the gallery. Optional text
// fields are nil when they were never provided.
type Product struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description" db:"description"`
	Price       *string   `json:"price" db:"price"`
	ImageURL    *string   `json:"image_url" db:"image_url"`
	Category    *string   `json:"category" db:"category"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Testimonial represents a customer quote shown on the site.
type Testimonial struct {
	ID        int64     `json:"id" db:"id"`
	Author    string    `json:"author" db:"author"`
	Content   string    `json:"content" db:"content"`
	Featured  bool      `json:"featured" db:"featured"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ContactMessage is a visitor submission from the contact form.
// The validate tags apply only when a relay is configured.
type ContactMessage struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,max=10000"`
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
