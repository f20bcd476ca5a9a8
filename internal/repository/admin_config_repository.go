package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"terra-form/internal/database"
)

var (
	ErrConfigNotFound = errors.New("admin config key not found")
)

// Well-known admin_config keys.
const (
	ConfigKeyAdminPasswordHash = "admin_password_hash"
)

// AdminConfigRepository defines the interface for the admin key/value settings
type AdminConfigRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// SetIfAbsent stores value only when key has no row yet and reports
	// whether it did.
	SetIfAbsent(ctx context.Context, key, value string) (bool, error)
}

type adminConfigRepository struct {
	db      *sql.DB
	dialect database.Dialect
}

// NewAdminConfigRepository creates a new instance of AdminConfigRepository
func NewAdminConfigRepository(db *sql.DB, dialect database.Dialect) AdminConfigRepository {
	return &adminConfigRepository{db: db, dialect: dialect}
}

func (r *adminConfigRepository) Get(ctx context.Context, key string) (string, error) {
	query := r.dialect.Rebind(`SELECT value FROM admin_config WHERE key = ?`)

	var value sql.NullString
	if err := r.db.QueryRowContext(ctx, query, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrConfigNotFound
		}
		return "", fmt.Errorf("failed to read admin config %s: %w", key, err)
	}

	return value.String, nil
}

func (r *adminConfigRepository) Set(ctx context.Context, key, value string) error {
	query := r.dialect.Rebind(`
		INSERT INTO admin_config (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`)

	if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to write admin config %s: %w", key, err)
	}

	return nil
}

func (r *adminConfigRepository) SetIfAbsent(ctx context.Context, key, value string) (bool, error) {
	query := r.dialect.Rebind(`
		INSERT INTO admin_config (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO NOTHING
	`)

	result, err := r.db.ExecContext(ctx, query, key, value)
	if err != nil {
		return false, fmt.Errorf("failed to write admin config %s: %w", key, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}
