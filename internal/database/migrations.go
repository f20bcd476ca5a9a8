package database

import (
	"database/sql"
	"fmt"

	"terra-form/migrations"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

// goose keys dialects by its own names.
func gooseDialect(d Dialect) string {
	if d == DialectPostgres {
		return "postgres"
	}
	return "sqlite3"
}

// RunMigrations executes all pending embedded migrations for the dialect.
func RunMigrations(db *sql.DB, dialect Dialect, logger *zap.Logger) error {
	goose.SetBaseFS(migrations.FS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(gooseDialect(dialect)); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	dir := string(dialect)
	logger.Info("Checking for pending migrations...", zap.String("dir", dir))

	if err := goose.Up(db, dir); err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Migrations completed successfully")
	return nil
}

// MigrationVersion returns the current applied migration version.
func MigrationVersion(db *sql.DB, dialect Dialect) (int64, error) {
	if err := goose.SetDialect(gooseDialect(dialect)); err != nil {
		return 0, fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.GetDBVersion(db)
}
