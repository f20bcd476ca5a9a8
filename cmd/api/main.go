package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"terra-form/internal/config"
	"terra-form/internal/database"
	"terra-form/internal/logger"
	"terra-form/internal/mailer"
	"terra-form/internal/repository"
	"terra-form/internal/server"
	"terra-form/internal/service"
	"terra-form/internal/storage"

	"go.uber.org/zap"
)

func gracefulShutdown(apiServer *server.Server, logger *zap.Logger, done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	logger.Info("Shutting down gracefully, press Ctrl+C again to force")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := apiServer.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	if err := apiServer.Close(); err != nil {
		logger.Error("Error closing server resources", zap.Error(err))
	}

	logger.Info("Server exiting")

	done <- true
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func main() {
	cfg := config.Load()

	log, err := logger.NewWithOptions(logger.Options{Env: cfg.Server.Env, File: cfg.Log.File})
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Terra & Form API",
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
		zap.String("db_driver", cfg.Database.Driver),
	)

	if cfg.JWT.Secret == "" {
		secret, err := randomSecret()
		if err != nil {
			log.Fatal("Failed to generate JWT secret", zap.Error(err))
		}
		cfg.JWT.Secret = secret
		log.Warn("JWT_SECRET not set, using a random secret; admin tokens will not survive a restart")
	}

	dbService, err := database.New(cfg.Database)
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	log.Info("Database health check", zap.Any("health", dbService.Health()))

	if err := database.RunMigrations(dbService.DB(), dbService.Dialect(), log); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database migrations completed successfully")

	ctx := context.Background()
	db, dialect := dbService.DB(), dbService.Dialect()

	if err := service.Seed(ctx,
		repository.NewProductRepository(db, dialect),
		repository.NewTestimonialRepository(db, dialect),
		log,
	); err != nil {
		log.Fatal("Failed to seed catalog", zap.Error(err))
	}

	adminService := service.NewAdminService(
		repository.NewAdminConfigRepository(db, dialect),
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessExpiry)*time.Minute,
	)
	created, err := adminService.EnsurePassword(ctx, cfg.Admin.Password)
	switch {
	case errors.Is(err, service.ErrPasswordMismatch):
		log.Warn("ADMIN_PASSWORD differs from the stored admin password; the stored one stays in effect")
	case err != nil:
		log.Fatal("Failed to initialise admin password", zap.Error(err))
	case created:
		log.Info("Admin password initialised")
	}

	images, err := storage.NewImageStore(cfg.Upload.Dir, cfg.Upload.URLPrefix)
	if err != nil {
		log.Fatal("Failed to prepare upload directory", zap.Error(err))
	}

	mail := mailer.New(cfg.Mail, log)
	if !mail.Enabled() {
		log.Warn("Email credentials not configured, contact messages will only be logged")
	}

	redisClient := server.NewRedisClient(cfg.Redis)
	if redisClient != nil {
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn("Redis unreachable, rate limiting will fail open", zap.Error(err))
		}
	}

	srv := server.NewServer(cfg, log, server.Deps{
		DB:     dbService,
		Images: images,
		Mailer: mail,
		Redis:  redisClient,
	})

	done := make(chan bool, 1)
	go gracefulShutdown(srv, log, done)

	log.Info("Server listening", zap.String("addr", srv.Addr))

	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Fatal("HTTP server error", zap.Error(err))
	}

	<-done
	log.Info("Graceful shutdown complete")
}
