package server

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"terra-form/internal/config"
	"terra-form/internal/database"
	custommiddleware "terra-form/internal/middleware"
	"terra-form/internal/repository"
	"terra-form/internal/service"
	"terra-form/internal/storage"
	"terra-form/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Deps are the resources constructed in main and owned by the server
// once it is built.
type Deps struct {
	DB     database.Service
	Images *storage.ImageStore
	Mailer service.Mailer
	Redis  *redis.Client // optional
}

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     database.Service
	redis  *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, deps Deps) *Server {
	router := chi.NewRouter()
	metrics := custommiddleware.NewMetrics("terra_form")

	for _, mw := range custommiddleware.DefaultMiddlewareStack(cfg.Server.TrustProxy) {
		router.Use(mw)
	}
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(metrics.Middleware)
	router.Use(custommiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.IsDevelopment()))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		health := deps.DB.Health()
		status := http.StatusOK
		if health["status"] != "up" {
			status = http.StatusServiceUnavailable
		}
		custommiddleware.RespondWithJSON(w, status, health)
	})
	if cfg.Server.MetricsEnabled {
		router.Handle("/metrics", metrics.Handler())
	}
	router.Mount(deps.Images.URLPrefix(), deps.Images.Handler())

	db := deps.DB.DB()
	dialect := deps.DB.Dialect()

	productRepo := repository.NewProductRepository(db, dialect)
	testimonialRepo := repository.NewTestimonialRepository(db, dialect)
	adminConfigRepo := repository.NewAdminConfigRepository(db, dialect)

	productService := service.NewProductService(productRepo)
	testimonialService := service.NewTestimonialService(testimonialRepo)
	adminService := service.NewAdminService(
		adminConfigRepo,
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessExpiry)*time.Minute,
	)
	contactService := service.NewContactService(deps.Mailer, logger)

	adminOnly := custommiddleware.AdminOnly(cfg.Admin.EnforceAuth, cfg.JWT.Secret, logger)
	if !cfg.Admin.EnforceAuth {
		logger.Warn("Admin token enforcement disabled, mutation routes are public")
	}

	limit := func(prefix string) func(http.Handler) http.Handler {
		return custommiddleware.RateLimit(deps.Redis, custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.Requests,
			Window:            cfg.RateLimit.Window(),
			KeyPrefix:         "terra_form:" + prefix,
		}, logger)
	}

	transport.NewProductHandler(productService, logger).RegisterRoutes(router, adminOnly)
	transport.NewTestimonialHandler(testimonialService, logger).RegisterRoutes(router, adminOnly)
	transport.NewUploadHandler(deps.Images, cfg.Upload.MaxMemoryMB<<20, logger).RegisterRoutes(router, adminOnly)
	transport.NewAdminHandler(adminService, logger).RegisterRoutes(router, limit("login"))
	transport.NewContactHandler(contactService, logger).RegisterRoutes(router, limit("contact"))

	return &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     deps.DB,
		redis:  deps.Redis,
	}
}

// NewRedisClient returns nil when no Redis host is configured
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	if !cfg.Enabled() {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
			return err
		}
	}

	_ = s.logger.Sync()
	return nil
}
