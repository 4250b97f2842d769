package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/harmonymatch/admin-gateway/internal/backend"
	"github.com/harmonymatch/admin-gateway/internal/config"
	"github.com/harmonymatch/admin-gateway/internal/database"
	"github.com/harmonymatch/admin-gateway/internal/handlers"
	"github.com/harmonymatch/admin-gateway/internal/jobs"
	middlewareCustom "github.com/harmonymatch/admin-gateway/internal/middleware"
	"github.com/harmonymatch/admin-gateway/internal/repositories"
	"github.com/harmonymatch/admin-gateway/internal/routes"
	"github.com/harmonymatch/admin-gateway/internal/services"
	"github.com/harmonymatch/admin-gateway/internal/session"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Server.LogLevel),
	}))
	slog.SetDefault(logger)

	logger.Info("configuration loaded",
		slog.String("env", cfg.Server.Env),
		slog.String("backend", cfg.Backend.BaseURL),
	)

	// Audit database is optional; with it disabled the audit trail lives in
	// logs only.
	var db *database.DB
	var auditRepo services.AuditLogStore
	if cfg.Audit.Enabled {
		db, err = database.NewConnection(&cfg.Audit, logger)
		if err != nil {
			logger.Error("failed to connect to audit database", slog.Any("error", err))
			os.Exit(1)
		}
		defer db.Close()
		auditRepo = repositories.NewAuditLogRepository(db)
	}

	// Console session store
	var store session.Store
	switch cfg.Session.Store {
	case "redis":
		redisStore, err := session.NewRedisStore(cfg.Session)
		if err != nil {
			logger.Error("failed to connect to redis", slog.Any("error", err))
			os.Exit(1)
		}
		defer redisStore.Close()
		store = redisStore
	default:
		memStore := session.NewMemoryStore(cfg.Session.TTL)
		defer memStore.Close()
		store = memStore
	}

	// Backend client
	client := backend.NewClient(cfg.Backend, logger)

	// Maintenance report email, enabled when a recipient is configured
	var emailService services.EmailService
	if cfg.Email.ReportTo != "" {
		ses, err := services.NewAWSSESEmailService(cfg.Email.AWSRegion, cfg.Email.FromAddress, logger)
		if err != nil {
			logger.Error("failed to initialize email service", slog.Any("error", err))
			os.Exit(1)
		}
		emailService = ses
	}

	// Initialize services
	auditService := services.NewAuditService(auditRepo, logger)
	consoleService := services.NewConsoleService(store, client, auditService, logger)
	userAdminService := services.NewUserAdminService(client, client, store, auditService, logger)
	catalogService := services.NewCatalogService(client, auditService, logger)
	maintenanceService := services.NewMaintenanceService(client, auditService, emailService, cfg.Email.ReportTo, logger)

	// Initialize handlers
	h := routes.Handlers{
		Auth:        handlers.NewAuthHandler(client, auditService, cfg.Server.TrustedProxies, logger),
		Users:       handlers.NewUserHandler(userAdminService, logger),
		Console:     handlers.NewConsoleHandler(consoleService, logger),
		Catalog:     handlers.NewCatalogHandler(catalogService, logger),
		Maintenance: handlers.NewMaintenanceHandler(maintenanceService, logger),
		Audit:       handlers.NewAuditHandler(auditService, logger),
	}

	// Setup router
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middlewareCustom.SecurityHeaders(middlewareCustom.SecurityHeadersConfig{Env: cfg.Server.Env}))
	router.Use(middlewareCustom.CORS(middlewareCustom.NewCORSConfig(cfg.Server.AllowedOrigins)))
	router.Use(middlewareCustom.SecureLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// Register routes
	routes.RegisterRoutes(router, h)

	// Health check; covers the audit database when enabled and redis when
	// it backs the session store
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := map[string]string{"status": "healthy"}
		healthy := true

		if db != nil {
			if err := db.HealthCheck(ctx); err != nil {
				status["database"] = "down"
				healthy = false
			} else {
				status["database"] = "up"
			}
		}

		if pinger, ok := store.(interface{ Ping(context.Context) error }); ok {
			if err := pinger.Ping(ctx); err != nil {
				status["session_store"] = "down"
				healthy = false
			} else {
				status["session_store"] = "up"
			}
		}

		code := http.StatusOK
		if !healthy {
			status["status"] = "unhealthy"
			code = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(status)
	})

	// Create server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start the maintenance schedule
	scheduler := jobs.NewScheduler(maintenanceService, cfg.Maintenance, logger)
	if err := scheduler.Start(); err != nil {
		logger.Error("failed to start maintenance schedule", slog.Any("error", err))
		os.Exit(1)
	}

	// Start server
	go func() {
		logger.Info("starting server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received")

	scheduler.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("server stopped gracefully")
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
