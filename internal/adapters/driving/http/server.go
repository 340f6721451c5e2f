package http

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/custodia-labs/safeaudit-core/internal/config"
	"github.com/custodia-labs/safeaudit-core/internal/core/domain"
	"github.com/custodia-labs/safeaudit-core/internal/core/ports/driving"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string
	logger     *slog.Logger

	// Services
	authService       driving.AuthService
	validationService driving.ValidationService
	reportService     driving.ReportService // nil without a report store
	profiles          *config.Profiles

	// Infrastructure
	db          Pinger // PostgreSQL health check (optional)
	redisClient Pinger // Redis health check (optional)
}

// Config holds server configuration
type Config struct {
	Host           string
	Port           int
	Version        string
	AllowedOrigins []string
	Logger         *slog.Logger
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:    "0.0.0.0",
		Port:    8080,
		Version: "dev",
	}
}

// Services groups what the handlers call
type Services struct {
	Auth       driving.AuthService
	Validation driving.ValidationService
	Reports    driving.ReportService
	Profiles   *config.Profiles
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	services Services,
	db Pinger, // can be nil
	redisClient Pinger, // can be nil
) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	profiles := services.Profiles
	if profiles == nil {
		profiles = config.Builtin()
	}

	s := &Server{
		router:            http.NewServeMux(),
		version:           cfg.Version,
		logger:            logger,
		authService:       services.Auth,
		validationService: services.Validation,
		reportService:     services.Reports,
		profiles:          profiles,
		db:                db,
		redisClient:       redisClient,
	}

	s.setupRoutes()

	var handler http.Handler = s.router
	handler = NewCORSMiddleware(cfg.AllowedOrigins).Handler(handler)
	handler = NewLoggingMiddleware(logger).Handler(handler)
	handler = NewRecoveryMiddleware(logger).Handler(handler)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the fully wrapped handler
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	authMiddleware := NewAuthMiddleware(s.authService)

	// Health endpoints (no auth)
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)
	s.router.HandleFunc("GET /swagger/doc.json", s.handleAPIDoc)

	// Auth endpoints (public)
	s.router.HandleFunc("POST /api/v1/auth/token", s.handleIssueToken)

	// Validation endpoints
	s.router.Handle("POST /api/v1/reports/validate",
		authMiddleware.Authenticate(
			authMiddleware.RequireScope(domain.ScopeValidate)(http.HandlerFunc(s.handleValidate))))
	s.router.Handle("POST /api/v1/photo-checks",
		authMiddleware.Authenticate(
			authMiddleware.RequireScope(domain.ScopeValidate)(http.HandlerFunc(s.handlePhotoCheck))))
	s.router.Handle("GET /api/v1/presets",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleListPresets)))

	// Report endpoints
	s.router.Handle("POST /api/v1/reports",
		authMiddleware.Authenticate(
			authMiddleware.RequireScope(domain.ScopeSubmit)(http.HandlerFunc(s.handleSubmitReport))))
	s.router.Handle("GET /api/v1/reports/{id}",
		authMiddleware.Authenticate(
			authMiddleware.RequireScope(domain.ScopeRead)(http.HandlerFunc(s.handleGetReport))))
}

// Start starts the HTTP server with graceful shutdown
func (s *Server) Start() error {
	// Channel to listen for OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
