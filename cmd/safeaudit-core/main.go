package main

// @title           SafeAudit Core API
// @version         1.0
// @description     Validation and scoring for industrial-safety inspection documents. SafeAudit Core checks checklists, work plans and risk assessments and reports every issue it finds.

// @contact.name   SafeAudit OSS
// @contact.url    https://github.com/custodia-labs/safeaudit-core/issues

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api/v1
// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Format: "Bearer {token}"

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	_ "github.com/custodia-labs/safeaudit-core/docs"
	"github.com/custodia-labs/safeaudit-core/internal/adapters/driven/auth"
	"github.com/custodia-labs/safeaudit-core/internal/adapters/driven/postgres"
	redisadapter "github.com/custodia-labs/safeaudit-core/internal/adapters/driven/redis"
	"github.com/custodia-labs/safeaudit-core/internal/adapters/driving/http"
	"github.com/custodia-labs/safeaudit-core/internal/config"
	"github.com/custodia-labs/safeaudit-core/internal/core/domain"
	"github.com/custodia-labs/safeaudit-core/internal/core/ports/driven"
	"github.com/custodia-labs/safeaudit-core/internal/core/ports/driving"
	"github.com/custodia-labs/safeaudit-core/internal/core/services"
	"github.com/custodia-labs/safeaudit-core/internal/formatters/text"
)

var version = "dev"

func main() {
	// Get run mode from environment (RUN_MODE) or command line arg
	mode := getEnv("RUN_MODE", "api")
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}

	logger := newLogger(getEnv("LOG_FORMAT", "text"), getEnv("LOG_LEVEL", "info"))
	slog.SetDefault(logger)

	profiles, thresholds := loadThresholds()

	switch mode {
	case "api":
		runAPI(logger, profiles, thresholds)

	case "check":
		if len(os.Args) < 3 {
			log.Fatal("Usage: safeaudit-core check <document.json>")
		}
		os.Exit(runCheck(logger, os.Args[2], thresholds))

	default:
		log.Fatalf("Unknown mode: %s (use: api or check)", mode)
	}
}

func runAPI(logger *slog.Logger, profiles *config.Profiles, thresholds domain.Thresholds) {
	log.Printf("safeaudit-core %s starting in api mode", version)

	// Configuration from environment
	jwtSecret := getEnv("JWT_SECRET", "development-secret-change-in-production")
	port := getEnvInt("PORT", 8080)
	databaseURL := getEnv("DATABASE_URL", "")
	redisURL := getEnv("REDIS_URL", "")

	ctx := context.Background()

	// ===== Initialize PostgreSQL (optional) =====
	var db *postgres.DB
	if databaseURL != "" {
		log.Println("Connecting to PostgreSQL...")
		dbConfig := postgres.DefaultConfig(databaseURL)
		dbConfig.MaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", dbConfig.MaxOpenConns)
		dbConfig.MaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", dbConfig.MaxIdleConns)
		dbConfig.ConnMaxLifetime = getEnvDuration("DB_CONN_MAX_LIFETIME_SEC", int(dbConfig.ConnMaxLifetime/time.Second))
		dbConfig.ConnMaxIdleTime = getEnvDuration("DB_CONN_MAX_IDLE_SEC", int(dbConfig.ConnMaxIdleTime/time.Second))
		var err error
		db, err = postgres.Connect(ctx, dbConfig)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Initialize schema (idempotent)
		if err := db.InitSchema(ctx); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}
		log.Println("PostgreSQL connected and schema initialized")
	} else {
		log.Println("DATABASE_URL not set: history, plan and report stages are disabled")
	}

	// ===== Initialize Redis (optional) =====
	var redisClient *redis.Client
	if redisURL != "" {
		log.Println("Connecting to Redis...")
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Fatalf("Failed to parse Redis URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		log.Println("Redis connected")
	}

	// ===== Driven adapters (infrastructure) =====
	authAdapter := auth.NewAdapter(jwtSecret)

	var (
		history     driven.HistoryStore
		plans       driven.PlanStore
		reports     driven.ReportStore
		invalidator driven.HistoryInvalidator
		dbPinger    http.Pinger
		redisPinger http.Pinger
	)
	if db != nil {
		history = postgres.NewHistoryStore(db)
		plans = postgres.NewPlanStore(db)
		reports = postgres.NewReportStore(db)
		dbPinger = db
	}

	// ===== History cache (Redis in front of PostgreSQL) =====
	if redisClient != nil {
		redisPinger = redisPing{client: redisClient}
		if history != nil {
			cache := redisadapter.NewHistoryCache(redisClient, history, redisadapter.HistoryCacheConfig{
				TTL:    getEnvDuration("HISTORY_CACHE_TTL_SEC", int(redisadapter.DefaultHistoryTTL/time.Second)),
				Logger: logger,
			})
			history = cache
			invalidator = cache
			log.Println("Using Redis history cache")
		}
	}

	// ===== API clients (static list if configured, otherwise PostgreSQL) =====
	var clientStore driven.ClientStore
	if spec := getEnv("API_CLIENTS", ""); spec != "" {
		static, err := auth.ParseStaticClients(spec, authAdapter)
		if err != nil {
			log.Fatalf("Failed to parse API_CLIENTS: %v", err)
		}
		clientStore = static
		log.Printf("Using %d static API clients", static.Len())
	} else if db != nil {
		clientStore = postgres.NewClientStore(db)
		log.Println("Using PostgreSQL API client store")
	} else {
		log.Fatal("No API clients configured: set API_CLIENTS or DATABASE_URL")
	}

	// Services (core business logic)
	validationService, err := services.NewValidationService(services.ValidationServiceConfig{
		Thresholds:   thresholds,
		History:      history,
		Plans:        plans,
		StageTimeout: getEnvDuration("STAGE_TIMEOUT_SEC", int(services.DefaultStageTimeout/time.Second)),
		Logger:       logger,
	})
	if err != nil {
		log.Fatalf("Invalid thresholds: %v", err)
	}
	authService := services.NewAuthService(clientStore, authAdapter, getEnvDuration("TOKEN_TTL_SEC", int(services.DefaultTokenTTL/time.Second)))

	var reportService driving.ReportService
	if reports != nil {
		reportService = services.NewReportService(services.ReportServiceConfig{
			Validator: validationService,
			Reports:   reports,
			Cache:     invalidator,
			Logger:    logger,
		})
	}

	cfg := http.Config{
		Host:           getEnv("HOST", "0.0.0.0"),
		Port:           port,
		Version:        version,
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "")),
		Logger:         logger,
	}

	server := http.NewServer(
		cfg,
		http.Services{
			Auth:       authService,
			Validation: validationService,
			Reports:    reportService,
			Profiles:   profiles,
		},
		dbPinger,
		redisPinger,
	)

	log.Printf("API server starting on :%d", port)
	if err := server.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// runCheck validates one document file offline and prints the issues.
// Exit status is 1 when any error-severity issue is found.
func runCheck(logger *slog.Logger, path string, thresholds domain.Thresholds) int {
	req, err := readRequest(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	validationService, err := services.NewValidationService(services.ValidationServiceConfig{
		Thresholds: thresholds,
		Logger:     logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	result, err := validationService.Validate(context.Background(), req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	if getEnvBool("CHECK_JSON", false) {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		fmt.Print(text.NewFormatter().Format(result, text.Options{
			NoColor: getEnvBool("NO_COLOR", false),
			Verbose: getEnvBool("VERBOSE", false),
		}))
	}

	if result.Counts.Error > 0 {
		return 1
	}
	return 0
}

// readRequest accepts either a full validation request or a bare document
func readRequest(path string) (domain.ValidationRequest, error) {
	var req domain.ValidationRequest
	data, err := os.ReadFile(path)
	if err != nil {
		return req, fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return req, fmt.Errorf("parse %s: %w", path, err)
	}
	if req.Document == nil {
		var doc domain.NormalizedDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			return req, fmt.Errorf("parse %s: %w", path, err)
		}
		req.Document = &doc
	}
	return req, nil
}

// loadThresholds reads THRESHOLD_FILE when set and resolves THRESHOLD_PROFILE
func loadThresholds() (*config.Profiles, domain.Thresholds) {
	profiles := config.Builtin()
	if path := getEnv("THRESHOLD_FILE", ""); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			log.Fatalf("Failed to load thresholds: %v", err)
		}
		profiles = loaded
	}

	thresholds, err := profiles.Resolve(getEnv("THRESHOLD_PROFILE", ""))
	if err != nil {
		log.Fatalf("Failed to resolve threshold profile: %v", err)
	}
	return profiles, thresholds
}

func newLogger(format, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// redisPing adapts the Redis client to the readiness check
type redisPing struct {
	client *redis.Client
}

func (p redisPing) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

// getEnvDuration reads a whole number of seconds
func getEnvDuration(key string, defaultSeconds int) time.Duration {
	return time.Duration(getEnvInt(key, defaultSeconds)) * time.Second
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
