package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/vodcomms/vodcomms/pkg/validator"

	"github.com/vodcomms/vodcomms/internal/adapter/handler"
	"github.com/vodcomms/vodcomms/internal/adapter/repository"
	"github.com/vodcomms/vodcomms/internal/infrastructure/cache"
	"github.com/vodcomms/vodcomms/internal/infrastructure/database"
	"github.com/vodcomms/vodcomms/internal/infrastructure/storage"
	processingUsecase "github.com/vodcomms/vodcomms/internal/usecase/processing"
	sessionUsecase "github.com/vodcomms/vodcomms/internal/usecase/session"
	"github.com/vodcomms/vodcomms/pkg/config"
)

// @title           vodcomms API
// @version         0.1
// @description     Scrim/VOD review backend: sessions, media uploads, and transcript chunking

// @host      localhost:8080
// @BasePath  /

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// Request IDs for log correlation
	e.Use(middleware.RequestID())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowCredentials: true,
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Apply migrations only when explicitly enabled in config.
	// Production deployments should run sql-migrate from CI/CD instead.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("DB_AUTO_MIGRATE is enabled in production. Disable it and run sql-migrate from CI/CD.")
		}
		if err := database.Migrate(db); err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping migrations; run sql-migrate from CI/CD")
	}

	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize lock store
	var locks cache.LockStore
	if cfg.Cache.Driver == "memory" {
		log.Println("⚠️  Using in-memory lock store (no Redis, single replica only)")
		locks = cache.NewMemoryStore()
	} else {
		log.Println("📦 Connecting to Redis...")
		locks, err = cache.NewRedisClient(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
	}
	defer locks.Close()

	// Initialize object storage
	log.Println("🪣 Connecting to MinIO...")
	minioClient, err := storage.NewMinIOClient(&cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to connect to MinIO: %v", err)
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	sessionRepo := repository.NewSessionRepository(db)
	chunkRepo := repository.NewChunkRepository(db)

	// Initialize chunker engine
	chunker, err := processingUsecase.NewChunker(&cfg.Transcriber, logger)
	if err != nil {
		log.Fatalf("Failed to initialize chunker: %v", err)
	}
	log.Printf("🎙️  Chunker engine: %s", chunker.Engine())

	// Initialize services
	log.Println("✨ Initializing services...")
	sessionService := sessionUsecase.NewService(sessionRepo, chunkRepo, minioClient, cfg, logger)
	extractor := processingUsecase.NewExtractor(&cfg.FFmpeg, logger)
	processingService := processingUsecase.NewService(
		sessionRepo,
		chunkRepo,
		minioClient,
		locks,
		chunker,
		extractor,
		cfg,
		logger,
	)

	// Initialize handlers
	sessionHandler := handler.NewSessionHandler(sessionService, logger)
	mediaHandler := handler.NewMediaHandler(sessionService, processingService, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, sessionHandler, mediaHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
