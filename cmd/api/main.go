package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-applytrack-backend/config"
	_ "go-applytrack-backend/docs" // Important for Swagger
	v1 "go-applytrack-backend/internal/delivery/http/v1"
	"go-applytrack-backend/internal/repository/postgres"
	"go-applytrack-backend/internal/usecase"
	"go-applytrack-backend/pkg/audit"
	"go-applytrack-backend/pkg/auth"
	"go-applytrack-backend/pkg/database"
	"go-applytrack-backend/pkg/logger"
	"go-applytrack-backend/pkg/redis"
	"go-applytrack-backend/pkg/storage"
	"go-applytrack-backend/pkg/validation"
)

// @title           ApplyTrack API
// @version         1.0
// @description     Job application tracking backend using Clean Architecture.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.Environment)
	logger.Log.Info("Starting applytrack backend", "port", cfg.Port)

	auditLog, err := audit.NewLogger("applytrack-api", cfg.Environment)
	if err != nil {
		logger.Log.Error("Failed to initialize audit logger", "error", err)
		os.Exit(1)
	}
	defer auditLog.Sync()

	// 3. Setup Database
	ctx := context.Background()
	dbPool, err := database.NewPostgresPool(ctx, cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (rate limiting; the app degrades to in-memory limits without it)
	if cfg.RedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
		} else {
			defer redis.Close()
		}
	}

	// 5. Setup Object Storage (resume uploads)
	var store *storage.Store
	if cfg.S3Bucket != "" {
		store, err = storage.NewStore(ctx, storage.Config{
			Provider:        storage.Provider(cfg.S3Provider),
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretKey,
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			WasabiEndpoint:  cfg.S3WasabiEndpoint,
		})
		if err != nil {
			logger.Log.Error("Failed to initialize object storage", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Log.Warn("Object storage not configured - resume uploads will be unavailable")
	}

	// 6. Setup Repositories
	profileRepo := postgres.NewProfileRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)

	// 7. Setup UseCases
	validate := validation.New()
	profileUC := usecase.NewProfileUsecase(profileRepo, validate, auditLog)
	jobUC := usecase.NewJobUsecase(jobRepo, validate)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, jobRepo, auditLog)

	// 8. Setup Auth Provider (JWKS)
	jwksURL := cfg.SupabaseUrl + "/auth/v1/.well-known/jwks.json"
	jwksProvider := auth.NewProvider(jwksURL)

	// 9. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ProfileUC:     profileUC,
		JobUC:         jobUC,
		ApplicationUC: applicationUC,
		Store:         store,
		Audit:         auditLog,
		JWKSProvider:  jwksProvider,
		Config:        cfg,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
