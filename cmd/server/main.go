package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/motoarena/backend-go/internal/api"
	"github.com/motoarena/backend-go/internal/config"
	"github.com/motoarena/backend-go/internal/database"
	"github.com/motoarena/backend-go/internal/database/repository"
	"github.com/motoarena/backend-go/internal/database/service"
	"github.com/motoarena/backend-go/internal/email"
	"github.com/motoarena/backend-go/internal/handler"
	"github.com/motoarena/backend-go/internal/logger"
	"github.com/motoarena/backend-go/internal/middleware"
	"github.com/motoarena/backend-go/internal/storage"
	"github.com/motoarena/backend-go/internal/worker"
)

const sweepInterval = 6 * time.Hour

func main() {
	// 1. Config
	cfg := config.LoadConfig()

	// 2. Logger
	appLogger := logger.New(cfg)

	appLogger.Info("🚀 [Go] Starting motoarena backend...",
		"environment", cfg.AppEnv,
	)

	// 3. Connect to Database
	if err := database.ConnectDatabase(cfg, appLogger); err != nil {
		appLogger.Error("❌ Failed to connect to database", "error", err)
		os.Exit(1)
	}

	db := database.GetDatabase()

	// 4. Initialize Repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	actionTokenRepo := repository.NewActionTokenRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	listingRepo := repository.NewListingRepository(db)
	expertiseRepo := repository.NewExpertiseRepository(db)

	// 5. Worker pool for background tasks
	pool := worker.NewPool(appLogger)
	defer pool.Shutdown(30 * time.Second)

	// 6. Initialize Services
	issuer := service.NewTokenIssuer(cfg)
	sender := email.NewSender(cfg, appLogger)
	authService := service.NewAuthService(userRepo, refreshTokenRepo, actionTokenRepo, issuer, sender, pool, cfg, appLogger)
	vehicleService := service.NewVehicleService(vehicleRepo, appLogger)
	listingService := service.NewListingService(listingRepo, expertiseRepo, vehicleRepo, appLogger)

	// 7. Storage for expertise documents
	store, err := storage.NewLocalStorage(cfg, appLogger)
	if err != nil {
		appLogger.Error("❌ Failed to initialize storage", "error", err)
		os.Exit(1)
	}

	// 8. Initialize Handlers & Middleware
	authHandler := handler.NewAuthHandler(authService, appLogger)
	vehicleHandler := handler.NewVehicleHandler(vehicleService, appLogger)
	listingHandler := handler.NewListingHandler(listingService, appLogger)
	reviewHandler := handler.NewReviewHandler(listingService, store, appLogger)
	authMiddleware := middleware.NewAuthMiddleware(authService, appLogger)

	// 9. Rate limiter for credential endpoints
	rateLimiter, err := middleware.NewRateLimiter(cfg, appLogger)
	if err != nil {
		appLogger.Warn("⚠️ Failed to connect to Redis, using no-op rate limiter", "error", err)
		rateLimiter = middleware.NewNoOpRateLimiter(appLogger)
	}
	defer rateLimiter.Close()

	// 10. Background token sweeper
	sweeper := worker.NewTokenSweeper(refreshTokenRepo, actionTokenRepo, appLogger)
	pool.SubmitPeriodic(sweepInterval, sweeper.Sweep)

	// 11. Router and HTTP Server
	r := api.SetupRouter(
		authHandler,
		vehicleHandler,
		listingHandler,
		reviewHandler,
		authMiddleware,
		middleware.LimitByClientIP(rateLimiter, appLogger),
		cfg.UploadDir,
	)

	addr := fmt.Sprintf(":%s", cfg.ApiServicePort)
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		appLogger.Info("🌍 [Go] HTTP Server running...", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("❌ HTTP Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// 12. Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("🛑 [Go] Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("❌ HTTP Server shutdown failed", "error", err)
	}
}
