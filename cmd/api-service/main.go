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

	"traderizz/internal/api/config"
	delivery "traderizz/internal/api/delivery/http"
	"traderizz/internal/api/repository"
	"traderizz/internal/api/service"
	"traderizz/pkg/logger"
	"traderizz/pkg/postgres"
	"traderizz/pkg/redis"
	"traderizz/pkg/storage"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the API service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting API Service", logger.Field("name", cfg.App.Name))

	// Initialize database
	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Database.LogLevel,
	}
	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Initialize Redis
	redisCfg := redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	}
	redisClient, err := redis.NewClient(redisCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
	}
	defer redisClient.Close()

	// Initialize blob storage for uploaded images
	blobStore, err := storage.New(storage.Config{
		BaseDir:       cfg.Storage.BaseDir,
		BaseURL:       cfg.Storage.BaseURL,
		MaxUploadSize: cfg.Storage.MaxUploadSize,
	})
	if err != nil {
		appLogger.Fatal("Failed to initialize blob storage", logger.ErrorField(err))
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.DB)
	profileRepo := repository.NewProfileRepository(db.DB)
	postRepo := repository.NewPostRepository(db.DB)
	holdingRepo := repository.NewStockHoldingRepository(db.DB)
	profitRepo := repository.NewRealizedProfitRepository(db.DB)
	symbolRepo := repository.NewSymbolRepository(db.DB)

	// Initialize services
	authSvc, err := service.NewAuthService(userRepo, profileRepo, redisClient.Client, *cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize auth service", logger.ErrorField(err))
	}
	profileSvc := service.NewProfileService(profileRepo, blobStore, appLogger)
	postSvc := service.NewPostService(postRepo, blobStore, appLogger)
	portfolioSvc := service.NewPortfolioService(holdingRepo, profitRepo, appLogger)
	symbolSvc, err := service.NewSymbolService(symbolRepo, *cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize symbol service", logger.ErrorField(err))
	}

	// Refresh the cached symbol directory on schedule
	if err := symbolSvc.StartRefresher(ctx); err != nil {
		appLogger.Fatal("Failed to start symbol refresher", logger.ErrorField(err))
	}

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	authMW := delivery.AuthMiddleware(authSvc)
	rateMW := delivery.RateLimitMiddleware(cfg.Auth.LoginRatePerMinute, cfg.Auth.LoginRateBurst)

	// Initialize handlers and routes
	apiV1 := e.Group("/api/v1")

	authHandler := delivery.NewAuthHandler(authSvc, appLogger)
	authHandler.RegisterRoutes(apiV1.Group("/auth"), authMW, rateMW)

	profileHandler := delivery.NewProfileHandler(profileSvc, appLogger)
	profileHandler.RegisterRoutes(apiV1.Group("/profile", authMW))

	postHandler := delivery.NewPostHandler(postSvc, appLogger)
	postHandler.RegisterRoutes(apiV1.Group("/posts", authMW))

	portfolioHandler := delivery.NewPortfolioHandler(portfolioSvc, appLogger)
	portfolioHandler.RegisterRoutes(apiV1.Group("/portfolio", authMW))

	symbolHandler := delivery.NewSymbolHandler(symbolSvc, appLogger)
	symbolHandler.RegisterRoutes(apiV1.Group("/symbols", authMW))

	// Serve uploaded images
	e.Static("/uploads", blobStore.BaseDir())

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	// Gracefully shutdown the server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

func main() {
	rootCmd := &cobra.Command{Use: "api-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-api.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing api-service CLI: %s\n", err)
		os.Exit(1)
	}
}
