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

	"github.com/materiallab/materialmap/internal/api"
	"github.com/materiallab/materialmap/internal/api/middleware"
	"github.com/materiallab/materialmap/internal/config"
	"github.com/materiallab/materialmap/internal/display"
	"github.com/materiallab/materialmap/internal/imagegen"
	"github.com/materiallab/materialmap/internal/imageref"
	"github.com/materiallab/materialmap/internal/logger"
	"github.com/materiallab/materialmap/internal/repository"
	"github.com/materiallab/materialmap/internal/service"
)

func main() {
	// Load configuration
	// Support CONFIG_PATH environment variable for production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	appLogger := logger.NewFromEnv(logger.LoadFromEnv())
	logger.SetDefaultLogger(appLogger)
	defer logger.Sync()

	// Initialize database
	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// Initialize repositories
	materialRepo := repository.NewMaterialRepository(db)
	imageRepo := repository.NewImageRepository(db)

	// Initialize image reference resolver
	resolverCfg := imageref.Config{
		BaseURL:     cfg.Images.BaseURL,
		Version:     cfg.Images.Version,
		ProjectRoot: cfg.Images.ProjectRoot,
	}
	if cfg.Images.LegacyFallback {
		resolverCfg.Legacy = imageref.DirScanLookup{ProjectRoot: cfg.Images.ProjectRoot}
	}
	resolver := imageref.NewResolver(resolverCfg)

	// Initialize generator and display adapter
	generator, err := imagegen.NewGenerator(cfg.Images.ProjectRoot, cfg.Images.FontPath)
	if err != nil {
		logger.Fatal("Failed to initialize image generator: %v", err)
	}
	adapter := display.NewAdapter(cfg.Images.ProjectRoot, cfg.Images.FontPath)

	// Initialize services
	materialService := service.NewMaterialService(materialRepo, appLogger)
	imageService := service.NewImageService(
		materialRepo,
		imageRepo,
		resolver,
		generator,
		adapter,
		appLogger,
		cfg.Images.ProjectRoot,
		&service.ImageConfig{
			AutoHeal: cfg.Images.AutoHeal,
		},
	)
	diagnosticsService := service.NewDiagnosticsService(materialRepo, resolver, appLogger, cfg.Images.ProjectRoot)

	// Optional startup self-heal pass. Runs in the background so a large
	// catalog does not delay serving.
	if cfg.Images.HealOnStartup {
		go func() {
			ctx := appLogger.WithContext(context.Background())
			if _, err := imageService.EnsureAll(ctx); err != nil {
				logger.CtxError(ctx, "Startup image ensure pass failed: %v", err)
			}
		}()
	}

	// Setup router
	router := api.SetupRouter(materialService, imageService, diagnosticsService, appLogger, api.RouterConfig{
		Mode:       cfg.Server.Mode,
		AdminToken: cfg.Admin.Token,
		CORS: middleware.CORSConfig{
			AllowedOrigins:  cfg.Server.CORS.AllowedOrigins,
			AllowAllOrigins: cfg.Server.CORS.AllowAllOrigins,
		},
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting API server: port=%d mode=%s", cfg.Server.Port, cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}
