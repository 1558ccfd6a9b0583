package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BerylCAtieno/kanine-extractor/internal/analyzer"
	"github.com/BerylCAtieno/kanine-extractor/internal/config"
	"github.com/BerylCAtieno/kanine-extractor/internal/router"
	"github.com/BerylCAtieno/kanine-extractor/internal/services"
	"github.com/BerylCAtieno/kanine-extractor/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger := utils.NewLogger(cfg.LogLevel)

	// One quota shared by every chat-completion call in the process
	limiter := analyzer.NewWindowLimiter(cfg.AIRateLimit, cfg.AIRateWindow, nil)

	var refiner analyzer.Refiner
	if cfg.AIEnabled {
		refiner = analyzer.NewFromConfig(cfg, limiter, logger)
	}

	contractService := services.NewService(cfg, refiner, logger)

	// Setup HTTP router
	handler := router.NewRouter(contractService, cfg.MaxFileSize, logger)

	// Each refinement attempt gets its own AITimeout and a Gemini primary
	// may fall back once, so a request can spend two budgets on AI
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2*cfg.AITimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting server",
			"port", cfg.Port,
			"ai_enabled", cfg.AIEnabled,
			"ai_provider", cfg.AIProvider)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
