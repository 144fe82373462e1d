package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justicechristophersam-ai/spaflow/internal/admin"
	"github.com/justicechristophersam-ai/spaflow/internal/config"
	"github.com/justicechristophersam-ai/spaflow/internal/db"
	"github.com/justicechristophersam-ai/spaflow/internal/logger"
	"github.com/justicechristophersam-ai/spaflow/internal/notify"
	"github.com/justicechristophersam-ai/spaflow/internal/realtime"
	"github.com/justicechristophersam-ai/spaflow/internal/server"
)

// @title spaflow API
// @version 1.0
// @description Booking API for the spa: public slot booking plus the admin dashboard.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()
	defer logger.Sync()
	logger.Info("Starting spaflow")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	logger.Info("Connecting to database...")
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()
	logger.Info("Database connected")

	if err := db.RunMigrations(database, "migrations"); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Migrations completed")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := admin.Bootstrap(ctx, admin.NewRepository(database), cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		logger.Fatalf("Failed to bootstrap admin account: %v", err)
	}

	notifier := notify.New(cfg.WebhookURL, cfg.RedisAddr)
	defer notifier.Close()
	go notifier.Start(ctx)
	logger.Info("Webhook service initialized")

	hub := realtime.NewHub()
	broker := realtime.NewBroker(cfg.RedisAddr)
	defer broker.Close()
	go broker.Listen(ctx, hub)

	srv := server.New(database, cfg, notifier, hub, broker)

	serverErrChan := make(chan error, 1)
	go func() {
		logger.Infof("Server starting on port %s", cfg.Port)
		if err := srv.Start(cfg.Port); err != nil && err != http.ErrServerClosed {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Infof("Received signal: %v", sig)
	case err := <-serverErrChan:
		logger.Errorf("Server error: %v", err)
	}

	logger.Info("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error during server shutdown: %v", err)
	}

	logger.Info("Server stopped")
}
