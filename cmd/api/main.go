package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/ShamarKellman/power-tranz/internal/adapter/handler"
	"github.com/ShamarKellman/power-tranz/internal/adapter/middleware"
	"github.com/ShamarKellman/power-tranz/internal/adapter/storage"
	"github.com/ShamarKellman/power-tranz/internal/core/config"
	"github.com/ShamarKellman/power-tranz/internal/core/worker"
)

func main() {
	// 1. Load Config
	cfg := config.LoadConfig()

	// 2. Setup Logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 3. Build the network table. A broken table is fatal.
	rules, err := cfg.BuildRuleset()
	if err != nil {
		slog.Error("❌ Invalid card network configuration", "error", err, "rules_file", cfg.RulesFile)
		os.Exit(1)
	}
	for _, id := range cfg.AllowedNetworks {
		if !rules.Has(id) {
			slog.Warn("Ignoring unknown network in ALLOWED_NETWORKS", "network", id)
		}
	}
	if cfg.APIKeyHash == "" {
		slog.Warn("API_KEY_HASH is not set, protected routes are open")
	}

	policy := handler.NetworkPolicy{
		Rules:            rules,
		AllowedNetworks:  cfg.AllowedNetworks,
		AllowTestNumbers: cfg.AllowTestNumbers,
	}
	cardHandler := &handler.CardHandler{Policy: policy}
	authHandler := &handler.AuthorizationHandler{Policy: policy, Cards: cardHandler}

	// 4. Connect to Database (optional, enables check history)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var stopped <-chan struct{}
	if cfg.DatabaseURL != "" {
		connectCtx, connectCancel := context.WithTimeout(ctx, 10*time.Second)
		dbPool, err := storage.ConnectDB(connectCtx, cfg.DatabaseURL)
		connectCancel()
		if err != nil {
			slog.Error("❌ Database connection failed", "error", err)
			os.Exit(1)
		}
		defer func() {
			dbPool.Close()
			slog.Info("✅ Database connection closed")
		}()

		checkRepo := storage.NewCheckRepository(dbPool)
		if err := checkRepo.Migrate(ctx); err != nil {
			slog.Error("❌ Database migration failed", "error", err)
			os.Exit(1)
		}
		cardHandler.Repo = checkRepo

		// 5. Start Worker
		stopped = worker.StartRetentionWorker(ctx, checkRepo, cfg.CheckRetention, time.Hour)
	} else {
		slog.Info("DATABASE_URL is not set, check history disabled")
	}

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          handler.ErrorHandler,
	})

	app.Use(cors.New())
	app.Use(middleware.RequestID())

	// 7. Routes
	handler.SetupRoutes(app, cardHandler, authHandler, cfg.APIKeyHash)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("🚀 Server starting", "env", cfg.Env, "port", cfg.Port, "networks", len(rules.IDs()))
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("Server forced to shutdown", "error", err)
		}
	}()

	<-stop
	slog.Info("🛑 Shutting down server...")

	// Tell Fiber to stop accepting new requests and finish active ones
	if err := app.Shutdown(); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}

	cancel()
	if stopped != nil {
		<-stopped
	}

	slog.Info("👋 Server exited successfully")
}
