package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/segyhp/rental-engine/internal/cache"
	"github.com/segyhp/rental-engine/internal/config"
	"github.com/segyhp/rental-engine/internal/database"
	"github.com/segyhp/rental-engine/internal/domain"
	"github.com/segyhp/rental-engine/internal/handler"
	"github.com/segyhp/rental-engine/internal/logging"
	"github.com/segyhp/rental-engine/internal/metrics"
	"github.com/segyhp/rental-engine/internal/repository"
	"github.com/segyhp/rental-engine/internal/service"
	"github.com/segyhp/rental-engine/internal/validation"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx := context.Background()
	loc := cfg.Location()
	now := func() time.Time { return time.Now().In(loc) }
	defaultCurrency := domain.NormalizeCurrency(cfg.Business.DefaultCurrency)

	// Initialize database
	db := database.NewHandle(database.PostgresOpener(cfg.Database))
	defer db.Close()

	if err := database.NewMigrator(db, defaultCurrency, logger).Bootstrap(ctx); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// Redis is optional; without it settings are read from the database every time
	var (
		settingsCache service.SettingsCache
		redisPinger   handler.RedisPinger
	)
	if cfg.Redis.Enabled() {
		client, err := cache.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Health.Timeout)
		if err != nil {
			logger.Warn("settings cache disabled", zap.Error(err))
		} else {
			defer client.Close()
			settingsCache = cache.NewSettingsCache(client, cfg.Redis.SettingsTTL)
			redisPinger = client
		}
	}

	m := metrics.New()

	// Initialize repositories
	clientRepo := repository.NewClientRepository(db)
	equipmentRepo := repository.NewEquipmentRepository(db)
	rentalRepo := repository.NewRentalRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Initialize services
	clientService := service.NewClientService(clientRepo, now, logger)
	equipmentService := service.NewEquipmentService(equipmentRepo, now, logger)
	rentalService := service.NewRentalService(rentalRepo, now, logger, m)
	settingsService := service.NewSettingsService(settingsRepo, settingsCache, defaultCurrency, logger, m)
	documentService := service.NewDocumentService(rentalService, clientService, equipmentService, settingsService, now)

	validator := validation.New(now)

	router := handler.NewRouter(handler.Handlers{
		Health:     handler.NewHealthHandler(db, redisPinger, cfg.Health.Timeout),
		Clients:    handler.NewClientHandler(clientService, validator),
		Equipments: handler.NewEquipmentHandler(equipmentService, settingsService, validator),
		Rentals:    handler.NewRentalHandler(rentalService, equipmentService, settingsService, documentService, validator),
		Settings:   handler.NewSettingsHandler(settingsService, validator),
		Dashboard:  handler.NewDashboardHandler(clientService, equipmentService, rentalService),
	}, logger, m)

	server := &http.Server{
		Addr:         cfg.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", server.Addr), zap.String("env", cfg.Server.Env))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed to start: %w", err)
	case sig := <-quit:
		logger.Info("shutting down server", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("server exited")
	return nil
}
