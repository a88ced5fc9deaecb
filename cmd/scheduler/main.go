package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/segyhp/rental-engine/internal/config"
	"github.com/segyhp/rental-engine/internal/database"
	"github.com/segyhp/rental-engine/internal/domain"
	"github.com/segyhp/rental-engine/internal/logging"
	"github.com/segyhp/rental-engine/internal/metrics"
	"github.com/segyhp/rental-engine/internal/repository"
	"github.com/segyhp/rental-engine/internal/scheduler"
	"github.com/segyhp/rental-engine/internal/service"
	"go.uber.org/zap"
)

const jobTimeout = 5 * time.Minute

func main() {
	runOnce := flag.Bool("run-once", false, "run the expire-quotes sweep once and exit")
	flag.Parse()

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

	if err := run(cfg, logger, *runOnce); err != nil {
		logger.Fatal("scheduler failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger, runOnce bool) error {
	loc := cfg.Location()
	now := func() time.Time { return time.Now().In(loc) }

	db := database.NewHandle(database.PostgresOpener(cfg.Database))
	defer db.Close()

	migrator := database.NewMigrator(db, domain.NormalizeCurrency(cfg.Business.DefaultCurrency), logger)
	if err := migrator.Bootstrap(context.Background()); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	rentals := service.NewRentalService(repository.NewRentalRepository(db), now, logger, metrics.New())

	s, err := scheduler.New(cfg.Scheduler.ExpireQuotes, loc, jobTimeout, rentals, logger)
	if err != nil {
		return err
	}

	if runOnce {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		_, err := s.ExpireQuotes(ctx)
		return err
	}

	s.Start()
	logger.Info("expire-quotes job scheduled", zap.String("spec", cfg.Scheduler.ExpireQuotes), zap.String("timezone", loc.String()))

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down scheduler")
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	s.Stop(ctx)

	return nil
}
