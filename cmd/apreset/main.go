package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/assocpipe/apreset/internal/cleanup"
	"github.com/assocpipe/apreset/internal/config"
	"github.com/assocpipe/apreset/internal/database"
	"github.com/assocpipe/apreset/internal/logging"
	"github.com/assocpipe/apreset/internal/metrics"
)

func main() {
	// Optional .env for local runs; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stderr, nil)).Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stderr, nil)).Error("failed to init logger", "error", err)
		os.Exit(1)
	}

	logger.Info("starting apreset", "target", cfg.Database.URL)

	ctx := context.Background()

	dbCfg := database.DefaultConfig()
	dbCfg.URL = cfg.Database.URL
	dbCfg.ConnectTimeout = cfg.Database.ConnectTimeout

	db, dialect, err := database.Connect(ctx, dbCfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.HealthCheck(ctx, db); err != nil {
		logger.Error("database health check failed", "error", err)
		os.Exit(1)
	}
	logger.Info("database connected", "dialect", string(dialect))

	collector, err := metrics.NewCollector()
	if err != nil {
		logger.Error("failed to init metrics", "error", err)
		os.Exit(1)
	}

	runner := cleanup.NewRunner(db, dialect, logger, collector)
	runner.StatementTimeout = cfg.Database.StatementTimeout

	report, err := runner.Run(ctx)
	if err != nil {
		logger.Error("cleanup run failed", "run_id", report.RunID, "error", err)
		os.Exit(1)
	}

	ok, failed := collector.Snapshot()
	logger.Info("cleanup complete",
		"run_id", report.RunID,
		"statements_ok", ok,
		"statements_failed", failed,
		"duration", report.Finished.Sub(report.Started))
}
