package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
)

// Config represents runtime configuration derived from environment variables.
// Every default reproduces the historical zero-argument invocation, so a run
// with nothing set behaves exactly like the original cleanup script.
type Config struct {
	Database DatabaseConfig
	Logging  LoggingConfig
}

// DatabaseConfig holds connection parameters for the cleanup target.
type DatabaseConfig struct {
	// URL is a logical location of the form scheme://[user[:pass]@]host:port/schema.
	// mysql:// and postgres:// schemes are supported.
	URL              string
	ConnectTimeout   time.Duration
	StatementTimeout time.Duration
}

// LoggingConfig represents structured logging configuration.
type LoggingConfig struct {
	Level  slog.Level
	Format string
}

const (
	// defaultDatabaseURL is the location the association pipeline test runs
	// historically wrote to.
	defaultDatabaseURL = "mysql://lsst10.ncsa.uiuc.edu:3306/test"

	defaultConnectTimeout   = 10 * time.Second
	defaultStatementTimeout = 30 * time.Second

	defaultLogFormat = "json"
)

// Load reads configuration from environment variables, applying defaults when
// values are not provided.
func Load() (Config, error) {
	cfg := Config{
		Database: DatabaseConfig{
			URL:              getEnv("DATABASE_URL", defaultDatabaseURL),
			ConnectTimeout:   defaultConnectTimeout,
			StatementTimeout: defaultStatementTimeout,
		},
		Logging: LoggingConfig{
			Level:  slog.LevelInfo,
			Format: defaultLogFormat,
		},
	}

	if v := os.Getenv("DB_CONNECT_TIMEOUT_SECONDS"); v != "" {
		d, err := parseSeconds(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid DB_CONNECT_TIMEOUT_SECONDS: %w", err)
		}
		cfg.Database.ConnectTimeout = d
	}

	if v := os.Getenv("DB_STATEMENT_TIMEOUT_SECONDS"); v != "" {
		d, err := parseSeconds(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid DB_STATEMENT_TIMEOUT_SECONDS: %w", err)
		}
		cfg.Database.StatementTimeout = d
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		level, err := parseLogLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
		cfg.Logging.Level = level
	}

	if v := os.Getenv("LOG_FORMAT"); v != "" {
		switch v {
		case "json", "text":
			cfg.Logging.Format = v
		default:
			return Config{}, fmt.Errorf("invalid LOG_FORMAT: must be 'json' or 'text'")
		}
	}

	return cfg, nil
}

func parseSeconds(raw string) (time.Duration, error) {
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds < 0 {
		return 0, fmt.Errorf("must be a non-negative integer")
	}
	return time.Duration(seconds) * time.Second, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseLogLevel(raw string) (slog.Level, error) {
	switch raw {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("must be one of debug, info, warn, error")
	}
}
