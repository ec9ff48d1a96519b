package database

import (
	"context"
	"os"
	"testing"
)

// TestConnectAndHealthCheck exercises the full connect path against a live
// server.
func TestConnectAndHealthCheck(t *testing.T) {
	dbURL := os.Getenv("APRESET_TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("APRESET_TEST_DATABASE_URL not set - run manually against a disposable database")
	}

	ctx := context.Background()

	cfg := DefaultConfig()
	cfg.URL = dbURL
	db, dialect, err := Connect(ctx, cfg)
	if err != nil {
		t.Fatalf("Connect returned error: %v", err)
	}
	defer db.Close()

	if dialect != DialectMySQL && dialect != DialectPostgres {
		t.Fatalf("unexpected dialect %q", dialect)
	}

	if err := HealthCheck(ctx, db); err != nil {
		t.Errorf("HealthCheck returned error: %v", err)
	}
}

func TestConnectRejectsBadLocation(t *testing.T) {
	_, _, err := Connect(context.Background(), Config{URL: "sqlite:///tmp/test.db"})
	if err == nil {
		t.Fatal("expected error for unsupported scheme")
	}
}
