//go:build integration

// Package testdb opens the integration-test database and isolates each test
// in a transaction that is rolled back on cleanup.
package testdb

import (
	"context"
	"database/sql"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/gaspigz/taskManagerClg/internal/platform/postgres"
	"github.com/gaspigz/taskManagerClg/internal/redact"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// URL environment variables, in lookup order.
const (
	EnvTestDatabaseURL = "TASKS_TEST_DATABASE_URL"
	EnvDatabaseURL     = "DATABASE_URL"
)

var migrateOnce sync.Once

// URL returns the first configured test database URL, or "".
func URL() string {
	for _, key := range []string{EnvTestDatabaseURL, EnvDatabaseURL} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

// Open connects to the test database and applies migrations once per test
// binary. The test is skipped when no URL is configured.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	url := URL()
	if url == "" {
		t.Skipf("%s or %s not set", EnvTestDatabaseURL, EnvDatabaseURL)
	}

	db, err := sql.Open("pgx", url)
	if err != nil {
		t.Fatalf("failed to open %s: %s", redact.String(url), redact.Error(err))
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("database %s unreachable: %s", redact.String(url), redact.Error(err))
	}

	var migrateErr error
	migrateOnce.Do(func() {
		migrateErr = postgres.Migrate(ctx, db, "up", nil)
	})
	if migrateErr != nil {
		t.Fatalf("migrations failed: %v", migrateErr)
	}
	return db
}

// Tx begins a transaction on db that is rolled back when the test ends.
func Tx(t *testing.T, db *sql.DB) *sql.Tx {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}
	t.Cleanup(func() { _ = tx.Rollback() })
	return tx
}
