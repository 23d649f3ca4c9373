package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/gaspigz/taskManagerClg/internal/platform/postgres/migrations"
	"github.com/pressly/goose/v3"
)

// MigrationTableName is the table goose uses to track applied migrations.
const MigrationTableName = "schema_migrations"

// gooseLogger forwards goose output to slog. Fatalf does not exit so callers
// keep control of the process lifecycle.
type gooseLogger struct {
	log *slog.Logger
}

func (l gooseLogger) Printf(format string, v ...any) {
	l.log.Info(fmt.Sprintf(format, v...))
}

func (l gooseLogger) Fatalf(format string, v ...any) {
	l.log.Error(fmt.Sprintf(format, v...))
}

// gooseRun is a seam for testing goose.RunContext.
var gooseRun = goose.RunContext

// Migrate runs a goose command ("up", "down", "status", "reset", "version")
// against the embedded migrations.
func Migrate(ctx context.Context, db *sql.DB, command string, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("component", "migrations"), slog.String("command", command))

	switch command {
	case "up", "down", "status", "reset", "version":
	default:
		return fmt.Errorf("unsupported migration command %q", command)
	}

	goose.SetBaseFS(migrations.FS)
	goose.SetTableName(MigrationTableName)
	goose.SetLogger(gooseLogger{log: log})
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := gooseRun(ctx, command, db, "."); err != nil {
		log.Error("migration failed", slog.String("error", err.Error()))
		return fmt.Errorf("migration %s failed: %w", command, err)
	}

	log.Info("migration completed")
	return nil
}
