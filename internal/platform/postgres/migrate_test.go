package postgres

import (
	"context"
	"database/sql"
	"io/fs"
	"testing"

	"github.com/gaspigz/taskManagerClg/internal/platform/postgres/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	files, err := fs.Glob(migrations.FS, "*.sql")
	require.NoError(t, err)
	assert.Equal(t, []string{"00001_create_users.sql", "00002_create_tasks.sql"}, files)
}

func TestMigrateRejectsUnknownCommand(t *testing.T) {
	err := Migrate(context.Background(), nil, "create", nil)
	assert.ErrorContains(t, err, "unsupported migration command")
}

func TestMigrateRunsGoose(t *testing.T) {
	original := gooseRun
	defer func() { gooseRun = original }()

	var gotCommand, gotDir string
	gooseRun = func(ctx context.Context, command string, db *sql.DB, dir string, args ...string) error {
		gotCommand, gotDir = command, dir
		return nil
	}

	require.NoError(t, Migrate(context.Background(), &sql.DB{}, "up", nil))
	assert.Equal(t, "up", gotCommand)
	assert.Equal(t, ".", gotDir)
}
