package postgres

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"strings"
	"testing"

	"devjournal/cmd/internal/domain/postgres/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsAreEmbedded(t *testing.T) {
	names, err := fs.Glob(migrations.FS, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)

	raw, err := fs.ReadFile(migrations.FS, names[0])
	require.NoError(t, err)

	sqlText := string(raw)
	assert.Contains(t, sqlText, "-- +goose Up")
	assert.Contains(t, sqlText, "-- +goose Down")
	assert.Contains(t, sqlText, "BEFORE UPDATE ON entries")
	assert.True(t, strings.Contains(sqlText, "gen_random_uuid()"))
}

func TestMigrate_RunsEmbeddedDir(t *testing.T) {
	orig := gooseUp
	t.Cleanup(func() { gooseUp = orig })

	var gotDir string
	gooseUp = func(_ context.Context, _ *sql.DB, dir string) error {
		gotDir = dir
		return nil
	}

	require.NoError(t, Migrate(context.Background(), nil))
	assert.Equal(t, ".", gotDir)
}

func TestMigrate_WrapsError(t *testing.T) {
	orig := gooseUp
	t.Cleanup(func() { gooseUp = orig })

	boom := errors.New("relation already exists")
	gooseUp = func(context.Context, *sql.DB, string) error { return boom }

	err := Migrate(context.Background(), nil)
	assert.ErrorIs(t, err, boom)
}

func TestOpen_InvalidDSN(t *testing.T) {
	_, err := Open(context.Background(), Options{DSN: "postgres://user@localhost:notaport/db"})
	assert.Error(t, err)
}
