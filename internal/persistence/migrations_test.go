package persistence

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFilesSortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"002_categories.sql", "001_init.sql", "README.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "003_dir.sql"), 0o700))

	files, err := migrationFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_init.sql", "002_categories.sql"}, files)

	_, err = migrationFiles(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestInMemoryPostgres(t *testing.T) {
	pg := &Postgres{}
	assert.True(t, pg.InMemory())
	assert.Nil(t, pg.PoolHandle())
	assert.ErrorIs(t, pg.Ping(context.Background()), ErrNoDatabase)

	var missing *Redis
	assert.False(t, missing.Enabled())
	assert.ErrorIs(t, missing.Ping(context.Background()), ErrRedisDisabled)
	assert.NoError(t, missing.Close())
}
