package iocache

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/mythster/mythster-JiraSprintDashboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateRuns_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	var out bytes.Buffer

	require.NoError(t, MigrateRuns(schema.SQLiteBackend, path, 1, &out))
	assert.Contains(t, out.String(), "from version 0 to version 1")

	out.Reset()
	require.NoError(t, MigrateRuns(schema.SQLiteBackend, path, -1, &out))
	assert.Contains(t, out.String(), "to version 2")

	out.Reset()
	require.NoError(t, MigrateRuns(schema.SQLiteBackend, path, -1, &out))
	assert.Contains(t, out.String(), "already at the latest version")

	out.Reset()
	require.NoError(t, MigrateRuns(schema.SQLiteBackend, path, 0, &out))
	assert.Contains(t, out.String(), "rolled back from version 2 to version 0")

	out.Reset()
	require.NoError(t, MigrateRuns(schema.SQLiteBackend, path, 0, &out))
	assert.Contains(t, out.String(), "already at version 0")
}

func TestMigrateRuns_StoreUsableAfterUp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	require.NoError(t, MigrateRuns(schema.SQLiteBackend, path, -1, &bytes.Buffer{}))

	store, err := NewRunStore(schema.SQLiteBackend, path)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	_, err = store.BeginRun(sampleSummary("").StartDate, nil)
	assert.NoError(t, err)
}

func TestMigrateRuns_UnknownVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	assert.Error(t, MigrateRuns(schema.SQLiteBackend, path, 99, &bytes.Buffer{}))
}

func TestMigrateRuns_NoneBackend(t *testing.T) {
	err := MigrateRuns(schema.NoneBackend, "", -1, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported")
}

func TestMigrationFilesPerBackend(t *testing.T) {
	for _, backend := range []schema.DatabaseBackend{schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend} {
		t.Run(string(backend), func(t *testing.T) {
			entries, err := migrationsFS.ReadDir("migrations/" + string(backend))
			require.NoError(t, err)
			assert.Len(t, entries, 4)
		})
	}
}
