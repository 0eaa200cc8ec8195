// ABOUTME: Tests for schema migrations and database file validation.
// ABOUTME: Upgrades a version 1 file in place and rejects newer schemas.
package storage

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeV1Database creates a database file frozen at schema version 1.
func writeV1Database(t *testing.T, path string) {
	t.Helper()

	raw, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer raw.Close()

	for _, stmt := range []string{schemaVersionTable, schemaV1} {
		_, err := raw.Exec(stmt)
		require.NoError(t, err)
	}
	_, err = raw.Exec("INSERT INTO schema_version (version, applied_at) VALUES (1, ?)", time.Now().UnixMilli())
	require.NoError(t, err)
	_, err = raw.Exec("INSERT INTO categories (name) VALUES ('Cardio')")
	require.NoError(t, err)
	_, err = raw.Exec("INSERT INTO exercise_types (name, type) VALUES ('Running', 'distance,time')")
	require.NoError(t, err)
	_, err = raw.Exec(`INSERT INTO fitness_entries (exercise_type_id, duration, date, set_id, reps)
		VALUES (1, 60000, ?, 1, 0)`, time.Now().UnixMilli())
	require.NoError(t, err)
	_, err = raw.Exec("INSERT INTO entry_categories (entry_id, category_id) VALUES (1, 1)")
	require.NoError(t, err)
}

// bumpSchemaVersion marks a database as written by a newer build.
func bumpSchemaVersion(t *testing.T, path string, version int) {
	t.Helper()

	raw, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer raw.Close()

	_, err = raw.Exec("INSERT INTO schema_version (version, applied_at) VALUES (?, ?)", version, time.Now().UnixMilli())
	require.NoError(t, err)
}

func TestOpenFreshDatabaseIsCurrent(t *testing.T) {
	db := setupTestDB(t)

	version, err := schemaVersion(db.db)
	require.NoError(t, err)
	assert.Equal(t, currentSchemaVersion, version)

	info, err := os.Stat(db.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestMigrateFromVersion1(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.db")
	writeV1Database(t, path)

	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	version, err := schemaVersion(db.db)
	require.NoError(t, err)
	assert.Equal(t, currentSchemaVersion, version)

	c, err := db.GetCategoryByName("Cardio")
	require.NoError(t, err)
	assert.Equal(t, "figure.walk", c.Icon)
	assert.Equal(t, "#007AFF", c.Color)

	entries, err := db.ListEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].Description)

	var count int
	err = db.db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE name = 'entry_categories'").Scan(&count)
	require.NoError(t, err)
	assert.Zero(t, count, "legacy link table dropped")
}

func TestMigrateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plainfit.db")

	for i := 0; i < 3; i++ {
		db, err := Open(path)
		require.NoError(t, err)
		require.NoError(t, db.Close())
	}
}

func TestOpenRejectsNewerSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "future.db")

	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	bumpSchemaVersion(t, path, currentSchemaVersion+1)

	_, err = Open(path)
	assert.ErrorIs(t, err, ErrSchemaTooNew)
}

func TestValidateDatabaseFile(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.db")
	db, err := Open(good)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	old := filepath.Join(dir, "old.db")
	writeV1Database(t, old)

	future := filepath.Join(dir, "future.db")
	db, err = Open(future)
	require.NoError(t, err)
	require.NoError(t, db.Close())
	bumpSchemaVersion(t, future, currentSchemaVersion+5)

	garbage := filepath.Join(dir, "garbage.db")
	require.NoError(t, os.WriteFile(garbage, []byte("definitely not sqlite, just some bytes"), 0600))

	foreign := filepath.Join(dir, "foreign.db")
	raw, err := sql.Open("sqlite", foreign)
	require.NoError(t, err)
	_, err = raw.Exec("CREATE TABLE notes (id INTEGER PRIMARY KEY, body TEXT)")
	require.NoError(t, err)
	require.NoError(t, raw.Close())

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{name: "current", path: good},
		{name: "older version", path: old},
		{name: "newer version", path: future, wantErr: ErrSchemaTooNew},
		{name: "not a database", path: garbage, wantErr: ErrIncompatibleDatabase},
		{name: "unrelated database", path: foreign, wantErr: ErrIncompatibleDatabase},
		{name: "missing file", path: filepath.Join(dir, "nope.db"), wantErr: ErrIO},
		{name: "directory", path: dir, wantErr: ErrIncompatibleDatabase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseFile(tt.path)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
