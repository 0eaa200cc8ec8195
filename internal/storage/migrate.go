// ABOUTME: Schema migration runner and database compatibility checks.
// ABOUTME: Applies pending migrations in order and rejects newer databases.
package storage

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// migrate brings the schema up to currentSchemaVersion.
func migrate(db *sql.DB) error {
	if _, err := db.Exec(schemaVersionTable); err != nil {
		return fmt.Errorf("create schema_version table: %w", classify(err))
	}

	version, err := schemaVersion(db)
	if err != nil {
		return err
	}
	if version > currentSchemaVersion {
		return fmt.Errorf("%w: database is at version %d, this build supports up to %d",
			ErrSchemaTooNew, version, currentSchemaVersion)
	}

	for _, m := range migrations {
		if m.version <= version {
			continue
		}
		if err := applyMigration(db, m); err != nil {
			return fmt.Errorf("apply migration %d (%s): %w", m.version, m.name, err)
		}
		logrus.WithFields(logrus.Fields{
			"version": m.version,
			"name":    m.name,
		}).Info("applied schema migration")
	}

	return nil
}

// schemaVersion returns the highest applied migration, 0 for a fresh file.
func schemaVersion(q querier) (int, error) {
	var version int
	err := q.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("check schema version: %w", classify(err))
	}
	return version, nil
}

func applyMigration(db *sql.DB, m migration) error {
	tx, err := db.Begin()
	if err != nil {
		return classify(err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(m.stmts); err != nil {
		return classify(err)
	}
	if _, err := tx.Exec(
		"INSERT INTO schema_version (version, applied_at) VALUES (?, ?)",
		m.version, time.Now().UnixMilli(),
	); err != nil {
		return classify(err)
	}

	return tx.Commit()
}

// ValidateDatabaseFile checks that the file at path is a PlainFit database
// this build can open, without modifying it.
func ValidateDatabaseFile(path string) (err error) {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrIncompatibleDatabase, path)
	}

	dsn, err := fileDSN(path, url.Values{"mode": {"ro"}})
	if err != nil {
		return err
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("open candidate database: %w", err)
	}
	defer func() { err = multierr.Append(err, db.Close()) }()

	var check string
	if err := db.QueryRow("PRAGMA quick_check").Scan(&check); err != nil {
		return fmt.Errorf("%w: %w", ErrIncompatibleDatabase, classify(err))
	}
	if check != "ok" {
		return fmt.Errorf("%w: integrity check: %s", ErrIncompatibleDatabase, check)
	}

	for _, table := range requiredTables {
		var count int
		err := db.QueryRow(
			"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table,
		).Scan(&count)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrIncompatibleDatabase, classify(err))
		}
		if count == 0 {
			return fmt.Errorf("%w: missing table %s", ErrIncompatibleDatabase, table)
		}
	}

	version, err := schemaVersion(db)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIncompatibleDatabase, err)
	}
	switch {
	case version > currentSchemaVersion:
		return fmt.Errorf("%w: candidate is at version %d, this build supports up to %d",
			ErrSchemaTooNew, version, currentSchemaVersion)
	case version < 1:
		return fmt.Errorf("%w: no schema version recorded", ErrIncompatibleDatabase)
	}

	return nil
}
