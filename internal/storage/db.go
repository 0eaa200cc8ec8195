// ABOUTME: SQLite database connection and lifecycle management.
// ABOUTME: Uses modernc.org/sqlite (pure Go, no CGO required) over one connection.
package storage

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
	_ "modernc.org/sqlite"
)

// DB wraps the SQLite database connection.
type DB struct {
	db     *sql.DB
	dbPath string
}

// Compile-time check that DB implements Repository.
var _ Repository = (*DB)(nil)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// Open opens or creates a SQLite database at the given path and brings its
// schema up to date.
func Open(dbPath string) (*DB, error) {
	// Ensure parent directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("%w: create data directory: %v", ErrIO, err)
	}

	conn, err := connect(dbPath)
	if err != nil {
		return nil, err
	}

	return &DB{db: conn, dbPath: dbPath}, nil
}

// fileDSN builds a file: URI for path. The path is percent-escaped so names
// containing ? or # reach SQLite intact instead of being read as parameters.
func fileDSN(path string, params url.Values) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: resolve %s: %v", ErrIO, path, err)
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs), RawQuery: params.Encode()}
	return u.String(), nil
}

// connect opens the file, applies pragmas, and runs pending migrations.
func connect(dbPath string) (*sql.DB, error) {
	dsn, err := fileDSN(dbPath, url.Values{"_pragma": {"foreign_keys(1)", "busy_timeout(5000)"}})
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Single writer, single connection. Transactions must not touch db directly.
	db.SetMaxOpenConns(1)

	if err := configurePragmas(db); err != nil {
		return nil, multierr.Append(fmt.Errorf("configure pragmas: %w", classify(err)), db.Close())
	}

	if err := migrate(db); err != nil {
		return nil, multierr.Append(fmt.Errorf("initialize schema: %w", err), db.Close())
	}

	if err := os.Chmod(dbPath, 0600); err != nil && !os.IsNotExist(err) {
		return nil, multierr.Append(fmt.Errorf("%w: set database permissions: %v", ErrIO, err), db.Close())
	}

	logrus.WithField("path", dbPath).Debug("database opened")
	return db, nil
}

// DataDir returns the default data directory under $XDG_DATA_HOME.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "plainfit")
}

// Path returns the location of the live database file.
func (d *DB) Path() string {
	return d.dbPath
}

// Close closes the database connection.
func (d *DB) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// configurePragmas sets up SQLite for a single local writer.
func configurePragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}
	return nil
}

// withTx runs fn inside a transaction, rolling back on error.
func (d *DB) withTx(fn func(tx *sql.Tx) error) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", classify(err))
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return multierr.Append(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", classify(err))
	}
	return nil
}
