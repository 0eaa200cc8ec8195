// ABOUTME: Typed storage errors and SQLite error classification.
// ABOUTME: Callers test failures with errors.Is against the sentinels here.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	// ErrNotFound means the referenced row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateName means a unique name is already taken.
	ErrDuplicateName = errors.New("duplicate name")
	// ErrForeignKey means a referenced row is missing or still referenced.
	ErrForeignKey = errors.New("foreign key violation")
	// ErrIO wraps file system and disk failures.
	ErrIO = errors.New("i/o error")

	ErrSchemaTooNew         = errors.New("database schema is newer than this build supports")
	ErrIncompatibleDatabase = errors.New("incompatible database")

	ErrHeaderMismatch      = errors.New("csv header mismatch")
	ErrMalformedRow        = errors.New("malformed csv row")
	ErrUnknownExerciseType = errors.New("unknown exercise type")
)

// classify maps driver errors onto the storage sentinels, keeping the
// original error in the chain.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	var se *sqlite.Error
	if !errors.As(err, &se) {
		return err
	}

	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return fmt.Errorf("%w: %w", ErrDuplicateName, err)
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return fmt.Errorf("%w: %w", ErrForeignKey, err)
	}

	switch se.Code() & 0xff {
	case sqlite3.SQLITE_CONSTRAINT:
		msg := se.Error()
		if strings.Contains(msg, "FOREIGN KEY") {
			return fmt.Errorf("%w: %w", ErrForeignKey, err)
		}
		if strings.Contains(msg, "UNIQUE") {
			return fmt.Errorf("%w: %w", ErrDuplicateName, err)
		}
	case sqlite3.SQLITE_IOERR, sqlite3.SQLITE_CANTOPEN, sqlite3.SQLITE_FULL,
		sqlite3.SQLITE_READONLY, sqlite3.SQLITE_NOTADB, sqlite3.SQLITE_CORRUPT:
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return err
}
