// ABOUTME: Consistent database snapshots and validated, atomic restores.
// ABOUTME: Restore keeps the previous file as <db>.bak and rolls back on failure.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// Backup writes a consistent snapshot of the live database to dst.
// The snapshot is built next to dst and renamed into place.
func (d *DB) Backup(dst string) error {
	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("%w: create backup directory: %v", ErrIO, err)
	}

	tmp := stagingPath(dst, "backup")
	if _, err := d.db.Exec("VACUUM INTO ?", tmp); err != nil {
		removeQuietly(tmp)
		return fmt.Errorf("backup to %s: %w", dst, classify(err))
	}
	if err := os.Rename(tmp, dst); err != nil {
		removeQuietly(tmp)
		return fmt.Errorf("%w: move backup into place: %v", ErrIO, err)
	}

	logrus.WithField("path", dst).Info("database backed up")
	return nil
}

// Restore replaces the live database with the file at src. The candidate
// is validated before the live file is touched; if the restored file cannot
// be opened the previous database is put back.
func (d *DB) Restore(src string) error {
	if err := ValidateDatabaseFile(src); err != nil {
		return fmt.Errorf("restore from %s: %w", src, err)
	}

	live := d.dbPath
	staged := stagingPath(live, "restore")
	if err := copyFile(src, staged); err != nil {
		removeQuietly(staged)
		return fmt.Errorf("restore from %s: %w", src, err)
	}

	// Fold the WAL into the main file so the rollback copy is complete.
	if _, err := d.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		logrus.WithError(err).Warn("wal checkpoint before restore failed")
	}
	if err := d.db.Close(); err != nil {
		removeQuietly(staged)
		return multierr.Append(fmt.Errorf("close live database: %w", err), d.reconnect())
	}
	removeQuietly(live + "-wal")
	removeQuietly(live + "-shm")

	bak := live + ".bak"
	if err := os.Rename(live, bak); err != nil {
		removeQuietly(staged)
		return multierr.Append(fmt.Errorf("%w: keep rollback copy: %v", ErrIO, err), d.reconnect())
	}

	if err := os.Rename(staged, live); err != nil {
		removeQuietly(staged)
		return multierr.Append(fmt.Errorf("%w: move restored database into place: %v", ErrIO, err), d.rollback(bak))
	}

	conn, err := connect(live)
	if err != nil {
		return multierr.Append(fmt.Errorf("open restored database: %w", err), d.rollback(bak))
	}
	d.db = conn

	logrus.WithFields(logrus.Fields{
		"source":   src,
		"rollback": bak,
	}).Info("database restored")
	return nil
}

// rollback puts the .bak file back in place and reopens it.
func (d *DB) rollback(bak string) error {
	logrus.WithField("path", bak).Warn("restore failed, rolling back")
	removeQuietly(d.dbPath + "-wal")
	removeQuietly(d.dbPath + "-shm")
	if err := os.Rename(bak, d.dbPath); err != nil {
		return fmt.Errorf("%w: roll back to %s: %v", ErrIO, bak, err)
	}
	return d.reconnect()
}

func (d *DB) reconnect() error {
	conn, err := connect(d.dbPath)
	if err != nil {
		return fmt.Errorf("reopen database: %w", err)
	}
	d.db = conn
	return nil
}

// stagingPath names a hidden temp file in the same directory as target so
// the final rename stays on one file system.
func stagingPath(target, purpose string) string {
	dir, base := filepath.Split(target)
	return filepath.Join(dir, fmt.Sprintf(".%s.%s-%s.tmp", base, purpose, uuid.NewString()))
}

func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", ErrIO, src, err)
	}
	defer func() { err = multierr.Append(err, in.Close()) }()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", ErrIO, dst, err)
	}
	defer func() { err = multierr.Append(err, out.Close()) }()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("%w: copy %s: %v", ErrIO, src, err)
	}
	if err := out.Sync(); err != nil {
		return fmt.Errorf("%w: sync %s: %v", ErrIO, dst, err)
	}
	return nil
}

func removeQuietly(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).WithField("path", path).Warn("remove temp file")
	}
}
