// ABOUTME: FitnessEntry and exercise set operations for SQLite storage.
// ABOUTME: Sets are groups of entries sharing a set_id; edits replace the whole set.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/plainfit/internal/models"
)

// CreateEntry stores a single entry and sets its generated ID.
// An entry without a set ID is placed in a new set of its own.
func (d *DB) CreateEntry(e *models.FitnessEntry) error {
	return d.withTx(func(tx *sql.Tx) error {
		if e.SetID == 0 {
			setID, err := nextSetID(tx)
			if err != nil {
				return err
			}
			e.SetID = setID
		}
		return insertEntry(tx, e)
	})
}

func insertEntry(q querier, e *models.FitnessEntry) error {
	if err := validateEntry(e); err != nil {
		return fmt.Errorf("create entry: %w", err)
	}

	result, err := q.Exec(`
		INSERT INTO fitness_entries (
			exercise_type_id, duration, date, set_id, reps,
			distance, distance_unit, weight, weight_unit, description
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ExerciseTypeID, e.Duration.Milliseconds(), toMillis(e.Date), e.SetID, e.Reps,
		e.Distance, e.DistanceUnit, e.Weight, e.WeightUnit, e.Description,
	)
	if err != nil {
		return fmt.Errorf("create entry for exercise type %d: %w", e.ExerciseTypeID, classify(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("create entry: %w", err)
	}
	e.ID = id
	return nil
}

// GetEntry retrieves an entry by ID.
func (d *DB) GetEntry(id int64) (*models.FitnessEntry, error) {
	row := d.db.QueryRow(`SELECT `+entryColumns+entryFrom+` WHERE e.id = ?`, id)
	e, err := scanEntry(row)
	if err != nil {
		return nil, fmt.Errorf("get entry %d: %w", id, err)
	}
	return e, nil
}

// UpdateEntry replaces the stored row with the same ID.
func (d *DB) UpdateEntry(e *models.FitnessEntry) error {
	if err := validateEntry(e); err != nil {
		return fmt.Errorf("update entry: %w", err)
	}

	result, err := d.db.Exec(`
		UPDATE fitness_entries SET
			exercise_type_id = ?, duration = ?, date = ?, set_id = ?, reps = ?,
			distance = ?, distance_unit = ?, weight = ?, weight_unit = ?, description = ?
		WHERE id = ?`,
		e.ExerciseTypeID, e.Duration.Milliseconds(), toMillis(e.Date), e.SetID, e.Reps,
		e.Distance, e.DistanceUnit, e.Weight, e.WeightUnit, e.Description, e.ID,
	)
	if err != nil {
		return fmt.Errorf("update entry %d: %w", e.ID, classify(err))
	}
	return expectAffected(result, "update entry", e.ID)
}

// DeleteEntry removes a single entry.
func (d *DB) DeleteEntry(id int64) error {
	result, err := d.db.Exec("DELETE FROM fitness_entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete entry %d: %w", id, classify(err))
	}
	return expectAffected(result, "delete entry", id)
}

// ListEntries returns every entry ordered by date ascending.
func (d *DB) ListEntries() ([]*models.FitnessEntry, error) {
	return listEntries(d.db)
}

func listEntries(q querier) ([]*models.FitnessEntry, error) {
	rows, err := q.Query(`SELECT ` + entryColumns + entryFrom + ` ORDER BY e.date, e.id`)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", classify(err))
	}
	defer rows.Close()

	return scanEntries(rows)
}

// DeleteAllEntries removes every entry and returns how many were deleted.
func (d *DB) DeleteAllEntries() (int64, error) {
	return deleteAllEntries(d.db)
}

func deleteAllEntries(q querier) (int64, error) {
	result, err := q.Exec("DELETE FROM fitness_entries")
	if err != nil {
		return 0, fmt.Errorf("delete all entries: %w", classify(err))
	}
	return result.RowsAffected()
}

// GenerateSetID returns one more than the largest set ID in use, or 1.
// Not isolated from other writers; AddSet generates inside its transaction.
func (d *DB) GenerateSetID() (int64, error) {
	return nextSetID(d.db)
}

func nextSetID(q querier) (int64, error) {
	var maxID sql.NullInt64
	if err := q.QueryRow("SELECT MAX(set_id) FROM fitness_entries").Scan(&maxID); err != nil {
		return 0, fmt.Errorf("generate set id: %w", classify(err))
	}
	if !maxID.Valid {
		return 1, nil
	}
	return maxID.Int64 + 1, nil
}

// AddSet stores a batch of entries under a newly generated set ID and
// returns that ID. Any SetID on the entries is overwritten.
func (d *DB) AddSet(entries []*models.FitnessEntry) (int64, error) {
	if len(entries) == 0 {
		return 0, errors.New("add set: no entries")
	}

	var setID int64
	err := d.withTx(func(tx *sql.Tx) error {
		var err error
		setID, err = nextSetID(tx)
		if err != nil {
			return err
		}
		return insertSet(tx, setID, entries)
	})
	if err != nil {
		return 0, err
	}
	return setID, nil
}

// ReplaceSet deletes every entry of the set and inserts the given entries
// under the same set ID, atomically.
func (d *DB) ReplaceSet(setID int64, entries []*models.FitnessEntry) error {
	return d.withTx(func(tx *sql.Tx) error {
		if _, err := deleteSet(tx, setID); err != nil {
			return err
		}
		return insertSet(tx, setID, entries)
	})
}

func insertSet(q querier, setID int64, entries []*models.FitnessEntry) error {
	for _, e := range entries {
		e.SetID = setID
		if err := insertEntry(q, e); err != nil {
			return fmt.Errorf("set %d: %w", setID, err)
		}
	}
	return nil
}

// DeleteSet removes every entry with the given set ID.
func (d *DB) DeleteSet(setID int64) error {
	affected, err := deleteSet(d.db, setID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("delete set %d: %w", setID, ErrNotFound)
	}
	return nil
}

func deleteSet(q querier, setID int64) (int64, error) {
	result, err := q.Exec("DELETE FROM fitness_entries WHERE set_id = ?", setID)
	if err != nil {
		return 0, fmt.Errorf("delete set %d: %w", setID, classify(err))
	}
	return result.RowsAffected()
}

func validateEntry(e *models.FitnessEntry) error {
	if e.ExerciseTypeID == 0 {
		return errors.New("entry has no exercise type")
	}
	if e.Reps < 0 {
		return fmt.Errorf("reps must not be negative, got %d", e.Reps)
	}
	if e.Duration < 0 {
		return fmt.Errorf("duration must not be negative, got %s", e.Duration)
	}
	if e.Distance != nil && *e.Distance < 0 {
		return fmt.Errorf("distance must not be negative, got %v", *e.Distance)
	}
	if e.Weight != nil && *e.Weight < 0 {
		return fmt.Errorf("weight must not be negative, got %v", *e.Weight)
	}
	if e.Date.IsZero() {
		e.Date = time.Now()
	}
	return nil
}
