// ABOUTME: ExerciseType CRUD operations for SQLite storage.
// ABOUTME: Deleting a type cascades to its links but is refused while entries reference it.
package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/harperreed/plainfit/internal/models"
)

// CreateExerciseType stores a new exercise type and sets its generated ID.
func (d *DB) CreateExerciseType(et *models.ExerciseType) error {
	return createExerciseType(d.db, et)
}

func createExerciseType(q querier, et *models.ExerciseType) error {
	if err := validateExerciseType(et); err != nil {
		return fmt.Errorf("create exercise type: %w", err)
	}

	result, err := q.Exec(
		`INSERT INTO exercise_types (name, type, icon, color) VALUES (?, ?, ?, ?)`,
		et.Name, et.Kinds.String(), et.Icon, et.Color,
	)
	if err != nil {
		return fmt.Errorf("create exercise type %q: %w", et.Name, classify(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("create exercise type %q: %w", et.Name, err)
	}
	et.ID = id
	return nil
}

// GetExerciseType retrieves an exercise type by ID.
func (d *DB) GetExerciseType(id int64) (*models.ExerciseType, error) {
	row := d.db.QueryRow(`SELECT `+exerciseTypeColumns+` FROM exercise_types et WHERE et.id = ?`, id)
	et, err := scanExerciseType(row)
	if err != nil {
		return nil, fmt.Errorf("get exercise type %d: %w", id, err)
	}
	return et, nil
}

// FindExerciseType retrieves the oldest exercise type with the given name,
// ignoring case.
func (d *DB) FindExerciseType(name string) (*models.ExerciseType, error) {
	return findExerciseType(d.db, name)
}

func findExerciseType(q querier, name string) (*models.ExerciseType, error) {
	row := q.QueryRow(`
		SELECT `+exerciseTypeColumns+`
		FROM exercise_types et
		WHERE LOWER(et.name) = LOWER(?)
		ORDER BY et.id
		LIMIT 1`, strings.TrimSpace(name))
	et, err := scanExerciseType(row)
	if err != nil {
		return nil, fmt.Errorf("find exercise type %q: %w", name, err)
	}
	return et, nil
}

// ListExerciseTypes returns all exercise types ordered by name.
func (d *DB) ListExerciseTypes() ([]*models.ExerciseType, error) {
	return listExerciseTypes(d.db)
}

func listExerciseTypes(q querier) ([]*models.ExerciseType, error) {
	rows, err := q.Query(`SELECT ` + exerciseTypeColumns + ` FROM exercise_types et ORDER BY et.name, et.id`)
	if err != nil {
		return nil, fmt.Errorf("list exercise types: %w", classify(err))
	}
	defer rows.Close()

	return scanExerciseTypes(rows)
}

// UpdateExerciseType replaces the stored row with the same ID.
func (d *DB) UpdateExerciseType(et *models.ExerciseType) error {
	if err := validateExerciseType(et); err != nil {
		return fmt.Errorf("update exercise type: %w", err)
	}

	result, err := d.db.Exec(
		`UPDATE exercise_types SET name = ?, type = ?, icon = ?, color = ? WHERE id = ?`,
		et.Name, et.Kinds.String(), et.Icon, et.Color, et.ID,
	)
	if err != nil {
		return fmt.Errorf("update exercise type %d: %w", et.ID, classify(err))
	}
	return expectAffected(result, "update exercise type", et.ID)
}

// DeleteExerciseType removes an exercise type and its category links.
// Returns ErrForeignKey while entries still reference it.
func (d *DB) DeleteExerciseType(id int64) error {
	result, err := d.db.Exec("DELETE FROM exercise_types WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete exercise type %d: %w", id, classify(err))
	}
	return expectAffected(result, "delete exercise type", id)
}

func validateExerciseType(et *models.ExerciseType) error {
	et.Name = strings.TrimSpace(et.Name)
	if et.Name == "" {
		return errors.New("exercise type name must not be empty")
	}
	if len(et.Kinds) == 0 {
		return errors.New("exercise type must track at least one measurement")
	}
	et.Kinds = models.NewKinds(et.Kinds...)
	return nil
}
