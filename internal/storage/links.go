// ABOUTME: Many-to-many links between categories and exercise types.
// ABOUTME: Link rows cascade away when either side is deleted.
package storage

import (
	"database/sql"
	"fmt"

	"github.com/harperreed/plainfit/internal/models"
)

// LinkExerciseType adds an exercise type to a category. Linking twice is a no-op.
func (d *DB) LinkExerciseType(exerciseTypeID, categoryID int64) error {
	return linkExerciseType(d.db, exerciseTypeID, categoryID)
}

func linkExerciseType(q querier, exerciseTypeID, categoryID int64) error {
	_, err := q.Exec(
		`INSERT OR IGNORE INTO exercise_type_categories (exercise_type_id, category_id) VALUES (?, ?)`,
		exerciseTypeID, categoryID,
	)
	if err != nil {
		return fmt.Errorf("link exercise type %d to category %d: %w", exerciseTypeID, categoryID, classify(err))
	}
	return nil
}

// UnlinkExerciseType removes an exercise type from a category.
func (d *DB) UnlinkExerciseType(exerciseTypeID, categoryID int64) error {
	result, err := d.db.Exec(
		`DELETE FROM exercise_type_categories WHERE exercise_type_id = ? AND category_id = ?`,
		exerciseTypeID, categoryID,
	)
	if err != nil {
		return fmt.Errorf("unlink exercise type %d: %w", exerciseTypeID, classify(err))
	}
	return expectAffected(result, "unlink exercise type", exerciseTypeID)
}

// SetExerciseTypeCategories replaces all category links of an exercise type.
func (d *DB) SetExerciseTypeCategories(exerciseTypeID int64, categoryIDs []int64) error {
	return d.withTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(
			`DELETE FROM exercise_type_categories WHERE exercise_type_id = ?`, exerciseTypeID,
		); err != nil {
			return fmt.Errorf("clear categories of exercise type %d: %w", exerciseTypeID, classify(err))
		}
		for _, categoryID := range categoryIDs {
			if err := linkExerciseType(tx, exerciseTypeID, categoryID); err != nil {
				return err
			}
		}
		return nil
	})
}

// ExerciseTypesForCategory returns the exercise types in a category, by name.
func (d *DB) ExerciseTypesForCategory(categoryID int64) ([]*models.ExerciseType, error) {
	rows, err := d.db.Query(`
		SELECT `+exerciseTypeColumns+`
		FROM exercise_types et
		INNER JOIN exercise_type_categories etc ON et.id = etc.exercise_type_id
		WHERE etc.category_id = ?
		ORDER BY et.name, et.id`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list exercise types for category %d: %w", categoryID, classify(err))
	}
	defer rows.Close()

	return scanExerciseTypes(rows)
}

// CategoriesForExerciseType returns the categories of an exercise type, by name.
func (d *DB) CategoriesForExerciseType(exerciseTypeID int64) ([]*models.Category, error) {
	rows, err := d.db.Query(`
		SELECT `+categoryColumns+`
		FROM categories c
		INNER JOIN exercise_type_categories etc ON c.id = etc.category_id
		WHERE etc.exercise_type_id = ?
		ORDER BY c.name`, exerciseTypeID)
	if err != nil {
		return nil, fmt.Errorf("list categories for exercise type %d: %w", exerciseTypeID, classify(err))
	}
	defer rows.Close()

	return scanCategories(rows)
}
