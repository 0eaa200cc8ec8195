// ABOUTME: Row scanning helpers shared by the record store and queries.
// ABOUTME: Converts SQLite columns into models, including millisecond timestamps.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/harperreed/plainfit/internal/models"
)

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const categoryColumns = `c.id, c.name, c.icon, c.color`

const exerciseTypeColumns = `et.id, et.name, et.type, et.icon, et.color`

const entryColumns = `
	e.id, e.exercise_type_id, e.duration, e.date, e.set_id, e.reps,
	e.distance, e.distance_unit, e.weight, e.weight_unit, e.description,
	et.name, et.type`

const entryFrom = `
	FROM fitness_entries e
	JOIN exercise_types et ON et.id = e.exercise_type_id`

func toMillis(t time.Time) int64 {
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms)
}

func scanCategory(s scanner) (*models.Category, error) {
	var c models.Category
	if err := s.Scan(&c.ID, &c.Name, &c.Icon, &c.Color); err != nil {
		return nil, fmt.Errorf("scan category: %w", classify(err))
	}
	return &c, nil
}

func scanCategories(rows *sql.Rows) ([]*models.Category, error) {
	var categories []*models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func scanExerciseType(s scanner) (*models.ExerciseType, error) {
	var et models.ExerciseType
	var kinds string

	if err := s.Scan(&et.ID, &et.Name, &kinds, &et.Icon, &et.Color); err != nil {
		return nil, fmt.Errorf("scan exercise type: %w", classify(err))
	}

	parsed, err := models.ParseKinds(kinds)
	if err != nil {
		return nil, fmt.Errorf("invalid type for exercise %d in database: %w", et.ID, err)
	}
	et.Kinds = parsed

	return &et, nil
}

func scanExerciseTypes(rows *sql.Rows) ([]*models.ExerciseType, error) {
	var types []*models.ExerciseType
	for rows.Next() {
		et, err := scanExerciseType(rows)
		if err != nil {
			return nil, err
		}
		types = append(types, et)
	}
	return types, rows.Err()
}

func scanEntry(s scanner) (*models.FitnessEntry, error) {
	var e models.FitnessEntry
	var durationMs, dateMs int64
	var kinds string

	err := s.Scan(
		&e.ID, &e.ExerciseTypeID, &durationMs, &dateMs, &e.SetID, &e.Reps,
		&e.Distance, &e.DistanceUnit, &e.Weight, &e.WeightUnit, &e.Description,
		&e.ExerciseName, &kinds,
	)
	if err != nil {
		return nil, fmt.Errorf("scan entry: %w", classify(err))
	}

	e.Duration = time.Duration(durationMs) * time.Millisecond
	e.Date = fromMillis(dateMs)
	e.ExerciseKinds, err = models.ParseKinds(kinds)
	if err != nil {
		return nil, fmt.Errorf("invalid type for entry %d in database: %w", e.ID, err)
	}

	return &e, nil
}

func scanEntries(rows *sql.Rows) ([]*models.FitnessEntry, error) {
	var entries []*models.FitnessEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
