// ABOUTME: Full-catalog export of categories, exercise types, and entries.
// ABOUTME: Supports JSON and YAML formats for inspection and machine backup.
package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harperreed/plainfit/internal/calendar"
	"github.com/harperreed/plainfit/internal/models"
)

// ExportVersion is the format version written into every export.
const ExportVersion = "1.0"

// ExportData represents the full export format for fitness data.
type ExportData struct {
	Version       string               `json:"version" yaml:"version"`
	ExportedAt    time.Time            `json:"exported_at" yaml:"exported_at"`
	Tool          string               `json:"tool" yaml:"tool"`
	Categories    []*models.Category   `json:"categories" yaml:"categories"`
	ExerciseTypes []ExportExerciseType `json:"exercise_types" yaml:"exercise_types"`
	Entries       []ExportEntry        `json:"entries" yaml:"entries"`
}

// ExportExerciseType is an exercise type with the names of its categories.
type ExportExerciseType struct {
	ID         int64        `json:"id" yaml:"id"`
	Name       string       `json:"name" yaml:"name"`
	Kinds      models.Kinds `json:"type" yaml:"type"`
	Icon       *string      `json:"icon,omitempty" yaml:"icon,omitempty"`
	Color      *string      `json:"color,omitempty" yaml:"color,omitempty"`
	Categories []string     `json:"categories" yaml:"categories"`
}

// ExportEntry is a fitness entry with its duration in milliseconds.
type ExportEntry struct {
	ID           int64     `json:"id" yaml:"id"`
	Exercise     string    `json:"exercise" yaml:"exercise"`
	DurationMs   int64     `json:"duration_ms" yaml:"duration_ms"`
	Date         time.Time `json:"date" yaml:"date"`
	SetID        int64     `json:"set_id" yaml:"set_id"`
	Reps         int       `json:"reps" yaml:"reps"`
	Distance     *float64  `json:"distance,omitempty" yaml:"distance,omitempty"`
	DistanceUnit *string   `json:"distance_unit,omitempty" yaml:"distance_unit,omitempty"`
	Weight       *float64  `json:"weight,omitempty" yaml:"weight,omitempty"`
	WeightUnit   *string   `json:"weight_unit,omitempty" yaml:"weight_unit,omitempty"`
	Description  *string   `json:"description,omitempty" yaml:"description,omitempty"`
}

// GetAllData retrieves all data for export.
func (d *DB) GetAllData() (*ExportData, error) {
	categories, err := d.ListCategories()
	if err != nil {
		return nil, err
	}

	types, err := d.ListExerciseTypes()
	if err != nil {
		return nil, err
	}

	categoryNames, err := d.categoryNamesByExerciseType()
	if err != nil {
		return nil, err
	}

	exportTypes := make([]ExportExerciseType, 0, len(types))
	for _, et := range types {
		names := categoryNames[et.ID]
		if names == nil {
			names = []string{}
		}
		exportTypes = append(exportTypes, ExportExerciseType{
			ID:         et.ID,
			Name:       et.Name,
			Kinds:      et.Kinds,
			Icon:       et.Icon,
			Color:      et.Color,
			Categories: names,
		})
	}

	entries, err := d.ListEntries()
	if err != nil {
		return nil, err
	}

	exportEntries := make([]ExportEntry, 0, len(entries))
	for _, e := range entries {
		exportEntries = append(exportEntries, ExportEntry{
			ID:           e.ID,
			Exercise:     e.ExerciseName,
			DurationMs:   e.Duration.Milliseconds(),
			Date:         e.Date.UTC(),
			SetID:        e.SetID,
			Reps:         e.Reps,
			Distance:     e.Distance,
			DistanceUnit: e.DistanceUnit,
			Weight:       e.Weight,
			WeightUnit:   e.WeightUnit,
			Description:  e.Description,
		})
	}

	if categories == nil {
		categories = []*models.Category{}
	}

	return &ExportData{
		Version:       ExportVersion,
		ExportedAt:    time.Now().UTC(),
		Tool:          "plainfit",
		Categories:    categories,
		ExerciseTypes: exportTypes,
		Entries:       exportEntries,
	}, nil
}

// categoryNamesByExerciseType loads every link in one query.
func (d *DB) categoryNamesByExerciseType() (map[int64][]string, error) {
	rows, err := d.db.Query(`
		SELECT etc.exercise_type_id, c.name
		FROM exercise_type_categories etc
		JOIN categories c ON c.id = etc.category_id
		ORDER BY etc.exercise_type_id, c.name`)
	if err != nil {
		return nil, fmt.Errorf("list category links: %w", classify(err))
	}
	defer rows.Close()

	names := make(map[int64][]string)
	for rows.Next() {
		var typeID int64
		var name string
		if err := rows.Scan(&typeID, &name); err != nil {
			return nil, fmt.Errorf("scan category link: %w", classify(err))
		}
		names[typeID] = append(names[typeID], name)
	}
	return names, rows.Err()
}

// ExportJSON exports all data as JSON.
func (d *DB) ExportJSON() ([]byte, error) {
	data, err := d.GetAllData()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports all data as YAML, with entries grouped by exercise.
func (d *DB) ExportYAML() ([]byte, error) {
	data, err := d.GetAllData()
	if err != nil {
		return nil, err
	}

	yamlData := struct {
		Version       string                 `yaml:"version"`
		ExportedAt    string                 `yaml:"exported_at"`
		Tool          string                 `yaml:"tool"`
		Categories    []*models.Category     `yaml:"categories"`
		ExerciseTypes []ExportExerciseType   `yaml:"exercise_types"`
		Entries       map[string][]yamlEntry `yaml:"entries"`
	}{
		Version:       data.Version,
		ExportedAt:    data.ExportedAt.Format(time.RFC3339),
		Tool:          data.Tool,
		Categories:    data.Categories,
		ExerciseTypes: data.ExerciseTypes,
		Entries:       make(map[string][]yamlEntry),
	}

	for _, e := range data.Entries {
		ye := yamlEntry{
			ID:       e.ID,
			SetID:    e.SetID,
			Date:     e.Date.Format(time.RFC3339),
			Reps:     e.Reps,
			Duration: calendar.FormatDuration(e.DurationMs),
		}
		if e.Distance != nil {
			ye.Distance = withUnit(*e.Distance, e.DistanceUnit)
		}
		if e.Weight != nil {
			ye.Weight = withUnit(*e.Weight, e.WeightUnit)
		}
		if e.Description != nil {
			ye.Description = *e.Description
		}
		yamlData.Entries[e.Exercise] = append(yamlData.Entries[e.Exercise], ye)
	}

	return yaml.Marshal(yamlData)
}

type yamlEntry struct {
	ID          int64  `yaml:"id"`
	SetID       int64  `yaml:"set_id"`
	Date        string `yaml:"date"`
	Reps        int    `yaml:"reps,omitempty"`
	Duration    string `yaml:"duration"`
	Distance    string `yaml:"distance,omitempty"`
	Weight      string `yaml:"weight,omitempty"`
	Description string `yaml:"description,omitempty"`
}

func withUnit(value float64, unit *string) string {
	s := formatOptionalFloat(&value)
	if unit != nil {
		s += " " + *unit
	}
	return s
}
