// ABOUTME: FitnessEntry model for one logged round of an exercise.
// ABOUTME: Entries sharing a SetID form one exercise set.
package models

import "time"

// FitnessEntry is a single logged round of an exercise.
type FitnessEntry struct {
	ID             int64         `json:"id" yaml:"id"`
	ExerciseTypeID int64         `json:"exercise_type_id" yaml:"exercise_type_id"`
	Duration       time.Duration `json:"duration" yaml:"duration"`
	Date           time.Time     `json:"date" yaml:"date"`
	SetID          int64         `json:"set_id" yaml:"set_id"`
	Reps           int           `json:"reps" yaml:"reps"`
	Distance       *float64      `json:"distance,omitempty" yaml:"distance,omitempty"`
	DistanceUnit   *string       `json:"distance_unit,omitempty" yaml:"distance_unit,omitempty"`
	Weight         *float64      `json:"weight,omitempty" yaml:"weight,omitempty"`
	WeightUnit     *string       `json:"weight_unit,omitempty" yaml:"weight_unit,omitempty"`
	Description    *string       `json:"description,omitempty" yaml:"description,omitempty"`

	// Populated on read from the referenced exercise type.
	ExerciseName  string `json:"exercise_name,omitempty" yaml:"exercise_name,omitempty"`
	ExerciseKinds Kinds  `json:"exercise_type,omitempty" yaml:"exercise_type,omitempty"`
}

// NewEntry creates an entry for the exercise type logged now.
func NewEntry(exerciseTypeID int64) *FitnessEntry {
	return &FitnessEntry{
		ExerciseTypeID: exerciseTypeID,
		Date:           time.Now(),
	}
}

// WithDate sets the timestamp.
func (e *FitnessEntry) WithDate(t time.Time) *FitnessEntry {
	e.Date = t
	return e
}

// WithDuration sets the duration.
func (e *FitnessEntry) WithDuration(d time.Duration) *FitnessEntry {
	e.Duration = d
	return e
}

// WithReps sets the repetition count.
func (e *FitnessEntry) WithReps(reps int) *FitnessEntry {
	e.Reps = reps
	return e
}

// WithDistance sets distance and its unit.
func (e *FitnessEntry) WithDistance(distance float64, unit string) *FitnessEntry {
	e.Distance = &distance
	e.DistanceUnit = optional(unit)
	return e
}

// WithWeight sets weight and its unit.
func (e *FitnessEntry) WithWeight(weight float64, unit string) *FitnessEntry {
	e.Weight = &weight
	e.WeightUnit = optional(unit)
	return e
}

// WithDescription sets the free-text description.
func (e *FitnessEntry) WithDescription(description string) *FitnessEntry {
	e.Description = optional(description)
	return e
}

// WithSetID assigns the entry to a set.
func (e *FitnessEntry) WithSetID(setID int64) *FitnessEntry {
	e.SetID = setID
	return e
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
