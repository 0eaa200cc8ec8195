// ABOUTME: Tests for Category, ExerciseType, FitnessEntry, and Activity models.
// ABOUTME: Validates constructors, builders, and badge fallback.
package models

import (
	"testing"
	"time"
)

func TestNewCategory(t *testing.T) {
	c := NewCategory("Cardio").WithIcon("figure.run").WithColor("#FF3B30")

	if c.Name != "Cardio" {
		t.Errorf("Name = %s, want Cardio", c.Name)
	}
	if c.Icon != "figure.run" || c.Color != "#FF3B30" {
		t.Errorf("unexpected badge %s %s", c.Icon, c.Color)
	}
	if NewCategory("x").Icon != DefaultIcon {
		t.Error("expected default icon")
	}
}

func TestExerciseTypeBadgeFallback(t *testing.T) {
	cat := NewCategory("Strength").WithIcon("dumbbell").WithColor("#111111")
	et := NewExerciseType("Squat", KindWeight, KindReps)

	icon, color := et.Badge(cat)
	if icon != "dumbbell" || color != "#111111" {
		t.Errorf("Badge() = %s %s, want category badge", icon, color)
	}

	et.WithIcon("figure.squat")
	icon, color = et.Badge(cat)
	if icon != "figure.squat" || color != "#111111" {
		t.Errorf("Badge() = %s %s, want icon override", icon, color)
	}

	icon, _ = NewExerciseType("Plank", KindTime).Badge(nil)
	if icon != DefaultIcon {
		t.Errorf("Badge(nil) icon = %s, want %s", icon, DefaultIcon)
	}
}

func TestNewEntryBuilders(t *testing.T) {
	at := time.Date(2024, 3, 5, 7, 30, 0, 0, time.UTC)
	e := NewEntry(3).
		WithDate(at).
		WithDuration(90*time.Second).
		WithReps(12).
		WithWeight(60, "kg").
		WithDistance(0, "").
		WithDescription("").
		WithSetID(4)

	if e.ExerciseTypeID != 3 || e.SetID != 4 || e.Reps != 12 {
		t.Errorf("unexpected entry %+v", e)
	}
	if !e.Date.Equal(at) {
		t.Errorf("Date = %v, want %v", e.Date, at)
	}
	if e.Weight == nil || *e.Weight != 60 || e.WeightUnit == nil || *e.WeightUnit != "kg" {
		t.Error("expected weight 60 kg")
	}
	if e.Distance == nil || e.DistanceUnit != nil {
		t.Error("expected distance set with no unit")
	}
	if e.Description != nil {
		t.Error("expected empty description to stay nil")
	}
}

func TestActivityCategoryName(t *testing.T) {
	a := Activity{ExerciseType: *NewExerciseType("Running", KindDistance)}
	if a.CategoryName() != "" {
		t.Error("expected empty category name")
	}
	a.Category = NewCategory("Cardio")
	if a.CategoryName() != "Cardio" {
		t.Errorf("CategoryName() = %s, want Cardio", a.CategoryName())
	}
}
