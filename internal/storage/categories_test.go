// ABOUTME: Tests for category CRUD and category/exercise type links.
// ABOUTME: Covers unique names, cascades, and link replacement.
package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/plainfit/internal/models"
)

func TestCreateAndGetCategory(t *testing.T) {
	db := setupTestDB(t)

	c := models.NewCategory("  Cardio ").WithIcon("figure.run").WithColor("#FF3B30")
	require.NoError(t, db.CreateCategory(c))
	assert.NotZero(t, c.ID)

	got, err := db.GetCategory(c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cardio", got.Name)
	assert.Equal(t, "figure.run", got.Icon)
	assert.Equal(t, "#FF3B30", got.Color)

	byName, err := db.GetCategoryByName("Cardio")
	require.NoError(t, err)
	assert.Equal(t, c.ID, byName.ID)
}

func TestCategoryDefaults(t *testing.T) {
	db := setupTestDB(t)

	c := &models.Category{Name: "Misc"}
	require.NoError(t, db.CreateCategory(c))

	got, err := db.GetCategory(c.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultIcon, got.Icon)
	assert.Equal(t, models.DefaultColor, got.Color)
}

func TestCreateCategoryErrors(t *testing.T) {
	db := setupTestDB(t)
	mustCategory(t, db, "Cardio")

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "duplicate", input: "Cardio", wantErr: ErrDuplicateName},
		{name: "empty", input: "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := db.CreateCategory(models.NewCategory(tt.input))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestListCategoriesByName(t *testing.T) {
	db := setupTestDB(t)
	for _, name := range []string{"Strength", "Cardio", "Mobility"} {
		mustCategory(t, db, name)
	}

	categories, err := db.ListCategories()
	require.NoError(t, err)

	var names []string
	for _, c := range categories {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Cardio", "Mobility", "Strength"}, names)

	count, err := db.CountCategories()
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestUpdateCategory(t *testing.T) {
	db := setupTestDB(t)
	c := mustCategory(t, db, "Cardio")
	mustCategory(t, db, "Strength")

	c.Name = "Endurance"
	c.Color = "#000000"
	require.NoError(t, db.UpdateCategory(c))

	got, err := db.GetCategory(c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Endurance", got.Name)
	assert.Equal(t, "#000000", got.Color)

	c.Name = "Strength"
	assert.ErrorIs(t, db.UpdateCategory(c), ErrDuplicateName)

	missing := models.NewCategory("Ghost")
	missing.ID = 999
	assert.ErrorIs(t, db.UpdateCategory(missing), ErrNotFound)
}

func TestGetCategoryNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetCategory(42)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = db.GetCategoryByName("nope")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, db.DeleteCategory(42), ErrNotFound)
}

func TestDeleteCategoryCascadesLinks(t *testing.T) {
	db := setupTestDB(t)
	cardio := mustCategory(t, db, "Cardio")
	outdoor := mustCategory(t, db, "Outdoor")
	running := mustExerciseType(t, db, "Running", models.KindDistance, models.KindTime)
	rowing := mustExerciseType(t, db, "Rowing", models.KindDistance, models.KindTime)

	for _, et := range []*models.ExerciseType{running, rowing} {
		require.NoError(t, db.LinkExerciseType(et.ID, cardio.ID))
	}
	require.NoError(t, db.LinkExerciseType(running.ID, outdoor.ID))

	require.NoError(t, db.DeleteCategory(cardio.ID))

	for _, et := range []*models.ExerciseType{running, rowing} {
		categories, err := db.CategoriesForExerciseType(et.ID)
		require.NoError(t, err)
		for _, c := range categories {
			assert.NotEqual(t, cardio.ID, c.ID)
		}

		_, err = db.GetExerciseType(et.ID)
		assert.NoError(t, err, "exercise type survives category delete")
	}

	categories, err := db.CategoriesForExerciseType(running.ID)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Outdoor", categories[0].Name)
}

func TestLinkTraversal(t *testing.T) {
	db := setupTestDB(t)
	strength := mustCategory(t, db, "Strength")
	legs := mustCategory(t, db, "Legs")
	squat := mustExerciseType(t, db, "Squat", models.KindReps, models.KindWeight)
	bench := mustExerciseType(t, db, "Bench Press", models.KindReps, models.KindWeight)

	require.NoError(t, db.LinkExerciseType(squat.ID, strength.ID))
	require.NoError(t, db.LinkExerciseType(squat.ID, strength.ID), "linking twice is a no-op")
	require.NoError(t, db.LinkExerciseType(bench.ID, strength.ID))
	require.NoError(t, db.LinkExerciseType(squat.ID, legs.ID))

	types, err := db.ExerciseTypesForCategory(strength.ID)
	require.NoError(t, err)
	require.Len(t, types, 2)
	assert.Equal(t, "Bench Press", types[0].Name)
	assert.Equal(t, "Squat", types[1].Name)

	categories, err := db.CategoriesForExerciseType(squat.ID)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Legs", categories[0].Name)
	assert.Equal(t, "Strength", categories[1].Name)

	require.NoError(t, db.UnlinkExerciseType(squat.ID, legs.ID))
	assert.ErrorIs(t, db.UnlinkExerciseType(squat.ID, legs.ID), ErrNotFound)

	assert.ErrorIs(t, db.LinkExerciseType(squat.ID, 999), ErrForeignKey)
}

func TestSetExerciseTypeCategories(t *testing.T) {
	db := setupTestDB(t)
	a := mustCategory(t, db, "A")
	b := mustCategory(t, db, "B")
	c := mustCategory(t, db, "C")
	et := mustExerciseType(t, db, "Plank", models.KindTime)

	require.NoError(t, db.LinkExerciseType(et.ID, a.ID))
	require.NoError(t, db.SetExerciseTypeCategories(et.ID, []int64{b.ID, c.ID}))

	categories, err := db.CategoriesForExerciseType(et.ID)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "B", categories[0].Name)
	assert.Equal(t, "C", categories[1].Name)

	err = db.SetExerciseTypeCategories(et.ID, []int64{a.ID, 999})
	require.ErrorIs(t, err, ErrForeignKey)

	categories, err = db.CategoriesForExerciseType(et.ID)
	require.NoError(t, err)
	assert.Len(t, categories, 2, "failed replacement leaves links untouched")
}
