// ABOUTME: Shared fixtures for storage tests.
// ABOUTME: Opens throwaway databases and builds catalog rows with minimal noise.
package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/plainfit/internal/models"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "plainfit.db"))
	require.NoError(t, err, "open database")
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func mustCategory(t *testing.T, db *DB, name string) *models.Category {
	t.Helper()
	c := models.NewCategory(name)
	require.NoError(t, db.CreateCategory(c))
	return c
}

func mustExerciseType(t *testing.T, db *DB, name string, kinds ...models.Kind) *models.ExerciseType {
	t.Helper()
	et := models.NewExerciseType(name, kinds...)
	require.NoError(t, db.CreateExerciseType(et))
	return et
}

func mustEntry(t *testing.T, db *DB, typeID, setID int64, at time.Time) *models.FitnessEntry {
	t.Helper()
	e := models.NewEntry(typeID).WithDate(at).WithSetID(setID).WithReps(10)
	require.NoError(t, db.CreateEntry(e))
	return e
}

// fakeEntries builds n entries with every optional field exercised at
// least once, at millisecond precision so they survive storage exactly.
func fakeEntries(faker *gofakeit.Faker, typeID int64, n int) []*models.FitnessEntry {
	base := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	entries := make([]*models.FitnessEntry, 0, n)
	for i := 0; i < n; i++ {
		e := models.NewEntry(typeID).
			WithDate(base.Add(time.Duration(faker.IntRange(0, 30*24*3600*1000)) * time.Millisecond)).
			WithDuration(time.Duration(faker.IntRange(0, 7200000)) * time.Millisecond).
			WithReps(faker.IntRange(0, 50)).
			WithSetID(int64(i/3 + 1))
		if i%2 == 0 {
			e.WithDistance(float64(faker.IntRange(1, 4200))/100, "km")
		}
		if i%3 == 0 {
			e.WithWeight(float64(faker.IntRange(10, 2000))/10, "kg")
		}
		if i%4 == 0 {
			e.WithDescription(faker.Sentence(6) + ", with \"quotes\"\nand a second line")
		}
		entries = append(entries, e)
	}
	return entries
}
