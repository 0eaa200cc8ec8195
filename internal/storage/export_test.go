// ABOUTME: Tests for the JSON and YAML catalog exports.
// ABOUTME: Verifies categories, links, and entries all appear in the output.
package storage

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/harperreed/plainfit/internal/models"
)

func seedExportFixture(t *testing.T, db *DB) {
	t.Helper()
	cardio := mustCategory(t, db, "Cardio")
	running := mustExerciseType(t, db, "Running", models.KindDistance, models.KindTime)
	mustExerciseType(t, db, "Loose", models.KindReps)
	require.NoError(t, db.LinkExerciseType(running.ID, cardio.ID))

	e := models.NewEntry(running.ID).
		WithDate(time.Date(2024, time.August, 3, 6, 0, 0, 0, time.UTC)).
		WithDuration(25*time.Minute).
		WithDistance(4.8, "km")
	require.NoError(t, db.CreateEntry(e))
}

func TestGetAllData(t *testing.T) {
	db := setupTestDB(t)
	seedExportFixture(t, db)

	data, err := db.GetAllData()
	require.NoError(t, err)

	assert.Equal(t, ExportVersion, data.Version)
	assert.Equal(t, "plainfit", data.Tool)
	require.Len(t, data.Categories, 1)
	require.Len(t, data.ExerciseTypes, 2)
	assert.Equal(t, "Loose", data.ExerciseTypes[0].Name)
	assert.Empty(t, data.ExerciseTypes[0].Categories)
	assert.Equal(t, []string{"Cardio"}, data.ExerciseTypes[1].Categories)
	require.Len(t, data.Entries, 1)
	assert.Equal(t, "Running", data.Entries[0].Exercise)
	assert.Equal(t, int64(25*60*1000), data.Entries[0].DurationMs)
}

func TestExportJSON(t *testing.T) {
	db := setupTestDB(t)
	seedExportFixture(t, db)

	out, err := db.ExportJSON()
	require.NoError(t, err)

	var decoded ExportData
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Len(t, decoded.Entries, 1)
	assert.Equal(t, "distance,time", decoded.ExerciseTypes[1].Kinds.String())
	assert.Contains(t, string(out), `"type": "distance,time"`)
}

func TestExportYAML(t *testing.T) {
	db := setupTestDB(t)
	seedExportFixture(t, db)

	out, err := db.ExportYAML()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Equal(t, "plainfit", decoded["tool"])

	entries, ok := decoded["entries"].(map[string]any)
	require.True(t, ok)
	running, ok := entries["Running"].([]any)
	require.True(t, ok)
	require.Len(t, running, 1)

	first := running[0].(map[string]any)
	assert.Equal(t, "00:25:00", first["duration"])
	assert.Equal(t, "4.8 km", first["distance"])
}

func TestExportEmptyDatabase(t *testing.T) {
	db := setupTestDB(t)

	out, err := db.ExportJSON()
	require.NoError(t, err)
	assert.Contains(t, string(out), `"categories": []`)
	assert.Contains(t, string(out), `"entries": []`)
}
