// ABOUTME: Tests for CLI helper functions and command execution.
// ABOUTME: Runs commands end to end against a database in a temp directory.
package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/plainfit/internal/storage"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "date and time with space", input: "2025-01-31 08:30"},
		{name: "date and time with T", input: "2025-01-31T08:30"},
		{name: "date only", input: "2025-01-31"},
		{name: "RFC3339", input: "2025-01-31T08:30:00Z"},
		{name: "RFC3339 with offset", input: "2025-01-31T08:30:00+05:00"},
		{name: "invalid format", input: "31-01-2025", wantErr: true},
		{name: "invalid random string", input: "not a date", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseTime(tt.input)

			if tt.wantErr {
				if err == nil {
					t.Errorf("parseTime(%q) expected error, got nil", tt.input)
				}
				return
			}

			if err != nil {
				t.Errorf("parseTime(%q) unexpected error: %v", tt.input, err)
				return
			}

			if result.IsZero() {
				t.Errorf("parseTime(%q) returned zero time", tt.input)
			}
		})
	}
}

func TestParseTimeIsLocal(t *testing.T) {
	result, err := parseTime("2025-06-15 07:30")
	if err != nil {
		t.Fatalf("parseTime failed: %v", err)
	}
	want := time.Date(2025, time.June, 15, 7, 30, 0, 0, time.Local)
	if !result.Equal(want) {
		t.Errorf("parseTime returned %v, want %v", result, want)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input   string
		value   float64
		unit    string
		wantErr bool
	}{
		{input: "100kg", value: 100, unit: "kg"},
		{input: "5.2 km", value: 5.2, unit: "km"},
		{input: "42", value: 42},
		{input: "kg", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			value, unit, err := parseAmount(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseAmount(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseAmount(%q) unexpected error: %v", tt.input, err)
			}
			if value != tt.value || unit != tt.unit {
				t.Errorf("parseAmount(%q) = %v %q, want %v %q", tt.input, value, unit, tt.value, tt.unit)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{input: "hello", maxLen: 10, want: "hello"},
		{input: "hello", maxLen: 5, want: "hello"},
		{input: "hello world this is long", maxLen: 10, want: "hello w..."},
		{input: "séance très lourde", maxLen: 9, want: "séance..."},
		{input: "腕立て伏せ二十回三セット", maxLen: 6, want: "腕立て..."},
		{input: "🏋️🏋️🏋️", maxLen: 6, want: "🏋️🏋️🏋️"},
	}
	for _, tt := range tests {
		got := truncate(tt.input, tt.maxLen)
		if got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("truncate(%q, %d) produced invalid UTF-8", tt.input, tt.maxLen)
		}
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("abc", 6); got != "abc   " {
		t.Errorf("padRight = %q", got)
	}
	if got := padRight("abcdef", 3); got != "abcdef" {
		t.Errorf("padRight should not cut, got %q", got)
	}
}

// cli runs plainfit commands against one temp data directory.
type cli struct {
	t       *testing.T
	dataDir string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	color.NoColor = true
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("PLAINFIT_LOG_LEVEL", "error")
	return &cli{t: t, dataDir: t.TempDir()}
}

func (c *cli) run(stdin string, args ...string) (string, error) {
	c.t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--data-dir", c.dataDir}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run("", args...)
	require.NoError(c.t, err, "plainfit %s\n%s", strings.Join(args, " "), out)
	return out
}

// open opens the CLI's database directly for assertions.
func (c *cli) open() *storage.DB {
	c.t.Helper()
	db, err := storage.Open(filepath.Join(c.dataDir, "plainfit.db"))
	require.NoError(c.t, err)
	c.t.Cleanup(func() { _ = db.Close() })
	return db
}

// resetFlags puts every flag back to its default so runs do not leak into
// each other.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func TestVersionCommand(t *testing.T) {
	c := newCLI(t)
	out := c.mustRun("version")
	assert.Equal(t, "plainfit dev\n", out)
	assert.NoFileExists(t, filepath.Join(c.dataDir, "plainfit.db"))
}

func TestSeedsEmptyDatabase(t *testing.T) {
	c := newCLI(t)
	out := c.mustRun("category", "list")
	for _, name := range []string{"Bodyweight", "Cardio", "Flexibility", "Strength"} {
		assert.Contains(t, out, name)
	}

	c2 := newCLI(t)
	out = c2.mustRun("--no-seed", "category", "list")
	assert.Equal(t, "No categories found.\n", out)
}

func TestCategoryCommands(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun("category", "add", "Climbing", "--color", "#AA8800")
	assert.Contains(t, out, "Added category Climbing")

	_, err := c.run("", "category", "add", "Climbing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	c.mustRun("category", "edit", "Climbing", "--name", "Bouldering Gym")
	out = c.mustRun("category", "list")
	assert.Contains(t, out, "Bouldering Gym")
	assert.NotContains(t, out, "Climbing ")

	c.mustRun("exercise", "add", "Traverse", "--type", "time,reps", "--category", "Bouldering Gym")
	out = c.mustRun("category", "exercises", "Bouldering Gym")
	assert.Contains(t, out, "Traverse")
	assert.Contains(t, out, "reps,time")

	c.mustRun("category", "delete", "Bouldering Gym")
	out = c.mustRun("exercise", "categories", "Traverse")
	assert.Contains(t, out, "Uncategorized.")

	_, err = c.run("", "category", "delete", "Bouldering Gym")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category not found")
}

func TestLogRejectsNegativeWeight(t *testing.T) {
	c := newCLI(t)
	_, err := c.run("", "log", "Squat", "--reps", "5", "--weight", "-100kg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weight must not be negative")
}

func TestConfigCommands(t *testing.T) {
	c := newCLI(t)

	path := strings.TrimSpace(c.mustRun("config", "path"))
	assert.Equal(t, filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "plainfit", "config.yaml"), path)

	out := c.mustRun("config", "init")
	assert.Contains(t, out, "Wrote "+path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "data_dir: "+c.dataDir)
	assert.Contains(t, string(data), "log_level: warn")

	_, err = c.run("", "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	c.mustRun("config", "init", "--force")

	t.Setenv("PLAINFIT_LOG_LEVEL", "debug")
	out = c.mustRun("config", "show")
	assert.Contains(t, out, "log_level: debug")
	assert.Contains(t, out, filepath.Join(c.dataDir, "plainfit.db"))
	assert.NoFileExists(t, filepath.Join(c.dataDir, "plainfit.db"), "config commands do not open storage")
}

func TestExerciseCommands(t *testing.T) {
	c := newCLI(t)

	_, err := c.run("", "exercise", "add", "Kettlebell Swing", "--type", "reps,bananas")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown measurement kind")

	c.mustRun("exercise", "add", "Kettlebell Swing", "--type", "reps,weight", "-c", "Strength")
	out := c.mustRun("exercise", "list", "--category", "Strength")
	assert.Contains(t, out, "Kettlebell Swing")

	c.mustRun("exercise", "edit", "Kettlebell Swing", "--category", "Cardio")
	out = c.mustRun("exercise", "categories", "Kettlebell Swing")
	assert.Contains(t, out, "Cardio")
	assert.NotContains(t, out, "Strength")

	c.mustRun("log", "Kettlebell Swing", "--reps", "20", "--weight", "16kg")
	_, err = c.run("", "exercise", "delete", "Kettlebell Swing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has logged sets")
}

func TestLogDayAndSets(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun("log", "Squat", "--reps", "5", "--weight", "100kg", "-n", "3", "--at", "2025-06-01 07:30", "--notes", "felt heavy")
	assert.Contains(t, out, "Logged Squat")
	assert.Contains(t, out, "3 × 5 reps  100 kg")

	db := c.open()
	entries, err := db.EntriesForDay(time.Date(2025, time.June, 1, 12, 0, 0, 0, time.Local))
	require.NoError(t, err)
	require.Len(t, entries, 3)
	setID := entries[0].SetID
	for _, e := range entries {
		assert.Equal(t, setID, e.SetID)
	}
	assert.Equal(t, time.Date(2025, time.June, 1, 7, 32, 0, 0, time.Local), entries[0].Date.Local())
	require.NoError(t, db.Close())

	out = c.mustRun("day", "2025-06-01")
	assert.Contains(t, out, "Sunday, June 1 2025")
	assert.Contains(t, out, "Squat")
	assert.Contains(t, out, "(3 rounds)")
	assert.Contains(t, out, "(felt heavy)")

	id := idArg(setID)
	out = c.mustRun("set", "show", id)
	assert.Contains(t, out, "Squat")
	assert.Contains(t, out, "2025-06-01")

	c.mustRun("log", "Squat", "--reps", "6", "--weight", "100kg", "--replace", id, "--at", "2025-06-01 07:30")
	out = c.mustRun("day", "2025-06-01")
	assert.Contains(t, out, "(1 rounds)")
	assert.Contains(t, out, "6 reps")

	next := c.mustRun("set", "next-id")
	assert.NotEqual(t, id+"\n", next)

	c.mustRun("set", "delete", id)
	out = c.mustRun("day", "2025-06-01")
	assert.Contains(t, out, "No sets logged.")

	_, err = c.run("", "set", "delete", id)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "set not found")
}

func TestCalendarCommand(t *testing.T) {
	c := newCLI(t)
	c.mustRun("log", "Running", "--distance", "5km", "--duration", "25m", "--at", "2025-06-05 18:00")
	c.mustRun("log", "Squat", "--reps", "5", "--weight", "80kg", "--at", "2025-06-05 19:00")

	out := c.mustRun("calendar", "2025-06")
	assert.Contains(t, out, "June 2025")
	assert.Contains(t, out, "1 active days")
	assert.Contains(t, out, "Thu 05")
	assert.Contains(t, out, "Cardio/Running")
	assert.Contains(t, out, "Strength/Squat")

	_, err := c.run("", "calendar", "June")
	require.Error(t, err)
}

func TestExportImportCSV(t *testing.T) {
	c := newCLI(t)
	c.mustRun("log", "Push-up", "--reps", "20", "-n", "2", "--at", "2025-06-02 07:00")

	path := filepath.Join(t.TempDir(), "log.csv")
	c.mustRun("export", "csv", "-o", path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "id,exerciseName,exerciseType,"))

	db := c.open()
	before, err := db.ListEntries()
	require.NoError(t, err)
	require.NoError(t, db.Close())

	out, err := c.run("n\n", "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Import cancelled.")

	out = c.mustRun("import", path, "--yes")
	assert.Contains(t, out, "Imported "+idArg(int64(len(before)))+" entries")

	bad := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("foo,bar\n1,2\n"), 0600))
	_, err = c.run("", "import", bad, "--yes")
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrHeaderMismatch)

	out = c.mustRun("export", "json")
	assert.Contains(t, out, `"tool": "plainfit"`)
	out = c.mustRun("export", "yaml")
	assert.Contains(t, out, "Push-up")

	_, err = c.run("", "export", "xml")
	require.Error(t, err)
}

func TestBackupRestore(t *testing.T) {
	c := newCLI(t)
	c.mustRun("log", "Plank", "--duration", "90s", "--at", "2025-06-03 08:00")

	backup := filepath.Join(t.TempDir(), "backup.db")
	c.mustRun("backup", backup)
	require.FileExists(t, backup)

	db := c.open()
	want, err := db.ListEntries()
	require.NoError(t, err)
	require.NoError(t, db.Close())

	c.mustRun("log", "Plank", "--duration", "60s", "--at", "2025-06-04 08:00")

	out := c.mustRun("restore", backup, "--yes")
	assert.Contains(t, out, "Restored from")
	assert.FileExists(t, filepath.Join(c.dataDir, "plainfit.db.bak"))

	got, err := c.open().ListEntries()
	require.NoError(t, err)
	assert.Len(t, got, len(want))

	_, err = c.run("", "restore", filepath.Join(t.TempDir(), "missing.db"), "--yes")
	require.Error(t, err)
}

func idArg(id int64) string {
	return fmt.Sprint(id)
}
