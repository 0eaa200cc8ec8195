// ABOUTME: Shared parsing and formatting helpers for CLI commands.
// ABOUTME: Resolves names or ids to records and renders entry lines.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/fatih/color"

	"github.com/harperreed/plainfit/internal/calendar"
	"github.com/harperreed/plainfit/internal/models"
	"github.com/harperreed/plainfit/internal/storage"
)

var faint = color.New(color.Faint)

// parseTime accepts the timestamp formats the CLI documents, in local time.
func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	formats := []string{
		"2006-01-02 15:04",
		"2006-01-02T15:04",
		"2006-01-02",
	}
	for _, f := range formats {
		if t, err := time.ParseInLocation(f, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format")
}

// parseDay returns today when s is empty.
func parseDay(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	t, err := parseTime(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date: %s (use YYYY-MM-DD)", s)
	}
	return t, nil
}

// parseMonth accepts YYYY-MM and defaults to the current month.
func parseMonth(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	t, err := time.ParseInLocation("2006-01", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month: %s (use YYYY-MM)", s)
	}
	return t, nil
}

// parseAmount splits "100kg" or "5.2 km" into a value and a unit.
func parseAmount(s string) (float64, string, error) {
	s = strings.TrimSpace(s)
	i := strings.IndexFunc(s, func(r rune) bool {
		return !unicode.IsDigit(r) && r != '.' && r != '-'
	})
	num, unit := s, ""
	if i >= 0 {
		num, unit = s[:i], strings.TrimSpace(s[i:])
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, "", fmt.Errorf("invalid amount: %s", s)
	}
	return v, unit, nil
}

func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	return id, err == nil && id > 0
}

// resolveCategory looks a category up by numeric id or by name.
func resolveCategory(ref string) (*models.Category, error) {
	if id, ok := parseID(ref); ok {
		c, err := repo.GetCategory(id)
		if err == nil || !errors.Is(err, storage.ErrNotFound) {
			return c, err
		}
	}
	c, err := repo.GetCategoryByName(ref)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("category not found: %s", ref)
	}
	return c, err
}

// resolveExercise looks an exercise type up by numeric id or by name.
func resolveExercise(ref string) (*models.ExerciseType, error) {
	if id, ok := parseID(ref); ok {
		et, err := repo.GetExerciseType(id)
		if err == nil || !errors.Is(err, storage.ErrNotFound) {
			return et, err
		}
	}
	et, err := repo.FindExerciseType(ref)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("exercise type not found: %s", ref)
	}
	return et, err
}

func resolveCategories(refs []string) ([]int64, error) {
	ids := make([]int64, 0, len(refs))
	for _, ref := range refs {
		c, err := resolveCategory(ref)
		if err != nil {
			return nil, err
		}
		ids = append(ids, c.ID)
	}
	return ids, nil
}

// entryDetails renders the measured fields of one round.
func entryDetails(e *models.FitnessEntry) string {
	var parts []string
	if e.Reps > 0 {
		parts = append(parts, fmt.Sprintf("%d reps", e.Reps))
	}
	if e.Weight != nil {
		parts = append(parts, withUnit(e.Weight, e.WeightUnit))
	}
	if e.Distance != nil {
		parts = append(parts, withUnit(e.Distance, e.DistanceUnit))
	}
	if e.Duration > 0 {
		parts = append(parts, calendar.FormatDuration(e.Duration.Milliseconds()))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, "  ")
}

func withUnit(v *float64, unit *string) string {
	s := calendar.FormatValue(v)
	if unit != nil && *unit != "" {
		s += " " + *unit
	}
	return s
}

func printEntry(w io.Writer, e *models.FitnessEntry) {
	notes := ""
	if e.Description != nil && *e.Description != "" {
		notes = faint.Sprintf(" (%s)", truncate(*e.Description, 30))
	}
	fmt.Fprintf(w, "  %s %s %s%s\n",
		faint.Sprintf("#%-5d", e.ID),
		faint.Sprint(e.Date.Format("15:04")),
		entryDetails(e),
		notes)
}

// truncate shortens s to maxLen runes, ending in "..." when cut.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

// confirm asks a yes/no question on w and reads the answer from r.
func confirm(r io.Reader, w io.Writer, question string) (bool, error) {
	fmt.Fprintf(w, "%s [y/N] ", question)
	response, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read response: %w", err)
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
