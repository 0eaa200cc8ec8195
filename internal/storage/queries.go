// ABOUTME: Read-side queries over entries: by day, by set, and by month.
// ABOUTME: Month activity comes from a single joined query grouped in Go.
package storage

import (
	"fmt"
	"time"

	"github.com/harperreed/plainfit/internal/calendar"
	"github.com/harperreed/plainfit/internal/models"
)

// EntriesForDay returns the entries whose timestamp falls on the calendar
// day of date, in date's location, newest first.
func (d *DB) EntriesForDay(date time.Time) ([]*models.FitnessEntry, error) {
	start := calendar.StartOfDay(date)
	end := start.AddDate(0, 0, 1)

	rows, err := d.db.Query(`SELECT `+entryColumns+entryFrom+`
		WHERE e.date >= ? AND e.date < ?
		ORDER BY e.date DESC, e.id DESC`,
		toMillis(start), toMillis(end))
	if err != nil {
		return nil, fmt.Errorf("list entries for %s: %w", start.Format("2006-01-02"), classify(err))
	}
	defer rows.Close()

	return scanEntries(rows)
}

// EntriesBySet returns every entry of a set in insertion order.
func (d *DB) EntriesBySet(setID int64) ([]*models.FitnessEntry, error) {
	rows, err := d.db.Query(`SELECT `+entryColumns+entryFrom+`
		WHERE e.set_id = ?
		ORDER BY e.id`, setID)
	if err != nil {
		return nil, fmt.Errorf("list entries for set %d: %w", setID, classify(err))
	}
	defer rows.Close()

	return scanEntries(rows)
}

// ExerciseTypeForSet returns the exercise type of a set. Sets hold a single
// exercise type, so the first entry decides.
func (d *DB) ExerciseTypeForSet(setID int64) (*models.ExerciseType, error) {
	row := d.db.QueryRow(`
		SELECT `+exerciseTypeColumns+`
		FROM exercise_types et
		JOIN fitness_entries e ON e.exercise_type_id = et.id
		WHERE e.set_id = ?
		ORDER BY e.id
		LIMIT 1`, setID)
	et, err := scanExerciseType(row)
	if err != nil {
		return nil, fmt.Errorf("get exercise type for set %d: %w", setID, err)
	}
	return et, nil
}

// monthActivityQuery picks each type's first category by name; types
// without a category come back with NULL category columns.
const monthActivityQuery = `
	SELECT e.date,
		et.id, et.name, et.type, et.icon, et.color,
		c.id, c.name, c.icon, c.color
	FROM fitness_entries e
	JOIN exercise_types et ON et.id = e.exercise_type_id
	LEFT JOIN categories c ON c.id = (
		SELECT etc.category_id
		FROM exercise_type_categories etc
		JOIN categories fc ON fc.id = etc.category_id
		WHERE etc.exercise_type_id = et.id
		ORDER BY fc.name
		LIMIT 1
	)
	WHERE e.date >= ? AND e.date < ?
	ORDER BY e.date, e.id`

// MonthActivity returns the distinct activities logged on each day of the
// month containing date, keyed by day of month. Days without entries are
// absent from the map.
func (d *DB) MonthActivity(date time.Time) (map[int][]models.Activity, error) {
	start := calendar.StartOfMonth(date)
	end := start.AddDate(0, 1, 0)

	rows, err := d.db.Query(monthActivityQuery, toMillis(start), toMillis(end))
	if err != nil {
		return nil, fmt.Errorf("month activity for %s: %w", start.Format("2006-01"), classify(err))
	}
	defer rows.Close()

	var activityRows []calendar.ActivityRow
	for rows.Next() {
		var (
			dateMs     int64
			et         models.ExerciseType
			kinds      string
			categoryID *int64
			name       *string
			icon       *string
			color      *string
		)
		if err := rows.Scan(
			&dateMs,
			&et.ID, &et.Name, &kinds, &et.Icon, &et.Color,
			&categoryID, &name, &icon, &color,
		); err != nil {
			return nil, fmt.Errorf("scan month activity: %w", classify(err))
		}

		et.Kinds, err = models.ParseKinds(kinds)
		if err != nil {
			return nil, fmt.Errorf("invalid type for exercise %d in database: %w", et.ID, err)
		}

		activity := models.Activity{ExerciseType: et}
		if categoryID != nil {
			activity.Category = &models.Category{
				ID:    *categoryID,
				Name:  deref(name),
				Icon:  deref(icon),
				Color: deref(color),
			}
		}
		activityRows = append(activityRows, calendar.ActivityRow{
			At:       fromMillis(dateMs),
			Activity: activity,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("month activity: %w", classify(err))
	}

	return calendar.GroupActivities(activityRows, date.Location()), nil
}

// ActiveDays returns the start of every day in [from, to) that has at least
// one entry, in from's location, ascending.
func (d *DB) ActiveDays(from, to time.Time) ([]time.Time, error) {
	rows, err := d.db.Query(`
		SELECT date FROM fitness_entries
		WHERE date >= ? AND date < ?
		ORDER BY date`, toMillis(from), toMillis(to))
	if err != nil {
		return nil, fmt.Errorf("list active days: %w", classify(err))
	}
	defer rows.Close()

	var days []time.Time
	for rows.Next() {
		var ms int64
		if err := rows.Scan(&ms); err != nil {
			return nil, fmt.Errorf("scan active day: %w", classify(err))
		}
		day := calendar.StartOfDay(fromMillis(ms).In(from.Location()))
		if n := len(days); n == 0 || !days[n-1].Equal(day) {
			days = append(days, day)
		}
	}
	return days, rows.Err()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
