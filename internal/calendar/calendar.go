// ABOUTME: Month grid layout and per-day activity grouping for the calendar view.
// ABOUTME: Weeks start on Sunday; every month renders as six rows of seven days.
package calendar

import (
	"sort"
	"time"

	"github.com/harperreed/plainfit/internal/models"
)

// GridWeeks is the number of rows in a month grid.
const GridWeeks = 6

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfMonth returns midnight of the first day of t's month in t's location.
func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// WeeksForMonth lays out the month containing date as 6 weeks of 7 days,
// beginning on the Sunday on or before the first of the month. Leading and
// trailing days belong to the neighbouring months.
func WeeksForMonth(date time.Time) [][]time.Time {
	first := StartOfMonth(date)
	start := first.AddDate(0, 0, -int(first.Weekday()))

	weeks := make([][]time.Time, GridWeeks)
	for w := range weeks {
		week := make([]time.Time, 7)
		for d := range week {
			week[d] = start.AddDate(0, 0, w*7+d)
		}
		weeks[w] = week
	}
	return weeks
}

// InMonth reports whether day falls in the same month as month.
func InMonth(day, month time.Time) bool {
	return day.Year() == month.Year() && day.Month() == month.Month()
}

// ActivityRow is one entry's timestamp and the activity it belongs to.
type ActivityRow struct {
	At       time.Time
	Activity models.Activity
}

// GroupActivities groups rows by day of month in loc. Each day lists an
// exercise type once, ordered by category name and then exercise name.
func GroupActivities(rows []ActivityRow, loc *time.Location) map[int][]models.Activity {
	if loc == nil {
		loc = time.Local
	}

	byDay := make(map[int][]models.Activity)
	seen := make(map[int]map[int64]bool)

	for _, row := range rows {
		day := row.At.In(loc).Day()
		if seen[day] == nil {
			seen[day] = make(map[int64]bool)
		}
		id := row.Activity.ExerciseType.ID
		if seen[day][id] {
			continue
		}
		seen[day][id] = true
		byDay[day] = append(byDay[day], row.Activity)
	}

	for _, activities := range byDay {
		sort.SliceStable(activities, func(i, j int) bool {
			ci, cj := activities[i].CategoryName(), activities[j].CategoryName()
			if ci != cj {
				return ci < cj
			}
			return activities[i].ExerciseType.Name < activities[j].ExerciseType.Name
		})
	}
	return byDay
}
