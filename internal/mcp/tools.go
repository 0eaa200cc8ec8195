// ABOUTME: MCP tool implementations for logging and browsing workouts.
// ABOUTME: Tools cover sets, days, months, the catalog, and CSV export.
package mcp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/harperreed/plainfit/internal/calendar"
	"github.com/harperreed/plainfit/internal/models"
	"github.com/harperreed/plainfit/internal/storage"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_set",
		Description: "Log a set of one exercise: one entry per round (reps, duration, distance, weight)",
	}, s.handleLogSet)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_day",
		Description: "List the entries logged on a day, newest first",
	}, s.handleListDay)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_set",
		Description: "Get all entries of a set and its exercise type",
	}, s.handleGetSet)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_set",
		Description: "Delete every entry of a set",
	}, s.handleDeleteSet)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_categories",
		Description: "List categories with the exercise types in each",
	}, s.handleListCategories)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_exercise_types",
		Description: "List exercise types, optionally only those in one category",
	}, s.handleListExerciseTypes)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "month_activity",
		Description: "Show which exercises were done on each day of a month",
	}, s.handleMonthActivity)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "export_csv",
		Description: "Export every entry as CSV text",
	}, s.handleExportCSV)
}

// Tool input/output types

type roundInput struct {
	Reps            int      `json:"reps,omitempty" jsonschema:"Repetitions in this round"`
	DurationSeconds float64  `json:"duration_seconds,omitempty" jsonschema:"Duration of this round in seconds"`
	Distance        *float64 `json:"distance,omitempty" jsonschema:"Distance covered"`
	DistanceUnit    string   `json:"distance_unit,omitempty" jsonschema:"Distance unit such as km or mi"`
	Weight          *float64 `json:"weight,omitempty" jsonschema:"Weight lifted"`
	WeightUnit      string   `json:"weight_unit,omitempty" jsonschema:"Weight unit such as kg or lb"`
}

type logSetInput struct {
	Exercise    string       `json:"exercise" jsonschema:"Exercise type name, e.g. Squat or Running"`
	Rounds      []roundInput `json:"rounds" jsonschema:"One item per round of the set"`
	Date        string       `json:"date,omitempty" jsonschema:"Timestamp (RFC 3339 or YYYY-MM-DD HH:MM), defaults to now"`
	Description string       `json:"description,omitempty" jsonschema:"Optional note stored on every round"`
}

type logSetOutput struct {
	SetID    int64  `json:"set_id"`
	Exercise string `json:"exercise"`
	Rounds   int    `json:"rounds"`
	Message  string `json:"message"`
}

type dayInput struct {
	Date string `json:"date,omitempty" jsonschema:"Day as YYYY-MM-DD, defaults to today"`
}

type entryView struct {
	ID          int64   `json:"id"`
	SetID       int64   `json:"set_id"`
	Exercise    string  `json:"exercise"`
	Time        string  `json:"time"`
	Reps        int     `json:"reps,omitempty"`
	Duration    string  `json:"duration,omitempty"`
	Distance    string  `json:"distance,omitempty"`
	Weight      string  `json:"weight,omitempty"`
	Description *string `json:"description,omitempty"`
}

type dayOutput struct {
	Date    string      `json:"date"`
	Count   int         `json:"count"`
	Entries []entryView `json:"entries"`
}

type setInput struct {
	SetID int64 `json:"set_id" jsonschema:"Set ID"`
}

type exerciseTypeView struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Icon  string `json:"icon,omitempty"`
	Color string `json:"color,omitempty"`
}

type setOutput struct {
	SetID    int64            `json:"set_id"`
	Exercise exerciseTypeView `json:"exercise"`
	Entries  []entryView      `json:"entries"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type noInput struct{}

type categoryView struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Icon      string   `json:"icon"`
	Color     string   `json:"color"`
	Exercises []string `json:"exercises"`
}

type categoriesOutput struct {
	Categories []categoryView `json:"categories"`
}

type listExerciseTypesInput struct {
	Category string `json:"category,omitempty" jsonschema:"Only list exercise types in this category"`
}

type exerciseTypesOutput struct {
	ExerciseTypes []exerciseTypeView `json:"exercise_types"`
}

type monthInput struct {
	Month string `json:"month,omitempty" jsonschema:"Month as YYYY-MM, defaults to the current month"`
}

type activityView struct {
	Category string `json:"category,omitempty"`
	Exercise string `json:"exercise"`
	Icon     string `json:"icon"`
	Color    string `json:"color"`
}

type monthOutput struct {
	Month string                    `json:"month"`
	Days  map[string][]activityView `json:"days"`
}

type csvOutput struct {
	CSV string `json:"csv"`
}

// Tool handlers

func (s *Server) handleLogSet(ctx context.Context, req *mcp.CallToolRequest, input logSetInput) (*mcp.CallToolResult, logSetOutput, error) {
	if len(input.Rounds) == 0 {
		return nil, logSetOutput{}, errors.New("at least one round is required")
	}

	et, err := s.repo.FindExerciseType(input.Exercise)
	if err != nil {
		return nil, logSetOutput{}, fmt.Errorf("unknown exercise %q: %w", input.Exercise, err)
	}

	at := s.now()
	if input.Date != "" {
		at, err = parseTimestamp(input.Date)
		if err != nil {
			return nil, logSetOutput{}, err
		}
	}

	entries := make([]*models.FitnessEntry, 0, len(input.Rounds))
	for _, r := range input.Rounds {
		e := models.NewEntry(et.ID).
			WithDate(at).
			WithReps(r.Reps).
			WithDuration(time.Duration(r.DurationSeconds * float64(time.Second)).Round(time.Millisecond)).
			WithDescription(input.Description)
		if r.Distance != nil {
			e.WithDistance(*r.Distance, r.DistanceUnit)
		}
		if r.Weight != nil {
			e.WithWeight(*r.Weight, r.WeightUnit)
		}
		entries = append(entries, e)
	}

	setID, err := s.repo.AddSet(entries)
	if err != nil {
		return nil, logSetOutput{}, fmt.Errorf("failed to log set: %w", err)
	}
	logrus.WithFields(logrus.Fields{"set_id": setID, "exercise": et.Name}).Info("logged set over mcp")

	return nil, logSetOutput{
		SetID:    setID,
		Exercise: et.Name,
		Rounds:   len(entries),
		Message:  fmt.Sprintf("Logged %d round(s) of %s (set %d)", len(entries), et.Name, setID),
	}, nil
}

func (s *Server) handleListDay(ctx context.Context, req *mcp.CallToolRequest, input dayInput) (*mcp.CallToolResult, dayOutput, error) {
	day := s.now()
	if input.Date != "" {
		var err error
		day, err = time.ParseInLocation("2006-01-02", input.Date, time.Local)
		if err != nil {
			return nil, dayOutput{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD", input.Date)
		}
	}

	out, err := s.day(day)
	if err != nil {
		return nil, dayOutput{}, err
	}
	return nil, out, nil
}

func (s *Server) day(day time.Time) (dayOutput, error) {
	entries, err := s.repo.EntriesForDay(day)
	if err != nil {
		return dayOutput{}, fmt.Errorf("failed to list entries: %w", err)
	}
	return dayOutput{
		Date:    day.Format("2006-01-02"),
		Count:   len(entries),
		Entries: viewEntries(entries),
	}, nil
}

func (s *Server) handleGetSet(ctx context.Context, req *mcp.CallToolRequest, input setInput) (*mcp.CallToolResult, setOutput, error) {
	et, err := s.repo.ExerciseTypeForSet(input.SetID)
	if err != nil {
		return nil, setOutput{}, fmt.Errorf("set not found: %d", input.SetID)
	}
	entries, err := s.repo.EntriesBySet(input.SetID)
	if err != nil {
		return nil, setOutput{}, fmt.Errorf("failed to list set: %w", err)
	}

	return nil, setOutput{
		SetID:    input.SetID,
		Exercise: viewExerciseType(et),
		Entries:  viewEntries(entries),
	}, nil
}

func (s *Server) handleDeleteSet(ctx context.Context, req *mcp.CallToolRequest, input setInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.repo.DeleteSet(input.SetID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, simpleOutput{}, fmt.Errorf("set not found: %d", input.SetID)
		}
		return nil, simpleOutput{}, fmt.Errorf("failed to delete set: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted set: %d", input.SetID),
	}, nil
}

func (s *Server) handleListCategories(ctx context.Context, req *mcp.CallToolRequest, _ noInput) (*mcp.CallToolResult, categoriesOutput, error) {
	out, err := s.catalog()
	if err != nil {
		return nil, categoriesOutput{}, err
	}
	return nil, out, nil
}

func (s *Server) catalog() (categoriesOutput, error) {
	categories, err := s.repo.ListCategories()
	if err != nil {
		return categoriesOutput{}, fmt.Errorf("failed to list categories: %w", err)
	}

	out := categoriesOutput{Categories: make([]categoryView, 0, len(categories))}
	for _, c := range categories {
		types, err := s.repo.ExerciseTypesForCategory(c.ID)
		if err != nil {
			return categoriesOutput{}, fmt.Errorf("failed to list exercise types: %w", err)
		}
		names := make([]string, 0, len(types))
		for _, et := range types {
			names = append(names, et.Name)
		}
		out.Categories = append(out.Categories, categoryView{
			ID:        c.ID,
			Name:      c.Name,
			Icon:      c.Icon,
			Color:     c.Color,
			Exercises: names,
		})
	}
	return out, nil
}

func (s *Server) handleListExerciseTypes(ctx context.Context, req *mcp.CallToolRequest, input listExerciseTypesInput) (*mcp.CallToolResult, exerciseTypesOutput, error) {
	var (
		types []*models.ExerciseType
		err   error
	)
	if input.Category == "" {
		types, err = s.repo.ListExerciseTypes()
	} else {
		var c *models.Category
		c, err = s.repo.GetCategoryByName(input.Category)
		if err != nil {
			return nil, exerciseTypesOutput{}, fmt.Errorf("category not found: %s", input.Category)
		}
		types, err = s.repo.ExerciseTypesForCategory(c.ID)
	}
	if err != nil {
		return nil, exerciseTypesOutput{}, fmt.Errorf("failed to list exercise types: %w", err)
	}

	out := exerciseTypesOutput{ExerciseTypes: make([]exerciseTypeView, 0, len(types))}
	for _, et := range types {
		out.ExerciseTypes = append(out.ExerciseTypes, viewExerciseType(et))
	}
	return nil, out, nil
}

func (s *Server) handleMonthActivity(ctx context.Context, req *mcp.CallToolRequest, input monthInput) (*mcp.CallToolResult, monthOutput, error) {
	month := s.now()
	if input.Month != "" {
		var err error
		month, err = time.ParseInLocation("2006-01", input.Month, time.Local)
		if err != nil {
			return nil, monthOutput{}, fmt.Errorf("invalid month %q: use YYYY-MM", input.Month)
		}
	}

	activity, err := s.repo.MonthActivity(month)
	if err != nil {
		return nil, monthOutput{}, fmt.Errorf("failed to load month: %w", err)
	}

	out := monthOutput{
		Month: calendar.StartOfMonth(month).Format("2006-01"),
		Days:  make(map[string][]activityView, len(activity)),
	}
	for day, activities := range activity {
		views := make([]activityView, 0, len(activities))
		for _, a := range activities {
			icon, color := a.Badge()
			views = append(views, activityView{
				Category: a.CategoryName(),
				Exercise: a.ExerciseType.Name,
				Icon:     icon,
				Color:    color,
			})
		}
		out.Days[fmt.Sprintf("%02d", day)] = views
	}
	return nil, out, nil
}

func (s *Server) handleExportCSV(ctx context.Context, req *mcp.CallToolRequest, _ noInput) (*mcp.CallToolResult, csvOutput, error) {
	var buf bytes.Buffer
	if err := s.repo.ExportCSV(&buf); err != nil {
		return nil, csvOutput{}, fmt.Errorf("failed to export: %w", err)
	}
	return nil, csvOutput{CSV: buf.String()}, nil
}

// parseTimestamp accepts RFC 3339 or a local "YYYY-MM-DD HH:MM" time.
func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: use RFC 3339 or YYYY-MM-DD HH:MM", s)
}

func viewExerciseType(et *models.ExerciseType) exerciseTypeView {
	v := exerciseTypeView{ID: et.ID, Name: et.Name, Type: et.Kinds.String()}
	if et.Icon != nil {
		v.Icon = *et.Icon
	}
	if et.Color != nil {
		v.Color = *et.Color
	}
	return v
}

func viewEntries(entries []*models.FitnessEntry) []entryView {
	views := make([]entryView, 0, len(entries))
	for _, e := range entries {
		v := entryView{
			ID:          e.ID,
			SetID:       e.SetID,
			Exercise:    e.ExerciseName,
			Time:        e.Date.Format(time.RFC3339),
			Reps:        e.Reps,
			Description: e.Description,
		}
		if e.Duration > 0 {
			v.Duration = calendar.FormatDuration(e.Duration.Milliseconds())
		}
		if e.Distance != nil {
			v.Distance = withUnit(e.Distance, e.DistanceUnit)
		}
		if e.Weight != nil {
			v.Weight = withUnit(e.Weight, e.WeightUnit)
		}
		views = append(views, v)
	}
	return views
}

func withUnit(v *float64, unit *string) string {
	s := calendar.FormatValue(v)
	if unit != nil {
		s += " " + *unit
	}
	return s
}
