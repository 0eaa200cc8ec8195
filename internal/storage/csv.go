// ABOUTME: CSV export and destructive import of fitness entries.
// ABOUTME: Absent optional values are written as N/A; timestamps are UTC.
package storage

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/harperreed/plainfit/internal/models"
)

// csvHeader is the fixed column order written by ExportCSV.
var csvHeader = []string{
	"id", "exerciseName", "exerciseType", "duration", "date", "setId",
	"reps", "distance", "distanceUnit", "weight", "weightUnit", "description",
}

const (
	csvMissing = "N/A"

	csvDateLayout = "2006-01-02 15:04:05.999"
	// Parsing accepts an optional fractional second after the seconds field.
	csvDateParseLayout = "2006-01-02 15:04:05"
)

// ExportCSV writes every entry, oldest first, to w.
func (d *DB) ExportCSV(w io.Writer) error {
	entries, err := d.ListEntries()
	if err != nil {
		return fmt.Errorf("export csv: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("%w: write csv header: %v", ErrIO, err)
	}
	for _, e := range entries {
		if err := cw.Write(entryRecord(e)); err != nil {
			return fmt.Errorf("%w: write csv row for entry %d: %v", ErrIO, e.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%w: flush csv: %v", ErrIO, err)
	}
	return nil
}

func entryRecord(e *models.FitnessEntry) []string {
	return []string{
		strconv.FormatInt(e.ID, 10),
		e.ExerciseName,
		e.ExerciseKinds.String(),
		strconv.FormatInt(e.Duration.Milliseconds(), 10),
		e.Date.UTC().Format(csvDateLayout),
		strconv.FormatInt(e.SetID, 10),
		strconv.Itoa(e.Reps),
		formatOptionalFloat(e.Distance),
		formatOptionalString(e.DistanceUnit),
		formatOptionalFloat(e.Weight),
		formatOptionalString(e.WeightUnit),
		formatOptionalString(e.Description),
	}
}

func formatOptionalFloat(f *float64) string {
	if f == nil {
		return csvMissing
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func formatOptionalString(s *string) string {
	if s == nil {
		return csvMissing
	}
	return *s
}

// csvRow is one parsed import row before its exercise type is resolved.
type csvRow struct {
	line         int
	exerciseName string
	kinds        models.Kinds
	entry        models.FitnessEntry
}

// ImportCSV replaces all entries with the rows read from r and returns the
// number imported. Nothing is changed unless every row parses and resolves
// to an existing exercise type.
func (d *DB) ImportCSV(r io.Reader) (int, error) {
	rows, err := readCSV(r)
	if err != nil {
		return 0, fmt.Errorf("import csv: %w", err)
	}

	var removed int64
	err = d.withTx(func(tx *sql.Tx) error {
		types, err := listExerciseTypes(tx)
		if err != nil {
			return err
		}
		resolve := exerciseTypeResolver(types)

		for i := range rows {
			et := resolve(rows[i].exerciseName, rows[i].kinds)
			if et == nil {
				return fmt.Errorf("%w: line %d: %q", ErrUnknownExerciseType, rows[i].line, rows[i].exerciseName)
			}
			rows[i].entry.ExerciseTypeID = et.ID
		}

		removed, err = deleteAllEntries(tx)
		if err != nil {
			return err
		}
		for i := range rows {
			if err := insertEntry(tx, &rows[i].entry); err != nil {
				return fmt.Errorf("line %d: %w", rows[i].line, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("import csv: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"imported": len(rows),
		"replaced": removed,
	}).Info("imported entries from csv")
	return len(rows), nil
}

// readCSV parses the whole file, addressing columns by header name.
func readCSV(r io.Reader) ([]csvRow, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty file", ErrHeaderMismatch)
	}
	if err != nil {
		return nil, csvReadError(err)
	}
	col, err := headerIndex(header)
	if err != nil {
		return nil, err
	}

	var rows []csvRow
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvReadError(err)
		}
		line, _ := cr.FieldPos(0)
		row, err := parseRecord(record, col, line)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func csvReadError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return fmt.Errorf("%w: %v", ErrMalformedRow, err)
	}
	return fmt.Errorf("%w: read csv: %v", ErrIO, err)
}

// headerIndex maps column names to positions. The header must contain
// exactly the expected columns, in any order.
func headerIndex(header []string) (map[string]int, error) {
	col := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := col[name]; dup {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrHeaderMismatch, name)
		}
		col[name] = i
	}
	for _, name := range csvHeader {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrHeaderMismatch, name)
		}
	}
	if len(col) != len(csvHeader) {
		return nil, fmt.Errorf("%w: expected %d columns, got %d", ErrHeaderMismatch, len(csvHeader), len(col))
	}
	return col, nil
}

func parseRecord(record []string, col map[string]int, line int) (csvRow, error) {
	field := func(name string) string { return strings.TrimSpace(record[col[name]]) }
	bad := func(name string, err error) error {
		return fmt.Errorf("%w: line %d: column %s: %v", ErrMalformedRow, line, name, err)
	}

	row := csvRow{line: line, exerciseName: field("exerciseName")}
	if row.exerciseName == "" {
		return row, bad("exerciseName", errors.New("empty"))
	}

	kinds, err := models.ParseKinds(field("exerciseType"))
	if err != nil {
		return row, bad("exerciseType", err)
	}
	row.kinds = kinds

	durationMs, err := strconv.ParseInt(field("duration"), 10, 64)
	if err != nil {
		return row, bad("duration", err)
	}
	row.entry.Duration = time.Duration(durationMs) * time.Millisecond

	date, err := time.ParseInLocation(csvDateParseLayout, field("date"), time.UTC)
	if err != nil {
		return row, bad("date", err)
	}
	row.entry.Date = date

	if row.entry.SetID, err = strconv.ParseInt(field("setId"), 10, 64); err != nil {
		return row, bad("setId", err)
	}
	if row.entry.Reps, err = strconv.Atoi(field("reps")); err != nil {
		return row, bad("reps", err)
	}
	if row.entry.Distance, err = parseOptionalFloat(field("distance")); err != nil {
		return row, bad("distance", err)
	}
	if row.entry.Weight, err = parseOptionalFloat(field("weight")); err != nil {
		return row, bad("weight", err)
	}
	row.entry.DistanceUnit = parseOptionalString(field("distanceUnit"))
	row.entry.WeightUnit = parseOptionalString(field("weightUnit"))
	// Descriptions keep their inner whitespace.
	row.entry.Description = parseOptionalString(record[col["description"]])

	return row, nil
}

func parseOptionalFloat(s string) (*float64, error) {
	if s == "" || s == csvMissing {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func parseOptionalString(s string) *string {
	if s == "" || s == csvMissing {
		return nil
	}
	return &s
}

// exerciseTypeResolver finds a type by case-insensitive name, preferring
// one whose kinds match and otherwise the oldest.
func exerciseTypeResolver(types []*models.ExerciseType) func(name string, kinds models.Kinds) *models.ExerciseType {
	byName := make(map[string][]*models.ExerciseType)
	for _, et := range types {
		key := strings.ToLower(et.Name)
		byName[key] = append(byName[key], et)
	}

	return func(name string, kinds models.Kinds) *models.ExerciseType {
		candidates := byName[strings.ToLower(name)]
		if len(candidates) == 0 {
			return nil
		}
		oldest := candidates[0]
		for _, et := range candidates {
			if et.Kinds.String() == kinds.String() {
				return et
			}
			if et.ID < oldest.ID {
				oldest = et
			}
		}
		return oldest
	}
}
