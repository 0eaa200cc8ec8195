// ABOUTME: Built-in catalog of categories, exercise types, and tutorial entries.
// ABOUTME: Seeding runs in one transaction and only when no categories exist.
package storage

import (
	"bytes"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/harperreed/plainfit/internal/models"
)

//go:embed seed/exercises.json
var defaultCatalogJSON []byte

// Catalog is the seed file format.
type Catalog struct {
	Categories []CatalogCategory `json:"categories"`
	Entries    []CatalogEntry    `json:"entries"`
}

// CatalogCategory is a category and the exercises listed under it.
type CatalogCategory struct {
	Name      string            `json:"name"`
	Icon      string            `json:"icon"`
	Color     string            `json:"color"`
	Exercises []CatalogExercise `json:"exercises"`
}

// CatalogExercise describes one exercise type. The same name and type under
// several categories is a single exercise type linked to each.
type CatalogExercise struct {
	Name  string  `json:"name"`
	Type  string  `json:"type"`
	Icon  *string `json:"icon,omitempty"`
	Color *string `json:"color,omitempty"`
}

// CatalogEntry is a tutorial set logged daysAgo days before seeding.
type CatalogEntry struct {
	Exercise     string   `json:"exercise"`
	DaysAgo      int      `json:"daysAgo"`
	Duration     int64    `json:"duration"`
	Reps         int      `json:"reps"`
	Rounds       int      `json:"rounds"`
	Distance     *float64 `json:"distance,omitempty"`
	DistanceUnit *string  `json:"distanceUnit,omitempty"`
	Weight       *float64 `json:"weight,omitempty"`
	WeightUnit   *string  `json:"weightUnit,omitempty"`
	Description  *string  `json:"description,omitempty"`
}

// LoadCatalog parses and checks a catalog.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var c Catalog
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return &c, nil
}

// DefaultCatalog returns the catalog embedded in the binary.
func DefaultCatalog() (*Catalog, error) {
	return LoadCatalog(bytes.NewReader(defaultCatalogJSON))
}

func (c *Catalog) validate() error {
	known := make(map[string]bool)
	for _, cat := range c.Categories {
		if strings.TrimSpace(cat.Name) == "" {
			return errors.New("category without a name")
		}
		for _, ex := range cat.Exercises {
			if strings.TrimSpace(ex.Name) == "" {
				return fmt.Errorf("category %q: exercise without a name", cat.Name)
			}
			if _, err := models.ParseKinds(ex.Type); err != nil {
				return fmt.Errorf("exercise %q: %w", ex.Name, err)
			}
			known[strings.ToLower(ex.Name)] = true
		}
	}
	for i, e := range c.Entries {
		if !known[strings.ToLower(e.Exercise)] {
			return fmt.Errorf("entry %d: %w: %q", i, ErrUnknownExerciseType, e.Exercise)
		}
		if e.DaysAgo < 0 || e.Rounds < 0 || e.Reps < 0 || e.Duration < 0 {
			return fmt.Errorf("entry %d: negative value", i)
		}
	}
	return nil
}

// SeedIfEmpty inserts the catalog when the categories table is empty and
// reports whether it did. Tutorial entries are dated relative to now.
func (d *DB) SeedIfEmpty(catalog *Catalog, now time.Time) (bool, error) {
	seeded := false
	err := d.withTx(func(tx *sql.Tx) error {
		count, err := countCategories(tx)
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		if err := seedCatalog(tx, catalog, now); err != nil {
			return err
		}
		seeded = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("seed catalog: %w", err)
	}

	if seeded {
		logrus.WithFields(logrus.Fields{
			"categories": len(catalog.Categories),
			"entries":    len(catalog.Entries),
		}).Info("seeded built-in catalog")
	}
	return seeded, nil
}

func seedCatalog(tx *sql.Tx, catalog *Catalog, now time.Time) error {
	type typeKey struct{ name, kinds string }
	created := make(map[typeKey]*models.ExerciseType)
	byName := make(map[string]*models.ExerciseType)

	for _, cc := range catalog.Categories {
		category := models.NewCategory(cc.Name).WithIcon(cc.Icon).WithColor(cc.Color)
		if err := createCategory(tx, category); err != nil {
			return err
		}

		for _, ce := range cc.Exercises {
			kinds, err := models.ParseKinds(ce.Type)
			if err != nil {
				return fmt.Errorf("exercise %q: %w", ce.Name, err)
			}
			key := typeKey{strings.ToLower(ce.Name), kinds.String()}

			et, ok := created[key]
			if !ok {
				et = models.NewExerciseType(ce.Name, kinds...)
				et.Icon, et.Color = ce.Icon, ce.Color
				if err := createExerciseType(tx, et); err != nil {
					return err
				}
				created[key] = et
				if _, seen := byName[key.name]; !seen {
					byName[key.name] = et
				}
			}
			if err := linkExerciseType(tx, et.ID, category.ID); err != nil {
				return err
			}
		}
	}

	for i, ce := range catalog.Entries {
		et, ok := byName[strings.ToLower(ce.Exercise)]
		if !ok {
			return fmt.Errorf("entry %d: %w: %q", i, ErrUnknownExerciseType, ce.Exercise)
		}

		setID, err := nextSetID(tx)
		if err != nil {
			return err
		}

		rounds := max(ce.Rounds, 1)
		start := now.AddDate(0, 0, -ce.DaysAgo)
		entries := make([]*models.FitnessEntry, 0, rounds)
		for r := 0; r < rounds; r++ {
			entries = append(entries, &models.FitnessEntry{
				ExerciseTypeID: et.ID,
				Duration:       time.Duration(ce.Duration) * time.Millisecond,
				Date:           start.Add(time.Duration(r) * time.Minute),
				Reps:           ce.Reps,
				Distance:       ce.Distance,
				DistanceUnit:   ce.DistanceUnit,
				Weight:         ce.Weight,
				WeightUnit:     ce.WeightUnit,
				Description:    ce.Description,
			})
		}
		if err := insertSet(tx, setID, entries); err != nil {
			return err
		}
	}
	return nil
}
