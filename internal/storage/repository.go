// ABOUTME: Repository interface for fitness data storage.
// ABOUTME: Defines the record store, query layer, interchange, and backup contract.
package storage

import (
	"io"
	"time"

	"github.com/harperreed/plainfit/internal/models"
)

// Repository defines the storage interface for fitness data.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// Category operations
	CreateCategory(c *models.Category) error
	GetCategory(id int64) (*models.Category, error)
	GetCategoryByName(name string) (*models.Category, error)
	ListCategories() ([]*models.Category, error)
	UpdateCategory(c *models.Category) error
	DeleteCategory(id int64) error
	CountCategories() (int, error)

	// Exercise type operations
	CreateExerciseType(et *models.ExerciseType) error
	GetExerciseType(id int64) (*models.ExerciseType, error)
	FindExerciseType(name string) (*models.ExerciseType, error)
	ListExerciseTypes() ([]*models.ExerciseType, error)
	UpdateExerciseType(et *models.ExerciseType) error
	DeleteExerciseType(id int64) error

	// Category <-> exercise type links
	LinkExerciseType(exerciseTypeID, categoryID int64) error
	UnlinkExerciseType(exerciseTypeID, categoryID int64) error
	SetExerciseTypeCategories(exerciseTypeID int64, categoryIDs []int64) error
	ExerciseTypesForCategory(categoryID int64) ([]*models.ExerciseType, error)
	CategoriesForExerciseType(exerciseTypeID int64) ([]*models.Category, error)

	// Entry operations
	CreateEntry(e *models.FitnessEntry) error
	GetEntry(id int64) (*models.FitnessEntry, error)
	UpdateEntry(e *models.FitnessEntry) error
	DeleteEntry(id int64) error
	ListEntries() ([]*models.FitnessEntry, error)
	DeleteAllEntries() (int64, error)

	// Set operations
	GenerateSetID() (int64, error)
	AddSet(entries []*models.FitnessEntry) (int64, error)
	ReplaceSet(setID int64, entries []*models.FitnessEntry) error
	DeleteSet(setID int64) error
	EntriesBySet(setID int64) ([]*models.FitnessEntry, error)
	ExerciseTypeForSet(setID int64) (*models.ExerciseType, error)

	// Date queries
	EntriesForDay(date time.Time) ([]*models.FitnessEntry, error)
	MonthActivity(date time.Time) (map[int][]models.Activity, error)
	ActiveDays(from, to time.Time) ([]time.Time, error)

	// Interchange
	ExportCSV(w io.Writer) error
	ImportCSV(r io.Reader) (int, error)
	GetAllData() (*ExportData, error)
	ExportJSON() ([]byte, error)
	ExportYAML() ([]byte, error)

	// Seed, backup, restore
	SeedIfEmpty(catalog *Catalog, now time.Time) (bool, error)
	Backup(dst string) error
	Restore(src string) error
	Path() string

	// Lifecycle
	Close() error
}
