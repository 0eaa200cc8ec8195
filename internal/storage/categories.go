// ABOUTME: Category CRUD operations for SQLite storage.
// ABOUTME: Category names are unique; deletes cascade to exercise type links.
package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/harperreed/plainfit/internal/models"
)

// CreateCategory stores a new category and sets its generated ID.
func (d *DB) CreateCategory(c *models.Category) error {
	return createCategory(d.db, c)
}

func createCategory(q querier, c *models.Category) error {
	if err := validateCategory(c); err != nil {
		return fmt.Errorf("create category: %w", err)
	}

	result, err := q.Exec(
		`INSERT INTO categories (name, icon, color) VALUES (?, ?, ?)`,
		c.Name, c.Icon, c.Color,
	)
	if err != nil {
		return fmt.Errorf("create category %q: %w", c.Name, classify(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("create category %q: %w", c.Name, err)
	}
	c.ID = id
	return nil
}

// GetCategory retrieves a category by ID.
func (d *DB) GetCategory(id int64) (*models.Category, error) {
	row := d.db.QueryRow(`SELECT `+categoryColumns+` FROM categories c WHERE c.id = ?`, id)
	c, err := scanCategory(row)
	if err != nil {
		return nil, fmt.Errorf("get category %d: %w", id, err)
	}
	return c, nil
}

// GetCategoryByName retrieves a category by exact name.
func (d *DB) GetCategoryByName(name string) (*models.Category, error) {
	return getCategoryByName(d.db, name)
}

func getCategoryByName(q querier, name string) (*models.Category, error) {
	row := q.QueryRow(`SELECT `+categoryColumns+` FROM categories c WHERE c.name = ?`, name)
	c, err := scanCategory(row)
	if err != nil {
		return nil, fmt.Errorf("get category %q: %w", name, err)
	}
	return c, nil
}

// ListCategories returns all categories ordered by name.
func (d *DB) ListCategories() ([]*models.Category, error) {
	rows, err := d.db.Query(`SELECT ` + categoryColumns + ` FROM categories c ORDER BY c.name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", classify(err))
	}
	defer rows.Close()

	return scanCategories(rows)
}

// UpdateCategory replaces the stored row with the same ID.
func (d *DB) UpdateCategory(c *models.Category) error {
	if err := validateCategory(c); err != nil {
		return fmt.Errorf("update category: %w", err)
	}

	result, err := d.db.Exec(
		`UPDATE categories SET name = ?, icon = ?, color = ? WHERE id = ?`,
		c.Name, c.Icon, c.Color, c.ID,
	)
	if err != nil {
		return fmt.Errorf("update category %d: %w", c.ID, classify(err))
	}
	return expectAffected(result, "update category", c.ID)
}

// DeleteCategory removes a category; its exercise type links cascade.
func (d *DB) DeleteCategory(id int64) error {
	result, err := d.db.Exec("DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete category %d: %w", id, classify(err))
	}
	return expectAffected(result, "delete category", id)
}

// CountCategories returns the number of categories.
func (d *DB) CountCategories() (int, error) {
	return countCategories(d.db)
}

func countCategories(q querier) (int, error) {
	var count int
	if err := q.QueryRow("SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return 0, fmt.Errorf("count categories: %w", classify(err))
	}
	return count, nil
}

func validateCategory(c *models.Category) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return errors.New("category name must not be empty")
	}
	if c.Icon == "" {
		c.Icon = models.DefaultIcon
	}
	if c.Color == "" {
		c.Color = models.DefaultColor
	}
	return nil
}

// expectAffected turns a zero-row update or delete into ErrNotFound.
func expectAffected(result interface{ RowsAffected() (int64, error) }, op string, id int64) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s %d: %w", op, id, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s %d: %w", op, id, ErrNotFound)
	}
	return nil
}
