// ABOUTME: SQLite schema definition as ordered, versioned migrations.
// ABOUTME: Version 1 is the original layout; version 2 adds display attributes.
package storage

// currentSchemaVersion is the newest schema this build understands.
const currentSchemaVersion = 2

const schemaVersionTable = `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER PRIMARY KEY,
	applied_at INTEGER NOT NULL
);
`

// Schema v1 - categories, exercise types, entries, and both link tables.
const schemaV1 = `
CREATE TABLE IF NOT EXISTS categories (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS exercise_types (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	type TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS fitness_entries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	exercise_type_id INTEGER NOT NULL REFERENCES exercise_types(id) ON DELETE RESTRICT,
	duration INTEGER NOT NULL DEFAULT 0,
	date INTEGER NOT NULL,
	set_id INTEGER NOT NULL,
	reps INTEGER NOT NULL DEFAULT 0,
	distance REAL,
	distance_unit TEXT,
	weight REAL,
	weight_unit TEXT
);

CREATE TABLE IF NOT EXISTS exercise_type_categories (
	exercise_type_id INTEGER NOT NULL REFERENCES exercise_types(id) ON DELETE CASCADE,
	category_id INTEGER NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
	PRIMARY KEY (exercise_type_id, category_id)
);

CREATE TABLE IF NOT EXISTS entry_categories (
	entry_id INTEGER NOT NULL REFERENCES fitness_entries(id) ON DELETE CASCADE,
	category_id INTEGER NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
	PRIMARY KEY (entry_id, category_id)
);

CREATE INDEX IF NOT EXISTS idx_entries_date ON fitness_entries(date DESC);
CREATE INDEX IF NOT EXISTS idx_entries_set ON fitness_entries(set_id);
CREATE INDEX IF NOT EXISTS idx_entries_exercise_type ON fitness_entries(exercise_type_id);
CREATE INDEX IF NOT EXISTS idx_exercise_type_categories_category ON exercise_type_categories(category_id);
`

// Schema v2 - icons/colors and descriptions. Entry categories are now
// derived through the exercise type, so the direct link table goes away.
const schemaV2 = `
ALTER TABLE categories ADD COLUMN icon TEXT NOT NULL DEFAULT 'figure.walk';
ALTER TABLE categories ADD COLUMN color TEXT NOT NULL DEFAULT '#007AFF';
ALTER TABLE exercise_types ADD COLUMN icon TEXT;
ALTER TABLE exercise_types ADD COLUMN color TEXT;
ALTER TABLE fitness_entries ADD COLUMN description TEXT;
DROP TABLE IF EXISTS entry_categories;
`

// migration is one ordered schema step.
type migration struct {
	version int
	name    string
	stmts   string
}

var migrations = []migration{
	{version: 1, name: "initial tables", stmts: schemaV1},
	{version: 2, name: "display attributes and derived entry categories", stmts: schemaV2},
}

// requiredTables must exist in any database at currentSchemaVersion.
var requiredTables = []string{
	"schema_version",
	"categories",
	"exercise_types",
	"fitness_entries",
	"exercise_type_categories",
}
