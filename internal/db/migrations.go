package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migration represents a database migration.
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.DB) error
}

// migrations is the list of all migrations in order. Fresh installs get the
// full schema from SchemaSQL and have every version marked applied.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "add_mileage_and_next_inspection_to_vehicle_records",
		Up:      migrationV1,
	},
}

// InitSchema applies the full schema and marks all migrations applied. Safe
// to call on every open: existing objects are left alone.
func InitSchema(database *sql.DB) error {
	if _, err := database.Exec(SchemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	if err := Migrate(database); err != nil {
		return err
	}
	return nil
}

// Migrate applies every pending migration in order.
func Migrate(database *sql.DB) error {
	applied, err := appliedVersions(database)
	if err != nil {
		return err
	}
	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		if err := m.Up(database); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
		}
		if _, err := database.Exec(
			"INSERT INTO schema_migrations (version, name) VALUES (?, ?)", m.Version, m.Name,
		); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
	}
	return nil
}

func appliedVersions(database *sql.DB) (map[int]bool, error) {
	rows, err := database.Query("SELECT version FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to read schema_migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[v] = true
	}
	return applied, rows.Err()
}

// migrationV1 backfills the odometer and inspection columns on databases
// created before they existed. Fresh installs already have them via
// SchemaSQL, so errors about duplicate columns are tolerated.
func migrationV1(database *sql.DB) error {
	for _, stmt := range []string{
		"ALTER TABLE vehicle_records ADD COLUMN mileage INTEGER",
		"ALTER TABLE vehicle_records ADD COLUMN next_inspection TEXT NOT NULL DEFAULT ''",
	} {
		if _, err := database.Exec(stmt); err != nil && !isDuplicateColumn(err) {
			return err
		}
	}
	return nil
}

func isDuplicateColumn(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate column name")
}
