// Package db owns the local SQLite database: opening, schema, migrations.
package db

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// FileName is the database file inside the data directory.
const FileName = "pitstop.db"

// Open opens (creating if needed) the local database at dir/pitstop.db and
// ensures the schema is current. The handle is owned by the caller; there is
// no package-level connection.
//
// An unreadable database file is moved aside and replaced with a fresh one:
// the store degrades to empty state with a warning instead of refusing
// service. Local availability is prioritized over strict durability.
func Open(dir string) (*sql.DB, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	path := filepath.Join(dir, FileName)

	database, err := open(path)
	if err == nil {
		return database, nil
	}

	// Corrupt or unreadable file: keep it for inspection, start empty.
	quarantine := fmt.Sprintf("%s.corrupt-%s", path, time.Now().UTC().Format("20060102150405"))
	log.Printf("warning: local store unreadable (%v), moving %s aside and starting empty", err, FileName)
	if renameErr := os.Rename(path, quarantine); renameErr != nil {
		return nil, fmt.Errorf("failed to quarantine unreadable database: %w", renameErr)
	}
	return open(path)
}

func open(path string) (*sql.DB, error) {
	database, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := database.Exec("PRAGMA foreign_keys = ON"); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if err := InitSchema(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return database, nil
}
