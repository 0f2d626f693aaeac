// Package sqlite_test contains integration tests for SQLite repositories.
//
// Test databases are built from db.GetSchemaSQL() so tests always run against
// the authoritative schema. Do not hardcode CREATE TABLE statements here.
package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/pitstop/internal/adapters/sqlite"
	"github.com/example/pitstop/internal/db"
	"github.com/example/pitstop/internal/ports/secondary"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// createTestRecord inserts a record for the given plate with the next free ID.
func createTestRecord(t *testing.T, repo *sqlite.RecordRepository, ctx context.Context, plate string) *secondary.VehicleRecord {
	t.Helper()

	id, err := repo.NextID(ctx)
	if err != nil {
		t.Fatalf("NextID failed: %v", err)
	}
	now := time.Now().UTC()
	record := &secondary.VehicleRecord{
		ID:        id,
		Plate:     plate,
		Status:    "in_progress",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repo.Create(ctx, record); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	return record
}
