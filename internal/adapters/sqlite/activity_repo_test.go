package sqlite_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/example/pitstop/internal/adapters/sqlite"
	"github.com/example/pitstop/internal/ports/secondary"
)

func TestActivityRepository_AppendAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewActivityRepository(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		entry := &secondary.ActivityRecord{
			Kind:        "UPSERT",
			Description: fmt.Sprintf("entry %d", i),
			CreatedAt:   time.Now().UTC(),
		}
		if err := repo.Append(ctx, entry); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	entries, err := repo.List(ctx, 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	// Newest first regardless of internal storage order.
	if entries[0].Description != "entry 2" || entries[2].Description != "entry 0" {
		t.Errorf("expected newest first, got %q .. %q", entries[0].Description, entries[2].Description)
	}
}

func TestActivityRepository_CapacityBound(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewActivityRepository(db)
	ctx := context.Background()

	// Appending 150 entries must leave exactly the 100 most recent.
	for i := 0; i < 150; i++ {
		entry := &secondary.ActivityRecord{
			Kind:        "SEARCH",
			Description: fmt.Sprintf("entry %d", i),
			CreatedAt:   time.Now().UTC(),
		}
		if err := repo.Append(ctx, entry); err != nil {
			t.Fatalf("Append %d failed: %v", i, err)
		}
	}

	entries, err := repo.List(ctx, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != secondary.ActivityCapacity {
		t.Fatalf("expected %d retained entries, got %d", secondary.ActivityCapacity, len(entries))
	}
	if entries[0].Description != "entry 149" {
		t.Errorf("expected newest entry first, got %q", entries[0].Description)
	}
	if entries[len(entries)-1].Description != "entry 50" {
		t.Errorf("expected oldest retained entry to be entry 50, got %q", entries[len(entries)-1].Description)
	}
}

func TestActivityRepository_ListLimit(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewActivityRepository(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := repo.Append(ctx, &secondary.ActivityRecord{Kind: "UPSERT", CreatedAt: time.Now().UTC()}); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	entries, err := repo.List(ctx, 2)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected limit to apply, got %d entries", len(entries))
	}
}
