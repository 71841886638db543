package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/studiodesk/internal/adapters/sqlite"
	"github.com/example/studiodesk/internal/ports/secondary"
)

func TestWorkSessionRepository_CreateAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewWorkSessionRepository(db)
	ctx := context.Background()

	sessions := []*secondary.WorkSessionRecord{
		{ID: "WS-001", OwnerType: "client", OwnerID: "CL-001", DurationMinutes: 30, WorkType: "editing", SessionDate: "2026-08-29"},
		{ID: "WS-002", OwnerType: "client", OwnerID: "CL-001", DurationMinutes: 15, WorkType: "retouching", SessionDate: "2026-08-30"},
		{ID: "WS-003", OwnerType: "lead", OwnerID: "LD-001", DurationMinutes: 10, WorkType: "editing", SessionDate: "2026-08-30"},
	}
	for _, s := range sessions {
		if err := repo.Create(ctx, s); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	forClient, err := repo.List(ctx, secondary.WorkSessionFilters{OwnerType: "client", OwnerID: "CL-001"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(forClient) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(forClient))
	}
	// Newest session date first.
	if forClient[0].ID != "WS-002" {
		t.Errorf("expected newest first, got %s", forClient[0].ID)
	}

	limited, err := repo.List(ctx, secondary.WorkSessionFilters{Limit: 1})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("expected limit respected, got %d", len(limited))
	}
}
