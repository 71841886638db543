package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/studiodesk/internal/adapters/sqlite"
	"github.com/example/studiodesk/internal/ports/secondary"
)

func TestClientRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewClientRepository(db)
	ctx := context.Background()

	client := &secondary.ClientRecord{
		ID:    "CL-001",
		Name:  "Bistro Aurora",
		Email: "hello@aurora.test",
	}
	if err := repo.Create(ctx, client); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	retrieved, err := repo.GetByID(ctx, "CL-001")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if retrieved.Name != "Bistro Aurora" {
		t.Errorf("expected name 'Bistro Aurora', got '%s'", retrieved.Name)
	}
	if retrieved.Status != "active" {
		t.Errorf("expected default status 'active', got '%s'", retrieved.Status)
	}
	if retrieved.RemainingServings != 0 || retrieved.RemainingImages != 0 {
		t.Errorf("expected zero counters, got %d/%d", retrieved.RemainingServings, retrieved.RemainingImages)
	}
	if retrieved.CreatedAt == "" {
		t.Error("expected created_at timestamp")
	}
}

func TestClientRepository_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewClientRepository(db)

	if _, err := repo.GetByID(context.Background(), "CL-404"); err == nil {
		t.Error("expected error for unknown client")
	}
}

func TestClientRepository_SetCounter(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewClientRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, &secondary.ClientRecord{ID: "CL-001", Name: "Bistro Aurora"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := repo.SetCounter(ctx, "CL-001", secondary.CounterServings, 12)
	if err != nil {
		t.Fatalf("SetCounter failed: %v", err)
	}
	if updated.RemainingServings != 12 {
		t.Errorf("expected 12 servings, got %d", updated.RemainingServings)
	}

	// Only the named counter column changes.
	if updated.RemainingImages != 0 || updated.AITrainingUnits != 0 {
		t.Errorf("other counters must be untouched: %+v", updated)
	}
}

func TestClientRepository_SetCounter_InvalidField(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewClientRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, &secondary.ClientRecord{ID: "CL-001", Name: "Bistro Aurora"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := repo.SetCounter(ctx, "CL-001", "name", 5); err == nil {
		t.Error("expected error for non-counter field")
	}
	if _, err := repo.SetCounter(ctx, "CL-001", secondary.CounterServings, -1); err == nil {
		t.Error("expected error for negative value")
	}
}

func TestClientRepository_AssignPackage(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewClientRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, &secondary.ClientRecord{
		ID: "CL-001", Name: "Bistro Aurora", RemainingServings: 7, RemainingImages: 3,
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := repo.AssignPackage(ctx, "CL-001", "PKG-001", 30, 60, "upgrade")
	if err != nil {
		t.Fatalf("AssignPackage failed: %v", err)
	}
	if updated.CurrentPackageID != "PKG-001" {
		t.Errorf("expected package assigned, got '%s'", updated.CurrentPackageID)
	}
	// Counts are replaced, not added.
	if updated.RemainingServings != 30 || updated.RemainingImages != 60 {
		t.Errorf("expected 30/60, got %d/%d", updated.RemainingServings, updated.RemainingImages)
	}
	if updated.Notes != "upgrade" {
		t.Errorf("expected note written, got '%s'", updated.Notes)
	}
}

func TestClientRepository_List_FiltersByStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewClientRepository(db)
	ctx := context.Background()

	for _, c := range []*secondary.ClientRecord{
		{ID: "CL-001", Name: "Active One", Status: "active"},
		{ID: "CL-002", Name: "Paused One", Status: "paused"},
	} {
		if err := repo.Create(ctx, c); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	active, err := repo.List(ctx, secondary.OwnerFilters{Status: "active"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(active) != 1 || active[0].ID != "CL-001" {
		t.Errorf("expected only the active client, got %v", active)
	}
}

func TestClientRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewClientRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, &secondary.ClientRecord{ID: "CL-001", Name: "Bistro Aurora"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := repo.Delete(ctx, "CL-001"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := repo.GetByID(ctx, "CL-001"); err == nil {
		t.Error("expected client gone after delete")
	}
	if err := repo.Delete(ctx, "CL-001"); err == nil {
		t.Error("expected error deleting twice")
	}
}
