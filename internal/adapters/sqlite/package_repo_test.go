package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/studiodesk/internal/adapters/sqlite"
	"github.com/example/studiodesk/internal/ports/secondary"
)

func TestPackageRepository_CreateAndGet_RoundTripsTags(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewPackageRepository(db)
	ctx := context.Background()

	pkg := &secondary.PackageRecord{
		ID:            "PKG-001",
		Name:          "Starter",
		TotalServings: 50,
		TotalImages:   100,
		Price:         199.5,
		IsActive:      true,
		FeaturesTags:  []string{"retouching", "styling"},
	}
	if err := repo.Create(ctx, pkg); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	retrieved, err := repo.GetByID(ctx, "PKG-001")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(retrieved.FeaturesTags) != 2 || retrieved.FeaturesTags[0] != "retouching" {
		t.Errorf("expected tags round-tripped, got %v", retrieved.FeaturesTags)
	}
	if retrieved.Price != 199.5 {
		t.Errorf("expected price 199.5, got %v", retrieved.Price)
	}
	if !retrieved.IsActive {
		t.Error("expected package active")
	}
}

func TestPackageRepository_Delete_LeavesOwnersUntouched(t *testing.T) {
	db := setupTestDB(t)
	packages := sqlite.NewPackageRepository(db)
	clients := sqlite.NewClientRepository(db)
	ctx := context.Background()

	if err := packages.Create(ctx, &secondary.PackageRecord{ID: "PKG-001", Name: "Starter"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := clients.Create(ctx, &secondary.ClientRecord{
		ID: "CL-001", Name: "Bistro Aurora", CurrentPackageID: "PKG-001", RemainingServings: 5,
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := packages.Delete(ctx, "PKG-001"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	// The owner row keeps its reference; only the package row is gone.
	client, err := clients.GetByID(ctx, "CL-001")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if client.CurrentPackageID != "PKG-001" {
		t.Errorf("owner's package reference must survive the delete, got '%s'", client.CurrentPackageID)
	}
	if client.RemainingServings != 5 {
		t.Errorf("owner's counters must survive the delete, got %d", client.RemainingServings)
	}
	if _, err := packages.GetByID(ctx, "PKG-001"); err == nil {
		t.Error("expected package row gone")
	}
}

func TestPackageRepository_List_ActiveOnly(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewPackageRepository(db)
	ctx := context.Background()

	for _, p := range []*secondary.PackageRecord{
		{ID: "PKG-001", Name: "Starter", IsActive: true},
		{ID: "PKG-002", Name: "Retired", IsActive: false},
	} {
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	active, err := repo.List(ctx, secondary.PackageFilters{ActiveOnly: true})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(active) != 1 || active[0].ID != "PKG-001" {
		t.Errorf("expected only the active package, got %v", active)
	}

	all, err := repo.List(ctx, secondary.PackageFilters{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected both packages, got %d", len(all))
	}
}
