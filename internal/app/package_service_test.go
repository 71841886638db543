package app

import (
	"context"
	"errors"
	"testing"

	"github.com/example/studiodesk/internal/cache"
	"github.com/example/studiodesk/internal/ports/primary"
	"github.com/example/studiodesk/internal/ports/secondary"
)

func newPackageFixture(t *testing.T, records ...*secondary.PackageRecord) (*PackageServiceImpl, *mockPackageRepo, *cache.Store) {
	t.Helper()
	store := cache.NewStore()
	repo := newMockPackageRepo(records...)
	svc := NewPackageService(repo, NewFanout(nil), store, &seqIDs{}, secondary.NewNopLogger())
	return svc, repo, store
}

func TestCreatePackageValidatesTotals(t *testing.T) {
	svc, _, _ := newPackageFixture(t)
	_, err := svc.CreatePackage(context.Background(), primary.CreatePackageRequest{
		Name:          "Starter",
		TotalServings: -1,
	})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestDeletePackageTargetsOnlyThePackageRow(t *testing.T) {
	svc, repo, store := newPackageFixture(t, &secondary.PackageRecord{
		ID: "PKG-001", Name: "Starter", TotalServings: 50, IsActive: true,
	})

	// A client list projection embedding the package is cached.
	clientList := []*primary.Client{{ID: "CL-001", CurrentPackageID: "PKG-001", RemainingServings: 5}}
	store.Set(cache.ListKey(EntityClients), clientList)
	store.Set(cache.DetailKey(EntityPackages, "PKG-001"), "cached-package")

	if err := svc.DeletePackage(context.Background(), "PKG-001"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.deleteCalls) != 1 || repo.deleteCalls[0] != "PKG-001" {
		t.Errorf("expected exactly one row delete, got %v", repo.deleteCalls)
	}
	if _, ok := store.Get(cache.DetailKey(EntityPackages, "PKG-001")); ok {
		t.Error("package detail key must be dropped")
	}
	// Owner projections are invalidated, never rewritten: the client still
	// references the deleted package until refetched.
	if !store.IsStale(cache.ListKey(EntityClients)) {
		t.Error("client list must be stale after package deletion")
	}
	if v, _ := store.Get(cache.ListKey(EntityClients)); v.([]*primary.Client)[0].CurrentPackageID != "PKG-001" {
		t.Error("cached client row must be untouched by the delete")
	}
}

func TestDeletePackageUnknownID(t *testing.T) {
	svc, repo, _ := newPackageFixture(t)
	if err := svc.DeletePackage(context.Background(), "PKG-404"); err == nil {
		t.Fatal("expected error for unknown package")
	}
	if len(repo.deleteCalls) != 0 {
		t.Error("unknown package must not reach the store")
	}
}

func TestUpdatePackageInvalidatesOwnerProjections(t *testing.T) {
	svc, _, store := newPackageFixture(t, &secondary.PackageRecord{
		ID: "PKG-001", Name: "Starter", TotalServings: 50, IsActive: true,
	})
	store.Set(cache.ListKey(EntityClients), "client-list")
	store.Set(cache.ListKey(EntityAffiliates), "affiliate-list")

	err := svc.UpdatePackage(context.Background(), primary.UpdatePackageRequest{
		PackageID: "PKG-001",
		Price:     249,
		IsActive:  true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !store.IsStale(cache.ListKey(EntityClients)) || !store.IsStale(cache.ListKey(EntityAffiliates)) {
		t.Error("owner lists embedding the package must be stale after update")
	}
}

func TestListPackagesActiveOnly(t *testing.T) {
	svc, _, _ := newPackageFixture(t,
		&secondary.PackageRecord{ID: "PKG-001", Name: "Starter", IsActive: true},
		&secondary.PackageRecord{ID: "PKG-002", Name: "Retired", IsActive: false},
	)

	pkgs, err := svc.ListPackages(context.Background(), primary.PackageFilters{ActiveOnly: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pkgs) != 1 || pkgs[0].ID != "PKG-001" {
		t.Errorf("expected only the active package, got %v", pkgs)
	}
}
