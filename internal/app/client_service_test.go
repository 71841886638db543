package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/example/studiodesk/internal/cache"
	"github.com/example/studiodesk/internal/ports/primary"
	"github.com/example/studiodesk/internal/ports/secondary"
)

type clientFixture struct {
	svc      *ClientServiceImpl
	repo     *mockClientRepo
	packages *mockPackageRepo
	store    *cache.Store
	notifier *secondary.RecordingNotifier
	fanout   *Fanout
}

func newClientFixture(t *testing.T, records ...*secondary.ClientRecord) *clientFixture {
	t.Helper()
	store := cache.NewStore()
	notifier := &secondary.RecordingNotifier{}
	logger := secondary.NewNopLogger()
	repo := newMockClientRepo(records...)
	packages := newMockPackageRepo(
		&secondary.PackageRecord{ID: "PKG-001", Name: "Starter", TotalServings: 50, TotalImages: 100, Price: 199, IsActive: true},
	)
	fanout := NewFanout(&ViewerContext{ViewerID: "admin-1", ViewerStatus: "active"})
	coord := NewCoordinator(store, notifier, logger)
	return &clientFixture{
		svc:      NewClientService(repo, packages, coord, fanout, store, &seqIDs{}, logger),
		repo:     repo,
		packages: packages,
		store:    store,
		notifier: notifier,
		fanout:   fanout,
	}
}

func clientRecord(id string, servings, images, units int) *secondary.ClientRecord {
	return &secondary.ClientRecord{
		ID:                id,
		Name:              "Bistro Aurora",
		Status:            "active",
		RemainingServings: servings,
		RemainingImages:   images,
		AITrainingUnits:   units,
	}
}

func TestCreateClientStartsWithZeroCounters(t *testing.T) {
	f := newClientFixture(t)
	client, err := f.svc.CreateClient(context.Background(), primary.CreateClientRequest{Name: "Bistro Aurora"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.RemainingServings != 0 || client.RemainingImages != 0 || client.AITrainingUnits != 0 {
		t.Errorf("new client counters must be zero: %+v", client)
	}
	if client.Status != "active" {
		t.Errorf("expected default status active, got %q", client.Status)
	}
	if _, ok := f.store.Get(cache.DetailKey(EntityClients, client.ID)); !ok {
		t.Error("expected detail key populated after create")
	}
}

func TestCreateClientRequiresName(t *testing.T) {
	f := newClientFixture(t)
	_, err := f.svc.CreateClient(context.Background(), primary.CreateClientRequest{})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestAdjustServingsWritesAbsoluteValue(t *testing.T) {
	f := newClientFixture(t, clientRecord("CL-001", 5, 10, 0))

	client, err := f.svc.AdjustServings(context.Background(), "CL-001", -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.RemainingServings != 4 {
		t.Errorf("expected 4 remaining servings, got %d", client.RemainingServings)
	}
	if f.repo.setCounterCalls != 1 {
		t.Errorf("expected exactly one remote write, got %d", f.repo.setCounterCalls)
	}
	if f.repo.lastCounterValue != 4 {
		t.Errorf("remote write must carry the absolute value 4, got %d", f.repo.lastCounterValue)
	}
}

func TestDecrementAtZeroRejectedWithoutNetwork(t *testing.T) {
	f := newClientFixture(t, clientRecord("CL-001", 0, 0, 0))

	_, err := f.svc.AdjustServings(context.Background(), "CL-001", -1)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if f.repo.setCounterCalls != 0 {
		t.Errorf("decrement at zero must not reach the store, got %d calls", f.repo.setCounterCalls)
	}
	if len(f.notifier.Errors) != 0 {
		t.Errorf("no rollback notification expected, got %v", f.notifier.Errors)
	}
}

func TestDecrementFromOneWritesZeroAndNotifies(t *testing.T) {
	f := newClientFixture(t, clientRecord("CL-001", 1, 0, 0))

	client, err := f.svc.AdjustServings(context.Background(), "CL-001", -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.RemainingServings != 0 {
		t.Errorf("expected 0 remaining, got %d", client.RemainingServings)
	}
	if f.repo.setCounterCalls != 1 || f.repo.lastCounterValue != 0 {
		t.Errorf("expected one remote write carrying 0, got %d calls last=%d", f.repo.setCounterCalls, f.repo.lastCounterValue)
	}
	if len(f.notifier.Successes) != 1 || !strings.Contains(f.notifier.Successes[0], "0") {
		t.Errorf("success notification must carry the new value, got %v", f.notifier.Successes)
	}

	// The counter is now zero, so the next decrement is rejected locally.
	if _, err := f.svc.AdjustServings(context.Background(), "CL-001", -1); !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error on follow-up decrement, got %v", err)
	}
	if f.repo.setCounterCalls != 1 {
		t.Errorf("follow-up decrement must not reach the store, got %d calls", f.repo.setCounterCalls)
	}
}

func TestAdjustClampsLargeNegativeDelta(t *testing.T) {
	f := newClientFixture(t, clientRecord("CL-001", 3, 0, 0))

	client, err := f.svc.AdjustServings(context.Background(), "CL-001", -10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.RemainingServings != 0 {
		t.Errorf("expected clamp to zero, got %d", client.RemainingServings)
	}
	if f.repo.lastCounterValue != 0 {
		t.Errorf("remote write must carry the clamped value, got %d", f.repo.lastCounterValue)
	}
}

func TestAdjustRollsBackEveryFannedOutKey(t *testing.T) {
	f := newClientFixture(t, clientRecord("CL-001", 5, 0, 0))

	// Populate the detail key and every list projection the mutation fans
	// out to.
	before, err := f.svc.GetClient(context.Background(), "CL-001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	list := []*primary.Client{before}
	f.store.Set(cache.ListKey(EntityClients), list)
	f.store.Set(cache.SimplifiedKey(EntityClients, "admin-1", "active"), list)
	f.store.Set(cache.AdminListKey(EntityClients, "admin-1"), list)

	f.repo.failNextWrite = errors.New("connection reset")
	if _, err := f.svc.AdjustServings(context.Background(), "CL-001", -1); err == nil {
		t.Fatal("expected remote failure to propagate")
	}

	for _, k := range f.fanout.EntityKeys(EntityClients, "CL-001") {
		v, ok := f.store.Get(k)
		if !ok {
			t.Fatalf("key %v missing after rollback", k)
		}
		switch t2 := v.(type) {
		case *primary.Client:
			if t2.RemainingServings != 5 {
				t.Errorf("key %v not restored: %d", k, t2.RemainingServings)
			}
		case []*primary.Client:
			if t2[0].RemainingServings != 5 {
				t.Errorf("key %v not restored: %d", k, t2[0].RemainingServings)
			}
		}
	}
	if len(f.notifier.Errors) != 1 || !strings.Contains(f.notifier.Errors[0], "connection reset") {
		t.Errorf("expected error notification with remote message, got %v", f.notifier.Errors)
	}
}

func TestAdjustTrainingUnitsInvalidatesCostReport(t *testing.T) {
	f := newClientFixture(t, clientRecord("CL-001", 0, 0, 2))
	f.store.Set(cache.CostReportKey(), "cached")

	if _, err := f.svc.AdjustTrainingUnits(context.Background(), "CL-001", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !f.store.IsStale(cache.CostReportKey()) {
		t.Error("cost report must be marked stale after a training unit change")
	}
}

func TestAssignPackageReplacesCountersAbsolutely(t *testing.T) {
	f := newClientFixture(t, clientRecord("CL-001", 7, 3, 0))

	servings, images := 30, 60
	client, err := f.svc.AssignPackage(context.Background(), primary.AssignPackageRequest{
		EntityID:  "CL-001",
		PackageID: "PKG-001",
		Servings:  &servings,
		Images:    &images,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The edited grant wins over both the package default and the current
	// counters; nothing is added.
	if client.RemainingServings != 30 || client.RemainingImages != 60 {
		t.Errorf("expected absolute replacement 30/60, got %d/%d", client.RemainingServings, client.RemainingImages)
	}
	if client.CurrentPackageID != "PKG-001" {
		t.Errorf("expected package assigned, got %q", client.CurrentPackageID)
	}
	if f.repo.lastAssignServings != 30 || f.repo.lastAssignImages != 60 {
		t.Errorf("remote write must carry the edited grant, got %d/%d", f.repo.lastAssignServings, f.repo.lastAssignImages)
	}
}

func TestAssignPackageZeroGrantDefaultsToOneServing(t *testing.T) {
	f := newClientFixture(t, clientRecord("CL-001", 7, 3, 0))

	client, err := f.svc.AssignPackage(context.Background(), primary.AssignPackageRequest{
		EntityID:  "CL-001",
		PackageID: "PKG-001",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.RemainingServings != 1 || client.RemainingImages != 0 {
		t.Errorf("zero grant must default to 1 serving and 0 images, got %d/%d", client.RemainingServings, client.RemainingImages)
	}
}

func TestAssignPackageRejectsNegativeGrant(t *testing.T) {
	f := newClientFixture(t, clientRecord("CL-001", 7, 3, 0))
	neg := -5
	_, err := f.svc.AssignPackage(context.Background(), primary.AssignPackageRequest{
		EntityID:  "CL-001",
		PackageID: "PKG-001",
		Servings:  &neg,
	})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
	if f.repo.assignCalls != 0 {
		t.Error("negative grant must not reach the store")
	}
}

func TestAssignPackageUnknownPackageRejected(t *testing.T) {
	f := newClientFixture(t, clientRecord("CL-001", 7, 3, 0))
	_, err := f.svc.AssignPackage(context.Background(), primary.AssignPackageRequest{
		EntityID:  "CL-001",
		PackageID: "PKG-404",
	})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error for unknown package, got %v", err)
	}
	if f.repo.assignCalls != 0 {
		t.Error("unknown package must not reach the store")
	}
}

func TestQuickAssignUsesPackageTotals(t *testing.T) {
	f := newClientFixture(t, clientRecord("CL-001", 2, 2, 0))

	client, err := f.svc.QuickAssignPackage(context.Background(), "CL-001", "PKG-001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.RemainingServings != 50 || client.RemainingImages != 100 {
		t.Errorf("expected package totals 50/100, got %d/%d", client.RemainingServings, client.RemainingImages)
	}
}

func TestGetClientReadsThroughCache(t *testing.T) {
	f := newClientFixture(t, clientRecord("CL-001", 5, 0, 0))

	first, err := f.svc.GetClient(context.Background(), "CL-001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Change the store behind the cache; a fresh cached value wins.
	f.repo.records["CL-001"].RemainingServings = 99
	second, err := f.svc.GetClient(context.Background(), "CL-001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second != first {
		t.Error("expected cached value while fresh")
	}

	// After invalidation the read goes through to the store.
	f.store.Invalidate(cache.DetailKey(EntityClients, "CL-001"))
	third, err := f.svc.GetClient(context.Background(), "CL-001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if third.RemainingServings != 99 {
		t.Errorf("expected refetch after invalidation, got %d", third.RemainingServings)
	}
}

func TestUpdateClientInvalidatesProjections(t *testing.T) {
	f := newClientFixture(t, clientRecord("CL-001", 5, 0, 0))
	if _, err := f.svc.GetClient(context.Background(), "CL-001"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := f.svc.UpdateClient(context.Background(), primary.UpdateClientRequest{
		ClientID: "CL-001",
		Name:     "Bistro Borealis",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !f.store.IsStale(cache.DetailKey(EntityClients, "CL-001")) {
		t.Error("detail key must be stale after a descriptive update")
	}
}
