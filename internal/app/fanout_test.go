package app

import (
	"testing"

	"github.com/example/studiodesk/internal/cache"
)

func TestEntityKeysWithoutViewerContext(t *testing.T) {
	f := NewFanout(nil)
	keys := f.EntityKeys(EntityClients, "CL-001")

	if len(keys) != 2 {
		t.Fatalf("expected detail + list keys only, got %v", keys)
	}
	if keys[0] != cache.DetailKey(EntityClients, "CL-001") {
		t.Errorf("expected canonical detail key first, got %v", keys[0])
	}
	if keys[1] != cache.ListKey(EntityClients) {
		t.Errorf("expected unfiltered list key, got %v", keys[1])
	}
}

func TestEntityKeysWithViewerContext(t *testing.T) {
	f := NewFanout(&ViewerContext{ViewerID: "admin-7", ViewerStatus: "active"})
	keys := f.EntityKeys(EntityClients, "CL-001")

	if len(keys) != 4 {
		t.Fatalf("expected 4 keys with viewer context, got %v", keys)
	}
	want := map[cache.Key]bool{
		cache.DetailKey(EntityClients, "CL-001"):                true,
		cache.ListKey(EntityClients):                            true,
		cache.SimplifiedKey(EntityClients, "admin-7", "active"): true,
		cache.AdminListKey(EntityClients, "admin-7"):            true,
	}
	for _, k := range keys {
		if !want[k] {
			t.Errorf("unexpected key %v", k)
		}
	}
}

func TestPackageDependentKeysCoverOwnerLists(t *testing.T) {
	f := NewFanout(nil)
	keys := f.PackageDependentKeys("PKG-001")

	want := map[cache.Key]bool{
		cache.DetailKey(EntityPackages, "PKG-001"): false,
		cache.ListKey(EntityPackages):              false,
		cache.ListKey(EntityClients):               false,
		cache.ListKey(EntityAffiliates):            false,
	}
	for _, k := range keys {
		if _, ok := want[k]; ok {
			want[k] = true
		}
	}
	for k, seen := range want {
		if !seen {
			t.Errorf("expected %v in package-dependent keys", k)
		}
	}
}

func TestAggregateKeys(t *testing.T) {
	f := NewFanout(nil)
	keys := f.AggregateKeys()
	if len(keys) != 1 || keys[0] != cache.CostReportKey() {
		t.Errorf("expected cost report key, got %v", keys)
	}
}
