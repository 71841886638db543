package app

import "github.com/example/studiodesk/internal/cache"

// Entity types as they appear in cache keys.
const (
	EntityClients     = "clients"
	EntityAffiliates  = "affiliates"
	EntityLeads       = "leads"
	EntityPackages    = "packages"
	EntitySubmissions = "submissions"
)

// ViewerContext carries the role context under which filtered list variants
// were cached. When absent, those variants are skipped during fan-out.
type ViewerContext struct {
	ViewerID     string
	ViewerStatus string
}

// Fanout enumerates, as a static table, every cache key that must be kept
// consistent when an entity changes. It never discovers keys dynamically.
type Fanout struct {
	viewer *ViewerContext
}

// NewFanout creates a fan-out map with an optional viewer context.
func NewFanout(viewer *ViewerContext) *Fanout {
	return &Fanout{viewer: viewer}
}

// EntityKeys returns every key that denormalizes the given entity: the
// canonical detail key, the unfiltered list key, and the viewer-scoped
// variants when a viewer context is present.
func (f *Fanout) EntityKeys(entityType, id string) []cache.Key {
	keys := []cache.Key{
		cache.DetailKey(entityType, id),
		cache.ListKey(entityType),
	}
	if f.viewer != nil {
		keys = append(keys,
			cache.SimplifiedKey(entityType, f.viewer.ViewerID, f.viewer.ViewerStatus),
			cache.AdminListKey(entityType, f.viewer.ViewerID),
		)
	}
	return keys
}

// ListKeys returns every list-shaped key for an entity type, used when a
// change affects list membership or ordering rather than a single row.
func (f *Fanout) ListKeys(entityType string) []cache.Key {
	keys := []cache.Key{cache.ListKey(entityType)}
	if f.viewer != nil {
		keys = append(keys,
			cache.SimplifiedKey(entityType, f.viewer.ViewerID, f.viewer.ViewerStatus),
			cache.AdminListKey(entityType, f.viewer.ViewerID),
		)
	}
	return keys
}

// PackageDependentKeys returns every key that could denormalize package
// data: package lists plus client and affiliate projections, which embed
// the assigned package. Used on package deletion.
func (f *Fanout) PackageDependentKeys(packageID string) []cache.Key {
	keys := []cache.Key{cache.DetailKey(EntityPackages, packageID)}
	keys = append(keys, f.ListKeys(EntityPackages)...)
	keys = append(keys, f.ListKeys(EntityClients)...)
	keys = append(keys, f.ListKeys(EntityAffiliates)...)
	return keys
}

// AggregateKeys returns the server-computed aggregate keys that counter
// mutations invalidate.
func (f *Fanout) AggregateKeys() []cache.Key {
	return []cache.Key{cache.CostReportKey()}
}
