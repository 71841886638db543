package cache

// Key identifies one cached query result. Keys are built from an entity
// type plus qualifiers so that every denormalized projection of the same
// entity can be enumerated by the fan-out map.
type Key string

// DetailKey is the canonical key for a single entity.
func DetailKey(entityType, id string) Key {
	return Key(entityType + "/" + id)
}

// ListKey is the unfiltered list key for an entity type.
func ListKey(entityType string) Key {
	return Key(entityType)
}

// SimplifiedKey is the role/status-filtered list variant. It only exists in
// cache when a viewer-role context is present.
func SimplifiedKey(entityType, viewerID, viewerStatus string) Key {
	return Key(entityType + "/simplified/" + viewerID + "/" + viewerStatus)
}

// AdminListKey is the per-viewer admin list variant.
func AdminListKey(entityType, viewerID string) Key {
	return Key(entityType + "/list-for-admin/" + viewerID)
}

// CostReportKey is the server-computed cost aggregate. It is invalidated by
// mutations, never patched.
func CostReportKey() Key {
	return Key("reports/costs")
}
