// Package cache implements the client-side query cache that mutation
// coordinators keep consistent. It is an explicit, injectable store rather
// than a process-wide singleton so ownership and lifecycle are testable.
package cache

import "sync"

// PatchFunc transforms a cached value into its replacement. It must not
// mutate the input in place when the value is shared; return a new value.
type PatchFunc func(value any) any

type entry struct {
	value any
	stale bool
}

// Store is a key-value cache of query results. It is safe for concurrent
// use; coordinators operating on disjoint keys never interfere.
type Store struct {
	mu      sync.RWMutex
	entries map[Key]entry
}

// NewStore creates an empty cache store.
func NewStore() *Store {
	return &Store{entries: make(map[Key]entry)}
}

// Get returns the cached value for key. Stale values are still returned;
// callers decide whether a stale value is acceptable via IsStale.
func (s *Store) Get(key Key) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Set stores a value and clears any staleness marker.
func (s *Store) Set(key Key, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{value: value}
}

// Patch applies fn to the cached value for key and stores the result.
// A key that was never fetched is skipped; partial cache population is
// expected and is not an error. Returns whether the patch was applied.
func (s *Store) Patch(key Key, fn PatchFunc) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return false
	}
	s.entries[key] = entry{value: fn(e.value), stale: e.stale}
	return true
}

// Invalidate marks a cached value stale without discarding it. Readers
// holding the key should refetch. A missing key is a no-op.
func (s *Store) Invalidate(key Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return
	}
	e.stale = true
	s.entries[key] = e
}

// IsStale reports whether the key is present and marked stale.
func (s *Store) IsStale(key Key) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries[key].stale
}

// Delete removes a key entirely.
func (s *Store) Delete(key Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// Snapshot captures the current values of every listed key that is present
// in the cache. Keys that were never fetched are not captured; restoring
// such a snapshot leaves them untouched.
func (s *Store) Snapshot(keys ...Key) *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := &Snapshot{store: s, values: make(map[Key]entry, len(keys))}
	for _, k := range keys {
		if e, ok := s.entries[k]; ok {
			snap.values[k] = e
		}
	}
	return snap
}

// Snapshot is a verbatim capture of cache entries taken before an optimistic
// write, used to roll the cache back when the authoritative write fails.
type Snapshot struct {
	store  *Store
	values map[Key]entry
}

// Restore writes every captured entry back verbatim.
func (s *Snapshot) Restore() {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	for k, e := range s.values {
		s.store.entries[k] = e
	}
}

// Keys returns the keys captured by the snapshot.
func (s *Snapshot) Keys() []Key {
	keys := make([]Key, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	return keys
}
