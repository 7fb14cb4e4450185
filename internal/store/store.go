// Package store provides the in-memory record tables backing the entity
// services. Each table is safe for concurrent access at the map level;
// multi-step check-then-act sequences are the caller's responsibility.
package store

import "sync"

// Store is a generic key-value table with point lookups and linear scans.
type Store[V any] struct {
	mu    sync.RWMutex
	items map[string]V
	keyOf func(V) string
}

// New builds a store whose records are keyed by the given function.
func New[V any](keyOf func(V) string) *Store[V] {
	return &Store[V]{
		items: make(map[string]V),
		keyOf: keyOf,
	}
}

// FindByID returns the record for the given key, if present.
func (s *Store[V]) FindByID(id string) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[id]
	return v, ok
}

// Save upserts the record under its own key and returns it.
func (s *Store[V]) Save(v V) V {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[s.keyOf(v)] = v
	return v
}

// Delete removes the record for the given key, silently if absent.
func (s *Store[V]) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
}

// Exists reports whether a record is present for the given key.
func (s *Store[V]) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.items[id]
	return ok
}

// FindAll returns a snapshot copy of every record. Iteration order is not
// guaranteed.
func (s *Store[V]) FindAll() []V {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]V, 0, len(s.items))
	for _, v := range s.items {
		all = append(all, v)
	}
	return all
}

// FindBy returns a snapshot of the records matching the predicate.
func (s *Store[V]) FindBy(pred func(V) bool) []V {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matched []V
	for _, v := range s.items {
		if pred(v) {
			matched = append(matched, v)
		}
	}
	return matched
}

// Count returns the number of records in the table.
func (s *Store[V]) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
