// Package store keeps per-resource caches of gateway collections. A store is
// a display cache, not a source of truth: identity is server-assigned, and
// every mutation goes through the gateway before the cache is patched.
package store

import (
	"context"
	"sync"
)

// Source is the slice of gateway behavior a store needs.
// gateway.Collection[T] satisfies it.
type Source[T any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, in any) (T, error)
	Update(ctx context.Context, id string, in any) (T, error)
	Delete(ctx context.Context, id string) error
}

// Snapshot is a copy-safe read of the store state. Loaded distinguishes
// "never fetched" from "failed to refresh": a failed refresh keeps the
// last-known-good records and Loaded stays true.
type Snapshot[T any] struct {
	Records []T
	Loading bool
	Loaded  bool
	Err     string
}

type Store[T any] struct {
	name   string
	source Source[T]
	idOf   func(T) string

	mu      sync.Mutex
	records []T
	loading bool
	loaded  bool
	err     string
}

func New[T any](name string, source Source[T], idOf func(T) string) *Store[T] {
	return &Store[T]{name: name, source: source, idOf: idOf}
}

func (s *Store[T]) Name() string { return s.name }

func (s *Store[T]) Snapshot() Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := make([]T, len(s.records))
	copy(records, s.records)
	return Snapshot[T]{Records: records, Loading: s.loading, Loaded: s.loaded, Err: s.err}
}

func (s *Store[T]) begin() {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
}

// Fetch replaces the collection from the gateway. On failure the previous
// records stay in place and the error slot is set; the next successful fetch
// clears it.
func (s *Store[T]) Fetch(ctx context.Context) error {
	s.begin()
	records, err := s.source.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err.Error()
		return err
	}
	s.records = records
	s.loaded = true
	s.err = ""
	return nil
}

// EnsureLoaded fetches only if the store has never successfully loaded.
func (s *Store[T]) EnsureLoaded(ctx context.Context) error {
	s.mu.Lock()
	done := s.loaded
	s.mu.Unlock()
	if done {
		return nil
	}
	return s.Fetch(ctx)
}

// Create posts a new record and, on success, inserts it at the front of the
// collection.
func (s *Store[T]) Create(ctx context.Context, in any) (T, error) {
	s.begin()
	record, err := s.source.Create(ctx, in)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err.Error()
		return record, err
	}
	s.records = append([]T{record}, s.records...)
	s.err = ""
	return record, nil
}

// Update patches the record and, on success, replaces exactly the cached
// record with a matching id. Other elements are left untouched.
func (s *Store[T]) Update(ctx context.Context, id string, in any) (T, error) {
	s.begin()
	record, err := s.source.Update(ctx, id, in)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err.Error()
		return record, err
	}
	s.replaceLocked(id, record)
	s.err = ""
	return record, nil
}

// Delete removes the record from the gateway and filters it out of the
// cache. Deleting an id the cache never held is a no-op locally.
func (s *Store[T]) Delete(ctx context.Context, id string) error {
	s.begin()
	err := s.source.Delete(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err.Error()
		return err
	}
	kept := s.records[:0]
	for _, r := range s.records {
		if s.idOf(r) != id {
			kept = append(kept, r)
		}
	}
	s.records = kept
	s.err = ""
	return nil
}

// Apply patches the cache with a record returned by an action endpoint
// (approve, reject, register, process) without issuing a request itself.
func (s *Store[T]) Apply(record T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceLocked(s.idOf(record), record)
}

// Get returns the cached record with the given id.
func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if s.idOf(r) == id {
			return r, true
		}
	}
	var zero T
	return zero, false
}

func (s *Store[T]) replaceLocked(id string, record T) {
	for i, r := range s.records {
		if s.idOf(r) == id {
			s.records[i] = record
			return
		}
	}
	// Action results for records not yet cached are prepended so they show
	// up on the next render rather than silently vanishing.
	s.records = append([]T{record}, s.records...)
}
