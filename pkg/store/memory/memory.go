// Package memory provides an in-memory banner store for development and
// testing. Records do not survive process restart.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/bannerforge/bannerforge/pkg/store"
)

// Store keeps records in a mutex-guarded map. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	records map[string]store.Record
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{records: make(map[string]store.Record)}
}

// Create stores a new record.
func (s *Store) Create(ctx context.Context, rec *store.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[rec.ID]; ok {
		return store.ErrExists(rec.ID)
	}
	s.records[rec.ID] = *rec
	return nil
}

// Get retrieves a record by ID.
func (s *Store) Get(ctx context.Context, id string) (*store.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, store.ErrNotFound(id)
	}
	out := rec
	return &out, nil
}

// Update replaces an existing record.
func (s *Store) Update(ctx context.Context, rec *store.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[rec.ID]; !ok {
		return store.ErrNotFound(rec.ID)
	}
	rec.Touch()
	s.records[rec.ID] = *rec
	return nil
}

// Delete removes a record.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return store.ErrNotFound(id)
	}
	delete(s.records, id)
	return nil
}

// List returns records for an owner, newest first.
func (s *Store) List(ctx context.Context, ownerID string) ([]*store.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*store.Record, 0, len(s.records))
	for _, rec := range s.records {
		if ownerID != "" && rec.OwnerID != ownerID {
			continue
		}
		r := rec
		out = append(out, &r)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Close is a no-op for the in-memory store.
func (s *Store) Close(ctx context.Context) error { return nil }

var _ store.Store = (*Store)(nil)
