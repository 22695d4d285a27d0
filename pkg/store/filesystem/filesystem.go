// Package filesystem provides a file-based banner store for CLI usage.
// Records are stored as JSON files in a config directory.
package filesystem

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bannerforge/bannerforge/pkg/errors"
	"github.com/bannerforge/bannerforge/pkg/store"
)

// Store writes one JSON file per record under a base directory.
type Store struct {
	mu      sync.RWMutex
	baseDir string
}

// NewStore creates a file-based banner store.
// If baseDir is empty, defaults to ~/.config/bannerforge/banners/
func NewStore(baseDir string) (*Store, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "get home dir")
		}
		baseDir = filepath.Join(home, ".config", "bannerforge", "banners")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create banner dir")
	}
	return &Store{baseDir: baseDir}, nil
}

// Path returns the base directory for banner files.
func (s *Store) Path() string { return s.baseDir }

func (s *Store) recordPath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

// safeID rejects IDs that would escape the base directory.
func safeID(id string) error {
	if id == "" || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return errors.New(errors.ErrCodeInvalidInput, "invalid banner id: %q", id)
	}
	return nil
}

// Create stores a new record.
func (s *Store) Create(ctx context.Context, rec *store.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	if err := safeID(rec.ID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := os.Stat(s.recordPath(rec.ID)); err == nil {
		return store.ErrExists(rec.ID)
	}
	return s.write(rec)
}

// Get retrieves a record by ID.
func (s *Store) Get(ctx context.Context, id string) (*store.Record, error) {
	if err := safeID(id); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read(id)
}

// Update replaces an existing record.
func (s *Store) Update(ctx context.Context, rec *store.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	if err := safeID(rec.ID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := os.Stat(s.recordPath(rec.ID)); err != nil {
		return store.ErrNotFound(rec.ID)
	}
	rec.Touch()
	return s.write(rec)
}

// Delete removes a record. Deleting a missing record is an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := safeID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.recordPath(id)); err != nil {
		if os.IsNotExist(err) {
			return store.ErrNotFound(id)
		}
		return errors.Wrap(errors.ErrCodeInternal, err, "remove banner file")
	}
	return nil
}

// List returns records for an owner, newest first. Unreadable files are
// skipped rather than failing the whole listing.
func (s *Store) List(ctx context.Context, ownerID string) ([]*store.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read banner dir")
	}

	out := make([]*store.Record, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		rec, err := s.read(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			continue
		}
		if ownerID != "" && rec.OwnerID != ownerID {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Close is a no-op for the file store.
func (s *Store) Close(ctx context.Context) error { return nil }

func (s *Store) read(id string) (*store.Record, error) {
	data, err := os.ReadFile(s.recordPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, store.ErrNotFound(id)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read banner file")
	}
	var rec store.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse banner file")
	}
	return &rec, nil
}

func (s *Store) write(rec *store.Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "marshal banner")
	}
	if err := os.WriteFile(s.recordPath(rec.ID), data, 0600); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write banner file")
	}
	return nil
}

var _ store.Store = (*Store)(nil)
