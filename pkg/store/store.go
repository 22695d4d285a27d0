// Package store provides persistence for saved banner scenes.
//
// This package defines the Store interface for banner records, with
// implementations for different backends:
//   - memory: in-memory storage for development/testing
//   - filesystem: JSON files on disk for CLI usage
//   - mongo: MongoDB-backed storage for server deployments
//
// # Usage
//
// Create a store:
//
//	// Development
//	st := memory.NewStore()
//
//	// CLI
//	st, err := filesystem.NewStore("")  // Uses ~/.config/bannerforge/banners/
//
//	// Production
//	st, err := mongo.NewStore(ctx, mongo.Config{URI: "mongodb://localhost:27017"})
//
// Manage records:
//
//	rec := store.NewRecord(ownerID, scene)
//	if err := st.Create(ctx, rec); err != nil {
//	    return err
//	}
//	saved, err := st.Get(ctx, rec.ID)
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bannerforge/bannerforge/pkg/banner"
	"github.com/bannerforge/bannerforge/pkg/errors"
)

// Record is one saved banner.
type Record struct {
	ID        string       `json:"id" bson:"_id"`
	OwnerID   string       `json:"ownerId,omitempty" bson:"owner_id,omitempty"`
	Name      string       `json:"name,omitempty" bson:"name,omitempty"`
	Scene     banner.Scene `json:"scene" bson:"scene"`
	CreatedAt time.Time    `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time    `json:"updatedAt" bson:"updated_at"`
}

// NewRecord creates a record with a fresh ID and timestamps.
func NewRecord(ownerID string, scene banner.Scene) *Record {
	now := time.Now().UTC()
	return &Record{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Scene:     scene,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate checks the record is storable.
func (r *Record) Validate() error {
	if r.ID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "record id is required")
	}
	return r.Scene.Validate()
}

// Touch updates the modification timestamp.
func (r *Record) Touch() {
	r.UpdatedAt = time.Now().UTC()
}

// Store is the interface for banner storage backends.
//
// Implementations return an error with code BANNER_NOT_FOUND for Get,
// Update, and Delete on a missing ID.
type Store interface {
	// Create stores a new record. Creating an existing ID is an error.
	Create(ctx context.Context, rec *Record) error

	// Get retrieves a record by ID.
	Get(ctx context.Context, id string) (*Record, error)

	// Update replaces an existing record.
	Update(ctx context.Context, rec *Record) error

	// Delete removes a record.
	Delete(ctx context.Context, id string) error

	// List returns all records for an owner, newest first. An empty
	// ownerID lists every record.
	List(ctx context.Context, ownerID string) ([]*Record, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// ErrNotFound builds the standard missing-record error.
func ErrNotFound(id string) error {
	return errors.New(errors.ErrCodeBannerNotFound, "banner %s not found", id)
}

// ErrExists builds the standard duplicate-record error.
func ErrExists(id string) error {
	return errors.New(errors.ErrCodeInvalidInput, "banner %s already exists", id)
}
