// Package cache provides pluggable byte caching for the export pipeline.
//
// Two things get cached: fetched remote resources (image and font bytes,
// keyed by URL) and rendered artifacts (keyed by scene hash + format +
// size tier). Backends:
//   - file: directory-backed, for CLI usage
//   - redis: shared cache for server deployments
//   - null: caching disabled
//
// Caching is always best-effort. A cache error is never a pipeline error;
// callers treat any failure as a miss.
package cache

import (
	"context"
	"time"
)

// Default TTLs per entry class.
const (
	// TTLResource is how long fetched image/font bytes stay valid.
	TTLResource = 24 * time.Hour

	// TTLArtifact is how long rendered artifacts stay valid.
	TTLArtifact = time.Hour
)

// Cache stores opaque byte values with per-entry TTL.
type Cache interface {
	// Get returns the cached value and whether it was found.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores a value. ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer generates cache keys for the different entry classes.
type Keyer interface {
	// ResourceKey keys fetched bytes for one remote locator.
	ResourceKey(url string) string

	// ArtifactKey keys one rendered artifact.
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the rendering parameters that distinguish artifacts
// of the same scene.
type ArtifactKeyOpts struct {
	Format string
	Tier   string
}

// DefaultKeyer hashes key components into collision-safe strings.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ResourceKey generates a key for HTTP resource caching.
func (k *DefaultKeyer) ResourceKey(url string) string {
	return hashKey("resource", url)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sceneHash, opts.Format, opts.Tier)
}

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation, e.g.
// per-user namespaces in a shared Redis.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to all keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ResourceKey generates a prefixed resource key.
func (k *ScopedKeyer) ResourceKey(url string) string {
	return k.prefix + k.inner.ResourceKey(url)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(sceneHash, opts)
}
