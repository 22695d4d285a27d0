// Package export provides the banner export pipeline.
//
// This package implements the complete resolve → inline → render → encode
// pipeline that can be used by CLI and API components. By centralizing this
// logic, we ensure consistent behavior across all entry points.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Inline: fetch remote images and fonts into the scene
//  2. Layout: resolve percent placements to absolute pixel geometry
//  3. Render: composite the scene into a pixel buffer
//  4. Encode: serialize to png, jpg, or pdf
//
// # Usage
//
// Create an Exporter and run the pipeline:
//
//	exp := export.New(fonts, cache, nil, logger)
//	opts := export.Options{
//	    Scene:  scene,
//	    Format: export.FormatPNG,
//	    Tier:   export.TierMedium,
//	}
//	result, err := exp.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(result.Filename, result.Artifact, 0o644)
package export

import (
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bannerforge/bannerforge/pkg/banner"
	"github.com/bannerforge/bannerforge/pkg/cache"
	"github.com/bannerforge/bannerforge/pkg/encode"
	"github.com/bannerforge/bannerforge/pkg/errors"
)

// Format constants, re-exported so pipeline callers need only this package.
const (
	FormatPNG = encode.FormatPNG
	FormatJPG = encode.FormatJPG
	FormatPDF = encode.FormatPDF
)

// Size tiers. Each tier names a fixed target pixel width; the pipeline
// derives the scale factor from the scene's canvas width, so a tier
// produces the same output width regardless of preset.
const (
	TierSmall  = "small"
	TierMedium = "medium"
	TierLarge  = "large"
)

// tierWidths maps each tier to its target output width in pixels.
var tierWidths = map[string]float64{
	TierSmall:  600,
	TierMedium: 1080,
	TierLarge:  1920,
}

// ValidTiers is the set of supported size tiers.
var ValidTiers = map[string]bool{
	TierSmall:  true,
	TierMedium: true,
	TierLarge:  true,
}

// DefaultFormat is used when no format is requested.
const DefaultFormat = FormatPNG

// DefaultTier is used when no tier is requested.
const DefaultTier = TierMedium

// ValidateTier checks that a size tier is valid.
func ValidateTier(tier string) error {
	if !ValidTiers[tier] {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid size tier: %q (must be one of: small, medium, large)", tier)
	}
	return nil
}

// TierWidth returns the target output width for a tier.
func TierWidth(tier string) (float64, error) {
	w, ok := tierWidths[tier]
	if !ok {
		return 0, ValidateTier(tier)
	}
	return w, nil
}

// TierScale computes the output scale that maps a canvas to a tier's target
// width. The scale applies to both axes, preserving aspect ratio.
func TierScale(canvas banner.CanvasSpec, tier string) (float64, error) {
	if err := canvas.Validate(); err != nil {
		return 0, err
	}
	w, err := TierWidth(tier)
	if err != nil {
		return 0, err
	}
	return w / float64(canvas.Width), nil
}

// Options contains all configuration for one export.
// This struct supports JSON serialization for API requests.
type Options struct {
	Scene  banner.Scene `json:"scene"`
	Format string       `json:"format,omitempty"`
	Tier   string       `json:"tier,omitempty"`

	// Refresh bypasses the artifact cache and re-renders.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if o.Tier == "" {
		o.Tier = DefaultTier
	}
	if err := encode.ValidateFormat(o.Format); err != nil {
		return err
	}
	if err := ValidateTier(o.Tier); err != nil {
		return err
	}
	if err := o.Scene.Validate(); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// Result contains the outputs of one export.
type Result struct {
	// Artifact is the encoded output.
	Artifact []byte

	// MIMEType is the artifact's media type.
	MIMEType string

	// Filename is the suggested download filename.
	Filename string

	// SceneHash is the content hash of the scene.
	SceneHash string

	// Scale is the output scale that was applied.
	Scale float64

	// Width and Height are the output pixel dimensions.
	Width  int
	Height int

	// Stats contains timing information.
	Stats Stats

	// CacheInfo tracks whether the artifact came from cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	InlineTime time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
	EncodeTime time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	ArtifactHit bool // Whether the encoded artifact came from cache
}

// maxFilenameStem is how much of the headline text survives into the
// suggested filename.
const maxFilenameStem = 20

// Filename derives the suggested download filename for a scene: the first
// 20 runes of the headline text, falling back to "banner" when the scene
// has no text, followed by the tier and format extension.
func Filename(scene *banner.Scene, tier, format string) string {
	stem := "banner"
	if scene != nil && scene.HasText() {
		runes := []rune(strings.TrimSpace(scene.Text.Content))
		if len(runes) > maxFilenameStem {
			runes = runes[:maxFilenameStem]
		}
		if s := string(runes); s != "" {
			stem = s
		}
	}
	return stem + "-" + tier + "." + format
}

// SceneHash computes a stable content hash of a scene for cache keys and
// API responses.
func SceneHash(scene *banner.Scene) string {
	data, err := json.Marshal(scene)
	if err != nil {
		return ""
	}
	return cache.Hash(data)
}
