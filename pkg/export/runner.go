package export

import (
	"context"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bannerforge/bannerforge/pkg/cache"
	"github.com/bannerforge/bannerforge/pkg/encode"
	"github.com/bannerforge/bannerforge/pkg/errors"
	"github.com/bannerforge/bannerforge/pkg/fontpack"
	"github.com/bannerforge/bannerforge/pkg/inline"
	"github.com/bannerforge/bannerforge/pkg/layout"
	"github.com/bannerforge/bannerforge/pkg/raster"
)

// Exporter encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Exporter is stateless except for the cache, font pack, and logger -
// it doesn't store pipeline results. Multiple goroutines can safely use
// the same Exporter with different options.
type Exporter struct {
	Inliner  *inline.Inliner
	Renderer *raster.Renderer
	Cache    cache.Cache
	Keyer    cache.Keyer
	Logger   *log.Logger
}

// New creates an exporter with the given font pack, cache, and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (caching disabled).
// If fonts is nil, a pack with only the embedded fallback face is used.
func New(fonts *fontpack.Pack, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Exporter {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	if fonts == nil {
		fonts = fontpack.New(nil, logger)
	}
	fetcher := inline.NewFetcher(nil, 0, c, keyer)
	return &Exporter{
		Inliner:  inline.New(fetcher, fonts, logger),
		Renderer: raster.New(fonts, logger),
		Cache:    c,
		Keyer:    keyer,
		Logger:   logger,
	}
}

// Execute runs the complete inline → layout → render → encode pipeline
// with artifact caching.
func (e *Exporter) Execute(ctx context.Context, opts Options) (*Result, error) {
	e.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	scale, err := TierScale(opts.Scene.Canvas, opts.Tier)
	if err != nil {
		return nil, err
	}

	result := &Result{
		MIMEType:  encode.MIMEType(opts.Format),
		Filename:  Filename(&opts.Scene, opts.Tier, opts.Format),
		SceneHash: SceneHash(&opts.Scene),
		Scale:     scale,
		Width:     int(math.Round(float64(opts.Scene.Canvas.Width) * scale)),
		Height:    int(math.Round(float64(opts.Scene.Canvas.Height) * scale)),
	}

	// Try the artifact cache before doing any work (unless refresh requested).
	cacheKey := e.Keyer.ArtifactKey(result.SceneHash, cache.ArtifactKeyOpts{
		Format: opts.Format,
		Tier:   opts.Tier,
	})
	if !opts.Refresh {
		if data, hit, err := e.Cache.Get(ctx, cacheKey); err == nil && hit && len(data) > 0 {
			result.Artifact = data
			result.CacheInfo.ArtifactHit = true
			return result, nil
		}
	}

	// Stage 1: Inline
	inlineStart := time.Now()
	scene, err := e.Inliner.Inline(ctx, &opts.Scene)
	if err != nil {
		return nil, err
	}
	result.Stats.InlineTime = time.Since(inlineStart)

	opts.Logger.Info("inlined resources",
		"background", scene.Background != nil && scene.Background.Inline(),
		"logo", scene.Logo != nil && scene.Logo.Image.Inline(),
		"duration", result.Stats.InlineTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	geo, err := layout.Resolve(scene, scale, e.Renderer.Measurer())
	if err != nil {
		return nil, err
	}
	result.Stats.LayoutTime = time.Since(layoutStart)

	opts.Logger.Info("resolved layout",
		"width", geo.CanvasW,
		"height", geo.CanvasH,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	img, err := e.Renderer.Render(scene, geo)
	if err != nil {
		return nil, err
	}
	result.Stats.RenderTime = time.Since(renderStart)

	opts.Logger.Info("rendered scene",
		"duration", result.Stats.RenderTime)

	// Stage 4: Encode
	encodeStart := time.Now()
	data, mime, err := encode.Encode(img, opts.Format)
	if err != nil {
		return nil, err
	}
	result.Artifact = data
	result.MIMEType = mime
	result.Stats.EncodeTime = time.Since(encodeStart)

	opts.Logger.Info("encoded artifact",
		"format", opts.Format,
		"tier", opts.Tier,
		"bytes", len(data),
		"duration", result.Stats.EncodeTime)

	// Cache the encoded artifact.
	_ = e.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)

	return result, nil
}

// ExecuteAll exports one scene in several formats, reusing the pipeline per
// format. Formats defaults to png when empty.
func (e *Exporter) ExecuteAll(ctx context.Context, opts Options, formats []string) (map[string]*Result, error) {
	if len(formats) == 0 {
		formats = []string{DefaultFormat}
	}
	results := make(map[string]*Result, len(formats))
	for _, format := range formats {
		o := opts
		o.Format = format
		res, err := e.Execute(ctx, o)
		if err != nil {
			code := errors.GetCode(err)
			if code == "" {
				code = errors.ErrCodeInternal
			}
			return nil, errors.Wrap(code, err, "export %s", format)
		}
		results[format] = res
	}
	return results, nil
}

// Close releases resources held by the exporter (primarily the cache).
func (e *Exporter) Close() error {
	if e.Cache != nil {
		return e.Cache.Close()
	}
	return nil
}

func (e *Exporter) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = e.Logger
	}
}
