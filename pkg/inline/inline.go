// Package inline converts a scene's remote resources into self-contained
// payloads so the rasterizer never performs I/O.
//
// Every remote ImageRef is fetched and replaced by an inline ref (the data
// URI equivalent: tagged bytes plus a media type). The text layer's font
// family is resolved through the font manifest and, when the manifest names
// a URL, the binary is fetched and registered with the font pack.
//
// All fetches for one scene run concurrently and the inliner waits for all
// of them to settle before returning; there is no partial handoff. A single
// failed resource logs a warning and is skipped: the element degrades (the
// ref stays remote, the font falls back) rather than aborting the export.
package inline

import (
	"context"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/bannerforge/bannerforge/pkg/banner"
	"github.com/bannerforge/bannerforge/pkg/fontpack"
)

// Inliner resolves a scene's remote resources.
type Inliner struct {
	fetcher *Fetcher
	fonts   *fontpack.Pack
	logger  *log.Logger
}

// New creates an inliner. The font pack is shared with the renderer so
// registered fonts are visible to measurement and painting. A nil logger
// discards logs; a nil fetcher gets defaults.
func New(fetcher *Fetcher, fonts *fontpack.Pack, logger *log.Logger) *Inliner {
	if fetcher == nil {
		fetcher = NewFetcher(nil, 0, nil, nil)
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if fonts == nil {
		fonts = fontpack.New(nil, logger)
	}
	return &Inliner{fetcher: fetcher, fonts: fonts, logger: logger}
}

// Fonts returns the pack the inliner registers fetched fonts into.
func (in *Inliner) Fonts() *fontpack.Pack { return in.fonts }

// Inline returns a copy of scene with every reachable remote resource
// replaced by an inline payload. The input scene is never modified.
//
// Inline only fails when ctx is cancelled before the fetches settle;
// per-resource failures degrade the affected element and are logged.
func (in *Inliner) Inline(ctx context.Context, scene *banner.Scene) (*banner.Scene, error) {
	out := scene.Clone()

	var wg sync.WaitGroup
	var mu sync.Mutex // guards writes into out

	if out.Background != nil && !out.Background.Inline() && out.Background.URL() != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ref := in.fetchRef(ctx, *out.Background, "background")
			mu.Lock()
			out.Background = &ref
			mu.Unlock()
		}()
	}

	if out.Logo != nil && !out.Logo.Image.Inline() && out.Logo.Image.URL() != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ref := in.fetchRef(ctx, out.Logo.Image, "logo")
			mu.Lock()
			out.Logo.Image = ref
			mu.Unlock()
		}()
	}

	if out.HasText() {
		family := out.Text.Style.FontFamily
		wg.Add(1)
		go func() {
			defer wg.Done()
			in.inlineFont(ctx, family)
		}()
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return out, err
	}
	return out, nil
}

// fetchRef fetches one remote ref. On failure the original remote ref is
// returned unchanged so the renderer can degrade that layer.
func (in *Inliner) fetchRef(ctx context.Context, ref banner.ImageRef, layer string) banner.ImageRef {
	data, mediaType, err := in.fetcher.Fetch(ctx, ref.URL())
	if err != nil {
		in.logger.Warn("resource inlining failed, layer will degrade",
			"layer", layer, "url", ref.URL(), "err", err)
		return ref
	}
	in.logger.Debug("inlined resource", "layer", layer, "url", ref.URL(), "bytes", len(data), "type", mediaType)
	return ref.Resolve(mediaType, data)
}

// inlineFont makes the family's binary available to the font pack. Local
// manifest paths and system fonts are resolved lazily by the pack itself;
// only manifest URLs need fetching here.
func (in *Inliner) inlineFont(ctx context.Context, family string) {
	if in.fonts.Registered(family) {
		return
	}
	src, ok := in.fonts.Lookup(family)
	if !ok || src.URL == "" || src.Path != "" {
		return // pack resolves path/system/fallback on demand
	}
	data, _, err := in.fetcher.Fetch(ctx, src.URL)
	if err != nil {
		in.logger.Warn("font fetch failed, falling back to default face", "family", family, "url", src.URL, "err", err)
		return
	}
	if err := in.fonts.Register(family, data); err != nil {
		in.logger.Warn("font unusable, falling back to default face", "family", family, "err", err)
		return
	}
	in.logger.Debug("inlined font", "family", family, "bytes", len(data))
}
