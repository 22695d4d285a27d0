// Package raster composites a fully inlined scene into a pixel buffer.
//
// Layers paint back-to-front: background (cover-fit, crop-centered, never
// letterboxed), logo (contain-fit inside its square footprint), then text.
// Text is a single run with nowrap semantics; long content overflows its
// anchor instead of wrapping. Effect order is shadow behind, stroke as an
// outline, solid fill on top.
//
// The compositor performs no I/O. Corrupt or still-remote image refs are
// skipped with a warning and the layer degrades, consistent with the
// inliner's partial-failure policy; only a zero-area canvas fails the
// whole buffer.
package raster

import (
	"bytes"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/bannerforge/bannerforge/pkg/banner"
	"github.com/bannerforge/bannerforge/pkg/errors"
	"github.com/bannerforge/bannerforge/pkg/fontpack"
	"github.com/bannerforge/bannerforge/pkg/layout"
)

// Renderer paints scenes. It is stateless apart from the shared font pack
// and safe for concurrent use.
type Renderer struct {
	fonts  *fontpack.Pack
	logger *log.Logger
}

// New creates a renderer over the given font pack. A nil logger discards
// logs.
func New(fonts *fontpack.Pack, logger *log.Logger) *Renderer {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if fonts == nil {
		fonts = fontpack.New(nil, logger)
	}
	return &Renderer{fonts: fonts, logger: logger}
}

// Measurer returns the text measurer backed by this renderer's faces.
func (r *Renderer) Measurer() *Measurer { return NewMeasurer(r.fonts) }

// Render composites scene using the resolved geometry and returns the
// pixel buffer. The scene should already be inlined; remote refs degrade.
func (r *Renderer) Render(scene *banner.Scene, geo layout.Geometry) (*image.NRGBA, error) {
	if geo.CanvasW <= 0 || geo.CanvasH <= 0 {
		return nil, errors.New(errors.ErrCodeRenderFailed,
			"cannot render zero-area canvas (%dx%d)", geo.CanvasW, geo.CanvasH)
	}

	dc := gg.NewContext(geo.CanvasW, geo.CanvasH)
	dc.SetColor(color.White)
	dc.Clear()

	r.paintBackground(dc, scene, geo)
	r.paintLogo(dc, scene, geo)
	r.paintText(dc, scene, geo)

	return imaging.Clone(dc.Image()), nil
}

// paintBackground covers the full canvas with the background image,
// cropping to the canvas aspect, or paints the placeholder pattern when no
// usable background exists.
func (r *Renderer) paintBackground(dc *gg.Context, scene *banner.Scene, geo layout.Geometry) {
	img := r.decodeRef(scene.Background, "background")
	if img == nil {
		r.paintPlaceholder(dc, geo.CanvasW, geo.CanvasH)
		return
	}
	cover := imaging.Fill(img, geo.CanvasW, geo.CanvasH, imaging.Center, imaging.Lanczos)
	dc.DrawImage(cover, 0, 0)
}

// paintLogo fits the logo inside its square footprint, preserving the
// intrinsic aspect ratio and centering the result.
func (r *Renderer) paintLogo(dc *gg.Context, scene *banner.Scene, geo layout.Geometry) {
	if geo.Logo == nil || scene.Logo == nil {
		return
	}
	img := r.decodeRef(&scene.Logo.Image, "logo")
	if img == nil {
		return
	}
	box := *geo.Logo
	w := int(math.Round(box.W))
	h := int(math.Round(box.H))
	if w <= 0 || h <= 0 {
		return
	}
	fitted := imaging.Fit(img, w, h, imaging.Lanczos)
	x := box.X + (box.W-float64(fitted.Bounds().Dx()))/2
	y := box.Y + (box.H-float64(fitted.Bounds().Dy()))/2
	dc.DrawImage(fitted, int(math.Round(x)), int(math.Round(y)))
}

// paintText draws the single text run with its effects. Text renders only
// when the scene has a background layer, mirroring the preview.
func (r *Renderer) paintText(dc *gg.Context, scene *banner.Scene, geo layout.Geometry) {
	if geo.Text == nil || !scene.HasText() || scene.Background == nil {
		return
	}
	t := scene.Text
	size := float64(t.Style.SizePx) * geo.Scale
	face := r.fonts.Face(t.Style.FontFamily, size)
	cx, cy := geo.Text.Center()

	fill := r.parseColor(t.Style.ColorHex, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	if t.Effects.Shadow.Enabled {
		r.paintShadow(dc, t, geo, face, cx, cy)
	}

	dc.SetFontFace(face)

	if t.Effects.Stroke.Enabled && t.Effects.Stroke.WidthPx > 0 {
		strokeColor := r.parseColor(t.Effects.Stroke.ColorHex, color.NRGBA{A: 255})
		radius := t.Effects.Stroke.WidthPx * geo.Scale
		dc.SetColor(strokeColor)
		// Outline approximation: repeated fills around a circle of the
		// stroke radius.
		const steps = 16
		for i := 0; i < steps; i++ {
			a := 2 * math.Pi * float64(i) / steps
			dc.DrawStringAnchored(t.Content, cx+radius*math.Cos(a), cy+radius*math.Sin(a), 0.5, 0.5)
		}
	}

	dc.SetColor(fill)
	dc.DrawStringAnchored(t.Content, cx, cy, 0.5, 0.5)
}

// paintShadow renders the shadow run on an offscreen layer, blurs it and
// composites it behind the glyphs. Offset and blur are canvas-unit pixels
// scaled by the output scale, like all other geometry.
func (r *Renderer) paintShadow(dc *gg.Context, t *banner.TextLayer, geo layout.Geometry, face font.Face, cx, cy float64) {
	sh := t.Effects.Shadow
	shadowColor := r.parseColor(sh.ColorHex, color.NRGBA{A: 255})

	off := gg.NewContext(dc.Width(), dc.Height())
	off.SetFontFace(face)
	off.SetColor(shadowColor)
	off.DrawStringAnchored(t.Content,
		cx+float64(sh.OffsetXPx)*geo.Scale,
		cy+float64(sh.OffsetYPx)*geo.Scale,
		0.5, 0.5)

	layer := image.Image(off.Image())
	if sh.BlurPx > 0 {
		// CSS blur radius is roughly twice the gaussian sigma.
		layer = imaging.Blur(layer, float64(sh.BlurPx)*geo.Scale/2)
	}
	dc.DrawImage(layer, 0, 0)
}

func (r *Renderer) parseColor(hex string, fallback color.NRGBA) color.NRGBA {
	c, err := banner.ParseColorHex(hex)
	if err != nil {
		r.logger.Warn("invalid color, using fallback", "color", hex, "err", err)
		return fallback
	}
	return c
}

// decodeRef decodes an inline image ref. Remote refs (failed inlining) and
// corrupt payloads return nil after a warning.
func (r *Renderer) decodeRef(ref *banner.ImageRef, layer string) image.Image {
	if ref == nil || ref.IsZero() {
		return nil
	}
	if !ref.Inline() {
		r.logger.Warn("layer image was not inlined, skipping", "layer", layer, "url", ref.URL())
		return nil
	}
	img, err := imaging.Decode(bytes.NewReader(ref.Data()))
	if err != nil {
		r.logger.Warn("layer image undecodable, skipping", "layer", layer, "err", err)
		return nil
	}
	return img
}

// Placeholder pattern colors (neutral checker, cosmetic only).
var (
	placeholderLight = color.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
	placeholderDark  = color.NRGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff}
)

// paintPlaceholder fills the canvas with a checker pattern for scenes with
// no usable background.
func (r *Renderer) paintPlaceholder(dc *gg.Context, w, h int) {
	const cell = 16
	for y := 0; y < h; y += cell {
		for x := 0; x < w; x += cell {
			if (x/cell+y/cell)%2 == 0 {
				dc.SetColor(placeholderLight)
			} else {
				dc.SetColor(placeholderDark)
			}
			dc.DrawRectangle(float64(x), float64(y), cell, cell)
			dc.Fill()
		}
	}
}
