// Package layout resolves a scene's percentage-based placement into
// absolute pixel geometry for a given output scale.
//
// All placements are center anchors: a layer at (50,50) is centered on the
// canvas, and the resolved top-left corner subtracts half of the element
// size. Percentages always refer to the native canvas size; the output
// scale is a pure multiplier applied at the end, so resolved centers scale
// linearly and never drift between preview and export.
//
// Text element size depends on the rendering backend's font metrics, so the
// resolver takes an injectable [TextMeasurer] instead of hard-coding
// metrics. The raster package provides the production implementation; the
// same measurer must back any interactive preview.
package layout

import (
	"math"

	"github.com/bannerforge/bannerforge/pkg/banner"
	"github.com/bannerforge/bannerforge/pkg/errors"
)

// TextMeasurer reports the rendered bounding box of a single text run at a
// native (unscaled) font size, using the same metrics the renderer will use.
type TextMeasurer interface {
	// MeasureText returns the width and height in pixels of content drawn
	// with the given family at sizePx. Implementations fall back to a
	// default face when the family is unavailable.
	MeasureText(content, fontFamily string, sizePx float64) (w, h float64)
}

// Rect is an absolute pixel rectangle in output coordinates.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Center returns the rectangle's center point.
func (r Rect) Center() (x, y float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Geometry is the fully resolved pixel geometry of one scene at one output
// scale. Background always spans the full canvas; Logo and Text are nil
// when the corresponding layer is absent.
type Geometry struct {
	Scale      float64 `json:"scale"`
	CanvasW    int     `json:"canvasW"` // scaled canvas width in px
	CanvasH    int     `json:"canvasH"`
	Background Rect    `json:"background"`
	Logo       *Rect   `json:"logo,omitempty"`
	Text       *Rect   `json:"text,omitempty"`
}

// Resolve computes the absolute geometry for scene at outputScale.
//
// A nil or unset background still resolves logo and text geometry, which is
// what overlay-only exports need. A non-positive scale is a contract
// violation and fails with INVALID_SCALE before any work starts.
func Resolve(scene *banner.Scene, outputScale float64, measurer TextMeasurer) (Geometry, error) {
	if outputScale <= 0 || math.IsNaN(outputScale) || math.IsInf(outputScale, 0) {
		return Geometry{}, errors.New(errors.ErrCodeInvalidScale, "output scale must be positive, got %g", outputScale)
	}
	if err := scene.Canvas.Validate(); err != nil {
		return Geometry{}, err
	}

	w := float64(scene.Canvas.Width)
	h := float64(scene.Canvas.Height)

	g := Geometry{
		Scale:      outputScale,
		CanvasW:    int(math.Round(w * outputScale)),
		CanvasH:    int(math.Round(h * outputScale)),
		Background: Rect{W: w * outputScale, H: h * outputScale},
	}

	if scene.Logo != nil {
		size := w * scene.Logo.SizePercent / 100 // square footprint, width-relative
		r := centered(scene.Logo.Position, w, h, size, size, outputScale)
		g.Logo = &r
	}

	if scene.HasText() {
		tw, th := measureText(scene.Text, measurer)
		r := centered(scene.Text.Position, w, h, tw, th, outputScale)
		g.Text = &r
	}

	return g, nil
}

// centered resolves a center-anchored element of native size ew×eh placed at
// pos on a native w×h canvas, scaled by s.
func centered(pos banner.PlacementPercent, w, h, ew, eh, s float64) Rect {
	p := pos.Clamp()
	cx := p.X / 100 * w
	cy := p.Y / 100 * h
	return Rect{
		X: (cx - ew/2) * s,
		Y: (cy - eh/2) * s,
		W: ew * s,
		H: eh * s,
	}
}

func measureText(t *banner.TextLayer, m TextMeasurer) (float64, float64) {
	size := float64(t.Style.SizePx)
	if m == nil {
		// Crude glyph-box estimate; only hit when no measurer is wired,
		// which real pipelines never do.
		return size * 0.6 * float64(len([]rune(t.Content))), size * 1.2
	}
	return m.MeasureText(t.Content, t.Style.FontFamily, size)
}
