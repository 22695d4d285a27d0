// Package banner defines the scene model: the declarative description of one
// banner composition (canvas, background, logo, text) plus the fixed preset
// and placement tables the editor and the AI collaborator work against.
//
// A Scene is a plain value owned by the caller. The export pipeline always
// operates on an immutable snapshot obtained with [Scene.Clone]; nothing in
// this package mutates a scene after construction.
package banner

import (
	"github.com/bannerforge/bannerforge/pkg/errors"
)

// CanvasSpec is the banner canvas size in pixels.
type CanvasSpec struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// AspectRatio returns width/height. It is 0 for a zero-height canvas.
func (c CanvasSpec) AspectRatio() float64 {
	if c.Height == 0 {
		return 0
	}
	return float64(c.Width) / float64(c.Height)
}

// Landscape reports whether the canvas is wider than tall. A square canvas
// is not landscape, matching the document orientation rule downstream.
func (c CanvasSpec) Landscape() bool { return c.Width > c.Height }

// Validate checks that both dimensions are positive.
func (c CanvasSpec) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "canvas dimensions must be positive, got %dx%d", c.Width, c.Height)
	}
	return nil
}

// PlacementPercent is a layer's center position expressed as a percentage of
// the canvas width and height. It is always interpreted as a center anchor:
// geometry math subtracts half of the resolved element size.
type PlacementPercent struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Clamp returns the placement with both coordinates clamped to [0,100].
func (p PlacementPercent) Clamp() PlacementPercent {
	return PlacementPercent{X: clamp01(p.X), Y: clamp01(p.Y)}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Logo size bounds, percent of canvas width.
const (
	MinLogoSizePercent = 5
	MaxLogoSizePercent = 50
)

// LogoLayer places a logo image on the banner. SizePercent is relative to
// the canvas width; the logo footprint is square, so the resolved height in
// pixels equals the resolved width.
type LogoLayer struct {
	Image       ImageRef         `json:"image"`
	Position    PlacementPercent `json:"position"`
	SizePercent float64          `json:"sizePercent"`
}

// Validate checks the size bounds.
func (l LogoLayer) Validate() error {
	if l.SizePercent < MinLogoSizePercent || l.SizePercent > MaxLogoSizePercent {
		return errors.New(errors.ErrCodeInvalidInput,
			"logo size must be between %d%% and %d%% of canvas width, got %.1f%%",
			MinLogoSizePercent, MaxLogoSizePercent, l.SizePercent)
	}
	return nil
}

// Font size bounds in pixels.
const (
	MinFontSizePx = 10
	MaxFontSizePx = 200
)

// TextStyle is the font and color of the text layer.
type TextStyle struct {
	FontFamily string `json:"font"`
	SizePx     int    `json:"size"`
	ColorHex   string `json:"color"`
}

// Validate checks font size bounds and the color format.
func (s TextStyle) Validate() error {
	if s.SizePx < MinFontSizePx || s.SizePx > MaxFontSizePx {
		return errors.New(errors.ErrCodeInvalidInput,
			"font size must be between %dpx and %dpx, got %d", MinFontSizePx, MaxFontSizePx, s.SizePx)
	}
	return errors.ValidateColorHex(s.ColorHex)
}

// ShadowEffect is a CSS-style text shadow: offset, blur radius and color.
// All pixel values are in canvas units and scale with the output scale.
type ShadowEffect struct {
	Enabled   bool   `json:"enabled"`
	ColorHex  string `json:"color"`
	OffsetXPx int    `json:"offsetX"`
	OffsetYPx int    `json:"offsetY"`
	BlurPx    int    `json:"blur"`
}

// StrokeEffect is a text outline.
type StrokeEffect struct {
	Enabled  bool    `json:"enabled"`
	ColorHex string  `json:"color"`
	WidthPx  float64 `json:"width"`
}

// TextEffects bundles the optional text effects.
type TextEffects struct {
	Shadow ShadowEffect `json:"shadow"`
	Stroke StrokeEffect `json:"stroke"`
}

// TextLayer is a single-run text overlay. Long text overflows its anchor
// rather than wrapping (nowrap semantics, intentional).
type TextLayer struct {
	Content  string           `json:"content"`
	Position PlacementPercent `json:"position"`
	Style    TextStyle        `json:"style"`
	Effects  TextEffects      `json:"effects"`
}

// Validate checks the style and enabled effect colors.
func (t TextLayer) Validate() error {
	if err := t.Style.Validate(); err != nil {
		return err
	}
	if t.Effects.Shadow.Enabled {
		if err := errors.ValidateColorHex(t.Effects.Shadow.ColorHex); err != nil {
			return err
		}
	}
	if t.Effects.Stroke.Enabled {
		if err := errors.ValidateColorHex(t.Effects.Stroke.ColorHex); err != nil {
			return err
		}
	}
	return nil
}

// Scene is the complete declarative description of one banner composition.
// Background, Logo and Text are optional layers.
type Scene struct {
	Canvas     CanvasSpec `json:"canvas"`
	Background *ImageRef  `json:"background,omitempty"`
	Logo       *LogoLayer `json:"logo,omitempty"`
	Text       *TextLayer `json:"text,omitempty"`
}

// Validate checks the canvas and every present layer.
func (s *Scene) Validate() error {
	if err := s.Canvas.Validate(); err != nil {
		return err
	}
	if s.Logo != nil {
		if err := s.Logo.Validate(); err != nil {
			return err
		}
	}
	if s.Text != nil && s.Text.Content != "" {
		if err := s.Text.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a deep copy. The export pipeline clones the caller's scene
// once at the start so concurrent exports and a live editor never share
// mutable state.
func (s *Scene) Clone() *Scene {
	if s == nil {
		return nil
	}
	out := &Scene{Canvas: s.Canvas}
	if s.Background != nil {
		bg := s.Background.Clone()
		out.Background = &bg
	}
	if s.Logo != nil {
		logo := *s.Logo
		logo.Image = s.Logo.Image.Clone()
		out.Logo = &logo
	}
	if s.Text != nil {
		text := *s.Text
		out.Text = &text
	}
	return out
}

// HasText reports whether the scene carries renderable text content.
func (s *Scene) HasText() bool {
	return s.Text != nil && s.Text.Content != ""
}

// DefaultTextStyle returns the editor's default text styling.
func DefaultTextStyle() TextStyle {
	return TextStyle{FontFamily: "Poppins", SizePx: 48, ColorHex: "#FFFFFF"}
}

// DefaultTextEffects returns the editor's default text effects: a soft
// black drop shadow, no stroke.
func DefaultTextEffects() TextEffects {
	return TextEffects{
		Shadow: ShadowEffect{Enabled: true, ColorHex: "#000000", OffsetXPx: 2, OffsetYPx: 2, BlurPx: 4},
		Stroke: StrokeEffect{Enabled: false, ColorHex: "#000000", WidthPx: 1},
	}
}
