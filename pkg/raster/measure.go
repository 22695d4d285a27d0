package raster

import (
	"github.com/fogleman/gg"

	"github.com/bannerforge/bannerforge/pkg/fontpack"
)

// lineHeight matches the preview's CSS line-height for the text run.
const lineHeight = 1.2

// Measurer measures text with the exact faces the compositor paints with,
// implementing layout.TextMeasurer. Sharing one font pack between the
// measurer and the renderer is what keeps preview and export geometry from
// drifting.
type Measurer struct {
	fonts *fontpack.Pack
}

// NewMeasurer creates a measurer over the given font pack.
func NewMeasurer(fonts *fontpack.Pack) *Measurer {
	if fonts == nil {
		fonts = fontpack.New(nil, nil)
	}
	return &Measurer{fonts: fonts}
}

// MeasureText returns the rendered bounding box of a single unwrapped text
// run at the native font size.
func (m *Measurer) MeasureText(content, fontFamily string, sizePx float64) (float64, float64) {
	dc := gg.NewContext(1, 1)
	dc.SetFontFace(m.fonts.Face(fontFamily, sizePx))
	w, h := dc.MeasureString(content)
	return w, h * lineHeight
}
