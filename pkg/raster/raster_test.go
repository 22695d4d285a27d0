package raster

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/bannerforge/bannerforge/pkg/banner"
	"github.com/bannerforge/bannerforge/pkg/errors"
	"github.com/bannerforge/bannerforge/pkg/layout"
)

// solidRef encodes a solid-color PNG as an inline ref.
func solidRef(t *testing.T, c color.NRGBA, w, h int) banner.ImageRef {
	t.Helper()
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, imaging.New(w, h, c), imaging.PNG); err != nil {
		t.Fatal(err)
	}
	return banner.InlineRef("image/png", buf.Bytes())
}

func resolve(t *testing.T, r *Renderer, scene *banner.Scene, scale float64) layout.Geometry {
	t.Helper()
	geo, err := layout.Resolve(scene, scale, r.Measurer())
	if err != nil {
		t.Fatal(err)
	}
	return geo
}

func TestRenderDimensionsMatchGeometry(t *testing.T) {
	r := New(nil, nil)
	red := solidRef(t, color.NRGBA{R: 255, A: 255}, 4, 4)
	scene := &banner.Scene{
		Canvas:     banner.CanvasSpec{Width: 200, Height: 100},
		Background: &red,
	}

	geo := resolve(t, r, scene, 1.5)
	img, err := r.Render(scene, geo)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if img.Bounds().Dx() != geo.CanvasW || img.Bounds().Dy() != geo.CanvasH {
		t.Errorf("output = %dx%d, want %dx%d",
			img.Bounds().Dx(), img.Bounds().Dy(), geo.CanvasW, geo.CanvasH)
	}
}

func TestRenderZeroAreaCanvas(t *testing.T) {
	r := New(nil, nil)
	scene := &banner.Scene{Canvas: banner.CanvasSpec{Width: 100, Height: 100}}

	_, err := r.Render(scene, layout.Geometry{Scale: 1, CanvasW: 0, CanvasH: 100})
	if err == nil {
		t.Fatal("Render() with zero-area canvas should fail")
	}
	if code := errors.GetCode(err); code != errors.ErrCodeRenderFailed {
		t.Errorf("code = %q, want %q", code, errors.ErrCodeRenderFailed)
	}
}

func TestRenderBackgroundCoversCanvas(t *testing.T) {
	r := New(nil, nil)
	red := solidRef(t, color.NRGBA{R: 255, A: 255}, 4, 4)
	scene := &banner.Scene{
		Canvas:     banner.CanvasSpec{Width: 64, Height: 32},
		Background: &red,
	}

	img, err := r.Render(scene, resolve(t, r, scene, 1))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	for _, pt := range []image.Point{{0, 0}, {63, 31}, {32, 16}} {
		c := img.NRGBAAt(pt.X, pt.Y)
		if c.R < 200 || c.G > 50 || c.B > 50 {
			t.Errorf("pixel %v = %+v, want red", pt, c)
		}
	}
}

func TestRenderPlaceholderWithoutBackground(t *testing.T) {
	r := New(nil, nil)
	scene := &banner.Scene{Canvas: banner.CanvasSpec{Width: 64, Height: 64}}

	img, err := r.Render(scene, resolve(t, r, scene, 1))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	// Checker pattern: first cell light, neighbor cell differs.
	a := img.NRGBAAt(0, 0)
	b := img.NRGBAAt(20, 0)
	if a == b {
		t.Errorf("expected checker pattern, got uniform %+v", a)
	}
}

func TestRenderLogoInsideFootprint(t *testing.T) {
	r := New(nil, nil)
	white := solidRef(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, 8, 8)
	blue := solidRef(t, color.NRGBA{B: 255, A: 255}, 8, 8)
	scene := &banner.Scene{
		Canvas:     banner.CanvasSpec{Width: 100, Height: 100},
		Background: &white,
		Logo: &banner.LogoLayer{
			Image:       blue,
			Position:    banner.PlacementPercent{X: 50, Y: 50},
			SizePercent: 20,
		},
	}

	img, err := r.Render(scene, resolve(t, r, scene, 1))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	center := img.NRGBAAt(50, 50)
	if center.B < 200 || center.R > 50 {
		t.Errorf("canvas center = %+v, want blue logo", center)
	}
	corner := img.NRGBAAt(2, 2)
	if corner.B > 200 && corner.R < 50 {
		t.Errorf("corner = %+v, logo must stay inside its footprint", corner)
	}
}

func TestRenderCorruptRefDegrades(t *testing.T) {
	r := New(nil, nil)
	broken := banner.InlineRef("image/png", []byte("not an image"))
	scene := &banner.Scene{
		Canvas:     banner.CanvasSpec{Width: 64, Height: 64},
		Background: &broken,
	}

	if _, err := r.Render(scene, resolve(t, r, scene, 1)); err != nil {
		t.Fatalf("Render() error = %v, corrupt background must degrade to placeholder", err)
	}
}

func TestRenderTextRequiresBackground(t *testing.T) {
	r := New(nil, nil)
	text := &banner.TextLayer{
		Content:  "Hello",
		Position: banner.PlacementPercent{X: 50, Y: 50},
		Style:    banner.TextStyle{FontFamily: "Poppins", SizePx: 24, ColorHex: "#000000"},
	}

	bare := &banner.Scene{Canvas: banner.CanvasSpec{Width: 96, Height: 48}}
	withText := &banner.Scene{Canvas: bare.Canvas, Text: text}

	a, err := r.Render(bare, resolve(t, r, bare, 1))
	if err != nil {
		t.Fatal(err)
	}
	b, err := r.Render(withText, resolve(t, r, withText, 1))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("text must not render without a background layer")
	}
}

func TestRenderTextOnBackground(t *testing.T) {
	r := New(nil, nil)
	white := solidRef(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, 8, 8)
	plain := &banner.Scene{
		Canvas:     banner.CanvasSpec{Width: 200, Height: 100},
		Background: &white,
	}
	withText := &banner.Scene{
		Canvas:     plain.Canvas,
		Background: &white,
		Text: &banner.TextLayer{
			Content:  "Hello",
			Position: banner.PlacementPercent{X: 50, Y: 50},
			Style:    banner.TextStyle{FontFamily: "Poppins", SizePx: 36, ColorHex: "#000000"},
		},
	}

	a, err := r.Render(plain, resolve(t, r, plain, 1))
	if err != nil {
		t.Fatal(err)
	}
	b, err := r.Render(withText, resolve(t, r, withText, 1))
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(a.Pix, b.Pix) {
		t.Error("text layer should change the rendered pixels")
	}
}

func TestMeasurerReportsPositiveBox(t *testing.T) {
	r := New(nil, nil)
	w, h := r.Measurer().MeasureText("Hello", "NoSuchFamily", 32)
	if w <= 0 || h <= 0 {
		t.Errorf("MeasureText() = %gx%g, want positive box", w, h)
	}
}
