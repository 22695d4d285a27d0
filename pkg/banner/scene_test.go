package banner

import (
	"encoding/json"
	"testing"

	"github.com/bannerforge/bannerforge/pkg/errors"
)

func validScene() *Scene {
	bg := RemoteRef("https://example.com/bg.jpg")
	return &Scene{
		Canvas:     CanvasSpec{Width: 851, Height: 315},
		Background: &bg,
		Logo: &LogoLayer{
			Image:       RemoteRef("https://example.com/logo.png"),
			Position:    PlacementPercent{X: 15, Y: 15},
			SizePercent: 20,
		},
		Text: &TextLayer{
			Content:  "Summer Sale",
			Position: PlacementPercent{X: 50, Y: 85},
			Style:    DefaultTextStyle(),
			Effects:  DefaultTextEffects(),
		},
	}
}

func TestSceneValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Scene)
		wantCode errors.Code
	}{
		{"valid", func(s *Scene) {}, ""},
		{"zero canvas", func(s *Scene) { s.Canvas = CanvasSpec{} }, errors.ErrCodeInvalidInput},
		{"negative width", func(s *Scene) { s.Canvas.Width = -1 }, errors.ErrCodeInvalidInput},
		{"logo too small", func(s *Scene) { s.Logo.SizePercent = 2 }, errors.ErrCodeInvalidInput},
		{"logo too large", func(s *Scene) { s.Logo.SizePercent = 80 }, errors.ErrCodeInvalidInput},
		{"font too small", func(s *Scene) { s.Text.Style.SizePx = 4 }, errors.ErrCodeInvalidInput},
		{"bad text color", func(s *Scene) { s.Text.Style.ColorHex = "red" }, errors.ErrCodeInvalidColor},
		{"bad shadow color", func(s *Scene) { s.Text.Effects.Shadow.ColorHex = "black" }, errors.ErrCodeInvalidColor},
		{"empty text skips style check", func(s *Scene) { s.Text.Content = ""; s.Text.Style.SizePx = 0 }, ""},
		{"no layers", func(s *Scene) { s.Background = nil; s.Logo = nil; s.Text = nil }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validScene()
			tt.mutate(s)
			err := s.Validate()
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantCode) {
				t.Fatalf("error = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestSceneClone(t *testing.T) {
	orig := validScene()
	clone := orig.Clone()

	clone.Canvas.Width = 1
	clone.Text.Content = "changed"
	clone.Logo.SizePercent = 50
	*clone.Background = InlineRef("image/png", []byte{1, 2, 3})

	if orig.Canvas.Width != 851 {
		t.Error("clone shares canvas")
	}
	if orig.Text.Content != "Summer Sale" {
		t.Error("clone shares text layer")
	}
	if orig.Logo.SizePercent != 20 {
		t.Error("clone shares logo layer")
	}
	if orig.Background.Inline() {
		t.Error("clone shares background ref")
	}

	var nilScene *Scene
	if nilScene.Clone() != nil {
		t.Error("nil clone should stay nil")
	}
}

func TestPlacementClamp(t *testing.T) {
	tests := []struct {
		in, want PlacementPercent
	}{
		{PlacementPercent{X: 50, Y: 50}, PlacementPercent{X: 50, Y: 50}},
		{PlacementPercent{X: -10, Y: 120}, PlacementPercent{X: 0, Y: 100}},
		{PlacementPercent{X: 150, Y: -0.5}, PlacementPercent{X: 100, Y: 0}},
	}
	for _, tt := range tests {
		if got := tt.in.Clamp(); got != tt.want {
			t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCanvasGeometry(t *testing.T) {
	wide := CanvasSpec{Width: 1500, Height: 500}
	if !wide.Landscape() {
		t.Error("1500x500 should be landscape")
	}
	square := CanvasSpec{Width: 1080, Height: 1080}
	if square.Landscape() {
		t.Error("square canvas is not landscape")
	}
	if got := wide.AspectRatio(); got != 3 {
		t.Errorf("AspectRatio = %f, want 3", got)
	}
	if got := (CanvasSpec{Width: 10}).AspectRatio(); got != 0 {
		t.Errorf("zero-height AspectRatio = %f, want 0", got)
	}
}

func TestHasText(t *testing.T) {
	s := &Scene{Canvas: CanvasSpec{Width: 10, Height: 10}}
	if s.HasText() {
		t.Error("no text layer")
	}
	s.Text = &TextLayer{}
	if s.HasText() {
		t.Error("empty content is not renderable text")
	}
	s.Text.Content = "hi"
	if !s.HasText() {
		t.Error("expected HasText")
	}
}

func TestSceneJSONRoundTrip(t *testing.T) {
	orig := validScene()
	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got Scene
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Background == nil || got.Background.URL() != "https://example.com/bg.jpg" {
		t.Errorf("background lost in round trip: %+v", got.Background)
	}
	if got.Text == nil || got.Text.Style != orig.Text.Style {
		t.Errorf("text style lost in round trip")
	}
}
