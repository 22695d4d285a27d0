package export

import (
	"bytes"
	"context"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/bannerforge/bannerforge/pkg/banner"
	"github.com/bannerforge/bannerforge/pkg/cache"
)

func exportScene(t *testing.T) banner.Scene {
	t.Helper()
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, imaging.New(4, 4, color.NRGBA{R: 40, G: 40, B: 200, A: 255}), imaging.PNG); err != nil {
		t.Fatal(err)
	}
	bg := banner.InlineRef("image/png", buf.Bytes())
	return banner.Scene{
		Canvas:     banner.CanvasSpec{Width: 300, Height: 150},
		Background: &bg,
		Text: &banner.TextLayer{
			Content:  "Summer Sale",
			Position: banner.PlacementPercent{X: 50, Y: 85},
			Style:    banner.DefaultTextStyle(),
		},
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name  string
		scene *banner.Scene
		want  string
	}{
		{
			name:  "nil scene falls back",
			scene: nil,
			want:  "banner-medium.png",
		},
		{
			name:  "no text falls back",
			scene: &banner.Scene{Canvas: banner.CanvasSpec{Width: 100, Height: 100}},
			want:  "banner-medium.png",
		},
		{
			name: "headline text",
			scene: &banner.Scene{
				Text: &banner.TextLayer{Content: "Summer Sale"},
			},
			want: "Summer Sale-medium.png",
		},
		{
			name: "long text truncated to twenty runes",
			scene: &banner.Scene{
				Text: &banner.TextLayer{Content: "This headline is much longer than the limit"},
			},
			want: "This headline is muc-medium.png",
		},
		{
			name: "multibyte runes counted as runes",
			scene: &banner.Scene{
				Text: &banner.TextLayer{Content: "ÄÖÜäöüßÄÖÜäöüßÄÖÜäöüßextra"},
			},
			want: "ÄÖÜäöüßÄÖÜäöüßÄÖÜäöü-medium.png",
		},
		{
			name: "surrounding whitespace trimmed",
			scene: &banner.Scene{
				Text: &banner.TextLayer{Content: "  Sale  "},
			},
			want: "Sale-medium.png",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Filename(tt.scene, TierMedium, FormatPNG); got != tt.want {
				t.Errorf("Filename() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTierScale(t *testing.T) {
	canvas := banner.CanvasSpec{Width: 1200, Height: 600}
	tests := []struct {
		tier string
		want float64
	}{
		{TierSmall, 0.5},
		{TierMedium, 0.9},
		{TierLarge, 1.6},
	}
	for _, tt := range tests {
		got, err := TierScale(canvas, tt.tier)
		if err != nil {
			t.Fatalf("TierScale(%s) error = %v", tt.tier, err)
		}
		if got != tt.want {
			t.Errorf("TierScale(%s) = %g, want %g", tt.tier, got, tt.want)
		}
	}

	if _, err := TierScale(canvas, "huge"); err == nil {
		t.Error("TierScale() with unknown tier should fail")
	}
	if _, err := TierScale(banner.CanvasSpec{}, TierSmall); err == nil {
		t.Error("TierScale() with invalid canvas should fail")
	}
}

func TestValidateTier(t *testing.T) {
	for tier := range ValidTiers {
		if err := ValidateTier(tier); err != nil {
			t.Errorf("ValidateTier(%q) error = %v", tier, err)
		}
	}
	if err := ValidateTier("xl"); err == nil {
		t.Error("ValidateTier(xl) should fail")
	}
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	opts := Options{Scene: exportScene(t)}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	if opts.Format != DefaultFormat || opts.Tier != DefaultTier {
		t.Errorf("defaults = %s/%s, want %s/%s", opts.Format, opts.Tier, DefaultFormat, DefaultTier)
	}
	if opts.Logger == nil {
		t.Error("nil logger should be defaulted")
	}

	bad := Options{Scene: exportScene(t), Format: "gif"}
	if err := bad.ValidateAndSetDefaults(); err == nil {
		t.Error("unknown format should fail validation")
	}
	bad = Options{Scene: exportScene(t), Tier: "tiny"}
	if err := bad.ValidateAndSetDefaults(); err == nil {
		t.Error("unknown tier should fail validation")
	}
}

func TestExecuteProducesArtifact(t *testing.T) {
	e := New(nil, nil, nil, nil)
	res, err := e.Execute(context.Background(), Options{
		Scene:  exportScene(t),
		Format: FormatPNG,
		Tier:   TierSmall,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.CacheInfo.ArtifactHit {
		t.Error("first export must not report a cache hit")
	}
	if res.MIMEType != "image/png" {
		t.Errorf("MIMEType = %q, want image/png", res.MIMEType)
	}
	if res.Filename != "Summer Sale-small.png" {
		t.Errorf("Filename = %q", res.Filename)
	}
	if res.SceneHash == "" {
		t.Error("SceneHash must be set")
	}

	img, err := png.Decode(bytes.NewReader(res.Artifact))
	if err != nil {
		t.Fatalf("artifact is not a PNG: %v", err)
	}
	// small tier targets 600px wide; the 2:1 canvas keeps its ratio.
	if img.Bounds().Dx() != 600 || img.Bounds().Dy() != 300 {
		t.Errorf("artifact = %dx%d, want 600x300", img.Bounds().Dx(), img.Bounds().Dy())
	}
	if res.Width != 600 || res.Height != 300 {
		t.Errorf("result dims = %dx%d, want 600x300", res.Width, res.Height)
	}
}

func TestExecuteUsesExporterLogger(t *testing.T) {
	var buf bytes.Buffer
	e := New(nil, nil, nil, log.NewWithOptions(&buf, log.Options{}))
	if _, err := e.Execute(context.Background(), Options{Scene: exportScene(t)}); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(buf.String(), "encoded artifact") {
		t.Error("exporter logger received no stage logs")
	}
}

func TestExecuteArtifactCacheHit(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	e := New(nil, c, nil, nil)
	opts := Options{Scene: exportScene(t), Format: FormatPNG, Tier: TierSmall}
	ctx := context.Background()

	first, err := e.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("first Execute() error = %v", err)
	}
	second, err := e.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("second Execute() error = %v", err)
	}
	if !second.CacheInfo.ArtifactHit {
		t.Error("second export should hit the artifact cache")
	}
	if !bytes.Equal(first.Artifact, second.Artifact) {
		t.Error("cached artifact differs from the original")
	}

	// Refresh bypasses the cache.
	opts.Refresh = true
	third, err := e.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("refresh Execute() error = %v", err)
	}
	if third.CacheInfo.ArtifactHit {
		t.Error("refresh must bypass the artifact cache")
	}
}

func TestExecuteAll(t *testing.T) {
	e := New(nil, nil, nil, nil)
	results, err := e.ExecuteAll(context.Background(), Options{
		Scene: exportScene(t),
		Tier:  TierSmall,
	}, []string{FormatPNG, FormatJPG, FormatPDF})
	if err != nil {
		t.Fatalf("ExecuteAll() error = %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for format, res := range results {
		if len(res.Artifact) == 0 {
			t.Errorf("format %s produced an empty artifact", format)
		}
	}
	if !bytes.HasPrefix(results[FormatPDF].Artifact, []byte("%PDF")) {
		t.Error("pdf artifact is missing the PDF header")
	}
}

func TestExecuteAllDefaultsToPNG(t *testing.T) {
	e := New(nil, nil, nil, nil)
	results, err := e.ExecuteAll(context.Background(), Options{Scene: exportScene(t), Tier: TierSmall}, nil)
	if err != nil {
		t.Fatalf("ExecuteAll() error = %v", err)
	}
	if _, ok := results[FormatPNG]; !ok || len(results) != 1 {
		t.Errorf("results = %v, want only png", results)
	}
}

func TestSceneHashStable(t *testing.T) {
	s := exportScene(t)
	if SceneHash(&s) != SceneHash(&s) {
		t.Error("SceneHash must be deterministic")
	}
	other := exportScene(t)
	other.Text.Content = "Winter Sale"
	if SceneHash(&s) == SceneHash(&other) {
		t.Error("different scenes must hash differently")
	}
}
