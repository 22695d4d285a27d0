package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bannerforge/bannerforge/pkg/banner"
	"github.com/bannerforge/bannerforge/pkg/inline"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"png"}},
		{"png", []string{"png"}},
		{"png,pdf", []string{"png", "pdf"}},
		{"jpg,png,pdf", []string{"jpg", "png", "pdf"}},
	}
	for _, tt := range tests {
		got := parseFormats(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestParsePlacement(t *testing.T) {
	tests := []struct {
		in      string
		want    banner.PlacementPercent
		wantErr bool
	}{
		{in: "bottom-center", want: banner.PlacementPercent{X: 50, Y: 85}},
		{in: "center", want: banner.PlacementPercent{X: 50, Y: 50}},
		{in: "30,70", want: banner.PlacementPercent{X: 30, Y: 70}},
		{in: " 10 , 20 ", want: banner.PlacementPercent{X: 10, Y: 20}},
		{in: "150,-10", want: banner.PlacementPercent{X: 100, Y: 0}},
		{in: "nowhere", wantErr: true},
		{in: "a,b", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parsePlacement(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parsePlacement(%q) should fail", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parsePlacement(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parsePlacement(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	dir := t.TempDir()

	got, err := outputPath("", "banner-small.png", false)
	if err != nil || got != "banner-small.png" {
		t.Errorf("outputPath(empty) = %q, %v", got, err)
	}

	got, err = outputPath(filepath.Join(dir, "out.png"), "banner-small.png", false)
	if err != nil || got != filepath.Join(dir, "out.png") {
		t.Errorf("outputPath(file) = %q, %v", got, err)
	}

	// An existing directory gets the suggested name appended.
	got, err = outputPath(dir, "banner-small.png", false)
	if err != nil || got != filepath.Join(dir, "banner-small.png") {
		t.Errorf("outputPath(dir) = %q, %v", got, err)
	}

	// Multiple formats treat --output as a directory and create it.
	multi := filepath.Join(dir, "exports")
	got, err = outputPath(multi, "banner-small.pdf", true)
	if err != nil || got != filepath.Join(multi, "banner-small.pdf") {
		t.Errorf("outputPath(multi) = %q, %v", got, err)
	}
	if _, err := os.Stat(multi); err != nil {
		t.Errorf("multi output dir not created: %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[fonts.Poppins]
url = "https://fonts.example.com/poppins.ttf"

[cache]
backend = "file"
dir = "/tmp/bf-cache"

[fetch]
timeout = "5s"

[store]
backend = "memory"

[server]
addr = ":9090"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if src, ok := cfg.Fonts["Poppins"]; !ok || src.URL != "https://fonts.example.com/poppins.ttf" {
		t.Errorf("fonts = %+v", cfg.Fonts)
	}
	if cfg.Cache.Backend != "file" || cfg.Cache.Dir != "/tmp/bf-cache" {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Fetch.Timeout.Duration != 5*time.Second {
		t.Errorf("fetch timeout = %v, want 5s", cfg.Fetch.Timeout.Duration)
	}
	if cfg.Store.Backend != "memory" {
		t.Errorf("store backend = %q", cfg.Store.Backend)
	}
	if cfg.Serve.Addr != ":9090" {
		t.Errorf("serve addr = %q", cfg.Serve.Addr)
	}
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("loadConfig() with missing explicit file should fail")
	}
}

func TestFetchTimeout(t *testing.T) {
	cfg := &Config{}
	if got := fetchTimeout(cfg); got != inline.DefaultFetchTimeout {
		t.Errorf("fetchTimeout(zero) = %v, want default", got)
	}
	cfg.Fetch.Timeout.Duration = 3 * time.Second
	if got := fetchTimeout(cfg); got != 3*time.Second {
		t.Errorf("fetchTimeout(3s) = %v", got)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{3 << 20, "3.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
