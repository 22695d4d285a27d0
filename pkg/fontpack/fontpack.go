// Package fontpack provides font faces for text measurement and rendering.
//
// Families are declared in a manifest (family name → font file path or URL)
// owned by application config. This replaces runtime stylesheet scraping:
// the render step never introspects anything, it just asks the pack for a
// face. Resolution order for a family is:
//
//  1. Bytes registered at runtime (e.g. fetched by the resource inliner)
//  2. A local file path from the manifest
//  3. A system font matching the family name (via findfont)
//  4. The embedded Go Regular fallback face
//
// The fallback never fails, which is what the partial-failure policy of the
// export pipeline relies on: a missing or broken font degrades the text
// layer to a default face instead of aborting the export.
package fontpack

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/bannerforge/bannerforge/pkg/errors"
)

// Source locates a font binary for one family. Exactly one of Path or URL
// is normally set; Path wins when both are.
type Source struct {
	Path string `toml:"path" json:"path,omitempty"`
	URL  string `toml:"url" json:"url,omitempty"`
}

// Manifest maps font family names to their sources.
type Manifest map[string]Source

// Pack caches parsed fonts and hands out faces.
// It is safe for concurrent use.
type Pack struct {
	manifest Manifest
	logger   *log.Logger

	mu    sync.Mutex
	fonts map[string]*truetype.Font // parsed, keyed by family
}

// New creates a pack over the given manifest. A nil logger discards logs.
func New(manifest Manifest, logger *log.Logger) *Pack {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if manifest == nil {
		manifest = Manifest{}
	}
	return &Pack{
		manifest: manifest,
		logger:   logger,
		fonts:    make(map[string]*truetype.Font),
	}
}

// Lookup returns the manifest source for a family, if declared.
func (p *Pack) Lookup(family string) (Source, bool) {
	s, ok := p.manifest[family]
	return s, ok
}

// Registered reports whether a parsed font is already cached for family.
func (p *Pack) Registered(family string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.fonts[family]
	return ok
}

// Register parses raw TTF/OTF bytes and caches them for family. The
// resource inliner calls this after fetching a manifest URL.
func (p *Pack) Register(family string, data []byte) error {
	if err := errors.ValidateFontFamily(family); err != nil {
		return err
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return errors.Wrap(errors.ErrCodeResourceFetch, err, "parse font %q", family)
	}
	p.mu.Lock()
	p.fonts[family] = f
	p.mu.Unlock()
	return nil
}

// Face returns a face for family at the given pixel size. It never fails:
// unknown or broken families resolve to the embedded fallback face.
func (p *Pack) Face(family string, size float64) font.Face {
	return truetype.NewFace(p.resolve(family), &truetype.Options{Size: size})
}

// resolve walks the resolution chain and caches the outcome per family, so
// disk and system lookups happen at most once.
func (p *Pack) resolve(family string) *truetype.Font {
	p.mu.Lock()
	defer p.mu.Unlock()

	if f, ok := p.fonts[family]; ok {
		return f
	}

	if src, ok := p.manifest[family]; ok && src.Path != "" {
		if f, err := parseFile(src.Path); err == nil {
			p.fonts[family] = f
			return f
		} else {
			p.logger.Warn("font manifest path unusable", "family", family, "path", src.Path, "err", err)
		}
	}

	if path, err := findfont.Find(family + ".ttf"); err == nil {
		if f, err := parseFile(path); err == nil {
			p.logger.Debug("resolved font from system", "family", family, "path", path)
			p.fonts[family] = f
			return f
		}
	}

	p.logger.Debug("font family unavailable, using fallback face", "family", family)
	f := fallbackFont()
	p.fonts[family] = f
	return f
}

func parseFile(path string) (*truetype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return truetype.Parse(data)
}

// Embedded fallback, parsed once on first use.
var (
	fallback     *truetype.Font
	fallbackOnce sync.Once
)

func fallbackFont() *truetype.Font {
	fallbackOnce.Do(func() {
		f, err := truetype.Parse(goregular.TTF)
		if err != nil {
			// goregular is a known-good embedded asset.
			panic("fontpack: parse embedded fallback font: " + err.Error())
		}
		fallback = f
	})
	return fallback
}

// FallbackFamily is the family name reported for text rendered with the
// embedded fallback face.
const FallbackFamily = "Go Regular"
