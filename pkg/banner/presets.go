package banner

import (
	"sort"

	"github.com/bannerforge/bannerforge/pkg/errors"
)

// PresetCustom is the sentinel preset name for user-supplied dimensions.
const PresetCustom = "custom"

// Preset is a named canvas size.
type Preset struct {
	Name   string `json:"name"`  // display name
	Width  int    `json:"width"` // px
	Height int    `json:"height"`
}

// presets is the fixed table of banner size presets.
var presets = map[string]Preset{
	"facebookCover":  {Name: "Facebook Cover", Width: 851, Height: 315},
	"instagramPost":  {Name: "Instagram Post", Width: 1080, Height: 1080},
	"instagramStory": {Name: "Instagram Story", Width: 1080, Height: 1920},
	"twitterHeader":  {Name: "Twitter Header", Width: 1500, Height: 500},
	"linkedinBanner": {Name: "LinkedIn Banner", Width: 1584, Height: 396},
	"youtubeChannel": {Name: "YouTube Channel Art", Width: 2560, Height: 1440},
}

// DefaultPreset is the editor's initial canvas preset.
const DefaultPreset = "facebookCover"

// PresetCanvas resolves a preset name to its CanvasSpec. For PresetCustom,
// the supplied custom dimensions are used. Unknown names fail with
// INVALID_PRESET.
func PresetCanvas(name string, custom CanvasSpec) (CanvasSpec, error) {
	if name == PresetCustom {
		if err := custom.Validate(); err != nil {
			return CanvasSpec{}, err
		}
		return custom, nil
	}
	p, ok := presets[name]
	if !ok {
		return CanvasSpec{}, errors.New(errors.ErrCodeInvalidPreset, "unknown preset: %q", name)
	}
	return CanvasSpec{Width: p.Width, Height: p.Height}, nil
}

// Presets returns the preset table keyed by preset id. The returned map is
// a copy; callers may modify it freely.
func Presets() map[string]Preset {
	out := make(map[string]Preset, len(presets))
	for k, v := range presets {
		out[k] = v
	}
	return out
}

// PresetNames returns the preset ids in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for k := range presets {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// FontOption is an entry of the font catalog offered by the editor.
// Headline fonts are display faces; the rest are body faces.
type FontOption struct {
	Label    string `json:"label"`
	Family   string `json:"value"`
	Headline bool   `json:"isHeadline"`
}

// FontCatalog returns the built-in font catalog.
func FontCatalog() []FontOption {
	return []FontOption{
		{Label: "Poppins", Family: "Poppins", Headline: true},
		{Label: "PT Sans", Family: "PT Sans"},
		{Label: "Roboto", Family: "Roboto"},
		{Label: "Montserrat", Family: "Montserrat", Headline: true},
		{Label: "Lora", Family: "Lora"},
		{Label: "Playfair Display", Family: "Playfair Display", Headline: true},
	}
}
