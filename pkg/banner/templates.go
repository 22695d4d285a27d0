package banner

// Template is a ready-made scene offered by the template gallery. The
// gallery itself is UI; the core only exposes the catalog so CLI and API
// consumers can start from a known-good scene.
type Template struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Scene Scene  `json:"scene"`
}

// Templates returns the built-in template catalog. Each call returns fresh
// deep copies so callers can edit a template scene without affecting the
// catalog.
func Templates() []Template {
	out := make([]Template, len(templateCatalog))
	for i, t := range templateCatalog {
		out[i] = Template{ID: t.ID, Name: t.Name, Scene: *t.Scene.Clone()}
	}
	return out
}

// TemplateByID looks up a template by its id. The second return value is
// false when no such template exists.
func TemplateByID(id string) (Template, bool) {
	for _, t := range templateCatalog {
		if t.ID == id {
			return Template{ID: t.ID, Name: t.Name, Scene: *t.Scene.Clone()}, true
		}
	}
	return Template{}, false
}

var templateCatalog = []Template{
	{
		ID:   "tech-event",
		Name: "Tech Event",
		Scene: Scene{
			Canvas:     CanvasSpec{Width: 1584, Height: 396},
			Background: refPtr("https://images.unsplash.com/photo-1518770660439-4636190af475?w=1584&h=396&fit=crop"),
			Logo: &LogoLayer{
				Image:       RemoteRef("https://images.unsplash.com/photo-1620288627223-53302f4e8c74?w=200&h=200&fit=crop"),
				Position:    PlacementPercent{X: 10, Y: 50},
				SizePercent: 10,
			},
			Text: &TextLayer{
				Content:  "INNOVATION SUMMIT 2024",
				Position: PlacementPercent{X: 55, Y: 50},
				Style:    TextStyle{FontFamily: "Poppins", SizePx: 64, ColorHex: "#FFFFFF"},
				Effects: TextEffects{
					Shadow: ShadowEffect{Enabled: true, ColorHex: "#000000", OffsetXPx: 3, OffsetYPx: 3, BlurPx: 5},
					Stroke: StrokeEffect{ColorHex: "#000000", WidthPx: 1},
				},
			},
		},
	},
	{
		ID:   "fashion-sale",
		Name: "Fashion Sale",
		Scene: Scene{
			Canvas:     CanvasSpec{Width: 1080, Height: 1080},
			Background: refPtr("https://images.unsplash.com/photo-1483985988355-763728e1935b?w=1080&h=1080&fit=crop"),
			Logo: &LogoLayer{
				Image:       RemoteRef("https://images.unsplash.com/photo-1599305445671-ac291c95aaa9?w=200&h=200&fit=crop"),
				Position:    PlacementPercent{X: 50, Y: 15},
				SizePercent: 15,
			},
			Text: &TextLayer{
				Content:  "50% OFF",
				Position: PlacementPercent{X: 50, Y: 55},
				Style:    TextStyle{FontFamily: "Playfair Display", SizePx: 150, ColorHex: "#FFFFFF"},
				Effects: TextEffects{
					Shadow: ShadowEffect{Enabled: true, ColorHex: "#00000080", OffsetYPx: 5, BlurPx: 10},
					Stroke: StrokeEffect{ColorHex: "#000000", WidthPx: 1},
				},
			},
		},
	},
	{
		ID:   "restaurant-promo",
		Name: "Restaurant Promo",
		Scene: Scene{
			Canvas:     CanvasSpec{Width: 851, Height: 315},
			Background: refPtr("https://images.unsplash.com/photo-1555396273-367ea4eb4db5?w=851&h=315&fit=crop"),
			Logo: &LogoLayer{
				Image:       RemoteRef("https://images.unsplash.com/photo-1565299624946-b28f40a0ae38?w=200&h=200&fit=crop"),
				Position:    PlacementPercent{X: 85, Y: 20},
				SizePercent: 18,
			},
			Text: &TextLayer{
				Content:  "Sabor que Enamora",
				Position: PlacementPercent{X: 40, Y: 50},
				Style:    TextStyle{FontFamily: "Lora", SizePx: 72, ColorHex: "#FFFFFF"},
				Effects: TextEffects{
					Shadow: ShadowEffect{Enabled: true, ColorHex: "#4D2C1A", OffsetXPx: 4, OffsetYPx: 4, BlurPx: 6},
					Stroke: StrokeEffect{ColorHex: "#000000", WidthPx: 1},
				},
			},
		},
	},
	{
		ID:   "travel-story",
		Name: "Travel Story",
		Scene: Scene{
			Canvas:     CanvasSpec{Width: 1080, Height: 1920},
			Background: refPtr("https://images.unsplash.com/photo-1501785888041-af3ef285b470?w=1080&h=1920&fit=crop"),
			Logo: &LogoLayer{
				Image:       RemoteRef("https://images.unsplash.com/photo-1488646953014-85cb44e25828?w=200&h=200&fit=crop"),
				Position:    PlacementPercent{X: 50, Y: 90},
				SizePercent: 12,
			},
			Text: &TextLayer{
				Content:  "AVENTURA",
				Position: PlacementPercent{X: 50, Y: 50},
				Style:    TextStyle{FontFamily: "Montserrat", SizePx: 180, ColorHex: "#FFFFFF"},
				Effects: TextEffects{
					Shadow: ShadowEffect{ColorHex: "#000000", OffsetXPx: 2, OffsetYPx: 2, BlurPx: 4},
					Stroke: StrokeEffect{Enabled: true, ColorHex: "#000000", WidthPx: 2},
				},
			},
		},
	},
	{
		ID:   "corporate-header",
		Name: "Corporate Header",
		Scene: Scene{
			Canvas:     CanvasSpec{Width: 1500, Height: 500},
			Background: refPtr("https://images.unsplash.com/photo-1556761175-5973dc0f32e7?w=1500&h=500&fit=crop"),
			Logo: &LogoLayer{
				Image:       RemoteRef("https://images.unsplash.com/photo-1560179707-f14e90ef3623?w=200&h=200&fit=crop"),
				Position:    PlacementPercent{X: 10, Y: 50},
				SizePercent: 8,
			},
			Text: &TextLayer{
				Content:  "Liderando el Futuro de la Industria",
				Position: PlacementPercent{X: 50, Y: 50},
				Style:    TextStyle{FontFamily: "PT Sans", SizePx: 52, ColorHex: "#FFFFFF"},
				Effects: TextEffects{
					Shadow: ShadowEffect{Enabled: true, ColorHex: "#00000066", OffsetXPx: 2, OffsetYPx: 2, BlurPx: 4},
					Stroke: StrokeEffect{ColorHex: "#000000", WidthPx: 1},
				},
			},
		},
	},
	{
		ID:   "real-estate",
		Name: "Luxury Real Estate",
		Scene: Scene{
			Canvas:     CanvasSpec{Width: 1080, Height: 1080},
			Background: refPtr("https://images.unsplash.com/photo-1560518883-ce09059eeffa?w=1080&h=1080&fit=crop"),
			Logo: &LogoLayer{
				Image:       RemoteRef("https://images.unsplash.com/photo-1570129477492-45c003edd2be?w=200&h=200&fit=crop"),
				Position:    PlacementPercent{X: 50, Y: 10},
				SizePercent: 12,
			},
			Text: &TextLayer{
				Content:  "TU HOGAR SOÑADO",
				Position: PlacementPercent{X: 50, Y: 90},
				Style:    TextStyle{FontFamily: "Montserrat", SizePx: 80, ColorHex: "#252525"},
				Effects: TextEffects{
					Shadow: ShadowEffect{ColorHex: "#000000", OffsetXPx: 2, OffsetYPx: 2, BlurPx: 4},
					Stroke: StrokeEffect{ColorHex: "#000000", WidthPx: 1},
				},
			},
		},
	},
}

func refPtr(url string) *ImageRef {
	r := RemoteRef(url)
	return &r
}
