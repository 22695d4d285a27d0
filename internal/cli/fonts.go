package cli

import (
	"fmt"

	"github.com/flopp/go-findfont"
	"github.com/spf13/cobra"

	"github.com/bannerforge/bannerforge/pkg/banner"
)

// newFontsCmd creates the fonts command for inspecting font availability.
// For each catalog family it reports where a face would come from: the
// config manifest, a system font, or the embedded fallback.
func newFontsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "fonts",
		Short: "List the font catalog and where each family resolves from",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags.configPath)
			if err != nil {
				return err
			}

			fmt.Println(StyleTitle.Render("Font catalog"))
			for _, opt := range banner.FontCatalog() {
				kind := "body"
				if opt.Headline {
					kind = "headline"
				}
				printKeyValue(opt.Family, kind+" · "+fontSourceLabel(cfg, opt.Family))
			}
			printDetail("declare extra families under [fonts] in the config file")
			return nil
		},
	}
}

// fontSourceLabel describes the resolution source for a family, in the
// same order the renderer resolves it.
func fontSourceLabel(cfg *Config, family string) string {
	if src, ok := cfg.Fonts[family]; ok {
		if src.Path != "" {
			return "manifest path " + src.Path
		}
		if src.URL != "" {
			return "manifest url"
		}
	}
	if path, err := findfont.Find(family + ".ttf"); err == nil {
		return "system " + path
	}
	return StyleWarning.Render("fallback face")
}
