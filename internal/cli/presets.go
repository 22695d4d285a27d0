package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bannerforge/bannerforge/pkg/banner"
)

// newPresetsCmd creates the presets command listing canvas presets.
func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List canvas size presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := banner.Presets()
			fmt.Println(StyleTitle.Render("Canvas presets"))
			for _, id := range banner.PresetNames() {
				p := presets[id]
				printKeyValue(id, fmt.Sprintf("%s · %dx%d", p.Name, p.Width, p.Height))
			}
			printDetail("use --preset custom with --width/--height for other sizes")
			return nil
		},
	}
}

// newTemplatesCmd creates the templates command listing starter templates.
func newTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List starter templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(StyleTitle.Render("Starter templates"))
			for _, tpl := range banner.Templates() {
				desc := fmt.Sprintf("%s · %dx%d", tpl.Name, tpl.Scene.Canvas.Width, tpl.Scene.Canvas.Height)
				if tpl.Scene.HasText() {
					desc += " · " + StyleDim.Render(fmt.Sprintf("%q", tpl.Scene.Text.Content))
				}
				printKeyValue(tpl.ID, desc)
			}
			printDetail("render one with: bannerforge export --template <id>")
			return nil
		},
	}
}
