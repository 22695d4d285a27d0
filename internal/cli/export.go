package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bannerforge/bannerforge/pkg/banner"
	"github.com/bannerforge/bannerforge/pkg/errors"
	"github.com/bannerforge/bannerforge/pkg/export"
	"github.com/bannerforge/bannerforge/pkg/fontpack"
	"github.com/bannerforge/bannerforge/pkg/inline"
)

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	output   string   // output file path (single format) or directory (multiple)
	formats  []string // output formats: png, jpg, pdf
	tier     string   // size tier: small, medium, large
	preset   string   // canvas preset id, or "custom"
	width    int      // custom canvas width (preset=custom)
	height   int      // custom canvas height (preset=custom)
	template string   // starter template id
	banner   string   // saved banner id to load from the store

	text     string // headline text
	font     string // headline font family
	fontSize int    // headline size in px
	color    string // headline color hex
	textPos  string // named placement or "x,y" percent
	noShadow bool   // disable the default text shadow

	background string // background image URL or data URI
	logo       string // logo image URL or data URI
	logoSize   float64
	logoPos    string

	noCache bool // disable caching
	refresh bool // bypass the artifact cache
}

// newExportCmd creates the export command for rendering banner artifacts.
//
// Default settings:
//   - preset: facebookCover (851x315)
//   - format: png
//   - tier: medium (1080px wide output)
func newExportCmd(flags *rootFlags) *cobra.Command {
	var formatsStr string
	opts := exportOpts{
		preset:   banner.DefaultPreset,
		tier:     export.DefaultTier,
		logoSize: 20,
	}

	cmd := &cobra.Command{
		Use:   "export [scene.json]",
		Short: "Render a banner scene to png, jpg, or pdf",
		Long: `Render a banner scene to one or more output formats.

The scene can come from a JSON file, a starter template (--template), a
saved banner (--banner), or be assembled from flags (--text, --background,
--logo). Flags override whatever the scene source provides.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			sceneFile := ""
			if len(args) == 1 {
				sceneFile = args[0]
			}
			return runExport(cmd.Context(), flags, sceneFile, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or directory (multiple formats)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): png (default), jpg, pdf (comma-separated)")
	cmd.Flags().StringVarP(&opts.tier, "tier", "t", opts.tier, "size tier: small, medium (default), large")
	cmd.Flags().StringVarP(&opts.preset, "preset", "p", opts.preset, "canvas preset id, or 'custom'")
	cmd.Flags().IntVar(&opts.width, "width", 0, "custom canvas width (with --preset custom)")
	cmd.Flags().IntVar(&opts.height, "height", 0, "custom canvas height (with --preset custom)")
	cmd.Flags().StringVar(&opts.template, "template", "", "starter template id (see 'bannerforge templates')")
	cmd.Flags().StringVar(&opts.banner, "banner", "", "saved banner id (see 'bannerforge banners list')")
	cmd.Flags().StringVar(&opts.text, "text", "", "headline text")
	cmd.Flags().StringVar(&opts.font, "font", "", "headline font family")
	cmd.Flags().IntVar(&opts.fontSize, "font-size", 0, "headline size in px (default: scene value)")
	cmd.Flags().StringVar(&opts.color, "color", "", "headline color, e.g. '#FFFFFF'")
	cmd.Flags().StringVar(&opts.textPos, "text-pos", "", "text placement: named (e.g. bottom-center) or 'x,y' percent")
	cmd.Flags().BoolVar(&opts.noShadow, "no-shadow", false, "disable the default text shadow")
	cmd.Flags().StringVar(&opts.background, "background", "", "background image URL or data URI")
	cmd.Flags().StringVar(&opts.logo, "logo", "", "logo image URL or data URI")
	cmd.Flags().Float64Var(&opts.logoSize, "logo-size", opts.logoSize, "logo size as percent of canvas width (5-50)")
	cmd.Flags().StringVar(&opts.logoPos, "logo-pos", "", "logo placement: named or 'x,y' percent")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable resource and artifact caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even if a cached artifact exists")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["png"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{export.FormatPNG}
	}
	return strings.Split(s, ",")
}

// parsePlacement accepts either a named placement (bottom-center) or a
// literal "x,y" percent pair.
func parsePlacement(s string) (banner.PlacementPercent, error) {
	if !strings.Contains(s, ",") {
		return banner.PlacementFor(s)
	}
	parts := strings.SplitN(s, ",", 2)
	x, errX := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errX != nil || errY != nil {
		return banner.PlacementPercent{}, errors.New(errors.ErrCodeInvalidInput,
			"invalid placement %q (use a name like 'bottom-center' or 'x,y' percents)", s)
	}
	return banner.PlacementPercent{X: x, Y: y}.Clamp(), nil
}

// buildScene assembles the scene from the scene file, template, saved
// banner, and flag overrides, in that precedence order.
func buildScene(ctx context.Context, flags *rootFlags, cfg *Config, sceneFile string, opts *exportOpts) (*banner.Scene, error) {
	var scene *banner.Scene

	switch {
	case sceneFile != "":
		data, err := os.ReadFile(sceneFile)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read scene file")
		}
		scene = &banner.Scene{}
		if err := json.Unmarshal(data, scene); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse scene file")
		}
	case opts.template != "":
		tpl, ok := banner.TemplateByID(opts.template)
		if !ok {
			return nil, errors.New(errors.ErrCodeNotFound, "unknown template: %q", opts.template)
		}
		s := tpl.Scene
		scene = &s
	case opts.banner != "":
		st, err := openStore(ctx, cfg, loggerFromContext(ctx))
		if err != nil {
			return nil, err
		}
		defer st.Close(ctx)
		rec, err := st.Get(ctx, opts.banner)
		if err != nil {
			return nil, err
		}
		scene = &rec.Scene
	default:
		canvas, err := banner.PresetCanvas(opts.preset, banner.CanvasSpec{Width: opts.width, Height: opts.height})
		if err != nil {
			return nil, err
		}
		scene = &banner.Scene{Canvas: canvas}
	}

	return scene, applyOverrides(scene, opts)
}

// applyOverrides layers flag values over the scene.
func applyOverrides(scene *banner.Scene, opts *exportOpts) error {
	if opts.background != "" {
		ref, err := banner.ParseImageRef(opts.background)
		if err != nil {
			return err
		}
		scene.Background = &ref
	}

	if opts.logo != "" {
		ref, err := banner.ParseImageRef(opts.logo)
		if err != nil {
			return err
		}
		scene.Logo = &banner.LogoLayer{
			Image:       ref,
			Position:    banner.PlacementPercent{X: 50, Y: 50},
			SizePercent: opts.logoSize,
		}
	}
	if opts.logoPos != "" {
		if scene.Logo == nil {
			return errors.New(errors.ErrCodeInvalidInput, "--logo-pos requires a logo layer")
		}
		pos, err := parsePlacement(opts.logoPos)
		if err != nil {
			return err
		}
		scene.Logo.Position = pos
	}

	if opts.text != "" {
		if scene.Text == nil {
			scene.Text = &banner.TextLayer{
				Position: banner.PlacementPercent{X: 50, Y: 50},
				Style:    banner.DefaultTextStyle(),
				Effects:  banner.DefaultTextEffects(),
			}
		}
		scene.Text.Content = opts.text
	}
	if scene.Text != nil {
		if opts.font != "" {
			scene.Text.Style.FontFamily = opts.font
		}
		if opts.fontSize > 0 {
			scene.Text.Style.SizePx = opts.fontSize
		}
		if opts.color != "" {
			scene.Text.Style.ColorHex = opts.color
		}
		if opts.textPos != "" {
			pos, err := parsePlacement(opts.textPos)
			if err != nil {
				return err
			}
			scene.Text.Position = pos
		}
		if opts.noShadow {
			scene.Text.Effects.Shadow.Enabled = false
		}
	}

	return nil
}

// runExport builds the scene, runs the pipeline for each format, and
// writes the artifacts to disk.
func runExport(ctx context.Context, flags *rootFlags, sceneFile string, opts *exportOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig(flags.configPath)
	if err != nil {
		return err
	}

	scene, err := buildScene(ctx, flags, cfg, sceneFile, opts)
	if err != nil {
		return err
	}
	if scene.HasText() && scene.Background == nil {
		printWarning("scene has no background layer; headline text will not render")
	}

	c, err := openCache(ctx, cfg, opts.noCache, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	fonts := fontpack.New(cfg.Fonts, logger)
	exporter := export.New(fonts, c, nil, logger)
	fetcher := inline.NewFetcher(nil, fetchTimeout(cfg), c, exporter.Keyer)
	exporter.Inliner = inline.New(fetcher, fonts, logger)

	prog := newProgress(logger)
	spin := newSpinner(ctx, "rendering banner")
	if !flags.verbose {
		spin.Start()
	}

	results, err := exporter.ExecuteAll(ctx, export.Options{
		Scene:   *scene,
		Tier:    opts.tier,
		Refresh: opts.refresh,
		Logger:  logger,
	}, opts.formats)
	if !flags.verbose {
		spin.Stop()
	}
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	if flags.verbose {
		prog.done("export complete")
	}

	printSuccess("Exported %d %s banner(s)", len(opts.formats), opts.tier)
	for _, format := range opts.formats {
		res := results[format]
		path, err := outputPath(opts.output, res.Filename, len(opts.formats) > 1)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, res.Artifact, 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
		}
		printArtifact(path, res.Width, res.Height, len(res.Artifact), res.CacheInfo.ArtifactHit)
	}
	return nil
}

// outputPath decides where one artifact lands. With multiple formats the
// --output flag names a directory; with one it names the file directly.
func outputPath(output, suggested string, multi bool) (string, error) {
	if output == "" {
		return suggested, nil
	}
	if multi {
		if err := os.MkdirAll(output, 0o755); err != nil {
			return "", errors.Wrap(errors.ErrCodeInternal, err, "create output dir")
		}
		return filepath.Join(output, suggested), nil
	}
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		return filepath.Join(output, suggested), nil
	}
	return output, nil
}
