package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/bannerforge/bannerforge/pkg/errors"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
// This is typically called by the main package during initialization with
// values injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// rootFlags holds the persistent flags shared by all commands.
type rootFlags struct {
	verbose    bool
	configPath string
}

// Execute runs the bannerforge CLI and returns an error if any command fails.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the CLI with an externally supplied context, so the
// caller can wire signal handling.
func ExecuteContext(ctx context.Context) error {
	var flags rootFlags

	root := &cobra.Command{
		Use:           "bannerforge",
		Short:         "Bannerforge composites and exports social banner images",
		Long:          `Bannerforge is a CLI tool for compositing banner scenes (background, logo, headline text) and exporting them as PNG, JPEG, or PDF at preset social-media dimensions.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if flags.verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("bannerforge %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default ~/.config/bannerforge/config.toml)")

	root.AddCommand(newExportCmd(&flags))
	root.AddCommand(newPresetsCmd())
	root.AddCommand(newTemplatesCmd())
	root.AddCommand(newBannersCmd(&flags))
	root.AddCommand(newFontsCmd(&flags))
	root.AddCommand(newCacheCmd(&flags))
	root.AddCommand(newServeCmd(&flags))
	root.AddCommand(newCompletionCmd())

	if err := root.ExecuteContext(ctx); err != nil {
		if !stderrors.Is(err, context.Canceled) {
			printError("%s", errors.UserMessage(err))
		}
		return err
	}
	return nil
}
