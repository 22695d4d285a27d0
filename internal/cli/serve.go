package cli

import (
	"github.com/spf13/cobra"

	"github.com/bannerforge/bannerforge/internal/server"
	"github.com/bannerforge/bannerforge/pkg/export"
	"github.com/bannerforge/bannerforge/pkg/fontpack"
	"github.com/bannerforge/bannerforge/pkg/inline"
)

// newServeCmd creates the serve command running the HTTP API.
func newServeCmd(flags *rootFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the bannerforge HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := loadConfig(flags.configPath)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Serve.Addr
			}

			c, err := openCache(ctx, cfg, false, logger)
			if err != nil {
				return err
			}
			defer c.Close()

			st, err := openStore(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			fonts := fontpack.New(cfg.Fonts, logger)
			exporter := export.New(fonts, c, nil, logger)
			fetcher := inline.NewFetcher(nil, fetchTimeout(cfg), c, exporter.Keyer)
			exporter.Inliner = inline.New(fetcher, fonts, logger)

			srv := server.New(server.Config{Addr: addr}, exporter, st, logger)
			return srv.Start(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080 or [server] addr from config)")
	return cmd
}
