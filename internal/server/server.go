// Package server implements the bannerforge HTTP API.
//
// Routes:
//
//	POST /api/export                 render a scene and download the artifact
//	GET  /api/presets                canvas preset table
//	GET  /api/templates              starter template catalog
//	GET  /api/fonts                  font catalog
//	GET  /api/placements             named placement table
//	POST /api/banners                save a scene
//	GET  /api/banners                list saved banners
//	GET  /api/banners/{id}           fetch one saved banner
//	PUT  /api/banners/{id}           replace a saved banner
//	DELETE /api/banners/{id}         delete a saved banner
//	POST /api/banners/{id}/placements  move a layer to a named placement
//	POST /api/banners/{id}/export    render a saved banner
//	GET  /healthz                    liveness probe
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bannerforge/bannerforge/pkg/export"
	"github.com/bannerforge/bannerforge/pkg/store"
)

// Config holds server settings.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// ShutdownTimeout bounds graceful shutdown. Defaults to 10s.
	ShutdownTimeout time.Duration
}

// Server wires the export pipeline and banner store behind a chi router.
type Server struct {
	cfg      Config
	exporter *export.Exporter
	store    store.Store
	logger   *log.Logger
}

// New creates a server. The exporter and store are required; a nil logger
// falls back to log.Default().
func New(cfg Config, exporter *export.Exporter, st store.Store, logger *log.Logger) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{cfg: cfg, exporter: exporter, store: st, logger: logger}
}

// Router builds the chi router with all routes registered.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/export", s.handleExport)
		r.Get("/presets", s.handlePresets)
		r.Get("/templates", s.handleTemplates)
		r.Get("/fonts", s.handleFonts)
		r.Get("/placements", s.handlePlacements)

		r.Route("/banners", func(r chi.Router) {
			r.Post("/", s.handleBannerCreate)
			r.Get("/", s.handleBannerList)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleBannerGet)
				r.Put("/", s.handleBannerUpdate)
				r.Delete("/", s.handleBannerDelete)
				r.Post("/placements", s.handleBannerPlacement)
				r.Post("/export", s.handleBannerExport)
			})
		})
	})

	return r
}

// Start runs the HTTP server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// requestLogger logs one line per request with status and duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Millisecond))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
