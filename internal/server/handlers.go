package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bannerforge/bannerforge/pkg/banner"
	"github.com/bannerforge/bannerforge/pkg/errors"
	"github.com/bannerforge/bannerforge/pkg/export"
	"github.com/bannerforge/bannerforge/pkg/store"
)

// exportRequest is the POST /api/export body.
type exportRequest struct {
	Scene   banner.Scene `json:"scene"`
	Format  string       `json:"format,omitempty"`
	Tier    string       `json:"tier,omitempty"`
	Refresh bool         `json:"refresh,omitempty"`
}

// handleExport renders a scene and streams the artifact back as a download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse request body"))
		return
	}
	s.runExport(w, r, req)
}

func (s *Server) runExport(w http.ResponseWriter, r *http.Request, req exportRequest) {
	result, err := s.exporter.Execute(r.Context(), export.Options{
		Scene:   req.Scene,
		Format:  req.Format,
		Tier:    req.Tier,
		Refresh: req.Refresh,
		Logger:  s.logger,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", result.MIMEType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.Header().Set("X-Scene-Hash", result.SceneHash)
	if result.CacheInfo.ArtifactHit {
		w.Header().Set("X-Cache", "hit")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifact)
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, banner.Presets())
}

func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, banner.Templates())
}

func (s *Server) handleFonts(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, banner.FontCatalog())
}

func (s *Server) handlePlacements(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, banner.PlacementNames())
}

// bannerRequest is the POST/PUT banner body.
type bannerRequest struct {
	Name    string       `json:"name,omitempty"`
	OwnerID string       `json:"ownerId,omitempty"`
	Scene   banner.Scene `json:"scene"`
}

func (s *Server) handleBannerCreate(w http.ResponseWriter, r *http.Request) {
	var req bannerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse request body"))
		return
	}
	rec := store.NewRecord(req.OwnerID, req.Scene)
	rec.Name = req.Name
	if err := s.store.Create(r.Context(), rec); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, rec)
}

func (s *Server) handleBannerList(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.List(r.Context(), r.URL.Query().Get("owner"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, recs)
}

func (s *Server) handleBannerGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, rec)
}

func (s *Server) handleBannerUpdate(w http.ResponseWriter, r *http.Request) {
	var req bannerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse request body"))
		return
	}
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	if req.Name != "" {
		rec.Name = req.Name
	}
	rec.Scene = req.Scene
	if err := s.store.Update(r.Context(), rec); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, rec)
}

func (s *Server) handleBannerDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// placementRequest moves one layer of a saved banner to a named placement.
type placementRequest struct {
	// Target is "text" or "logo".
	Target string `json:"target"`

	// Placement is a named placement, e.g. "bottom-center".
	Placement string `json:"placement"`
}

func (s *Server) handleBannerPlacement(w http.ResponseWriter, r *http.Request) {
	var req placementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse request body"))
		return
	}

	pos, err := banner.PlacementFor(req.Placement)
	if err != nil {
		respondError(w, r, err)
		return
	}

	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	switch req.Target {
	case "text":
		if rec.Scene.Text == nil {
			respondError(w, r, errors.New(errors.ErrCodeInvalidInput, "banner has no text layer"))
			return
		}
		rec.Scene.Text.Position = pos
	case "logo":
		if rec.Scene.Logo == nil {
			respondError(w, r, errors.New(errors.ErrCodeInvalidInput, "banner has no logo layer"))
			return
		}
		rec.Scene.Logo.Position = pos
	default:
		respondError(w, r, errors.New(errors.ErrCodeInvalidInput,
			"invalid target: %q (must be 'text' or 'logo')", req.Target))
		return
	}

	if err := s.store.Update(r.Context(), rec); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, rec)
}

// handleBannerExport renders a saved banner. Format and tier come from
// query parameters.
func (s *Server) handleBannerExport(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	q := r.URL.Query()
	s.runExport(w, r, exportRequest{
		Scene:   rec.Scene,
		Format:  q.Get("format"),
		Tier:    q.Get("tier"),
		Refresh: q.Get("refresh") == "true",
	})
}
