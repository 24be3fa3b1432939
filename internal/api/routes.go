package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/skotter-marq/video-editor-agent/internal/config"
	"github.com/skotter-marq/video-editor-agent/internal/media"
)

func NewRouter(cfg ServerConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware())
	r.Use(RecoveryMiddleware(cfg.Logger))
	r.Use(CORSMiddleware())
	r.Use(LoggingMiddleware(cfg.Logger))

	r.Get("/health", healthHandler(cfg))

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(cfg.Repository, cfg.Logger))

		r.Get("/status", statusHandler(cfg))

		r.Get("/media", listAssetsHandler(cfg))
		r.Post("/media", registerAssetHandler(cfg))
		r.Delete("/media/{id}", deleteAssetHandler(cfg))
		r.Get("/media/{id}/stream", streamAssetHandler(cfg))

		r.Get("/project", getProjectHandler(cfg))
		r.Post("/project", newProjectHandler(cfg))
		r.Post("/project/clips", addClipHandler(cfg))
		r.Delete("/project/clips/{id}", removeClipHandler(cfg))
		r.Patch("/project/clips/{id}", propertyEditHandler(cfg))
		r.Get("/project/export/edl", exportEDLHandler(cfg))

		r.Post("/gesture/begin", beginGestureHandler(cfg))
		r.Post("/gesture/update", updateGestureHandler(cfg))
		r.Post("/gesture/commit", commitGestureHandler(cfg))
		r.Post("/gesture/cancel", cancelGestureHandler(cfg))
		r.Post("/gesture/hittest", hitTestHandler(cfg))

		r.Post("/history/undo", undoHandler(cfg))
		r.Post("/history/redo", redoHandler(cfg))

		r.Post("/playback/play", playHandler(cfg))
		r.Post("/playback/pause", pauseHandler(cfg))
		r.Post("/playback/stop", stopHandler(cfg))
		r.Post("/playback/tick", tickHandler(cfg))

		r.Put("/zoom", zoomHandler(cfg))
		r.Put("/viewport", viewportHandler(cfg))
	})

	return r
}

func healthHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uptime := int64(time.Since(cfg.StartTime).Seconds())
		WriteJSON(w, http.StatusOK, HealthResponse{
			Status:  "ok",
			Version: config.Version,
			UptimeS: uptime,
		})
	}
}

func statusHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st := cfg.Engine.Status()

		assetCount, err := cfg.Library.Count(r.Context())
		if err != nil {
			assetCount = 0
		}

		WriteJSON(w, http.StatusOK, StatusResponse{
			ProjectName: st.ProjectName,
			ClipCount:   st.ClipCount,
			AssetCount:  assetCount,
			Playing:     st.Playing,
			Playhead:    st.Playhead,
			Duration:    st.Duration,
			Zoom:        st.Zoom,
			CanUndo:     st.CanUndo,
			CanRedo:     st.CanRedo,
		})
	}
}

func listAssetsHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assets, err := cfg.Library.Assets(r.Context())
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to list assets", "INTERNAL_ERROR")
			return
		}

		resp := AssetsResponse{Assets: make([]AssetResponse, len(assets))}
		for i, a := range assets {
			resp.Assets[i] = AssetToResponse(a)
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

func registerAssetHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterAssetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		if req.Name == "" {
			WriteError(w, http.StatusBadRequest, "name is required", "BAD_REQUEST")
			return
		}
		if req.Duration <= 0 {
			WriteError(w, http.StatusBadRequest, "duration must be positive", "BAD_REQUEST")
			return
		}

		asset, err := cfg.Library.Register(r.Context(), media.RegisterRequest{
			Name:         req.Name,
			Path:         req.Path,
			ThumbnailURL: req.ThumbnailURL,
			Duration:     req.Duration,
		})
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
			return
		}
		WriteJSON(w, http.StatusCreated, AssetToResponse(asset))
	}
}

func deleteAssetHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		if err := cfg.Library.Remove(r.Context(), id); err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to remove asset", "INTERNAL_ERROR")
			return
		}
		// Clips that referenced the asset stay on the timeline but are
		// flagged; placement gestures on them will be refused.
		cfg.Engine.FlagMissingSource(id)
		w.WriteHeader(http.StatusNoContent)
	}
}

func streamAssetHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		asset, err := cfg.Library.Lookup(r.Context(), id)
		if err != nil {
			if errors.Is(err, media.ErrNotFound) {
				WriteError(w, http.StatusNotFound, "asset not found", "NOT_FOUND")
				return
			}
			WriteError(w, http.StatusInternalServerError, "failed to look up asset", "INTERNAL_ERROR")
			return
		}
		if asset.Path == "" {
			WriteError(w, http.StatusNotFound, "asset has no local file", "NOT_FOUND")
			return
		}

		if err := cfg.Streamer.ServeFile(w, r, asset.Path); err != nil {
			cfg.Logger.Error("failed to stream asset", "asset_id", id, "error", err)
		}
	}
}
