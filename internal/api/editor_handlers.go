package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/skotter-marq/video-editor-agent/internal/editor"
	"github.com/skotter-marq/video-editor-agent/internal/gesture"
	"github.com/skotter-marq/video-editor-agent/internal/timeline"
)

func getProjectHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, ProjectResponse{Project: cfg.Engine.Project()})
	}
}

func newProjectHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req NewProjectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		if req.Name == "" {
			req.Name = "Untitled Project"
		}
		if req.Width <= 0 || req.Height <= 0 {
			req.Width, req.Height = 1920, 1080
		}
		if req.AspectRatio == "" {
			req.AspectRatio = timeline.AspectWide
		}

		p := cfg.Engine.NewProject(req.Name, req.Width, req.Height, req.AspectRatio)
		WriteJSON(w, http.StatusCreated, ProjectResponse{Project: p})
	}
}

func addClipHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AddClipRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		if req.SourceID == "" {
			WriteError(w, http.StatusBadRequest, "source_id is required", "BAD_REQUEST")
			return
		}

		clip, err := cfg.Engine.AddClip(r.Context(), req.SourceID, req.At)
		if err != nil {
			if errors.Is(err, editor.ErrMissingSource) {
				WriteError(w, http.StatusUnprocessableEntity, err.Error(), "MISSING_SOURCE")
				return
			}
			WriteError(w, http.StatusInternalServerError, "failed to add clip", "INTERNAL_ERROR")
			return
		}
		WriteJSON(w, http.StatusCreated, ClipResponse{Clip: clip})
	}
}

func removeClipHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !cfg.Engine.RemoveClip(chi.URLParam(r, "id")) {
			WriteError(w, http.StatusNotFound, "clip not found", "NOT_FOUND")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func propertyEditHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var edit editor.PropertyEdit
		if err := json.NewDecoder(r.Body).Decode(&edit); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		if err := cfg.Engine.ApplyPropertyEdit(chi.URLParam(r, "id"), edit); err != nil {
			if errors.Is(err, editor.ErrClipNotFound) {
				WriteError(w, http.StatusNotFound, "clip not found", "NOT_FOUND")
				return
			}
			WriteError(w, http.StatusInternalServerError, "failed to apply edit", "INTERNAL_ERROR")
			return
		}
		WriteJSON(w, http.StatusOK, ProjectResponse{Project: cfg.Engine.Project()})
	}
}

func beginGestureHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BeginGestureRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		mode, ok := parseMode(req.Mode)
		if !ok {
			WriteError(w, http.StatusBadRequest, "unknown gesture mode", "BAD_REQUEST")
			return
		}

		accepted := cfg.Engine.BeginGesture(req.ClipID, mode, req.PointerTime)
		WriteJSON(w, http.StatusOK, GestureResponse{Accepted: accepted})
	}
}

func updateGestureHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpdateGestureRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		cfg.Engine.UpdateGesture(req.PointerTime)
		w.WriteHeader(http.StatusNoContent)
	}
}

func commitGestureHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg.Engine.CommitGesture()
		WriteJSON(w, http.StatusOK, ProjectResponse{Project: cfg.Engine.Project()})
	}
}

func cancelGestureHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg.Engine.CancelGesture()
		WriteJSON(w, http.StatusOK, ProjectResponse{Project: cfg.Engine.Project()})
	}
}

func hitTestHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req HitTestRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		clip := cfg.Engine.Project().Clip(req.ClipID)
		if clip == nil {
			WriteError(w, http.StatusNotFound, "clip not found", "NOT_FOUND")
			return
		}

		mode := gesture.HitTest(clip, cfg.Engine.Scale(), req.PixelX)
		WriteJSON(w, http.StatusOK, HitTestResponse{Mode: string(mode)})
	}
}

func undoHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		applied := cfg.Engine.Undo()
		WriteJSON(w, http.StatusOK, HistoryResponse{Applied: applied, Project: cfg.Engine.Project()})
	}
}

func redoHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		applied := cfg.Engine.Redo()
		WriteJSON(w, http.StatusOK, HistoryResponse{Applied: applied, Project: cfg.Engine.Project()})
	}
}

func playHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg.Engine.Play()
		st := cfg.Engine.Status()
		WriteJSON(w, http.StatusOK, TransportResponse{Playing: st.Playing, Playhead: st.Playhead})
	}
}

func pauseHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg.Engine.Pause()
		st := cfg.Engine.Status()
		WriteJSON(w, http.StatusOK, TransportResponse{Playing: st.Playing, Playhead: st.Playhead})
	}
}

func stopHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg.Engine.Stop()
		st := cfg.Engine.Status()
		WriteJSON(w, http.StatusOK, TransportResponse{Playing: st.Playing, Playhead: st.Playhead})
	}
}

func tickHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TickRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		cfg.Engine.Tick(req.Elapsed)
		st := cfg.Engine.Status()
		WriteJSON(w, http.StatusOK, TransportResponse{Playing: st.Playing, Playhead: st.Playhead})
	}
}

func zoomHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ZoomRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		WriteJSON(w, http.StatusOK, ZoomResponse{Zoom: cfg.Engine.SetZoom(req.Zoom)})
	}
}

func viewportHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ViewportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		cfg.Engine.SetViewport(req.Left, req.Width)
		w.WriteHeader(http.StatusNoContent)
	}
}
