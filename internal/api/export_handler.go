package api

import (
	"net/http"

	"github.com/skotter-marq/video-editor-agent/internal/export"
)

// exportEDLHandler renders the current project as a CMX3600 EDL. The cut
// list is returned in the response body; writing it to disk is the caller's
// business.
func exportEDLHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project := cfg.Engine.Project()
		if len(project.Clips) == 0 {
			WriteError(w, http.StatusUnprocessableEntity, "project has no clips", "EMPTY_PROJECT")
			return
		}

		events := export.FromProject(project, func(sourceID string) string {
			asset, err := cfg.Library.Lookup(r.Context(), sourceID)
			if err != nil || asset == nil {
				return ""
			}
			return asset.Path
		})

		title := export.SanitizeName(project.Name, 120)
		if title == "" {
			title = "timeline_export"
		}
		frameRate := cfg.FrameRate
		if frameRate <= 0 {
			frameRate = 30.0
		}

		edl := export.GenerateEDL(events, title, frameRate)

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+title+`.edl"`)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(edl))
	}
}
