package api

import (
	"time"

	"github.com/skotter-marq/video-editor-agent/internal/gesture"
	"github.com/skotter-marq/video-editor-agent/internal/media"
	"github.com/skotter-marq/video-editor-agent/internal/timeline"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	UptimeS int64  `json:"uptime_s"`
}

type StatusResponse struct {
	ProjectName string  `json:"project_name"`
	ClipCount   int     `json:"clip_count"`
	AssetCount  int     `json:"asset_count"`
	Playing     bool    `json:"playing"`
	Playhead    float64 `json:"playhead"`
	Duration    float64 `json:"duration"`
	Zoom        float64 `json:"zoom"`
	CanUndo     bool    `json:"can_undo"`
	CanRedo     bool    `json:"can_redo"`
}

type RegisterAssetRequest struct {
	Name         string  `json:"name"`
	Path         string  `json:"path,omitempty"`
	ThumbnailURL string  `json:"thumbnail_url,omitempty"`
	Duration     float64 `json:"duration"`
}

type AssetResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Path         string  `json:"path,omitempty"`
	ThumbnailURL string  `json:"thumbnail_url,omitempty"`
	Duration     float64 `json:"duration"`
	Size         int64   `json:"size,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

type AssetsResponse struct {
	Assets []AssetResponse `json:"assets"`
}

type NewProjectRequest struct {
	Name        string `json:"name"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	AspectRatio string `json:"aspect_ratio"`
}

type ProjectResponse struct {
	Project *timeline.Project `json:"project"`
}

type AddClipRequest struct {
	SourceID string  `json:"source_id"`
	At       float64 `json:"at"`
}

type ClipResponse struct {
	Clip *timeline.Clip `json:"clip"`
}

type BeginGestureRequest struct {
	ClipID      string  `json:"clip_id,omitempty"`
	Mode        string  `json:"mode"`
	PointerTime float64 `json:"pointer_time"`
}

type UpdateGestureRequest struct {
	PointerTime float64 `json:"pointer_time"`
}

type GestureResponse struct {
	Accepted bool `json:"accepted"`
}

type HitTestRequest struct {
	ClipID string  `json:"clip_id"`
	PixelX float64 `json:"pixel_x"`
}

type HitTestResponse struct {
	Mode string `json:"mode"`
}

type HistoryResponse struct {
	Applied bool              `json:"applied"`
	Project *timeline.Project `json:"project"`
}

type TickRequest struct {
	Elapsed float64 `json:"elapsed"`
}

type TransportResponse struct {
	Playing  bool    `json:"playing"`
	Playhead float64 `json:"playhead"`
}

type ZoomRequest struct {
	Zoom float64 `json:"zoom"`
}

type ZoomResponse struct {
	Zoom float64 `json:"zoom"`
}

type ViewportRequest struct {
	Left  float64 `json:"left"`
	Width float64 `json:"width"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func AssetToResponse(a *media.Asset) AssetResponse {
	return AssetResponse{
		ID:           a.ID,
		Name:         a.Name,
		Path:         a.Path,
		ThumbnailURL: a.ThumbnailURL,
		Duration:     a.Duration,
		Size:         a.Size,
		CreatedAt:    a.CreatedAt.Format(time.RFC3339),
	}
}

// parseMode maps the wire mode to the gesture mode, rejecting anything the
// state machine does not recognize.
func parseMode(s string) (gesture.Mode, bool) {
	switch gesture.Mode(s) {
	case gesture.ModeTrimLeft, gesture.ModeTrimRight, gesture.ModeMove, gesture.ModeScrub:
		return gesture.Mode(s), true
	}
	return gesture.ModeNone, false
}
