// Package media is the asset library backing the editor: the registry of
// uploaded source videos whose duration, thumbnail and file location the
// timeline engine reads but never owns.
package media

import (
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a referenced asset is no longer registered.
// The engine treats such references as zero-duration and rejects placement.
var ErrNotFound = errors.New("media asset not found")

// Asset is one registered source video. Duration is reported by the
// registering uploader (the browser reads it off the video element); the
// agent never decodes media.
type Asset struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Path         string    `json:"path,omitempty"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	Duration     float64   `json:"duration"`
	Size         int64     `json:"size,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewID() string {
	return uuid.NewString()
}

var videoExtensions = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".mkv":  true,
	".webm": true,
}

// IsVideoFile reports whether the filename carries a supported video
// extension.
func IsVideoFile(filename string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(filename))]
}
