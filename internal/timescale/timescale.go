// Package timescale converts between timeline seconds and ruler pixels under
// a variable zoom factor. All functions are pure and cheap enough to call on
// every pointer-move event.
package timescale

// Zoom bounds exposed by the zoom slider (25%–175%).
const (
	MinZoom = 0.25
	MaxZoom = 1.75
)

// DefaultPixelsPerSecond is the ruler scale at 100% zoom.
const DefaultPixelsPerSecond = 50.0

// Scale maps timeline seconds to ruler pixels.
type Scale struct {
	PixelsPerSecond float64
	Zoom            float64
}

// New returns a scale with the zoom clamped into [MinZoom, MaxZoom].
func New(pixelsPerSecond, zoom float64) Scale {
	if pixelsPerSecond <= 0 {
		pixelsPerSecond = DefaultPixelsPerSecond
	}
	return Scale{PixelsPerSecond: pixelsPerSecond, Zoom: ClampZoom(zoom)}
}

// TimeToPixel converts a timeline offset in seconds to a ruler pixel offset.
func (s Scale) TimeToPixel(t float64) float64 {
	return t * s.PixelsPerSecond * s.Zoom
}

// PixelToTime converts a ruler pixel offset back to timeline seconds. Exact
// inverse of TimeToPixel to within 1e-9 for any t >= 0.
func (s Scale) PixelToTime(p float64) float64 {
	return p / (s.PixelsPerSecond * s.Zoom)
}

// ClampZoom forces a zoom factor into [MinZoom, MaxZoom].
func ClampZoom(zoom float64) float64 {
	if zoom < MinZoom {
		return MinZoom
	}
	if zoom > MaxZoom {
		return MaxZoom
	}
	return zoom
}
