// Package export turns the in-memory timeline into a CMX3600 cut list the
// user can carry into an NLE. Text only; no media is touched.
package export

// Event is one timeline clip resolved against the media library, ready to be
// written as an EDL event.
type Event struct {
	ClipName  string
	MediaPath string

	// Source in/out: the clip's trim window, in milliseconds into the asset.
	SourceInMs  int
	SourceOutMs int

	// Record in/out: the clip's placement, in milliseconds on the timeline.
	RecordInMs  int
	RecordOutMs int

	// Speed is the playback rate; values other than 1 emit an M2 motion memo.
	Speed float64
}
