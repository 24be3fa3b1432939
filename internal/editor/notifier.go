package editor

import "github.com/skotter-marq/video-editor-agent/internal/timeline"

// Notifier is the renderer collaborator. The engine pushes state changes out
// through it; it never reads anything back.
type Notifier interface {
	// OnProjectChanged fires after every committed mutation, undo and redo.
	// The project is a snapshot the receiver may keep.
	OnProjectChanged(p *timeline.Project)
	// OnPlayheadChanged fires on every tick and scrub move.
	OnPlayheadChanged(seconds float64)
	// OnAutoScroll asks the viewport owner to shift its horizontal scroll by
	// the given pixel delta while a scrub drags past the visible edge.
	OnAutoScroll(deltaPixels float64)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) OnProjectChanged(*timeline.Project) {}
func (NopNotifier) OnPlayheadChanged(float64)          {}
func (NopNotifier) OnAutoScroll(float64)               {}
