// Package gesture implements the pointer interaction state machine: one
// gesture at a time, from press through moves to release, proposing clip
// mutations into a live copy that only becomes real on commit.
package gesture

import (
	"math"

	"github.com/skotter-marq/video-editor-agent/internal/timeline"
	"github.com/skotter-marq/video-editor-agent/internal/timescale"
)

// Mode identifies what a pointer-down grabbed.
type Mode string

const (
	ModeNone      Mode = "none"
	ModeTrimLeft  Mode = "trim-left"
	ModeTrimRight Mode = "trim-right"
	ModeMove      Mode = "move"
	ModeScrub     Mode = "scrub"
)

// HandleWidthPx is the grab zone, in rendered pixels, at each end of a clip
// that starts a trim instead of a move.
const HandleWidthPx = 8.0

// Epsilon thresholds below which a released gesture counts as a click, not an
// edit, and produces no history entry.
const (
	TimeEpsilon     = 0.01
	ValueEpsilon    = 0.01
	RotationEpsilon = 0.5
)

// State is one in-flight gesture. It exists only between begin and
// commit/cancel and is never persisted.
type State struct {
	Mode       Mode
	ClipID     string
	OriginTime float64

	// pre is the committed clip at gesture start; live accumulates validated
	// proposals. Scrub gestures carry playhead values instead.
	pre  *timeline.Clip
	live *timeline.Clip

	prePlayhead  float64
	livePlayhead float64
}

// HitTest decides the gesture mode for a pointer-down at pixelX over a clip
// rendered under the given scale. The outer HandleWidthPx on each side are
// trim handles; the body moves the clip. Returns ModeNone outside the clip.
func HitTest(c *timeline.Clip, scale timescale.Scale, pixelX float64) Mode {
	left := scale.TimeToPixel(c.TimelineStart)
	right := scale.TimeToPixel(c.TimelineEnd)
	if pixelX < left || pixelX > right {
		return ModeNone
	}
	if pixelX <= left+HandleWidthPx {
		return ModeTrimLeft
	}
	if pixelX >= right-HandleWidthPx {
		return ModeTrimRight
	}
	return ModeMove
}

// Begin starts a clip gesture. The clip is copied twice: once as the restore
// point and once as the live proposal target.
func Begin(mode Mode, c *timeline.Clip, pointerTime float64) *State {
	return &State{
		Mode:       mode,
		ClipID:     c.ID,
		OriginTime: pointerTime,
		pre:        c.Clone(),
		live:       c.Clone(),
	}
}

// BeginScrub starts a playhead gesture.
func BeginScrub(playhead, pointerTime float64) *State {
	return &State{
		Mode:         ModeScrub,
		OriginTime:   pointerTime,
		prePlayhead:  playhead,
		livePlayhead: playhead,
	}
}

// Update folds one pointer-move into the live proposal. The pointer position
// is already in timeline seconds; each mode derives its proposed value from
// the drag delta against the pre-gesture clip and runs it through the
// resolver. Rejected proposals leave the live copy at its last valid value.
func (s *State) Update(pointerTime float64) {
	delta := pointerTime - s.OriginTime
	switch s.Mode {
	case ModeTrimLeft:
		speed := s.pre.Audio.Speed
		s.live = timeline.ApplyTrimLeft(s.pre, s.pre.TrimStart+delta*speed)
	case ModeTrimRight:
		speed := s.pre.Audio.Speed
		s.live = timeline.ApplyTrimRight(s.pre, s.pre.TrimEnd+delta*speed)
	case ModeMove:
		s.live = timeline.ApplyMove(s.pre, s.pre.TimelineStart+delta)
	case ModeScrub:
		if pointerTime < 0 {
			pointerTime = 0
		}
		s.livePlayhead = pointerTime
	}
}

// Live returns the current proposed clip. Nil for scrub gestures.
func (s *State) Live() *timeline.Clip {
	return s.live
}

// Pre returns the clip as it was at gesture start. Nil for scrub gestures.
func (s *State) Pre() *timeline.Clip {
	return s.pre
}

// LivePlayhead returns the proposed playhead for a scrub gesture.
func (s *State) LivePlayhead() float64 {
	return s.livePlayhead
}

// PrePlayhead returns the playhead as it was when the scrub started.
func (s *State) PrePlayhead() float64 {
	return s.prePlayhead
}

// Changed reports whether the live proposal differs from the pre-gesture
// state by more than the click epsilons. A release inside the epsilons is an
// accidental micro-drag and must not pollute the undo stack.
func (s *State) Changed() bool {
	if s.Mode == ModeScrub {
		return math.Abs(s.livePlayhead-s.prePlayhead) > TimeEpsilon
	}
	if s.pre == nil || s.live == nil {
		return false
	}
	pre, live := s.pre, s.live
	switch {
	case math.Abs(live.TimelineStart-pre.TimelineStart) > TimeEpsilon,
		math.Abs(live.TimelineEnd-pre.TimelineEnd) > TimeEpsilon,
		math.Abs(live.TrimStart-pre.TrimStart) > TimeEpsilon,
		math.Abs(live.TrimEnd-pre.TrimEnd) > TimeEpsilon,
		math.Abs(live.Transform.X-pre.Transform.X) > ValueEpsilon,
		math.Abs(live.Transform.Y-pre.Transform.Y) > ValueEpsilon,
		math.Abs(live.Transform.Scale-pre.Transform.Scale) > ValueEpsilon,
		math.Abs(live.Transform.Rotation-pre.Transform.Rotation) > RotationEpsilon:
		return true
	}
	return false
}

// ScrollDelta computes the horizontal auto-scroll, in pixels, the owning
// viewport should apply while a scrub drags the playhead toward an edge.
// Inside the margin-inset safe region the delta is 0; past an edge it grows
// proportionally to the overshoot. The core only emits the delta; the
// viewport itself belongs to the renderer.
func ScrollDelta(playheadPx, viewportLeft, viewportWidth, margin float64) float64 {
	if viewportWidth <= 0 {
		return 0
	}
	leftEdge := viewportLeft + margin
	rightEdge := viewportLeft + viewportWidth - margin
	switch {
	case playheadPx < leftEdge:
		return playheadPx - leftEdge
	case playheadPx > rightEdge:
		return playheadPx - rightEdge
	}
	return 0
}
