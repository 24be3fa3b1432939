// Package editor is the timeline edit state and history engine: the single
// live project, the one-at-a-time pointer gesture, the undo/redo stacks and
// the playback clock, behind the operations the UI collaborators call.
package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/skotter-marq/video-editor-agent/internal/gesture"
	"github.com/skotter-marq/video-editor-agent/internal/history"
	"github.com/skotter-marq/video-editor-agent/internal/media"
	"github.com/skotter-marq/video-editor-agent/internal/playback"
	"github.com/skotter-marq/video-editor-agent/internal/timeline"
	"github.com/skotter-marq/video-editor-agent/internal/timescale"
)

var (
	// ErrMissingSource is returned when a clip references an asset the media
	// library no longer has.
	ErrMissingSource = errors.New("source asset missing")
	// ErrClipNotFound is returned for operations naming an unknown clip.
	ErrClipNotFound = errors.New("clip not found")
)

// AutoScrollMargin is how close, in pixels, the scrubbed playhead may get to
// a viewport edge before the engine asks the renderer to scroll.
const AutoScrollMargin = 40.0

// Options tunes the engine; zero values fall back to package defaults.
type Options struct {
	HistoryDepth    int
	PixelsPerSecond float64
	Library         media.Library
	Notifier        Notifier
	Logger          *slog.Logger
}

// Engine owns the live project and serializes every event handler under one
// mutex: each pointer move, tick, panel edit or undo runs to completion
// before the next, which is what makes the gesture and history invariants
// hold without finer locking.
type Engine struct {
	mu sync.Mutex

	project *timeline.Project
	gest    *gesture.State
	hist    *history.History
	clock   *playback.Clock
	zoom    float64

	pixelsPerSecond float64
	viewportLeft    float64
	viewportWidth   float64

	library  media.Library
	notifier Notifier
	logger   *slog.Logger
}

// Status is the engine summary shown by the status endpoint and the tray.
type Status struct {
	ProjectName string  `json:"project_name"`
	ClipCount   int     `json:"clip_count"`
	Playing     bool    `json:"playing"`
	Playhead    float64 `json:"playhead"`
	Duration    float64 `json:"duration"`
	Zoom        float64 `json:"zoom"`
	CanUndo     bool    `json:"can_undo"`
	CanRedo     bool    `json:"can_redo"`
}

func New(opts Options) *Engine {
	pps := opts.PixelsPerSecond
	if pps <= 0 {
		pps = timescale.DefaultPixelsPerSecond
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Engine{
		project:         timeline.NewProject("Untitled Project", 1920, 1080, timeline.AspectWide),
		hist:            history.New(opts.HistoryDepth),
		clock:           playback.NewClock(),
		zoom:            1.0,
		pixelsPerSecond: pps,
		library:         opts.Library,
		notifier:        notifier,
		logger:          opts.Logger,
	}
}

// NewProject replaces the live project with an empty one and resets history,
// gesture and transport. Destroying the previous project is an explicit user
// action, so there is nothing to undo back into.
func (e *Engine) NewProject(name string, width, height int, aspect string) *timeline.Project {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.project = timeline.NewProject(name, width, height, aspect)
	e.hist = history.New(e.hist.Depth())
	e.gest = nil
	e.clock.Stop()

	if e.logger != nil {
		e.logger.Info("project created", "project_id", e.project.ID, "name", name, "aspect", aspect)
	}
	e.notifyProject()
	return e.project.Clone()
}

// Project returns a snapshot of the live project.
func (e *Engine) Project() *timeline.Project {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.project.Clone()
}

func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Status{
		ProjectName: e.project.Name,
		ClipCount:   len(e.project.Clips),
		Playing:     e.clock.Playing(),
		Playhead:    e.project.Playhead,
		Duration:    e.project.Duration(),
		Zoom:        e.zoom,
		CanUndo:     e.hist.CanUndo(),
		CanRedo:     e.hist.CanRedo(),
	}
}

// AddClip places the full extent of a library asset at the given timeline
// offset. An unknown or zero-duration asset rejects the placement with
// ErrMissingSource.
func (e *Engine) AddClip(ctx context.Context, sourceID string, at float64) (*timeline.Clip, error) {
	asset, err := e.library.Lookup(ctx, sourceID)
	if err != nil {
		if errors.Is(err, media.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrMissingSource, sourceID)
		}
		return nil, err
	}
	if asset.Duration <= 0 {
		return nil, fmt.Errorf("%w: %s has no duration", ErrMissingSource, sourceID)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	clip := timeline.NewClip(sourceID, asset.Name, asset.Duration, at)
	e.hist.Commit(e.project)
	e.project.AddClip(clip)

	if e.logger != nil {
		e.logger.Info("clip added", "clip_id", clip.ID, "source_id", sourceID, "at", at)
	}
	e.notifyProject()
	return clip.Clone(), nil
}

// RemoveClip deletes a clip, reporting whether it existed.
func (e *Engine) RemoveClip(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.project.Clip(id) == nil {
		return false
	}
	e.hist.Commit(e.project)
	e.project.RemoveClip(id)
	e.project.ClampPlayhead()
	e.notifyProject()
	return true
}

// FlagMissingSource marks every clip referencing the given asset as missing.
// The clips stay on the timeline; only placement gestures on them are
// refused. Not an edit, so nothing is committed to history.
func (e *Engine) FlagMissingSource(sourceID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	changed := false
	for _, c := range e.project.Clips {
		if c.SourceID == sourceID && !c.Missing {
			c.Missing = true
			changed = true
		}
	}
	if changed {
		e.notifyProject()
	}
}

// BeginGesture starts a pointer gesture. A begin while another gesture is
// active is ignored: the first gesture wins. Returns whether the gesture was
// accepted.
func (e *Engine) BeginGesture(clipID string, mode gesture.Mode, pointerTime float64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.gest != nil {
		return false
	}

	if mode == gesture.ModeScrub {
		// Scrubbing takes over the playhead; playback stops and stays
		// stopped until the user hits play again.
		e.clock.Stop()
		e.gest = gesture.BeginScrub(e.project.Playhead, pointerTime)
		e.applyScrub(pointerTime)
		return true
	}

	clip := e.project.Clip(clipID)
	if clip == nil || clip.Missing {
		return false
	}
	switch mode {
	case gesture.ModeTrimLeft, gesture.ModeTrimRight, gesture.ModeMove:
	default:
		return false
	}
	e.gest = gesture.Begin(mode, clip, pointerTime)
	return true
}

// UpdateGesture folds a pointer move into the active gesture. Clip proposals
// land in the gesture's live copy only; observers of the project see nothing
// until commit. Scrub moves are written through to the playhead immediately.
func (e *Engine) UpdateGesture(pointerTime float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.gest == nil {
		return
	}
	if e.gest.Mode == gesture.ModeScrub {
		e.applyScrub(pointerTime)
		return
	}
	e.gest.Update(pointerTime)
}

// CommitGesture ends the active gesture. A clip gesture that moved beyond
// the click epsilons snapshots the pre-gesture project and swaps in the live
// copy; within the epsilons it is discarded so accidental micro-drags never
// pollute the undo stack. Scrubs leave the playhead where it is; playhead
// motion is not an edit and is never recorded in history.
func (e *Engine) CommitGesture() {
	e.mu.Lock()
	defer e.mu.Unlock()

	g := e.gest
	e.gest = nil
	if g == nil || g.Mode == gesture.ModeScrub {
		return
	}
	if !g.Changed() {
		return
	}

	e.hist.Commit(e.project)
	e.project.ReplaceClip(g.Live().Clone())
	e.project.ClampPlayhead()

	if e.logger != nil {
		e.logger.Info("gesture committed", "clip_id", g.ClipID, "mode", string(g.Mode))
	}
	e.notifyProject()
}

// CancelGesture discards the active gesture unconditionally, restoring
// pre-gesture state. Used for pointer-cancel and loss of pointer capture.
func (e *Engine) CancelGesture() {
	e.mu.Lock()
	defer e.mu.Unlock()

	g := e.gest
	e.gest = nil
	if g == nil {
		return
	}
	if g.Mode == gesture.ModeScrub {
		e.project.Playhead = g.PrePlayhead()
		e.project.ClampPlayhead()
		e.notifier.OnPlayheadChanged(e.project.Playhead)
	}
	// Clip gestures touched only the live copy; the project needs no repair.
}

// GestureActive reports whether a gesture is in flight.
func (e *Engine) GestureActive() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gest != nil
}

// applyScrub writes a scrub position through to the playhead, emitting the
// playhead notification and, near a viewport edge, the auto-scroll delta.
// Caller holds the mutex.
func (e *Engine) applyScrub(pointerTime float64) {
	e.gest.Update(pointerTime)
	e.project.Playhead = e.gest.LivePlayhead()
	e.project.ClampPlayhead()
	e.notifier.OnPlayheadChanged(e.project.Playhead)

	if e.viewportWidth > 0 {
		px := e.scale().TimeToPixel(e.project.Playhead)
		if delta := gesture.ScrollDelta(px, e.viewportLeft, e.viewportWidth, AutoScrollMargin); delta != 0 {
			e.notifier.OnAutoScroll(delta)
		}
	}
}

// ApplyPropertyEdit applies a panel edit to a clip as one atomic commit. Each
// slider change, toggle or rename is its own history entry; continuous drags
// are not coalesced.
func (e *Engine) ApplyPropertyEdit(clipID string, edit PropertyEdit) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	clip := e.project.Clip(clipID)
	if clip == nil {
		return fmt.Errorf("%w: %s", ErrClipNotFound, clipID)
	}

	e.hist.Commit(e.project)
	updated := edit.applyTo(clip)
	e.project.ReplaceClip(updated)
	e.project.ClampPlayhead()
	e.notifyProject()
	return nil
}

// Undo restores the most recent history snapshot, returning whether an entry
// existed. Any in-flight gesture is discarded first so the restored project
// cannot be clobbered by a stale commit.
func (e *Engine) Undo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.gest = nil
	restored, ok := e.hist.Undo(e.project)
	if !ok {
		return false
	}
	e.project = restored
	e.notifyProject()
	e.notifier.OnPlayheadChanged(e.project.Playhead)
	return true
}

// Redo restores the most recently undone snapshot.
func (e *Engine) Redo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.gest = nil
	restored, ok := e.hist.Redo(e.project)
	if !ok {
		return false
	}
	e.project = restored
	e.notifyProject()
	e.notifier.OnPlayheadChanged(e.project.Playhead)
	return true
}

// Play starts the transport. Refused over an empty timeline.
func (e *Engine) Play() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.gest != nil && e.gest.Mode == gesture.ModeScrub {
		return false
	}
	return e.clock.Play(len(e.project.Clips))
}

// Pause stops the transport, leaving the playhead in place.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clock.Pause()
}

// Stop stops the transport and resets the playhead to 0.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clock.Stop()
	e.project.Playhead = 0
	e.notifier.OnPlayheadChanged(0)
}

// Tick advances the playhead by elapsed seconds while playing. Driven by the
// UI's animation-frame pump. A tick during a scrub is ignored; the gesture
// owns the playhead.
func (e *Engine) Tick(elapsed float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.gest != nil && e.gest.Mode == gesture.ModeScrub {
		return
	}
	if !e.clock.Playing() {
		return
	}
	e.project.Playhead = e.clock.Tick(e.project.Playhead, elapsed, e.project.Duration())
	e.notifier.OnPlayheadChanged(e.project.Playhead)
}

func (e *Engine) Playing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clock.Playing()
}

// SetZoom clamps and applies a new zoom factor, returning the effective
// value.
func (e *Engine) SetZoom(factor float64) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.zoom = timescale.ClampZoom(factor)
	return e.zoom
}

func (e *Engine) Zoom() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.zoom
}

// SetViewport tells the engine where the renderer's scrollable timeline
// viewport sits, in ruler pixels, so scrub auto-scroll deltas can be
// computed. The viewport itself stays owned by the renderer.
func (e *Engine) SetViewport(left, width float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.viewportLeft = left
	e.viewportWidth = width
}

// Scale returns the current time-to-pixel mapping.
func (e *Engine) Scale() timescale.Scale {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scale()
}

func (e *Engine) scale() timescale.Scale {
	return timescale.New(e.pixelsPerSecond, e.zoom)
}

// notifyProject emits a fresh snapshot. Caller holds the mutex.
func (e *Engine) notifyProject() {
	e.notifier.OnProjectChanged(e.project.Clone())
}
