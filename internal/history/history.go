// Package history implements the snapshot-based undo/redo stacks. Every
// committed mutation pushes a deep copy of the pre-mutation project; undo and
// redo traverse the two stacks without ever sharing clip pointers with the
// live project.
package history

import "github.com/skotter-marq/video-editor-agent/internal/timeline"

// DefaultDepth is the bound on the undo stack; the oldest snapshot is evicted
// when a commit would exceed it.
const DefaultDepth = 50

type History struct {
	undo  []*timeline.Project
	redo  []*timeline.Project
	depth int
}

// New creates a history bounded to depth snapshots. Non-positive depth falls
// back to DefaultDepth.
func New(depth int) *History {
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &History{depth: depth}
}

// Commit records the pre-mutation project. Any redo entries become
// unreachable and are dropped.
func (h *History) Commit(pre *timeline.Project) {
	h.undo = append(h.undo, pre.Clone())
	if len(h.undo) > h.depth {
		h.undo = h.undo[len(h.undo)-h.depth:]
	}
	h.redo = h.redo[:0]
}

// Undo exchanges the live project for the most recent snapshot. The returned
// bool reports whether an entry existed; on false the live project is
// returned unchanged.
func (h *History) Undo(live *timeline.Project) (*timeline.Project, bool) {
	if len(h.undo) == 0 {
		return live, false
	}
	top := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, live.Clone())
	return top, true
}

// Redo exchanges the live project for the most recently undone snapshot.
func (h *History) Redo(live *timeline.Project) (*timeline.Project, bool) {
	if len(h.redo) == 0 {
		return live, false
	}
	top := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, live.Clone())
	return top, true
}

func (h *History) CanUndo() bool { return len(h.undo) > 0 }

func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Len returns the current undo depth.
func (h *History) Len() int { return len(h.undo) }

// Depth returns the configured bound.
func (h *History) Depth() int { return h.depth }
