// Package history keeps the undo and redo stacks for a single editing
// context. Entries are immutable forest snapshots tagged with the coarse
// operation that produced the following state; rapid text edits on the same
// node coalesce into one entry so a single undo reverts the whole burst.
package history

import (
	"strings"
	"time"

	"tableflip.dev/daytree/pkg/node"
)

// DefaultCoalesceWindow bounds the gap between text edits that still merge
// into the same undo entry.
const DefaultCoalesceWindow = 750 * time.Millisecond

// EditTag returns the coalescing tag for text edits on the given node.
func EditTag(id string) string {
	return "edit:" + id
}

type entry struct {
	snapshot []*node.Node
	tag      string
	at       time.Time
}

// History records forest snapshots. There is no engine-imposed depth limit;
// callers may cap externally by discarding and rebuilding.
type History struct {
	undo   []entry
	redo   []entry
	window time.Duration
}

func New(window time.Duration) *History {
	if window <= 0 {
		window = DefaultCoalesceWindow
	}
	return &History{window: window}
}

// Record pushes the state that held before a completed operation. Pushing
// clears the redo stack. Consecutive records carrying the same edit tag
// within the coalescing window keep the original snapshot and only extend
// the window, merging a keystroke burst into one undoable unit.
func (h *History) Record(prev []*node.Node, tag string, now time.Time) {
	h.redo = nil
	if len(h.undo) > 0 && strings.HasPrefix(tag, "edit:") {
		top := &h.undo[len(h.undo)-1]
		if top.tag == tag && now.Sub(top.at) <= h.window {
			top.at = now
			return
		}
	}
	h.undo = append(h.undo, entry{snapshot: prev, tag: tag, at: now})
}

// Undo pops the most recent snapshot, moving the caller's current state onto
// the redo stack. The second return is false when there is nothing to undo.
func (h *History) Undo(current []*node.Node) ([]*node.Node, bool) {
	if len(h.undo) == 0 {
		return nil, false
	}
	top := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, entry{snapshot: current, tag: top.tag, at: top.at})
	return top.snapshot, true
}

// Redo is the mirror of Undo.
func (h *History) Redo(current []*node.Node) ([]*node.Node, bool) {
	if len(h.redo) == 0 {
		return nil, false
	}
	top := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, entry{snapshot: current, tag: top.tag, at: top.at})
	return top.snapshot, true
}

// CanUndo reports whether an undo snapshot is available.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether a redo snapshot is available.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Depth returns the undo stack size.
func (h *History) Depth() int { return len(h.undo) }
