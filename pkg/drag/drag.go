// Package drag projects a two-dimensional drag gesture onto a reparenting
// decision: which node becomes the new parent and at which child index the
// dragged nodes land. The horizontal pointer travel picks the nesting depth
// in discrete indent-unit steps; the vertical drop target picks the
// insertion neighborhood.
package drag

import (
	"math"

	"tableflip.dev/daytree/pkg/tree"
)

// DefaultIndentUnit is the horizontal distance of one nesting step, in the
// same units as the gesture's horizontal offset.
const DefaultIndentUnit = 24

// Plan is the computed reparent: move IDs under ParentID (root when empty)
// at child index Index.
type Plan struct {
	IDs      []string
	ParentID string
	Index    int
}

// Gesture describes a drag in progress. ActiveID is the row under the
// pointer when the drag started; TargetID is the row currently under the
// pointer; DX is the horizontal offset accumulated since drag start.
// Selected lists the current multi-selection; when it contains ActiveID the
// whole selection moves together in flattened order.
type Gesture struct {
	ActiveID   string
	TargetID   string
	DX         int
	Selected   []string
	IndentUnit int
}

// PlanMove resolves the gesture against the flattened sequence. The second
// return is false when the drop is invalid or a no-op: no target under the
// pointer, an unknown id, or a destination inside the moved subtree itself.
func PlanMove(rows []tree.Row, g Gesture) (Plan, bool) {
	unit := g.IndentUnit
	if unit <= 0 {
		unit = DefaultIndentUnit
	}
	activeIdx := tree.RowIndex(rows, g.ActiveID)
	targetIdx := tree.RowIndex(rows, g.TargetID)
	if activeIdx < 0 || targetIdx < 0 {
		return Plan{}, false
	}

	moved := movedSet(rows, g)
	if len(moved) == 0 {
		return Plan{}, false
	}
	inMoved := make(map[string]bool, len(moved))
	for _, id := range moved {
		inMoved[id] = true
	}

	// Dragging right deepens nesting one indent unit per step, left
	// flattens it, never past root.
	projected := rows[activeIdx].Depth + int(math.Round(float64(g.DX)/float64(unit)))
	if projected < 0 {
		projected = 0
	}

	// Moving down inserts after the drop target, moving up before it. The
	// backward walk starts at the target itself when moving down and at the
	// entry just above it when moving up.
	anchor := targetIdx
	if activeIdx >= targetIdx {
		anchor = targetIdx - 1
	}

	// Nearest preceding visible entry strictly shallower than the projected
	// depth becomes the parent; none means root.
	parentIdx := -1
	for i := anchor; i >= 0; i-- {
		if rows[i].Depth < projected {
			parentIdx = i
			break
		}
	}

	parentID := ""
	childDepth := 0
	if parentIdx >= 0 {
		parentID = rows[parentIdx].Node.ID
		childDepth = rows[parentIdx].Depth + 1
	}
	// A parent inside the moved subtree would nest a node under its own
	// descendant; reject.
	if inMoved[parentID] {
		return Plan{}, false
	}
	for _, id := range moved {
		if parentID != "" && subtreeContains(rows, id, parentID) {
			return Plan{}, false
		}
	}

	// Count existing children of the new parent, in flattened order, that
	// precede the drop boundary. Moved rows are excluded so indexes line up
	// with the post-detach child list.
	index := 0
	start := 0
	if parentIdx >= 0 {
		start = parentIdx + 1
	}
	for i := start; i <= anchor && i < len(rows); i++ {
		if coveredByMoved(rows, i, inMoved) {
			continue
		}
		if parentIdx >= 0 && rows[i].Depth <= rows[parentIdx].Depth {
			break
		}
		if rows[i].Depth == childDepth {
			index++
		}
	}

	return Plan{IDs: moved, ParentID: parentID, Index: index}, true
}

// movedSet resolves which ids travel with the gesture, in flattened order,
// with ids nested under another moved id dropped.
func movedSet(rows []tree.Row, g Gesture) []string {
	selected := make(map[string]bool, len(g.Selected))
	for _, id := range g.Selected {
		selected[id] = true
	}
	if !selected[g.ActiveID] {
		return []string{g.ActiveID}
	}
	out := make([]string, 0, len(g.Selected))
	for _, r := range rows {
		if r.Node == nil || !selected[r.Node.ID] {
			continue
		}
		covered := false
		for _, id := range out {
			if subtreeContains(rows, id, r.Node.ID) {
				covered = true
				break
			}
		}
		if !covered {
			out = append(out, r.Node.ID)
		}
	}
	return out
}

// coveredByMoved reports whether rows[i] is a moved node or sits inside a
// moved subtree.
func coveredByMoved(rows []tree.Row, i int, inMoved map[string]bool) bool {
	if rows[i].Node == nil {
		return false
	}
	if inMoved[rows[i].Node.ID] {
		return true
	}
	// Walk back to each shallower ancestor in the flattened sequence.
	depth := rows[i].Depth
	for j := i - 1; j >= 0 && depth > 0; j-- {
		if rows[j].Depth < depth {
			if inMoved[rows[j].Node.ID] {
				return true
			}
			depth = rows[j].Depth
		}
	}
	return false
}

// subtreeContains reports whether the visible subtree rooted at rootID
// contains id.
func subtreeContains(rows []tree.Row, rootID, id string) bool {
	rootIdx := tree.RowIndex(rows, rootID)
	if rootIdx < 0 {
		return false
	}
	rootDepth := rows[rootIdx].Depth
	for i := rootIdx; i < len(rows); i++ {
		if i > rootIdx && rows[i].Depth <= rootDepth {
			break
		}
		if rows[i].Node != nil && rows[i].Node.ID == id {
			return true
		}
	}
	return false
}
