// Package selection tracks the focused node and the multi-selection set, and
// implements range-click and pointer-marquee selection over the flattened
// visible order. Selection state is transient; it is never persisted and is
// pruned whenever the underlying forest changes.
package selection

import (
	"sort"

	"tableflip.dev/daytree/pkg/tree"
)

// Selection is the set of selected node ids plus the keyboard focus, which
// doubles as the anchor for range selection.
type Selection struct {
	focus string
	ids   map[string]struct{}
}

func New() *Selection {
	return &Selection{ids: make(map[string]struct{})}
}

// Focus returns the focused id, empty when nothing has focus.
func (s *Selection) Focus() string {
	return s.focus
}

// Has reports whether the id is in the selection set.
func (s *Selection) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the selection size.
func (s *Selection) Len() int {
	return len(s.ids)
}

// IDs returns the selected ids ordered by their position in rows. Ids not
// visible in rows sort last in lexical order.
func (s *Selection) IDs(rows []tree.Row) []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	pos := make(map[string]int, len(rows))
	for i, r := range rows {
		if r.Node != nil {
			pos[r.Node.ID] = i
		}
	}
	sort.Slice(out, func(i, j int) bool {
		pi, iok := pos[out[i]]
		pj, jok := pos[out[j]]
		switch {
		case iok && jok:
			return pi < pj
		case iok:
			return true
		case jok:
			return false
		default:
			return out[i] < out[j]
		}
	})
	return out
}

// Click replaces the selection with the single id and focuses it.
func (s *Selection) Click(id string) {
	s.ids = map[string]struct{}{id: {}}
	s.focus = id
}

// RangeClick extends the selection to the contiguous flattened-order range
// between the current focus and the clicked id, inclusive. Ranges follow
// visible order, not sibling order, so they freely cross depth boundaries.
// Without a usable anchor this degrades to a plain Click.
func (s *Selection) RangeClick(rows []tree.Row, id string) {
	anchor := tree.RowIndex(rows, s.focus)
	target := tree.RowIndex(rows, id)
	if target < 0 {
		return
	}
	if anchor < 0 {
		s.Click(id)
		return
	}
	lo, hi := anchor, target
	if lo > hi {
		lo, hi = hi, lo
	}
	for i := lo; i <= hi; i++ {
		s.ids[rows[i].Node.ID] = struct{}{}
	}
	s.focus = id
}

// Step moves focus by delta in the flattened sequence. With extend set, the
// old and new focus both join the selection instead of replacing it.
func (s *Selection) Step(rows []tree.Row, delta int, extend bool) {
	if len(rows) == 0 {
		return
	}
	idx := tree.RowIndex(rows, s.focus)
	next := idx + delta
	if idx < 0 {
		next = 0
		if delta < 0 {
			next = len(rows) - 1
		}
	}
	if next < 0 {
		next = 0
	}
	if next >= len(rows) {
		next = len(rows) - 1
	}
	id := rows[next].Node.ID
	if extend {
		if s.focus != "" {
			s.ids[s.focus] = struct{}{}
		}
		s.ids[id] = struct{}{}
	} else {
		s.ids = map[string]struct{}{id: {}}
	}
	s.focus = id
}

// SelectAll selects every id in the flattened sequence.
func (s *Selection) SelectAll(rows []tree.Row) {
	s.ids = make(map[string]struct{}, len(rows))
	for _, r := range rows {
		if r.Node != nil {
			s.ids[r.Node.ID] = struct{}{}
		}
	}
	if s.focus == "" && len(rows) > 0 {
		s.focus = rows[0].Node.ID
	}
}

// Add inserts ids into the selection without touching focus.
func (s *Selection) Add(ids ...string) {
	for _, id := range ids {
		if id != "" {
			s.ids[id] = struct{}{}
		}
	}
}

// SetFocus moves focus without changing the selection set.
func (s *Selection) SetFocus(id string) {
	s.focus = id
}

// Clear empties the selection and drops focus.
func (s *Selection) Clear() {
	s.ids = make(map[string]struct{})
	s.focus = ""
}

// Prune drops ids that no longer appear in the flattened sequence, keeping
// the invariant that every selected id is visible. Stale focus falls back to
// empty.
func (s *Selection) Prune(rows []tree.Row) {
	visible := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		if r.Node != nil {
			visible[r.Node.ID] = struct{}{}
		}
	}
	for id := range s.ids {
		if _, ok := visible[id]; !ok {
			delete(s.ids, id)
		}
	}
	if s.focus != "" {
		if _, ok := visible[s.focus]; !ok {
			s.focus = ""
		}
	}
}
