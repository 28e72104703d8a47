// Package tree implements the structural operations over task forests:
// insert, update, delete, indent, unindent, and move. Every operation takes
// the current forest and returns a new forest value; inputs are never
// mutated, and only the spine from root to the touched node is reallocated.
// An operation that references an absent id returns its input unchanged.
package tree

import (
	"tableflip.dev/daytree/pkg/node"
)

// Patch carries the fields Update shallow-merges onto a node. Nil pointers
// leave the corresponding field alone.
type Patch struct {
	Text        *string
	Completed   *bool
	Collapsed   *bool
	CarriedOver *bool
}

func withChildren(n *node.Node, children []*node.Node) *node.Node {
	c := *n
	c.Children = children
	return &c
}

func replaceAt(list []*node.Node, i int, n *node.Node) []*node.Node {
	out := make([]*node.Node, len(list))
	copy(out, list)
	out[i] = n
	return out
}

func removeAt(list []*node.Node, i int) []*node.Node {
	out := make([]*node.Node, 0, len(list)-1)
	out = append(out, list[:i]...)
	out = append(out, list[i+1:]...)
	return out
}

func insertAt(list []*node.Node, i int, n *node.Node) []*node.Node {
	if i < 0 {
		i = 0
	}
	if i > len(list) {
		i = len(list)
	}
	out := make([]*node.Node, 0, len(list)+1)
	out = append(out, list[:i]...)
	out = append(out, n)
	out = append(out, list[i:]...)
	return out
}

// rewrite rebuilds the spine from the roots down to the node with the given
// id and replaces that node with fn(node). Untouched siblings and subtrees
// are shared with the input.
func rewrite(list []*node.Node, id string, fn func(*node.Node) *node.Node) ([]*node.Node, bool) {
	for i, n := range list {
		if n == nil {
			continue
		}
		if n.ID == id {
			return replaceAt(list, i, fn(n)), true
		}
		if kids, ok := rewrite(n.Children, id, fn); ok {
			return replaceAt(list, i, withChildren(n, kids)), true
		}
	}
	return list, false
}

// Insert creates a new node with the given text. With an empty parentID the
// node lands at root level; with afterID set it goes immediately after that
// sibling, otherwise it is appended last. Returns the new forest and the
// fresh node's id. An absent parent or after id makes this a no-op with an
// empty id.
func Insert(forest []*node.Node, text, parentID, afterID string) ([]*node.Node, string) {
	n := node.New(text)
	if parentID == "" {
		out, ok := insertSibling(forest, n, afterID)
		if !ok {
			return forest, ""
		}
		return out, n.ID
	}
	var inserted bool
	out, found := rewrite(forest, parentID, func(p *node.Node) *node.Node {
		kids, ok := insertSibling(p.Children, n, afterID)
		if !ok {
			return p
		}
		inserted = true
		return withChildren(p, kids)
	})
	if !found || !inserted {
		return forest, ""
	}
	return out, n.ID
}

func insertSibling(list []*node.Node, n *node.Node, afterID string) ([]*node.Node, bool) {
	if afterID == "" {
		return insertAt(list, len(list), n), true
	}
	for i, sib := range list {
		if sib != nil && sib.ID == afterID {
			return insertAt(list, i+1, n), true
		}
	}
	return list, false
}

// Update shallow-merges the patch onto the node with the given id. Children
// are untouched.
func Update(forest []*node.Node, id string, p Patch) []*node.Node {
	out, ok := rewrite(forest, id, func(n *node.Node) *node.Node {
		c := *n
		if p.Text != nil {
			c.Text = *p.Text
		}
		if p.Completed != nil {
			c.Completed = *p.Completed
		}
		if p.Collapsed != nil {
			c.Collapsed = *p.Collapsed
		}
		if p.CarriedOver != nil {
			c.CarriedOver = *p.CarriedOver
		}
		return &c
	})
	if !ok {
		return forest
	}
	return out
}

// Delete removes the node and its entire subtree. Deleting the last node
// leaves an empty forest; re-seeding a placeholder is the caller's call.
func Delete(forest []*node.Node, id string) []*node.Node {
	out, _, ok := detach(forest, id)
	if !ok {
		return forest
	}
	return out
}

// DeleteMany applies Delete id by id. Ids already gone (say, descendants of
// an earlier-deleted ancestor) are no-ops when reached.
func DeleteMany(forest []*node.Node, ids []string) []*node.Node {
	out := forest
	for _, id := range ids {
		out = Delete(out, id)
	}
	return out
}

// detach removes the node with the given id and returns the removed node
// alongside the new forest.
func detach(list []*node.Node, id string) ([]*node.Node, *node.Node, bool) {
	for i, n := range list {
		if n == nil {
			continue
		}
		if n.ID == id {
			return removeAt(list, i), n, true
		}
		if kids, removed, ok := detach(n.Children, id); ok {
			return replaceAt(list, i, withChildren(n, kids)), removed, true
		}
	}
	return list, nil, false
}

// Indent makes the node the last child of its immediately preceding sibling.
// First siblings have no preceding sibling to adopt them, so they stay put.
func Indent(forest []*node.Node, id string) []*node.Node {
	out, ok := indentIn(forest, id)
	if !ok {
		return forest
	}
	return out
}

func indentIn(list []*node.Node, id string) ([]*node.Node, bool) {
	for i, n := range list {
		if n == nil {
			continue
		}
		if n.ID == id {
			if i == 0 {
				return list, false
			}
			prev := list[i-1]
			kids := make([]*node.Node, 0, len(prev.Children)+1)
			kids = append(kids, prev.Children...)
			kids = append(kids, n)
			out := make([]*node.Node, 0, len(list)-1)
			out = append(out, list[:i-1]...)
			out = append(out, withChildren(prev, kids))
			out = append(out, list[i+1:]...)
			return out, true
		}
		if kids, ok := indentIn(n.Children, id); ok {
			return replaceAt(list, i, withChildren(n, kids)), true
		}
	}
	return list, false
}

// Unindent moves the node out of its parent, reinserting it immediately
// after that parent as its sibling. Root nodes have no parent and stay put.
func Unindent(forest []*node.Node, id string) []*node.Node {
	out, ok := unindentIn(forest, id)
	if !ok {
		return forest
	}
	return out
}

func unindentIn(list []*node.Node, id string) ([]*node.Node, bool) {
	for i, n := range list {
		if n == nil {
			continue
		}
		for j, ch := range n.Children {
			if ch != nil && ch.ID == id {
				parent := withChildren(n, removeAt(n.Children, j))
				out := make([]*node.Node, 0, len(list)+1)
				out = append(out, list[:i]...)
				out = append(out, parent, ch)
				out = append(out, list[i+1:]...)
				return out, true
			}
		}
		if kids, ok := unindentIn(n.Children, id); ok {
			return replaceAt(list, i, withChildren(n, kids)), true
		}
	}
	return list, false
}

// Move detaches the node and reinserts it at index among the new parent's
// children (root list when parentID is empty). Moving a node into its own
// subtree would break the forest shape and is a no-op.
func Move(forest []*node.Node, id, parentID string, index int) []*node.Node {
	return MoveMany(forest, []string{id}, parentID, index)
}

// MoveMany moves the listed nodes as a unit, preserving their relative order
// as it existed before the move. Ids nested under another moved id travel
// with their ancestor and are dropped from the set. The whole call is a
// no-op when the destination parent sits inside the moved set.
func MoveMany(forest []*node.Node, ids []string, parentID string, index int) []*node.Node {
	moved := normalizeMoveSet(forest, ids)
	if len(moved) == 0 {
		return forest
	}
	if parentID != "" {
		for _, id := range moved {
			n := node.Find(forest, id)
			if node.Contains(n, parentID) {
				return forest
			}
		}
		if node.Find(forest, parentID) == nil {
			return forest
		}
	}

	out := forest
	detached := make([]*node.Node, 0, len(moved))
	for _, id := range moved {
		var n *node.Node
		var ok bool
		out, n, ok = detach(out, id)
		if !ok {
			continue
		}
		detached = append(detached, n)
	}
	if len(detached) == 0 {
		return forest
	}

	if parentID == "" {
		for i, n := range detached {
			out = insertAt(out, index+i, n)
		}
		return out
	}
	result, found := rewrite(out, parentID, func(p *node.Node) *node.Node {
		kids := p.Children
		for i, n := range detached {
			kids = insertAt(kids, index+i, n)
		}
		return withChildren(p, kids)
	})
	if !found {
		return forest
	}
	return result
}

// normalizeMoveSet orders ids by their position in the forest and drops ids
// that are descendants of other ids in the set, or absent entirely.
func normalizeMoveSet(forest []*node.Node, ids []string) []string {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id != "" {
			want[id] = true
		}
	}
	if len(want) == 0 {
		return nil
	}
	ordered := make([]string, 0, len(want))
	var walk func(list []*node.Node, coveredByMoved bool)
	walk = func(list []*node.Node, coveredByMoved bool) {
		for _, n := range list {
			if n == nil {
				continue
			}
			mine := want[n.ID] && !coveredByMoved
			if mine {
				ordered = append(ordered, n.ID)
			}
			walk(n.Children, coveredByMoved || mine)
		}
	}
	walk(forest, false)
	return ordered
}
