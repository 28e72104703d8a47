// Package node defines the task node entity and pure lookup helpers over
// forests of nodes. A forest is an ordered slice of root nodes; ids are
// unique across the whole forest, never just among siblings.
package node

import (
	"crypto/md5"
	"fmt"
	"sync/atomic"
	"time"
)

// Node is a single task entry. Children are ordered; Collapsed hides them
// from the flattened view without removing them.
type Node struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	Completed   bool      `json:"completed,omitempty"`
	Collapsed   bool      `json:"collapsed,omitempty"`
	CarriedOver bool      `json:"carriedOver,omitempty"`
	Created     Timestamp `json:"created"`
	Children    []*Node   `json:"children,omitempty"`
}

// New creates a node with a fresh id and Created set to now.
func New(text string) *Node {
	return &Node{
		ID:      NewID(),
		Text:    text,
		Created: Timestamp{Time: time.Now()},
	}
}

var idSeq uint64

// NewID generates a short unique hex id. Same shape as persisted keys: the
// first 8 bytes of an md5 sum, hex encoded.
func NewID() string {
	n := atomic.AddUint64(&idSeq, 1)
	sum := md5.Sum([]byte(fmt.Sprintf("%d-%d", time.Now().UnixNano(), n)))
	return fmt.Sprintf("%x", sum[:8])
}

// Find returns the node with the given id, searching the whole forest.
func Find(forest []*Node, id string) *Node {
	if id == "" {
		return nil
	}
	for _, n := range forest {
		if n == nil {
			continue
		}
		if n.ID == id {
			return n
		}
		if found := Find(n.Children, id); found != nil {
			return found
		}
	}
	return nil
}

// Locate returns the parent of the node with the given id and its index in
// the parent's child list. A nil parent means the node sits at root level.
func Locate(forest []*Node, id string) (parent *Node, index int, ok bool) {
	for i, n := range forest {
		if n == nil {
			continue
		}
		if n.ID == id {
			return nil, i, true
		}
	}
	return locateIn(forest, id)
}

func locateIn(list []*Node, id string) (*Node, int, bool) {
	for _, n := range list {
		if n == nil {
			continue
		}
		for j, ch := range n.Children {
			if ch != nil && ch.ID == id {
				return n, j, true
			}
		}
		if p, idx, ok := locateIn(n.Children, id); ok {
			return p, idx, ok
		}
	}
	return nil, 0, false
}

// Contains reports whether the subtree rooted at n contains the id, the root
// itself included.
func Contains(n *Node, id string) bool {
	if n == nil || id == "" {
		return false
	}
	if n.ID == id {
		return true
	}
	for _, ch := range n.Children {
		if Contains(ch, id) {
			return true
		}
	}
	return false
}

// Count returns the total number of nodes in the forest.
func Count(forest []*Node) int {
	total := 0
	for _, n := range forest {
		if n == nil {
			continue
		}
		total += 1 + Count(n.Children)
	}
	return total
}

// IDs returns every id in the forest in depth-first pre-order, collapsed
// subtrees included.
func IDs(forest []*Node) []string {
	out := make([]string, 0, len(forest))
	var walk func(list []*Node)
	walk = func(list []*Node) {
		for _, n := range list {
			if n == nil {
				continue
			}
			out = append(out, n.ID)
			walk(n.Children)
		}
	}
	walk(forest)
	return out
}

// Clone deep-copies the forest. Use only at ownership boundaries (snapshots
// handed to other components); structural edits share untouched subtrees
// instead.
func Clone(forest []*Node) []*Node {
	if len(forest) == 0 {
		return nil
	}
	out := make([]*Node, len(forest))
	for i, n := range forest {
		if n == nil {
			continue
		}
		c := *n
		c.Children = Clone(n.Children)
		out[i] = &c
	}
	return out
}

// Equal reports structural equality of two forests: same order, ids, fields,
// and children. Timestamps compare by instant, not location.
func Equal(a, b []*Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equalNode(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalNode(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.ID != b.ID ||
		a.Text != b.Text ||
		a.Completed != b.Completed ||
		a.Collapsed != b.Collapsed ||
		a.CarriedOver != b.CarriedOver {
		return false
	}
	if !a.Created.Time.Equal(b.Created.Time) {
		return false
	}
	return Equal(a.Children, b.Children)
}
