package tree

import "tableflip.dev/daytree/pkg/node"

// Row is one entry of the flattened, visible linearization of a forest.
type Row struct {
	Node  *node.Node
	Depth int
}

// Flatten produces the depth-first pre-order sequence of visible rows.
// Children of a collapsed node are skipped. This sequence is the single
// source of truth for visible order; recompute it from the forest after
// every change rather than caching it.
func Flatten(forest []*node.Node) []Row {
	rows := make([]Row, 0, len(forest))
	var walk func(list []*node.Node, depth int)
	walk = func(list []*node.Node, depth int) {
		for _, n := range list {
			if n == nil {
				continue
			}
			rows = append(rows, Row{Node: n, Depth: depth})
			if !n.Collapsed {
				walk(n.Children, depth+1)
			}
		}
	}
	walk(forest, 0)
	return rows
}

// RowIndex returns the position of id in the flattened rows, or -1 when the
// id is not visible.
func RowIndex(rows []Row, id string) int {
	for i, r := range rows {
		if r.Node != nil && r.Node.ID == id {
			return i
		}
	}
	return -1
}
