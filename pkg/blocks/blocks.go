// Package blocks converts between task forests and the block-structured
// document owned by an external rich-text editor, and keeps the two
// representations converged without feedback loops.
package blocks

import (
	"errors"
	"fmt"

	"tableflip.dev/daytree/pkg/node"
)

// Block is one item of the external editor's document. The shape mirrors
// node.Node closely enough that ToBlocks and FromBlocks are exact inverses
// for well-formed input.
type Block struct {
	ID          string         `json:"id"`
	Text        string         `json:"text"`
	Checked     bool           `json:"checked,omitempty"`
	Collapsed   bool           `json:"collapsed,omitempty"`
	CarriedOver bool           `json:"carriedOver,omitempty"`
	Created     node.Timestamp `json:"created"`
	Children    []Block        `json:"children,omitempty"`
}

// ToBlocks renders the forest as a block document. Applying it twice to the
// same forest yields identical output.
func ToBlocks(forest []*node.Node) []Block {
	if len(forest) == 0 {
		return nil
	}
	out := make([]Block, 0, len(forest))
	for _, n := range forest {
		if n == nil {
			continue
		}
		out = append(out, Block{
			ID:          n.ID,
			Text:        n.Text,
			Checked:     n.Completed,
			Collapsed:   n.Collapsed,
			CarriedOver: n.CarriedOver,
			Created:     n.Created,
			Children:    ToBlocks(n.Children),
		})
	}
	return out
}

// ErrMalformed reports a block document that cannot be reconciled into a
// well-formed forest.
var ErrMalformed = errors.New("blocks: malformed document")

// FromBlocks rebuilds a forest from a block document. Blocks with empty or
// duplicate ids make the document malformed; callers fall back to their last
// known-good tree rather than propagate corrupt structure.
func FromBlocks(list []Block) ([]*node.Node, error) {
	seen := make(map[string]bool)
	return fromBlocks(list, seen)
}

func fromBlocks(list []Block, seen map[string]bool) ([]*node.Node, error) {
	if len(list) == 0 {
		return nil, nil
	}
	out := make([]*node.Node, 0, len(list))
	for _, b := range list {
		if b.ID == "" {
			return nil, fmt.Errorf("%w: block with empty id", ErrMalformed)
		}
		if seen[b.ID] {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrMalformed, b.ID)
		}
		seen[b.ID] = true
		children, err := fromBlocks(b.Children, seen)
		if err != nil {
			return nil, err
		}
		out = append(out, &node.Node{
			ID:          b.ID,
			Text:        b.Text,
			Completed:   b.Checked,
			Collapsed:   b.Collapsed,
			CarriedOver: b.CarriedOver,
			Created:     b.Created,
			Children:    children,
		})
	}
	return out, nil
}
