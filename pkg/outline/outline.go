// Package outline renders a forest as an indented, markdown-like checklist
// for end-of-day logs. One-way and read-only; nothing parses it back.
package outline

import (
	"strings"

	"tableflip.dev/daytree/pkg/node"
)

const indent = "  "

// Serialize renders the whole forest, collapsed subtrees included, as
// `- [ ] text` / `- [x] text` lines indented two spaces per level.
func Serialize(forest []*node.Node) string {
	var b strings.Builder
	writeList(&b, forest, 0)
	return b.String()
}

func writeList(b *strings.Builder, list []*node.Node, depth int) {
	for _, n := range list {
		if n == nil {
			continue
		}
		b.WriteString(strings.Repeat(indent, depth))
		if n.Completed {
			b.WriteString("- [x] ")
		} else {
			b.WriteString("- [ ] ")
		}
		b.WriteString(n.Text)
		b.WriteString("\n")
		writeList(b, n.Children, depth+1)
	}
}
