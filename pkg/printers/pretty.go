package printers

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"tableflip.dev/daytree/pkg/node"
)

// PrettyPrint renders task forests to the terminal with color. Color is
// disabled automatically when stdout is not a TTY.
type PrettyPrint struct {
	ShowID bool
}

var spacing = strings.Repeat(" ", len("171dff69f8b99dca  "))

func init() {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}
}

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Println(title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Print(title)
	_, _ = c.Printf(" - %d", count)

	switch count {
	case 1:
		_, _ = c.Println(" task")
	default:
		_, _ = c.Println(" tasks")
	}
}

// Tree prints the forest, one row per node, indented by depth.
func (pp *PrettyPrint) Tree(forest []*node.Node) {
	if len(forest) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Print(spacing)
		}
		_, _ = f.Print(" none\n\n")
		return
	}
	pp.printList(forest, 0)
}

func (pp *PrettyPrint) printList(list []*node.Node, depth int) {
	t := color.New()
	done := color.New(color.Faint, color.CrossedOut)
	carried := color.New(color.FgHiYellow, color.Italic)
	id := color.New(color.Faint)

	for _, n := range list {
		if n == nil {
			continue
		}
		if pp.ShowID {
			_, _ = id.Printf("%s  ", n.ID)
		}
		_, _ = t.Print(strings.Repeat("  ", depth))
		box := "[ ]"
		if n.Completed {
			box = "[x]"
		}
		line := t
		switch {
		case n.Completed:
			line = done
		case n.CarriedOver:
			line = carried
		}
		_, _ = line.Printf("%s %s\n", box, n.Text)
		pp.printList(n.Children, depth+1)
	}
}
