package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/daytree/pkg/node"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	countStyle  = lipgloss.NewStyle().Faint(true)
	statusStyle = lipgloss.NewStyle().Faint(true)

	focusStyle    = lipgloss.NewStyle().Background(lipgloss.Color("236")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("238"))
	doneStyle     = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	carriedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Italic(true)
	dropStyle     = lipgloss.NewStyle().Underline(true)
	emptyStyle    = lipgloss.NewStyle().Faint(true).Italic(true)
)

func (m model) View() string {
	var b strings.Builder

	rows := m.ed.Rows()
	count := node.Count(m.ed.Forest())
	title := fmt.Sprintf("%s / %s", m.project, m.day)
	b.WriteString(headerStyle.Render(title))
	b.WriteString(countStyle.Render(fmt.Sprintf("  %d tasks", count)))
	b.WriteString("\n\n")

	if len(rows) == 0 {
		b.WriteString(emptyStyle.Render("  nothing yet, press enter to add a task"))
		b.WriteString("\n")
	}

	focus := m.ed.Selection().Focus()
	end := m.viewTop + m.contentHeight()
	for i := m.viewTop; i < end && i < len(rows); i++ {
		b.WriteString(m.renderRow(rows[i].Node, rows[i].Depth, i, focus))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.statusLine()))
	return b.String()
}

func (m model) renderRow(n *node.Node, depth, idx int, focus string) string {
	indent := strings.Repeat(" ", depth*indentUnit)

	fold := " "
	if len(n.Children) > 0 {
		fold = "▾"
		if n.Collapsed {
			fold = "▸"
		}
	}

	box := "[ ]"
	if n.Completed {
		box = "[x]"
	}

	text := n.Text
	if m.editing && m.editID == n.ID {
		text = m.input.View()
	} else if text == "" {
		text = emptyStyle.Render("…")
	}

	line := fmt.Sprintf("%s%s %s %s", indent, fold, box, text)
	if m.width > 0 {
		line = truncate.String(line, uint(m.width))
	}

	style := lipgloss.NewStyle()
	switch {
	case n.ID == focus:
		style = focusStyle
	case m.ed.Selection().Has(n.ID):
		style = selectedStyle
	case n.Completed:
		style = doneStyle
	case n.CarriedOver:
		style = carriedStyle
	}
	if m.mouse.dragging && m.mouse.targetID == n.ID {
		style = dropStyle
	}
	return style.Render(line)
}

func (m model) statusLine() string {
	switch {
	case m.editing:
		return "typing: enter keeps, esc cancels"
	case m.mouse.dragging:
		return "dragging: drop on a row, pull right to nest"
	case m.mouse.marquee.Active():
		top, bottom := m.mouse.marquee.Band()
		return fmt.Sprintf("selecting rows %d-%d", top, bottom)
	}
	return m.status
}
