package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/daytree/pkg/app"
	"tableflip.dev/daytree/pkg/blocks"
	"tableflip.dev/daytree/pkg/drag"
	"tableflip.dev/daytree/pkg/editor"
	"tableflip.dev/daytree/pkg/events"
	"tableflip.dev/daytree/pkg/node"
	"tableflip.dev/daytree/pkg/selection"
	"tableflip.dev/daytree/pkg/store"
	"tableflip.dev/daytree/pkg/tree"
)

const (
	headerHeight = 2
	footerHeight = 1

	// One nesting step is two columns, matching the rendered indent.
	indentUnit = 2

	scrollMargin = 2
	frameRate    = 50 * time.Millisecond
)

type tickMsg time.Time

type reloadMsg struct {
	forest []*node.Node
	seq    uint64
}

// mouseState tracks a press-drag-release arc. A press lands either on a row
// (potential click or drag) or on open space (potential marquee).
type mouseState struct {
	pressed bool
	pressID string
	pressX  int
	pressY  int // absolute row coordinates

	dragging bool
	targetID string
	dx       int

	marquee selection.Marquee

	pointerY int // last seen screen Y, drives edge scrolling
}

type model struct {
	svc     *app.Service
	ed      *editor.Editor
	project string
	day     string

	width   int
	height  int
	viewTop int

	editing   bool
	inserting bool
	editID    string
	input     textinput.Model

	mouse  mouseState
	status string

	watch <-chan store.Event
}

func newModel(svc *app.Service, project, day string, forest []*node.Node) model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 256

	ed := editor.New(project, day, forest, editor.Options{
		Commit: func(project, day string, forest []*node.Node) {
			_ = svc.Save(project, day, forest)
		},
	})

	m := model{
		svc:     svc,
		ed:      ed,
		project: project,
		day:     day,
		input:   ti,
		status:  "arrows move, tab nests, enter adds, e edits, space checks, q quits",
	}
	if ch, err := svc.Watch(context.Background()); err == nil {
		m.watch = ch
	}
	return m
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.listenEditor()}
	if m.watch != nil {
		cmds = append(cmds, m.listenWatch(m.watch))
	}
	return tea.Batch(cmds...)
}

// listenEditor relays engine events into the program loop so external
// changes repaint the view.
func (m model) listenEditor() tea.Cmd {
	return func() tea.Msg { return <-m.ed.Events() }
}

func (m model) listenWatch(ch <-chan store.Event) tea.Cmd {
	return func() tea.Msg { return <-ch }
}

func frameTick() tea.Cmd {
	return tea.Tick(frameRate, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampScroll()
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateKey(msg)

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tickMsg:
		return m.updateFrame()

	case store.Event:
		var cmd tea.Cmd
		if m.watch != nil {
			cmd = m.listenWatch(m.watch)
		}
		if msg.Type == store.EventDayChanged && msg.Project == m.project && msg.Day == m.day {
			return m, tea.Batch(cmd, m.reload())
		}
		return m, cmd

	case reloadMsg:
		// Feed the on-disk tree through the sync path. Echoes of our own
		// debounced saves are dropped there by content equality.
		m.ed.EditorChanged(blocks.Change{LastSeq: msg.seq, Blocks: blocks.ToBlocks(msg.forest)})
		return m, nil

	case events.TreeChangeMsg, events.SelectionMsg:
		// engine events only need a repaint and a fresh subscription
		return m, m.listenEditor()

	default:
		if m.editing {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}
}

func (m model) reload() tea.Cmd {
	seq := m.ed.Seq()
	return func() tea.Msg {
		forest, err := m.svc.Tree(context.Background(), m.project, m.day)
		if err != nil {
			return nil
		}
		return reloadMsg{forest: forest, seq: seq}
	}
}

func (m model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	focus := m.ed.Selection().Focus()

	switch msg.String() {
	case "q", "ctrl+c":
		m.ed.Flush()
		return m, tea.Quit

	case "up":
		m.ed.Step(-1, false)
		m.ensureFocusVisible()
	case "down":
		m.ed.Step(1, false)
		m.ensureFocusVisible()
	case "shift+up":
		m.ed.Step(-1, true)
		m.ensureFocusVisible()
	case "shift+down":
		m.ed.Step(1, true)
		m.ensureFocusVisible()

	case "tab":
		if focus != "" {
			m.ed.Indent(focus)
		}
	case "shift+tab":
		if focus != "" {
			m.ed.Unindent(focus)
		}

	case "enter":
		return m.insertBelow(focus)

	case "e":
		if n := node.Find(m.ed.Forest(), focus); n != nil {
			return m.beginEdit(n, false)
		}

	case " ":
		if n := node.Find(m.ed.Forest(), focus); n != nil {
			done := !n.Completed
			m.ed.Update(focus, tree.Patch{Completed: &done})
		}

	case "c":
		if n := node.Find(m.ed.Forest(), focus); n != nil && len(n.Children) > 0 {
			fold := !n.Collapsed
			m.ed.Update(focus, tree.Patch{Collapsed: &fold})
		}

	case "d", "backspace", "delete":
		if ids := m.ed.Selection().IDs(m.ed.Rows()); len(ids) > 0 {
			m.ed.DeleteMany(ids)
			// The engine allows an empty tree; the view does not. Reseed
			// a blank row so there is always somewhere to type.
			if len(m.ed.Rows()) == 0 {
				return m.insertBelow("")
			}
		}

	case "ctrl+a":
		m.ed.SelectAll()

	case "esc":
		m.ed.ClearSelection()

	case "z", "ctrl+z":
		if !m.ed.Undo() {
			m.status = "nothing to undo"
		}
	case "y", "ctrl+r":
		if !m.ed.Redo() {
			m.status = "nothing to redo"
		}
	}
	return m, nil
}

// insertBelow adds an empty sibling after the focused row (or appends to
// the root) and opens it for typing.
func (m model) insertBelow(focus string) (tea.Model, tea.Cmd) {
	parentID := ""
	if parent, _, ok := node.Locate(m.ed.Forest(), focus); ok && parent != nil {
		parentID = parent.ID
	}
	id := m.ed.Insert("", parentID, focus)
	if id == "" {
		return m, nil
	}
	m.ensureFocusVisible()
	if n := node.Find(m.ed.Forest(), id); n != nil {
		return m.beginEdit(n, true)
	}
	return m, nil
}

func (m model) beginEdit(n *node.Node, fresh bool) (tea.Model, tea.Cmd) {
	m.editing = true
	m.inserting = fresh
	m.editID = n.ID
	m.input.SetValue(n.Text)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

// updateEditing routes keys into the text input. Every keystroke lands in
// the tree immediately; history coalesces the burst into one undo step.
func (m model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.editing = false
		m.input.Blur()
		return m, nil
	case "esc":
		m.editing = false
		m.input.Blur()
		if m.inserting {
			m.ed.Delete(m.editID)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	text := m.input.Value()
	m.ed.Update(m.editID, tree.Patch{Text: &text})
	return m, cmd
}

func (m model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.viewTop -= 3
			m.clampScroll()
		case tea.MouseButtonWheelDown:
			m.viewTop += 3
			m.clampScroll()
		case tea.MouseButtonLeft:
			return m.mouseDown(msg)
		}
		return m, nil

	case tea.MouseActionMotion:
		return m.mouseMove(msg)

	case tea.MouseActionRelease:
		if msg.Button == tea.MouseButtonLeft || msg.Button == tea.MouseButtonNone {
			return m.mouseUp()
		}
	}
	return m, nil
}

func (m model) mouseDown(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	rowY := m.rowAt(msg.Y)
	rows := m.ed.Rows()

	m.mouse = mouseState{
		pressed:  true,
		pressX:   msg.X,
		pressY:   rowY,
		pointerY: msg.Y,
	}

	if rowY >= 0 && rowY < len(rows) {
		id := rows[rowY].Node.ID
		m.mouse.pressID = id
		if msg.Shift {
			m.ed.RangeClick(id)
		} else if !m.ed.Selection().Has(id) {
			// A press inside the selection keeps it, so the whole
			// selection can be dragged.
			m.ed.Click(id)
		}
		return m, nil
	}

	// Open space: arm the marquee.
	m.mouse.marquee.Begin(selection.Point{X: msg.X, Y: rowY})
	return m, frameTick()
}

func (m model) mouseMove(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.mouse.pressed {
		return m, nil
	}
	rowY := m.rowAt(msg.Y)
	m.mouse.pointerY = msg.Y

	if m.mouse.pressID != "" {
		wasDragging := m.mouse.dragging
		m.mouse.dx = msg.X - m.mouse.pressX
		if m.mouse.dx != 0 || rowY != m.mouse.pressY {
			m.mouse.dragging = true
		}
		rows := m.ed.Rows()
		if rowY >= 0 && rowY < len(rows) {
			m.mouse.targetID = rows[rowY].Node.ID
		}
		if m.mouse.dragging && !wasDragging {
			return m, frameTick()
		}
		return m, nil
	}

	m.mouse.marquee.Update(selection.Point{X: msg.X, Y: rowY})
	if m.mouse.marquee.Active() {
		m.applyMarquee()
	}
	return m, nil
}

func (m model) mouseUp() (tea.Model, tea.Cmd) {
	st := m.mouse
	m.mouse = mouseState{}

	if !st.pressed {
		return m, nil
	}
	if st.pressID != "" && st.dragging && st.targetID != "" {
		m.ed.Drop(drag.Gesture{
			ActiveID:   st.pressID,
			TargetID:   st.targetID,
			DX:         st.dx,
			IndentUnit: indentUnit,
		})
	}
	st.marquee.End()
	return m, nil
}

// applyMarquee replaces the selection with the rows the band overlaps.
func (m *model) applyMarquee() {
	rows := m.ed.Rows()
	bounds := make([]selection.RowBounds, len(rows))
	for i, r := range rows {
		bounds[i] = selection.RowBounds{ID: r.Node.ID, Top: i, Bottom: i + 1}
	}
	m.ed.ClearSelection()
	if hits := m.mouse.marquee.Hits(bounds); len(hits) > 0 {
		m.ed.AddToSelection(hits...)
	}
}

// updateFrame runs one autoscroll step while a drag or marquee is live.
func (m model) updateFrame() (tea.Model, tea.Cmd) {
	if !m.mouse.pressed || (!m.mouse.dragging && !m.mouse.marquee.Active()) {
		if m.mouse.pressed {
			return m, frameTick() // still armed, keep ticking
		}
		return m, nil
	}

	delta := selection.EdgeScroll(m.mouse.pointerY, headerHeight, m.height-footerHeight, scrollMargin, 1)
	if delta != 0 {
		m.viewTop += delta
		m.clampScroll()
		if m.mouse.marquee.Active() {
			m.applyMarquee()
		}
	}
	return m, frameTick()
}

// rowAt converts a screen Y into an index in the flattened sequence.
func (m model) rowAt(screenY int) int {
	return screenY - headerHeight + m.viewTop
}

func (m model) contentHeight() int {
	h := m.height - headerHeight - footerHeight
	if h < 1 {
		h = 1
	}
	return h
}

func (m *model) clampScroll() {
	max := len(m.ed.Rows()) - m.contentHeight()
	if max < 0 {
		max = 0
	}
	if m.viewTop > max {
		m.viewTop = max
	}
	if m.viewTop < 0 {
		m.viewTop = 0
	}
}

func (m *model) ensureFocusVisible() {
	focus := m.ed.Selection().Focus()
	idx := tree.RowIndex(m.ed.Rows(), focus)
	if idx < 0 {
		return
	}
	if idx < m.viewTop {
		m.viewTop = idx
	}
	if idx >= m.viewTop+m.contentHeight() {
		m.viewTop = idx - m.contentHeight() + 1
	}
}
