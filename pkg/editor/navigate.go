package editor

// Keyboard and pointer selection entry points. These only touch transient
// selection state; structural mutation goes through the Ops methods.

// Step moves focus through the flattened sequence; extend accumulates the
// traversed ids into the selection instead of replacing it.
func (e *Editor) Step(delta int, extend bool) {
	e.sel.Step(e.Rows(), delta, extend)
	e.emitSelection()
}

// Click replaces the selection with the clicked node.
func (e *Editor) Click(id string) {
	if len(e.forest) == 0 {
		return
	}
	e.sel.Click(id)
	e.emitSelection()
}

// RangeClick extends the selection across the visible range between the
// current focus and the clicked node.
func (e *Editor) RangeClick(id string) {
	e.sel.RangeClick(e.Rows(), id)
	e.emitSelection()
}

// SelectAll selects every visible node.
func (e *Editor) SelectAll() {
	e.sel.SelectAll(e.Rows())
	e.emitSelection()
}

// AddToSelection merges marquee hits into the selection.
func (e *Editor) AddToSelection(ids ...string) {
	if len(ids) == 0 {
		return
	}
	e.sel.Add(ids...)
	e.emitSelection()
}

// ClearSelection empties the selection and drops focus.
func (e *Editor) ClearSelection() {
	e.sel.Clear()
	e.emitSelection()
}
