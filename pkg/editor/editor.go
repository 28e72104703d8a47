// Package editor owns one editing context: the authoritative tree for a
// single project and day, its selection, its undo history, and its sync
// adapter. Callers construct an Editor when a context becomes active and
// discard it on switch; there is no ambient global state.
//
// All mutation follows one shape: read the current forest, compute a new
// forest value, replace. No component holds a mutable reference into a
// previous snapshot.
package editor

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/daytree/pkg/blocks"
	"tableflip.dev/daytree/pkg/drag"
	"tableflip.dev/daytree/pkg/events"
	"tableflip.dev/daytree/pkg/history"
	"tableflip.dev/daytree/pkg/node"
	"tableflip.dev/daytree/pkg/selection"
	"tableflip.dev/daytree/pkg/tree"
)

// Ops is the capability set handed to input surfaces. Every operation is a
// pure tree transform applied to the editor's current forest; operations
// naming absent ids do nothing.
type Ops interface {
	Insert(text, parentID, afterID string) string
	Update(id string, p tree.Patch)
	Delete(id string)
	DeleteMany(ids []string)
	Indent(id string)
	Unindent(id string)
	Move(id, parentID string, index int)
	MoveMany(ids []string, parentID string, index int)
}

// Options wires an Editor to its collaborators. Commit receives debounced
// snapshots for persistence, already bound to the context's project and
// day. Push feeds the external block editor. Now is overridable for tests.
type Options struct {
	Push           func(blocks.Document)
	Commit         func(project, day string, forest []*node.Node)
	Debounce       time.Duration
	CoalesceWindow time.Duration
	Component      events.ComponentID
	Now            func() time.Time
}

// Editor is a single-context controller. It is not safe for concurrent use;
// all calls are expected on one event loop.
type Editor struct {
	project string
	day     string

	forest  []*node.Node
	sel     *selection.Selection
	hist    *history.History
	adapter *blocks.Adapter

	component events.ComponentID
	eventCh   chan tea.Msg
	now       func() time.Time
}

var _ Ops = (*Editor)(nil)

// New builds an editing context seeded with the given forest and pushes the
// initial document into the external editor.
func New(project, day string, forest []*node.Node, opts Options) *Editor {
	e := &Editor{
		project:   project,
		day:       day,
		forest:    forest,
		sel:       selection.New(),
		hist:      history.New(opts.CoalesceWindow),
		component: opts.Component,
		eventCh:   make(chan tea.Msg, 64),
		now:       opts.Now,
	}
	if e.component == "" {
		e.component = events.ComponentID("editor")
	}
	if e.now == nil {
		e.now = time.Now
	}
	commit := opts.Commit
	e.adapter = blocks.NewAdapter(blocks.Options{
		Push:  opts.Push,
		Apply: e.replace,
		Commit: func(f []*node.Node) {
			if commit != nil {
				commit(project, day, f)
			}
		},
		Debounce: opts.Debounce,
	})
	e.adapter.Reset(forest)
	return e
}

// Project returns the context's project key.
func (e *Editor) Project() string { return e.project }

// Day returns the context's day key.
func (e *Editor) Day() string { return e.day }

// Forest returns the current tree value. Treat it as immutable.
func (e *Editor) Forest() []*node.Node { return e.forest }

// Rows returns the current flattened visible sequence.
func (e *Editor) Rows() []tree.Row { return tree.Flatten(e.forest) }

// Selection exposes the transient selection state.
func (e *Editor) Selection() *selection.Selection { return e.sel }

// Events exposes the editor's event channel for Bubble Tea subscriptions.
func (e *Editor) Events() <-chan tea.Msg { return e.eventCh }

// Seq returns the sequence number of the most recent outbound push, for
// callers that synthesize editor change events themselves.
func (e *Editor) Seq() uint64 { return e.adapter.Seq() }

// CanUndo reports whether an undo step is available.
func (e *Editor) CanUndo() bool { return e.hist.CanUndo() }

// CanRedo reports whether a redo step is available.
func (e *Editor) CanRedo() bool { return e.hist.CanRedo() }

// apply installs a new forest produced by a structural operation, records
// history, prunes the selection, and pushes the change outward. Returns
// false when the operation was a no-op.
func (e *Editor) apply(action events.ChangeType, tag string, next []*node.Node, ids ...string) bool {
	if node.Equal(e.forest, next) {
		return false
	}
	e.hist.Record(e.forest, tag, e.now())
	e.forest = next
	e.sel.Prune(tree.Flatten(next))
	e.adapter.TreeChanged(next)
	e.emitChange(action, ids...)
	return true
}

// Insert creates a node and focuses it. Returns the fresh id, empty when the
// referenced parent or sibling is gone.
func (e *Editor) Insert(text, parentID, afterID string) string {
	next, id := tree.Insert(e.forest, text, parentID, afterID)
	if id == "" {
		return ""
	}
	if e.apply(events.ChangeInsert, "insert", next, id) {
		e.sel.Click(id)
		e.emitSelection()
	}
	return id
}

// Update shallow-merges fields onto the node. Text updates coalesce in
// history so one undo reverts a typing burst.
func (e *Editor) Update(id string, p tree.Patch) {
	tag := "update"
	if p.Text != nil && p.Completed == nil && p.Collapsed == nil && p.CarriedOver == nil {
		tag = history.EditTag(id)
	}
	e.apply(events.ChangeUpdate, tag, tree.Update(e.forest, id, p), id)
}

// Delete removes the node and its subtree.
func (e *Editor) Delete(id string) {
	e.apply(events.ChangeDelete, "delete", tree.Delete(e.forest, id), id)
}

// DeleteMany removes each listed node and its subtree.
func (e *Editor) DeleteMany(ids []string) {
	e.apply(events.ChangeDelete, "delete", tree.DeleteMany(e.forest, ids), ids...)
}

// Indent nests the node under its preceding sibling.
func (e *Editor) Indent(id string) {
	e.apply(events.ChangeIndent, "indent", tree.Indent(e.forest, id), id)
}

// Unindent lifts the node out to sit after its former parent.
func (e *Editor) Unindent(id string) {
	e.apply(events.ChangeUnindent, "unindent", tree.Unindent(e.forest, id), id)
}

// Move reparents a single node.
func (e *Editor) Move(id, parentID string, index int) {
	e.apply(events.ChangeMove, "move", tree.Move(e.forest, id, parentID, index), id)
}

// MoveMany reparents a set of nodes preserving their relative order.
func (e *Editor) MoveMany(ids []string, parentID string, index int) {
	e.apply(events.ChangeMove, "move", tree.MoveMany(e.forest, ids, parentID, index), ids...)
}

// Drop resolves a completed drag gesture and applies the planned move. An
// invalid drop is a no-op.
func (e *Editor) Drop(g drag.Gesture) {
	rows := e.Rows()
	if g.Selected == nil {
		g.Selected = e.sel.IDs(rows)
	}
	plan, ok := drag.PlanMove(rows, g)
	if !ok {
		return
	}
	e.MoveMany(plan.IDs, plan.ParentID, plan.Index)
}

// Undo restores the previous snapshot, if any.
func (e *Editor) Undo() bool {
	snap, ok := e.hist.Undo(e.forest)
	if !ok {
		return false
	}
	e.restore(events.ChangeUndo, snap)
	return true
}

// Redo restores the last undone snapshot, if any.
func (e *Editor) Redo() bool {
	snap, ok := e.hist.Redo(e.forest)
	if !ok {
		return false
	}
	e.restore(events.ChangeRedo, snap)
	return true
}

func (e *Editor) restore(action events.ChangeType, snap []*node.Node) {
	e.forest = snap
	e.sel.Prune(tree.Flatten(snap))
	e.adapter.TreeChanged(snap)
	e.emitChange(action)
}

// replace is the inbound sync path: the adapter derived a new tree from an
// external editor document. The change is undoable like any other.
func (e *Editor) replace(forest []*node.Node) {
	e.hist.Record(e.forest, "sync", e.now())
	e.forest = forest
	e.sel.Prune(tree.Flatten(forest))
	e.emitChange(events.ChangeSync)
}

// EditorChanged forwards an external editor change event to the sync
// adapter, which drops echoes of our own pushes.
func (e *Editor) EditorChanged(ch blocks.Change) {
	e.adapter.EditorChanged(ch)
}

// Flush commits any pending persistence write immediately. Call on teardown.
func (e *Editor) Flush() {
	e.adapter.Flush()
}

// Close abandons pending work without committing.
func (e *Editor) Close() {
	e.adapter.Close()
}

func (e *Editor) emitChange(action events.ChangeType, ids ...string) {
	e.emit(events.TreeChangeMsg{
		Component: e.component,
		Action:    action,
		Project:   e.project,
		Day:       e.day,
		NodeIDs:   ids,
	})
}

func (e *Editor) emitSelection() {
	e.emit(events.SelectionMsg{
		Component: e.component,
		Focus:     e.sel.Focus(),
		IDs:       e.sel.IDs(e.Rows()),
	})
}

func (e *Editor) emit(msg tea.Msg) {
	select {
	case e.eventCh <- msg:
	default:
	}
}
