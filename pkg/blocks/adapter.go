package blocks

import (
	"sync"
	"time"

	"tableflip.dev/daytree/pkg/node"
)

// DefaultCommitDebounce is the quiet period before a changed tree is pushed
// to the persistence collaborator.
const DefaultCommitDebounce = 500 * time.Millisecond

// Document is an outbound push into the external editor. Seq is a
// monotonically increasing sequence number; the editor echoes the last seq
// it applied on every change event, which lets the adapter drop its own
// echoes without timing heuristics.
type Document struct {
	Seq    uint64
	Blocks []Block
}

// Change is an inbound edit event from the external editor: its current
// document plus the sequence number of the last outbound push it applied.
type Change struct {
	LastSeq uint64
	Blocks  []Block
}

// Options wires an Adapter to its collaborators. Push sends a document into
// the external editor; Apply commits an inbound tree into the engine via the
// replace path; Commit hands a snapshot to the persistence collaborator.
type Options struct {
	Push     func(Document)
	Apply    func([]*node.Node)
	Commit   func([]*node.Node)
	Debounce time.Duration
}

// Adapter keeps the tree and the external block document converged. All
// editing happens on one event loop; the mutex only guards the debounce
// timer callback, which fires off-loop.
type Adapter struct {
	mu sync.Mutex

	push     func(Document)
	apply    func([]*node.Node)
	commit   func([]*node.Node)
	debounce time.Duration

	seq        uint64
	lastPushed []*node.Node

	pending []*node.Node
	timer   *time.Timer
}

func NewAdapter(opts Options) *Adapter {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultCommitDebounce
	}
	return &Adapter{
		push:     opts.Push,
		apply:    opts.Apply,
		commit:   opts.Commit,
		debounce: opts.Debounce,
	}
}

// Seq returns the sequence number of the most recent outbound push.
func (a *Adapter) Seq() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.seq
}

// Reset unconditionally overwrites the external editor's content with the
// given forest. Used when the editing context switches to a different
// project or day.
func (a *Adapter) Reset(forest []*node.Node) {
	a.mu.Lock()
	a.seq++
	a.lastPushed = forest
	doc := Document{Seq: a.seq, Blocks: ToBlocks(forest)}
	a.mu.Unlock()
	if a.push != nil {
		a.push(doc)
	}
}

// TreeChanged pushes an engine-originated change (drag reparent, indent,
// typed edit) outward and schedules a debounced persistence commit. Pushes
// identical to the last one are skipped.
func (a *Adapter) TreeChanged(forest []*node.Node) {
	a.mu.Lock()
	if node.Equal(forest, a.lastPushed) {
		a.mu.Unlock()
		return
	}
	a.seq++
	a.lastPushed = forest
	doc := Document{Seq: a.seq, Blocks: ToBlocks(forest)}
	a.scheduleCommitLocked(forest)
	a.mu.Unlock()
	if a.push != nil {
		a.push(doc)
	}
}

// EditorChanged handles an inbound edit event. Events that merely echo an
// outbound push are dropped: first by sequence (the editor has not yet
// caught up to our latest push), then by content (the derived forest equals
// what we last pushed). A document that cannot be reconciled falls back to
// re-pushing the last known-good tree.
func (a *Adapter) EditorChanged(ch Change) {
	a.mu.Lock()
	if ch.LastSeq < a.seq {
		a.mu.Unlock()
		return
	}
	forest, err := FromBlocks(ch.Blocks)
	if err != nil {
		a.seq++
		doc := Document{Seq: a.seq, Blocks: ToBlocks(a.lastPushed)}
		a.mu.Unlock()
		if a.push != nil {
			a.push(doc)
		}
		return
	}
	if node.Equal(forest, a.lastPushed) {
		a.mu.Unlock()
		return
	}
	a.lastPushed = forest
	a.scheduleCommitLocked(forest)
	a.mu.Unlock()
	if a.apply != nil {
		a.apply(forest)
	}
}

// scheduleCommitLocked restarts the debounce window. A commit already
// pending is canceled and replaced, so only the final state of a burst is
// written.
func (a *Adapter) scheduleCommitLocked(forest []*node.Node) {
	a.pending = forest
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.debounce, a.fire)
}

func (a *Adapter) fire() {
	a.mu.Lock()
	forest := a.pending
	a.pending = nil
	a.timer = nil
	a.mu.Unlock()
	if forest != nil && a.commit != nil {
		a.commit(forest)
	}
}

// Flush commits any pending snapshot immediately.
func (a *Adapter) Flush() {
	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.mu.Unlock()
	a.fire()
}

// Close cancels pending work without committing. Use Flush first when the
// pending snapshot matters.
func (a *Adapter) Close() {
	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.pending = nil
	a.mu.Unlock()
}
