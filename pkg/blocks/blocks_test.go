package blocks

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"tableflip.dev/daytree/pkg/node"
)

func sampleForest() []*node.Node {
	at := node.Timestamp{Time: time.Date(2025, 10, 11, 9, 0, 0, 0, time.UTC)}
	return []*node.Node{
		{ID: "a", Text: "A", Created: at, Children: []*node.Node{
			{ID: "a1", Text: "A1", Completed: true, Created: at},
			{ID: "a2", Text: "A2", Collapsed: true, Created: at, Children: []*node.Node{
				{ID: "a2x", Text: "hidden", Created: at},
			}},
		}},
		{ID: "b", Text: "B", CarriedOver: true, Created: at},
	}
}

func TestRoundTripLaw(t *testing.T) {
	forest := sampleForest()

	back, err := FromBlocks(ToBlocks(forest))
	if err != nil {
		t.Fatalf("FromBlocks: %v", err)
	}
	if !node.Equal(back, forest) {
		t.Fatalf("round trip diverged:\n got %v\nwant %v", node.IDs(back), node.IDs(forest))
	}
}

func TestToBlocksIdempotent(t *testing.T) {
	forest := sampleForest()
	first := ToBlocks(forest)
	second := ToBlocks(forest)

	if len(first) != len(second) {
		t.Fatal("repeated renders differ in length")
	}
	a, _ := FromBlocks(first)
	b, _ := FromBlocks(second)
	if !node.Equal(a, b) {
		t.Fatal("repeated renders differ in content")
	}
}

func TestFromBlocksRejectsEmptyID(t *testing.T) {
	_, err := FromBlocks([]Block{{ID: "", Text: "x"}})
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("err = %v, want ErrMalformed", err)
	}
}

func TestFromBlocksRejectsDuplicateID(t *testing.T) {
	_, err := FromBlocks([]Block{
		{ID: "a", Text: "x", Children: []Block{{ID: "a", Text: "nested dup"}}},
	})
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("err = %v, want ErrMalformed", err)
	}
}

func TestAdapterDropsEchoOfOwnPush(t *testing.T) {
	var pushes []Document
	applied := 0
	a := NewAdapter(Options{
		Push:  func(d Document) { pushes = append(pushes, d) },
		Apply: func([]*node.Node) { applied++ },
	})
	defer a.Close()

	forest := sampleForest()
	a.TreeChanged(forest)
	if len(pushes) != 1 {
		t.Fatalf("pushes = %d, want 1", len(pushes))
	}

	// The editor reports a change whose content is exactly what we pushed.
	a.EditorChanged(Change{LastSeq: pushes[0].Seq, Blocks: pushes[0].Blocks})

	if applied != 0 {
		t.Fatal("echo must not be applied back into the engine")
	}
	if len(pushes) != 1 {
		t.Fatal("echo must not trigger another outbound push")
	}
}

func TestAdapterDropsEchoAfterPersistenceRoundTrip(t *testing.T) {
	// On a save-triggered reload the editor feeds the on-disk tree back in.
	// Created timestamps carry nanoseconds, so they must survive JSON intact
	// for the content check to recognize the tree as our own push.
	applied := 0
	var pushes []Document
	a := NewAdapter(Options{
		Push:  func(d Document) { pushes = append(pushes, d) },
		Apply: func([]*node.Node) { applied++ },
	})
	defer a.Close()

	root := node.New("A")
	root.Children = []*node.Node{node.New("A1")}
	a.TreeChanged([]*node.Node{root, node.New("B")})

	data, err := json.Marshal(pushes[0].Blocks)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back []Block
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	a.EditorChanged(Change{LastSeq: a.Seq(), Blocks: back})

	if applied != 0 {
		t.Fatal("serialized echo must not be applied back into the engine")
	}
}

func TestAdapterDropsStaleEditorEvents(t *testing.T) {
	applied := 0
	a := NewAdapter(Options{
		Push:  func(Document) {},
		Apply: func([]*node.Node) { applied++ },
	})
	defer a.Close()

	a.TreeChanged(sampleForest())
	seq := a.Seq()

	// An event carrying an older sequence describes a document our later
	// push already overwrote.
	a.EditorChanged(Change{LastSeq: seq - 1, Blocks: []Block{{ID: "z", Text: "stale"}}})

	if applied != 0 {
		t.Fatal("stale event must be dropped")
	}
}

func TestAdapterAppliesGenuineExternalEdit(t *testing.T) {
	var got []*node.Node
	a := NewAdapter(Options{
		Push:  func(Document) {},
		Apply: func(f []*node.Node) { got = f },
	})
	defer a.Close()

	a.TreeChanged(sampleForest())

	edited := ToBlocks(sampleForest())
	edited[0].Text = "A (renamed)"
	a.EditorChanged(Change{LastSeq: a.Seq(), Blocks: edited})

	if got == nil || got[0].Text != "A (renamed)" {
		t.Fatalf("external edit not applied, got %v", got)
	}
}

func TestAdapterRepushesKnownGoodOnMalformedDocument(t *testing.T) {
	var pushes []Document
	a := NewAdapter(Options{
		Push:  func(d Document) { pushes = append(pushes, d) },
		Apply: func([]*node.Node) { t.Fatal("malformed document must not reach the engine") },
	})
	defer a.Close()

	forest := sampleForest()
	a.TreeChanged(forest)

	a.EditorChanged(Change{LastSeq: a.Seq(), Blocks: []Block{{ID: ""}}})

	if len(pushes) != 2 {
		t.Fatalf("pushes = %d, want corrective re-push", len(pushes))
	}
	back, err := FromBlocks(pushes[1].Blocks)
	if err != nil || !node.Equal(back, forest) {
		t.Fatal("corrective push should carry the last known-good tree")
	}
	if pushes[1].Seq <= pushes[0].Seq {
		t.Fatal("corrective push must advance the sequence")
	}
}

func TestAdapterDebouncesCommits(t *testing.T) {
	commits := 0
	a := NewAdapter(Options{
		Push:     func(Document) {},
		Commit:   func([]*node.Node) { commits++ },
		Debounce: 40 * time.Millisecond,
	})
	defer a.Close()

	a.TreeChanged([]*node.Node{{ID: "a", Text: "1"}})
	a.TreeChanged([]*node.Node{{ID: "a", Text: "12"}})
	a.TreeChanged([]*node.Node{{ID: "a", Text: "123"}})

	if commits != 0 {
		t.Fatal("commit fired inside the debounce window")
	}
	time.Sleep(120 * time.Millisecond)
	if commits != 1 {
		t.Fatalf("commits = %d, want one coalesced write", commits)
	}
}

func TestAdapterFlushCommitsImmediately(t *testing.T) {
	commits := 0
	a := NewAdapter(Options{
		Push:     func(Document) {},
		Commit:   func([]*node.Node) { commits++ },
		Debounce: time.Hour,
	})
	defer a.Close()

	a.TreeChanged(sampleForest())
	a.Flush()

	if commits != 1 {
		t.Fatalf("commits = %d, want 1 after Flush", commits)
	}
}

func TestResetPushesUnconditionally(t *testing.T) {
	var pushes []Document
	a := NewAdapter(Options{Push: func(d Document) { pushes = append(pushes, d) }})
	defer a.Close()

	forest := sampleForest()
	a.Reset(forest)
	a.Reset(forest) // same content still pushes on context switch

	if len(pushes) != 2 {
		t.Fatalf("pushes = %d, want 2", len(pushes))
	}
	if pushes[1].Seq != pushes[0].Seq+1 {
		t.Fatal("each push advances the sequence")
	}
}
