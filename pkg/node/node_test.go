package node

import (
	"encoding/json"
	"testing"
	"time"
)

func n(id, text string, children ...*Node) *Node {
	return &Node{ID: id, Text: text, Children: children}
}

func TestFindSearchesWholeForest(t *testing.T) {
	forest := []*Node{
		n("a", "A", n("a1", "A1", n("a1x", "deep"))),
		n("b", "B"),
	}

	if got := Find(forest, "a1x"); got == nil || got.Text != "deep" {
		t.Fatalf("expected to find nested node, got %v", got)
	}
	if got := Find(forest, "nope"); got != nil {
		t.Fatalf("expected nil for unknown id, got %v", got)
	}
	if got := Find(forest, ""); got != nil {
		t.Fatalf("expected nil for empty id, got %v", got)
	}
}

func TestLocateReturnsParentAndIndex(t *testing.T) {
	forest := []*Node{
		n("a", "A", n("a1", "A1"), n("a2", "A2")),
		n("b", "B"),
	}

	parent, idx, ok := Locate(forest, "a2")
	if !ok || parent == nil || parent.ID != "a" || idx != 1 {
		t.Fatalf("Locate(a2) = %v,%d,%v", parent, idx, ok)
	}

	parent, idx, ok = Locate(forest, "b")
	if !ok || parent != nil || idx != 1 {
		t.Fatalf("Locate(b) = %v,%d,%v; want root index 1", parent, idx, ok)
	}

	if _, _, ok := Locate(forest, "ghost"); ok {
		t.Fatal("Locate should miss unknown ids")
	}
}

func TestContainsIncludesRoot(t *testing.T) {
	tree := n("a", "A", n("a1", "A1"))
	if !Contains(tree, "a") {
		t.Fatal("subtree should contain its own root")
	}
	if !Contains(tree, "a1") {
		t.Fatal("subtree should contain descendant")
	}
	if Contains(tree, "b") {
		t.Fatal("subtree should not contain foreign id")
	}
}

func TestCountAndIDs(t *testing.T) {
	forest := []*Node{
		n("a", "A", n("a1", "A1", n("a1x", "A1X")), n("a2", "A2")),
		n("b", "B"),
	}
	if got := Count(forest); got != 5 {
		t.Fatalf("Count = %d, want 5", got)
	}
	want := []string{"a", "a1", "a1x", "a2", "b"}
	got := IDs(forest)
	if len(got) != len(want) {
		t.Fatalf("IDs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("IDs[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	forest := []*Node{n("a", "A", n("a1", "A1"))}
	cloned := Clone(forest)
	cloned[0].Children[0].Text = "mutated"
	if forest[0].Children[0].Text != "A1" {
		t.Fatal("clone mutation leaked into original")
	}
	if !Equal(forest, []*Node{n("a", "A", n("a1", "A1"))}) {
		t.Fatal("original changed shape")
	}
}

func TestEqualComparesTimestampsByInstant(t *testing.T) {
	at := time.Date(2025, 10, 11, 9, 0, 0, 0, time.UTC)
	a := []*Node{{ID: "a", Text: "A", Created: Timestamp{Time: at}}}
	b := []*Node{{ID: "a", Text: "A", Created: Timestamp{Time: at.In(time.FixedZone("X", 3600))}}}
	if !Equal(a, b) {
		t.Fatal("same instant in different zones should compare equal")
	}
	b[0].Completed = true
	if Equal(a, b) {
		t.Fatal("field change should break equality")
	}
}

func TestJSONRoundTripKeepsForestEqual(t *testing.T) {
	// New stamps Created at nanosecond precision; serialization must keep
	// every bit of it or a saved tree would no longer compare Equal to the
	// one still in memory.
	root := New("A")
	root.Children = []*Node{New("A1")}
	forest := []*Node{root, New("B")}

	data, err := json.Marshal(forest)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back []*Node
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !Equal(forest, back) {
		t.Fatalf("round trip changed the forest:\n in: %+v\nout: %+v", forest[0].Created, back[0].Created)
	}
}

func TestSameDayIgnoresTimeOfDay(t *testing.T) {
	morning := Timestamp{Time: time.Date(2026, 8, 26, 1, 2, 3, 0, time.Local)}
	if !morning.SameDay(time.Date(2026, 8, 26, 23, 59, 0, 0, time.Local)) {
		t.Fatal("same calendar day should match")
	}
	if morning.SameDay(time.Date(2026, 8, 27, 1, 2, 3, 0, time.Local)) {
		t.Fatal("next day should not match")
	}
}

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewID()
		if seen[id] {
			t.Fatalf("duplicate id %q after %d draws", id, i)
		}
		seen[id] = true
	}
}
