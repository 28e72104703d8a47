package tree

import (
	"math/rand"
	"testing"

	"tableflip.dev/daytree/pkg/node"
)

func n(id, text string, children ...*node.Node) *node.Node {
	return &node.Node{ID: id, Text: text, Children: children}
}

func ids(forest []*node.Node) []string {
	return node.IDs(forest)
}

func sameIDs(t *testing.T, got []*node.Node, want ...string) {
	t.Helper()
	g := ids(got)
	if len(g) != len(want) {
		t.Fatalf("got ids %v, want %v", g, want)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("got ids %v, want %v", g, want)
		}
	}
}

func TestIndentBecomesChildOfPrecedingSibling(t *testing.T) {
	forest := []*node.Node{n("1", "A"), n("2", "B")}

	out := Indent(forest, "2")

	if len(out) != 1 || out[0].ID != "1" {
		t.Fatalf("expected single root A, got %v", ids(out))
	}
	if len(out[0].Children) != 1 || out[0].Children[0].ID != "2" {
		t.Fatalf("expected B under A, got %v", ids(out))
	}
	// input untouched
	if len(forest) != 2 || len(forest[0].Children) != 0 {
		t.Fatal("Indent mutated its input")
	}
}

func TestIndentFirstSiblingIsNoop(t *testing.T) {
	forest := []*node.Node{n("1", "A"), n("2", "B")}
	out := Indent(forest, "1")
	sameIDs(t, out, "1", "2")
}

func TestUnindentRestoresSiblingOfParent(t *testing.T) {
	forest := []*node.Node{n("1", "A", n("2", "B"))}

	out := Unindent(forest, "2")

	sameIDs(t, out, "1", "2")
	if len(out[0].Children) != 0 {
		t.Fatal("B still nested under A")
	}
}

func TestUnindentAtRootIsNoop(t *testing.T) {
	forest := []*node.Node{n("1", "A")}
	out := Unindent(forest, "1")
	sameIDs(t, out, "1")
}

func TestIndentThenUnindentRestoresParentAndSiblings(t *testing.T) {
	forest := []*node.Node{n("1", "A"), n("2", "B"), n("3", "C")}

	out := Unindent(Indent(forest, "2"), "2")

	// same parent (root), same sibling set
	if parent, _, ok := node.Locate(out, "2"); !ok || parent != nil {
		t.Fatalf("B should be back at root, parent=%v", parent)
	}
	if node.Count(out) != 3 {
		t.Fatalf("node count changed: %d", node.Count(out))
	}
}

func TestMoveToRootFront(t *testing.T) {
	forest := []*node.Node{n("a", "A"), n("b", "B"), n("c", "C")}

	out := Move(forest, "c", "", 0)

	sameIDs(t, out, "c", "a", "b")
}

func TestMoveIntoOwnDescendantIsNoop(t *testing.T) {
	forest := []*node.Node{n("a", "A", n("a1", "A1", n("a1x", "A1X")))}

	out := Move(forest, "a", "a1x", 0)

	if !node.Equal(out, forest) {
		t.Fatal("cycle-creating move should leave tree unchanged")
	}
}

func TestMovePreservesTotalNodeCount(t *testing.T) {
	forest := []*node.Node{
		n("a", "A", n("a1", "A1"), n("a2", "A2")),
		n("b", "B", n("b1", "B1")),
		n("c", "C"),
	}
	before := node.Count(forest)

	cases := []struct {
		ids    []string
		parent string
		index  int
	}{
		{[]string{"c"}, "a", 0},
		{[]string{"a1", "b1"}, "", 1},
		{[]string{"a", "c"}, "b", 2},
		{[]string{"ghost"}, "", 0},
		{[]string{"a", "a1"}, "b", 0}, // nested id travels with ancestor
	}
	for _, tc := range cases {
		out := MoveMany(forest, tc.ids, tc.parent, tc.index)
		if got := node.Count(out); got != before {
			t.Fatalf("MoveMany(%v) count = %d, want %d", tc.ids, got, before)
		}
	}
}

func TestMoveManyPreservesRelativeOrder(t *testing.T) {
	forest := []*node.Node{n("a", "A"), n("b", "B"), n("c", "C"), n("d", "D")}

	// pass ids out of order; flattened order wins
	out := MoveMany(forest, []string{"d", "a"}, "b", 0)

	if len(out) != 2 {
		t.Fatalf("expected roots b,c got %v", ids(out))
	}
	kids := out[0].Children
	if len(kids) != 2 || kids[0].ID != "a" || kids[1].ID != "d" {
		t.Fatalf("expected children a,d in original order, got %v", ids(kids))
	}
}

func TestDeleteRemovesSubtree(t *testing.T) {
	forest := []*node.Node{
		n("a", "A", n("a1", "A1", n("a1x", "A1X")), n("a2", "A2")),
		n("b", "B"),
	}
	before := node.Count(forest)

	out := DeleteMany(forest, []string{"a"})

	if got := node.Count(out); got != before-4 {
		t.Fatalf("count = %d, want %d", got, before-4)
	}
	sameIDs(t, out, "b")
}

func TestDeleteManyToleratesAlreadyRemovedDescendants(t *testing.T) {
	forest := []*node.Node{n("a", "A", n("a1", "A1"))}
	out := DeleteMany(forest, []string{"a", "a1"})
	if len(out) != 0 {
		t.Fatalf("expected empty forest, got %v", ids(out))
	}
}

func TestDeleteUnknownIDIsNoop(t *testing.T) {
	forest := []*node.Node{n("a", "A")}
	out := Delete(forest, "ghost")
	if !node.Equal(out, forest) {
		t.Fatal("unknown id should be a no-op")
	}
}

func TestInsertAtRootAndAfterSibling(t *testing.T) {
	forest := []*node.Node{n("a", "A"), n("b", "B")}

	out, id := Insert(forest, "new", "", "a")
	if id == "" {
		t.Fatal("expected fresh id")
	}
	if out[1].ID != id {
		t.Fatalf("expected insert after a, got %v", ids(out))
	}

	out2, id2 := Insert(out, "child", "b", "")
	target := node.Find(out2, "b")
	if id2 == "" || len(target.Children) != 1 || target.Children[0].ID != id2 {
		t.Fatalf("expected appended child of b, got %v", ids(out2))
	}
}

func TestInsertUnderUnknownParentIsNoop(t *testing.T) {
	forest := []*node.Node{n("a", "A")}
	out, id := Insert(forest, "x", "ghost", "")
	if id != "" || !node.Equal(out, forest) {
		t.Fatalf("expected no-op, got id=%q ids=%v", id, ids(out))
	}
}

func TestUpdateMergesFieldsShallow(t *testing.T) {
	forest := []*node.Node{n("a", "A", n("a1", "A1"))}
	text := "renamed"
	done := true

	out := Update(forest, "a", Patch{Text: &text, Completed: &done})

	got := node.Find(out, "a")
	if got.Text != "renamed" || !got.Completed {
		t.Fatalf("patch not applied: %+v", got)
	}
	if got.Children[0] != forest[0].Children[0] {
		t.Fatal("untouched child should be shared, not copied")
	}
	if forest[0].Text != "A" || forest[0].Completed {
		t.Fatal("Update mutated its input")
	}
}

func TestStructuralSharingOnUnrelatedSubtrees(t *testing.T) {
	forest := []*node.Node{
		n("a", "A", n("a1", "A1")),
		n("b", "B", n("b1", "B1")),
	}

	out := Indent(forest, "b1") // no-op: b1 is first sibling
	if &out[0] != &forest[0] {
		// no change at all, same slice comes back
		t.Fatal("no-op should return input unchanged")
	}

	text := "edited"
	out = Update(forest, "b1", Patch{Text: &text})
	if out[0] != forest[0] {
		t.Fatal("subtree a should be shared after editing b1")
	}
	if out[1] == forest[1] {
		t.Fatal("spine to b1 should be reallocated")
	}
}

// fuzzOps drives random structural operations and checks the forest
// invariants after each step: unique ids, every node reachable exactly once,
// no node its own ancestor.
func TestForestInvariantUnderRandomOps(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	forest := []*node.Node{n("seed", "seed")}
	nextID := 0

	for step := 0; step < 500; step++ {
		all := ids(forest)
		pick := func() string {
			if len(all) == 0 {
				return "none"
			}
			return all[rng.Intn(len(all))]
		}
		switch rng.Intn(6) {
		case 0:
			parent := ""
			if rng.Intn(2) == 0 {
				parent = pick()
			}
			var id string
			forest, id = Insert(forest, "t", parent, "")
			_ = id
			nextID++
		case 1:
			forest = Delete(forest, pick())
		case 2:
			forest = Indent(forest, pick())
		case 3:
			forest = Unindent(forest, pick())
		case 4:
			parent := ""
			if rng.Intn(2) == 0 {
				parent = pick()
			}
			forest = Move(forest, pick(), parent, rng.Intn(4))
		case 5:
			forest = MoveMany(forest, []string{pick(), pick()}, "", rng.Intn(3))
		}
		assertForestInvariant(t, forest, step)
	}
}

func assertForestInvariant(t *testing.T, forest []*node.Node, step int) {
	t.Helper()
	seen := make(map[string]bool)
	var walk func(list []*node.Node, ancestors map[string]bool)
	walk = func(list []*node.Node, ancestors map[string]bool) {
		for _, nd := range list {
			if nd == nil {
				t.Fatalf("step %d: nil node in forest", step)
			}
			if seen[nd.ID] {
				t.Fatalf("step %d: id %q appears twice", step, nd.ID)
			}
			seen[nd.ID] = true
			if ancestors[nd.ID] {
				t.Fatalf("step %d: node %q is its own ancestor", step, nd.ID)
			}
			ancestors[nd.ID] = true
			walk(nd.Children, ancestors)
			delete(ancestors, nd.ID)
		}
	}
	walk(forest, make(map[string]bool))
}
