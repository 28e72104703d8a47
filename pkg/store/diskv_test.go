package store

import (
	"context"
	"testing"

	"tableflip.dev/daytree/pkg/node"
)

type testConfig struct {
	path string
}

func (c *testConfig) BasePath() string { return c.path }

func testStore(t *testing.T) Persistence {
	t.Helper()
	p, err := Load(&testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return p
}

func day1Forest() []*node.Node {
	return []*node.Node{
		{ID: "a", Text: "ship release", Children: []*node.Node{
			{ID: "a1", Text: "tag build", Completed: true},
			{ID: "a2", Text: "write notes"},
		}},
		{ID: "b", Text: "lunch", Completed: true},
		{ID: "c", Text: "review PRs"},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	p := testStore(t)

	forest := day1Forest()
	if err := p.Save("work", "2025-10-11", forest); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := p.Load(ctx, "work", "2025-10-11")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !node.Equal(got, forest) {
		t.Fatalf("loaded forest differs: got %v want %v", node.IDs(got), node.IDs(forest))
	}
}

func TestLoadMissingDayIsEmpty(t *testing.T) {
	p := testStore(t)

	got, err := p.Load(context.Background(), "work", "2025-10-11")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != nil {
		t.Fatalf("missing day should load as empty, got %v", node.IDs(got))
	}
}

func TestLoadRequiresProject(t *testing.T) {
	p := testStore(t)
	if _, err := p.Load(context.Background(), "  ", "2025-10-11"); err == nil {
		t.Fatal("expected error for blank project")
	}
	if err := p.Save("", "2025-10-11", nil); err == nil {
		t.Fatal("expected error for blank project on save")
	}
}

func TestProjectsAndDays(t *testing.T) {
	ctx := context.Background()
	p := testStore(t)

	if err := p.Save("work", "2025-10-10", day1Forest()); err != nil {
		t.Fatal(err)
	}
	if err := p.Save("work", "2025-10-11", day1Forest()); err != nil {
		t.Fatal(err)
	}
	if err := p.Save("home", "2025-10-11", day1Forest()); err != nil {
		t.Fatal(err)
	}

	projects := p.Projects(ctx)
	if len(projects) != 2 || projects[0] != "home" || projects[1] != "work" {
		t.Fatalf("Projects = %v, want [home work]", projects)
	}

	days := p.Days(ctx, "work")
	if len(days) != 2 || days[0] != "2025-10-10" || days[1] != "2025-10-11" {
		t.Fatalf("Days = %v, want the two work days sorted", days)
	}
	if got := p.Days(ctx, "home"); len(got) != 1 {
		t.Fatalf("Days(home) = %v, want one day", got)
	}
}

func TestCarryOverKeepsIncompleteChains(t *testing.T) {
	ctx := context.Background()
	p := testStore(t)

	if err := p.Save("work", "2025-10-10", day1Forest()); err != nil {
		t.Fatal(err)
	}

	added, err := p.CarryOver(ctx, "work", "2025-10-10", "2025-10-11")
	if err != nil {
		t.Fatalf("CarryOver: %v", err)
	}
	// a (has incomplete child a2), a2, c. a1 and b are done and dropped.
	if added != 3 {
		t.Fatalf("added = %d, want 3", added)
	}

	target, err := p.Load(ctx, "work", "2025-10-11")
	if err != nil {
		t.Fatal(err)
	}
	ids := node.IDs(target)
	if len(ids) != 3 || ids[0] != "a" || ids[1] != "a2" || ids[2] != "c" {
		t.Fatalf("target ids = %v, want [a a2 c]", ids)
	}
	for _, n := range target {
		if !n.CarriedOver {
			t.Errorf("node %s not marked carried over", n.ID)
		}
	}

	// Source day is untouched.
	source, err := p.Load(ctx, "work", "2025-10-10")
	if err != nil {
		t.Fatal(err)
	}
	if !node.Equal(source, day1Forest()) {
		t.Fatal("carry-over must not mutate the source day")
	}
}

func TestCarryOverIsIdempotent(t *testing.T) {
	ctx := context.Background()
	p := testStore(t)

	if err := p.Save("work", "2025-10-10", day1Forest()); err != nil {
		t.Fatal(err)
	}
	if _, err := p.CarryOver(ctx, "work", "2025-10-10", "2025-10-11"); err != nil {
		t.Fatal(err)
	}
	added, err := p.CarryOver(ctx, "work", "2025-10-10", "2025-10-11")
	if err != nil {
		t.Fatal(err)
	}
	if added != 0 {
		t.Fatalf("second carry added %d nodes, want 0", added)
	}
}

func TestCarryOverRejectsSameDay(t *testing.T) {
	p := testStore(t)
	if _, err := p.CarryOver(context.Background(), "work", "2025-10-10", "2025-10-10"); err == nil {
		t.Fatal("expected error for identical days")
	}
}

func TestCarryOverNothingToDo(t *testing.T) {
	ctx := context.Background()
	p := testStore(t)

	if err := p.Save("work", "2025-10-10", []*node.Node{
		{ID: "a", Text: "done", Completed: true},
	}); err != nil {
		t.Fatal(err)
	}
	added, err := p.CarryOver(ctx, "work", "2025-10-10", "2025-10-11")
	if err != nil {
		t.Fatal(err)
	}
	if added != 0 {
		t.Fatalf("added = %d, want 0 when everything is done", added)
	}
}

func TestKeyTransformsRoundTrip(t *testing.T) {
	key := toKey("side project", "2025-10-11")
	pk := keyToPathTransform(key)
	if got := pathToKeyTransform(pk); got != key {
		t.Fatalf("transform round trip: got %q want %q", got, key)
	}
	if pk.FileName != "2025-10-11" {
		t.Fatalf("FileName = %q, want the day", pk.FileName)
	}
	if fromProject(pk.Path[0]) != "side project" {
		t.Fatalf("project decode: got %q", fromProject(pk.Path[0]))
	}
}
