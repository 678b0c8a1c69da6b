package sheet

import (
	"reflect"
	"testing"
)

func deps(ids ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func TestGraphSetDependencies(t *testing.T) {
	g := NewDependencyGraph()
	g.SetDependencies("C1", deps("A1", "B1"))

	preds, err := g.Predecessors("C1")
	if err != nil {
		t.Fatalf("Predecessors(C1) failed: %v", err)
	}
	if !reflect.DeepEqual(preds, []string{"A1", "B1"}) {
		t.Errorf("Predecessors(C1) = %v, want [A1 B1]", preds)
	}

	// forward references exist as vertices even without cells
	if !g.Has("A1") || !g.Has("B1") {
		t.Error("dependency vertices should be created on demand")
	}

	succs, err := g.Successors("A1")
	if err != nil {
		t.Fatalf("Successors(A1) failed: %v", err)
	}
	if !reflect.DeepEqual(succs, []string{"C1"}) {
		t.Errorf("Successors(A1) = %v, want [C1]", succs)
	}
}

func TestGraphSetDependenciesReplacesOldEdges(t *testing.T) {
	g := NewDependencyGraph()
	g.SetDependencies("C1", deps("A1"))
	g.SetDependencies("C1", deps("B1"))

	succs, _ := g.Successors("A1")
	if len(succs) != 0 {
		t.Errorf("A1 should have no dependents after replacement, got %v", succs)
	}
	preds, _ := g.Predecessors("C1")
	if !reflect.DeepEqual(preds, []string{"B1"}) {
		t.Errorf("Predecessors(C1) = %v, want [B1]", preds)
	}
}

func TestGraphUnknownReference(t *testing.T) {
	g := NewDependencyGraph()
	if _, err := g.Predecessors("Z9"); CodeOf(err) != CodeUnknownReference {
		t.Errorf("expected UnknownReference error, got %v", err)
	}
	if _, err := g.Successors("Z9"); CodeOf(err) != CodeUnknownReference {
		t.Errorf("expected UnknownReference error, got %v", err)
	}
}

func TestGraphWouldCycle(t *testing.T) {
	g := NewDependencyGraph()
	g.SetDependencies("B1", deps("A1"))
	g.SetDependencies("C1", deps("B1"))

	// direct self-reference
	if !g.WouldCycle("A1", deps("A1")) {
		t.Error("self-reference should cycle")
	}

	// two-step cycle: A1 -> B1 exists, proposing B1 -> A1
	if !g.WouldCycle("A1", deps("B1")) {
		t.Error("A1 depending on B1 should cycle")
	}

	// transitive cycle through C1
	if !g.WouldCycle("A1", deps("C1")) {
		t.Error("A1 depending on C1 should cycle")
	}

	// no cycle the other way
	if g.WouldCycle("D1", deps("C1")) {
		t.Error("D1 depending on C1 should not cycle")
	}

	// WouldCycle must not mutate the graph
	if g.Has("D1") {
		t.Error("WouldCycle created a vertex")
	}
}

func TestGraphWouldCycleRenamed(t *testing.T) {
	g := NewDependencyGraph()
	// A1 carries the alias x, B1 depends on it
	g.SetDependencies("B1", deps("x"))
	g.SetDependencies("x", deps("A1"))

	// without the rename adjustment the stale alias closes a false
	// cycle A1 -> x -> B1 -> A1
	if !g.WouldCycle("A1", deps("B1")) {
		t.Error("WouldCycle should report the path through the current alias")
	}

	// the rename drops (A1, x), so depending on B1 is fine
	if g.WouldCycleRenamed("A1", deps("B1"), "x", "y") {
		t.Error("rename to y should not cycle: x becomes a forward reference")
	}

	// dropping the name entirely behaves the same
	if g.WouldCycleRenamed("A1", deps("B1"), "x", "") {
		t.Error("dropping the alias should not cycle")
	}

	// renaming onto a name that already feeds a dependency closes a
	// cycle through the new alias edge
	g2 := NewDependencyGraph()
	g2.SetDependencies("B1", deps("y"))
	if !g2.WouldCycleRenamed("A1", deps("B1"), "", "y") {
		t.Error("new alias A1 -> y -> B1 -> A1 should cycle")
	}

	// referencing the freshly assumed name is a self-cycle
	if !g2.WouldCycleRenamed("C1", deps("z"), "", "z") {
		t.Error("depending on the cell's own new name should cycle")
	}
}

func TestGraphTopologicalOrder(t *testing.T) {
	g := NewDependencyGraph()
	g.SetDependencies("B1", deps("A1"))
	g.SetDependencies("C1", deps("B1"))
	g.SetDependencies("D1", deps("A1", "C1"))

	order := g.TopologicalOrder()
	if len(order) != 4 {
		t.Fatalf("order has %d entries, want 4", len(order))
	}

	pos := make(map[string]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	for _, pair := range [][2]string{{"A1", "B1"}, {"B1", "C1"}, {"C1", "D1"}, {"A1", "D1"}} {
		if pos[pair[0]] > pos[pair[1]] {
			t.Errorf("%s should come before %s in %v", pair[0], pair[1], order)
		}
	}
}

func TestGraphOrderCacheInvalidation(t *testing.T) {
	g := NewDependencyGraph()
	g.SetDependencies("B1", deps("A1"))

	first := g.TopologicalOrder()
	if !g.prepared {
		t.Fatal("order should be cached after TopologicalOrder")
	}

	// cache hit: same slice back
	second := g.TopologicalOrder()
	if &first[0] != &second[0] {
		t.Error("expected the cached order on the second call")
	}

	// any structural change invalidates
	g.SetDependencies("C1", deps("B1"))
	if g.prepared {
		t.Error("mutation should invalidate the cached order")
	}
	if got := g.TopologicalOrder(); len(got) != 3 {
		t.Errorf("recomputed order has %d entries, want 3", len(got))
	}

	g.RemoveVertex("C1")
	if g.prepared {
		t.Error("RemoveVertex should invalidate the cached order")
	}
}

func TestGraphRemoveVertex(t *testing.T) {
	g := NewDependencyGraph()
	g.SetDependencies("B1", deps("A1"))
	g.SetDependencies("C1", deps("B1"))

	if !g.RemoveVertex("B1") {
		t.Fatal("RemoveVertex(B1) returned false")
	}
	if g.Has("B1") {
		t.Error("B1 still present")
	}

	// no dangling edges on either side
	succs, _ := g.Successors("A1")
	if len(succs) != 0 {
		t.Errorf("A1 still has dependents: %v", succs)
	}
	preds, _ := g.Predecessors("C1")
	if len(preds) != 0 {
		t.Errorf("C1 still has dependencies: %v", preds)
	}
}

func TestGraphPrune(t *testing.T) {
	g := NewDependencyGraph()
	g.SetDependencies("B1", deps("A1"))

	// A1 has a dependent: prune keeps it as a forward reference
	if g.Prune("A1") {
		t.Error("Prune removed a vertex with dependents")
	}

	// detach B1, then both become isolated
	g.SetDependencies("B1", nil)
	if !g.Prune("A1") {
		t.Error("Prune should remove the isolated A1")
	}
	if !g.Prune("B1") {
		t.Error("Prune should remove the isolated B1")
	}
	if g.VertexCount() != 0 {
		t.Errorf("graph should be empty, has %d vertices", g.VertexCount())
	}
}

func BenchmarkGraphSetDependencies(b *testing.B) {
	g := NewDependencyGraph()
	for i := 0; i < b.N; i++ {
		id := Identify(uint32(i%1000), 1)
		g.SetDependencies(id, deps(Identify(uint32(i%1000), 0)))
	}
}

func BenchmarkGraphTopologicalOrder(b *testing.B) {
	g := NewDependencyGraph()
	// a 1000-cell chain
	for i := 1; i < 1000; i++ {
		g.SetDependencies(Identify(uint32(i), 0), deps(Identify(uint32(i-1), 0)))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.invalidate()
		g.TopologicalOrder()
	}
}
