package sheet

import "sort"

// vertex is one entry in the graph arena. adjacency is stored as
// string-keyed index sets on both sides so removal never leaves a
// dangling edge.
type vertex struct {
	in  map[string]struct{} // dependencies: d in `in` means edge (d, this)
	out map[string]struct{} // dependents: c in `out` means edge (this, c)
}

func newVertex() *vertex {
	return &vertex{
		in:  make(map[string]struct{}),
		out: make(map[string]struct{}),
	}
}

// DependencyGraph is a directed graph over the union of cell ids and
// names, with edges running dependency -> dependent. vertices exist
// independently of cells, so an expression may reference a cell that has
// no content yet (a forward reference). the topological order is cached
// and invalidated unconditionally by every structural mutation.
type DependencyGraph struct {
	vertices map[string]*vertex

	// order cache, valid only while prepared is true
	order    []string
	prepared bool
}

// NewDependencyGraph creates an empty dependency graph
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		vertices: make(map[string]*vertex),
	}
}

// ensure gets an existing vertex or creates a new one
func (g *DependencyGraph) ensure(id string) *vertex {
	if v, exists := g.vertices[id]; exists {
		return v
	}
	v := newVertex()
	g.vertices[id] = v
	g.invalidate()
	return v
}

// invalidate drops the cached topological order. called from every
// mutation, never left to callers.
func (g *DependencyGraph) invalidate() {
	g.order = nil
	g.prepared = false
}

// Has reports whether a vertex exists for id
func (g *DependencyGraph) Has(id string) bool {
	_, exists := g.vertices[id]
	return exists
}

// VertexCount returns the number of vertices in the graph
func (g *DependencyGraph) VertexCount() int {
	return len(g.vertices)
}

// SetDependencies replaces the dependency edges into id: every edge
// (d, id) from the old dependency set is removed, then an edge (d, id)
// is added for each d in depends, creating vertices as needed. callers
// must check WouldCycle first; SetDependencies does not.
func (g *DependencyGraph) SetDependencies(id string, depends map[string]struct{}) {
	v := g.ensure(id)

	// clear old in-edges
	for d := range v.in {
		if dv, exists := g.vertices[d]; exists {
			delete(dv.out, id)
		}
		delete(v.in, d)
	}

	for d := range depends {
		dv := g.ensure(d)
		dv.out[id] = struct{}{}
		v.in[d] = struct{}{}
	}

	g.invalidate()
}

// WouldCycle reports whether replacing id's dependency set with depends
// would make the graph cyclic. it simulates the change without
// mutating anything: the new edges all point into id, so a cycle can
// only close through id, i.e. exactly when id already reaches one of
// its proposed dependencies (or depends on itself).
func (g *DependencyGraph) WouldCycle(id string, depends map[string]struct{}) bool {
	return g.simulateCycle(id, depends, "", "")
}

// WouldCycleRenamed is WouldCycle for an edit that also moves id's
// alias edge: the edge (id, oldAlias) is treated as removed and the
// edge (id, newAlias) as already present. either alias may be empty.
// without this a rename is checked against the stale alias and can be
// falsely rejected, or admitted into a cycle through the new alias.
func (g *DependencyGraph) WouldCycleRenamed(id string, depends map[string]struct{}, oldAlias, newAlias string) bool {
	return g.simulateCycle(id, depends, oldAlias, newAlias)
}

// simulateCycle runs the reachability walk with id's out edges
// adjusted: dropOut removed, addOut appended. both adjustments only
// apply at id itself, which is the only vertex the edit touches.
func (g *DependencyGraph) simulateCycle(id string, depends map[string]struct{}, dropOut, addOut string) bool {
	for d := range depends {
		if d == id {
			return true
		}
	}

	// BFS over dependents from id, stopping at any proposed dependency
	var queue []string
	if start, exists := g.vertices[id]; exists {
		for c := range start.out {
			if c == dropOut {
				continue
			}
			queue = append(queue, c)
		}
	}
	if addOut != "" {
		queue = append(queue, addOut)
	}

	visited := map[string]struct{}{id: {}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if _, seen := visited[cur]; seen {
			continue
		}
		visited[cur] = struct{}{}
		if _, isTarget := depends[cur]; isTarget {
			return true
		}
		if v, ok := g.vertices[cur]; ok {
			for c := range v.out {
				queue = append(queue, c)
			}
		}
	}
	return false
}

// Predecessors returns the direct dependencies of id, sorted
func (g *DependencyGraph) Predecessors(id string) ([]string, error) {
	v, exists := g.vertices[id]
	if !exists {
		return nil, newError(CodeUnknownReference, "unknown id %q", id)
	}
	return sortedKeys(v.in), nil
}

// Successors returns the direct dependents of id, sorted
func (g *DependencyGraph) Successors(id string) ([]string, error) {
	v, exists := g.vertices[id]
	if !exists {
		return nil, newError(CodeUnknownReference, "unknown id %q", id)
	}
	return sortedKeys(v.out), nil
}

// AllSuccessors collects the transitive dependents of every id in
// seeds: the set of vertices whose value can change when the seeds do.
// the seeds themselves are not included.
func (g *DependencyGraph) AllSuccessors(seeds map[string]struct{}) map[string]struct{} {
	result := make(map[string]struct{})
	var visit func(id string)
	visit = func(id string) {
		v, exists := g.vertices[id]
		if !exists {
			return
		}
		for c := range v.out {
			if _, seen := result[c]; seen {
				continue
			}
			result[c] = struct{}{}
			visit(c)
		}
	}
	for id := range seeds {
		visit(id)
	}
	return result
}

// TopologicalOrder returns a full dependency-respecting ordering of
// every vertex: each vertex appears after all of its dependencies. the
// result is cached until the next structural mutation. the graph is
// acyclic by construction (cycles are rejected before commit), so the
// order always covers every vertex.
func (g *DependencyGraph) TopologicalOrder() []string {
	if g.prepared {
		return g.order
	}

	// DFS with three states per vertex: unvisited (absent), visiting
	// (false), done (true). sorted iteration keeps the order stable
	// across runs.
	state := make(map[string]bool, len(g.vertices))
	order := make([]string, 0, len(g.vertices))

	var visit func(id string)
	visit = func(id string) {
		if _, exists := state[id]; exists {
			return
		}
		state[id] = false
		for _, d := range sortedKeys(g.vertices[id].in) {
			if _, exists := g.vertices[d]; exists {
				visit(d)
			}
		}
		state[id] = true
		order = append(order, id)
	}

	for _, id := range sortedVertexKeys(g.vertices) {
		visit(id)
	}

	g.order = order
	g.prepared = true
	return g.order
}

// RemoveVertex removes a vertex and every edge touching it
func (g *DependencyGraph) RemoveVertex(id string) bool {
	v, exists := g.vertices[id]
	if !exists {
		return false
	}

	for d := range v.in {
		if dv, ok := g.vertices[d]; ok {
			delete(dv.out, id)
		}
	}
	for c := range v.out {
		if cv, ok := g.vertices[c]; ok {
			delete(cv.in, id)
		}
	}

	delete(g.vertices, id)
	g.invalidate()
	return true
}

// Prune removes a vertex only if nothing points at it or from it.
// used after clearing a cell: if other cells still reference the id it
// stays behind as a forward-reference vertex.
func (g *DependencyGraph) Prune(id string) bool {
	v, exists := g.vertices[id]
	if !exists {
		return false
	}
	if len(v.in) > 0 || len(v.out) > 0 {
		return false
	}
	delete(g.vertices, id)
	g.invalidate()
	return true
}

// Clear removes all vertices and edges
func (g *DependencyGraph) Clear() {
	g.vertices = make(map[string]*vertex)
	g.invalidate()
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedVertexKeys(m map[string]*vertex) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
