package sheet

import (
	"sort"
	"strings"
)

// CellValue is a cell's entry in an update result: the evaluated type
// tag and serialized value, or an error marker and its message.
type CellValue struct {
	Type  string
	Value string
}

// Sheet combines the cell store, name registry, dependency graph and
// expression analyzer into a reactive calculation engine driving a
// pluggable evaluator backend.
//
// an edit batch flows through four phases: Analyzing (parse sources,
// extract dependencies), GraphUpdating (reject cycles, commit edges),
// Scheduling (affected closure in topological order) and Evaluating
// (drive the backend, write results back). user-input failures are
// reported per cell in the result map and never abort the batch.
//
// the engine is single-threaded and synchronous: callers embedding it
// in a concurrent server must serialize mutating calls per sheet.
type Sheet struct {
	store  *CellStore
	names  *NameRegistry
	graph  *DependencyGraph
	spread Spread
}

// New creates an empty sheet driving the given evaluator backend
func New(spread Spread) *Sheet {
	return &Sheet{
		store:  NewCellStore(),
		names:  NewNameRegistry(),
		graph:  NewDependencyGraph(),
		spread: spread,
	}
}

// edit is the per-batch working state for one cell
type edit struct {
	id      string
	row     uint32
	col     uint32
	source  string
	name    string
	expr    string
	depends map[string]struct{}
	clear   bool
}

// Update edits a single cell and recalculates everything affected
func (s *Sheet) Update(id, source string) map[string]CellValue {
	return s.UpdateBatch(map[string]string{id: source})
}

// UpdateBatch applies a batch of edits and returns the new (type,
// value) of every cell whose value can have changed: the edited cells
// plus all of their transitive dependents, evaluated in dependency
// order. cells whose edit was rejected (malformed address, duplicate
// name, cycle) appear in the result with an error marker; their prior
// content is retained and no other cell is affected by the rejection.
func (s *Sheet) UpdateBatch(edits map[string]string) map[string]CellValue {
	results := make(map[string]CellValue)

	// Analyzing: parse each edit and extract its dependency set
	pending := s.analyze(edits, results)

	// GraphUpdating: reject cycles, commit surviving edits
	seeds := make(map[string]struct{})
	for _, e := range pending {
		if e.clear {
			s.applyClear(e.id)
			results[e.id] = CellValue{}
			// dependents now read an undefined reference
			seeds[e.id] = struct{}{}
			continue
		}
		if s.wouldCycle(e) {
			// previous expression, edges and value stay untouched;
			// only the type marker is recorded
			if cell, exists := s.store.Get(e.id); exists {
				cell.ValueType = MarkerCycleError
			}
			results[e.id] = CellValue{MarkerCycleError, "cyclic dependency through " + e.id}
			continue
		}
		s.commit(e)
		seeds[e.id] = struct{}{}
	}

	// Scheduling: edited cells plus transitive dependents, linearized
	// against the (possibly recomputed) topological order
	affected := s.graph.AllSuccessors(seeds)
	for id := range seeds {
		affected[id] = struct{}{}
	}
	ordered := make([]string, 0, len(affected))
	for _, id := range s.graph.TopologicalOrder() {
		if _, ok := affected[id]; ok {
			ordered = append(ordered, id)
		}
	}

	// Evaluating
	s.evaluate(ordered, results)

	return results
}

// UpdateAll re-evaluates every currently-defined cell in full
// topological order. used when external state the evaluator reads has
// changed; with no intervening edits it is idempotent.
func (s *Sheet) UpdateAll() map[string]CellValue {
	results := make(map[string]CellValue)
	s.evaluate(s.graph.TopologicalOrder(), results)
	return results
}

// analyze parses every edit in deterministic order, records rejected
// edits in results and returns the surviving ones with their
// dependency sets attached.
func (s *Sheet) analyze(edits map[string]string, results map[string]CellValue) []*edit {
	ids := make([]string, 0, len(edits))
	for id := range edits {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	// names claimed by this batch, first edit wins
	claimed := make(map[string]string)

	var pending []*edit
	for _, rawID := range ids {
		source := edits[rawID]

		row, col, err := Index(rawID)
		if err != nil {
			results[rawID] = CellValue{MarkerAddressError, err.Error()}
			continue
		}
		id := Identify(row, col)

		if strings.TrimSpace(source) == "" {
			pending = append(pending, &edit{id: id, clear: true})
			continue
		}

		name, expr := ParseSource(source)
		if name != "" {
			if owner, bound := s.names.Resolve(name); bound && owner != id {
				results[id] = CellValue{MarkerNameError,
					newError(CodeDuplicateName, "name %q is already bound to %s", name, owner).Error()}
				continue
			}
			if owner, inBatch := claimed[name]; inBatch && owner != id {
				results[id] = CellValue{MarkerNameError,
					newError(CodeDuplicateName, "name %q is already bound to %s", name, owner).Error()}
				continue
			}
			claimed[name] = id
		}

		pending = append(pending, &edit{
			id:     id,
			row:    row,
			col:    col,
			source: source,
			name:   name,
			expr:   expr,
		})
	}

	// dependency extraction resolves names against the registry plus
	// the names this batch introduces
	isName := func(n string) bool {
		if s.names.IsBound(n) {
			return true
		}
		_, inBatch := claimed[n]
		return inBatch
	}
	for _, e := range pending {
		if !e.clear {
			e.depends = Dependencies(e.expr, isName)
		}
	}
	return pending
}

// wouldCycle checks an edit against the graph before anything is
// committed. a name change is part of the simulation: the alias edge
// the commit will drop is ignored and the one it will add is included,
// so a rename is neither falsely rejected through its stale alias nor
// admitted into a cycle through the new one.
func (s *Sheet) wouldCycle(e *edit) bool {
	oldName := s.names.NameOf(e.id)
	if oldName == "" && e.name == "" {
		return s.graph.WouldCycle(e.id, e.depends)
	}
	return s.graph.WouldCycleRenamed(e.id, e.depends, oldName, e.name)
}

// commit stores an analyzed edit: cell state, name binding, alias
// vertex and dependency edges, all or nothing.
func (s *Sheet) commit(e *edit) {
	cell, exists := s.store.Get(e.id)
	if !exists {
		cell = &Cell{ID: e.id, Row: e.row, Col: e.col}
		s.store.Put(cell)
	}

	oldName := s.names.NameOf(e.id)
	if oldName != e.name {
		if oldName != "" {
			s.names.Unbind(oldName)
			// the alias vertex loses its dependency edge but stays
			// behind for any cell still referencing the old name
			s.graph.SetDependencies(oldName, nil)
			s.graph.Prune(oldName)
			s.unassign(oldName)
		}
	}
	if e.name != "" {
		// cannot fail: conflicts were rejected during analysis
		_ = s.names.Bind(e.name, e.id)
		s.graph.SetDependencies(e.name, map[string]struct{}{e.id: {}})
	}

	cell.Name = e.name
	cell.Source = e.source
	cell.Expression = e.expr
	cell.Depends = e.depends
	s.graph.SetDependencies(e.id, e.depends)
}

// evaluate walks an ordered id list and drives the backend for every
// id that is an existing cell. vertices without cells (names, forward
// references) are skipped. evaluation failures are recorded on the
// cell and do not stop the walk: cells depending on an errored cell
// are still evaluated against whatever binding their operand last had.
func (s *Sheet) evaluate(ordered []string, results map[string]CellValue) {
	for _, id := range ordered {
		// a cell whose edit was rejected in this batch keeps its
		// marker entry, even when another edit also affects it; the
		// retained expression must not overwrite the report
		if r, rejected := results[id]; rejected && rejectionMarker(r.Type) {
			continue
		}
		cell, exists := s.store.Get(id)
		if !exists || cell.Expression == "" {
			continue
		}

		valueType, value, err := s.executeAndBind(cell.ID, Translate(cell.Expression))
		if err != nil {
			cell.ValueType = MarkerEvalError
			cell.Value = err.Error()
			results[id] = CellValue{MarkerEvalError, cell.Value}
			continue
		}

		cell.ValueType = valueType
		cell.Value = value
		results[id] = CellValue{valueType, value}

		// the name aliases the already-bound id
		if cell.Name != "" {
			_ = s.spread.Assign(cell.Name, cell.ID)
		}
	}
}

// executeAndBind evaluates a translated expression and leaves the
// result bound under id so later cells can reference it. backends
// exposing ExecuteAndBind do both with a single evaluation; plain
// Spread implementations execute and then assign the same expression.
func (s *Sheet) executeAndBind(id, translated string) (valueType, value string, err error) {
	if xb, ok := s.spread.(interface {
		ExecuteAndBind(nameOrID, expression string) (string, string, error)
	}); ok {
		return xb.ExecuteAndBind(id, translated)
	}
	valueType, value, err = s.spread.Execute(translated)
	if err != nil {
		return "", "", err
	}
	_ = s.spread.Assign(id, translated)
	return valueType, value, nil
}

// Clear removes one cell from the store, the name registry and the
// dependency graph. dependents are not re-evaluated: their depends
// sets keep referencing the id, which lives on as a forward-reference
// vertex until content is supplied again.
func (s *Sheet) Clear(id string) error {
	row, col, err := Index(id)
	if err != nil {
		return err
	}
	s.applyClear(Identify(row, col))
	return nil
}

func (s *Sheet) applyClear(id string) {
	if cell, exists := s.store.Get(id); exists {
		if cell.Name != "" {
			s.names.Unbind(cell.Name)
			s.graph.SetDependencies(cell.Name, nil)
			s.graph.Prune(cell.Name)
			s.unassign(cell.Name)
		}
		s.store.Remove(id)
		s.unassign(id)
	}
	if s.graph.Has(id) {
		s.graph.SetDependencies(id, nil)
		s.graph.Prune(id)
	}
}

// unassign drops a backend binding when the backend supports it, so a
// cleared cell reads as undefined instead of its last value. the
// Spread interface itself has no unbind operation.
func (s *Sheet) unassign(nameOrID string) {
	if u, ok := s.spread.(interface{ Unassign(string) }); ok {
		u.Unassign(nameOrID)
	}
}

// ClearAll removes every cell, name and graph vertex
func (s *Sheet) ClearAll() {
	s.store.Clear()
	s.names.Clear()
	s.graph.Clear()
}

// Cell returns the stored state of a cell
func (s *Sheet) Cell(id string) (*Cell, bool) {
	return s.store.Get(id)
}

// Extent returns the maximum row and column indices among cells with
// content, (0, 0) when the sheet is empty
func (s *Sheet) Extent() (rows, cols uint32) {
	return s.store.Extent()
}

// Predecessors returns the direct dependencies of a cell id or name
func (s *Sheet) Predecessors(id string) ([]string, error) {
	return s.graph.Predecessors(id)
}

// Successors returns the direct dependents of a cell id or name
func (s *Sheet) Successors(id string) ([]string, error) {
	return s.graph.Successors(id)
}

// List returns the serialized "type value" content of every cell,
// keyed by id and, for named cells, by name as well.
func (s *Sheet) List() map[string]string {
	listing := make(map[string]string)
	for _, id := range s.store.IDs() {
		cell, _ := s.store.Get(id)
		content := strings.TrimSpace(cell.ValueType + " " + cell.Value)
		listing[id] = content
		if cell.Name != "" {
			listing[cell.Name] = content
		}
	}
	return listing
}

// Order exposes the cached topological order for inspection
func (s *Sheet) Order() []string {
	order := s.graph.TopologicalOrder()
	out := make([]string, len(order))
	copy(out, order)
	return out
}
