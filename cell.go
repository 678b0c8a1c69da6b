package sheet

import "sort"

// Cell represents one addressable grid position: the raw source text
// the user typed, the analyzed name/expression split, the identifiers
// the expression references, and the last evaluated result.
type Cell struct {
	ID  string // canonical address, e.g. "BD45"
	Row uint32 // zero-based row index
	Col uint32 // zero-based column index

	Name       string // optional user alias, unique across the sheet
	Source     string // raw user text, e.g. "radius = 3"
	Expression string // the part of Source that gets evaluated

	// identifiers (cell ids or names) the expression references.
	// recomputed whenever Expression changes, never stale.
	Depends map[string]struct{}

	// last evaluated result, or an error marker. both empty until the
	// first successful evaluation.
	ValueType string
	Value     string
}

// DependsOn reports whether the cell's expression references id
func (c *Cell) DependsOn(id string) bool {
	_, ok := c.Depends[id]
	return ok
}

// CellStore is the authoritative map from cell id to cell state. it is
// plain storage: the Sheet facade enforces the re-analyze-then-update-
// graph protocol around every write.
type CellStore struct {
	cells map[string]*Cell
}

// NewCellStore creates an empty cell store
func NewCellStore() *CellStore {
	return &CellStore{
		cells: make(map[string]*Cell),
	}
}

// Get retrieves a cell by id
func (cs *CellStore) Get(id string) (*Cell, bool) {
	cell, exists := cs.cells[id]
	return cell, exists
}

// Put inserts or replaces a cell keyed by its id
func (cs *CellStore) Put(cell *Cell) {
	cs.cells[cell.ID] = cell
}

// Remove deletes a cell. returns true if the cell existed.
func (cs *CellStore) Remove(id string) bool {
	if _, exists := cs.cells[id]; !exists {
		return false
	}
	delete(cs.cells, id)
	return true
}

// Len returns the number of stored cells
func (cs *CellStore) Len() int {
	return len(cs.cells)
}

// IDs returns all cell ids in sorted order for deterministic iteration
func (cs *CellStore) IDs() []string {
	ids := make([]string, 0, len(cs.cells))
	for id := range cs.cells {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Extent returns the maximum row and column indices among cells with
// non-empty content, (0, 0) when the store is empty.
func (cs *CellStore) Extent() (rows, cols uint32) {
	for _, cell := range cs.cells {
		if cell.Source == "" {
			continue
		}
		if cell.Row > rows {
			rows = cell.Row
		}
		if cell.Col > cols {
			cols = cell.Col
		}
	}
	return rows, cols
}

// Clear removes every cell
func (cs *CellStore) Clear() {
	cs.cells = make(map[string]*Cell)
}
