package sheet

import "sort"

// NameRegistry is the bidirectional mapping between user-assigned
// names and cell ids. a name resolves to exactly one cell id at any
// time; binding a name that is already taken by a different cell
// fails rather than silently rebinding.
type NameRegistry struct {
	nameToID map[string]string
	idToName map[string]string
}

// NewNameRegistry creates an empty name registry
func NewNameRegistry() *NameRegistry {
	return &NameRegistry{
		nameToID: make(map[string]string),
		idToName: make(map[string]string),
	}
}

// Bind associates name with id. binding the same pair twice is a
// no-op; binding a name owned by another cell returns DuplicateName.
// a cell renames by binding its new name after unbinding its old one.
func (nr *NameRegistry) Bind(name, id string) error {
	if owner, exists := nr.nameToID[name]; exists {
		if owner == id {
			return nil
		}
		return newError(CodeDuplicateName, "name %q is already bound to %s", name, owner)
	}

	// a cell holds at most one name
	if old, exists := nr.idToName[id]; exists {
		delete(nr.nameToID, old)
	}

	nr.nameToID[name] = id
	nr.idToName[id] = name
	return nil
}

// Unbind removes a name binding. unknown names are ignored.
func (nr *NameRegistry) Unbind(name string) {
	id, exists := nr.nameToID[name]
	if !exists {
		return
	}
	delete(nr.nameToID, name)
	delete(nr.idToName, id)
}

// UnbindCell removes whatever name the given cell holds, returning the
// removed name ("" if the cell was unnamed).
func (nr *NameRegistry) UnbindCell(id string) string {
	name, exists := nr.idToName[id]
	if !exists {
		return ""
	}
	delete(nr.nameToID, name)
	delete(nr.idToName, id)
	return name
}

// Resolve returns the cell id a name is bound to
func (nr *NameRegistry) Resolve(name string) (string, bool) {
	id, exists := nr.nameToID[name]
	return id, exists
}

// NameOf returns the name held by a cell, "" if unnamed
func (nr *NameRegistry) NameOf(id string) string {
	return nr.idToName[id]
}

// IsBound reports whether name is currently bound
func (nr *NameRegistry) IsBound(name string) bool {
	_, exists := nr.nameToID[name]
	return exists
}

// Names returns all bound names in sorted order
func (nr *NameRegistry) Names() []string {
	names := make([]string, 0, len(nr.nameToID))
	for name := range nr.nameToID {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of bindings
func (nr *NameRegistry) Len() int {
	return len(nr.nameToID)
}

// Clear removes every binding
func (nr *NameRegistry) Clear() {
	nr.nameToID = make(map[string]string)
	nr.idToName = make(map[string]string)
}
