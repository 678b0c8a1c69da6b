package sheet

// Spread is the pluggable expression-evaluation backend the engine
// drives. the engine never interprets expressions itself; it discovers
// which variables an expression references, rewrites sheet-only syntax
// (Translate) and forwards the result here.
//
// implementations are typically a single embedded interpreter with
// global state and are not assumed to be re-entrant: the engine issues
// at most one call at a time.
//
// backends may additionally implement
//
//	ExecuteAndBind(nameOrID, expression string) (string, string, error)
//	Unassign(nameOrID string)
//
// which the engine discovers by type assertion: the former folds
// Execute and Assign into a single evaluation, the latter drops a
// binding when a cell or name is cleared.
type Spread interface {
	// Execute evaluates a translated expression in the backend's
	// current environment and returns a type tag and a
	// string-serialized value.
	Execute(expression string) (valueType, value string, err error)

	// Assign binds a variable in the backend environment. the engine
	// assigns every successfully evaluated cell under its id (and
	// name, if any) so other cells' expressions can reference it.
	Assign(nameOrID, valueExpr string) error

	// Content returns a serialized "type value" for a bound variable
	Content(nameOrID string) (string, error)
}
