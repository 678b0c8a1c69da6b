package eval

import "fmt"

// Spread is the interpreter's variable environment plus the three
// operations the sheet engine drives it through: Execute, Assign and
// Content. it holds global state and is not re-entrant; the engine
// guarantees at most one in-flight call.
type Spread struct {
	vars map[string]Value
}

// NewSpread creates an empty environment
func NewSpread() *Spread {
	return &Spread{
		vars: make(map[string]Value),
	}
}

// lookup resolves a variable for refExp
func (s *Spread) lookup(name string) (Value, bool) {
	v, ok := s.vars[name]
	return v, ok
}

// eval compiles and evaluates an expression against the environment
func (s *Spread) eval(expression string) (Value, error) {
	expr, err := Compile(expression)
	if err != nil {
		return Value{}, err
	}
	return expr.Eval(s)
}

// Execute evaluates an expression and returns its type tag and
// serialized value
func (s *Spread) Execute(expression string) (valueType, value string, err error) {
	v, err := s.eval(expression)
	if err != nil {
		return "", "", err
	}
	return v.Kind.String(), v.Format(), nil
}

// ExecuteAndBind evaluates an expression, binds the result under
// nameOrID and returns its type tag and serialized value. the engine
// discovers this method by type assertion and prefers it over Execute
// followed by Assign, which would evaluate the expression twice.
// nothing is bound when evaluation fails.
func (s *Spread) ExecuteAndBind(nameOrID, expression string) (valueType, value string, err error) {
	v, err := s.eval(expression)
	if err != nil {
		return "", "", err
	}
	s.vars[nameOrID] = v
	return v.Kind.String(), v.Format(), nil
}

// Assign evaluates valueExpr and binds the result under nameOrID,
// making it referenceable from later expressions.
func (s *Spread) Assign(nameOrID, valueExpr string) error {
	v, err := s.eval(valueExpr)
	if err != nil {
		return err
	}
	s.vars[nameOrID] = v
	return nil
}

// Content returns the serialized "type value" of a bound variable
func (s *Spread) Content(nameOrID string) (string, error) {
	v, ok := s.vars[nameOrID]
	if !ok {
		return "", fmt.Errorf("nothing bound to %q", nameOrID)
	}
	return v.Kind.String() + " " + v.Format(), nil
}

// Unassign drops a binding so the variable reads as undefined again.
// the engine discovers this method by type assertion when a cell or
// name is cleared.
func (s *Spread) Unassign(nameOrID string) {
	delete(s.vars, nameOrID)
}
