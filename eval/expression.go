package eval

import (
	"fmt"
	"math"
)

// Expression is a compiled expression that can be evaluated against an
// environment
type Expression interface {
	Eval(env *Spread) (Value, error)
}

type valueExp struct {
	value Value
}

func (e *valueExp) Eval(*Spread) (Value, error) {
	return e.value, nil
}

// refExp resolves a variable from the environment. unbound variables
// (forward references from the engine's point of view) are an
// evaluation error, not a crash.
type refExp struct {
	variable string
}

func (e *refExp) Eval(env *Spread) (Value, error) {
	v, ok := env.lookup(e.variable)
	if !ok {
		return Value{}, fmt.Errorf("undefined variable %q", e.variable)
	}
	return v, nil
}

type unaryExp struct {
	op    string
	child Expression
}

func (e *unaryExp) Eval(env *Spread) (Value, error) {
	v, err := e.child.Eval(env)
	if err != nil {
		return Value{}, err
	}
	n, err := v.asNumber()
	if err != nil {
		return Value{}, fmt.Errorf("unary %q: %w", e.op, err)
	}
	if e.op == "-" {
		return Number(-n), nil
	}
	return Number(n), nil
}

type binaryExp struct {
	op          string
	left, right Expression
}

func (e *binaryExp) Eval(env *Spread) (Value, error) {
	lv, err := e.left.Eval(env)
	if err != nil {
		return Value{}, err
	}
	rv, err := e.right.Eval(env)
	if err != nil {
		return Value{}, err
	}

	switch e.op {
	case "+":
		// + concatenates strings, everything else is numeric
		if lv.Kind == KindString && rv.Kind == KindString {
			return String(lv.Str + rv.Str), nil
		}
		return numericOp(e.op, lv, rv, func(a, b float64) float64 { return a + b })
	case "-":
		return numericOp(e.op, lv, rv, func(a, b float64) float64 { return a - b })
	case "*":
		return numericOp(e.op, lv, rv, func(a, b float64) float64 { return a * b })
	case "/":
		if rv.Kind == KindNumber && rv.Num == 0 {
			return Value{}, fmt.Errorf("division by zero")
		}
		return numericOp(e.op, lv, rv, func(a, b float64) float64 { return a / b })
	case "%":
		if rv.Kind == KindNumber && rv.Num == 0 {
			return Value{}, fmt.Errorf("division by zero")
		}
		return numericOp(e.op, lv, rv, math.Mod)
	case "^":
		return numericOp(e.op, lv, rv, math.Pow)
	case "==":
		return Boolean(valuesEqual(lv, rv)), nil
	case "!=":
		return Boolean(!valuesEqual(lv, rv)), nil
	case "<", "<=", ">", ">=":
		return compare(e.op, lv, rv)
	}
	return Value{}, fmt.Errorf("unknown operator %q", e.op)
}

func numericOp(op string, lv, rv Value, f func(a, b float64) float64) (Value, error) {
	a, err := lv.asNumber()
	if err != nil {
		return Value{}, fmt.Errorf("operator %q: %w", op, err)
	}
	b, err := rv.asNumber()
	if err != nil {
		return Value{}, fmt.Errorf("operator %q: %w", op, err)
	}
	return Number(f(a, b)), nil
}

func valuesEqual(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindNumber:
		return a.Num == b.Num
	case KindString:
		return a.Str == b.Str
	case KindBoolean:
		return a.Bool == b.Bool
	case KindSequence:
		if len(a.Seq) != len(b.Seq) {
			return false
		}
		for i := range a.Seq {
			if !valuesEqual(a.Seq[i], b.Seq[i]) {
				return false
			}
		}
		return true
	}
	return false
}

func compare(op string, lv, rv Value) (Value, error) {
	var cmp int
	switch {
	case lv.Kind == KindNumber && rv.Kind == KindNumber:
		switch {
		case lv.Num < rv.Num:
			cmp = -1
		case lv.Num > rv.Num:
			cmp = 1
		}
	case lv.Kind == KindString && rv.Kind == KindString:
		switch {
		case lv.Str < rv.Str:
			cmp = -1
		case lv.Str > rv.Str:
			cmp = 1
		}
	default:
		return Value{}, fmt.Errorf("operator %q: cannot compare %s and %s", op, lv.Kind, rv.Kind)
	}

	switch op {
	case "<":
		return Boolean(cmp < 0), nil
	case "<=":
		return Boolean(cmp <= 0), nil
	case ">":
		return Boolean(cmp > 0), nil
	}
	return Boolean(cmp >= 0), nil
}

type callExp struct {
	name string
	fn   *builtin
	args []Expression
}

func (e *callExp) Eval(env *Spread) (Value, error) {
	args := make([]Value, len(e.args))
	for i, arg := range e.args {
		v, err := arg.Eval(env)
		if err != nil {
			return Value{}, err
		}
		args[i] = v
	}
	result, err := e.fn.apply(args)
	if err != nil {
		return Value{}, fmt.Errorf("%s: %w", e.name, err)
	}
	return result, nil
}
