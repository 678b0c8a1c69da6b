// Package eval is an embedded expression interpreter with a variable
// environment. it implements the evaluator backend the sheet engine
// drives: expressions are compiled to a small AST and evaluated against
// the environment, producing typed values that serialize to strings.
package eval

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind enumerates the value types the interpreter produces
type Kind int

const (
	KindNumber Kind = iota
	KindString
	KindBoolean
	KindSequence
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBoolean:
		return "boolean"
	case KindSequence:
		return "sequence"
	}
	return "unknown"
}

// Value is one evaluated result. exactly one of the payload fields is
// meaningful, selected by Kind.
type Value struct {
	Kind Kind
	Num  float64
	Str  string
	Bool bool
	Seq  []Value
}

// Number wraps a float64
func Number(n float64) Value {
	return Value{Kind: KindNumber, Num: n}
}

// String wraps a string
func String(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// Boolean wraps a bool
func Boolean(b bool) Value {
	return Value{Kind: KindBoolean, Bool: b}
}

// Sequence wraps a value list
func Sequence(vs []Value) Value {
	return Value{Kind: KindSequence, Seq: vs}
}

// Format serializes a value for display and for the engine's cell store
func (v Value) Format() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	case KindString:
		return v.Str
	case KindBoolean:
		return strconv.FormatBool(v.Bool)
	case KindSequence:
		parts := make([]string, len(v.Seq))
		for i, item := range v.Seq {
			parts[i] = item.Format()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return ""
}

// asNumber coerces a value to float64 for arithmetic
func (v Value) asNumber() (float64, error) {
	if v.Kind != KindNumber {
		return 0, fmt.Errorf("expected a number, got %s %q", v.Kind, v.Format())
	}
	return v.Num, nil
}

// flatten appends every scalar inside v (recursing into sequences) to
// dst. used by the aggregation builtins.
func (v Value) flatten(dst []Value) []Value {
	if v.Kind != KindSequence {
		return append(dst, v)
	}
	for _, item := range v.Seq {
		dst = item.flatten(dst)
	}
	return dst
}
