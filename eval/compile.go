package eval

import (
	"fmt"
	"strconv"
	"strings"
)

// operator stack entry kinds for the shunting-yard loop
type opKind int

const (
	opBinary opKind = iota
	opUnary
	opParen
	opFunc
)

type opEntry struct {
	kind       opKind
	op         string
	name       string // function name for opFunc
	commas     int    // argument separators seen, for opParen
	prec       int
	rightAssoc bool
}

var binaryPrec = map[string]int{
	"==": 1, "!=": 1, "<": 1, "<=": 1, ">": 1, ">=": 1,
	"+": 2, "-": 2,
	"*": 3, "/": 3, "%": 3,
	"^": 4,
}

// Compile parses an expression string into an evaluable AST using a
// shunting-yard pass over the token stream.
func Compile(input string) (Expression, error) {
	tokens, err := tokenize(input)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("empty expression")
	}

	var out []Expression
	var ops []opEntry

	pushOut := func(e Expression) { out = append(out, e) }
	popOut := func() Expression {
		e := out[len(out)-1]
		out = out[:len(out)-1]
		return e
	}

	apply := func(e opEntry) error {
		switch e.kind {
		case opUnary:
			if len(out) < 1 {
				return fmt.Errorf("missing operand for unary %q", e.op)
			}
			pushOut(&unaryExp{op: e.op, child: popOut()})
		case opBinary:
			if len(out) < 2 {
				return fmt.Errorf("missing operand for operator %q", e.op)
			}
			right := popOut()
			left := popOut()
			pushOut(&binaryExp{op: e.op, left: left, right: right})
		}
		return nil
	}

	prevOperand := false // last token completed an operand
	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		switch t.typ {
		case tokNumber:
			n, err := strconv.ParseFloat(t.text, 64)
			if err != nil {
				return nil, fmt.Errorf("bad number %q", t.text)
			}
			pushOut(&valueExp{value: Number(n)})
			prevOperand = true

		case tokString:
			pushOut(&valueExp{value: String(t.text)})
			prevOperand = true

		case tokIdent:
			if i+1 < len(tokens) && tokens[i+1].typ == tokLParen {
				ops = append(ops, opEntry{kind: opFunc, name: t.text})
				prevOperand = false
				continue
			}
			switch strings.ToLower(t.text) {
			case "true":
				pushOut(&valueExp{value: Boolean(true)})
			case "false":
				pushOut(&valueExp{value: Boolean(false)})
			default:
				pushOut(&refExp{variable: t.text})
			}
			prevOperand = true

		case tokOp:
			if !prevOperand {
				if t.text != "+" && t.text != "-" {
					return nil, fmt.Errorf("unexpected operator %q", t.text)
				}
				ops = append(ops, opEntry{kind: opUnary, op: t.text, prec: 5, rightAssoc: true})
				continue
			}
			prec := binaryPrec[t.text]
			entry := opEntry{kind: opBinary, op: t.text, prec: prec, rightAssoc: t.text == "^"}
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				if top.kind != opBinary && top.kind != opUnary {
					break
				}
				if top.prec > prec || (top.prec == prec && !entry.rightAssoc) {
					ops = ops[:len(ops)-1]
					if err := apply(top); err != nil {
						return nil, err
					}
					continue
				}
				break
			}
			ops = append(ops, entry)
			prevOperand = false

		case tokLParen:
			ops = append(ops, opEntry{kind: opParen})
			prevOperand = false

		case tokComma:
			if !prevOperand {
				return nil, fmt.Errorf("missing argument before \",\"")
			}
			for len(ops) > 0 && ops[len(ops)-1].kind != opParen {
				top := ops[len(ops)-1]
				ops = ops[:len(ops)-1]
				if err := apply(top); err != nil {
					return nil, err
				}
			}
			if len(ops) == 0 {
				return nil, fmt.Errorf("\",\" outside function call")
			}
			ops[len(ops)-1].commas++
			prevOperand = false

		case tokRParen:
			for len(ops) > 0 && ops[len(ops)-1].kind != opParen {
				top := ops[len(ops)-1]
				ops = ops[:len(ops)-1]
				if err := apply(top); err != nil {
					return nil, err
				}
			}
			if len(ops) == 0 {
				return nil, fmt.Errorf("unbalanced \")\"")
			}
			paren := ops[len(ops)-1]
			ops = ops[:len(ops)-1]

			if len(ops) > 0 && ops[len(ops)-1].kind == opFunc {
				fnEntry := ops[len(ops)-1]
				ops = ops[:len(ops)-1]

				argc := paren.commas + 1
				if tokens[i-1].typ == tokLParen {
					argc = 0
				}

				fn, known := lookupBuiltin(fnEntry.name)
				if !known {
					return nil, fmt.Errorf("unknown function %q", fnEntry.name)
				}
				if err := fn.checkArity(fnEntry.name, argc); err != nil {
					return nil, err
				}
				if len(out) < argc {
					return nil, fmt.Errorf("missing arguments for %q", fnEntry.name)
				}
				args := make([]Expression, argc)
				for j := argc - 1; j >= 0; j-- {
					args[j] = popOut()
				}
				pushOut(&callExp{name: fnEntry.name, fn: fn, args: args})
			} else if paren.commas > 0 {
				return nil, fmt.Errorf("\",\" outside function call")
			}
			prevOperand = true
		}
	}

	for len(ops) > 0 {
		top := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		if top.kind == opParen || top.kind == opFunc {
			return nil, fmt.Errorf("unbalanced \"(\"")
		}
		if err := apply(top); err != nil {
			return nil, err
		}
	}

	if len(out) != 1 {
		return nil, fmt.Errorf("malformed expression")
	}
	return out[0], nil
}
