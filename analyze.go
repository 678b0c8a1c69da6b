package sheet

import (
	"regexp"
	"strings"
)

// namePattern is the identifier grammar for user-assigned cell names:
// lower-case letter first, then letters, digits or underscores.
var namePattern = regexp.MustCompile(`^[a-z][A-Za-z0-9_]*$`)

// ParseSource splits raw cell text into an optional name and the
// expression to evaluate. the split happens at the first top-level "="
// (outside string literals, not part of ==, <=, >=, !=). a left-hand
// side matching the name grammar becomes the name; an empty left-hand
// side marks an anonymous formula ("= A1+B2"); anything else means the
// whole source is the expression.
func ParseSource(source string) (name, expression string) {
	depth := 0
	for i := 0; i < len(source); i++ {
		switch c := source[i]; c {
		case '"', '\'':
			i = skipLiteral(source, i)
		case '(':
			depth++
		case ')':
			depth--
		case '=':
			if i+1 < len(source) && source[i+1] == '=' {
				i++ // "=="
				continue
			}
			if i > 0 {
				switch source[i-1] {
				case '<', '>', '!', '=':
					continue
				}
			}
			if depth > 0 {
				continue
			}
			lhs := strings.TrimSpace(source[:i])
			rhs := strings.TrimSpace(source[i+1:])
			if lhs == "" {
				return "", rhs
			}
			if namePattern.MatchString(lhs) {
				return lhs, rhs
			}
			return "", strings.TrimSpace(source)
		}
	}
	return "", strings.TrimSpace(source)
}

// refRun is one maximal run of cell ids joined by ":" and "&" found in
// an expression, e.g. "A1&A2:A3". IDs holds the fully expanded,
// de-duplicated, order-preserving cell list.
type refRun struct {
	Start, End int
	IDs        []string
	HasOp      bool // run contained ":" or "&"
}

// scanExpression walks an expression and returns its reference runs
// plus every bare identifier token that matches the name grammar (with
// function call names excluded). string literals are skipped entirely.
func scanExpression(expression string, isName func(string) bool) (runs []refRun, names []string) {
	i := 0
	for i < len(expression) {
		c := expression[i]

		if c == '"' || c == '\'' {
			i = skipLiteral(expression, i) + 1
			continue
		}

		if !isIdentStart(c) {
			i++
			continue
		}

		j := scanIdent(expression, i)
		tok := expression[i:j]

		// an identifier directly followed by "(" is a function call,
		// never a reference, even when it looks like a cell id (LOG10)
		if j < len(expression) && expression[j] == '(' {
			i = j
			continue
		}

		if IsCellID(tok) {
			run := refRun{Start: i, IDs: []string{tok}}
			seen := map[string]struct{}{tok: {}}
			prev := tok

			for j < len(expression) && (expression[j] == ':' || expression[j] == '&') {
				op := expression[j]
				k := j + 1
				if k >= len(expression) || !isIdentStart(expression[k]) {
					break
				}
				m := scanIdent(expression, k)
				next := expression[k:m]
				if !IsCellID(next) || (m < len(expression) && expression[m] == '(') {
					break
				}

				if op == ':' {
					// the range contributes every cell in the closed
					// rectangle; overlap with what the run already holds
					// is removed by de-duplication
					span, err := interpolateIDs(prev, next)
					if err != nil {
						break
					}
					for _, id := range span {
						if _, dup := seen[id]; !dup {
							seen[id] = struct{}{}
							run.IDs = append(run.IDs, id)
						}
					}
				} else {
					if _, dup := seen[next]; !dup {
						seen[next] = struct{}{}
						run.IDs = append(run.IDs, next)
					}
				}
				run.HasOp = true
				prev = next
				j = m
			}

			run.End = j
			runs = append(runs, run)
			i = j
			continue
		}

		if namePattern.MatchString(tok) && isName != nil && isName(tok) {
			names = append(names, tok)
		}
		i = j
	}
	return runs, names
}

// Dependencies extracts the set of identifiers an expression
// references: cell ids, every cell inside range/union runs, and bound
// names (isName reports whether an identifier is a known name).
func Dependencies(expression string, isName func(string) bool) map[string]struct{} {
	deps := make(map[string]struct{})
	runs, names := scanExpression(expression, isName)
	for _, run := range runs {
		for _, id := range run.IDs {
			deps[id] = struct{}{}
		}
	}
	for _, name := range names {
		deps[name] = struct{}{}
	}
	return deps
}

// Translate rewrites sheet-only operators into backend-callable syntax:
// each maximal run of cell ids joined by ":" and "&" becomes a single
// SEQ(...) call over the expanded cell list. "A1:A3" -> "SEQ(A1,A2,A3)",
// "A1&A2:A3" -> "SEQ(A1,A2,A3)". lone ids and everything else,
// including ":" and "&" inside string literals, pass through untouched.
func Translate(expression string) string {
	runs, _ := scanExpression(expression, nil)

	var b strings.Builder
	last := 0
	for _, run := range runs {
		if !run.HasOp {
			continue
		}
		b.WriteString(expression[last:run.Start])
		b.WriteString("SEQ(")
		b.WriteString(strings.Join(run.IDs, ","))
		b.WriteString(")")
		last = run.End
	}
	b.WriteString(expression[last:])
	return b.String()
}

// skipLiteral returns the index of the closing quote of the string
// literal opening at i (or the last index if unterminated).
func skipLiteral(s string, i int) int {
	quote := s[i]
	for j := i + 1; j < len(s); j++ {
		if s[j] == quote {
			return j
		}
	}
	return len(s) - 1
}

func isIdentStart(c byte) bool {
	return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c == '_'
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || c >= '0' && c <= '9'
}

// scanIdent returns the end offset of the identifier starting at i
func scanIdent(s string, i int) int {
	j := i
	for j < len(s) && isIdentChar(s[j]) {
		j++
	}
	return j
}
