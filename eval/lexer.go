package eval

import "fmt"

type tokenType int

const (
	tokNumber tokenType = iota
	tokString
	tokIdent
	tokOp
	tokLParen
	tokRParen
	tokComma
)

type token struct {
	typ  tokenType
	text string
}

// tokenize splits an expression into tokens. the grammar is small:
// numbers (with optional fraction and exponent), single- or
// double-quoted strings, identifiers, parentheses, commas and the
// operator set + - * / % ^ == != < <= > >=.
func tokenize(input string) ([]token, error) {
	var tokens []token
	i := 0
	for i < len(input) {
		c := input[i]

		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++

		case c >= '0' && c <= '9' || c == '.':
			j := i
			for j < len(input) && (input[j] >= '0' && input[j] <= '9' || input[j] == '.') {
				j++
			}
			// exponent part
			if j < len(input) && (input[j] == 'e' || input[j] == 'E') {
				k := j + 1
				if k < len(input) && (input[k] == '+' || input[k] == '-') {
					k++
				}
				if k < len(input) && input[k] >= '0' && input[k] <= '9' {
					for k < len(input) && input[k] >= '0' && input[k] <= '9' {
						k++
					}
					j = k
				}
			}
			tokens = append(tokens, token{tokNumber, input[i:j]})
			i = j

		case c == '"' || c == '\'':
			j := i + 1
			for j < len(input) && input[j] != c {
				j++
			}
			if j >= len(input) {
				return nil, fmt.Errorf("unterminated string literal at offset %d", i)
			}
			tokens = append(tokens, token{tokString, input[i+1 : j]})
			i = j + 1

		case isLetter(c) || c == '_':
			j := i
			for j < len(input) && (isLetter(input[j]) || input[j] == '_' || input[j] >= '0' && input[j] <= '9') {
				j++
			}
			tokens = append(tokens, token{tokIdent, input[i:j]})
			i = j

		case c == '(':
			tokens = append(tokens, token{tokLParen, "("})
			i++

		case c == ')':
			tokens = append(tokens, token{tokRParen, ")"})
			i++

		case c == ',':
			tokens = append(tokens, token{tokComma, ","})
			i++

		case c == '=' || c == '!':
			if i+1 < len(input) && input[i+1] == '=' {
				tokens = append(tokens, token{tokOp, input[i : i+2]})
				i += 2
			} else {
				return nil, fmt.Errorf("unexpected character %q at offset %d", c, i)
			}

		case c == '<' || c == '>':
			if i+1 < len(input) && input[i+1] == '=' {
				tokens = append(tokens, token{tokOp, input[i : i+2]})
				i += 2
			} else {
				tokens = append(tokens, token{tokOp, input[i : i+1]})
				i++
			}

		case c == '+' || c == '-' || c == '*' || c == '/' || c == '%' || c == '^':
			tokens = append(tokens, token{tokOp, input[i : i+1]})
			i++

		default:
			return nil, fmt.Errorf("unexpected character %q at offset %d", c, i)
		}
	}
	return tokens, nil
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
