package sheet

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseSource(t *testing.T) {
	cases := []struct {
		source   string
		wantName string
		wantExpr string
	}{
		{"radius = 3", "radius", "3"},
		{"area = 3.14 * radius ^ 2", "area", "3.14 * radius ^ 2"},
		{"= A1+B2", "", "A1+B2"},
		{"A1 + 1", "", "A1 + 1"},
		{"42", "", "42"},
		// == is not a binding
		{"x == y", "", "x == y"},
		{"a <= 3", "", "a <= 3"},
		{"a >= 3", "", "a >= 3"},
		{"a != 3", "", "a != 3"},
		// a left-hand side outside the name grammar is just expression text
		{"Radius = 3", "", "Radius = 3"},
		{"2x = 3", "", "2x = 3"},
		// '=' inside a string literal is not a split point
		{`label = "a = b"`, "label", `"a = b"`},
		{`"x = y"`, "", `"x = y"`},
		{"  padded  =  7  ", "padded", "7"},
	}
	for _, c := range cases {
		name, expr := ParseSource(c.source)
		if name != c.wantName || expr != c.wantExpr {
			t.Errorf("ParseSource(%q) = (%q, %q), want (%q, %q)",
				c.source, name, expr, c.wantName, c.wantExpr)
		}
	}
}

func TestDependencies(t *testing.T) {
	isName := func(n string) bool { return n == "radius" || n == "height" }

	cases := []struct {
		expr string
		want map[string]struct{}
	}{
		{"A1+B2", deps("A1", "B2")},
		{"sum(A1:A3)", deps("A1", "A2", "A3")},
		{"A1&A2:A3&A4", deps("A1", "A2", "A3", "A4")},
		{"radius * 2", deps("radius")},
		{"radius * height + A1", deps("radius", "height", "A1")},
		// unbound identifiers are not dependencies
		{"unknown * 2", deps()},
		// function names are calls, not references, even id-shaped ones
		{"sum(B2) + LOG10(A1)", deps("B2", "A1")},
		// quoted text contributes nothing
		{`"A1" + B2`, deps("B2")},
		{"'A1:B9' + B2", deps("B2")},
		{"42 * 1e3", deps()},
		{"B2:C3", deps("B2", "C2", "B3", "C3")},
	}
	for _, c := range cases {
		got := Dependencies(c.expr, isName)
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Errorf("Dependencies(%q) mismatch (-want +got):\n%s", c.expr, diff)
		}
	}
}

func TestTranslate(t *testing.T) {
	cases := []struct {
		expr string
		want string
	}{
		{"A1:A3", "SEQ(A1,A2,A3)"},
		{"A1&A2:A3", "SEQ(A1,A2,A3)"},
		{"A1&A2:A3&A4", "SEQ(A1,A2,A3,A4)"},
		{"sum(A1:A3)", "sum(SEQ(A1,A2,A3))"},
		// rectangle expansion is row-major
		{"sum(A1:B2)", "sum(SEQ(A1,B1,A2,B2))"},
		// unions de-duplicate, preserving first-seen order
		{"A1&A1", "SEQ(A1)"},
		{"A2:A3&A1:A2", "SEQ(A2,A3,A1)"},
		// lone references and plain operators pass through
		{"A1 + B2", "A1 + B2"},
		{"A1*2", "A1*2"},
		// literals are never rewritten
		{`"A1:A3" + B1:B2`, `"A1:A3" + SEQ(B1,B2)`},
		{"'a&b'", "'a&b'"},
		// surrounding expression text is preserved exactly
		{"1 + sum(A1:A2) / 2", "1 + sum(SEQ(A1,A2)) / 2"},
	}
	for _, c := range cases {
		if got := Translate(c.expr); got != c.want {
			t.Errorf("Translate(%q) = %q, want %q", c.expr, got, c.want)
		}
	}
}
