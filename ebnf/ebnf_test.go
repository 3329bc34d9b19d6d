package ebnf_test

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/earley-tools/chartparse/ebnf"
	"github.com/earley-tools/chartparse/forest"
	"github.com/earley-tools/chartparse/recognizer"
	"github.com/earley-tools/chartparse/token"
)

const mathGrammar = `
	Sum := Sum ('+'|'-') Mul | Mul ;
	Mul := Mul ('*'|'/') Pow | Pow ;
	Pow := Num '^' Pow | Num ;
	Num := Number | '(' Sum ')' ;
`

func isNumber(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func TestReadMathGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartparse.ebnf")
	defer teardown()
	g, err := ebnf.NewParserBuilder().
		PlugTerminal("Number", isNumber).
		Grammar("math", mathGrammar, "")
	if err != nil {
		t.Fatalf("Grammar: %v", err)
	}
	if g.Start().Name() != "Sum" {
		t.Errorf("start = %q, want first production head %q", g.Start().Name(), "Sum")
	}
	if n := len(g.Rules()); n != 8 {
		t.Errorf("rule count = %d, want 8", n)
	}
	if got, want := g.Rules()[0].Label(), "Sum -> Sum ('+'|'-') Mul"; got != want {
		t.Errorf("rules[0].Label() = %q, want %q", got, want)
	}

	c, err := recognizer.Parse(g, token.NewSliceSource([]string{"1", "+", "2", "*", "3"}))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	tr, err := forest.OneTree("Sum", c)
	if err != nil {
		t.Fatalf("OneTree: %v", err)
	}
	s := tr.String()
	if !strings.HasPrefix(s, `Node("Sum -> Sum ('+'|'-') Mul"`) {
		t.Errorf("unexpected root rule: %s", s)
	}
	if !strings.Contains(s, `Leaf("('+'|'-')", "+")`) || !strings.Contains(s, `Leaf("('*'|'/')", "*")`) {
		t.Errorf("operator leaves missing from tree: %s", s)
	}
}

func TestEmptyAlternativeYieldsNullableRule(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartparse.ebnf")
	defer teardown()
	g, err := ebnf.NewParserBuilder().Grammar("nullable", `S := 'b' S | ;`, "S")
	if err != nil {
		t.Fatalf("Grammar: %v", err)
	}
	if !g.IsNullable(g.Start()) {
		t.Errorf("S not nullable despite empty alternative")
	}
	c, err := recognizer.Parse(g, token.NewSliceSource([]string{"b", "b"}))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	tr, err := forest.OneTree("S", c)
	if err != nil {
		t.Fatalf("OneTree: %v", err)
	}
	want := `Node("S -> b S", [Leaf("b", "b"), Node("S -> b S", [Leaf("b", "b"), Node("S -> ", [])])])`
	if tr.String() != want {
		t.Errorf("tr.String() = %s, want %s", tr.String(), want)
	}
}

func TestUnpluggedIdentifierRejected(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartparse.ebnf")
	defer teardown()
	_, err := ebnf.NewParserBuilder().Grammar("bad", `S := Number ;`, "S")
	if err == nil {
		t.Fatalf("Grammar accepted an identifier with no production and no predicate")
	}
	if !strings.Contains(err.Error(), "Number") {
		t.Errorf("error does not name the offending identifier: %v", err)
	}
}

func TestUnterminatedProductionRejected(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartparse.ebnf")
	defer teardown()
	_, err := ebnf.NewParserBuilder().Grammar("bad", `S := 'a'`, "S")
	if err == nil {
		t.Fatalf("Grammar accepted a production without terminating ';'")
	}
}

func TestLiterals(t *testing.T) {
	lits, err := ebnf.Literals(mathGrammar)
	if err != nil {
		t.Fatalf("Literals: %v", err)
	}
	want := []string{"+", "-", "*", "/", "^", "(", ")"}
	if len(lits) != len(want) {
		t.Fatalf("Literals = %v, want %v", lits, want)
	}
	for i := range want {
		if lits[i] != want[i] {
			t.Errorf("literal %d = %q, want %q", i, lits[i], want[i])
		}
	}
}
