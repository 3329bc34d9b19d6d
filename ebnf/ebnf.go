/*
Package ebnf reads a textual grammar in an EBNF-like notation and builds a
sealed grammar.Grammar from it. It is a front-end collaborator of the core
packages, not part of the core itself: everything here goes through the
public grammar.Builder API.

The notation is one production per `;`-terminated clause:

	Sum := Sum ('+'|'-') Mul | Mul ;
	Mul := Mul ('*'|'/') Pow | Pow ;
	Pow := Num '^' Pow | Num ;
	Num := Number | '(' Sum ')' ;

Quoted literals are terminals matching exactly their text. A parenthesized
group of quoted literals is a single terminal matching any of its
alternatives. Identifiers with a production of their own are non-terminals;
identifiers without one must be plugged with a predicate through
ParserBuilder.PlugTerminal before the grammar is built. An empty alternative
(nothing between `:=`, `|` or `;`) produces a nullable rule.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2024 The chartparse Authors
*/
package ebnf

import (
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"

	"github.com/earley-tools/chartparse/grammar"
	"github.com/earley-tools/chartparse/token"
	"github.com/earley-tools/chartparse/token/lexmach"
)

// tracer traces with key 'chartparse.ebnf'.
func tracer() tracing.Trace {
	return tracing.Select("chartparse.ebnf")
}

// The meta tokens of the notation itself. Quoted literals keep their quotes
// in the token text, so a literal '(' never collides with the grouping
// parenthesis.
var metaTokens = []string{":=", "|", ";", "(", ")"}

func lexeme(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
	return s.Token(0, string(m.Bytes), m), nil
}

// Lexer builds the tokenizer for the EBNF notation itself.
func Lexer() (*lexmach.Adapter, error) {
	init := func(lx *lexmachine.Lexer) {
		lx.Add([]byte(`'[^']*'`), lexeme)
		lx.Add([]byte(`([a-z]|[A-Z]|_)([a-z]|[A-Z]|[0-9]|_|-)*`), lexeme)
		lx.Add([]byte(`( |\t|\n|\r)+`), lexmach.Skip)
	}
	return lexmach.NewAdapter(init, metaTokens, nil)
}

func tokenize(text string) ([]string, error) {
	adapter, err := Lexer()
	if err != nil {
		return nil, err
	}
	scanner, err := adapter.Scanner(text)
	if err != nil {
		return nil, err
	}
	return token.All(scanner), nil
}

// Literals extracts every quoted literal occurring in an EBNF grammar text,
// unquoted, deduplicated, in order of first appearance. Front-ends use this
// to configure an expression tokenizer that splits off exactly the operator
// and punctuation strings the grammar mentions.
func Literals(text string) ([]string, error) {
	toks, err := tokenize(text)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var out []string
	for _, t := range toks {
		if !isQuoted(t) {
			continue
		}
		lit := unquote(t)
		if lit == "" || seen[lit] {
			continue
		}
		seen[lit] = true
		out = append(out, lit)
	}
	return out, nil
}

// ParserBuilder accumulates plugged terminal predicates and then reads a
// grammar text: plug predicates for the named terminals the text leaves
// abstract, then build.
type ParserBuilder struct {
	plugged map[string]func(string) bool
}

// NewParserBuilder returns an empty ParserBuilder.
func NewParserBuilder() *ParserBuilder {
	return &ParserBuilder{plugged: make(map[string]func(string) bool)}
}

// PlugTerminal registers a predicate for an identifier that appears in rule
// bodies without a production of its own, turning it into a terminal.
func (pb *ParserBuilder) PlugTerminal(name string, predicate func(string) bool) *ParserBuilder {
	pb.plugged[name] = predicate
	return pb
}

// Grammar reads text and seals a grammar starting at start. An empty start
// selects the head of the first production. name labels the grammar for
// diagnostics.
func (pb *ParserBuilder) Grammar(name, text, start string) (*grammar.Grammar, error) {
	toks, err := tokenize(text)
	if err != nil {
		return nil, err
	}
	prods, err := readProductions(toks)
	if err != nil {
		return nil, err
	}
	if len(prods) == 0 {
		return nil, fmt.Errorf("ebnf: grammar text contains no productions")
	}
	if start == "" {
		start = prods[0].head
	}

	heads := make(map[string]bool)
	for _, p := range prods {
		heads[p.head] = true
	}

	b := grammar.NewBuilder(name)
	for _, p := range prods {
		b.NonTerminal(p.head)
	}
	for _, p := range prods {
		for _, alt := range p.alternatives {
			body := make([]string, 0, len(alt))
			for _, f := range alt {
				symName, err := pb.registerFactor(b, heads, f)
				if err != nil {
					return nil, err
				}
				body = append(body, symName)
			}
			b.Rule(p.head, body...)
		}
	}
	tracer().Debugf("ebnf: read %d production clauses, start symbol %q", len(prods), start)
	return b.Seal(start)
}

// registerFactor interns one body factor on the builder and returns the
// symbol name to reference it by.
func (pb *ParserBuilder) registerFactor(b *grammar.Builder, heads map[string]bool, f factor) (string, error) {
	switch {
	case len(f.group) > 0:
		name := "(" + strings.Join(f.group, "|") + ")"
		alts := make([]string, len(f.group))
		for i, q := range f.group {
			alts[i] = unquote(q)
		}
		b.Terminal(name, func(s string) bool {
			for _, a := range alts {
				if s == a {
					return true
				}
			}
			return false
		})
		return name, nil
	case isQuoted(f.text):
		lit := unquote(f.text)
		b.Terminal(lit, func(s string) bool { return s == lit })
		return lit, nil
	case heads[f.text]:
		return f.text, nil
	default:
		pred, ok := pb.plugged[f.text]
		if !ok {
			return "", fmt.Errorf("ebnf: %q has no production and no plugged terminal predicate", f.text)
		}
		b.Terminal(f.text, pred)
		return f.text, nil
	}
}

// factor is one body element: either a single token (ident or quoted
// literal) in text, or a group of quoted literals.
type factor struct {
	text  string
	group []string // quoted alternatives of a ('a'|'b'|…) group
}

type production struct {
	head         string
	alternatives [][]factor
}

// readProductions parses the token stream into productions: a recursive
// descent over `head := alt (| alt)* ;` clauses.
func readProductions(toks []string) ([]production, error) {
	r := &reader{toks: toks}
	var prods []production
	for !r.exhausted() {
		head, ok := r.nextIdent()
		if !ok {
			return nil, fmt.Errorf("ebnf: expected production head, found %q", r.peek())
		}
		if !r.accept(":=") {
			return nil, fmt.Errorf("ebnf: expected ':=' after head %q, found %q", head, r.peek())
		}
		var alts [][]factor
		alt := []factor{}
		for {
			switch {
			case r.accept(";"):
				prods = append(prods, production{head: head, alternatives: append(alts, alt)})
			case r.accept("|"):
				alts = append(alts, alt)
				alt = []factor{}
				continue
			case r.accept("("):
				group, err := r.readGroup()
				if err != nil {
					return nil, err
				}
				alt = append(alt, factor{group: group})
				continue
			case r.exhausted():
				return nil, fmt.Errorf("ebnf: production for %q is not terminated with ';'", head)
			default:
				alt = append(alt, factor{text: r.next()})
				continue
			}
			break
		}
	}
	return prods, nil
}

// readGroup reads the tail of a ('a'|'b'|…) group, the opening parenthesis
// already consumed. Only quoted literals may appear inside a group.
func (r *reader) readGroup() ([]string, error) {
	var group []string
	for {
		q := r.next()
		if !isQuoted(q) {
			return nil, fmt.Errorf("ebnf: group may only contain quoted literals, found %q", q)
		}
		group = append(group, q)
		if r.accept(")") {
			return group, nil
		}
		if !r.accept("|") {
			return nil, fmt.Errorf("ebnf: expected '|' or ')' in group, found %q", r.peek())
		}
	}
}

type reader struct {
	toks []string
	pos  int
}

func (r *reader) exhausted() bool {
	return r.pos >= len(r.toks)
}

func (r *reader) peek() string {
	if r.exhausted() {
		return "<end of grammar>"
	}
	return r.toks[r.pos]
}

func (r *reader) next() string {
	t := r.peek()
	r.pos++
	return t
}

func (r *reader) accept(meta string) bool {
	if !r.exhausted() && r.toks[r.pos] == meta {
		r.pos++
		return true
	}
	return false
}

func (r *reader) nextIdent() (string, bool) {
	if r.exhausted() {
		return "", false
	}
	t := r.toks[r.pos]
	if isQuoted(t) || isMeta(t) {
		return "", false
	}
	r.pos++
	return t, true
}

func isQuoted(t string) bool {
	return len(t) >= 2 && t[0] == '\'' && t[len(t)-1] == '\''
}

func unquote(t string) string {
	return t[1 : len(t)-1]
}

func isMeta(t string) bool {
	for _, m := range metaTokens {
		if t == m {
			return true
		}
	}
	return false
}
