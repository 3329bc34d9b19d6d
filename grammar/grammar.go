/*
Package grammar provides the grammar model for a context-free recognizer:
terminals with predicate matchers, non-terminals, rules, and a sealed,
immutable Grammar built incrementally through a Builder.

The grammar class admitted is unrestricted context-free: left recursion,
right recursion, nullable productions and ambiguity are all fine. Nothing
here restricts or transforms the grammar (no LL/LR conversion, no
factoring) — that work, if wanted, belongs to a layer above this one.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2024 The chartparse Authors
*/
package grammar

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// Symbol is either a non-terminal, identified solely by name, or a terminal,
// identified by name with an associated predicate deciding whether a token
// string matches it. Two terminals (or two non-terminals) with the same name
// are considered the same symbol; for terminals, predicates are never
// compared, only names. Symbols are interned by a Builder/Grammar, so after
// construction symbol identity can be tested by comparing pointers.
type Symbol struct {
	name      string
	terminal  bool
	predicate func(string) bool
}

// NonTerminal constructs a non-terminal symbol. Builders should prefer
// interning through Builder.NonTerminal rather than calling this directly.
func NonTerminal(name string) *Symbol {
	return &Symbol{name: name}
}

// Terminal constructs a terminal symbol with a matching predicate. Builders
// should prefer interning through Builder.Terminal rather than calling this
// directly.
func Terminal(name string, predicate func(string) bool) *Symbol {
	return &Symbol{name: name, terminal: true, predicate: predicate}
}

// Name returns the display/identity label of the symbol.
func (s *Symbol) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}

// IsTerminal returns true if s is a terminal symbol.
func (s *Symbol) IsTerminal() bool {
	return s != nil && s.terminal
}

// Match reports whether a token's text satisfies this terminal's predicate.
// Calling Match on a non-terminal always returns false.
func (s *Symbol) Match(tokenText string) bool {
	if s == nil || !s.terminal || s.predicate == nil {
		return false
	}
	return s.predicate(tokenText)
}

func (s *Symbol) String() string {
	if s.IsTerminal() {
		return fmt.Sprintf("[%s]", s.name)
	}
	return s.name
}

// Rule is a production head → body. The body may be empty (a nullable
// rule). Rules are interned by the Builder so that equality of two rule
// handles returned by the same Grammar can be tested by pointer identity.
type Rule struct {
	Head   *Symbol
	Body   []*Symbol
	Serial int // insertion order, stable within a sealed Grammar
}

// Arity returns the number of symbols in the rule's body.
func (r *Rule) Arity() int {
	return len(r.Body)
}

// Label renders the rule the way the stable tree display format requires:
// "H -> A B C", or "H -> " for an empty body.
func (r *Rule) Label() string {
	if len(r.Body) == 0 {
		return r.Head.Name() + " -> "
	}
	names := make([]string, len(r.Body))
	for i, sym := range r.Body {
		names[i] = sym.Name()
	}
	return r.Head.Name() + " -> " + strings.Join(names, " ")
}

func (r *Rule) String() string {
	return r.Label()
}

// Grammar is a sealed, immutable set of rules over a symbol table, with a
// designated start non-terminal. Once sealed a Grammar is read-only and
// safely shareable across recognizer runs.
type Grammar struct {
	name        string
	symbols     map[string]*Symbol
	rules       []*Rule
	rulesByHead map[string][]*Rule
	start       *Symbol
	nullable    map[string]bool
	nullWitness map[string]*Rule
}

// Name returns the grammar's name, as given to NewBuilder.
func (g *Grammar) Name() string { return g.name }

// Start returns the grammar's start non-terminal.
func (g *Grammar) Start() *Symbol { return g.start }

// Rules returns every rule in insertion order.
func (g *Grammar) Rules() []*Rule { return g.rules }

// RulesForHead returns every rule whose head equals sym's name, in the order
// they were added to the builder.
func (g *Grammar) RulesForHead(sym *Symbol) []*Rule {
	if sym == nil {
		return nil
	}
	return g.rulesByHead[sym.Name()]
}

// Symbol looks up an interned symbol by name. Returns nil if unknown.
func (g *Grammar) Symbol(name string) *Symbol {
	return g.symbols[name]
}

// IsNullable reports whether a non-terminal can derive the empty string.
// Terminals are never nullable.
func (g *Grammar) IsNullable(sym *Symbol) bool {
	if sym == nil || sym.IsTerminal() {
		return false
	}
	return g.nullable[sym.Name()]
}

// NullWitness returns the rule the nullability fixed point chose as sym's
// canonical empty derivation — the rule the recognizer replays (possibly
// recursively, over the witnesses of that rule's own body symbols) to
// synthesize a completed item for sym without ever scanning a token
// (the Aycock–Horspool nullable correction). Returns nil if sym is not nullable.
func (g *Grammar) NullWitness(sym *Symbol) *Rule {
	if sym == nil || sym.IsTerminal() {
		return nil
	}
	return g.nullWitness[sym.Name()]
}

// computeNullableWithWitness runs the standard nullability fixed-point
// (start with heads that have an empty-body rule, then repeatedly add
// any head all of whose body symbols are themselves nullable non-terminals,
// until no change occurs in a full pass), additionally recording, for every
// nullable head, a *witnessing* rule whose body is built entirely from
// symbols that were marked nullable strictly before the head itself. That
// ordering is what lets the recognizer build a synthetic ε-derivation item
// for a nullable non-terminal (Aycock–Horspool correction) by recursing on
// the witness without ever looping: the witness graph is acyclic by
// construction, even for mutually nullable non-terminals.
func computeNullableWithWitness(rules []*Rule) (map[string]bool, map[string]*Rule) {
	nullable := make(map[string]bool)
	witness := make(map[string]*Rule)
	for changed := true; changed; {
		changed = false
		for _, r := range rules {
			if nullable[r.Head.Name()] {
				continue
			}
			allNullable := true
			for _, sym := range r.Body {
				if sym.IsTerminal() || !nullable[sym.Name()] {
					allNullable = false
					break
				}
			}
			if allNullable {
				nullable[r.Head.Name()] = true
				witness[r.Head.Name()] = r
				changed = true
			}
		}
	}
	return nullable, witness
}

// symbolNames is a small helper used by the builder to report unique unknown
// symbol names in a deterministic, stable order.
func symbolNames(names []string) []string {
	out := append([]string(nil), names...)
	slices.Sort(out)
	return slices.Compact(out)
}
