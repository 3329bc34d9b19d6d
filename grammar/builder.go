package grammar

import "fmt"

// GrammarError is raised at seal time: an unknown symbol was referenced by a
// rule body, the start symbol is unregistered or has no rules, or a rule's
// head was declared as a terminal.
type GrammarError struct {
	Reason string
}

func (e *GrammarError) Error() string {
	return fmt.Sprintf("grammar error: %s", e.Reason)
}

// Builder accumulates symbols and rules incrementally: register symbols,
// add rules, then Seal to obtain an immutable Grammar. A Builder is single-use; once sealed
// further calls on it have no effect on the returned Grammar.
type Builder struct {
	name    string
	symbols map[string]*Symbol
	rules   []*Rule
	pending []pendingRule
	sealed  bool
}

type pendingRule struct {
	headName string
	bodyNames []string
}

// NewBuilder creates a fresh, empty grammar builder. name is a label for
// diagnostics only; it does not appear in the sealed Grammar's rules.
func NewBuilder(name string) *Builder {
	return &Builder{
		name:    name,
		symbols: make(map[string]*Symbol),
	}
}

// NonTerminal registers (or returns the already-registered) non-terminal
// symbol for name.
func (b *Builder) NonTerminal(name string) *Symbol {
	if sym, ok := b.symbols[name]; ok {
		return sym
	}
	sym := NonTerminal(name)
	b.symbols[name] = sym
	return sym
}

// Terminal registers (or re-registers, keeping the newest predicate) a
// terminal symbol with a matching predicate.
func (b *Builder) Terminal(name string, predicate func(string) bool) *Symbol {
	if sym, ok := b.symbols[name]; ok && sym.IsTerminal() && !b.sealed {
		sym.predicate = predicate
		return sym
	}
	sym := Terminal(name, predicate)
	b.symbols[name] = sym
	return sym
}

// AddRule records head → body. Every name in body must already be
// registered (as either kind of symbol); this is enforced at Seal time so
// that forward references within a single grammar definition are allowed.
func (b *Builder) AddRule(head string, body ...string) *Builder {
	b.pending = append(b.pending, pendingRule{headName: head, bodyNames: body})
	return b
}

// Rule is a terser alias for AddRule, matching the common call shape
// `b.Rule("Sum", "Sum", "+-", "Mul")`.
func (b *Builder) Rule(head string, body ...string) *Builder {
	return b.AddRule(head, body...)
}

// RuleBuilder is returned by LHS for the fluent construction style
// `b.LHS("S").N("A").T("a", pred).End()`.
type RuleBuilder struct {
	b        *Builder
	head     string
	bodyName []string
}

// LHS begins a fluent rule declaration for the given head non-terminal.
func (b *Builder) LHS(head string) *RuleBuilder {
	b.NonTerminal(head)
	return &RuleBuilder{b: b, head: head}
}

// N appends a non-terminal reference to the rule body under construction.
// The symbol must be registered elsewhere (by its own LHS, or explicitly via
// NonTerminal) before Seal is called.
func (rb *RuleBuilder) N(name string) *RuleBuilder {
	rb.bodyName = append(rb.bodyName, name)
	return rb
}

// T appends a terminal reference to the rule body under construction,
// registering the terminal (and its predicate) if not already known.
func (rb *RuleBuilder) T(name string, predicate func(string) bool) *RuleBuilder {
	rb.b.Terminal(name, predicate)
	rb.bodyName = append(rb.bodyName, name)
	return rb
}

// Epsilon marks this rule's body as empty, producing a nullable rule.
func (rb *RuleBuilder) Epsilon() *RuleBuilder {
	rb.bodyName = nil
	return rb
}

// End finishes the fluent rule declaration and records it on the builder.
func (rb *RuleBuilder) End() *Builder {
	rb.b.AddRule(rb.head, rb.bodyName...)
	return rb.b
}

// Seal validates every pending rule, computes rulesByHead and nullability,
// and returns an immutable Grammar rooted at start. Seal fails with a
// GrammarError if start is not a registered non-terminal with at least one
// rule, if any rule references an unregistered symbol, or if any rule's
// head was registered as a terminal.
func (b *Builder) Seal(start string) (*Grammar, error) {
	startSym, ok := b.symbols[start]
	if !ok {
		return nil, &GrammarError{Reason: fmt.Sprintf("start symbol %q is not registered", start)}
	}
	if startSym.IsTerminal() {
		return nil, &GrammarError{Reason: fmt.Sprintf("start symbol %q is a terminal", start)}
	}

	rules := make([]*Rule, 0, len(b.pending))
	var unknown []string
	for serial, pr := range b.pending {
		head, ok := b.symbols[pr.headName]
		if !ok {
			unknown = append(unknown, pr.headName)
			continue
		}
		if head.IsTerminal() {
			return nil, &GrammarError{Reason: fmt.Sprintf("rule head %q is a terminal", pr.headName)}
		}
		body := make([]*Symbol, 0, len(pr.bodyNames))
		for _, name := range pr.bodyNames {
			sym, ok := b.symbols[name]
			if !ok {
				unknown = append(unknown, name)
				continue
			}
			body = append(body, sym)
		}
		rules = append(rules, &Rule{Head: head, Body: body, Serial: serial})
	}
	if len(unknown) > 0 {
		return nil, &GrammarError{Reason: fmt.Sprintf("unknown symbol(s) referenced: %v", symbolNames(unknown))}
	}

	var startRuleCount int
	rulesByHead := make(map[string][]*Rule)
	for _, r := range rules {
		rulesByHead[r.Head.Name()] = append(rulesByHead[r.Head.Name()], r)
		if r.Head.Name() == start {
			startRuleCount++
		}
	}
	if startRuleCount == 0 {
		return nil, &GrammarError{Reason: fmt.Sprintf("start symbol %q has no rules", start)}
	}

	symbols := make(map[string]*Symbol, len(b.symbols))
	for name, sym := range b.symbols {
		symbols[name] = sym
	}

	b.sealed = true
	g := &Grammar{
		name:        b.name,
		symbols:     symbols,
		rules:       rules,
		rulesByHead: rulesByHead,
		start:       startSym,
	}
	g.nullable, g.nullWitness = computeNullableWithWitness(g.rules)
	return g, nil
}
