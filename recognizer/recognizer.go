/*
Package recognizer implements the Earley engine: for every input position it
repeatedly applies Predict, Scan and Complete until the state set saturates,
advancing position by position until the whole chart has been built (or a
BadInput error is reported).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2024 The chartparse Authors
*/
package recognizer

import (
	"github.com/npillmayer/schuko/tracing"

	"github.com/earley-tools/chartparse/chart"
	"github.com/earley-tools/chartparse/grammar"
	"github.com/earley-tools/chartparse/parseerr"
	"github.com/earley-tools/chartparse/token"
)

// tracer traces with key 'chartparse.recognizer'.
func tracer() tracing.Trace {
	return tracing.Select("chartparse.recognizer")
}

// Parse runs the Earley recognizer over src under grammar g and returns the
// resulting chart, or a *parseerr.BadInput if src is not in the language g
// describes. g must already be sealed (see grammar.Builder.Seal).
func Parse(g *grammar.Grammar, src token.Source) (*chart.Chart, error) {
	tokens := token.All(src)
	n := len(tokens)
	c := chart.NewChart(n)

	s0 := c.At(0)
	for _, r := range g.RulesForHead(g.Start()) {
		s0.Insert(chart.PredictNew(r, 0))
	}

	for i := 0; i <= n; i++ {
		saturate(g, c, i)
		dumpState(c.At(i), i)
		if i == n {
			break
		}
		if !scan(c.At(i), c.At(i+1), tokens[i], i) {
			tracer().Errorf("chartparse: no item in S[%d] accepted token %q", i, tokens[i])
			return nil, &parseerr.BadInput{Position: i}
		}
	}

	if len(c.Accepting(g.Start().Name())) == 0 {
		tracer().Errorf("chartparse: S[%d] has no accepting item for start symbol %q", n, g.Start().Name())
		return nil, &parseerr.BadInput{Position: n}
	}
	return c, nil
}

// saturate repeatedly applies Predict and Complete to every item in s,
// including items appended to s during the very same pass, until the
// cursor catches up with the (possibly still-growing) set.
func saturate(g *grammar.Grammar, c *chart.Chart, i int) {
	s := c.At(i)
	nullMemo := make(map[string]*chart.Item)
	s.Each(func(x *chart.Item) {
		if x.Complete() {
			complete(c, s, i, x)
			return
		}
		sym := x.NextSymbol()
		if sym.IsTerminal() {
			return // scan is handled once S[i] is finalized, not during saturation
		}
		predict(g, s, i, x, sym, nullMemo)
	})
}

// predict is the Predictor: for an item x expecting non-terminal N,
// add a fresh dot-0 item for every rule of N. If N is nullable, also advance
// x immediately over it (Aycock–Horspool correction) rather than relying on
// some later Complete event to find x — which would depend on insertion
// order when x and N's completion share the same position.
func predict(g *grammar.Grammar, s *chart.StateSet, i int, x *chart.Item, n *grammar.Symbol, nullMemo map[string]*chart.Item) {
	for _, r := range g.RulesForHead(n) {
		s.Insert(chart.PredictNew(r, i))
	}
	if g.IsNullable(n) {
		child := nullableCompletion(g, s, i, n, nullMemo)
		s.Insert(chart.CompleteNew(x, child, i))
	}
}

// complete is the Completer: for a complete item x (rule head A,
// spanning start..i), find every item y in S[x.Start] waiting on A and
// advance it into s (== S[i]).
func complete(c *chart.Chart, s *chart.StateSet, i int, x *chart.Item) {
	head := x.Rule.Head
	for _, y := range c.At(x.Start).Items() {
		if !y.Complete() && y.NextSymbol() == head {
			s.Insert(chart.CompleteNew(y, x, i))
		}
	}
}

// nullableCompletion returns the canonical zero-width completed item
// witnessing sym's empty derivation at position at, building it (and memoizing
// it for the remainder of this saturation pass) by replaying sym's
// nullability witness rule, recursing into that rule's own body symbols.
// The witness graph is acyclic, so this always terminates.
func nullableCompletion(g *grammar.Grammar, s *chart.StateSet, at int, sym *grammar.Symbol, memo map[string]*chart.Item) *chart.Item {
	if it, ok := memo[sym.Name()]; ok {
		return it
	}
	rule := g.NullWitness(sym)
	cur, _ := s.Insert(chart.PredictNew(rule, at))
	for _, bodySym := range rule.Body {
		child := nullableCompletion(g, s, at, bodySym, memo)
		cur, _ = s.Insert(chart.CompleteNew(cur, child, at))
	}
	memo[sym.Name()] = cur
	return cur
}

// scan advances the chart by one token: for every item in the finalized s with a
// terminal next symbol whose predicate accepts token, advance it into next.
// Returns whether any item matched.
func scan(s, next *chart.StateSet, token string, i int) bool {
	matched := false
	for _, x := range s.Items() {
		if x.Complete() {
			continue
		}
		sym := x.NextSymbol()
		if sym.IsTerminal() && sym.Match(token) {
			next.Insert(chart.ScanNew(x, i+1, token))
			matched = true
		}
	}
	return matched
}

func dumpState(s *chart.StateSet, i int) {
	tracer().Debugf("--- state %04d --------------------------------", i)
	for n, it := range s.Items() {
		tracer().Debugf("[%2d] %s", n, it)
	}
}
