package chart

import (
	"testing"

	"github.com/earley-tools/chartparse/grammar"
)

func testGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	b := grammar.NewBuilder("chart-test")
	b.NonTerminal("S")
	b.NonTerminal("A")
	b.Terminal("a", func(s string) bool { return s == "a" })
	b.Rule("S", "A", "A")
	b.Rule("A", "a")
	g, err := b.Seal("S")
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	return g
}

func TestItemConstructors(t *testing.T) {
	g := testGrammar(t)
	ruleS := g.RulesForHead(g.Symbol("S"))[0]
	ruleA := g.RulesForHead(g.Symbol("A"))[0]

	p := PredictNew(ruleS, 3)
	if p.Dot != 0 || p.Start != 3 || p.End != 3 {
		t.Errorf("PredictNew = %v, want dot 0 and start == end == 3", p)
	}
	if len(p.Backpointers()) != 0 {
		t.Errorf("Predict item has backpointers: %v", p.Backpointers())
	}
	if p.Complete() {
		t.Errorf("dot-0 item over a 2-symbol body reports complete")
	}
	if p.NextSymbol().Name() != "A" {
		t.Errorf("NextSymbol = %s, want A", p.NextSymbol().Name())
	}

	pa := PredictNew(ruleA, 3)
	s := ScanNew(pa, 4, "a")
	if s.Rule != ruleA || s.Dot != 1 || s.Start != 3 || s.End != 4 {
		t.Errorf("ScanNew = %v, want rule A, dot 1, span 3-4", s)
	}
	if !s.Complete() {
		t.Errorf("scanned A -> a . item not complete")
	}
	bps := s.Backpointers()
	if len(bps) != 1 || bps[0].Source != pa || bps[0].Trigger.Kind != ScanTrigger || bps[0].Trigger.Token != "a" {
		t.Errorf("scan backpointers = %v, want {(source, Scan(a))}", bps)
	}

	c := CompleteNew(p, s, 4)
	if c.Rule != ruleS || c.Dot != 1 || c.Start != 3 || c.End != 4 {
		t.Errorf("CompleteNew = %v, want rule S, dot 1, span 3-4", c)
	}
	bps = c.Backpointers()
	if len(bps) != 1 || bps[0].Source != p || bps[0].Trigger.Kind != CompleteTrigger || bps[0].Trigger.Child != s {
		t.Errorf("complete backpointers = %v, want {(source, Complete(child))}", bps)
	}
}

func TestStateSetMergesEqualItems(t *testing.T) {
	g := testGrammar(t)
	ruleS := g.RulesForHead(g.Symbol("S"))[0]
	ruleA := g.RulesForHead(g.Symbol("A"))[0]
	set := NewStateSet()

	src := PredictNew(ruleS, 0)
	set.Insert(src)
	childA := ScanNew(PredictNew(ruleA, 0), 1, "a")

	first, fresh := set.Insert(CompleteNew(src, childA, 1))
	if !fresh {
		t.Fatalf("first insert reported as duplicate")
	}
	second, fresh := set.Insert(CompleteNew(src, childA, 1))
	if fresh {
		t.Errorf("equal item inserted as a second entry")
	}
	if second != first {
		t.Errorf("duplicate insert did not hand back the shared item")
	}
	if len(first.Backpointers()) != 1 {
		t.Errorf("identical backpointer duplicated on merge: %v", first.Backpointers())
	}

	// A structurally distinct derivation of the same item must survive as a
	// second backpointer entry.
	other := PredictNew(ruleS, 0)
	otherScan := ScanNew(other, 1, "b")
	_, fresh = set.Insert(CompleteNew(src, otherScan, 1))
	if fresh {
		t.Errorf("equal item with new provenance inserted as a second entry")
	}
	if got := len(first.Backpointers()); got != 2 {
		t.Errorf("len(backpointers) = %d after merging a distinct derivation, want 2", got)
	}
}

func TestStateSetInsertionOrderAndLiveEach(t *testing.T) {
	g := testGrammar(t)
	ruleS := g.RulesForHead(g.Symbol("S"))[0]
	ruleA := g.RulesForHead(g.Symbol("A"))[0]
	set := NewStateSet()
	set.Insert(PredictNew(ruleS, 0))

	// Each must observe items appended during the walk, in insertion order.
	var order []string
	set.Each(func(it *Item) {
		order = append(order, it.Rule.Head.Name())
		if it.Rule == ruleS {
			set.Insert(PredictNew(ruleA, 0))
		}
	})
	if len(order) != 2 || order[0] != "S" || order[1] != "A" {
		t.Errorf("iteration order = %v, want [S A]", order)
	}
	if set.Len() != 2 {
		t.Errorf("set.Len() = %d, want 2", set.Len())
	}
	if set.At(0).Rule != ruleS || set.At(1).Rule != ruleA {
		t.Errorf("positional access does not follow insertion order")
	}
}

func TestChartAccepting(t *testing.T) {
	g := testGrammar(t)
	ruleS := g.RulesForHead(g.Symbol("S"))[0]
	ruleA := g.RulesForHead(g.Symbol("A"))[0]
	c := NewChart(2)
	if c.Len() != 3 {
		t.Fatalf("chart length = %d, want 3", c.Len())
	}

	full := PredictNew(ruleS, 0)
	full.Dot = 2
	full.End = 2
	c.At(2).Insert(full)

	partial := PredictNew(ruleS, 1) // complete but does not span the input
	partial.Dot = 2
	partial.End = 2
	c.At(2).Insert(partial)

	headA := PredictNew(ruleA, 1) // complete A item, but not spanning from 0
	headA.Dot = 1
	headA.End = 2
	c.At(2).Insert(headA)

	roots := c.Accepting("S")
	if len(roots) != 1 || roots[0] != full {
		t.Errorf("Accepting = %v, want exactly the spanning complete S item", roots)
	}
	if roots := c.Accepting("A"); len(roots) != 0 {
		t.Errorf("Accepting(A) = %v, want none", roots)
	}
}
