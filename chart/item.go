/*
Package chart implements Earley items, state sets and the chart they form:
the shared data structures between the recognizer and the forest
reconstructor.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2024 The chartparse Authors
*/
package chart

import (
	"fmt"

	"github.com/cnf/structhash"
	"github.com/earley-tools/chartparse/grammar"
)

// TriggerKind distinguishes the two ways an Item's dot can advance.
type TriggerKind int

const (
	// ScanTrigger records that the dot advanced because a terminal matched
	// a token's text.
	ScanTrigger TriggerKind = iota
	// CompleteTrigger records that the dot advanced because a non-terminal
	// child item reached completion.
	CompleteTrigger
)

// Trigger describes why an Item's dot advanced one position: either a Scan
// of a token's text, or a Complete of a child item. Exactly one of Token /
// Child is meaningful, selected by Kind.
type Trigger struct {
	Kind  TriggerKind
	Token string // meaningful iff Kind == ScanTrigger
	Child *Item  // meaningful iff Kind == CompleteTrigger
}

// Scan builds a Scan trigger for the given matched token text.
func Scan(token string) Trigger {
	return Trigger{Kind: ScanTrigger, Token: token}
}

// Complete builds a Complete trigger referencing the child item that
// reached completion.
func Complete(child *Item) Trigger {
	return Trigger{Kind: CompleteTrigger, Child: child}
}

// key returns a value usable to compare two triggers for the purpose of
// keeping distinct backpointer entries distinct: Scan triggers compare by token text, Complete triggers compare by the
// child's (rule, dot, start, end) identity.
func (t Trigger) key() string {
	if t.Kind == ScanTrigger {
		return "S:" + t.Token
	}
	return "C:" + t.Child.key()
}

// Backpointer is one recorded way an Item came to be: the item one
// dot-position earlier, and the trigger that advanced the dot.
type Backpointer struct {
	Source  *Item
	Trigger Trigger
}

// Item is a partially (or fully) matched Rule: a dotted rule together with
// the input span it has matched so far, and the set of backpointers
// recording every way it was derived.
//
// Identity, equality and hashing are defined over (Rule, Dot, Start, End)
// only, deliberately excluding Backpointers: two items that are "equal" in
// this sense are meant to be merged, their backpointer sets unioned. Item
// values are never copied after creation for this reason; always work
// through *Item.
type Item struct {
	Rule  *grammar.Rule
	Dot   int
	Start int
	End   int

	// backpointers is mutated only while this item belongs to the state
	// set currently under construction (see StateSet.Insert, and the
	// recognizer, which inserts only into the state set it is saturating or
	// scanning into). Once a state set is
	// finalized its items' backpointer sets are never touched again.
	backpointers []Backpointer
	seen         map[string]bool
}

// newItem allocates an Item with no backpointers, e.g. for Predict.
func newItem(rule *grammar.Rule, dot, start, end int) *Item {
	return &Item{Rule: rule, Dot: dot, Start: start, End: end}
}

// PredictNew builds a Predict-derived item: dot at 0, start == end == at,
// no backpointers.
func PredictNew(rule *grammar.Rule, at int) *Item {
	return newItem(rule, 0, at, at)
}

// ScanNew builds a Scan-derived item: source's dot advanced by one position
// because its next terminal matched token's text.
func ScanNew(source *Item, end int, token string) *Item {
	it := newItem(source.Rule, source.Dot+1, source.Start, end)
	it.addBackpointer(Backpointer{Source: source, Trigger: Scan(token)})
	return it
}

// CompleteNew builds a Complete-derived item: source's dot advanced by one
// position because child, a non-terminal item matching source's next
// symbol, reached completion ending at `end`.
func CompleteNew(source *Item, child *Item, end int) *Item {
	it := newItem(source.Rule, source.Dot+1, source.Start, end)
	it.addBackpointer(Backpointer{Source: source, Trigger: Complete(child)})
	return it
}

func (it *Item) addBackpointer(bp Backpointer) {
	k := bp.Trigger.key() + "|" + bp.Source.key()
	if it.seen == nil {
		it.seen = make(map[string]bool)
	}
	if it.seen[k] {
		return
	}
	it.seen[k] = true
	it.backpointers = append(it.backpointers, bp)
}

// mergeFrom absorbs other's backpointers into it, preserving insertion
// order and skipping duplicates already present. This is the merge rule:
// inserting an item that is already present in a state set causes the
// existing, shared item to absorb the new item's backpointers.
func (it *Item) mergeFrom(other *Item) {
	for _, bp := range other.backpointers {
		it.addBackpointer(bp)
	}
}

// Complete reports whether the dot has reached the end of the rule body.
func (it *Item) Complete() bool {
	return it.Dot >= len(it.Rule.Body)
}

// NextSymbol returns the symbol immediately after the dot, or nil if the
// item is already complete.
func (it *Item) NextSymbol() *grammar.Symbol {
	if it.Complete() {
		return nil
	}
	return it.Rule.Body[it.Dot]
}

// Backpointers returns the recorded (source, trigger) pairs for this item,
// in the order they were first added. The returned slice must not be
// mutated by callers.
func (it *Item) Backpointers() []Backpointer {
	return it.backpointers
}

// key is the (Rule, Dot, Start, End) identity key used for deduplication in
// state sets, computed with structhash over the rule's stable Serial and
// head name rather than the rule's predicate-bearing body symbols, since
// struct hashing a function value is undefined.
func (it *Item) key() string {
	h, err := structhash.Hash(struct {
		RuleSerial int
		RuleHead   string
		Dot        int
		Start      int
		End        int
	}{it.Rule.Serial, it.Rule.Head.Name(), it.Dot, it.Start, it.End}, 1)
	if err != nil {
		// structhash.Hash only fails on unhashable kinds (chans, funcs) and
		// the struct above contains none, so this path is unreachable.
		panic(fmt.Sprintf("chart: item key hashing failed: %v", err))
	}
	return h
}

func (it *Item) String() string {
	pre, post := it.Rule.Body[:it.Dot], it.Rule.Body[it.Dot:]
	return fmt.Sprintf("(%d-%d) %s -> %v . %v", it.Start, it.End, it.Rule.Head.Name(), pre, post)
}
