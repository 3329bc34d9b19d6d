package forest

import (
	"fmt"

	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/tracing"

	"github.com/earley-tools/chartparse/chart"
	"github.com/earley-tools/chartparse/parseerr"
)

func tracer() tracing.Trace {
	return tracing.Select("chartparse.forest")
}

// AllTrees returns every derivation tree the chart admits for start,
// concatenated across every accepting root. For grammars that admit
// infinitely many trees (nullable-loop ambiguity), this is explicitly not
// required to terminate; callers that
// may encounter such a grammar should call OneTree instead.
func AllTrees(start string, c *chart.Chart) ([]*Tree, error) {
	roots := c.Accepting(start)
	if len(roots) == 0 {
		return nil, &parseerr.NoTree{Start: start}
	}
	memo := make(map[*chart.Item][]*Tree)
	var out []*Tree
	for _, root := range roots {
		out = append(out, treesFor(root, memo)...)
	}
	return out, nil
}

// OneTree returns a single derivation tree for start, picking the first
// alternative at every choice point (backpointer order, then child-tree
// order). Unlike AllTrees it always terminates: when the descent would
// revisit an item already on the current path (an ε-cycle), an alternative
// backpointer is preferred; an item with no such alternative fails and its
// parent tries its own next choice. If the accepting root itself has no way
// out, a childless skeleton node for the root is returned instead of
// descending forever.
func OneTree(start string, c *chart.Chart) (*Tree, error) {
	roots := c.Accepting(start)
	if len(roots) == 0 {
		return nil, &parseerr.NoTree{Start: start}
	}
	path := make(map[*chart.Item]bool)
	t, ok := oneTree(roots[0], path)
	if ok {
		return t, nil
	}
	tracer().Errorf("one_tree stuck on %s: every derivation revisits an already-descended item", roots[0])
	if gconf.GetBool("chartparse.panic-on-stuck") {
		panic(fmt.Sprintf("forest: one_tree stuck on %s", roots[0]))
	}
	return Node(roots[0].Rule.Label(), nil), nil
}

// treesFor enumerates every tree rooted at the completed item x, i.e. every
// choice of children consistent with x's backpointers, wrapped as a Node
// labeled with x's rule. Results are memoized per item:
// an item's tree set depends only on its own backpointers, never on the
// context it is reached from, so sharing is always safe (the same sharing
// a shared packed parse forest relies on).
func treesFor(x *chart.Item, memo map[*chart.Item][]*Tree) []*Tree {
	if cached, ok := memo[x]; ok {
		return cached
	}
	var out []*Tree
	for _, children := range pathsFor(x, memo) {
		out = append(out, Node(x.Rule.Label(), children))
	}
	memo[x] = out
	return out
}

// pathsFor enumerates every ordered sequence of daughter trees for x's rule
// body, walking backwards from x's dot toward dot 0.
func pathsFor(x *chart.Item, memo map[*chart.Item][]*Tree) [][]*Tree {
	if x.Dot == 0 {
		return [][]*Tree{nil}
	}
	var out [][]*Tree
	for _, bp := range x.Backpointers() {
		prefixes := pathsFor(bp.Source, memo)
		switch bp.Trigger.Kind {
		case chart.ScanTrigger:
			leaf := Leaf(bp.Source.NextSymbol().Name(), bp.Trigger.Token)
			for _, p := range prefixes {
				out = append(out, appendChild(p, leaf))
			}
		case chart.CompleteTrigger:
			for _, t := range treesFor(bp.Trigger.Child, memo) {
				for _, p := range prefixes {
					out = append(out, appendChild(p, t))
				}
			}
		}
	}
	return out
}

// oneTree builds a single tree for the completed item x, or reports failure
// if x is on the current descent path (a cycle) or every way of completing
// it loops back into the path.
func oneTree(x *chart.Item, path map[*chart.Item]bool) (*Tree, bool) {
	if path[x] {
		return nil, false
	}
	path[x] = true
	defer delete(path, x)
	children, ok := oneChildren(x, path)
	if !ok {
		return nil, false
	}
	return Node(x.Rule.Label(), children), true
}

// oneChildren picks the first available backpointer (and, for a Complete
// trigger, the first available child derivation) that does not revisit the
// current descent path, and returns x's children under that single choice.
func oneChildren(x *chart.Item, path map[*chart.Item]bool) ([]*Tree, bool) {
	if x.Dot == 0 {
		return nil, true
	}
	for _, bp := range x.Backpointers() {
		prefix, ok := oneChildren(bp.Source, path)
		if !ok {
			continue
		}
		if bp.Trigger.Kind == chart.ScanTrigger {
			leaf := Leaf(bp.Source.NextSymbol().Name(), bp.Trigger.Token)
			return append(prefix, leaf), true
		}
		child, ok := oneTree(bp.Trigger.Child, path)
		if !ok {
			continue
		}
		return append(prefix, child), true
	}
	return nil, false
}

// appendChild returns a new slice with t appended to p, never mutating p —
// p may still be combined with other children in a sibling iteration.
func appendChild(p []*Tree, t *Tree) []*Tree {
	out := make([]*Tree, len(p)+1)
	copy(out, p)
	out[len(p)] = t
	return out
}
