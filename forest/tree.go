/*
Package forest reconstructs derivation trees from a finished chart: given
the final state set's accepting items, it walks backpointers to build one
tree (OneTree) or every tree (AllTrees) a grammar admits for an input.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2024 The chartparse Authors
*/
package forest

import (
	"fmt"
	"strings"
)

// Kind distinguishes the two cases of Tree.
type Kind int

const (
	// LeafKind trees record a matched terminal.
	LeafKind Kind = iota
	// NodeKind trees record a reduced rule and its children.
	NodeKind
)

// Tree is a derivation tree node: either a Leaf recording a matched
// terminal, or a Node recording which rule matched and the ordered
// children derived for its body. The String representation is the stable,
// test-facing format: `Leaf("name", "text")` and
// `Node("label", [child1, child2, …])`.
type Tree struct {
	Kind Kind

	// Leaf fields.
	Terminal string
	Text     string

	// Node fields.
	Label    string
	Children []*Tree
}

// Leaf builds a leaf tree recording that terminal matched text.
func Leaf(terminal, text string) *Tree {
	return &Tree{Kind: LeafKind, Terminal: terminal, Text: text}
}

// Node builds an internal tree for a reduced rule, labeled label, with the
// given ordered children.
func Node(label string, children []*Tree) *Tree {
	return &Tree{Kind: NodeKind, Label: label, Children: children}
}

// String renders t in the stable bracketed format used throughout the test
// suite.
func (t *Tree) String() string {
	if t == nil {
		return "<nil>"
	}
	if t.Kind == LeafKind {
		return fmt.Sprintf("Leaf(%q, %q)", t.Terminal, t.Text)
	}
	parts := make([]string, len(t.Children))
	for i, c := range t.Children {
		parts[i] = c.String()
	}
	return fmt.Sprintf("Node(%q, [%s])", t.Label, strings.Join(parts, ", "))
}
