/*
Package sexpr renders derivation trees as S-expressions, e.g.

	(Sum (Sum (Mul (Pow (Num "1")))) "+" (Mul (Pow (Num "2"))))

A node renders as a list headed by its rule's left-hand side, a leaf as the
quoted token text. This is a convenience rendering for humans; the stable,
test-facing format remains forest.Tree's own String method.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2024 The chartparse Authors
*/
package sexpr

import (
	"fmt"
	"strings"

	"github.com/earley-tools/chartparse/forest"
)

// Print renders t as an S-expression.
func Print(t *forest.Tree) string {
	var sb strings.Builder
	render(&sb, t)
	return sb.String()
}

func render(sb *strings.Builder, t *forest.Tree) {
	if t == nil {
		sb.WriteString("()")
		return
	}
	if t.Kind == forest.LeafKind {
		fmt.Fprintf(sb, "%q", t.Text)
		return
	}
	sb.WriteByte('(')
	sb.WriteString(head(t.Label))
	for _, c := range t.Children {
		sb.WriteByte(' ')
		render(sb, c)
	}
	sb.WriteByte(')')
}

// head extracts the left-hand side from a rule label of the form
// "H -> A B C".
func head(label string) string {
	if i := strings.Index(label, " -> "); i >= 0 {
		return label[:i]
	}
	return label
}
