/*
Package chartparse is a context-free recognizer and parse-forest builder
based on Earley's algorithm.

Given a grammar — production rules over terminals and non-terminals, with
a designated start non-terminal — and a stream of input tokens, it decides
whether the input is in the language and, if so, produces one or all
derivation trees. The grammar class is unrestricted context-free: left
recursion, right recursion, nullable productions and ambiguity are all
admitted. Package structure is as follows:

■ grammar: terminals with predicate matchers, non-terminals, rules, and a
sealed immutable Grammar built through a Builder.

■ chart: Earley items, state sets with backpointer-merging insertion, and
the chart they form.

■ recognizer: the Earley engine, applying Predict / Scan / Complete per
input position until each state set saturates.

■ forest: derivation-tree reconstruction from a finished chart, as one
tree or every tree.

■ token: the abstract token source the recognizer consumes, plus a
lexmachine-backed adapter.

■ ebnf, sexpr, cmd/chartparse: front-end collaborators — a reader for an
EBNF-like grammar notation, an S-expression tree printer, and a
demonstration CLI. They consume the core packages, never the reverse.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2024 The chartparse Authors

*/
package chartparse
