package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/earley-tools/chartparse/ebnf"
	"github.com/earley-tools/chartparse/forest"
	"github.com/earley-tools/chartparse/grammar"
	"github.com/earley-tools/chartparse/recognizer"
	"github.com/earley-tools/chartparse/sexpr"
	"github.com/earley-tools/chartparse/token/lexmach"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2024 The chartparse Authors
*/

func tracer() tracing.Trace {
	return tracing.Select("chartparse.cli")
}

// The default grammar, if none is given with -grammar: the arithmetic
// expression grammar also shipped as ebnf/examples/math.ebnf.
const mathGrammar = `
	Sum := Sum ('+'|'-') Mul | Mul ;
	Mul := Mul ('*'|'/') Pow | Pow ;
	Pow := Num '^' Pow | Num ;
	Num := Number | '(' Sum ')' ;
`

func isNumber(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// main reads a grammar in EBNF-like notation (or falls back to the built-in
// arithmetic grammar), parses the expression given on the command line, and
// prints one derivation tree per successful parse. With -i it enters an
// interactive loop reading one expression per line instead.
func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	grammarFile := flag.String("grammar", "", "File with a grammar in EBNF-like notation")
	startSym := flag.String("start", "", "Start symbol (default: head of the first production)")
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	interactive := flag.Bool("i", false, "Interactive mode: read one expression per line")
	allTrees := flag.Bool("all", false, "Print every derivation tree, not just the first")
	asSexpr := flag.Bool("sexpr", false, "Print trees as S-expressions instead of rendering them")
	flag.Parse()
	for _, key := range []string{"chartparse.cli", "chartparse.recognizer", "chartparse.forest", "chartparse.grammar", "chartparse.ebnf", "chartparse.token"} {
		tracing.Select(key).SetTraceLevel(tracing.TraceLevelFromString(*tlevel))
	}

	text := mathGrammar
	if *grammarFile != "" {
		data, err := os.ReadFile(*grammarFile)
		if err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(1)
		}
		text = string(data)
	}
	g, err := ebnf.NewParserBuilder().
		PlugTerminal("Number", isNumber).
		Grammar("cli", text, *startSym)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
	tracer().Infof("grammar has %d rules, start symbol %q", len(g.Rules()), g.Start().Name())
	lexer, err := expressionLexer(text)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}

	if *interactive {
		repl(g, lexer, *allTrees, *asSexpr)
		return
	}
	input := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if input == "" {
		pterm.Error.Println("no expression given (use -i for interactive mode)")
		os.Exit(1)
	}
	if !run(g, lexer, input, *allTrees, *asSexpr) {
		os.Exit(2)
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// expressionLexer builds a tokenizer for expressions over the grammar: the
// quoted literals of the grammar text are split off verbatim, numbers and
// identifiers are scanned as single tokens, whitespace separates.
func expressionLexer(grammarText string) (*lexmach.Adapter, error) {
	literals, err := ebnf.Literals(grammarText)
	if err != nil {
		return nil, err
	}
	init := func(lx *lexmachine.Lexer) {
		lx.Add([]byte(`[0-9]+(\.[0-9]+)?`), lexeme)
		lx.Add([]byte(`([a-z]|[A-Z]|_)([a-z]|[A-Z]|[0-9]|_)*`), lexeme)
		lx.Add([]byte(`( |\t|\n|\r)+`), lexmach.Skip)
	}
	return lexmach.NewAdapter(init, literals, nil)
}

func lexeme(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
	return s.Token(0, string(m.Bytes), m), nil
}

// repl reads one expression per line and prints its derivation(s).
func repl(g *grammar.Grammar, lexer *lexmach.Adapter, allTrees, asSexpr bool) {
	pterm.Info.Println("Welcome to chartparse")
	tracer().Infof("Quit with <ctrl>D")
	rl, err := readline.New("chartparse> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		run(g, lexer, line, allTrees, asSexpr)
	}
	println("Good bye!")
}

// run parses one expression and prints its derivation tree(s). Reports
// whether the input was accepted.
func run(g *grammar.Grammar, lexer *lexmach.Adapter, input string, allTrees, asSexpr bool) bool {
	scanner, err := lexer.Scanner(input)
	if err != nil {
		pterm.Error.Println(err.Error())
		return false
	}
	c, err := recognizer.Parse(g, scanner)
	if err != nil {
		pterm.Error.Println(err.Error())
		return false
	}
	var trees []*forest.Tree
	if allTrees {
		trees, err = forest.AllTrees(g.Start().Name(), c)
	} else {
		var t *forest.Tree
		t, err = forest.OneTree(g.Start().Name(), c)
		trees = []*forest.Tree{t}
	}
	if err != nil {
		pterm.Error.Println(err.Error())
		return false
	}
	if len(trees) > 1 {
		pterm.Info.Println(fmt.Sprintf("%d derivations", len(trees)))
	}
	for _, t := range trees {
		if asSexpr {
			pterm.Println(sexpr.Print(t))
			continue
		}
		printTree(t)
	}
	return true
}

// printTree renders a derivation tree on the terminal: flatten to a
// leveled list, then let pterm draw the tree.
func printTree(t *forest.Tree) {
	ll := leveledTree(t, pterm.LeveledList{}, 0)
	root := pterm.NewTreeFromLeveledList(ll)
	pterm.DefaultTree.WithRoot(root).Render()
}

func leveledTree(t *forest.Tree, ll pterm.LeveledList, level int) pterm.LeveledList {
	if t == nil {
		return append(ll, pterm.LeveledListItem{Level: level, Text: "nil"})
	}
	if t.Kind == forest.LeafKind {
		return append(ll, pterm.LeveledListItem{Level: level, Text: fmt.Sprintf("%s %q", t.Terminal, t.Text)})
	}
	ll = append(ll, pterm.LeveledListItem{Level: level, Text: t.Label})
	for _, c := range t.Children {
		ll = leveledTree(c, ll, level+1)
	}
	return ll
}
