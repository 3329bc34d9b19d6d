/*
Package lexmach adapts github.com/timtadh/lexmachine into a token.Source:
build a lexmachine.Lexer from a set of regex rules, then hand out scanners
over concrete input that satisfy the token.Source interface.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2024 The chartparse Authors
*/
package lexmach

import (
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

func tracer() tracing.Trace {
	return tracing.Select("chartparse.token")
}

// Adapter wraps a compiled lexmachine.Lexer.
type Adapter struct {
	lexer *lexmachine.Lexer
}

// NewAdapter builds an Adapter recognizing literal strings (operators,
// punctuation — matched verbatim), keywords (matched case-sensitively as
// whole identifiers) and a catch-all set of named regex rules supplied by
// init (for numbers, identifiers, strings, whitespace-skipping, …).
// Literals and keywords are reported with their own text as the token's
// lexeme, matching the way lr/scanner/lexmach.NewLMAdapter shapes its
// tokens.
func NewAdapter(init func(*lexmachine.Lexer), literals []string, keywords []string) (*Adapter, error) {
	lx := lexmachine.NewLexer()
	init(lx)
	for _, lit := range literals {
		pattern := "\\" + strings.Join(strings.Split(lit, ""), "\\")
		lx.Add([]byte(pattern), makeToken(lit))
	}
	for _, kw := range keywords {
		lx.Add([]byte(kw), makeToken(kw))
	}
	if err := lx.Compile(); err != nil {
		tracer().Errorf("compiling lexmachine DFA: %v", err)
		return nil, err
	}
	return &Adapter{lexer: lx}, nil
}

// Scanner returns a token.Source for the given input text.
func (a *Adapter) Scanner(input string) (*Scanner, error) {
	s, err := a.lexer.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	return &Scanner{scanner: s}, nil
}

// Scanner is a token.Source backed by a running lexmachine scan.
type Scanner struct {
	scanner *lexmachine.Scanner
}

// Next implements token.Source.
func (s *Scanner) Next() (string, bool) {
	tok, err, eof := s.scanner.Next()
	for err != nil {
		if ui, is := err.(*machines.UnconsumedInput); is {
			s.scanner.TC = ui.FailTC
		}
		tracer().Errorf("scanner error: %v", err)
		tok, err, eof = s.scanner.Next()
	}
	if eof {
		return "", false
	}
	token := tok.(*lexmachine.Token)
	return string(token.Lexeme), true
}

func makeToken(text string) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(0, text, m), nil
	}
}

// Skip is a pre-built action for rules that should produce no token (e.g.
// whitespace and comments).
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}
