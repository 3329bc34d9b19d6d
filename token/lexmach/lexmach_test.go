package lexmach

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"

	"github.com/earley-tools/chartparse/token"
)

func exprAdapter(t *testing.T) *Adapter {
	t.Helper()
	init := func(lx *lexmachine.Lexer) {
		lx.Add([]byte(`[0-9]+`), func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
			return s.Token(0, string(m.Bytes), m), nil
		})
		lx.Add([]byte(`( |\t|\n|\r)+`), Skip)
	}
	a, err := NewAdapter(init, []string{"+", "-", "*", "/", "(", ")"}, nil)
	if err != nil {
		t.Fatalf("NewAdapter: %v", err)
	}
	return a
}

func TestAdapterScansExpression(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartparse.token")
	defer teardown()
	a := exprAdapter(t)
	s, err := a.Scanner("1 + (23 * 4)")
	if err != nil {
		t.Fatalf("Scanner: %v", err)
	}
	want := []string{"1", "+", "(", "23", "*", "4", ")"}
	got := token.All(s)
	if len(got) != len(want) {
		t.Fatalf("token count = %d (%v), want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestScannerImplementsSource(t *testing.T) {
	var _ token.Source = (*Scanner)(nil)
}
