package token

import "testing"

func TestSliceSourceDrains(t *testing.T) {
	src := NewSliceSource([]string{"1", "+", "2"})
	for _, want := range []string{"1", "+", "2"} {
		got, ok := src.Next()
		if !ok || got != want {
			t.Fatalf("Next() = (%q, %v), want (%q, true)", got, ok, want)
		}
	}
	if tok, ok := src.Next(); ok {
		t.Errorf("Next() after exhaustion = (%q, true), want end of stream", tok)
	}
	if tok, ok := src.Next(); ok {
		t.Errorf("Next() stays exhausted = (%q, true), want end of stream", tok)
	}
}

func TestAllCollectsRemainingTokens(t *testing.T) {
	src := NewSliceSource([]string{"a", "b", "c"})
	src.Next() // consume one; All drains only the rest
	rest := All(src)
	if len(rest) != 2 || rest[0] != "b" || rest[1] != "c" {
		t.Errorf("All = %v, want [b c]", rest)
	}
	if out := All(NewSliceSource(nil)); len(out) != 0 {
		t.Errorf("All on empty source = %v, want empty", out)
	}
}
