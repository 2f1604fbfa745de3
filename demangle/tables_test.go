package demangle

import "testing"

func TestDecodeBase36Index(t *testing.T) {
	tests := []struct {
		seq  string
		want int
	}{
		{"", 0},
		{"0", 1},
		{"1", 2},
		{"9", 10},
		{"A", 11},
		{"Z", 36},
		{"10", 37},
	}
	for _, tt := range tests {
		if got := decodeBase36Index(tt.seq); got != tt.want {
			t.Errorf("decodeBase36Index(%q) = %d, want %d", tt.seq, got, tt.want)
		}
	}
}

func TestSubstitutionTableOverflow(t *testing.T) {
	var subs substitutionTable
	for i := 0; i < maxSubstitutions+5; i++ {
		subs.add(&BuiltinType{Name: "int"})
	}
	if len(subs.entries) != maxSubstitutions {
		t.Fatalf("substitution table grew past capacity: len=%d want=%d", len(subs.entries), maxSubstitutions)
	}
	if _, err := subs.resolve(maxSubstitutions); err != ErrInvalidBackref {
		t.Fatalf("resolve(%d) = %v, want ErrInvalidBackref", maxSubstitutions, err)
	}
	if _, err := subs.resolve(-1); err != ErrInvalidBackref {
		t.Fatalf("resolve(-1) = %v, want ErrInvalidBackref", err)
	}
}

func TestTemplateParamTableShadowsOnClose(t *testing.T) {
	var tp templateParamTable
	tp.add(&BuiltinType{Name: "int"}) // outer scope, index 0

	mark := tp.scope()
	tp.add(&BuiltinType{Name: "bool"}) // inner scope, would-be index 1
	tp.closeScope(mark)

	got, err := tp.resolve(0)
	if err != nil {
		t.Fatalf("resolve(0) after closeScope: %v", err)
	}
	if got.(*BuiltinType).Name != "bool" {
		t.Fatalf("resolve(0) = %v, want the inner scope's bool (shadowing, not restoring)", got)
	}
	if _, err := tp.resolve(1); err != ErrInvalidBackref {
		t.Fatalf("resolve(1) = %v, want ErrInvalidBackref (outer param no longer reachable)", err)
	}
}
