package demangle

import (
	"errors"
	"testing"
)

// TestDemangleScenarios covers the literal end-to-end scenarios of the
// test corpus this package targets, plus a handful of cases exercising
// grammar corners (variadics, vendor qualifiers, ABI tags, special
// encodings, and template-parameter shadowing) traced by hand against
// the grammar.
func TestDemangleScenarios(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple function", "_Z3funi", "fun(int)"},
		{"substitution of CV-qualified type", "_Z3fooPKiS_", "foo(int const*,int const)"},
		{"substitution of pointer type", "_Z3fooPKiS0_", "foo(int const*,int const*)"},
		{"constructor synthesis", "_ZN10GameOfLifeC1Eii", "GameOfLife::GameOfLife(int,int)"},
		{"template with inferred return type", "_Z1fIiEvi", "void f<int>(int)"},
		{"function pointer and pointer-to-member", "_Z1fPFvvEM1SFvvE", "f(void(*)(),void (S::*)())"},
		{"local name and closure type", "_ZZ3aaavENUlvE_3bbbE", "aaa()::{lambda()#1}::bbb"},
		{"boolean literal template argument", "_Z3fooILb1EEvi", "void foo<true>(int)"},
		{
			"dense substitution use with trailing const",
			"_ZNKSt15_Deque_iteratorIP15memory_block_stRKS1_PS2_EeqERKS5_",
			"std::_Deque_iterator<memory_block_st*,memory_block_st* const&,memory_block_st* const*>::operator==(std::_Deque_iterator<memory_block_st*,memory_block_st* const&,memory_block_st* const*> const&) const",
		},
		{"plain data symbol", "_Z4data", "data"},
		{"void-only parameter list elides to ()", "_Z3funv", "fun()"},
		{"trailing variadic parameter", "_Z3fooiz", "foo(int,...)"},
		{"vendor-qualified parameter type", "_Z3fooU6MyAttri", "foo(int MyAttr)"},
		{"ABI-tagged name", "_Z3fooB3abcv", "foo[abi:abc]()"},
		{"vtable special encoding", "_ZTV3Foo", "vtable for Foo"},
		{
			"nested template parameters shadow on scope close",
			"_ZN1CI1AE1DI1BEEvT_",
			"void C<A>::D<B>(B)",
		},
		{
			// The "int const" type and its 11 pointer wraps fill
			// substitution indices 0-11 (the plain name "f" is not a
			// substitution), so the back-reference to index 11 needs a
			// seq-id past the single-hex-digit range: "SA_" (base-36
			// "A" = index 11).
			"base-36 substitution seq-id beyond single hex digit",
			"_Z1fPPPPPPPPPPPKiSA_",
			"f(int const***********,int const***********)",
		},
		{
			// The nested-name's own terminal component ("some_method")
			// must not itself become a substitution at the outermost
			// nesting level, or the indices of the three trailing
			// back-references would drift.
			"nested-name terminal component excluded from its own substitution table",
			"_ZN3foo3BarIPcE11some_methodEPS2_S3_S3_",
			"foo::Bar<char*>::some_method(foo::Bar<char*>*,foo::Bar<char*>*,foo::Bar<char*>*)",
		},
		{"bare function type as a template argument", "_Z1fIFvvEEvv", "void f<void()>()"},
		{"array type inside a nested-name", "_ZN3FooIA4_iE3barE", "Foo<int[4]>::bar"},
		{"local name with discriminated source-name", "_ZZL3foo_2vE4var1", "foo()::var1"},
		{"local name yielding a string literal placeholder", "_ZZN1N1fEiEs", "N::f(int)::{string-literal}"},
		{"builtin parameter list", "_Z3foocis", "foo(char,int,short)"},
		{"const pointer parameter", "_Z3fooPKi", "foo(int const*)"},
		{"class-enum-type parameter", "_Z3foo3bar", "foo(bar)"},
		{"plain member function", "_ZN11KeyCfgFrame10GetKeyModeEi", "KeyCfgFrame::GetKeyMode(int)"},
		{"multi-argument class template", "_Z1AIcfE", "A<char,float>"},
		{"templated class, non-templated method", "_ZN19wxNavigationEnabledI16wxTopLevelWindowE8SetFocusEv", "wxNavigationEnabled<wxTopLevelWindow>::SetFocus()"},
		{"destructor with extra parameters", "_ZN10GameOfLifeD1Eii", "GameOfLife::~GameOfLife(int,int)"},
		{"template parameter reused as a substitution inside its own signature", "_Z1fI1XEvPVN1AIT_E1TE", "void f<X>(A<X>::T volatile*)"},
		{"pointer to data member", "_Z3fooPM2ABi", "foo(int AB::**)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Demangle(tt.in)
			if err != nil {
				t.Fatalf("Demangle(%q) returned error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Demangle(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDemangleNegativeScenarios(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"back-reference to index not yet populated", "_Z3fooPKiS1_"},
		{"malformed substitution", "_ZSA"},
		{"missing encoding", "_Za"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if out, err := Demangle(tt.in); err == nil {
				t.Errorf("Demangle(%q) = %q, <nil>, want an error", tt.in, out)
			}
		})
	}
}

func TestDemangleNotMangled(t *testing.T) {
	tests := []string{"", "plain_c_symbol", "main"}
	for _, in := range tests {
		out, err := Demangle(in)
		if in == "" {
			if !errors.Is(err, ErrEmptyInput) {
				t.Errorf("Demangle(%q) error = %v, want ErrEmptyInput", in, err)
			}
			continue
		}
		if !errors.Is(err, ErrNotMangled) {
			t.Errorf("Demangle(%q) error = %v, want ErrNotMangled", in, err)
		}
		if out != in {
			t.Errorf("Demangle(%q) = %q, want input echoed back unchanged", in, out)
		}
	}
}

// TestDemangleIdempotent checks invariant 3: re-invoking on the same
// input produces the same result, i.e. no hidden state survives a call.
func TestDemangleIdempotent(t *testing.T) {
	const in = "_ZNKSt15_Deque_iteratorIP15memory_block_stRKS1_PS2_EeqERKS5_"
	first, err := Demangle(in)
	if err != nil {
		t.Fatalf("first Demangle: %v", err)
	}
	for i := 0; i < 5; i++ {
		got, err := Demangle(in)
		if err != nil {
			t.Fatalf("Demangle iteration %d: %v", i, err)
		}
		if got != first {
			t.Errorf("Demangle iteration %d = %q, want %q (same as first call)", i, got, first)
		}
	}
}

func TestIsMangled(t *testing.T) {
	if !IsMangled("_Z3funi") {
		t.Error("IsMangled(_Z3funi) = false, want true")
	}
	if IsMangled("fun") {
		t.Error("IsMangled(fun) = true, want false")
	}
}

func TestFilter(t *testing.T) {
	if got := Filter("_Z3funi"); got != "fun(int)" {
		t.Errorf("Filter(_Z3funi) = %q, want fun(int)", got)
	}
	if got := Filter("not_mangled"); got != "not_mangled" {
		t.Errorf("Filter(not_mangled) = %q, want input echoed back unchanged", got)
	}
	if got := Filter("_ZSA"); got != "_ZSA" {
		t.Errorf("Filter(_ZSA) = %q, want input echoed back on parse failure", got)
	}
}

func TestDemangleNode(t *testing.T) {
	node, err := DemangleNode("_Z3funi")
	if err != nil {
		t.Fatalf("DemangleNode: %v", err)
	}
	fn, ok := node.(*FunctionSymbol)
	if !ok {
		t.Fatalf("DemangleNode returned %T, want *FunctionSymbol", node)
	}
	if len(fn.Params) != 1 {
		t.Fatalf("FunctionSymbol.Params has %d entries, want 1", len(fn.Params))
	}
	if node.String() != "fun(int)" {
		t.Errorf("node.String() = %q, want fun(int)", node.String())
	}
}

func TestDemangleCloneSuffix(t *testing.T) {
	got, err := Demangle("_Z3funi.part.0")
	if err != nil {
		t.Fatalf("Demangle with clone suffix: %v", err)
	}
	if want := "fun(int).part.0"; got != want {
		t.Errorf("Demangle with clone suffix = %q, want %q", got, want)
	}
}
