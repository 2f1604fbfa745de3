package demangle

// demangler holds all per-call parser state. One instance is created
// per top-level Demangle call and discarded on return; there is no
// shared mutable state between calls.
type demangler struct {
	cursor

	subs    substitutionTable
	tparams templateParamTable

	nest     int // <nested-name> depth; the outermost one does not register its own full name as a substitution
	funcNest int // active <function-type> parameter-list depth

	deferredQuals string // CV/ref text appended after the outermost function's ")"
	isTypecastOp  bool   // suppresses return-type inference for `cv` names

	lastComponentText string // text of the most recently completed name component
}

func newDemangler(input string) *demangler {
	return &demangler{cursor: cursor{input: input}}
}

// addTypeSub registers typ as the next substitution, wrapping it so
// later S_/S0_/... references resolve back to the same node.
func (d *demangler) addTypeSub(typ Type) {
	d.subs.add(typ)
}

// literalType adapts a literal Node (which has no declarator method) so
// it can flow through <template-args> positions that expect a Type.
type literalType struct {
	Node
}

func (l literalType) declarator(inner string) string { return combine(l.Node.String(), inner) }

var _ Type = literalType{}
