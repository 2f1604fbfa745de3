// Package demangle converts Itanium C++ ABI mangled symbol names (as
// emitted by GNU and Clang toolchains) into human-readable declarations.
package demangle

import (
	"fmt"
	"strings"
)

// NodeKind identifies the production that produced a Node.
type NodeKind int

const (
	NodeKindUnknown NodeKind = iota
	NodeKindIdentifier
	NodeKindQualifiedName
	NodeKindOperator
	NodeKindConversionOperator
	NodeKindCtorDtor
	NodeKindClosureType
	NodeKindUnnamedType
	NodeKindStructuredBinding
	NodeKindLocalName
	NodeKindTemplateInstantiation
	NodeKindAbiTagged

	NodeKindBuiltinType
	NodeKindNamedType
	NodeKindQualifiedType
	NodeKindVendorQualifiedType
	NodeKindPointerType
	NodeKindReferenceType
	NodeKindRvalueReferenceType
	NodeKindArrayType
	NodeKindFunctionType
	NodeKindPointerToMemberType
	NodeKindTemplateParam
	NodeKindSubstitution

	NodeKindIntegerLiteral
	NodeKindFloatLiteral
	NodeKindStringLiteral
	NodeKindBoolLiteral
	NodeKindNullptrLiteral
	NodeKindDecltypePlaceholder

	NodeKindFunctionSymbol
	NodeKindDataSymbol
	NodeKindSpecialEncoding
)

// Node is the interface implemented by every AST production.
type Node interface {
	Kind() NodeKind
	fmt.Stringer
}

// Type is the interface implemented by every <type> production. declarator
// builds up the C-style declarator text that should appear where a
// variable or parameter name would go: each composite type wraps the
// "inner" text it is given and passes the result down to its element
// type, which is the recursive-descent analogue of the C declarator
// insertion-point rule the Itanium ABI's type grammar is built on,
// expressed as composition instead of text splicing (see DESIGN.md).
type Type interface {
	Node
	declarator(inner string) string
}

// combine glues a base type's rendered text to a declarator chunk. A
// leading '*' or '&' (after stripping any grouping parens) binds
// directly to the base text with no space ("int*", "int const&",
// "void(*)()"), as does a bare array suffix ("int[4]") or an empty
// grouping paren that turns out to be the function's own (unwrapped)
// parameter list rather than a pointer/member-pointer group ("void()");
// anything else — a qualified-name prefix inside the group ("S::*"), or
// a named declarator ("f<int>(int)") — gets a separating space
// ("void (S::*)()", "void f<int>(int)").
func combine(base, inner string) string {
	if inner == "" {
		return base
	}
	if inner[0] == '[' {
		return base + inner
	}
	i := 0
	for i < len(inner) && inner[i] == '(' {
		i++
	}
	if i < len(inner) && (inner[i] == '*' || inner[i] == '&' || inner[i] == ')') {
		return base + inner
	}
	return base + " " + inner
}

func declare(t Type) string {
	return t.declarator("")
}

// Identifier is a bare name component (source-name, std abbreviation).
type Identifier struct {
	Name string
}

func (n *Identifier) Kind() NodeKind { return NodeKindIdentifier }
func (n *Identifier) String() string { return n.Name }

// QualifiedName is a ::-separated sequence of name components.
type QualifiedName struct {
	Components []Node
}

func (n *QualifiedName) Kind() NodeKind { return NodeKindQualifiedName }

func (n *QualifiedName) String() string {
	parts := make([]string, len(n.Components))
	for i, c := range n.Components {
		parts[i] = c.String()
	}
	return strings.Join(parts, "::")
}

func (n *QualifiedName) lastText() string {
	if len(n.Components) == 0 {
		return ""
	}
	return n.Components[len(n.Components)-1].String()
}

// Operator represents an operator-name (operator+, operator new, ...).
type Operator struct {
	Symbol     string
	Alphabetic bool
}

func (n *Operator) Kind() NodeKind { return NodeKindOperator }

func (n *Operator) String() string {
	if n.Alphabetic {
		return "operator " + n.Symbol
	}
	return "operator" + n.Symbol
}

// ConversionOperator is the `cv <type>` type-cast operator.
type ConversionOperator struct {
	Target Type
}

func (n *ConversionOperator) Kind() NodeKind { return NodeKindConversionOperator }
func (n *ConversionOperator) String() string { return "operator " + declare(n.Target) }

// CtorDtor renders a constructor or destructor, whose printed text is the
// (possibly "~"-prefixed) name of the immediately preceding name
// component, per the Itanium `<ctor-dtor-name>` production.
type CtorDtor struct {
	ClassName string
	IsDtor    bool
}

func (n *CtorDtor) Kind() NodeKind { return NodeKindCtorDtor }

func (n *CtorDtor) String() string {
	if n.IsDtor {
		return "~" + n.ClassName
	}
	return n.ClassName
}

// ClosureType is a lambda `{lambda(params)#N}`.
type ClosureType struct {
	ParamTypes []Type
	Seq        int // 0-based; rendered as #Seq+1
}

func (n *ClosureType) Kind() NodeKind { return NodeKindClosureType }

func (n *ClosureType) String() string {
	return fmt.Sprintf("{lambda(%s)#%d}", paramsListText(n.ParamTypes, false), n.Seq+1)
}

// UnnamedType is `Ut[N]_`, an anonymous class/struct/union/enum.
type UnnamedType struct {
	Seq int // 0-based; rendered as #Seq+1
}

func (n *UnnamedType) Kind() NodeKind { return NodeKindUnnamedType }
func (n *UnnamedType) String() string { return fmt.Sprintf("{unnamed type#%d}", n.Seq+1) }

// StructuredBinding is `DC <name>+ E`, e.g. `[a, b, c]`.
type StructuredBinding struct {
	Names []Node
}

func (n *StructuredBinding) Kind() NodeKind { return NodeKindStructuredBinding }

func (n *StructuredBinding) String() string {
	parts := make([]string, len(n.Names))
	for i, nm := range n.Names {
		parts[i] = nm.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// LocalName is `Z <encoding> E <entity> [_<discriminator>]`: an entity
// declared inside a function.
type LocalName struct {
	EnclosingText string
	Entity        Node
}

func (n *LocalName) Kind() NodeKind { return NodeKindLocalName }
func (n *LocalName) String() string { return n.EnclosingText + "::" + n.Entity.String() }

// AbiTagged wraps a name with a trailing `[abi:tag]` suffix, the form
// GCC and Clang use to render the `B <source-name>` ABI-tag component.
type AbiTagged struct {
	Inner Node
	Tag   string
}

func (n *AbiTagged) Kind() NodeKind { return NodeKindAbiTagged }
func (n *AbiTagged) String() string { return n.Inner.String() + "[abi:" + n.Tag + "]" }

// TemplateInstantiation is `<name>I<args>E`.
type TemplateInstantiation struct {
	Name Node
	Args []Node
}

func (n *TemplateInstantiation) Kind() NodeKind { return NodeKindTemplateInstantiation }

func (n *TemplateInstantiation) String() string {
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}
	return n.Name.String() + "<" + strings.Join(parts, ",") + ">"
}

// --- types ---

// BuiltinType is a primitive type with a fixed spelling (void, int, ...).
type BuiltinType struct {
	Name string
}

func (n *BuiltinType) Kind() NodeKind                    { return NodeKindBuiltinType }
func (n *BuiltinType) String() string                    { return n.Name }
func (n *BuiltinType) declarator(inner string) string     { return combine(n.Name, inner) }

// NamedType wraps an arbitrary Node (a class/enum/union name, possibly a
// template instantiation) so it satisfies Type.
type NamedType struct {
	Name Node
}

func (n *NamedType) Kind() NodeKind                { return NodeKindNamedType }
func (n *NamedType) String() string                { return n.Name.String() }
func (n *NamedType) declarator(inner string) string { return combine(n.Name.String(), inner) }

// Qualifiers is a CV/restrict qualifier bundle.
type Qualifiers struct {
	Const    bool
	Volatile bool
	Restrict bool
}

func (q Qualifiers) Empty() bool { return !q.Const && !q.Volatile && !q.Restrict }

func (q Qualifiers) text() string {
	var parts []string
	if q.Restrict {
		parts = append(parts, "restrict")
	}
	if q.Volatile {
		parts = append(parts, "volatile")
	}
	if q.Const {
		parts = append(parts, "const")
	}
	return strings.Join(parts, " ")
}

// QualifiedType applies CV/restrict qualifiers to an inner type.
type QualifiedType struct {
	Inner Type
	Quals Qualifiers
}

func (n *QualifiedType) Kind() NodeKind { return NodeKindQualifiedType }

func (n *QualifiedType) coreText() string {
	base := declare(n.Inner)
	if n.Quals.Empty() {
		return base
	}
	return base + " " + n.Quals.text()
}

func (n *QualifiedType) String() string                { return n.coreText() }
func (n *QualifiedType) declarator(inner string) string { return combine(n.coreText(), inner) }

// VendorQualifiedType is `U <source-name> <template-args>? <type>`: a
// vendor (extended) qualifier re-emitted as a suffix on the type.
type VendorQualifiedType struct {
	Inner Type
	Name  string
}

func (n *VendorQualifiedType) Kind() NodeKind { return NodeKindVendorQualifiedType }

func (n *VendorQualifiedType) coreText() string {
	return declare(n.Inner) + " " + n.Name
}

func (n *VendorQualifiedType) String() string                { return n.coreText() }
func (n *VendorQualifiedType) declarator(inner string) string { return combine(n.coreText(), inner) }

// PointerType is `P<type>`.
type PointerType struct {
	Pointee Type
}

func (n *PointerType) Kind() NodeKind { return NodeKindPointerType }
func (n *PointerType) String() string { return declare(n) }
func (n *PointerType) declarator(inner string) string {
	return n.Pointee.declarator("*" + inner)
}

// ReferenceType is `R<type>`.
type ReferenceType struct {
	Pointee Type
}

func (n *ReferenceType) Kind() NodeKind { return NodeKindReferenceType }
func (n *ReferenceType) String() string { return declare(n) }
func (n *ReferenceType) declarator(inner string) string {
	return n.Pointee.declarator("&" + inner)
}

// RvalueReferenceType is `O<type>`.
type RvalueReferenceType struct {
	Pointee Type
}

func (n *RvalueReferenceType) Kind() NodeKind { return NodeKindRvalueReferenceType }
func (n *RvalueReferenceType) String() string { return declare(n) }
func (n *RvalueReferenceType) declarator(inner string) string {
	return n.Pointee.declarator("&&" + inner)
}

// ArrayType is the flattened result of one or more `A<number>_` links.
type ArrayType struct {
	Element Type
	Dims    []string // textual dimensions, outermost first; "" means unknown bound
}

func (n *ArrayType) Kind() NodeKind { return NodeKindArrayType }
func (n *ArrayType) String() string { return declare(n) }

func (n *ArrayType) declarator(inner string) string {
	var suffix strings.Builder
	for _, d := range n.Dims {
		suffix.WriteString("[")
		suffix.WriteString(d)
		suffix.WriteString("]")
	}
	if inner != "" && (inner[0] == '*' || inner[0] == '&') {
		return n.Element.declarator("(" + inner + ")" + suffix.String())
	}
	return n.Element.declarator(inner + suffix.String())
}

// FunctionType is `F [Y] <return-type> <param-type>* E`.
type FunctionType struct {
	Return     Type // nil for a bare parameter list with no known return
	Params     []Type
	IsVariadic bool
}

func (n *FunctionType) paramsText() string {
	if len(n.Params) == 1 {
		if b, ok := n.Params[0].(*BuiltinType); ok && b.Name == "void" {
			return ""
		}
	}
	parts := make([]string, len(n.Params))
	for i, p := range n.Params {
		parts[i] = declare(p)
	}
	s := strings.Join(parts, ",")
	if n.IsVariadic {
		if s != "" {
			s += ","
		}
		s += "..."
	}
	return s
}

func (n *FunctionType) Kind() NodeKind { return NodeKindFunctionType }
func (n *FunctionType) String() string { return declare(n) }

func (n *FunctionType) declarator(inner string) string {
	body := "(" + inner + ")"
	if inner == "" {
		body = ""
	}
	wrapped := body + "(" + n.paramsText() + ")"
	if n.Return == nil {
		return wrapped
	}
	return n.Return.declarator(wrapped)
}

// PointerToMemberType is `M <class type> <member type>`.
type PointerToMemberType struct {
	Class  Type
	Member Type
}

func (n *PointerToMemberType) Kind() NodeKind { return NodeKindPointerToMemberType }
func (n *PointerToMemberType) String() string { return declare(n) }

func (n *PointerToMemberType) declarator(inner string) string {
	return n.Member.declarator(declare(n.Class) + "::*" + inner)
}

// TemplateParamRef is a resolved `T_`/`T0_`/... reference: it renders as
// whatever type it was bound to.
type TemplateParamRef struct {
	Bound Type
}

func (n *TemplateParamRef) Kind() NodeKind                { return NodeKindTemplateParam }
func (n *TemplateParamRef) String() string                { return declare(n.Bound) }
func (n *TemplateParamRef) declarator(inner string) string { return n.Bound.declarator(inner) }

// SubstitutionRef is a resolved `S_`/`S0_`/... reference.
type SubstitutionRef struct {
	Bound Type
}

func (n *SubstitutionRef) Kind() NodeKind                { return NodeKindSubstitution }
func (n *SubstitutionRef) String() string                { return declare(n.Bound) }
func (n *SubstitutionRef) declarator(inner string) string { return n.Bound.declarator(inner) }

// --- literals ---

// IntegerLiteral renders a (possibly negative) integer template argument.
type IntegerLiteral struct {
	Text string // already includes a leading '-' if negative
}

func (n *IntegerLiteral) Kind() NodeKind { return NodeKindIntegerLiteral }
func (n *IntegerLiteral) String() string { return n.Text }

// TypedLiteral renders `(Type)value`, used for non-bool/int/float
// builtin-typed literal template arguments (chars, etc).
type TypedLiteral struct {
	TypeText string
	Value    string
}

func (n *TypedLiteral) Kind() NodeKind { return NodeKindIntegerLiteral }
func (n *TypedLiteral) String() string { return "(" + n.TypeText + ")" + n.Value }

// FloatLiteral renders `(float){hex}` etc.
type FloatLiteral struct {
	TypeText string
	HexText  string
}

func (n *FloatLiteral) Kind() NodeKind { return NodeKindFloatLiteral }
func (n *FloatLiteral) String() string { return "(" + n.TypeText + ")" + n.HexText }

// StringLiteral renders a placeholder string of the mangled length.
type StringLiteral struct {
	Text string
}

func (n *StringLiteral) Kind() NodeKind { return NodeKindStringLiteral }
func (n *StringLiteral) String() string { return n.Text }

// BoolLiteral renders `true`/`false`.
type BoolLiteral struct {
	Value bool
}

func (n *BoolLiteral) Kind() NodeKind { return NodeKindBoolLiteral }

func (n *BoolLiteral) String() string {
	if n.Value {
		return "true"
	}
	return "false"
}

// NullptrLiteral renders `nullptr`.
type NullptrLiteral struct{}

func (n *NullptrLiteral) Kind() NodeKind { return NodeKindNullptrLiteral }
func (n *NullptrLiteral) String() string { return "nullptr" }

// DecltypePlaceholder stands in for the unparsed body of `Dt`/`DT`/`X...E`
// general expressions, which this package does not fully parse.
type DecltypePlaceholder struct{}

func (n *DecltypePlaceholder) Kind() NodeKind                { return NodeKindDecltypePlaceholder }
func (n *DecltypePlaceholder) String() string                { return "decltype(...)" }
func (n *DecltypePlaceholder) declarator(inner string) string { return combine("decltype(...)", inner) }

// --- top-level symbols ---

// FunctionSymbol is a fully parsed function encoding.
type FunctionSymbol struct {
	Name       Node
	Return     Type // nil unless the name ends in a template-arg list
	Params     []Type
	IsVariadic bool
	Qualifiers string // deferred trailing CV/ref qualifiers, e.g. " const"
}

func (n *FunctionSymbol) Kind() NodeKind { return NodeKindFunctionSymbol }

func (n *FunctionSymbol) String() string {
	paramsText := paramsListText(n.Params, n.IsVariadic)
	head := n.Name.String() + "(" + paramsText + ")" + n.Qualifiers
	if n.Return == nil {
		return head
	}
	return n.Return.declarator(head)
}

func paramsListText(params []Type, variadic bool) string {
	if len(params) == 1 && !variadic {
		if b, ok := params[0].(*BuiltinType); ok && b.Name == "void" {
			return ""
		}
	}
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = declare(p)
	}
	s := strings.Join(parts, ",")
	if variadic {
		if s != "" {
			s += ","
		}
		s += "..."
	}
	return s
}

// DataSymbol is a fully parsed data (non-function) encoding.
type DataSymbol struct {
	Name Node
}

func (n *DataSymbol) Kind() NodeKind { return NodeKindDataSymbol }
func (n *DataSymbol) String() string { return n.Name.String() }

// SpecialEncoding covers the TV/TT/TI/TS-prefixed top-level forms.
type SpecialEncoding struct {
	Prefix string // e.g. "vtable for "
	Target Node
}

func (n *SpecialEncoding) Kind() NodeKind { return NodeKindSpecialEncoding }
func (n *SpecialEncoding) String() string { return n.Prefix + n.Target.String() }
