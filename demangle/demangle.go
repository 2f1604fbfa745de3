package demangle

import "strings"

// Demangle converts an Itanium C++ ABI mangled name to its human-readable
// declaration. If decorated does not carry the "_Z" prefix, it is
// returned unchanged alongside ErrNotMangled so callers can distinguish
// "not C++" from "malformed C++".
func Demangle(decorated string) (string, error) {
	if len(decorated) == 0 {
		return "", ErrEmptyInput
	}
	if !strings.HasPrefix(decorated, "_Z") {
		return decorated, ErrNotMangled
	}

	d := newDemangler(decorated)
	d.pos = 2 // consumed "_Z"

	node, err := d.parseEncoding()
	if err != nil {
		return decorated, err
	}
	if !d.onSentinel() {
		return decorated, d.errorf("trailing data after encoding")
	}

	return node.String() + d.cloneSuffixText(), nil
}

// cloneSuffixText renders a clone ('.part.0') or symbol-version ('@@GLIBC_2.2')
// suffix verbatim, since it carries no further mangling grammar.
func (d *demangler) cloneSuffixText() string {
	if d.eof() {
		return ""
	}
	return d.input[d.pos:]
}

// DemangleNode parses a mangled name and returns its AST instead of the
// rendered text, for callers that want to inspect the parsed structure.
func DemangleNode(decorated string) (Node, error) {
	if len(decorated) == 0 {
		return nil, ErrEmptyInput
	}
	if !strings.HasPrefix(decorated, "_Z") {
		return nil, ErrNotMangled
	}
	d := newDemangler(decorated)
	d.pos = 2
	return d.parseEncoding()
}

// IsMangled reports whether name looks like an Itanium-mangled symbol.
func IsMangled(name string) bool {
	return strings.HasPrefix(name, "_Z")
}

// Filter demangles name on a best-effort basis: unparseable or
// non-C++ input is returned unchanged rather than as an error, mirroring
// the behavior of the standard c++filt tool.
func Filter(name string) string {
	out, err := Demangle(name)
	if err != nil {
		return name
	}
	return out
}
