package demangle

import "fmt"

// parseExprPrimary implements the Itanium `<expr-primary>` production: a
// literal template argument or default-argument value. Boolean, integer,
// floating-point and nullptr literals get their own rendering; any other
// literal type, string literals included, renders as "(type)" followed by
// the raw mangled value text. Full general-expression mangling is
// intentionally unsupported.
func (d *demangler) parseExprPrimary() (Node, error) {
	if err := d.expect("L"); err != nil {
		return nil, err
	}

	if d.match("Dn") {
		if err := d.expect("E"); err != nil {
			return nil, err
		}
		return &NullptrLiteral{}, nil
	}

	if d.peek("_Z") {
		return nil, wrapAt(d.pos, fmt.Errorf("%w: complex expr-primary constant", ErrUnsupported))
	}

	typ, err := d.parseType()
	if err != nil {
		return nil, err
	}

	builtin, _ := typ.(*BuiltinType)

	switch {
	case builtin != nil && builtin.Name == "bool":
		var val bool
		switch {
		case d.match("0"):
			val = false
		case d.match("1"):
			val = true
		default:
			return nil, d.errorf("malformed bool literal")
		}
		if err := d.expect("E"); err != nil {
			return nil, err
		}
		return &BoolLiteral{Value: val}, nil

	case builtin != nil && (builtin.Name == "float" || builtin.Name == "double" || builtin.Name == "long double" || builtin.Name == "__float128"):
		start := d.pos
		for !d.eof() && d.peekByte() != 'E' {
			d.pos++
		}
		hex := d.input[start:d.pos]
		if err := d.expect("E"); err != nil {
			return nil, err
		}
		return &FloatLiteral{TypeText: builtin.Name, HexText: hex}, nil

	case builtin != nil:
		sign := ""
		if d.match("n") {
			sign = "-"
		}
		digits := d.getNumber()
		if digits == "" {
			return nil, d.errorf("malformed integer literal")
		}
		if err := d.expect("E"); err != nil {
			return nil, err
		}
		if builtin.Name == "int" {
			return &IntegerLiteral{Text: sign + digits}, nil
		}
		return &TypedLiteral{TypeText: builtin.Name, Value: sign + digits}, nil

	default:
		start := d.pos
		for !d.eof() && d.peekByte() != 'E' {
			d.pos++
		}
		raw := d.input[start:d.pos]
		if err := d.expect("E"); err != nil {
			return nil, err
		}
		return &TypedLiteral{TypeText: declare(typ), Value: raw}, nil
	}
}
