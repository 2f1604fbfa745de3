package demangle

// parseTemplateArgs implements `<template-args> ::= I <template-arg>+ E`.
// Each argument is pushed onto the template-parameter table as it is
// parsed, and the whole scope is shadowed (not restored) on exit: a
// later T_/T0_/... inside a sibling template sees only the parameters
// bound by its own <template-args>.
func (d *demangler) parseTemplateArgs() ([]Node, error) {
	if err := d.expect("I"); err != nil {
		return nil, err
	}

	mark := d.tparams.scope()
	var args []Node
	for {
		if d.match("E") {
			break
		}
		if d.eof() {
			return nil, d.errorf("unterminated template-args")
		}
		arg, err := d.parseTemplateArg()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	d.tparams.closeScope(mark)

	if len(args) == 0 {
		return nil, d.errorf("empty template-args")
	}
	return args, nil
}

// parseTemplateArg implements `<template-arg>`: a type, an <expr-primary>
// literal, an `X <expression> E` (rendered as a decltype(...) placeholder
// rather than parsed), or an argument pack (a one-element pack renders as
// that element, a longer one as a bracketed list, and each element is
// pushed onto the template-parameter table on its own).
func (d *demangler) parseTemplateArg() (Node, error) {
	if d.peekByte() == 'J' {
		d.pos++
		var elems []Node
		for !d.match("E") {
			if d.eof() {
				return nil, d.errorf("unterminated argument pack")
			}
			e, err := d.parseTemplateArg()
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
		}
		if len(elems) == 1 {
			return elems[0], nil
		}
		return &StructuredBinding{Names: elems}, nil
	}

	if d.peekByte() == 'L' {
		lit, err := d.parseExprPrimary()
		if err != nil {
			return nil, err
		}
		d.tparams.add(literalType{lit})
		return lit, nil
	}

	if d.peekByte() == 'X' {
		d.pos++
		expr, err := d.parseDecltype()
		if err != nil {
			return nil, err
		}
		d.tparams.add(expr)
		return expr, nil
	}

	typ, err := d.parseType()
	if err != nil {
		return nil, err
	}
	d.tparams.add(typ)
	return wrapNode(typ), nil
}

// wrapNode adapts a Type back to a plain Node for storage in a
// <template-args> argument list (Type already embeds Node).
func wrapNode(t Type) Node { return t }
