package demangle

import "strconv"

// parseType implements the Itanium `<type>` production. Every
// successfully parsed type is registered as a substitution except raw
// builtin types, literals, decltype placeholders, and the direct (no
// further template-args) expansion of an existing S_/S0_/... reference.
// A bare T_/T0_/... template-parameter reference is registered.
func (d *demangler) parseType() (Type, error) {
	if d.eof() {
		return nil, d.errorf("unexpected end of input parsing type")
	}

	if twoCharBuiltinPrefix(d.peekByte()) && d.pos+1 < len(d.input) {
		code2 := d.input[d.pos : d.pos+2]
		if name, ok := builtinTypes[code2]; ok {
			d.pos += 2
			return &BuiltinType{Name: name}, nil
		}
		switch code2 {
		case "Dt", "DT":
			d.pos += 2
			return d.parseDecltype()
		case "Dp":
			d.pos += 2
			return d.parseType() // pack expansion: render as the pattern type
		}
	}

	if name, ok := builtinTypes[string(d.peekByte())]; ok {
		d.pos++
		return &BuiltinType{Name: name}, nil
	}

	switch d.peekByte() {
	case 'r', 'V', 'K':
		return d.parseQualifiedType()
	case 'U':
		return d.parseVendorQualifiedType()
	case 'F':
		return d.parseFunctionType()
	case 'A':
		return d.parseArrayType()
	case 'M':
		return d.parsePointerToMemberType()
	case 'P':
		d.pos++
		inner, err := d.parseType()
		if err != nil {
			return nil, err
		}
		t := &PointerType{Pointee: inner}
		d.addTypeSub(t)
		return t, nil
	case 'R':
		d.pos++
		inner, err := d.parseType()
		if err != nil {
			return nil, err
		}
		t := &ReferenceType{Pointee: inner}
		d.addTypeSub(t)
		return t, nil
	case 'O':
		d.pos++
		inner, err := d.parseType()
		if err != nil {
			return nil, err
		}
		t := &RvalueReferenceType{Pointee: inner}
		d.addTypeSub(t)
		return t, nil
	case 'S':
		return d.parseSOrSubstitution()
	case 'T':
		return d.parseTemplateParamType()
	case 'N':
		node, err := d.parseNestedName()
		if err != nil {
			return nil, err
		}
		t := &NamedType{Name: node}
		d.addTypeSub(t)
		return t, nil
	case 'Z':
		node, err := d.parseLocalName()
		if err != nil {
			return nil, err
		}
		t := &NamedType{Name: node}
		d.addTypeSub(t)
		return t, nil
	case 'L':
		lit, err := d.parseExprPrimary()
		if err != nil {
			return nil, err
		}
		return literalType{lit}, nil
	case 'u':
		d.pos++
		name, err := d.parseSourceName()
		if err != nil {
			return nil, err
		}
		t := &NamedType{Name: &Identifier{Name: name}}
		d.addTypeSub(t)
		return t, nil
	}

	if b := d.peekByte(); b >= '0' && b <= '9' {
		return d.parseClassEnumType()
	}

	return nil, d.errorf("unrecognized type code")
}

// parseDecltype consumes `Dt <expression> E` / `DT <expression> E` and
// renders a `decltype(...)` placeholder, without attempting full
// <expression> parsing.
func (d *demangler) parseDecltype() (Type, error) {
	depth := 0
	for !d.eof() {
		if d.match("E") {
			if depth == 0 {
				return &DecltypePlaceholder{}, nil
			}
			depth--
			continue
		}
		if d.peek("I") || d.peek("X") {
			depth++
		}
		d.pos++
	}
	return nil, d.errorf("unterminated decltype expression")
}

func (d *demangler) parseQualifiedType() (Type, error) {
	var q Qualifiers
	for {
		switch d.peekByte() {
		case 'r':
			q.Restrict = true
			d.pos++
		case 'V':
			q.Volatile = true
			d.pos++
		case 'K':
			q.Const = true
			d.pos++
		default:
			inner, err := d.parseType()
			if err != nil {
				return nil, err
			}
			t := &QualifiedType{Inner: inner, Quals: q}
			d.addTypeSub(t)
			return t, nil
		}
	}
}

func (d *demangler) parseVendorQualifiedType() (Type, error) {
	var names []string
	for d.peekByte() == 'U' {
		d.pos++
		name, err := d.parseSourceName()
		if err != nil {
			return nil, err
		}
		if d.peekByte() == 'I' {
			args, err := d.parseTemplateArgs()
			if err != nil {
				return nil, err
			}
			name = (&TemplateInstantiation{Name: &Identifier{Name: name}, Args: args}).String()
		}
		names = append(names, name)
	}
	inner, err := d.parseType()
	if err != nil {
		return nil, err
	}
	var result Type = inner
	for i := len(names) - 1; i >= 0; i-- {
		result = &VendorQualifiedType{Inner: result, Name: names[i]}
		d.addTypeSub(result)
	}
	return result, nil
}

func (d *demangler) parseFunctionType() (Type, error) {
	if err := d.expect("F"); err != nil {
		return nil, err
	}
	d.match("Y") // extern "C" marker, ignored

	ret, err := d.parseType()
	if err != nil {
		return nil, err
	}

	if d.funcNest >= maxFuncNest {
		return nil, d.errorf("function nesting too deep")
	}
	d.funcNest++
	defer func() { d.funcNest-- }()

	var params []Type
	variadic := false
	for {
		if d.match("E") {
			break
		}
		if d.eof() {
			return nil, d.errorf("unterminated function type")
		}
		if d.peekByte() == 'z' {
			d.pos++
			variadic = true
			continue
		}
		p, err := d.parseType()
		if err != nil {
			return nil, err
		}
		params = append(params, p)
	}

	t := &FunctionType{Return: ret, Params: params, IsVariadic: variadic}
	d.addTypeSub(t)
	return t, nil
}

func (d *demangler) parseArrayType() (Type, error) {
	var dims []string
	for d.peekByte() == 'A' {
		d.pos++
		dim := d.getNumber()
		if dim == "" {
			// dependent (expression) bound; consume up to the '_' raw.
			start := d.pos
			for !d.eof() && d.peekByte() != '_' {
				d.pos++
			}
			dim = d.input[start:d.pos]
		}
		if err := d.expect("_"); err != nil {
			return nil, err
		}
		dims = append(dims, dim)
	}
	elem, err := d.parseType()
	if err != nil {
		return nil, err
	}
	t := &ArrayType{Element: elem, Dims: dims}
	d.addTypeSub(t)
	return t, nil
}

func (d *demangler) parsePointerToMemberType() (Type, error) {
	if err := d.expect("M"); err != nil {
		return nil, err
	}
	class, err := d.parseType()
	if err != nil {
		return nil, err
	}
	member, err := d.parseType()
	if err != nil {
		return nil, err
	}
	t := &PointerToMemberType{Class: class, Member: member}
	d.addTypeSub(t)
	return t, nil
}

func (d *demangler) parseSOrSubstitution() (Type, error) {
	if d.pos+1 < len(d.input) {
		code2 := d.input[d.pos : d.pos+2]
		if expansion, ok := standardAbbrevs[code2]; ok {
			d.pos += 2
			var node Node = &Identifier{Name: expansion}
			if d.peekByte() == 'I' {
				args, err := d.parseTemplateArgs()
				if err != nil {
					return nil, err
				}
				node = &TemplateInstantiation{Name: node, Args: args}
			}
			t := &NamedType{Name: node}
			d.addTypeSub(t)
			return t, nil
		}
	}
	return d.parseSubstitutionRef()
}

// parseSubstitutionRef implements the bare `S [<seq-id>] _` production
// from the Itanium `<substitution>` grammar, optionally followed by
// <template-args>.
func (d *demangler) parseSubstitutionRef() (Type, error) {
	if err := d.expect("S"); err != nil {
		return nil, err
	}
	seq := d.getSeqID()
	if err := d.expect("_"); err != nil {
		return nil, d.errorf("malformed substitution")
	}
	index := decodeBase36Index(seq)
	bound, err := d.subs.resolve(index)
	if err != nil {
		return nil, err
	}
	var result Type = &SubstitutionRef{Bound: bound}
	if d.peekByte() == 'I' {
		args, err := d.parseTemplateArgs()
		if err != nil {
			return nil, err
		}
		inst := &TemplateInstantiation{Name: &Identifier{Name: result.String()}, Args: args}
		result = &NamedType{Name: inst}
		d.addTypeSub(result)
	}
	return result, nil
}

func (d *demangler) parseTemplateParamType() (Type, error) {
	if err := d.expect("T"); err != nil {
		return nil, err
	}
	seq := d.getSeqID()
	if err := d.expect("_"); err != nil {
		return nil, d.errorf("malformed template-parameter reference")
	}
	index := decodeBase36Index(seq)
	bound, err := d.tparams.resolve(index)
	if err != nil {
		return nil, err
	}
	var result Type = &TemplateParamRef{Bound: bound}
	d.addTypeSub(result)
	if d.peekByte() == 'I' {
		args, err := d.parseTemplateArgs()
		if err != nil {
			return nil, err
		}
		inst := &TemplateInstantiation{Name: &Identifier{Name: result.String()}, Args: args}
		result = &NamedType{Name: inst}
		d.addTypeSub(result)
	}
	return result, nil
}

// parseClassEnumType implements the plain `<source-name> <template-args>?`
// type, used for class/struct/union/enum references by name.
func (d *demangler) parseClassEnumType() (Type, error) {
	name, err := d.parseSourceName()
	if err != nil {
		return nil, err
	}
	var node Node = &Identifier{Name: name}
	if d.peekByte() == 'I' {
		args, err := d.parseTemplateArgs()
		if err != nil {
			return nil, err
		}
		node = &TemplateInstantiation{Name: node, Args: args}
	}
	t := &NamedType{Name: node}
	d.addTypeSub(t)
	return t, nil
}

// canStartType reports whether the byte under the cursor can begin a
// <type> production (or the `z` ellipsis-parameter marker), without
// consuming anything. Used to decide where a parameter list or a
// function/data encoding ends.
func (d *demangler) canStartType() bool {
	if d.onSentinel() || d.peekByte() == 'E' {
		return false
	}
	b := d.peekByte()
	if twoCharBuiltinPrefix(b) && d.pos+1 < len(d.input) {
		code2 := d.input[d.pos : d.pos+2]
		if _, ok := builtinTypes[code2]; ok {
			return true
		}
		switch code2 {
		case "Dt", "DT", "Dp":
			return true
		}
		return false
	}
	if _, ok := builtinTypes[string(b)]; ok {
		return true
	}
	switch b {
	case 'r', 'V', 'K', 'U', 'F', 'A', 'M', 'P', 'R', 'O', 'S', 'T', 'N', 'Z', 'L', 'u', 'z':
		return true
	}
	return b >= '0' && b <= '9'
}

// parseSourceName implements `<number> <identifier>`: a decimal length
// prefix followed by exactly that many bytes of identifier text.
func (d *demangler) parseSourceName() (string, error) {
	lenText := d.getNumber()
	if lenText == "" {
		return "", d.errorf("expected source-name length")
	}
	n, err := strconv.Atoi(lenText)
	if err != nil || n < 0 {
		return "", d.errorf("malformed source-name length")
	}
	if d.pos+n > len(d.input) {
		return "", d.errorf("source-name length exceeds remaining input")
	}
	name := d.input[d.pos : d.pos+n]
	d.pos += n
	return name, nil
}
