package demangle

// parseEncoding implements the Itanium `<encoding>` production: the special
// TV/TT/TI/TS-prefixed forms, a data name, or a function name together
// with its bare-function-type.
func (d *demangler) parseEncoding() (Node, error) {
	switch {
	case d.match("TV"):
		return d.parseSpecialEncoding("vtable for ")
	case d.match("TT"):
		return d.parseSpecialEncoding("VTT for ")
	case d.match("TI"):
		return d.parseSpecialEncoding("typeinfo for ")
	case d.match("TS"):
		return d.parseSpecialEncoding("typeinfo name for ")
	}

	name, err := d.parseName()
	if err != nil {
		return nil, err
	}

	if !d.canStartType() {
		return &DataSymbol{Name: name}, nil
	}

	var ret Type
	if nameNeedsReturnType(name) && !d.isTypecastOp {
		ret, err = d.parseType()
		if err != nil {
			return nil, err
		}
	}

	var params []Type
	variadic := false
	for d.canStartType() {
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

	qual := d.deferredQuals
	if qual != "" {
		qual = " " + qual
	}
	d.deferredQuals = ""
	d.isTypecastOp = false

	return &FunctionSymbol{Name: name, Return: ret, Params: params, IsVariadic: variadic, Qualifiers: qual}, nil
}

func (d *demangler) parseSpecialEncoding(prefix string) (Node, error) {
	t, err := d.parseType()
	if err != nil {
		return nil, err
	}
	return &SpecialEncoding{Prefix: prefix, Target: t}, nil
}

// nameNeedsReturnType reports whether the just-parsed function name
// requires a following return type: true exactly when the name (or its
// final nested-name component) is a template-id, and the function is
// not a constructor, destructor, or conversion operator, per the
// Itanium ABI rule that template functions alone encode a return type.
func nameNeedsReturnType(name Node) bool {
	last := name
	if qn, ok := name.(*QualifiedName); ok && len(qn.Components) > 0 {
		last = qn.Components[len(qn.Components)-1]
	}
	switch last.(type) {
	case *CtorDtor, *ConversionOperator:
		return false
	case *TemplateInstantiation:
		return true
	default:
		return false
	}
}
