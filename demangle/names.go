package demangle

import "strconv"

// parseName implements the Itanium `<name>` production: the dispatcher
// for every way an entity can be named — nested, local, or a bare
// (possibly template) unscoped name.
func (d *demangler) parseName() (Node, error) {
	switch d.peekByte() {
	case 'N':
		return d.parseNestedName()
	case 'Z':
		return d.parseLocalName()
	default:
		node, skipSub, err := d.parseUnscopedName()
		if err != nil {
			return nil, err
		}
		if d.peekByte() == 'I' {
			if !skipSub {
				d.addTypeSub(&NamedType{Name: node})
			}
			args, err := d.parseTemplateArgs()
			if err != nil {
				return nil, err
			}
			inst := &TemplateInstantiation{Name: node, Args: args}
			d.addTypeSub(&NamedType{Name: inst})
			return inst, nil
		}
		return node, nil
	}
}

// parseUnscopedName implements `<unscoped-name>`. skipSub is true for a
// bare substitution/standard-abbrev reference that must not itself be
// pushed as a new substitution — the Itanium `<substitution>` grammar
// excludes those from re-registering themselves — registration of the
// non-skipped result, and of any trailing <template-args> instantiation,
// is the caller's job (parseName) so that a template-prefix substitution
// is recorded *before* its <template-args> are parsed.
func (d *demangler) parseUnscopedName() (Node, bool, error) {
	if d.match("St") {
		inner, err := d.parseUnqualifiedName()
		if err != nil {
			return nil, false, err
		}
		return &QualifiedName{Components: []Node{&Identifier{Name: "std"}, inner}}, false, nil
	}
	if d.peekByte() == 'S' && d.isStdAbbrevCode() {
		return d.parseStdAbbrevAsPrefix()
	}
	if d.peekByte() == 'S' {
		return d.parseSubstitutionAsPrefix()
	}
	node, err := d.parseUnqualifiedName()
	return node, false, err
}

// isStdAbbrevCode reports whether the two bytes under the cursor name one
// of the fixed `St`/`Sa`/`Sb`/`Ss`/`Si`/`So`/`Sd` standard-abbreviation
// substitutions from the Itanium `<substitution>` grammar, as opposed to
// a numbered `S[seq]_` back-reference.
func (d *demangler) isStdAbbrevCode() bool {
	if d.pos+1 >= len(d.input) {
		return false
	}
	_, ok := standardAbbrevs[d.input[d.pos:d.pos+2]]
	return ok
}

// parseStdAbbrevAsPrefix consumes a bare standard-abbreviation code as one
// link of a <prefix> (e.g. the "St" in "NSt6vectorI...E" = "std::vector<...>").
// Like a numbered substitution reference, the bare abbreviation itself is
// not pushed onto the substitution table — only the combined prefix text
// built on top of it is, mirroring GNU libiberty's cp-demangle.c
// d_substitution.
func (d *demangler) parseStdAbbrevAsPrefix() (Node, bool, error) {
	code := d.input[d.pos : d.pos+2]
	expansion := standardAbbrevs[code]
	d.pos += 2
	return &Identifier{Name: expansion}, true, nil
}

// parseNestedName implements `<nested-name>`: an optional CV/ref
// qualification (used when the named entity is itself a non-static
// member function) followed by a leading prefix component and a chain
// of further components terminated by E.
//
// Substitution registration follows the same two-tier rule as the
// reference implementation's _nested_name: the leading component is
// registered immediately unless it is itself a bare substitution or
// standard-abbreviation reference (those only contribute a substitution
// once something is built on top of them); a bare template-parameter
// reference is registered once, by parseTemplateParamType itself.
// Every later component or <template-args> extension is registered
// too, *except* the one that lands on the closing E while this is the
// outermost nested-name (the entity's own fully-qualified name isn't a
// useful back-reference target at that point, since nothing in the
// rest of its own encoding would gain from substituting for it).
func (d *demangler) parseNestedName() (Node, error) {
	if err := d.expect("N"); err != nil {
		return nil, err
	}
	d.nest++
	defer func() { d.nest-- }()

	var quals Qualifiers
qualsLoop:
	for {
		switch d.peekByte() {
		case 'r':
			quals.Restrict = true
			d.pos++
		case 'V':
			quals.Volatile = true
			d.pos++
		case 'K':
			quals.Const = true
			d.pos++
		default:
			break qualsLoop
		}
	}
	ref := ""
	if d.match("R") {
		ref = "&"
	} else if d.match("O") {
		ref = "&&"
	}
	if !quals.Empty() || ref != "" {
		text := quals.text()
		if ref != "" {
			if text != "" {
				text += " "
			}
			text += ref
		}
		d.deferredQuals = text
	}

	var components []Node
	switch {
	case d.peek("Dt") || d.peek("DT"):
		typ, err := d.parseDecltype()
		if err != nil {
			return nil, err
		}
		components = []Node{typ}
		d.addTypeSub(typ)
	case d.peekByte() == 'S' && d.isStdAbbrevCode():
		node, _, err := d.parseStdAbbrevAsPrefix()
		if err != nil {
			return nil, err
		}
		components = []Node{node}
	case d.peekByte() == 'S':
		node, _, err := d.parseSubstitutionAsPrefix()
		if err != nil {
			return nil, err
		}
		components = []Node{node}
	case d.peekByte() == 'T':
		node, _, err := d.parseTemplateParamAsPrefix()
		if err != nil {
			return nil, err
		}
		components = []Node{node}
	default:
		node, err := d.parseUnqualifiedName()
		if err != nil {
			return nil, err
		}
		components = []Node{node}
		d.addTypeSub(&NamedType{Name: node})
	}

	prevLast := d.lastComponentText
	d.lastComponentText = components[0].String()

	if d.peek("E") {
		return nil, d.errorf("nested-name needs at least one component beyond its prefix")
	}

	for {
		if d.eof() {
			return nil, d.errorf("unterminated nested-name")
		}
		if d.peekByte() == 'I' {
			args, aerr := d.parseTemplateArgs()
			if aerr != nil {
				return nil, aerr
			}
			components[len(components)-1] = &TemplateInstantiation{Name: components[len(components)-1], Args: args}
		} else {
			next, err := d.parseUnqualifiedName()
			if err != nil {
				return nil, err
			}
			components = append(components, next)
		}
		d.lastComponentText = components[len(components)-1].String()

		sentinel := d.match("E")
		if !sentinel || d.nest > 1 {
			d.addTypeSub(&NamedType{Name: joinPrefix(components)})
		}
		if sentinel {
			break
		}
	}
	d.lastComponentText = prevLast

	if len(components) == 1 {
		return components[0], nil
	}
	return &QualifiedName{Components: components}, nil
}

// joinPrefix renders the substitution candidate for the <prefix> built so
// far: the bare last component when it is the only one, its full
// ::-qualified chain otherwise.
func joinPrefix(components []Node) Node {
	if len(components) == 1 {
		return components[0]
	}
	return &QualifiedName{Components: append([]Node(nil), components...)}
}

func (d *demangler) parseSubstitutionAsPrefix() (Node, bool, error) {
	t, err := d.parseSubstitutionRef()
	if err != nil {
		return nil, false, err
	}
	if sub, ok := t.(*SubstitutionRef); ok {
		return sub.Bound, true, nil
	}
	// parseSubstitutionRef already consumed trailing template-args itself.
	return t, false, nil
}

func (d *demangler) parseTemplateParamAsPrefix() (Node, bool, error) {
	t, err := d.parseTemplateParamType()
	if err != nil {
		return nil, false, err
	}
	if tp, ok := t.(*TemplateParamRef); ok {
		return tp.Bound, true, nil
	}
	return t, false, nil
}

// parseUnqualifiedName implements `<unqualified-name>` plus its
// trailing `B <source-name>` ABI-tag suffix.
func (d *demangler) parseUnqualifiedName() (Node, error) {
	node, err := d.parseUnqualifiedNameCore()
	if err != nil {
		return nil, err
	}
	for d.peekByte() == 'B' {
		d.pos++
		tag, err := d.parseSourceName()
		if err != nil {
			return nil, err
		}
		node = &AbiTagged{Inner: node, Tag: tag}
	}
	return node, nil
}

func (d *demangler) parseUnqualifiedNameCore() (Node, error) {
	switch {
	case d.peek("DC"):
		return d.parseStructuredBinding()
	case d.peek("Ut"):
		return d.parseUnnamedType()
	case d.peek("Ul"):
		return d.parseClosureType()
	case d.peek("C1"), d.peek("C2"), d.peek("C3"):
		d.pos += 2
		return &CtorDtor{ClassName: d.lastComponentText}, nil
	case d.peek("D0"), d.peek("D1"), d.peek("D2"):
		d.pos += 2
		return &CtorDtor{ClassName: d.lastComponentText, IsDtor: true}, nil
	case d.peek("L"):
		return d.parseLocalSourceName()
	}
	if b := d.peekByte(); b >= '0' && b <= '9' {
		name, err := d.parseSourceName()
		if err != nil {
			return nil, err
		}
		return &Identifier{Name: name}, nil
	}
	return d.parseOperatorName()
}

// parseLocalSourceName implements `L <source-name> <discriminator>?`: a
// name retaining internal (static) linkage. The discriminator distinguishes
// multiple same-named entities in the same scope but carries no text of
// its own in the rendered output.
func (d *demangler) parseLocalSourceName() (Node, error) {
	d.pos++ // consume "L"
	name, err := d.parseSourceName()
	if err != nil {
		return nil, err
	}
	d.parseDiscriminator()
	return &Identifier{Name: name}, nil
}

// parseDiscriminator implements `<discriminator> ::= _ <digit> | __ <digit>+ _`,
// consuming but not rendering it: it disambiguates same-named locals,
// not the declaration's spelling.
func (d *demangler) parseDiscriminator() {
	if !d.match("_") {
		return
	}
	if d.match("_") {
		for !d.eof() && d.peekByte() >= '0' && d.peekByte() <= '9' {
			d.pos++
		}
		d.match("_")
		return
	}
	if !d.eof() && d.peekByte() >= '0' && d.peekByte() <= '9' {
		d.pos++
	}
}

// parseOperatorName implements `<operator-name>`.
func (d *demangler) parseOperatorName() (Node, error) {
	if d.match("cv") {
		d.isTypecastOp = true
		target, err := d.parseType()
		if err != nil {
			return nil, err
		}
		return &ConversionOperator{Target: target}, nil
	}
	if d.match("li") {
		name, err := d.parseSourceName()
		if err != nil {
			return nil, err
		}
		return &Operator{Symbol: `"" ` + name, Alphabetic: true}, nil
	}
	if d.pos+1 < len(d.input) {
		code := d.input[d.pos : d.pos+2]
		if sp, ok := operatorCodes[code]; ok {
			d.pos += 2
			return &Operator{Symbol: sp.symbol, Alphabetic: sp.alphabetic}, nil
		}
	}
	return nil, d.errorf("unrecognized operator-name code")
}

// parseStructuredBinding implements `DC <source-name>+ E`.
func (d *demangler) parseStructuredBinding() (Node, error) {
	d.pos += 2
	var names []Node
	for !d.match("E") {
		if d.eof() {
			return nil, d.errorf("unterminated structured binding")
		}
		name, err := d.parseSourceName()
		if err != nil {
			return nil, err
		}
		names = append(names, &Identifier{Name: name})
	}
	return &StructuredBinding{Names: names}, nil
}

// parseUnnamedType implements `Ut [<number>] _`.
func (d *demangler) parseUnnamedType() (Node, error) {
	d.pos += 2
	numText := d.getNumber()
	if err := d.expect("_"); err != nil {
		return nil, err
	}
	seq := 0
	if numText != "" {
		n, err := strconv.Atoi(numText)
		if err != nil {
			return nil, d.errorf("malformed unnamed-type index")
		}
		seq = n + 1
	}
	return &UnnamedType{Seq: seq}, nil
}

// parseClosureType implements `Ul <bare-function-type> E [<number>] _`.
func (d *demangler) parseClosureType() (Node, error) {
	d.pos += 2
	var params []Type
	for !d.match("E") {
		if d.eof() {
			return nil, d.errorf("unterminated closure type")
		}
		p, err := d.parseType()
		if err != nil {
			return nil, err
		}
		params = append(params, p)
	}
	numText := d.getNumber()
	if err := d.expect("_"); err != nil {
		return nil, err
	}
	seq := 0
	if numText != "" {
		n, err := strconv.Atoi(numText)
		if err != nil {
			return nil, d.errorf("malformed closure index")
		}
		seq = n + 1
	}
	return &ClosureType{ParamTypes: params, Seq: seq}, nil
}

// parseLocalName implements `<local-name> ::= Z <encoding> E <entity> [s]
// [_ <discriminator>]`: an entity declared inside a function body.
func (d *demangler) parseLocalName() (Node, error) {
	if err := d.expect("Z"); err != nil {
		return nil, err
	}
	enclosing, err := d.parseEncoding()
	if err != nil {
		return nil, err
	}
	if err := d.expect("E"); err != nil {
		return nil, err
	}

	var entity Node
	if d.match("s") {
		entity = &Identifier{Name: "{string-literal}"}
	} else {
		entity, err = d.parseName()
		if err != nil {
			return nil, err
		}
	}
	d.parseDiscriminator()
	return &LocalName{EnclosingText: enclosing.String(), Entity: entity}, nil
}
