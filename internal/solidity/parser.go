package solidity

import (
	"fmt"
	"strings"
)

// Diagnostic is a non-fatal parse issue. Parsing always returns either a
// non-nil *SourceUnit or a fatal error; Diagnostics additionally records
// recoverable oddities encountered along the way (currently unused by the
// recursive-descent parser below, reserved for future recovery support).
type Diagnostic struct {
	Loc     Loc
	Message string
}

// Parser parses one file's worth of Solidity source into a *SourceUnit.
// Mirrors the shape of a hand-rolled recursive-descent parser: a token
// cursor plus one-token lookahead, no backtracking beyond what
// tryParseVarDecl needs to tell a variable declaration from an
// expression statement.
type Parser struct {
	fileID int
	src    string
	toks   []token
	pos    int
	diags  []Diagnostic
}

// Parse lexes and parses src as compilation unit fileID, returning the
// resulting tree, or a fatal error if the source could not be parsed at
// all (per spec: a parse failure skips the whole file, it is not partial).
func Parse(fileID int, src string) (*SourceUnit, []Diagnostic, error) {
	l := newLexer(src)
	toks, err := l.Tokenize()
	if err != nil {
		return nil, nil, err
	}
	p := &Parser{fileID: fileID, src: src, toks: toks}
	su, err := p.parseSourceUnit()
	if err != nil {
		return nil, nil, err
	}
	return su, p.diags, nil
}

func (p *Parser) cur() token  { return p.toks[p.pos] }
func (p *Parser) atEOF() bool { return p.cur().kind == tokEOF }

func (p *Parser) advance() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) isPunct(s string) bool {
	t := p.cur()
	return t.kind == tokPunct && t.text == s
}

func (p *Parser) isIdent(s string) bool {
	t := p.cur()
	return t.kind == tokIdent && t.text == s
}

func (p *Parser) expectPunct(s string) (token, error) {
	if !p.isPunct(s) {
		return token{}, p.errorf("expected %q, got %q", s, p.cur().text)
	}
	return p.advance(), nil
}

func (p *Parser) expectIdent(s string) (token, error) {
	if !p.isIdent(s) {
		return token{}, p.errorf("expected keyword %q, got %q", s, p.cur().text)
	}
	return p.advance(), nil
}

func (p *Parser) errorf(format string, args ...any) error {
	return fmt.Errorf("solidity: parse error at byte %d: %s", p.cur().start, fmt.Sprintf(format, args...))
}

func (p *Parser) loc(start int) Loc {
	return Loc{File: p.fileID, Start: start, End: p.toks[p.pos].start}
}

// ---- source unit ----

func (p *Parser) parseSourceUnit() (*SourceUnit, error) {
	su := &SourceUnit{FileID: p.fileID}
	for !p.atEOF() {
		part, err := p.parseSourceUnitPart()
		if err != nil {
			return nil, err
		}
		if part != nil {
			su.Parts = append(su.Parts, part)
		}
	}
	return su, nil
}

func (p *Parser) parseSourceUnitPart() (SourceUnitPart, error) {
	start := p.cur().start
	switch {
	case p.isPunct(";"):
		p.advance()
		return &StraySemicolon{NodeLoc: p.loc(start)}, nil
	case p.isIdent("pragma"):
		return p.parsePragma(start)
	case p.isIdent("import"):
		return p.parseImport(start)
	case p.isIdent("using"):
		return p.parseUsing(start)
	case p.isIdent("enum"):
		return p.parseEnum(start)
	case p.isIdent("event"):
		return p.parseEvent(start)
	case p.isIdent("error"):
		return p.parseError(start)
	case p.isIdent("struct"):
		return p.parseStruct(start)
	case p.isIdent("type"):
		return p.parseTypeDef(start)
	case p.isIdent("contract") || p.isIdent("interface") || p.isIdent("library") || p.isIdent("abstract"):
		return p.parseContract(start)
	case p.isIdent("function") || p.isIdent("modifier"):
		return p.parseFunction(start)
	default:
		return p.parseVariableDefinitionTop(start)
	}
}

func (p *Parser) parsePragma(start int) (SourceUnitPart, error) {
	p.advance() // pragma
	name := ""
	if p.cur().kind == tokIdent {
		name = p.advance().text
	}
	valStart := p.cur().start
	valEnd := valStart
	for !p.isPunct(";") && !p.atEOF() {
		valEnd = p.advance().end
	}
	value := p.src[valStart:valEnd]
	if _, err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	return &PragmaDirective{NodeLoc: p.loc(start), Name: name, Value: value}, nil
}

func (p *Parser) parseImport(start int) (SourceUnitPart, error) {
	p.advance() // import
	path := ""
	alias := ""
	if p.cur().kind == tokString {
		path = p.advance().text
		if p.isIdent("as") {
			p.advance()
			alias = p.advance().text
		}
	} else {
		// import { A, B } from "path"; or import * as X from "path";
		for !p.isIdent("from") && !p.atEOF() {
			p.advance()
		}
		if p.isIdent("from") {
			p.advance()
		}
		if p.cur().kind == tokString {
			path = p.advance().text
		}
	}
	if _, err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	return &ImportDirective{NodeLoc: p.loc(start), Path: path, Alias: alias}, nil
}

func (p *Parser) parseUsing(start int) (SourceUnitPart, error) {
	p.advance() // using
	library := p.advance().text
	for p.isPunct(".") {
		p.advance()
		library += "." + p.advance().text
	}
	if _, err := p.expectIdent("for"); err != nil {
		return nil, err
	}
	var typ *TypeName
	if p.isPunct("*") {
		p.advance()
	} else {
		t, err := p.parseTypeName()
		if err != nil {
			return nil, err
		}
		typ = t
	}
	isGlobal := false
	if p.isIdent("global") {
		p.advance()
		isGlobal = true
	}
	if _, err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	return &UsingDirective{NodeLoc: p.loc(start), Library: library, Type: typ, IsGlobal: isGlobal}, nil
}

func (p *Parser) parseEnum(start int) (SourceUnitPart, error) {
	p.advance() // enum
	name := p.advance().text
	if _, err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	var values []string
	for !p.isPunct("}") {
		values = append(values, p.advance().text)
		if p.isPunct(",") {
			p.advance()
		}
	}
	p.advance() // }
	return &EnumDefinition{NodeLoc: p.loc(start), Name: name, Values: values}, nil
}

func (p *Parser) parseEvent(start int) (SourceUnitPart, error) {
	p.advance() // event
	name := p.advance().text
	if _, err := p.expectPunct("("); err != nil {
		return nil, err
	}
	var fields []EventField
	for !p.isPunct(")") {
		fstart := p.cur().start
		typ, err := p.parseTypeName()
		if err != nil {
			return nil, err
		}
		indexed := false
		if p.isIdent("indexed") {
			p.advance()
			indexed = true
		}
		fname := ""
		if p.cur().kind == tokIdent && !p.isPunct(",") && !p.isPunct(")") {
			fname = p.advance().text
		}
		fields = append(fields, EventField{Loc: p.loc(fstart), Type: typ, Indexed: indexed, Name: fname})
		if p.isPunct(",") {
			p.advance()
		}
	}
	p.advance() // )
	anonymous := false
	if p.isIdent("anonymous") {
		p.advance()
		anonymous = true
	}
	if _, err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	return &EventDefinition{NodeLoc: p.loc(start), Name: name, Fields: fields, Anonymous: anonymous}, nil
}

func (p *Parser) parseError(start int) (SourceUnitPart, error) {
	p.advance() // error
	name := p.advance().text
	if _, err := p.expectPunct("("); err != nil {
		return nil, err
	}
	var fields []ErrorField
	for !p.isPunct(")") {
		fstart := p.cur().start
		typ, err := p.parseTypeName()
		if err != nil {
			return nil, err
		}
		fname := ""
		if p.cur().kind == tokIdent {
			fname = p.advance().text
		}
		fields = append(fields, ErrorField{Loc: p.loc(fstart), Type: typ, Name: fname})
		if p.isPunct(",") {
			p.advance()
		}
	}
	p.advance() // )
	if _, err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	return &ErrorDefinition{NodeLoc: p.loc(start), Name: name, Fields: fields}, nil
}

func (p *Parser) parseStruct(start int) (SourceUnitPart, error) {
	p.advance() // struct
	name := p.advance().text
	if _, err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	var fields []*VariableDeclaration
	for !p.isPunct("}") {
		fstart := p.cur().start
		typ, err := p.parseTypeName()
		if err != nil {
			return nil, err
		}
		fname := p.advance().text
		if _, err := p.expectPunct(";"); err != nil {
			return nil, err
		}
		fields = append(fields, &VariableDeclaration{Loc: p.loc(fstart), Type: typ, Name: fname})
	}
	p.advance() // }
	return &StructDefinition{NodeLoc: p.loc(start), Name: name, Fields: fields}, nil
}

func (p *Parser) parseTypeDef(start int) (SourceUnitPart, error) {
	p.advance() // type
	name := p.advance().text
	if _, err := p.expectIdent("is"); err != nil {
		return nil, err
	}
	typ, err := p.parseTypeName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	return &TypeDefinition{NodeLoc: p.loc(start), Name: name, Type: typ}, nil
}

func (p *Parser) parseContract(start int) (SourceUnitPart, error) {
	ty := ContractTyContract
	if p.isIdent("abstract") {
		p.advance()
		ty = ContractTyAbstract
	}
	switch {
	case p.isIdent("contract"):
		p.advance()
	case p.isIdent("interface"):
		p.advance()
		ty = ContractTyInterface
	case p.isIdent("library"):
		p.advance()
		ty = ContractTyLibrary
	}
	name := p.advance().text
	var bases []Base
	if p.isIdent("is") {
		p.advance()
		for {
			bstart := p.cur().start
			bname := p.advance().text
			for p.isPunct(".") {
				p.advance()
				bname += "." + p.advance().text
			}
			var args []Expression
			if p.isPunct("(") {
				p.advance()
				for !p.isPunct(")") {
					e, err := p.parseExpression()
					if err != nil {
						return nil, err
					}
					args = append(args, e)
					if p.isPunct(",") {
						p.advance()
					}
				}
				p.advance() // )
			}
			bases = append(bases, Base{Loc: p.loc(bstart), Name: bname, Args: args})
			if p.isPunct(",") {
				p.advance()
				continue
			}
			break
		}
	}
	if _, err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	var parts []ContractPart
	for !p.isPunct("}") {
		part, err := p.parseContractPart()
		if err != nil {
			return nil, err
		}
		if part != nil {
			parts = append(parts, part)
		}
	}
	p.advance() // }
	return &ContractDefinition{NodeLoc: p.loc(start), Ty: ty, Name: name, Base: bases, Parts: parts}, nil
}

func (p *Parser) parseContractPart() (ContractPart, error) {
	start := p.cur().start
	switch {
	case p.isPunct(";"):
		p.advance()
		return &StraySemicolon{NodeLoc: p.loc(start)}, nil
	case p.isIdent("using"):
		part, err := p.parseUsing(start)
		if err != nil {
			return nil, err
		}
		return part.(ContractPart), nil
	case p.isIdent("enum"):
		part, err := p.parseEnum(start)
		if err != nil {
			return nil, err
		}
		return part.(ContractPart), nil
	case p.isIdent("event"):
		part, err := p.parseEvent(start)
		if err != nil {
			return nil, err
		}
		return part.(ContractPart), nil
	case p.isIdent("error"):
		part, err := p.parseError(start)
		if err != nil {
			return nil, err
		}
		return part.(ContractPart), nil
	case p.isIdent("struct"):
		part, err := p.parseStruct(start)
		if err != nil {
			return nil, err
		}
		return part.(ContractPart), nil
	case p.isIdent("type"):
		part, err := p.parseTypeDef(start)
		if err != nil {
			return nil, err
		}
		return part.(ContractPart), nil
	case p.isIdent("function") || p.isIdent("constructor") || p.isIdent("modifier") ||
		p.isIdent("receive") || p.isIdent("fallback"):
		part, err := p.parseFunction(start)
		if err != nil {
			return nil, err
		}
		return part.(ContractPart), nil
	default:
		part, err := p.parseVariableDefinitionTop(start)
		if err != nil {
			return nil, err
		}
		return part.(ContractPart), nil
	}
}

func (p *Parser) parseVariableDefinitionTop(start int) (SourceUnitPart, error) {
	typ, err := p.parseTypeName()
	if err != nil {
		return nil, err
	}
	var attrs []VariableAttribute
	visibility := VisibilityNone
	constant := false
	immutable := false
	for {
		switch {
		case p.isIdent("constant"):
			p.advance()
			constant = true
			attrs = append(attrs, VarAttrConstant)
		case p.isIdent("immutable"):
			p.advance()
			immutable = true
			attrs = append(attrs, VarAttrImmutable)
		case p.isIdent("public"):
			p.advance()
			visibility = VisibilityPublic
			attrs = append(attrs, VarAttrVisibility)
		case p.isIdent("private"):
			p.advance()
			visibility = VisibilityPrivate
			attrs = append(attrs, VarAttrVisibility)
		case p.isIdent("internal"):
			p.advance()
			visibility = VisibilityInternal
			attrs = append(attrs, VarAttrVisibility)
		default:
			goto doneAttrs
		}
	}
doneAttrs:
	name := p.advance().text
	var init Expression
	if p.isPunct("=") {
		p.advance()
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		init = e
	}
	if _, err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	return &VariableDefinition{
		NodeLoc: p.loc(start), Type: typ, Name: name, Attributes: attrs,
		Visibility: visibility, Constant: constant, Immutable: immutable, Initializer: init,
	}, nil
}

func (p *Parser) parseFunction(start int) (SourceUnitPart, error) {
	ty := FunctionTyFunction
	name := ""
	switch {
	case p.isIdent("constructor"):
		p.advance()
		ty = FunctionTyConstructor
	case p.isIdent("modifier"):
		p.advance()
		ty = FunctionTyModifier
		name = p.advance().text
	case p.isIdent("receive"):
		p.advance()
		ty = FunctionTyReceive
	case p.isIdent("fallback"):
		p.advance()
		ty = FunctionTyFallback
	default:
		p.advance() // function
		if p.cur().kind == tokIdent && !p.isPunct("(") {
			name = p.advance().text
		}
	}
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	visibility := VisibilityNone
	mutability := MutabilityNone
	virtual := false
	override := false
	var modifiers []Modifier
	var returns []Param
	for {
		mstart := p.cur().start
		switch {
		case p.isIdent("public"):
			p.advance()
			visibility = VisibilityPublic
		case p.isIdent("private"):
			p.advance()
			visibility = VisibilityPrivate
		case p.isIdent("internal"):
			p.advance()
			visibility = VisibilityInternal
		case p.isIdent("external"):
			p.advance()
			visibility = VisibilityExternal
		case p.isIdent("pure"):
			p.advance()
			mutability = MutabilityPure
		case p.isIdent("view"):
			p.advance()
			mutability = MutabilityView
		case p.isIdent("payable"):
			p.advance()
			mutability = MutabilityPayable
		case p.isIdent("virtual"):
			p.advance()
			virtual = true
		case p.isIdent("override"):
			p.advance()
			override = true
			if p.isPunct("(") {
				p.advance()
				for !p.isPunct(")") {
					p.advance()
				}
				p.advance()
			}
		case p.isIdent("returns"):
			p.advance()
			returns, err = p.parseParamList()
			if err != nil {
				return nil, err
			}
		case p.cur().kind == tokIdent && !p.isPunct("{") && !p.isPunct(";"):
			mname := p.advance().text
			var args []Expression
			if p.isPunct("(") {
				p.advance()
				for !p.isPunct(")") {
					e, err := p.parseExpression()
					if err != nil {
						return nil, err
					}
					args = append(args, e)
					if p.isPunct(",") {
						p.advance()
					}
				}
				p.advance()
			}
			modifiers = append(modifiers, Modifier{Loc: p.loc(mstart), Name: mname, Args: args})
		default:
			goto doneAttrs
		}
	}
doneAttrs:
	var body Statement
	if p.isPunct("{") {
		b, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		body = b
	} else {
		if _, err := p.expectPunct(";"); err != nil {
			return nil, err
		}
	}
	return &FunctionDefinition{
		NodeLoc: p.loc(start), Ty: ty, Name: name, Params: params,
		Visibility: visibility, Mutability: mutability, Virtual: virtual, Override: override,
		Modifiers: modifiers, Returns: returns, Body: body,
	}, nil
}

func (p *Parser) parseParamList() ([]Param, error) {
	if _, err := p.expectPunct("("); err != nil {
		return nil, err
	}
	var params []Param
	for !p.isPunct(")") {
		pstart := p.cur().start
		if p.isPunct(",") {
			params = append(params, Param{Loc: p.loc(pstart)})
			p.advance()
			continue
		}
		typ, err := p.parseTypeName()
		if err != nil {
			return nil, err
		}
		loc := StorageLocationNone
		switch {
		case p.isIdent("memory"):
			p.advance()
			loc = StorageLocationMemory
		case p.isIdent("calldata"):
			p.advance()
			loc = StorageLocationCalldata
		case p.isIdent("storage"):
			p.advance()
			loc = StorageLocationStorage
		}
		name := ""
		if p.cur().kind == tokIdent {
			name = p.advance().text
		}
		params = append(params, Param{Loc: p.loc(pstart), Decl: &VariableDeclaration{
			Loc: p.loc(pstart), Type: typ, Storage: loc, Name: name,
		}})
		if p.isPunct(",") {
			p.advance()
		}
	}
	p.advance() // )
	return params, nil
}

// ---- type names ----

var elementaryPrefixes = map[string]bool{
	"address": true, "bool": true, "string": true, "bytes": true,
}

func isElementaryName(s string) bool {
	if elementaryPrefixes[s] {
		return true
	}
	for _, prefix := range []string{"uint", "int", "bytes"} {
		if rest, ok := strings.CutPrefix(s, prefix); ok {
			for _, c := range rest {
				if c < '0' || c > '9' {
					return false
				}
			}
			return true
		}
	}
	return false
}

func (p *Parser) parseTypeName() (*TypeName, error) {
	start := p.cur().start
	if p.isIdent("mapping") {
		p.advance()
		if _, err := p.expectPunct("("); err != nil {
			return nil, err
		}
		key, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunct("=>"); err != nil {
			return nil, err
		}
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunct(")"); err != nil {
			return nil, err
		}
		return p.parseArraySuffix(&TypeName{Loc: p.loc(start), Kind: TypeKindMapping, MappingKey: key, MappingValue: value})
	}
	if p.isIdent("function") {
		p.advance()
		params, err := p.parseParamList()
		if err != nil {
			return nil, err
		}
		t := &TypeName{Loc: p.loc(start), Kind: TypeKindFunction, FuncParams: params}
		for {
			switch {
			case p.isIdent("public"):
				p.advance()
				t.FuncVisibility = VisibilityPublic
			case p.isIdent("private"):
				p.advance()
				t.FuncVisibility = VisibilityPrivate
			case p.isIdent("internal"):
				p.advance()
				t.FuncVisibility = VisibilityInternal
			case p.isIdent("external"):
				p.advance()
				t.FuncVisibility = VisibilityExternal
			case p.isIdent("pure"):
				p.advance()
				t.FuncMutability = MutabilityPure
			case p.isIdent("view"):
				p.advance()
				t.FuncMutability = MutabilityView
			case p.isIdent("payable"):
				p.advance()
				t.FuncMutability = MutabilityPayable
			case p.isIdent("returns"):
				p.advance()
				rp, err := p.parseParamList()
				if err != nil {
					return nil, err
				}
				t.FuncReturns = rp
			default:
				return p.parseArraySuffix(t)
			}
		}
	}
	name := p.advance().text
	for p.isPunct(".") {
		p.advance()
		name += "." + p.advance().text
	}
	kind := TypeKindUserDefined
	if isElementaryName(name) {
		kind = TypeKindElementary
		if name == "address" && p.isIdent("payable") {
			p.advance()
			name = "address payable"
		}
	}
	return p.parseArraySuffix(&TypeName{Loc: p.loc(start), Kind: kind, Name: name})
}

func (p *Parser) parseArraySuffix(base *TypeName) (*TypeName, error) {
	for p.isPunct("[") {
		start := base.Loc.Start
		p.advance()
		var length Expression
		if !p.isPunct("]") {
			e, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			length = e
		}
		if _, err := p.expectPunct("]"); err != nil {
			return nil, err
		}
		base = &TypeName{Loc: p.loc(start), Kind: TypeKindArray, ArrayBase: base, ArrayLength: length}
	}
	return base, nil
}

// ---- statements ----

func (p *Parser) parseBlock() (*BlockStatement, error) {
	start := p.cur().start
	if _, err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	var stmts []Statement
	for !p.isPunct("}") {
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if s != nil {
			stmts = append(stmts, s)
		}
	}
	p.advance() // }
	return &BlockStatement{NodeLoc: p.loc(start), Statements: stmts}, nil
}

func (p *Parser) parseStatement() (Statement, error) {
	start := p.cur().start
	switch {
	case p.isPunct("{"):
		return p.parseBlock()
	case p.isIdent("unchecked"):
		p.advance()
		b, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		b.Unchecked = true
		return b, nil
	case p.isIdent("if"):
		return p.parseIf(start)
	case p.isIdent("while"):
		return p.parseWhile(start)
	case p.isIdent("for"):
		return p.parseFor(start)
	case p.isIdent("do"):
		return p.parseDoWhile(start)
	case p.isIdent("try"):
		return p.parseTry(start)
	case p.isIdent("return"):
		return p.parseReturn(start)
	case p.isIdent("revert"):
		return p.parseRevert(start)
	case p.isIdent("emit"):
		return p.parseEmit(start)
	case p.isIdent("continue"):
		p.advance()
		p.expectPunct(";")
		return &OpaqueStatement{NodeLoc: p.loc(start), Label: "continue"}, nil
	case p.isIdent("break"):
		p.advance()
		p.expectPunct(";")
		return &OpaqueStatement{NodeLoc: p.loc(start), Label: "break"}, nil
	case p.isIdent("assembly"):
		return p.parseAssembly(start)
	case p.isPunct(";"):
		p.advance()
		return nil, nil
	default:
		return p.parseExprOrVarDeclStatement(start, true)
	}
}

func (p *Parser) parseAssembly(start int) (Statement, error) {
	p.advance() // assembly
	if p.cur().kind == tokString {
		p.advance() // "evmasm" dialect string
	}
	depth := 0
	for !p.atEOF() {
		if p.isPunct("{") {
			depth++
			p.advance()
			continue
		}
		if p.isPunct("}") {
			depth--
			p.advance()
			if depth == 0 {
				break
			}
			continue
		}
		p.advance()
	}
	return &OpaqueStatement{NodeLoc: p.loc(start), Label: "assembly"}, nil
}

func (p *Parser) parseIf(start int) (Statement, error) {
	p.advance() // if
	if _, err := p.expectPunct("("); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	var elseStmt Statement
	if p.isIdent("else") {
		p.advance()
		elseStmt, err = p.parseStatement()
		if err != nil {
			return nil, err
		}
	}
	return &IfStatement{NodeLoc: p.loc(start), Cond: cond, Then: then, Else: elseStmt}, nil
}

func (p *Parser) parseWhile(start int) (Statement, error) {
	p.advance()
	if _, err := p.expectPunct("("); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &WhileStatement{NodeLoc: p.loc(start), Cond: cond, Body: body}, nil
}

func (p *Parser) parseFor(start int) (Statement, error) {
	p.advance()
	if _, err := p.expectPunct("("); err != nil {
		return nil, err
	}
	var init Statement
	if !p.isPunct(";") {
		s, err := p.parseExprOrVarDeclStatement(p.cur().start, false)
		if err != nil {
			return nil, err
		}
		init = s
	}
	if _, err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	var cond Expression
	if !p.isPunct(";") {
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		cond = e
	}
	if _, err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	var post Statement
	if !p.isPunct(")") {
		pstart := p.cur().start
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		post = &ExpressionStatement{NodeLoc: p.loc(pstart), Expr: e}
	}
	if _, err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	var body Statement
	if !p.isPunct(";") {
		b, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = b
	} else {
		p.advance()
	}
	return &ForStatement{NodeLoc: p.loc(start), Init: init, Cond: cond, Post: post, Body: body}, nil
}

func (p *Parser) parseDoWhile(start int) (Statement, error) {
	p.advance() // do
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectIdent("while"); err != nil {
		return nil, err
	}
	if _, err := p.expectPunct("("); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	if _, err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	return &DoWhileStatement{NodeLoc: p.loc(start), Body: body, Cond: cond}, nil
}

func (p *Parser) parseTry(start int) (Statement, error) {
	p.advance() // try
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	var returnParams []Param
	if p.isIdent("returns") {
		p.advance()
		rp, err := p.parseParamList()
		if err != nil {
			return nil, err
		}
		returnParams = rp
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	var catches []CatchClause
	for p.isIdent("catch") {
		cstart := p.cur().start
		p.advance()
		name := ""
		var params []Param
		if p.cur().kind == tokIdent && !p.isPunct("{") {
			name = p.advance().text
		}
		if p.isPunct("(") {
			pr, err := p.parseParamList()
			if err != nil {
				return nil, err
			}
			params = pr
		}
		cbody, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		catches = append(catches, CatchClause{Loc: p.loc(cstart), Name: name, Params: params, Body: cbody})
	}
	return &TryStatement{NodeLoc: p.loc(start), Expr: expr, ReturnParams: returnParams, Body: body, Catches: catches}, nil
}

func (p *Parser) parseReturn(start int) (Statement, error) {
	p.advance() // return
	var value Expression
	if !p.isPunct(";") {
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		value = e
	}
	if _, err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	return &ReturnStatement{NodeLoc: p.loc(start), Value: value}, nil
}

func (p *Parser) parseRevert(start int) (Statement, error) {
	p.advance() // revert
	errorPath := ""
	if p.cur().kind == tokIdent && !p.isPunct("(") {
		errorPath = p.advance().text
		for p.isPunct(".") {
			p.advance()
			errorPath += "." + p.advance().text
		}
	}
	if _, err := p.expectPunct("("); err != nil {
		return nil, err
	}
	if p.isPunct("{") {
		// revert Err({a: 1});
		p.advance()
		var named []NamedArgument
		for !p.isPunct("}") {
			nstart := p.cur().start
			nname := p.advance().text
			if _, err := p.expectPunct(":"); err != nil {
				return nil, err
			}
			v, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			named = append(named, NamedArgument{Loc: p.loc(nstart), Name: nname, Value: v})
			if p.isPunct(",") {
				p.advance()
			}
		}
		p.advance() // }
		if _, err := p.expectPunct(")"); err != nil {
			return nil, err
		}
		p.expectPunct(";")
		return &RevertNamedArgsStatement{NodeLoc: p.loc(start), ErrorPath: errorPath, Args: named}, nil
	}
	var args []Expression
	for !p.isPunct(")") {
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, e)
		if p.isPunct(",") {
			p.advance()
		}
	}
	p.advance() // )
	if _, err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	return &RevertStatement{NodeLoc: p.loc(start), ErrorPath: errorPath, Args: args}, nil
}

func (p *Parser) parseEmit(start int) (Statement, error) {
	p.advance() // emit
	e, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	return &EmitStatement{NodeLoc: p.loc(start), Event: e}, nil
}

// parseExprOrVarDeclStatement handles both `T x = e;` and `e;` (and their
// for-init variants without the trailing semicolon), disambiguated by
// attempting a type-name parse and backtracking if it doesn't resolve into
// a declarator.
func (p *Parser) parseExprOrVarDeclStatement(start int, consumeSemi bool) (Statement, error) {
	if decl, ok := p.tryParseVarDecl(start); ok {
		var init Expression
		if p.isPunct("=") {
			p.advance()
			e, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			init = e
		}
		if consumeSemi {
			if _, err := p.expectPunct(";"); err != nil {
				return nil, err
			}
		}
		return &VariableDefinitionStatement{NodeLoc: p.loc(start), Decl: decl, Initializer: init}, nil
	}
	e, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if consumeSemi {
		if _, err := p.expectPunct(";"); err != nil {
			return nil, err
		}
	}
	return &ExpressionStatement{NodeLoc: p.loc(start), Expr: e}, nil
}

// tryParseVarDecl attempts `TypeName [location] name` at the current
// position, restoring the cursor and returning ok=false if it does not
// parse cleanly (meaning the statement is a plain expression instead).
func (p *Parser) tryParseVarDecl(start int) (*VariableDeclaration, bool) {
	savedPos := p.pos
	savedDiags := len(p.diags)
	typ, err := p.parseTypeName()
	if err != nil || typ == nil {
		p.pos = savedPos
		p.diags = p.diags[:savedDiags]
		return nil, false
	}
	loc := StorageLocationNone
	switch {
	case p.isIdent("memory"):
		p.advance()
		loc = StorageLocationMemory
	case p.isIdent("calldata"):
		p.advance()
		loc = StorageLocationCalldata
	case p.isIdent("storage"):
		p.advance()
		loc = StorageLocationStorage
	}
	if p.cur().kind != tokIdent || keywords[p.cur().text] {
		p.pos = savedPos
		p.diags = p.diags[:savedDiags]
		return nil, false
	}
	name := p.advance().text
	if !p.isPunct("=") && !p.isPunct(";") {
		p.pos = savedPos
		p.diags = p.diags[:savedDiags]
		return nil, false
	}
	return &VariableDeclaration{Loc: p.loc(start), Type: typ, Storage: loc, Name: name}, true
}
