package solidity

// Expression parsing uses precedence climbing over the binary/assignment
// operator tables below, with a separate handler for the prefix-unary,
// postfix, and primary levels. Solidity's grammar is not expressed as a
// classic LL(1) grammar for expressions, so this follows the structure of
// any typical hand-written Pratt-style parser rather than one specific
// example source.

var binaryPrecedence = map[string]int{
	"||": 4,
	"&&": 5,
	"==": 6, "!=": 6,
	"<": 7, "<=": 7, ">": 7, ">=": 7,
	"|": 8,
	"^": 9,
	"&": 10,
	"<<": 11, ">>": 11,
	"+": 12, "-": 12,
	"*": 13, "/": 13, "%": 13,
	"**": 14,
}

var binaryOps = map[string]BinaryOp{
	"||": OpOr, "&&": OpAnd,
	"==": OpEqual, "!=": OpNotEqual,
	"<": OpLess, "<=": OpLessEqual, ">": OpMore, ">=": OpMoreEqual,
	"|": OpBitwiseOr, "^": OpBitwiseXor, "&": OpBitwiseAnd,
	"<<": OpShiftLeft, ">>": OpShiftRight,
	"+": OpAdd, "-": OpSubtract,
	"*": OpMultiply, "/": OpDivide, "%": OpModulo,
	"**": OpPower,
}

var assignOps = map[string]AssignOp{
	"=": OpAssign, "+=": OpAssignAdd, "-=": OpAssignSubtract,
	"*=": OpAssignMultiply, "/=": OpAssignDivide, "%=": OpAssignModulo,
	"&=": OpAssignAnd, "|=": OpAssignOr, "^=": OpAssignXor,
	"<<=": OpAssignShiftLeft, ">>=": OpAssignShiftRight,
}

func (p *Parser) parseExpression() (Expression, error) {
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() (Expression, error) {
	start := p.cur().start
	left, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	if p.cur().kind == tokPunct {
		if op, ok := assignOps[p.cur().text]; ok {
			p.advance()
			right, err := p.parseAssignment()
			if err != nil {
				return nil, err
			}
			return &AssignExpr{NodeLoc: p.loc(start), Op: op, Left: left, Right: right}, nil
		}
	}
	return left, nil
}

func (p *Parser) parseTernary() (Expression, error) {
	start := p.cur().start
	cond, err := p.parseBinary(4)
	if err != nil {
		return nil, err
	}
	if p.isPunct("?") {
		p.advance()
		trueExpr, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunct(":"); err != nil {
			return nil, err
		}
		falseExpr, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		return &TernaryExpr{NodeLoc: p.loc(start), Cond: cond, True: trueExpr, False: falseExpr}, nil
	}
	return cond, nil
}

func (p *Parser) parseBinary(minPrec int) (Expression, error) {
	start := p.cur().start
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		if p.cur().kind != tokPunct {
			break
		}
		prec, ok := binaryPrecedence[p.cur().text]
		if !ok || prec < minPrec {
			break
		}
		op := binaryOps[p.cur().text]
		p.advance()
		nextMin := prec + 1
		if op == OpPower {
			nextMin = prec // right-associative
		}
		right, err := p.parseBinary(nextMin)
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{NodeLoc: p.loc(start), Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseUnary() (Expression, error) {
	start := p.cur().start
	switch {
	case p.isPunct("!"):
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{NodeLoc: p.loc(start), Op: OpNot, Operand: operand}, nil
	case p.isPunct("~"):
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{NodeLoc: p.loc(start), Op: OpComplement, Operand: operand}, nil
	case p.isPunct("-"):
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{NodeLoc: p.loc(start), Op: OpUnaryMinus, Operand: operand}, nil
	case p.isPunct("+"):
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{NodeLoc: p.loc(start), Op: OpUnaryPlus, Operand: operand}, nil
	case p.isPunct("++"):
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{NodeLoc: p.loc(start), Op: OpPreIncrement, Operand: operand}, nil
	case p.isPunct("--"):
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{NodeLoc: p.loc(start), Op: OpPreDecrement, Operand: operand}, nil
	case p.isIdent("delete"):
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{NodeLoc: p.loc(start), Op: OpDelete, Operand: operand}, nil
	case p.isIdent("new"):
		p.advance()
		typ, err := p.parseTypeName()
		if err != nil {
			return nil, err
		}
		operand, err := p.parsePostfixFrom(&TypeExpr{NodeLoc: p.loc(start), Type: typ}, start)
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{NodeLoc: p.loc(start), Op: OpNew, Operand: operand}, nil
	default:
		return p.parsePostfix()
	}
}

func (p *Parser) parsePostfix() (Expression, error) {
	start := p.cur().start
	primary, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return p.parsePostfixFrom(primary, start)
}

func (p *Parser) parsePostfixFrom(expr Expression, start int) (Expression, error) {
	for {
		switch {
		case p.isPunct("."):
			p.advance()
			member := p.advance().text
			expr = &MemberAccessExpr{NodeLoc: p.loc(start), Expr: expr, Member: member}
		case p.isPunct("["):
			p.advance()
			if p.isPunct(":") {
				p.advance()
				var high Expression
				if !p.isPunct("]") {
					h, err := p.parseExpression()
					if err != nil {
						return nil, err
					}
					high = h
				}
				if _, err := p.expectPunct("]"); err != nil {
					return nil, err
				}
				expr = &ArraySliceExpr{NodeLoc: p.loc(start), Base: expr, High: high}
				continue
			}
			if p.isPunct("]") {
				p.advance()
				expr = &ArraySubscriptExpr{NodeLoc: p.loc(start), Base: expr}
				continue
			}
			idx, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if p.isPunct(":") {
				p.advance()
				var high Expression
				if !p.isPunct("]") {
					h, err := p.parseExpression()
					if err != nil {
						return nil, err
					}
					high = h
				}
				if _, err := p.expectPunct("]"); err != nil {
					return nil, err
				}
				expr = &ArraySliceExpr{NodeLoc: p.loc(start), Base: expr, Low: idx, High: high}
				continue
			}
			if _, err := p.expectPunct("]"); err != nil {
				return nil, err
			}
			expr = &ArraySubscriptExpr{NodeLoc: p.loc(start), Base: expr, Index: idx}
		case p.isPunct("("):
			p.advance()
			if p.isNamedArgStart() {
				var named []NamedArgument
				for !p.isPunct(")") {
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
				p.advance()
				expr = &NamedFunctionCallExpr{NodeLoc: p.loc(start), Callee: expr, Args: named}
				continue
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
			p.advance()
			expr = &FunctionCallExpr{NodeLoc: p.loc(start), Callee: expr, Args: args}
		case p.isPunct("{"):
			// call-options block: callee{gas: x, value: y}(args)
			savedPos := p.pos
			p.advance()
			if !p.isNamedArgStart() && !p.isPunct("}") {
				p.pos = savedPos
				goto done
			}
			var opts []NamedArgument
			for !p.isPunct("}") {
				ostart := p.cur().start
				oname := p.advance().text
				if _, err := p.expectPunct(":"); err != nil {
					return nil, err
				}
				v, err := p.parseExpression()
				if err != nil {
					return nil, err
				}
				opts = append(opts, NamedArgument{Loc: p.loc(ostart), Name: oname, Value: v})
				if p.isPunct(",") {
					p.advance()
				}
			}
			p.advance()
			expr = &CallOptionsExpr{NodeLoc: p.loc(start), Callee: expr, Options: opts}
		case p.isPunct("++"):
			p.advance()
			expr = &PostfixExpr{NodeLoc: p.loc(start), Inc: true, Operand: expr}
		case p.isPunct("--"):
			p.advance()
			expr = &PostfixExpr{NodeLoc: p.loc(start), Inc: false, Operand: expr}
		default:
			goto done
		}
	}
done:
	return expr, nil
}

// isNamedArgStart reports whether the cursor sits at `ident :` inside a
// `(` or `{` that was just consumed, i.e. a named-argument list rather
// than a positional one.
func (p *Parser) isNamedArgStart() bool {
	if p.cur().kind != tokIdent {
		return p.isPunct("}") // empty call-options block
	}
	next := p.toks[p.pos+1]
	return next.kind == tokPunct && next.text == ":"
}

func (p *Parser) parsePrimary() (Expression, error) {
	start := p.cur().start
	t := p.cur()
	switch {
	case p.isPunct("("):
		p.advance()
		var params []Param
		var exprs []Expression
		isTuple := false
		for !p.isPunct(")") {
			if p.isPunct(",") {
				params = append(params, Param{Loc: p.loc(p.cur().start)})
				exprs = append(exprs, nil)
				isTuple = true
				p.advance()
				continue
			}
			e, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			exprs = append(exprs, e)
			params = append(params, Param{Loc: p.loc(start), Decl: exprAsDecl(e)})
			if p.isPunct(",") {
				isTuple = true
				p.advance()
				if p.isPunct(")") {
					params = append(params, Param{Loc: p.loc(p.cur().start)})
					exprs = append(exprs, nil)
				}
			}
		}
		p.advance() // )
		if !isTuple && len(exprs) == 1 {
			return &ParenthesisExpr{NodeLoc: p.loc(start), Inner: exprs[0]}, nil
		}
		return &ListExpr{NodeLoc: p.loc(start), Params: params}, nil
	case p.isPunct("["):
		p.advance()
		var elems []Expression
		for !p.isPunct("]") {
			e, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
			if p.isPunct(",") {
				p.advance()
			}
		}
		p.advance()
		return &ArrayLiteralExpr{NodeLoc: p.loc(start), Elements: elems}, nil
	case t.kind == tokString:
		p.advance()
		return p.maybeUnit(&StringLiteralExpr{NodeLoc: p.loc(start), Value: t.text}, start)
	case t.kind == tokHexString:
		p.advance()
		return &HexLiteralExpr{NodeLoc: p.loc(start), Value: t.text}, nil
	case t.kind == tokHexNumber:
		p.advance()
		return p.maybeUnit(&HexNumberLiteralExpr{NodeLoc: p.loc(start), Value: t.text}, start)
	case t.kind == tokNumber:
		p.advance()
		if t.fraction != "" {
			return p.maybeUnit(&RationalNumberLiteralExpr{NodeLoc: p.loc(start), Value: t.text, Fraction: t.fraction, Exponent: t.exponent}, start)
		}
		return p.maybeUnit(&NumberLiteralExpr{NodeLoc: p.loc(start), Value: t.text, Exponent: t.exponent}, start)
	case p.isIdent("true"):
		p.advance()
		return &BoolLiteralExpr{NodeLoc: p.loc(start), Value: true}, nil
	case p.isIdent("false"):
		p.advance()
		return &BoolLiteralExpr{NodeLoc: p.loc(start), Value: false}, nil
	case p.isIdent("this"):
		p.advance()
		return &ThisExpr{NodeLoc: p.loc(start)}, nil
	case p.isIdent("payable") || p.isIdent("mapping") || isElementaryNameIdent(t):
		typ, err := p.parseTypeName()
		if err != nil {
			return nil, err
		}
		return &TypeExpr{NodeLoc: p.loc(start), Type: typ}, nil
	case t.kind == tokIdent:
		p.advance()
		return &IdentifierExpr{NodeLoc: p.loc(start), Name: t.text}, nil
	default:
		return nil, p.errorf("unexpected token %q in expression", t.text)
	}
}

func isElementaryNameIdent(t token) bool {
	return t.kind == tokIdent && isElementaryName(t.text)
}

// maybeUnit checks for a trailing denomination (`1 ether`, `2 days`) and
// wraps the literal in a UnitExpr if present.
func (p *Parser) maybeUnit(lit Expression, start int) (Expression, error) {
	units := map[string]bool{
		"wei": true, "gwei": true, "ether": true,
		"seconds": true, "minutes": true, "hours": true, "days": true, "weeks": true, "years": true,
	}
	if p.cur().kind == tokIdent && units[p.cur().text] {
		unit := p.advance().text
		return &UnitExpr{NodeLoc: p.loc(start), Value: lit, Unit: unit}, nil
	}
	return lit, nil
}

// exprAsDecl stores a bare identifier in Param's Decl slot so tuple-assignment targets like `(a, b) = f()` reuse ListExpr/Param
// without a separate "expression list" node type.
func exprAsDecl(e Expression) *VariableDeclaration {
	if id, ok := e.(*IdentifierExpr); ok {
		return &VariableDeclaration{Loc: Loc{Start: id.NodeLoc.Start, End: id.NodeLoc.End, File: id.NodeLoc.File}, Name: id.Name}
	}
	return &VariableDeclaration{Loc: Loc{}, Name: "", Type: nil}
}

