package parser

import (
	"strconv"

	"github.com/tapeforge/tapec/internal/hir"
	"github.com/tapeforge/tapec/internal/token"
)

// parseExpr is the entry point for any expression: it dispatches to the
// keyword-led forms, falling back to assignment/binary parsing for
// everything else.
func (p *Parser) parseExpr() (hir.Expr, error) {
	switch p.cur.Type {
	case token.LET:
		return p.parseLet()
	case token.FN:
		return p.parseFn()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.DO:
		return p.parseBlock()
	default:
		return p.parseAssignOrBinary()
	}
}

func (p *Parser) parseLet() (hir.Expr, error) {
	p.next() // 'let'
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.IN); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &hir.Let{Name: nameTok.Lexeme, Value: value, Body: body}, nil
}

func (p *Parser) parseFn() (hir.Expr, error) {
	p.next() // 'fn'
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ARROW); err != nil {
		return nil, err
	}
	ret, err := p.parseType()
	if err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &hir.FunctionLit{Params: params, RetType: ret, Body: body}, nil
}

func (p *Parser) parseParamList() ([]hir.Param, error) {
	var params []hir.Param
	if p.curIs(token.RPAREN) {
		return params, nil
	}
	for {
		nameTok, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		params = append(params, hir.Param{Name: nameTok.Lexeme, Type: t})
		if p.curIs(token.COMMA) {
			p.next()
			continue
		}
		break
	}
	return params, nil
}

func (p *Parser) parseBlock() (hir.Expr, error) {
	if _, err := p.expect(token.DO); err != nil {
		return nil, err
	}
	var exprs []hir.Expr
	for !p.curIs(token.END) {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
		if p.curIs(token.SEMI) {
			p.next()
		}
	}
	if _, err := p.expect(token.END); err != nil {
		return nil, err
	}
	return &hir.Block{Exprs: exprs}, nil
}

func (p *Parser) parseIf() (hir.Expr, error) {
	p.next() // 'if'
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if p.curIs(token.ELSE) {
		p.next()
		els, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return &hir.IfElse{Cond: cond, Then: then, Else: els}, nil
	}
	return &hir.If{Cond: cond, Then: then}, nil
}

func (p *Parser) parseWhile() (hir.Expr, error) {
	p.next() // 'while'
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &hir.While{Cond: cond, Body: body}, nil
}

// compoundOp reports the arithmetic operator a compound-assignment
// token desugars through, e.g. '+=' desugars x += e to x = x + e.
func compoundOp(t token.Type) (token.Type, bool) {
	switch t {
	case token.PLUS_ASSIGN:
		return token.PLUS, true
	case token.MINUS_ASSIGN:
		return token.MINUS, true
	case token.STAR_ASSIGN:
		return token.STAR, true
	case token.SLASH_ASSIGN:
		return token.SLASH, true
	default:
		return token.ILLEGAL, false
	}
}

// parseAssignOrBinary parses a binary expression, then reinterprets it
// as an assignment if '=' or a compound-assignment operator follows:
// the left side must be a variable, a dereference, or an index, the
// only three lvalue forms. A compound form 'lvalue op= rhs' desugars to
// 'lvalue = lvalue op rhs' before building the assignment node, so only
// Assign/DerefAssign/IndexAssign ever reach hir.
func (p *Parser) parseAssignOrBinary() (hir.Expr, error) {
	left, err := p.parseBinary(0)
	if err != nil {
		return nil, err
	}

	if op, ok := compoundOp(p.cur.Type); ok {
		p.next()
		rhs, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return p.buildAssign(left, combineBinary(op, left, rhs))
	}

	if !p.curIs(token.ASSIGN) {
		return left, nil
	}
	p.next()
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return p.buildAssign(left, value)
}

func (p *Parser) buildAssign(left, value hir.Expr) (hir.Expr, error) {
	switch l := left.(type) {
	case *hir.Variable:
		return &hir.Assign{Name: l.Name, Value: value}, nil
	case *hir.Deref:
		return &hir.DerefAssign{Ptr: l.Ptr, Value: value}, nil
	case *hir.Index:
		return &hir.IndexAssign{Base: l.Base, Idx: l.Idx, Value: value}, nil
	default:
		return nil, p.errorf("invalid assignment target")
	}
}

func precedence(t token.Type) int {
	switch t {
	case token.OR:
		return 1
	case token.AND:
		return 2
	case token.EQ, token.NEQ:
		return 3
	case token.PLUS, token.MINUS:
		return 4
	case token.STAR, token.SLASH:
		return 5
	default:
		return 0
	}
}

func (p *Parser) parseBinary(minPrec int) (hir.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		prec := precedence(p.cur.Type)
		if prec == 0 || prec < minPrec {
			return left, nil
		}
		op := p.cur.Type
		p.next()
		right, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}
		left = combineBinary(op, left, right)
	}
}

func combineBinary(op token.Type, l, r hir.Expr) hir.Expr {
	switch op {
	case token.PLUS:
		return hir.Add(l, r)
	case token.MINUS:
		return hir.Sub(l, r)
	case token.STAR:
		return hir.Mul(l, r)
	case token.SLASH:
		return hir.Div(l, r)
	case token.AND:
		return hir.And(l, r)
	case token.OR:
		return hir.Or(l, r)
	case token.EQ:
		return hir.Eq(l, r)
	case token.NEQ:
		return hir.Neq(l, r)
	default:
		panic("parser: unreachable binary operator")
	}
}

func (p *Parser) parseUnary() (hir.Expr, error) {
	switch p.cur.Type {
	case token.BANG:
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &hir.UnaryNot{Operand: operand}, nil
	case token.STAR:
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &hir.Deref{Ptr: operand}, nil
	case token.AMP:
		p.next()
		return p.parseReferTarget()
	default:
		return p.parsePostfix()
	}
}

// parseReferTarget parses the operand of '&': a bare name, or a bare
// name immediately indexed. Taking the address of anything else (a
// call's result, an arbitrary expression) has no meaning, since there
// is no cell for it to live in.
func (p *Parser) parseReferTarget() (hir.Expr, error) {
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if p.curIs(token.LBRACKET) {
		p.next()
		idx, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RBRACKET); err != nil {
			return nil, err
		}
		return &hir.ReferIndex{Base: &hir.Variable{Name: nameTok.Lexeme}, Idx: idx}, nil
	}
	return &hir.Refer{Name: nameTok.Lexeme}, nil
}

func (p *Parser) parsePostfix() (hir.Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.curIs(token.LPAREN):
			p.next()
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RPAREN); err != nil {
				return nil, err
			}
			expr = &hir.Call{Callee: expr, Args: args}
		case p.curIs(token.LBRACKET):
			p.next()
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RBRACKET); err != nil {
				return nil, err
			}
			expr = &hir.Index{Base: expr, Idx: idx}
		case p.curIs(token.DOT):
			p.next()
			numTok, err := p.expect(token.INT)
			if err != nil {
				return nil, err
			}
			n, err := strconv.ParseUint(numTok.Lexeme, 10, 32)
			if err != nil {
				return nil, p.errorf("invalid tuple index %q", numTok.Lexeme)
			}
			expr = &hir.Nth{Base: expr, Index: uint32(n)}
		case p.curIs(token.INCREMENT):
			v, ok := expr.(*hir.Variable)
			if !ok {
				return nil, p.errorf("'++' may only follow a variable")
			}
			p.next()
			return &hir.Increment{Name: v.Name}, nil
		case p.curIs(token.DECREMENT):
			v, ok := expr.(*hir.Variable)
			if !ok {
				return nil, p.errorf("'--' may only follow a variable")
			}
			p.next()
			return &hir.Decrement{Name: v.Name}, nil
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parseArgs() ([]hir.Expr, error) {
	var args []hir.Expr
	if p.curIs(token.RPAREN) {
		return args, nil
	}
	for {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.curIs(token.COMMA) {
			p.next()
			continue
		}
		break
	}
	return args, nil
}

func (p *Parser) parsePrimary() (hir.Expr, error) {
	switch p.cur.Type {
	case token.INT:
		v, err := strconv.ParseInt(p.cur.Lexeme, 10, 64)
		if err != nil {
			return nil, p.errorf("invalid integer literal %q", p.cur.Lexeme)
		}
		p.next()
		return &hir.IntLit{Value: v}, nil
	case token.CHAR:
		r := []rune(p.cur.Lexeme)[0]
		p.next()
		return &hir.CharLit{Value: r}, nil
	case token.TRUE:
		p.next()
		return &hir.BoolLit{Value: true}, nil
	case token.FALSE:
		p.next()
		return &hir.BoolLit{Value: false}, nil
	case token.GETCHAR:
		p.next()
		if _, err := p.expect(token.LPAREN); err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return &hir.Getchar{}, nil
	case token.GETNUM:
		p.next()
		if _, err := p.expect(token.LPAREN); err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return &hir.Getnum{}, nil
	case token.PUTCHAR:
		return p.parseIOCall(func(arg hir.Expr) hir.Expr { return &hir.Putchar{Operand: arg} })
	case token.PUTNUM:
		return p.parseIOCall(func(arg hir.Expr) hir.Expr { return &hir.Putnum{Operand: arg} })
	case token.ALLOC:
		return p.parseAlloc()
	case token.FREE:
		p.next()
		if _, err := p.expect(token.LPAREN); err != nil {
			return nil, err
		}
		ptr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return &hir.FreeExpr{Ptr: ptr}, nil
	case token.LPAREN:
		return p.parseParenOrTuple()
	case token.IDENT:
		name := p.cur.Lexeme
		p.next()
		return &hir.Variable{Name: name}, nil
	default:
		return nil, p.errorf("unexpected token %s %q", p.cur.Type, p.cur.Lexeme)
	}
}

func (p *Parser) parseIOCall(wrap func(hir.Expr) hir.Expr) (hir.Expr, error) {
	p.next()
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	arg, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return wrap(arg), nil
}

func (p *Parser) parseAlloc() (hir.Expr, error) {
	p.next() // 'alloc'
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	count, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COMMA); err != nil {
		return nil, err
	}
	elemType, err := p.parseType()
	if err != nil {
		return nil, err
	}
	var inits []hir.Expr
	for p.curIs(token.COMMA) {
		p.next()
		init, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		inits = append(inits, init)
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return &hir.AllocExpr{Count: count, ElemType: elemType, Init: inits}, nil
}

func (p *Parser) parseParenOrTuple() (hir.Expr, error) {
	p.next() // '('
	if p.curIs(token.RPAREN) {
		p.next()
		return &hir.VoidLit{}, nil
	}
	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.curIs(token.COMMA) {
		elems := []hir.Expr{first}
		for p.curIs(token.COMMA) {
			p.next()
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return &hir.TupleExpr{Elements: elems}, nil
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return first, nil
}
