package parser

import (
	"github.com/tapeforge/tapec/internal/hir"
	"github.com/tapeforge/tapec/internal/token"
)

// parseType parses a type annotation: int, bool, char, void, &T (pointer),
// (T, T, ...) (tuple), or (T, T, ...) -> T (function type).
func (p *Parser) parseType() (hir.Type, error) {
	switch p.cur.Type {
	case token.INT_TYPE:
		p.next()
		return hir.Int(), nil
	case token.BOOL_TYPE:
		p.next()
		return hir.Bool(), nil
	case token.CHAR_TYPE:
		p.next()
		return hir.Char(), nil
	case token.VOID_TYPE:
		p.next()
		return hir.Void(), nil
	case token.AMP:
		p.next()
		inner, err := p.parseType()
		if err != nil {
			return hir.Type{}, err
		}
		return hir.Pointer(inner), nil
	case token.LPAREN:
		return p.parseTupleOrFunctionType()
	default:
		return hir.Type{}, p.errorf("expected a type, found %s %q", p.cur.Type, p.cur.Lexeme)
	}
}

func (p *Parser) parseTupleOrFunctionType() (hir.Type, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return hir.Type{}, err
	}
	var elems []hir.Type
	if !p.curIs(token.RPAREN) {
		for {
			t, err := p.parseType()
			if err != nil {
				return hir.Type{}, err
			}
			elems = append(elems, t)
			if p.curIs(token.COMMA) {
				p.next()
				continue
			}
			break
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return hir.Type{}, err
	}
	if p.curIs(token.ARROW) {
		p.next()
		ret, err := p.parseType()
		if err != nil {
			return hir.Type{}, err
		}
		return hir.Function(elems, ret), nil
	}
	return hir.Tuple(elems...), nil
}
