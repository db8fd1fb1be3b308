// Package parser implements a hand-written recursive-descent parser
// that turns a token stream into an internal/hir.Expr tree, in the same
// style as the rest of this compiler's tiers: no generated grammar, no
// parser-combinator library, just a Parser struct walking tokens.
package parser

import (
	"fmt"

	"github.com/tapeforge/tapec/internal/hir"
	"github.com/tapeforge/tapec/internal/lexer"
	"github.com/tapeforge/tapec/internal/token"
)

// Parser consumes a lexer's token stream one token of lookahead at a
// time and builds hir.Expr nodes directly; there is no separate
// untyped-AST stage.
type Parser struct {
	l *lexer.Lexer

	cur  token.Token
	peek token.Token
}

// New creates a Parser reading from src.
func New(src string) *Parser {
	p := &Parser{l: lexer.New(src)}
	p.next()
	p.next()
	return p
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) curIs(t token.Type) bool  { return p.cur.Type == t }
func (p *Parser) peekIs(t token.Type) bool { return p.peek.Type == t }

func (p *Parser) expect(t token.Type) (token.Token, error) {
	if !p.curIs(t) {
		return token.Token{}, p.errorf("expected %s, found %s %q", t, p.cur.Type, p.cur.Lexeme)
	}
	tok := p.cur
	p.next()
	return tok, nil
}

func (p *Parser) errorf(format string, args ...interface{}) error {
	return &hir.ParseError{Line: p.cur.Line, Col: p.cur.Col, Msg: fmt.Sprintf(format, args...)}
}

// ParseProgram parses the entire source as a single top-level
// expression; there is no separate statement list outside of do/end
// blocks and let-chains.
func ParseProgram(src string) (hir.Expr, error) {
	p := New(src)
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if !p.curIs(token.EOF) {
		return nil, p.errorf("unexpected trailing token %s %q", p.cur.Type, p.cur.Lexeme)
	}
	return expr, nil
}
