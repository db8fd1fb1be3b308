package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tapeforge/tapec/internal/token"
)

func TestLookupIdentClassifiesKeywords(t *testing.T) {
	cases := map[string]token.Type{
		"let":     token.LET,
		"fn":      token.FN,
		"if":      token.IF,
		"else":    token.ELSE,
		"while":   token.WHILE,
		"alloc":   token.ALLOC,
		"free":    token.FREE,
		"true":    token.TRUE,
		"false":   token.FALSE,
		"int":     token.INT_TYPE,
		"bool":    token.BOOL_TYPE,
		"char":    token.CHAR_TYPE,
		"void":    token.VOID_TYPE,
		"getchar": token.GETCHAR,
		"getnum":  token.GETNUM,
		"putchar": token.PUTCHAR,
		"putnum":  token.PUTNUM,
	}
	for ident, want := range cases {
		assert.Equal(t, want, token.LookupIdent(ident))
	}
}

func TestLookupIdentFallsBackToPlainIdent(t *testing.T) {
	assert.Equal(t, token.IDENT, token.LookupIdent("foobar"))
	assert.Equal(t, token.IDENT, token.LookupIdent("x"))
}

func TestTypeStringRoundTripsKeywords(t *testing.T) {
	assert.Equal(t, "let", token.LET.String())
	assert.Equal(t, "while", token.WHILE.String())
	assert.Equal(t, "EOF", token.EOF.String())
	assert.Equal(t, "identifier", token.IDENT.String())
	assert.Equal(t, "integer", token.INT.String())
	assert.Equal(t, "character", token.CHAR.String())
}
