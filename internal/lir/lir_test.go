package lir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tapeforge/tapec/internal/lir"
)

func TestGlyphKindMapping(t *testing.T) {
	cases := map[rune]lir.OpKind{
		'+': lir.Plus,
		'-': lir.Minus,
		'<': lir.Left,
		'>': lir.Right,
		'[': lir.Loop,
		']': lir.End,
		',': lir.Get,
		'.': lir.Put,
		'#': lir.Getnum,
		'$': lir.Putnum,
		'&': lir.Refer,
		'*': lir.DerefOp,
		'?': lir.Alloc,
		'!': lir.Free,
	}
	for glyph, want := range cases {
		kind, ok := lir.GlyphKind(glyph)
		require.True(t, ok, "glyph %q should be recognized", glyph)
		assert.Equal(t, want, kind)
	}

	_, ok := lir.GlyphKind('z')
	assert.False(t, ok)
}

func TestProgramBuilderProducesExpectedGlyphs(t *testing.T) {
	p := lir.New()
	p.Right(3)
	p.PlusHere(2)
	p.Left(1)
	p.MinusHere(1)
	p.BeginLoop()
	p.MinusHere(1)
	p.EndLoop()
	p.Refer()
	p.Deref()
	p.AllocOp()
	p.FreeOp()
	p.PutOp()
	p.PutnumOp()
	p.GetOp()
	p.GetnumOp()

	assert.Equal(t, ">>>++<-[-]&*?!.$,#", p.Assemble())
}

func TestProgramZeroHereEmitsClearLoop(t *testing.T) {
	p := lir.New()
	p.ZeroHere()
	assert.Equal(t, "[-]", p.Assemble())
}

func TestProgramShiftDirection(t *testing.T) {
	p := lir.New()
	p.Shift(4)
	p.Shift(-2)
	p.Shift(0)
	assert.Equal(t, ">>>><<", p.Assemble())
}

func TestProgramAppend(t *testing.T) {
	a := lir.New()
	a.PlusHere(1)
	b := lir.New()
	b.MinusHere(1)
	a.Append(b)
	assert.Equal(t, "+-", a.Assemble())
}

func TestParseStringRoundTrip(t *testing.T) {
	src := ">>>++<-[-]&*?!.$,#"
	prog := lir.Parse(src)
	assert.Equal(t, src, prog.String())
}

func TestParsePreservesUnknownCharsAsComments(t *testing.T) {
	prog := lir.Parse("+x-")
	require.Len(t, prog.Ops, 3)
	assert.Equal(t, lir.Plus, prog.Ops[0].Kind)
	assert.Equal(t, lir.Comment, prog.Ops[1].Kind)
	assert.Equal(t, 'x', prog.Ops[1].Ch)
	assert.Equal(t, lir.Minus, prog.Ops[2].Kind)
	assert.Equal(t, "+x-", prog.String())
}

func TestCommentDoesNotAffectGlyphOutputSemantics(t *testing.T) {
	p := lir.New()
	p.Comment("a note")
	p.PlusHere(1)
	out := p.Assemble()
	assert.Contains(t, out, "a note")
	assert.Contains(t, out, "+")
}
