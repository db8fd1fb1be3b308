package hir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tapeforge/tapec/internal/hir"
)

func TestTypeSize(t *testing.T) {
	cases := []struct {
		name string
		typ  hir.Type
		want uint32
	}{
		{"int", hir.Int(), 1},
		{"bool", hir.Bool(), 1},
		{"char", hir.Char(), 1},
		{"void", hir.Void(), 0},
		{"pointer", hir.Pointer(hir.Int()), 1},
		{"empty tuple", hir.Tuple(), 0},
		{"tuple", hir.Tuple(hir.Int(), hir.Bool(), hir.Char()), 3},
		{"nested tuple", hir.Tuple(hir.Tuple(hir.Int(), hir.Int()), hir.Bool()), 3},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := c.typ.Size()
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestTypeSizeOfFunctionErrors(t *testing.T) {
	_, err := hir.Function([]hir.Type{hir.Int()}, hir.Int()).Size()
	require.Error(t, err)
	var sizeErr *hir.SizeOfFunctionError
	assert.ErrorAs(t, err, &sizeErr)
}

func TestTypeNth(t *testing.T) {
	tup := hir.Tuple(hir.Int(), hir.Bool(), hir.Char())

	elem, offset, ok := tup.Nth(0)
	require.True(t, ok)
	assert.True(t, elem.Equal(hir.Int()))
	assert.Equal(t, uint32(0), offset)

	elem, offset, ok = tup.Nth(2)
	require.True(t, ok)
	assert.True(t, elem.Equal(hir.Char()))
	assert.Equal(t, uint32(2), offset)

	_, _, ok = tup.Nth(3)
	assert.False(t, ok)
}

func TestTypeEqual(t *testing.T) {
	assert.True(t, hir.Pointer(hir.Int()).Equal(hir.Pointer(hir.Int())))
	assert.False(t, hir.Pointer(hir.Int()).Equal(hir.Pointer(hir.Bool())))
	assert.True(t, hir.Tuple(hir.Int(), hir.Bool()).Equal(hir.Tuple(hir.Int(), hir.Bool())))
	assert.False(t, hir.Tuple(hir.Int()).Equal(hir.Tuple(hir.Int(), hir.Int())))
	fn1 := hir.Function([]hir.Type{hir.Int()}, hir.Bool())
	fn2 := hir.Function([]hir.Type{hir.Int()}, hir.Bool())
	assert.True(t, fn1.Equal(fn2))
}

func TestTypeIsFunctionIsPointer(t *testing.T) {
	assert.True(t, hir.Function(nil, hir.Void()).IsFunction())
	assert.False(t, hir.Int().IsFunction())
	assert.True(t, hir.Pointer(hir.Int()).IsPointer())
	assert.False(t, hir.Int().IsPointer())
}
