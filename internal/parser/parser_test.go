package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tapeforge/tapec/internal/hir"
	"github.com/tapeforge/tapec/internal/parser"
)

func mustParse(t *testing.T, src string) hir.Expr {
	t.Helper()
	expr, err := parser.ParseProgram(src)
	require.NoError(t, err)
	require.NotNil(t, expr)
	return expr
}

func TestParseLiterals(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"42", "42"},
		{"true", "true"},
		{"false", "false"},
		{"'x'", `'x'`},
		{"()", "()"},
	}
	for _, c := range cases {
		expr := mustParse(t, c.src)
		assert.Equal(t, c.want, expr.String())
	}
}

func TestParseLetAndArithmetic(t *testing.T) {
	expr := mustParse(t, "let x = 1 + 2 * 3 in x")
	let, ok := expr.(*hir.Let)
	require.True(t, ok)
	assert.Equal(t, "x", let.Name)

	add, ok := let.Value.(*hir.BinaryOp)
	require.True(t, ok)
	mul, ok := add.Right.(*hir.BinaryOp)
	require.True(t, ok, "multiplication should bind tighter than addition")
	_ = mul
}

func TestParseFunctionLitAndCall(t *testing.T) {
	expr := mustParse(t, "let add = fn(a: int, b: int) -> int do a + b end in add(1, 2)")
	let, ok := expr.(*hir.Let)
	require.True(t, ok)

	fn, ok := let.Value.(*hir.FunctionLit)
	require.True(t, ok)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "a", fn.Params[0].Name)
	assert.True(t, fn.Params[0].Type.Equal(hir.Int()))

	call, ok := let.Body.(*hir.Call)
	require.True(t, ok)
	require.Len(t, call.Args, 2)
}

func TestParseIfElseExpression(t *testing.T) {
	expr := mustParse(t, "if true do 1 end else do 2 end")
	ifElse, ok := expr.(*hir.IfElse)
	require.True(t, ok)
	_, ok = ifElse.Cond.(*hir.BoolLit)
	assert.True(t, ok)
}

func TestParseIfStatementWithoutElse(t *testing.T) {
	expr := mustParse(t, "if true do putnum(1) end")
	_, ok := expr.(*hir.If)
	assert.True(t, ok)
}

func TestParseWhileLoop(t *testing.T) {
	expr := mustParse(t, "while true do putnum(1) end")
	_, ok := expr.(*hir.While)
	assert.True(t, ok)
}

func TestParsePointerAndIndexForms(t *testing.T) {
	expr := mustParse(t, "let p = alloc(3, int, 1, 2, 3) in *p = 9")
	let, ok := expr.(*hir.Let)
	require.True(t, ok)

	alloc, ok := let.Value.(*hir.AllocExpr)
	require.True(t, ok)
	require.Len(t, alloc.Init, 3)

	assign, ok := let.Body.(*hir.DerefAssign)
	require.True(t, ok)
	_ = assign

	expr = mustParse(t, "let p = alloc(3, int) in p[1] = p[0]")
	let = expr.(*hir.Let)
	idxAssign, ok := let.Body.(*hir.IndexAssign)
	require.True(t, ok)
	_, ok = idxAssign.Value.(*hir.Index)
	assert.True(t, ok)
}

func TestParseReferAndReferIndex(t *testing.T) {
	expr := mustParse(t, "let x = 5 in &x")
	let := expr.(*hir.Let)
	refer, ok := let.Body.(*hir.Refer)
	require.True(t, ok)
	assert.Equal(t, "x", refer.Name)

	expr = mustParse(t, "let p = alloc(2, int) in &p[1]")
	let = expr.(*hir.Let)
	_, ok = let.Body.(*hir.ReferIndex)
	assert.True(t, ok)
}

func TestParseNthAndTuple(t *testing.T) {
	expr := mustParse(t, "let t = (1, true, 'c') in t.1")
	let := expr.(*hir.Let)
	tup, ok := let.Value.(*hir.TupleExpr)
	require.True(t, ok)
	require.Len(t, tup.Elements, 3)

	nth, ok := let.Body.(*hir.Nth)
	require.True(t, ok)
	assert.Equal(t, uint32(1), nth.Index)
}

func TestParseIncrementDecrement(t *testing.T) {
	expr := mustParse(t, "let x = 1 in x++")
	let := expr.(*hir.Let)
	_, ok := let.Body.(*hir.Increment)
	assert.True(t, ok)
}

func TestParseCompoundAssignmentDesugars(t *testing.T) {
	expr := mustParse(t, "let x = 1 in x += 2")
	let := expr.(*hir.Let)
	assign, ok := let.Body.(*hir.Assign)
	require.True(t, ok)
	assert.Equal(t, "x", assign.Name)
	bin, ok := assign.Value.(*hir.BinaryOp)
	require.True(t, ok)
	v, ok := bin.Left.(*hir.Variable)
	require.True(t, ok)
	assert.Equal(t, "x", v.Name)
}

func TestParseBlockKeepsEveryElement(t *testing.T) {
	expr := mustParse(t, "do 1; 2; 3 end")
	block, ok := expr.(*hir.Block)
	require.True(t, ok)
	require.Len(t, block.Exprs, 3)
}

func TestParseErrorHasLineInfo(t *testing.T) {
	_, err := parser.ParseProgram("let x = in x")
	require.Error(t, err)
	var parseErr *hir.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 1, parseErr.Line)
}

func TestParseTypeAnnotations(t *testing.T) {
	expr := mustParse(t, "let f = fn(p: &int, t: (int, bool)) -> void do () end in f")
	let := expr.(*hir.Let)
	fn := let.Value.(*hir.FunctionLit)
	require.Len(t, fn.Params, 2)
	assert.True(t, fn.Params[0].Type.Equal(hir.Pointer(hir.Int())))
	assert.True(t, fn.Params[1].Type.Equal(hir.Tuple(hir.Int(), hir.Bool())))
	assert.True(t, fn.RetType.Equal(hir.Void()))
}
