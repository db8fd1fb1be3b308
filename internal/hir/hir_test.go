package hir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tapeforge/tapec/internal/hir"
	"github.com/tapeforge/tapec/internal/mir"
	"github.com/tapeforge/tapec/internal/vm"
)

func lowerRoot(t *testing.T, expr hir.Expr) {
	t.Helper()
	var offset uint32
	_, err := expr.Lower(hir.NewTypeEnv(), hir.NewLowerEnv(), &offset)
	require.NoError(t, err)
}

// assembleRun lowers expr, assembles it into LIR, and actually executes
// it on the Go-native tape machine, so a test can assert on an exact
// printed result instead of only on a nil lowering error.
func assembleRun(t *testing.T, expr hir.Expr) vm.Result {
	t.Helper()
	var offset uint32
	op, err := expr.Lower(hir.NewTypeEnv(), hir.NewLowerEnv(), &offset)
	require.NoError(t, err)
	prog, err := mir.Assemble(op)
	require.NoError(t, err)
	res, err := vm.Run(prog, "", vm.Options{})
	require.NoError(t, err)
	return res
}

func TestLetBindsValueTypeIntoBody(t *testing.T) {
	expr := &hir.Let{
		Name:  "x",
		Value: &hir.IntLit{Value: 5},
		Body:  &hir.Variable{Name: "x"},
	}
	typ, err := expr.GetType(hir.NewTypeEnv())
	require.NoError(t, err)
	assert.True(t, typ.Equal(hir.Int()))
	lowerRoot(t, expr)
}

func TestLetRejectsNonLiteralFunctionBinding(t *testing.T) {
	fnVar := &hir.Let{
		Name:  "f",
		Value: &hir.FunctionLit{RetType: hir.Int(), Body: &hir.IntLit{Value: 1}},
		Body: &hir.Let{
			Name:  "g",
			Value: &hir.Variable{Name: "f"},
			Body:  &hir.Variable{Name: "g"},
		},
	}
	_, err := fnVar.GetType(hir.NewTypeEnv())
	require.Error(t, err)
	var bindErr *hir.NonLiteralFunctionBindingError
	require.ErrorAs(t, err, &bindErr)
	assert.Equal(t, "g", bindErr.Name)
}

func TestCallTypeChecksArgumentsAgainstCallee(t *testing.T) {
	expr := &hir.Let{
		Name: "add",
		Value: &hir.FunctionLit{
			Params:  []hir.Param{{Name: "a", Type: hir.Int()}, {Name: "b", Type: hir.Int()}},
			RetType: hir.Int(),
			Body:    hir.Add(&hir.Variable{Name: "a"}, &hir.Variable{Name: "b"}),
		},
		Body: &hir.Call{
			Callee: &hir.Variable{Name: "add"},
			Args:   []hir.Expr{&hir.IntLit{Value: 1}, &hir.IntLit{Value: 2}},
		},
	}
	typ, err := expr.GetType(hir.NewTypeEnv())
	require.NoError(t, err)
	assert.True(t, typ.Equal(hir.Int()))
	lowerRoot(t, expr)
}

func TestCallRejectsNonFunctionCallee(t *testing.T) {
	expr := &hir.Let{
		Name:  "x",
		Value: &hir.IntLit{Value: 1},
		Body:  &hir.Call{Callee: &hir.Variable{Name: "x"}, Args: nil},
	}
	_, err := expr.GetType(hir.NewTypeEnv())
	require.Error(t, err)
	var callErr *hir.CallNonFunctionError
	assert.ErrorAs(t, err, &callErr)
}

func TestIfElseRequiresBoolCondAndMatchingBranchTypes(t *testing.T) {
	expr := &hir.IfElse{
		Cond: &hir.BoolLit{Value: true},
		Then: &hir.IntLit{Value: 1},
		Else: &hir.IntLit{Value: 2},
	}
	typ, err := expr.GetType(hir.NewTypeEnv())
	require.NoError(t, err)
	assert.True(t, typ.Equal(hir.Int()))
	lowerRoot(t, expr)
}

func TestIfElseRejectsMismatchedBranchTypes(t *testing.T) {
	expr := &hir.IfElse{
		Cond: &hir.BoolLit{Value: true},
		Then: &hir.IntLit{Value: 1},
		Else: &hir.BoolLit{Value: false},
	}
	_, err := expr.GetType(hir.NewTypeEnv())
	require.Error(t, err)
	var mismatch *hir.MismatchedTypesError
	assert.ErrorAs(t, err, &mismatch)
}

func TestIfElseRejectsNonBoolCond(t *testing.T) {
	expr := &hir.IfElse{
		Cond: &hir.IntLit{Value: 1},
		Then: &hir.IntLit{Value: 1},
		Else: &hir.IntLit{Value: 2},
	}
	_, err := expr.GetType(hir.NewTypeEnv())
	require.Error(t, err)
	var mismatch *hir.MismatchedTypesError
	assert.ErrorAs(t, err, &mismatch)
}

func TestWhileRequiresBoolCondAndProducesVoid(t *testing.T) {
	expr := &hir.While{
		Cond: &hir.BoolLit{Value: true},
		Body: &hir.Putnum{Operand: &hir.IntLit{Value: 1}},
	}
	typ, err := expr.GetType(hir.NewTypeEnv())
	require.NoError(t, err)
	assert.True(t, typ.Equal(hir.Void()))
	lowerRoot(t, expr)
}

func TestAllocRequiresIntCountAndNonVoidElemType(t *testing.T) {
	expr := &hir.AllocExpr{
		Count:    &hir.IntLit{Value: 3},
		ElemType: hir.Int(),
		Init:     []hir.Expr{&hir.IntLit{Value: 1}, &hir.IntLit{Value: 2}, &hir.IntLit{Value: 3}},
	}
	typ, err := expr.GetType(hir.NewTypeEnv())
	require.NoError(t, err)
	assert.True(t, typ.Equal(hir.Pointer(hir.Int())))
	lowerRoot(t, expr)
}

func TestAllocRejectsVoidElemType(t *testing.T) {
	expr := &hir.AllocExpr{
		Count:    &hir.IntLit{Value: 1},
		ElemType: hir.Void(),
	}
	_, err := expr.GetType(hir.NewTypeEnv())
	require.Error(t, err)
	var voidErr *hir.AllocVoidError
	assert.ErrorAs(t, err, &voidErr)
}

func TestAllocRejectsMismatchedInitType(t *testing.T) {
	expr := &hir.AllocExpr{
		Count:    &hir.IntLit{Value: 1},
		ElemType: hir.Int(),
		Init:     []hir.Expr{&hir.BoolLit{Value: true}},
	}
	_, err := expr.GetType(hir.NewTypeEnv())
	assert.Error(t, err)
}

func TestVariableLookupFailsOnUnboundName(t *testing.T) {
	_, err := (&hir.Variable{Name: "nope"}).GetType(hir.NewTypeEnv())
	assert.Error(t, err)
}

// TestLetExecutesAndPrintsItsBoundValue checks a let binding all the
// way through execution, not just that lowering returns no error.
func TestLetExecutesAndPrintsItsBoundValue(t *testing.T) {
	expr := &hir.Let{
		Name:  "x",
		Value: &hir.IntLit{Value: 5},
		Body:  &hir.Putnum{Operand: &hir.Variable{Name: "x"}},
	}
	res := assembleRun(t, expr)
	assert.Equal(t, "5", res.Output)
}

// TestLetInsideWhileBodyRereadsFreshValueEachIteration regression-tests
// Let.Lower's frame-cell cleanup: a let nested directly inside a while
// loop's body is lowered once but executed once per iteration, so its
// binding must be compacted away (and the frame offset restored) after
// every pass, or later iterations push their fresh value above a stale
// leaked cell while the compiled variable reference keeps resolving to
// that first, now-outdated, cell.
func TestLetInsideWhileBodyRereadsFreshValueEachIteration(t *testing.T) {
	loopBody := &hir.Block{Exprs: []hir.Expr{
		&hir.Let{
			Name:  "y",
			Value: &hir.Variable{Name: "n"},
			Body:  &hir.Putnum{Operand: &hir.Variable{Name: "y"}},
		},
		&hir.Decrement{Name: "n"},
	}}
	expr := &hir.Let{
		Name:  "n",
		Value: &hir.IntLit{Value: 3},
		Body: &hir.While{
			Cond: hir.Neq(&hir.Variable{Name: "n"}, &hir.IntLit{Value: 0}),
			Body: loopBody,
		},
	}
	res := assembleRun(t, expr)
	assert.Equal(t, "321", res.Output)
}
