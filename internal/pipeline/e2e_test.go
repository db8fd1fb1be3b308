package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tapeforge/tapec/internal/hir"
	"github.com/tapeforge/tapec/internal/pipeline"
	"github.com/tapeforge/tapec/internal/vm"
)

// compileAndRun drives a program through the whole surface-to-LIR
// pipeline and then executes the result with the Go-native tape
// machine, so a test can assert on exactly what a compiled program
// prints rather than merely that it compiled.
func compileAndRun(t *testing.T, src string) vm.Result {
	t.Helper()
	ctx := pipeline.SurfaceToLIR().Run(&pipeline.PipelineContext{Source: src})
	require.False(t, ctx.Failed(), "diagnostics: %v", ctx.Diagnostics)
	require.NotNil(t, ctx.Result)
	res, err := vm.Run(ctx.Result, "", vm.Options{})
	require.NoError(t, err)
	return res
}

// TestScenarioS1LetAndPutnum covers spec S1: a let-bound integer printed
// back out.
func TestScenarioS1LetAndPutnum(t *testing.T) {
	res := compileAndRun(t, "let x = 5 in putnum(x)")
	assert.Equal(t, "5", res.Output)
}

// TestScenarioS2FactorialViaLetBoundFunction covers spec S2: an
// iterative factorial, exercising Call/Frame, While, and a let whose
// binding survives a loop running entirely within its own body.
func TestScenarioS2FactorialViaLetBoundFunction(t *testing.T) {
	src := "let fact = fn(n: int) -> int do let acc = 1 in do while n != 0 do acc = acc * n; n-- end; acc end end in putnum(fact(5))"
	res := compileAndRun(t, src)
	assert.Equal(t, "120", res.Output)
}

// TestScenarioS3PointerAllocIndexFree covers spec S3: alloc with
// initializers, indexing, and a matching free leaving nothing unfreed.
func TestScenarioS3PointerAllocIndexFree(t *testing.T) {
	src := "let p = alloc(3, int, 7, 8, 9) in do putnum(p[0]); putnum(p[1]); putnum(p[2]); free(p) end"
	res := compileAndRun(t, src)
	assert.Equal(t, "789", res.Output)
	assert.Equal(t, 0, res.Unfreed, "every alloc was paired with a free")
}

// TestScenarioS4TupleFieldAccess covers spec S4: projecting both fields
// of a heterogeneous tuple.
func TestScenarioS4TupleFieldAccess(t *testing.T) {
	src := "let t = (42, 'Z') in do putnum(t.0); putchar(t.1) end"
	res := compileAndRun(t, src)
	assert.Equal(t, "42Z", res.Output)
}

// TestScenarioS5TypeErrorDetection covers spec S5's intent: a condition
// of the wrong type is rejected with MismatchedTypesError rather than
// silently compiling. This grammar infers a let's type from its value
// rather than carrying an explicit annotation, so the mismatch is
// exercised on While's condition instead of an annotated let.
func TestScenarioS5TypeErrorDetection(t *testing.T) {
	ctx := pipeline.SurfaceToLIR().Run(&pipeline.PipelineContext{Source: "while 1 do () end"})
	require.True(t, ctx.Failed())
	require.Len(t, ctx.Diagnostics, 1)
	var mismatch *hir.MismatchedTypesError
	require.ErrorAs(t, ctx.Diagnostics[0], &mismatch)
	assert.True(t, mismatch.Expected.Equal(hir.Bool()))
	assert.True(t, mismatch.Found.Equal(hir.Int()))
}

// TestScenarioS6FreeVariableRejectedAcrossFunctionBoundary covers spec
// S6: a function literal's body must not see a value binding from its
// enclosing scope, even though the same name is visible to sibling code
// outside the function.
func TestScenarioS6FreeVariableRejectedAcrossFunctionBoundary(t *testing.T) {
	src := "let y = 3 in let f = fn() -> int y in putnum(f())"
	ctx := pipeline.SurfaceToLIR().Run(&pipeline.PipelineContext{Source: src})
	require.True(t, ctx.Failed())
	require.Len(t, ctx.Diagnostics, 1)
	var notInScope *hir.VariableNotInScopeError
	require.ErrorAs(t, ctx.Diagnostics[0], &notInScope)
	assert.Equal(t, "y", notInScope.Name)
}

// TestLetInsideWhileLoopBodyReusesItsOwnCellsEachIteration is a
// regression test for the let-binding cleanup fix: a let nested
// directly inside a while loop's body runs many times within one
// static lowering of that body, so its bound value must be freshly
// read each iteration rather than resolving to the first iteration's
// now-stale frame cell.
func TestLetInsideWhileLoopBodyReusesItsOwnCellsEachIteration(t *testing.T) {
	src := "let n = 3 in while n != 0 do let y = n * 2 in putnum(y); n-- end"
	res := compileAndRun(t, src)
	assert.Equal(t, "642", res.Output)
}

// TestLetBindingDoesNotLeakFrameCellsAcrossSiblingLets checks that two
// sibling lets at the same nesting level end up addressing the same
// underlying frame cells, which only holds if each let compacts its own
// binding away before the next one is lowered.
func TestLetBindingDoesNotLeakFrameCellsAcrossSiblingLets(t *testing.T) {
	src := "do let a = 1 in putnum(a); let b = 2 in putnum(b) end"
	res := compileAndRun(t, src)
	assert.Equal(t, "12", res.Output)
}
