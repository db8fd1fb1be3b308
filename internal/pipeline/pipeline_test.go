package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tapeforge/tapec/internal/pipeline"
)

func TestSurfaceToLIRSucceedsOnValidProgram(t *testing.T) {
	ctx := pipeline.SurfaceToLIR().Run(&pipeline.PipelineContext{Source: "putnum(1 + 2)"})
	require.False(t, ctx.Failed(), "diagnostics: %v", ctx.Diagnostics)
	require.NotNil(t, ctx.Expr)
	require.NotNil(t, ctx.Op)
	require.NotNil(t, ctx.Result)
}

func TestSurfaceToLIRRecordsParseErrorAndStops(t *testing.T) {
	ctx := pipeline.SurfaceToLIR().Run(&pipeline.PipelineContext{Source: "let x = in x"})
	require.True(t, ctx.Failed())
	assert.Nil(t, ctx.Expr)
	assert.Nil(t, ctx.Op)
	assert.Nil(t, ctx.Result)
}

func TestSurfaceToLIRRecordsTypeErrorButKeepsParsedExpr(t *testing.T) {
	ctx := pipeline.SurfaceToLIR().Run(&pipeline.PipelineContext{Source: "1 + true"})
	require.True(t, ctx.Failed())
	assert.NotNil(t, ctx.Expr, "parsing should have succeeded even though type-checking failed")
	assert.Nil(t, ctx.Op, "lowering should decline to run once a prior stage failed")
	assert.Nil(t, ctx.Result)
}

// stubFailingStage always records a diagnostic without touching ctx
// fields, standing in for a stage whose prerequisite was never met.
type stubFailingStage struct{ msg string }

func (s stubFailingStage) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	ctx.Diagnostics = append(ctx.Diagnostics, assertErr(s.msg))
	return ctx
}

type assertErr string

func (e assertErr) Error() string { return string(e) }

// stubCountingStage records that it ran, regardless of ctx.Failed().
type stubCountingStage struct{ ran *int }

func (s stubCountingStage) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	*s.ran++
	return ctx
}

func TestPipelineRunsEveryStageEvenPastAFailure(t *testing.T) {
	var ran int
	p := pipeline.New(stubFailingStage{msg: "first stage fails"}, stubCountingStage{ran: &ran}, stubCountingStage{ran: &ran})
	ctx := p.Run(&pipeline.PipelineContext{Source: "whatever"})
	require.True(t, ctx.Failed())
	assert.Equal(t, 2, ran, "later stages must still run after an earlier one records a diagnostic")
	require.Len(t, ctx.Diagnostics, 1)
	assert.Equal(t, "first stage fails", ctx.Diagnostics[0].Error())
}
