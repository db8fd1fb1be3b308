// Package pipeline sequences the compiler's tiers — parse, type-check,
// lower, assemble — as a list of Processor stages run over a shared
// PipelineContext, so internal/cli's modes are built by slicing and
// ordering stages rather than hand-chaining function calls.
package pipeline

import (
	"github.com/tapeforge/tapec/internal/hir"
	"github.com/tapeforge/tapec/internal/lir"
	"github.com/tapeforge/tapec/internal/mir"
	"github.com/tapeforge/tapec/internal/parser"
)

// PipelineContext carries one compile invocation's state as it passes
// through stages: each stage reads what earlier stages produced and
// fills in its own field, or appends to Diagnostics if it cannot
// proceed.
type PipelineContext struct {
	Source string

	Expr   hir.Expr
	Type   hir.Type
	Op     mir.Op
	Result *lir.Program

	Diagnostics []error
}

// Failed reports whether any stage so far has recorded a diagnostic.
func (c *PipelineContext) Failed() bool { return len(c.Diagnostics) > 0 }

func (c *PipelineContext) fail(err error) *PipelineContext {
	c.Diagnostics = append(c.Diagnostics, err)
	return c
}

// Processor is one pipeline stage.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes every stage in order, even past one that records a
// diagnostic: each stage guards its own prerequisite (a parsed Expr, a
// checked Type) and simply declines to run if it is missing, so a
// caller inspecting ctx.Diagnostics afterward sees every stage that
// *could* independently report a problem, not just the first.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
	}
	return ctx
}

// ParseStage turns ctx.Source into ctx.Expr.
type ParseStage struct{}

func (ParseStage) Process(ctx *PipelineContext) *PipelineContext {
	expr, err := parser.ParseProgram(ctx.Source)
	if err != nil {
		return ctx.fail(err)
	}
	ctx.Expr = expr
	return ctx
}

// TypeCheckStage type-checks ctx.Expr, filling ctx.Type. It declines to
// run if parsing never produced a tree.
type TypeCheckStage struct{}

func (TypeCheckStage) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Expr == nil {
		return ctx
	}
	t, err := ctx.Expr.GetType(hir.NewTypeEnv())
	if err != nil {
		return ctx.fail(err)
	}
	ctx.Type = t
	return ctx
}

// LowerStage lowers ctx.Expr into ctx.Op. It declines to run if
// type-checking never ran or failed.
type LowerStage struct{}

func (LowerStage) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Expr == nil || ctx.Failed() {
		return ctx
	}
	var offset uint32
	op, err := ctx.Expr.Lower(hir.NewTypeEnv(), hir.NewLowerEnv(), &offset)
	if err != nil {
		return ctx.fail(&hir.LowerError{Err: err})
	}
	ctx.Op = op
	return ctx
}

// AssembleStage assembles ctx.Op into ctx.Result. It declines to run if
// lowering never produced an Op.
type AssembleStage struct{}

func (AssembleStage) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Op == nil {
		return ctx
	}
	prog, err := mir.Assemble(ctx.Op)
	if err != nil {
		return ctx.fail(err)
	}
	ctx.Result = prog
	return ctx
}

// SurfaceToLIR is the standard parse/type-check/lower/assemble sequence
// shared by every surface-syntax-entry CLI mode.
func SurfaceToLIR() *Pipeline {
	return New(ParseStage{}, TypeCheckStage{}, LowerStage{}, AssembleStage{})
}
