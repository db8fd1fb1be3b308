package mir

import "github.com/tapeforge/tapec/internal/lir"

// If runs Cond (which must push exactly one boolean cell), then runs
// Then at most once if that cell was nonzero. HIR's If always produces
// Void, so Then's own result, if any, is the caller's responsibility to
// discard.
type If struct {
	Cond Op
	Then Op
}

func (op *If) Assemble(scope MacroScope, p *lir.Program) error {
	if err := op.Cond.Assemble(scope, p); err != nil {
		return err
	}
	flag := tmp(0)
	popInto(p, flag)
	var innerErr error
	Repeat(p, flag, func(p *lir.Program) {
		flag.Zero(p)
		if innerErr == nil {
			innerErr = op.Then.Assemble(scope, p)
		}
	})
	return innerErr
}

// IfElse runs exactly one of Then or Else depending on Cond, each of
// which must push exactly Size cells, leaving those Size cells as the
// expression's result either way.
type IfElse struct {
	Cond, Then, Else Op
	Size             uint32
}

func (op *IfElse) Assemble(scope MacroScope, p *lir.Program) error {
	if err := op.Cond.Assemble(scope, p); err != nil {
		return err
	}
	if err := (&Duplicate{Size: 1}).Assemble(scope, p); err != nil {
		return err
	}
	if err := (&Not{}).Assemble(scope, p); err != nil {
		return err
	}
	elseFlag := tmp(2)
	popInto(p, elseFlag)
	thenFlag := tmp(1)
	popInto(p, thenFlag)

	var innerErr error
	Repeat(p, thenFlag, func(p *lir.Program) {
		thenFlag.Zero(p)
		if innerErr == nil {
			innerErr = op.Then.Assemble(scope, p)
		}
	})
	if innerErr != nil {
		return innerErr
	}
	Repeat(p, elseFlag, func(p *lir.Program) {
		elseFlag.Zero(p)
		if innerErr == nil {
			innerErr = op.Else.Assemble(scope, p)
		}
	})
	return innerErr
}

// While repeatedly runs Cond (pushing one boolean cell), popping it and
// running Body for as long as it was nonzero. Cond is evaluated once
// before the loop to seed the test, then again at the end of every
// iteration to decide whether to run again.
type While struct {
	Cond Op
	Body Op
}

func (op *While) Assemble(scope MacroScope, p *lir.Program) error {
	if err := op.Cond.Assemble(scope, p); err != nil {
		return err
	}
	flag := tmp(0)
	popInto(p, flag)

	var innerErr error
	Repeat(p, flag, func(p *lir.Program) {
		if innerErr != nil {
			return
		}
		if innerErr = op.Body.Assemble(scope, p); innerErr != nil {
			return
		}
		if innerErr = op.Cond.Assemble(scope, p); innerErr != nil {
			return
		}
		popInto(p, flag)
	})
	return innerErr
}
