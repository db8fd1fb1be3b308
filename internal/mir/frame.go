package mir

import "github.com/tapeforge/tapec/internal/lir"

// Frame wraps a function body in the call protocol: it expects the
// caller to have already reserved one cell for the saved frame pointer
// (via Stalloc{1}) immediately before pushing ArgSize cells of argument
// values. Frame then:
//
//  1. saves the caller's FP into that reserved cell,
//  2. points FP at the base of the freshly pushed arguments,
//  3. runs Body, which addresses args and further locals through FP,
//  4. spills Body's RetSize-cell result to a temporary heap block so it
//     survives the frame teardown,
//  5. rewinds SP past the arguments and the reserved cell,
//  6. restores the caller's FP from the reserved cell,
//  7. pushes the spilled result back onto the now-restored caller stack
//     and frees the temporary block.
//
// This mirrors a conventional stack-frame prologue/epilogue, expressed
// with the tape machine's indirect addressing instead of real registers.
type Frame struct {
	ArgSize uint32
	RetSize uint32
	Body    Op
}

func (op *Frame) Assemble(scope MacroScope, p *lir.Program) error {
	scratch := tmp(4)

	reservedSlot := Offset(Deref(sp()), -(int32(op.ArgSize) + 1))
	MoveTo(p, fp(), reservedSlot)

	CopyTo(p, sp(), fp(), scratch)
	fp().Dec(p, op.ArgSize)

	if err := op.Body.Assemble(scope, p); err != nil {
		return err
	}

	if op.RetSize == 0 {
		CopyTo(p, fp(), sp(), scratch)
		sp().Dec(p, 1)
		MoveTo(p, Deref(sp()), fp())
		return nil
	}

	ptr := reg(5)
	if err := allocStatic(scope, p, op.RetSize); err != nil {
		return err
	}
	popInto(p, ptr)

	for i := int32(op.RetSize) - 1; i >= 0; i-- {
		cell := tmp(0)
		popInto(p, cell)
		MoveTo(p, cell, Offset(Deref(ptr), i))
	}

	CopyTo(p, fp(), sp(), scratch)
	sp().Dec(p, 1)
	MoveTo(p, Deref(sp()), fp())

	for i := uint32(0); i < op.RetSize; i++ {
		MoveTo(p, Offset(Deref(ptr), int32(i)), top())
		sp().Inc(p, 1)
	}
	ptr.To(p)
	p.FreeOp()
	ptr.From(p)

	return nil
}
