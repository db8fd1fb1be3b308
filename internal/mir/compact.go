package mir

import "github.com/tapeforge/tapec/internal/lir"

// Compact removes Before cells sitting just beneath the top Size cells
// of the stack, keeping only those top Size cells. Used to project a
// single field out of a tuple value already pushed whole: the field's
// trailing siblings are popped first, then Compact discards its leading
// siblings without disturbing the field itself.
type Compact struct{ Before, Size uint32 }

func (op *Compact) Assemble(scope MacroScope, p *lir.Program) error {
	if op.Size == 0 {
		return (&Stfree{N: op.Before}).Assemble(scope, p)
	}

	ptr := reg(4)
	if err := allocStatic(scope, p, op.Size); err != nil {
		return err
	}
	popInto(p, ptr)

	for i := int32(op.Size) - 1; i >= 0; i-- {
		cell := tmp(0)
		popInto(p, cell)
		MoveTo(p, cell, Offset(Deref(ptr), i))
	}

	if err := (&Stfree{N: op.Before}).Assemble(scope, p); err != nil {
		return err
	}

	for i := uint32(0); i < op.Size; i++ {
		MoveTo(p, Offset(Deref(ptr), int32(i)), top())
		sp().Inc(p, 1)
	}
	ptr.To(p)
	p.FreeOp()
	ptr.From(p)
	return nil
}
