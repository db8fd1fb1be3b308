package mir

import "github.com/tapeforge/tapec/internal/lir"

// DerefLoad pops an address off the stack and pushes the Size cells
// found there.
type DerefLoad struct{ Size uint32 }

func (op *DerefLoad) Assemble(scope MacroScope, p *lir.Program) error {
	ptr := tmp(5)
	popInto(p, ptr)
	return (&LoadFrom{Loc: Deref(ptr), Size: op.Size}).Assemble(scope, p)
}

// DerefStore expects Size cells of value followed by a 1-cell address on
// top of the stack, and stores the value at that address.
type DerefStore struct{ Size uint32 }

func (op *DerefStore) Assemble(scope MacroScope, p *lir.Program) error {
	ptr := tmp(5)
	popInto(p, ptr)
	return (&StoreAt{Loc: Deref(ptr), Size: op.Size}).Assemble(scope, p)
}

// StoreInitField expects a 1-cell base address followed directly by
// ValueSize value cells already pushed on top of it. It stores the value
// at base+FieldOffset and consumes only the value cells, leaving the
// base address where it was so a run of these can initialize successive
// elements of a freshly allocated block without losing the pointer.
type StoreInitField struct {
	ValueSize   uint32
	FieldOffset uint32
}

func (op *StoreInitField) Assemble(scope MacroScope, p *lir.Program) error {
	ptr := reg(3)
	scratch := tmp(4)
	ptrLoc := Offset(Deref(sp()), -(int32(op.ValueSize) + 1))
	CopyTo(p, ptrLoc, ptr, scratch)
	return (&StoreAt{Loc: Offset(Deref(ptr), int32(op.FieldOffset)), Size: op.ValueSize}).Assemble(scope, p)
}
