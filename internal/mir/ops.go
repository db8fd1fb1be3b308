// Package mir implements the stack-machine middle tier: a small set of
// Ops, addressed through Location, that assemble down into lir.Program.
package mir

import (
	"github.com/tapeforge/tapec/internal/config"
	"github.com/tapeforge/tapec/internal/lir"
)

// Op is one MIR instruction. Assemble appends the LIR ops implementing
// it to p, resolving any macro calls against scope.
type Op interface {
	Assemble(scope MacroScope, p *lir.Program) error
}

func sp() Location  { return Address(config.SP) }
func fp() Location  { return Address(config.FP) }
func tmp(n int) Location {
	switch n {
	case 0:
		return Address(config.TMP0)
	case 1:
		return Address(config.TMP1)
	case 2:
		return Address(config.TMP2)
	case 3:
		return Address(config.TMP3)
	case 4:
		return Address(config.TMP4)
	default:
		return Address(config.TMP5)
	}
}

// top is the next free stack cell: the cell whose absolute address is
// the value currently held in the SP register.
func top() Location { return Deref(sp()) }

// local is the k'th cell of the current stack frame: reached by
// dereferencing FP (an absolute address) and shifting by k.
func local(k uint32) Location { return Offset(Deref(fp()), int32(k)) }

// Do runs a fixed sequence of ops one after another.
type Do struct{ Ops []Op }

func (d *Do) Assemble(scope MacroScope, p *lir.Program) error {
	for _, op := range d.Ops {
		if err := op.Assemble(scope, p); err != nil {
			return err
		}
	}
	return nil
}

// PushLiteral pushes a single compile-time-known cell value.
type PushLiteral struct{ N uint32 }

func (op *PushLiteral) Assemble(scope MacroScope, p *lir.Program) error {
	top().Set(p, op.N)
	sp().Inc(p, 1)
	return nil
}

// Pop discards the top N cells of the stack without reading them.
type Pop struct{ N uint32 }

func (op *Pop) Assemble(scope MacroScope, p *lir.Program) error {
	if op.N == 0 {
		return nil
	}
	// Zero the discarded cells so the allocator's taken-cell bitmap (which
	// shares no state with the data stack) never sees stale values if this
	// region is later reused by Stalloc.
	sp().Dec(p, op.N)
	base := top()
	for i := uint32(0); i < op.N; i++ {
		Offset(base, int32(i)).Zero(p)
	}
	return nil
}

// LoadLocal pushes a copy of the Size cells at frame offset Offset.
type LoadLocal struct{ Offset, Size uint32 }

func (op *LoadLocal) Assemble(scope MacroScope, p *lir.Program) error {
	scratch := tmp(4)
	for i := uint32(0); i < op.Size; i++ {
		src := local(op.Offset + i)
		CopyTo(p, src, top(), scratch)
		sp().Inc(p, 1)
	}
	return nil
}

// StoreLocal pops Size cells off the stack into frame offset Offset, in
// the order they were pushed (field 0 first).
type StoreLocal struct{ Offset, Size uint32 }

func (op *StoreLocal) Assemble(scope MacroScope, p *lir.Program) error {
	sp().Dec(p, op.Size)
	base := top()
	for i := uint32(0); i < op.Size; i++ {
		MoveTo(p, Offset(base, int32(i)), local(op.Offset+i))
	}
	return nil
}

// LoadFrom pushes a copy of the Size cells at an arbitrary Location.
type LoadFrom struct {
	Loc  Location
	Size uint32
}

func (op *LoadFrom) Assemble(scope MacroScope, p *lir.Program) error {
	scratch := tmp(4)
	for i := uint32(0); i < op.Size; i++ {
		CopyTo(p, Offset(op.Loc, int32(i)), top(), scratch)
		sp().Inc(p, 1)
	}
	return nil
}

// StoreAt pops Size cells off the stack into an arbitrary Location.
type StoreAt struct {
	Loc  Location
	Size uint32
}

func (op *StoreAt) Assemble(scope MacroScope, p *lir.Program) error {
	sp().Dec(p, op.Size)
	base := top()
	for i := uint32(0); i < op.Size; i++ {
		MoveTo(p, Offset(base, int32(i)), Offset(op.Loc, int32(i)))
	}
	return nil
}

// Stalloc reserves N cells of raw, zeroed stack space without pushing a
// value, used for locals that are filled in field-by-field after the
// slot is reserved.
type Stalloc struct{ N uint32 }

func (op *Stalloc) Assemble(scope MacroScope, p *lir.Program) error {
	base := top()
	for i := uint32(0); i < op.N; i++ {
		Offset(base, int32(i)).Zero(p)
	}
	sp().Inc(p, op.N)
	return nil
}

// Stfree discards the top N cells of raw stack space (the dual of
// Stalloc). Unlike Pop it only moves SP and leaves the discarded cells'
// contents in place.
type Stfree struct{ N uint32 }

func (op *Stfree) Assemble(scope MacroScope, p *lir.Program) error {
	sp().Dec(p, op.N)
	return nil
}

// AddressOfLocal pushes the absolute tape address of frame offset
// Offset as an ordinary integer value, letting a pointer to a local be
// taken and stored like any other value.
type AddressOfLocal struct{ Offset uint32 }

func (op *AddressOfLocal) Assemble(scope MacroScope, p *lir.Program) error {
	addr := tmp(0)
	scratch := tmp(1)
	CopyTo(p, fp(), addr, scratch)
	addr.Inc(p, op.Offset)
	pushFrom(p, addr)
	return nil
}

// Duplicate non-destructively copies the top Size cells of the stack.
type Duplicate struct{ Size uint32 }

func (op *Duplicate) Assemble(scope MacroScope, p *lir.Program) error {
	scratch := tmp(4)
	for i := uint32(0); i < op.Size; i++ {
		// SP advances once per copied cell, so the next source cell is
		// always Size cells below it.
		src := Offset(top(), -int32(op.Size))
		CopyTo(p, src, top(), scratch)
		sp().Inc(p, 1)
	}
	return nil
}
