package mir

import (
	"github.com/tapeforge/tapec/internal/config"
	"github.com/tapeforge/tapec/internal/lir"
)

func popInto(p *lir.Program, dst Location) {
	sp().Dec(p, 1)
	MoveTo(p, top(), dst)
}

func pushFrom(p *lir.Program, src Location) {
	MoveTo(p, src, top())
	sp().Inc(p, 1)
}

// reg addresses one of the six general registers R0..R5 for use as
// scratch space local to a single Op's Assemble call.
func reg(n int) Location { return Address(uint32(config.R0) + uint32(n)) }

// binaryPop pops the right operand (pushed last, so on top) into b, then
// the left operand into a: Add.Assemble and friends all compute a OP b.
// Both cells are throwaway copies already off the data stack, so ops are
// free to destroy them while computing a result.
func binaryPop(p *lir.Program) (a, b Location) {
	b = tmp(1)
	a = tmp(0)
	popInto(p, b)
	popInto(p, a)
	return
}

// nonZeroFlag sets flag to 1 if src is nonzero, 0 otherwise, without
// disturbing src: src is copied into scratch first, then the copy is
// drained in a single one-shot pass.
func nonZeroFlag(p *lir.Program, src, flag Location) {
	flag.Zero(p)
	copyCell := tmp(5)
	scratch := reg(3)
	CopyTo(p, src, copyCell, scratch)
	Repeat(p, copyCell, func(p *lir.Program) {
		copyCell.Zero(p)
		flag.Set(p, 1)
	})
}

// Add pops two cells b, a (in that push order) and pushes a+b.
type Add struct{}

func (op *Add) Assemble(scope MacroScope, p *lir.Program) error {
	a, b := binaryPop(p)
	AddInto(p, b, a)
	pushFrom(p, a)
	return nil
}

// Sub pops two cells b, a and pushes a-b.
type Sub struct{}

func (op *Sub) Assemble(scope MacroScope, p *lir.Program) error {
	a, b := binaryPop(p)
	SubInto(p, b, a)
	pushFrom(p, a)
	return nil
}

// Mul pops two cells b, a and pushes a*b, by repeated addition of a
// counted down by b.
type Mul struct{}

func (op *Mul) Assemble(scope MacroScope, p *lir.Program) error {
	a, b := binaryPop(p)
	result := tmp(3)
	scratch := tmp(4)
	result.Zero(p)
	Repeat(p, b, func(p *lir.Program) {
		AddCopyInto(p, a, result, scratch)
		b.Dec(p, 1)
	})
	pushFrom(p, result)
	return nil
}

// Div pops two cells b (denominator), a (numerator) and pushes the
// integer quotient a/b. It counts the numerator down to zero one unit at
// a time, bumping a remainder and rolling it back to zero (incrementing
// the quotient) each time the remainder reaches the denominator — the
// counting form of long division, needing only an equality test rather
// than unbounded-magnitude subtraction.
type Div struct{}

func (op *Div) Assemble(scope MacroScope, p *lir.Program) error {
	a, b := binaryPop(p)
	quotient := tmp(2)
	remainder := tmp(3)
	numCounter := tmp(5)
	quotient.Zero(p)
	remainder.Zero(p)
	MoveTo(p, a, numCounter)

	eqFlag := tmp(4)
	Repeat(p, numCounter, func(p *lir.Program) {
		numCounter.Dec(p, 1)
		remainder.Inc(p, 1)
		isEqualBounded(p, remainder, b, eqFlag)
		Repeat(p, eqFlag, func(p *lir.Program) {
			eqFlag.Zero(p)
			remainder.Zero(p)
			quotient.Inc(p, 1)
		})
	})
	pushFrom(p, quotient)
	return nil
}

// isEqualBounded sets flag to 1 if x == y and 0 otherwise, without
// disturbing x or y. Callers must guarantee x <= y: the comparison works
// by draining a copy of x against a copy of y in lockstep and checking
// whether the copy of y has anything left over, which only correctly
// detects equality (rather than wrapping) when x never exceeds y.
func isEqualBounded(p *lir.Program, x, y, flag Location) {
	cx := reg(0)
	cy := reg(1)
	scratch := reg(2)
	CopyTo(p, x, cx, scratch)
	CopyTo(p, y, cy, scratch)
	flag.Set(p, 1)
	Repeat(p, cx, func(p *lir.Program) {
		cx.Dec(p, 1)
		cy.Dec(p, 1)
	})
	Repeat(p, cy, func(p *lir.Program) {
		cy.Zero(p)
		flag.Zero(p)
	})
}

// Not pops a boolean cell and pushes its logical negation.
type Not struct{}

func (op *Not) Assemble(scope MacroScope, p *lir.Program) error {
	v := tmp(0)
	popInto(p, v)
	nz := tmp(1)
	nonZeroFlag(p, v, nz)
	notFlag := tmp(2)
	notFlag.Set(p, 1)
	Repeat(p, nz, func(p *lir.Program) {
		nz.Zero(p)
		notFlag.Zero(p)
	})
	pushFrom(p, notFlag)
	return nil
}

// And pops two boolean cells and pushes their logical conjunction.
type And struct{}

func (op *And) Assemble(scope MacroScope, p *lir.Program) error {
	a, b := binaryPop(p)
	naz := tmp(2)
	nonZeroFlag(p, a, naz)
	nbz := tmp(3)
	nonZeroFlag(p, b, nbz)
	flag := tmp(4)
	flag.Zero(p)
	Repeat(p, naz, func(p *lir.Program) {
		naz.Zero(p)
		Repeat(p, nbz, func(p *lir.Program) {
			nbz.Zero(p)
			flag.Set(p, 1)
		})
	})
	pushFrom(p, flag)
	return nil
}

// Or pops two boolean cells and pushes their logical disjunction.
type Or struct{}

func (op *Or) Assemble(scope MacroScope, p *lir.Program) error {
	a, b := binaryPop(p)
	naz := tmp(2)
	nonZeroFlag(p, a, naz)
	nbz := tmp(3)
	nonZeroFlag(p, b, nbz)
	flag := tmp(4)
	flag.Zero(p)
	Repeat(p, naz, func(p *lir.Program) {
		naz.Zero(p)
		flag.Set(p, 1)
	})
	Repeat(p, nbz, func(p *lir.Program) {
		nbz.Zero(p)
		flag.Set(p, 1)
	})
	pushFrom(p, flag)
	return nil
}

// Eq pops two cells b, a and pushes 1 if a == b else 0. a and b are
// drained in lockstep: whichever runs out first while the other still
// has units left decides inequality.
type Eq struct{}

func (op *Eq) Assemble(scope MacroScope, p *lir.Program) error {
	a, b := binaryPop(p)
	eq := tmp(2)
	eq.Set(p, 1)

	Repeat(p, a, func(p *lir.Program) {
		a.Dec(p, 1)
		bnz := tmp(3)
		nonZeroFlag(p, b, bnz)
		bnzCopy := tmp(4)
		scratch := reg(3)
		CopyTo(p, bnz, bnzCopy, scratch)
		Repeat(p, bnz, func(p *lir.Program) {
			bnz.Zero(p)
			b.Dec(p, 1)
		})
		notBnz := tmp(5)
		notBnz.Set(p, 1)
		Repeat(p, bnzCopy, func(p *lir.Program) {
			bnzCopy.Zero(p)
			notBnz.Zero(p)
		})
		Repeat(p, notBnz, func(p *lir.Program) {
			notBnz.Zero(p)
			eq.Zero(p)
		})
	})

	bLeftover := tmp(3)
	nonZeroFlag(p, b, bLeftover)
	Repeat(p, bLeftover, func(p *lir.Program) {
		bLeftover.Zero(p)
		eq.Zero(p)
	})

	pushFrom(p, eq)
	return nil
}

// Neq pops two cells b, a and pushes 1 if a != b else 0.
type Neq struct{}

func (op *Neq) Assemble(scope MacroScope, p *lir.Program) error {
	if err := (&Eq{}).Assemble(scope, p); err != nil {
		return err
	}
	return (&Not{}).Assemble(scope, p)
}

// Increment/Decrement adjust a frame-local cell by 1 in place.
type Increment struct{ Offset uint32 }

func (op *Increment) Assemble(scope MacroScope, p *lir.Program) error {
	local(op.Offset).Inc(p, 1)
	return nil
}

type Decrement struct{ Offset uint32 }

func (op *Decrement) Assemble(scope MacroScope, p *lir.Program) error {
	local(op.Offset).Dec(p, 1)
	return nil
}
