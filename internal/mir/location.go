package mir

import "github.com/tapeforge/tapec/internal/lir"

// Location describes where on the tape a value lives, relative to the
// current cursor position at cell 0.
//
// Address is an absolute cell index. Offset shifts a location by a
// constant (the frame pointer plus a local's slot, typically). Deref
// treats the cell at a location as itself holding the address of the
// real target — used for values reached through a pointer.
type Location struct {
	Kind    LocationKind
	Addr    uint32
	Base    *Location
	Delta   int32
}

type LocationKind int

const (
	LocAddress LocationKind = iota
	LocOffset
	LocDeref
)

func Address(addr uint32) Location { return Location{Kind: LocAddress, Addr: addr} }
func Offset(base Location, delta int32) Location {
	return Location{Kind: LocOffset, Base: &base, Delta: delta}
}
func Deref(base Location) Location {
	return Location{Kind: LocDeref, Base: &base}
}

// To emits glyphs that move the cursor from cell 0 to this location.
// From emits the glyphs that move it back to cell 0. Every assembler
// routine that uses To must eventually call the matching From: the
// cursor must always come to rest back at cell 0 between ops.
func (l Location) To(p *lir.Program) {
	switch l.Kind {
	case LocAddress:
		p.Right(l.Addr)
	case LocOffset:
		l.Base.To(p)
		p.Shift(l.Delta)
	case LocDeref:
		l.Base.To(p)
		p.Refer()
	}
}

func (l Location) From(p *lir.Program) {
	switch l.Kind {
	case LocAddress:
		p.Left(l.Addr)
	case LocOffset:
		p.Shift(-l.Delta)
		l.Base.From(p)
	case LocDeref:
		p.Deref()
		l.Base.From(p)
	}
}

// Zero clears the cell at l to 0 (the runtime's taken-cells bitmap and
// every arithmetic routine assumes a cell is zeroed before being reused).
func (l Location) Zero(p *lir.Program) {
	l.To(p)
	p.ZeroHere()
	l.From(p)
}

// Inc/Dec adjust the cell at l by a literal delta in place.
func (l Location) Inc(p *lir.Program, n uint32) {
	l.To(p)
	p.PlusHere(n)
	l.From(p)
}

func (l Location) Dec(p *lir.Program, n uint32) {
	l.To(p)
	p.MinusHere(n)
	l.From(p)
}

// Set zeroes the cell at l then increments it to n.
func (l Location) Set(p *lir.Program, n uint32) {
	l.Zero(p)
	l.Inc(p, n)
}

// AddInto destructively drains src into dst, adding src's value onto
// whatever dst already held. src ends at 0.
func AddInto(p *lir.Program, src, dst Location) {
	src.To(p)
	p.BeginLoop()
	p.MinusHere(1)
	src.From(p)

	dst.To(p)
	p.PlusHere(1)
	dst.From(p)

	src.To(p)
	p.EndLoop()
	src.From(p)
}

// SubInto destructively drains src into dst, subtracting src's value
// from whatever dst already held. src ends at 0.
func SubInto(p *lir.Program, src, dst Location) {
	src.To(p)
	p.BeginLoop()
	p.MinusHere(1)
	src.From(p)

	dst.To(p)
	p.MinusHere(1)
	dst.From(p)

	src.To(p)
	p.EndLoop()
	src.From(p)
}

// MoveTo drains src into dst destructively: dst is zeroed first, then
// src's value is added in and src ends at 0.
func MoveTo(p *lir.Program, src, dst Location) {
	dst.Zero(p)
	AddInto(p, src, dst)
}

// AddCopyInto adds src's value onto dst while leaving src unchanged: src
// is drained into both dst and scratch in a single loop, then scratch is
// drained back into src.
func AddCopyInto(p *lir.Program, src, dst, scratch Location) {
	scratch.Zero(p)

	src.To(p)
	p.BeginLoop()
	p.MinusHere(1)
	src.From(p)

	dst.To(p)
	p.PlusHere(1)
	dst.From(p)

	scratch.To(p)
	p.PlusHere(1)
	scratch.From(p)

	src.To(p)
	p.EndLoop()
	src.From(p)

	AddInto(p, scratch, src)
}

// CopyTo copies the cell at src into dst, leaving src's original value
// intact. The standard Brainfuck "copy cell" idiom: zero dst, then add a
// preserving copy of src onto it.
func CopyTo(p *lir.Program, src, dst, scratch Location) {
	dst.Zero(p)
	AddCopyInto(p, src, dst, scratch)
}

// Repeat emits a loop that runs body once per unit currently held in
// counter, decrementing counter to 0 by the end (the standard BF
// while-nonzero loop, open and closed at the counter cell itself).
func Repeat(p *lir.Program, counter Location, body func(p *lir.Program)) {
	counter.To(p)
	p.BeginLoop()
	counter.From(p)

	body(p)

	counter.To(p)
	p.EndLoop()
	counter.From(p)
}
