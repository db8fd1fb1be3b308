package lir

import "strings"

// Program is an ordered list of LIR ops, the unit the assembler emits
// and the C backend consumes.
type Program struct {
	Ops []Op
}

func New() *Program { return &Program{} }

func (p *Program) Comment(c string) {
	p.Ops = append(p.Ops, Op{Kind: Comment, Ch: '\n'})
	for _, ch := range c {
		p.Ops = append(p.Ops, Op{Kind: Comment, Ch: ch})
	}
	p.Ops = append(p.Ops, Op{Kind: Comment, Ch: '\n'})
}

func (p *Program) PlusHere(n uint32) {
	if n > 0 {
		p.Ops = append(p.Ops, Op{Kind: Plus, N: n})
	}
}

func (p *Program) MinusHere(n uint32) {
	if n > 0 {
		p.Ops = append(p.Ops, Op{Kind: Minus, N: n})
	}
}

// ZeroHere clears the current cell with a `[-]` loop.
func (p *Program) ZeroHere() {
	p.BeginLoop()
	p.MinusHere(1)
	p.EndLoop()
}

func (p *Program) Left(n uint32) {
	if n > 0 {
		p.Ops = append(p.Ops, Op{Kind: Left, N: n})
	}
}

func (p *Program) Right(n uint32) {
	if n > 0 {
		p.Ops = append(p.Ops, Op{Kind: Right, N: n})
	}
}

// Shift moves the cursor by a signed delta: positive goes right,
// negative goes left.
func (p *Program) Shift(n int32) {
	if n > 0 {
		p.Right(uint32(n))
	} else if n < 0 {
		p.Left(uint32(-n))
	}
}

func (p *Program) BeginLoop() { p.Ops = append(p.Ops, Op{Kind: Loop}) }
func (p *Program) EndLoop()   { p.Ops = append(p.Ops, Op{Kind: End}) }

func (p *Program) Refer() { p.Ops = append(p.Ops, Op{Kind: Refer}) }
func (p *Program) Deref() { p.Ops = append(p.Ops, Op{Kind: DerefOp}) }

func (p *Program) AllocOp() { p.Ops = append(p.Ops, Op{Kind: Alloc}) }
func (p *Program) FreeOp()  { p.Ops = append(p.Ops, Op{Kind: Free}) }

func (p *Program) PutOp()    { p.Ops = append(p.Ops, Op{Kind: Put}) }
func (p *Program) PutnumOp() { p.Ops = append(p.Ops, Op{Kind: Putnum}) }
func (p *Program) GetOp()    { p.Ops = append(p.Ops, Op{Kind: Get}) }
func (p *Program) GetnumOp() { p.Ops = append(p.Ops, Op{Kind: Getnum}) }

// Append concatenates another program's ops onto this one in place.
func (p *Program) Append(other *Program) {
	p.Ops = append(p.Ops, other.Ops...)
}

// Assemble renders the op list as a flat glyph string, expanding counted
// runs into repeated single characters.
func (p *Program) Assemble() string {
	var b strings.Builder
	for _, op := range p.Ops {
		b.WriteString(op.String())
	}
	return b.String()
}

func (p *Program) String() string { return p.Assemble() }

// Parse reads an assembled LIR program back into an Op stream. Each
// character is one Op of count 1; unrecognized characters become single
// comment runes, matching the assembler's own permissive convention.
func Parse(s string) *Program {
	p := New()
	for _, ch := range s {
		kind, ok := GlyphKind(ch)
		if !ok {
			p.Ops = append(p.Ops, Op{Kind: Comment, Ch: ch})
			continue
		}
		switch kind {
		case Plus, Minus, Left, Right:
			p.Ops = append(p.Ops, Op{Kind: kind, N: 1})
		default:
			p.Ops = append(p.Ops, Op{Kind: kind})
		}
	}
	return p
}
