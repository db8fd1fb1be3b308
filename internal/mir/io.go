package mir

import "github.com/tapeforge/tapec/internal/lir"

// Putchar pops one cell and writes it to stdout as a raw byte.
type Putchar struct{}

func (op *Putchar) Assemble(scope MacroScope, p *lir.Program) error {
	sp().Dec(p, 1)
	top().To(p)
	p.PutOp()
	top().From(p)
	return nil
}

// Putnum pops one cell and writes it to stdout as a decimal integer.
type Putnum struct{}

func (op *Putnum) Assemble(scope MacroScope, p *lir.Program) error {
	sp().Dec(p, 1)
	top().To(p)
	p.PutnumOp()
	top().From(p)
	return nil
}

// Getchar reads one byte from stdin and pushes it.
type Getchar struct{}

func (op *Getchar) Assemble(scope MacroScope, p *lir.Program) error {
	top().To(p)
	p.GetOp()
	top().From(p)
	sp().Inc(p, 1)
	return nil
}

// Getnum reads a decimal integer from stdin and pushes it.
type Getnum struct{}

func (op *Getnum) Assemble(scope MacroScope, p *lir.Program) error {
	top().To(p)
	p.GetnumOp()
	top().From(p)
	sp().Inc(p, 1)
	return nil
}
