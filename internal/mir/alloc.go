package mir

import "github.com/tapeforge/tapec/internal/lir"

// Alloc consumes a size cell already on top of the stack and requests
// that many cells from the runtime's bitmap allocator, leaving the
// resulting address in the same cell. The '?' glyph reads the requested
// size out of the current cell and overwrites it with the address of a
// free block of that size.
type Alloc struct{}

func (op *Alloc) Assemble(scope MacroScope, p *lir.Program) error {
	sp().Dec(p, 1)
	top().To(p)
	p.AllocOp()
	top().From(p)
	sp().Inc(p, 1)
	return nil
}

// allocStatic pushes a compile-time-known size and runs Alloc, leaving
// the resulting pointer on top of the stack.
func allocStatic(scope MacroScope, p *lir.Program, size uint32) error {
	if err := (&PushLiteral{N: size}).Assemble(scope, p); err != nil {
		return err
	}
	return (&Alloc{}).Assemble(scope, p)
}

// Free pops a pointer cell and releases the block it addresses. The '!'
// glyph reads the address out of the current cell and returns its block
// to the allocator's free list.
type Free struct{}

func (op *Free) Assemble(scope MacroScope, p *lir.Program) error {
	sp().Dec(p, 1)
	top().To(p)
	p.FreeOp()
	top().From(p)
	return nil
}
