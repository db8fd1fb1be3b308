package cruntime

import (
	"fmt"
	"strings"

	"github.com/tapeforge/tapec/internal/lir"
)

// Emit translates an assembled lir.Program into a complete, freestanding
// C source file implementing it, wrapped in the fixed runtime preamble.
func Emit(p *lir.Program, opts Options) (string, error) {
	body, err := translate(p)
	if err != nil {
		return "", err
	}
	return render(body, opts)
}

// translate walks the op stream once, indenting nested loops so the
// generated C is readable, and lowers each glyph to the statement the
// original Brainfuck-to-C assembler used for it.
func translate(p *lir.Program) (string, error) {
	var b strings.Builder
	depth := 1
	writeIndent := func() { b.WriteString(strings.Repeat("    ", depth)) }

	for _, op := range p.Ops {
		switch op.Kind {
		case lir.Comment:
			// Comments carry no runtime meaning; they only exist to help a
			// human read a --hir/--mir/--bf dump, so main.rs-style emission
			// drops them from the compiled C rather than fighting C's lack
			// of a rune-at-a-time comment syntax.
			continue
		case lir.Plus:
			writeIndent()
			fmt.Fprintf(&b, "tape[ptr] += %d;\n", op.N)
		case lir.Minus:
			writeIndent()
			fmt.Fprintf(&b, "tape[ptr] -= %d;\n", op.N)
		case lir.Right:
			writeIndent()
			fmt.Fprintf(&b, "ptr += %d;\n", op.N)
		case lir.Left:
			writeIndent()
			fmt.Fprintf(&b, "ptr -= %d;\n", op.N)
		case lir.Loop:
			writeIndent()
			b.WriteString("while (tape[ptr]) {\n")
			depth++
		case lir.End:
			depth--
			writeIndent()
			b.WriteString("}\n")
		case lir.Get:
			writeIndent()
			b.WriteString("tape[ptr] = (unsigned int)getchar();\n")
		case lir.Put:
			writeIndent()
			b.WriteString("putchar((int)tape[ptr]);\n")
		case lir.Getnum:
			writeIndent()
			b.WriteString("scanf(\"%u\", &tape[ptr]);\n")
		case lir.Putnum:
			writeIndent()
			b.WriteString("printf(\"%u\", tape[ptr]);\n")
		case lir.Refer:
			writeIndent()
			b.WriteString("ref_tape[ref_ptr++] = ptr; ptr = tape[ptr];\n")
		case lir.DerefOp:
			writeIndent()
			b.WriteString("ptr = ref_tape[--ref_ptr];\n")
		case lir.Alloc:
			writeIndent()
			b.WriteString("tape[ptr] = allocate(tape, ptr, taken_cells);\n")
		case lir.Free:
			writeIndent()
			b.WriteString("free_mem(tape, ptr, taken_cells);\n")
		default:
			return "", fmt.Errorf("cruntime: unhandled op kind %d", op.Kind)
		}
	}
	if depth != 1 {
		return "", fmt.Errorf("cruntime: unbalanced loop nesting (depth %d at end of program)", depth)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
