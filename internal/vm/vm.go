// Package vm interprets an assembled lir.Program directly in Go,
// mirroring internal/cruntime's emitted C runtime cell-for-cell: same
// tape, same taken-cells bitmap allocator, same deref stack, same
// per-glyph semantics. It exists so tests can execute a compiled
// program and assert on its exact output without shelling out to a C
// toolchain.
package vm

import (
	"fmt"
	"strings"

	"github.com/tapeforge/tapec/internal/config"
	"github.com/tapeforge/tapec/internal/lir"
)

// Options mirrors cruntime.Options: the tape geometry the interpreted
// program runs against. The zero value takes the compiled-in constants
// from internal/config, same as cruntime.
type Options struct {
	TapeSize        int
	DerefStackDepth int
}

func (o Options) resolve() Options {
	if o.TapeSize == 0 {
		o.TapeSize = config.TapeSize
	}
	if o.DerefStackDepth == 0 {
		o.DerefStackDepth = config.DerefStackDepth
	}
	return o
}

// Result is what a Run produced.
type Result struct {
	Output string
	// Unfreed is the number of tape cells still claimed in the
	// taken-cells allocator at program exit, the Go-side equivalent of
	// inspecting runtime.go's taken_cells array after main returns.
	Unfreed int
}

// Run interprets p the way internal/cruntime's emitted C would execute
// it: same tape/taken-cells/ref-tape layout, same allocate/free_mem
// bitmap scan, same glyph-by-glyph behavior from emit.go's translate.
func Run(p *lir.Program, stdin string, opts Options) (Result, error) {
	opts = opts.resolve()

	tape := make([]uint32, opts.TapeSize)
	taken := make([]uint32, opts.TapeSize)
	refTape := make([]uint32, opts.DerefStackDepth)
	ptr, refPtr := 0, 0
	in := strings.NewReader(stdin)
	var out strings.Builder

	matches, err := matchLoops(p.Ops)
	if err != nil {
		return Result{}, err
	}

	pc := 0
	for pc < len(p.Ops) {
		op := p.Ops[pc]
		if ptr < 0 || ptr >= opts.TapeSize {
			return Result{}, fmt.Errorf("vm: tape pointer %d out of bounds at op %d", ptr, pc)
		}
		switch op.Kind {
		case lir.Comment:
			// no runtime meaning, same as emit.go's translate.
		case lir.Plus:
			tape[ptr] += op.N
		case lir.Minus:
			tape[ptr] -= op.N
		case lir.Right:
			ptr += int(op.N)
		case lir.Left:
			ptr -= int(op.N)
		case lir.Loop:
			if tape[ptr] == 0 {
				pc = matches[pc]
			}
		case lir.End:
			if tape[ptr] != 0 {
				pc = matches[pc]
				continue
			}
		case lir.Get:
			b, readErr := readByte(in)
			if readErr != nil {
				return Result{}, readErr
			}
			tape[ptr] = b
		case lir.Put:
			out.WriteByte(byte(tape[ptr]))
		case lir.Getnum:
			var n uint32
			if _, scanErr := fmt.Fscan(in, &n); scanErr != nil {
				return Result{}, scanErr
			}
			tape[ptr] = n
		case lir.Putnum:
			fmt.Fprintf(&out, "%d", tape[ptr])
		case lir.Refer:
			refTape[refPtr] = uint32(ptr)
			refPtr++
			ptr = int(tape[ptr])
		case lir.DerefOp:
			refPtr--
			ptr = int(refTape[refPtr])
		case lir.Alloc:
			addr, allocErr := allocate(tape, ptr, taken, opts.TapeSize)
			if allocErr != nil {
				return Result{}, allocErr
			}
			tape[ptr] = addr
		case lir.Free:
			freeMem(tape, ptr, taken)
		default:
			return Result{}, fmt.Errorf("vm: unhandled op kind %d", op.Kind)
		}
		pc++
	}

	unfreed := 0
	for _, v := range taken {
		if v != 0 {
			unfreed++
		}
	}
	return Result{Output: out.String(), Unfreed: unfreed}, nil
}

// readByte returns the next input byte, or the C getchar() EOF sentinel
// (-1, reinterpreted as an unsigned int) once stdin is exhausted.
func readByte(r *strings.Reader) (uint32, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0xFFFFFFFF, nil
	}
	return uint32(b), nil
}

// allocate mirrors runtime.go's allocate: scan the tape from its end for
// a run of requested_mem free cells and claim it, recording each claimed
// cell's distance from the end of its block.
func allocate(tape []uint32, ptr int, taken []uint32, tapeSize int) (uint32, error) {
	requested := tape[ptr]
	consecutiveFree := uint32(0)
	for i := tapeSize - 1; i > 0; i-- {
		if taken[i] == 0 {
			consecutiveFree++
		} else {
			consecutiveFree = 0
		}
		if consecutiveFree >= requested {
			addr := uint32(i)
			for j := uint32(0); j < requested; j++ {
				taken[int(addr+j)] = requested - j
			}
			return addr, nil
		}
	}
	return 0, fmt.Errorf("vm: no free memory")
}

// freeMem mirrors runtime.go's free_mem: recover the block's size from
// the cell pointed at, then zero both taken_cells and tape over it.
func freeMem(tape []uint32, ptr int, taken []uint32) {
	address := tape[ptr]
	size := taken[address]
	for i := uint32(0); i < size; i++ {
		taken[int(address+i)] = 0
		tape[int(address+i)] = 0
	}
}

// matchLoops pairs every Loop op with its End op (in both directions),
// the same bracket-matching a Brainfuck interpreter needs to jump
// across a skipped or repeated loop body.
func matchLoops(ops []lir.Op) (map[int]int, error) {
	m := make(map[int]int)
	var stack []int
	for i, op := range ops {
		switch op.Kind {
		case lir.Loop:
			stack = append(stack, i)
		case lir.End:
			if len(stack) == 0 {
				return nil, fmt.Errorf("vm: unmatched ']' at op %d", i)
			}
			start := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			m[start] = i
			m[i] = start
		}
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("vm: unmatched '[' at op %d", stack[len(stack)-1])
	}
	return m, nil
}
