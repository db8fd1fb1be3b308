// Package cruntime renders an assembled lir.Program as a freestanding C
// source file: a fixed runtime (tape, taken-cells bitmap allocator,
// dereference stack, and I/O) wrapped around the glyph stream translated
// one-for-one into C statements, grounded on the original assembler's
// hardcoded prologue and per-glyph translation table.
package cruntime

import (
	"strings"
	"text/template"

	"github.com/tapeforge/tapec/internal/config"
)

// runtimeTemplate is the fixed preamble every emitted program shares:
// the tape, the taken-cells allocator bitmap, the dereference stack, and
// the handful of C helpers the translated glyphs call into. {{.Body}} is
// the translated glyph stream, already indented.
const runtimeTemplate = `#include <stdio.h>
#include <stdlib.h>

#define TAPE_SIZE {{.TapeSize}}
#define DEREF_STACK_SIZE {{.DerefStackDepth}}

static void panic(const char *msg) {
    fprintf(stderr, "panic: %s\n", msg);
    exit(1);
}

static void zero_tape(unsigned int *tape, unsigned int size) {
    for (unsigned int i = 0; i < size; i++) tape[i] = 0;
}

// allocate scans the tape from its end for a run of requested_mem free
// cells and claims it in taken_cells, recording each claimed cell's
// distance from the end of its own block, so the block's first cell
// holds its full size for free_mem to read back.
static unsigned int allocate(unsigned int *tape, unsigned int ptr, unsigned int *taken_cells) {
    unsigned int requested_mem = tape[ptr];
    unsigned int consecutive_free = 0;
    for (int i = TAPE_SIZE - 1; i > 0; i--) {
        if (taken_cells[i] == 0) {
            consecutive_free++;
        } else {
            consecutive_free = 0;
        }
        if (consecutive_free >= requested_mem) {
            unsigned int addr = (unsigned int)i;
            for (unsigned int j = 0; j < requested_mem; j++) {
                taken_cells[addr + j] = requested_mem - j;
            }
            return addr;
        }
    }
    panic("no free memory");
    return 0;
}

static void free_mem(unsigned int *tape, unsigned int ptr, unsigned int *taken_cells) {
    unsigned int address = tape[ptr];
    unsigned int size = taken_cells[address];
    for (unsigned int i = 0; i < size; i++) {
        taken_cells[address + i] = 0;
        tape[address + i] = 0;
    }
}

int main(void) {
    static unsigned int tape[TAPE_SIZE];
    static unsigned int taken_cells[TAPE_SIZE];
    static unsigned int ref_tape[DEREF_STACK_SIZE];
    unsigned int ptr = 0;
    unsigned int ref_ptr = 0;
    zero_tape(tape, TAPE_SIZE);
    zero_tape(taken_cells, TAPE_SIZE);

{{.Body}}
    return 0;
}
`

// Options overrides the runtime's tape geometry; the zero value takes
// the compiled-in constants from internal/config.
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

var tmpl = template.Must(template.New("runtime").Parse(runtimeTemplate))

// render fills the runtime template with the given translated body and
// tape geometry.
func render(body string, opts Options) (string, error) {
	opts = opts.resolve()
	var buf strings.Builder
	data := struct {
		TapeSize        int
		DerefStackDepth int
		Body            string
	}{
		TapeSize:        opts.TapeSize,
		DerefStackDepth: opts.DerefStackDepth,
		Body:            body,
	}
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
