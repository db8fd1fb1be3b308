package cruntime_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tapeforge/tapec/internal/config"
	"github.com/tapeforge/tapec/internal/cruntime"
	"github.com/tapeforge/tapec/internal/lir"
)

func TestEmitIncludesRuntimeScaffolding(t *testing.T) {
	prog := lir.Parse("+>-<.,#$&*?!")
	out, err := cruntime.Emit(prog, cruntime.Options{})
	require.NoError(t, err)

	for _, want := range []string{
		"#include <stdio.h>",
		"static unsigned int allocate(",
		"static void free_mem(",
		"int main(void)",
	} {
		assert.Contains(t, out, want)
	}
}

func TestEmitDefaultsTapeGeometryFromConfig(t *testing.T) {
	prog := lir.Parse("+")
	out, err := cruntime.Emit(prog, cruntime.Options{})
	require.NoError(t, err)
	assert.Contains(t, out, fmt.Sprintf("#define TAPE_SIZE %d", config.TapeSize))
	assert.Contains(t, out, fmt.Sprintf("#define DEREF_STACK_SIZE %d", config.DerefStackDepth))
}

func TestEmitHonorsOverriddenTapeGeometry(t *testing.T) {
	prog := lir.Parse("+")
	out, err := cruntime.Emit(prog, cruntime.Options{TapeSize: 1024, DerefStackDepth: 16})
	require.NoError(t, err)
	assert.Contains(t, out, "#define TAPE_SIZE 1024")
	assert.Contains(t, out, "#define DEREF_STACK_SIZE 16")
}

func TestEmitTranslatesEachGlyph(t *testing.T) {
	prog := lir.Parse("+-><.,#$&*?!")
	out, err := cruntime.Emit(prog, cruntime.Options{})
	require.NoError(t, err)

	for _, want := range []string{
		"tape[ptr] += 1;",
		"tape[ptr] -= 1;",
		"ptr += 1;",
		"ptr -= 1;",
		"putchar((int)tape[ptr]);",
		"tape[ptr] = (unsigned int)getchar();",
		`scanf("%u", &tape[ptr]);`,
		`printf("%u", tape[ptr]);`,
		"ref_tape[ref_ptr++] = ptr; ptr = tape[ptr];",
		"ptr = ref_tape[--ref_ptr];",
		"tape[ptr] = allocate(tape, ptr, taken_cells);",
		"free_mem(tape, ptr, taken_cells);",
	} {
		assert.Contains(t, out, want)
	}
}

func TestEmitTranslatesLoopsWithIndentation(t *testing.T) {
	prog := lir.Parse("[-]")
	out, err := cruntime.Emit(prog, cruntime.Options{})
	require.NoError(t, err)
	assert.Contains(t, out, "while (tape[ptr]) {")
}

func TestEmitRejectsUnbalancedLoops(t *testing.T) {
	prog := lir.Parse("[")
	_, err := cruntime.Emit(prog, cruntime.Options{})
	assert.Error(t, err)
}

func TestEmitDropsComments(t *testing.T) {
	prog := lir.New()
	prog.Comment("hidden from output")
	prog.PlusHere(1)
	out, err := cruntime.Emit(prog, cruntime.Options{})
	require.NoError(t, err)
	assert.NotContains(t, out, "hidden from output")
}
