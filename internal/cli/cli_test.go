package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tapeforge/tapec/internal/cli"
	"github.com/tapeforge/tapec/internal/lir"
	"github.com/tapeforge/tapec/internal/vm"
)

func writeTempSource(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.tp")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunCompileModeProducesC(t *testing.T) {
	path := writeTempSource(t, "putnum(1 + 2)")
	var stdout, stderr bytes.Buffer
	code := cli.Run([]string{path}, &stdout, &stderr)
	require.Equal(t, 0, code, "stderr: %s", stderr.String())
	assert.Contains(t, stdout.String(), "int main(void)")
	assert.Contains(t, stdout.String(), "// unit: ")
}

func TestRunHIRModeProducesGlyphs(t *testing.T) {
	path := writeTempSource(t, "putnum(1)")
	var stdout, stderr bytes.Buffer
	code := cli.Run([]string{"-h", path}, &stdout, &stderr)
	require.Equal(t, 0, code, "stderr: %s", stderr.String())
	assert.NotEmpty(t, stdout.String())
	assert.NotContains(t, stdout.String(), "int main")
}

func TestRunBFModeWrapsGlyphsInC(t *testing.T) {
	path := writeTempSource(t, "+++.")
	var stdout, stderr bytes.Buffer
	code := cli.Run([]string{"-b", path}, &stdout, &stderr)
	require.Equal(t, 0, code, "stderr: %s", stderr.String())
	assert.Contains(t, stdout.String(), "int main(void)")
	assert.Contains(t, stdout.String(), "tape[ptr] += 1;")
	assert.Contains(t, stdout.String(), "putchar((int)tape[ptr]);")
}

func TestRunMIRModeReadsSExpression(t *testing.T) {
	path := writeTempSource(t, "(putnum)")
	var stdout, stderr bytes.Buffer
	code := cli.Run([]string{"-m", path}, &stdout, &stderr)
	require.Equal(t, 0, code, "stderr: %s", stderr.String())
	assert.Contains(t, stdout.String(), "$")
}

// TestRunHIRModeGlyphsExecuteToExactOutput drives the CLI exactly as a
// user would, then actually runs the glyph text it printed and checks
// the program's real output, rather than stopping at "it compiled".
func TestRunHIRModeGlyphsExecuteToExactOutput(t *testing.T) {
	path := writeTempSource(t, "let x = 6 in let y = 7 in putnum(x * y)")
	var stdout, stderr bytes.Buffer
	code := cli.Run([]string{"-h", path}, &stdout, &stderr)
	require.Equal(t, 0, code, "stderr: %s", stderr.String())

	prog := lir.Parse(stdout.String())
	res, err := vm.Run(prog, "", vm.Options{})
	require.NoError(t, err)
	assert.Equal(t, "42", res.Output)
}

func TestRunRejectsMultipleModeFlags(t *testing.T) {
	path := writeTempSource(t, "putnum(1)")
	var stdout, stderr bytes.Buffer
	code := cli.Run([]string{"-h", "-m", path}, &stdout, &stderr)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "at most one of")
}

func TestRunRejectsMissingFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := cli.Run([]string{}, &stdout, &stderr)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "usage:")
}

func TestRunReportsErrorForNonexistentInput(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := cli.Run([]string{"/nonexistent/path/prog.tp"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "error:")
}

func TestRunWritesToOutputPath(t *testing.T) {
	path := writeTempSource(t, "putnum(1)")
	outPath := filepath.Join(filepath.Dir(path), "out.c")
	var stdout, stderr bytes.Buffer
	code := cli.Run([]string{"-o", outPath, path}, &stdout, &stderr)
	require.Equal(t, 0, code, "stderr: %s", stderr.String())
	assert.Empty(t, stdout.String())
	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "int main(void)")
}

func TestRunReportsParseErrorsFromMalformedSource(t *testing.T) {
	path := writeTempSource(t, "let x = in x")
	var stdout, stderr bytes.Buffer
	code := cli.Run([]string{path}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "error:")
}
