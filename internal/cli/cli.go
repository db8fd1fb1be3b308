// Package cli implements the tapec command-line driver: argument
// parsing, mode dispatch across the HIR/MIR/LIR tiers, and colourized
// error reporting, in the same single-binary-driver shape as the
// teacher's own cmd/funxy entrypoint.
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"github.com/tapeforge/tapec/internal/config"
	"github.com/tapeforge/tapec/internal/cruntime"
	"github.com/tapeforge/tapec/internal/lir"
	"github.com/tapeforge/tapec/internal/mir"
	"github.com/tapeforge/tapec/internal/mirtext"
	"github.com/tapeforge/tapec/internal/pipeline"
)

// Mode selects which pipeline tier the driver enters at and which it
// leaves from.
type Mode int

const (
	// ModeCompile reads surface syntax and emits C (the default, -c).
	ModeCompile Mode = iota
	// ModeHIR reads surface syntax and emits LIR glyph text (-h/--hir).
	ModeHIR
	// ModeMIR reads mirtext and emits LIR glyph text (-m/--mir).
	ModeMIR
	// ModeBF reads LIR glyph text and emits C (-b/--bf).
	ModeBF
)

// Options holds one invocation's resolved flags.
type Options struct {
	Mode       Mode
	InputPath  string
	OutputPath string
}

// Run parses args and executes one compile invocation, writing output
// to outputPath (or stdout, if empty) and returning a process exit
// code. Errors are reported to stderr, colourized when stderr is a
// terminal.
func Run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args)
	if err != nil {
		reportError(stderr, err)
		return 2
	}

	src, err := os.ReadFile(opts.InputPath)
	if err != nil {
		reportError(stderr, err)
		return 1
	}

	overrides, err := config.Load(filepath.Dir(opts.InputPath))
	if err != nil {
		reportError(stderr, err)
		return 1
	}
	tapeSize, derefDepth, _ := overrides.Apply()
	rtOpts := cruntime.Options{TapeSize: tapeSize, DerefStackDepth: derefDepth}

	out, err := runMode(opts.Mode, string(src), rtOpts)
	if err != nil {
		reportError(stderr, err)
		return 1
	}

	if opts.OutputPath == "" {
		fmt.Fprint(stdout, out)
		return 0
	}
	if err := os.WriteFile(opts.OutputPath, []byte(out), 0o644); err != nil {
		reportError(stderr, err)
		return 1
	}
	return 0
}

func parseArgs(args []string) (Options, error) {
	fs := flag.NewFlagSet("tapec", flag.ContinueOnError)
	compileFlag := fs.Bool("c", false, "read surface syntax, emit C (the default)")
	hirFlag := fs.Bool("hir", false, "read surface syntax, emit LIR glyph text")
	mirFlag := fs.Bool("mir", false, "read mirtext, emit LIR glyph text")
	bfFlag := fs.Bool("bf", false, "read LIR glyph text, emit C")
	fs.BoolVar(hirFlag, "h", false, "shorthand for -hir")
	fs.BoolVar(mirFlag, "m", false, "shorthand for -mir")
	fs.BoolVar(bfFlag, "b", false, "shorthand for -bf")
	output := fs.String("o", "", "write output to this path instead of stdout")
	fs.SetOutput(io.Discard)

	if err := fs.Parse(args); err != nil {
		return Options{}, err
	}

	selected := 0
	mode := ModeCompile
	if *compileFlag {
		selected++
	}
	if *hirFlag {
		mode, selected = ModeHIR, selected+1
	}
	if *mirFlag {
		mode, selected = ModeMIR, selected+1
	}
	if *bfFlag {
		mode, selected = ModeBF, selected+1
	}
	if selected > 1 {
		return Options{}, fmt.Errorf("at most one of -c, -h/--hir, -m/--mir, -b/--bf may be given")
	}

	rest := fs.Args()
	if len(rest) != 1 {
		return Options{}, fmt.Errorf("usage: tapec [-c|-h|-m|-b] [-o OUTPUT] FILE")
	}

	return Options{Mode: mode, InputPath: rest[0], OutputPath: *output}, nil
}

func runMode(mode Mode, src string, rtOpts cruntime.Options) (string, error) {
	switch mode {
	case ModeCompile:
		return compile(src, rtOpts)
	case ModeHIR:
		return emitLIRText(src)
	case ModeMIR:
		return emitMIRText(src)
	case ModeBF:
		return emitFromBF(src, rtOpts)
	default:
		return "", fmt.Errorf("cli: unknown mode %d", mode)
	}
}

func compile(src string, rtOpts cruntime.Options) (string, error) {
	prog, err := assembleFromSurface(src)
	if err != nil {
		return "", err
	}
	body, err := cruntime.Emit(prog, rtOpts)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("// unit: %s\n%s", uuid.New(), body), nil
}

func emitLIRText(src string) (string, error) {
	prog, err := assembleFromSurface(src)
	if err != nil {
		return "", err
	}
	return prog.String(), nil
}

func assembleFromSurface(src string) (*lir.Program, error) {
	ctx := pipeline.SurfaceToLIR().Run(&pipeline.PipelineContext{Source: src})
	if ctx.Failed() {
		return nil, ctx.Diagnostics[0]
	}
	return ctx.Result, nil
}

func emitMIRText(src string) (string, error) {
	op, err := mirtext.Read(src)
	if err != nil {
		return "", err
	}
	prog, err := mir.Assemble(op)
	if err != nil {
		return "", err
	}
	return prog.String(), nil
}

func emitFromBF(src string, rtOpts cruntime.Options) (string, error) {
	prog := lir.Parse(src)
	return cruntime.Emit(prog, rtOpts)
}

func reportError(w io.Writer, err error) {
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		fmt.Fprintf(w, "\x1b[91merror:\x1b[0m %s\n", err)
		return
	}
	fmt.Fprintf(w, "error: %s\n", err)
}
