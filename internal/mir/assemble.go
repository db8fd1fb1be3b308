package mir

import (
	"github.com/tapeforge/tapec/internal/config"
	"github.com/tapeforge/tapec/internal/lir"
)

// Assemble lowers a root MIR Op into a complete LIR program: it seeds SP
// and FP to the base of the data stack (just past the register file)
// before assembling root against an empty macro scope.
func Assemble(root Op) (*lir.Program, error) {
	p := lir.New()
	sp().Set(p, config.TotalRegisters)
	fp().Set(p, config.TotalRegisters)
	if err := root.Assemble(NewMacroScope(), p); err != nil {
		return nil, err
	}
	return p, nil
}
