package mir

import "github.com/tapeforge/tapec/internal/lir"

// Macro binds Name to Body's code within scope, then assembles Rest. No
// HIR value is ever stored on the tape for a function binding: the
// association is purely compile-time, resolved by Call at the point of
// invocation.
type Macro struct {
	Name string
	Body Op
	Rest Op
}

func (op *Macro) Assemble(scope MacroScope, p *lir.Program) error {
	extended := scope.With(op.Name, op.Body)
	return op.Rest.Assemble(extended, p)
}

// Call invokes the macro bound to Name, inlining its body at the call
// site. Fails if no such macro is in scope.
type Call struct{ Name string }

func (op *Call) Assemble(scope MacroScope, p *lir.Program) error {
	body, ok := scope.Lookup(op.Name)
	if !ok {
		return &MacroNotDefinedError{Name: op.Name}
	}
	return body.Assemble(scope, p)
}
