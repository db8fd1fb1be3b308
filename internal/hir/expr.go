// Package hir implements the compiler's typed high-level tree: the
// surface language's expressions, its type checker, and the lowering of
// type-checked expressions into the mir package's stack-machine ops.
package hir

import "github.com/tapeforge/tapec/internal/mir"

// Expr is implemented by every HIR expression form. GetType re-derives
// (and validates) an expression's type against an environment of
// in-scope bindings. Lower compiles an already type-checked expression
// into MIR, threading a frame-relative cell offset that Let bumps for
// each value binding it introduces.
type Expr interface {
	GetType(tenv TypeEnv) (Type, error)
	Lower(tenv TypeEnv, lenv LowerEnv, offset *uint32) (mir.Op, error)
	String() string
}

// Param is one argument of a function literal.
type Param struct {
	Name string
	Type Type
}
