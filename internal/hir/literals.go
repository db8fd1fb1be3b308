package hir

import (
	"fmt"

	"github.com/tapeforge/tapec/internal/mir"
)

type IntLit struct{ Value int64 }

func (e *IntLit) String() string { return fmt.Sprintf("%d", e.Value) }
func (e *IntLit) GetType(tenv TypeEnv) (Type, error) { return Int(), nil }
func (e *IntLit) Lower(tenv TypeEnv, lenv LowerEnv, offset *uint32) (mir.Op, error) {
	return &mir.PushLiteral{N: uint32(e.Value)}, nil
}

type BoolLit struct{ Value bool }

func (e *BoolLit) String() string {
	if e.Value {
		return "true"
	}
	return "false"
}
func (e *BoolLit) GetType(tenv TypeEnv) (Type, error) { return Bool(), nil }
func (e *BoolLit) Lower(tenv TypeEnv, lenv LowerEnv, offset *uint32) (mir.Op, error) {
	n := uint32(0)
	if e.Value {
		n = 1
	}
	return &mir.PushLiteral{N: n}, nil
}

type CharLit struct{ Value rune }

func (e *CharLit) String() string { return fmt.Sprintf("%q", e.Value) }
func (e *CharLit) GetType(tenv TypeEnv) (Type, error) { return Char(), nil }
func (e *CharLit) Lower(tenv TypeEnv, lenv LowerEnv, offset *uint32) (mir.Op, error) {
	return &mir.PushLiteral{N: uint32(e.Value)}, nil
}

// VoidLit is the unit value `()`.
type VoidLit struct{}

func (e *VoidLit) String() string { return "()" }
func (e *VoidLit) GetType(tenv TypeEnv) (Type, error) { return Void(), nil }
func (e *VoidLit) Lower(tenv TypeEnv, lenv LowerEnv, offset *uint32) (mir.Op, error) {
	return &mir.Do{}, nil
}
