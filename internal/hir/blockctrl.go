package hir

import (
	"strings"

	"github.com/tapeforge/tapec/internal/mir"
)

// Block evaluates each of Exprs in order. Every element but the last is
// evaluated for effect and discarded; the block's type and value are
// those of the last element, or Void if Exprs is empty.
type Block struct{ Exprs []Expr }

func (e *Block) String() string {
	parts := make([]string, len(e.Exprs))
	for i, ex := range e.Exprs {
		parts[i] = ex.String()
	}
	return "do " + strings.Join(parts, "; ") + " end"
}

func (e *Block) GetType(tenv TypeEnv) (Type, error) {
	if len(e.Exprs) == 0 {
		return Void(), nil
	}
	var last Type
	for _, ex := range e.Exprs {
		t, err := ex.GetType(tenv)
		if err != nil {
			return Type{}, err
		}
		last = t
	}
	return last, nil
}

func (e *Block) Lower(tenv TypeEnv, lenv LowerEnv, offset *uint32) (mir.Op, error) {
	if len(e.Exprs) == 0 {
		return &mir.Do{}, nil
	}
	var ops []mir.Op
	for i, ex := range e.Exprs {
		op, err := ex.Lower(tenv, lenv, offset)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
		if i == len(e.Exprs)-1 {
			continue
		}
		t, err := ex.GetType(tenv)
		if err != nil {
			return nil, err
		}
		size, err := t.Size()
		if err != nil {
			return nil, err
		}
		if size > 0 {
			ops = append(ops, &mir.Pop{N: size})
		}
	}
	return &mir.Do{Ops: ops}, nil
}

// If runs Then for effect when Cond holds and always evaluates to Void;
// Then's own value, whatever its type, is discarded.
type If struct {
	Cond Expr
	Then Expr
}

func (e *If) String() string { return "if " + e.Cond.String() + " then " + e.Then.String() }

func (e *If) GetType(tenv TypeEnv) (Type, error) {
	condType, err := e.Cond.GetType(tenv)
	if err != nil {
		return Type{}, err
	}
	if !condType.Equal(Bool()) {
		return Type{}, &MismatchedTypesError{Expr: e.String(), Expected: Bool(), Found: condType}
	}
	if _, err := e.Then.GetType(tenv); err != nil {
		return Type{}, err
	}
	return Void(), nil
}

func (e *If) Lower(tenv TypeEnv, lenv LowerEnv, offset *uint32) (mir.Op, error) {
	condOp, err := e.Cond.Lower(tenv, lenv, offset)
	if err != nil {
		return nil, err
	}
	thenOp, err := e.Then.Lower(tenv, lenv, offset)
	if err != nil {
		return nil, err
	}
	thenType, err := e.Then.GetType(tenv)
	if err != nil {
		return nil, err
	}
	thenSize, err := thenType.Size()
	if err != nil {
		return nil, err
	}
	if thenSize > 0 {
		thenOp = &mir.Do{Ops: []mir.Op{thenOp, &mir.Pop{N: thenSize}}}
	}
	return &mir.If{Cond: condOp, Then: thenOp}, nil
}

// IfElse evaluates to Then's value when Cond holds, Else's value
// otherwise; both branches must agree on type.
type IfElse struct {
	Cond, Then, Else Expr
}

func (e *IfElse) String() string {
	return "if " + e.Cond.String() + " then " + e.Then.String() + " else " + e.Else.String()
}

func (e *IfElse) GetType(tenv TypeEnv) (Type, error) {
	condType, err := e.Cond.GetType(tenv)
	if err != nil {
		return Type{}, err
	}
	if !condType.Equal(Bool()) {
		return Type{}, &MismatchedTypesError{Expr: e.String(), Expected: Bool(), Found: condType}
	}
	thenType, err := e.Then.GetType(tenv)
	if err != nil {
		return Type{}, err
	}
	elseType, err := e.Else.GetType(tenv)
	if err != nil {
		return Type{}, err
	}
	if !thenType.Equal(elseType) {
		return Type{}, &MismatchedTypesError{Expr: e.String(), Expected: thenType, Found: elseType}
	}
	return thenType, nil
}

func (e *IfElse) Lower(tenv TypeEnv, lenv LowerEnv, offset *uint32) (mir.Op, error) {
	thenType, err := e.Then.GetType(tenv)
	if err != nil {
		return nil, err
	}
	size, err := thenType.Size()
	if err != nil {
		return nil, err
	}
	condOp, err := e.Cond.Lower(tenv, lenv, offset)
	if err != nil {
		return nil, err
	}
	thenOp, err := e.Then.Lower(tenv, lenv, offset)
	if err != nil {
		return nil, err
	}
	elseOp, err := e.Else.Lower(tenv, lenv, offset)
	if err != nil {
		return nil, err
	}
	return &mir.IfElse{Cond: condOp, Then: thenOp, Else: elseOp, Size: size}, nil
}

// While repeatedly evaluates Body for effect while Cond holds, and
// always evaluates to Void; Body's own value, whatever its type, is
// discarded at the end of every iteration.
type While struct {
	Cond Expr
	Body Expr
}

func (e *While) String() string { return "while " + e.Cond.String() + " do " + e.Body.String() + " end" }

func (e *While) GetType(tenv TypeEnv) (Type, error) {
	condType, err := e.Cond.GetType(tenv)
	if err != nil {
		return Type{}, err
	}
	if !condType.Equal(Bool()) {
		return Type{}, &MismatchedTypesError{Expr: e.String(), Expected: Bool(), Found: condType}
	}
	if _, err := e.Body.GetType(tenv); err != nil {
		return Type{}, err
	}
	return Void(), nil
}

func (e *While) Lower(tenv TypeEnv, lenv LowerEnv, offset *uint32) (mir.Op, error) {
	condOp, err := e.Cond.Lower(tenv, lenv, offset)
	if err != nil {
		return nil, err
	}
	bodyOp, err := e.Body.Lower(tenv, lenv, offset)
	if err != nil {
		return nil, err
	}
	bodyType, err := e.Body.GetType(tenv)
	if err != nil {
		return nil, err
	}
	bodySize, err := bodyType.Size()
	if err != nil {
		return nil, err
	}
	if bodySize > 0 {
		bodyOp = &mir.Do{Ops: []mir.Op{bodyOp, &mir.Pop{N: bodySize}}}
	}
	return &mir.While{Cond: condOp, Body: bodyOp}, nil
}
