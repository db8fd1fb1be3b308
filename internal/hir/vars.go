package hir

import (
	"github.com/tapeforge/tapec/internal/mir"
)

type Variable struct{ Name string }

func (e *Variable) String() string { return e.Name }

func (e *Variable) GetType(tenv TypeEnv) (Type, error) {
	t, ok := tenv.Get(e.Name)
	if !ok {
		return Type{}, &VariableNotInScopeError{Name: e.Name}
	}
	return t, nil
}

func (e *Variable) Lower(tenv TypeEnv, lenv LowerEnv, offset *uint32) (mir.Op, error) {
	t, err := e.GetType(tenv)
	if err != nil {
		return nil, err
	}
	off, ok := lenv.Get(e.Name)
	if !ok {
		// A function-typed name has no stack slot: referencing it bare
		// (outside of a call) has no lowering.
		return nil, &VariableNotInScopeError{Name: e.Name}
	}
	size, err := t.Size()
	if err != nil {
		return nil, err
	}
	return &mir.LoadLocal{Offset: off, Size: size}, nil
}

// Refer takes the address of a named, value-bound variable.
type Refer struct{ Name string }

func (e *Refer) String() string { return "&" + e.Name }

func (e *Refer) GetType(tenv TypeEnv) (Type, error) {
	t, ok := tenv.Get(e.Name)
	if !ok {
		return Type{}, &VariableNotInScopeError{Name: e.Name}
	}
	return Pointer(t), nil
}

func (e *Refer) Lower(tenv TypeEnv, lenv LowerEnv, offset *uint32) (mir.Op, error) {
	off, ok := lenv.Get(e.Name)
	if !ok {
		return nil, &VariableNotInScopeError{Name: e.Name}
	}
	return &mir.AddressOfLocal{Offset: off}, nil
}

// Assign overwrites a named variable's value.
type Assign struct {
	Name  string
	Value Expr
}

func (e *Assign) String() string { return e.Name + " = " + e.Value.String() }

func (e *Assign) GetType(tenv TypeEnv) (Type, error) {
	varType, ok := tenv.Get(e.Name)
	if !ok {
		return Type{}, &VariableNotInScopeError{Name: e.Name}
	}
	valType, err := e.Value.GetType(tenv)
	if err != nil {
		return Type{}, err
	}
	if !varType.Equal(valType) {
		return Type{}, &MismatchedTypesError{Expr: e.String(), Expected: varType, Found: valType}
	}
	return Void(), nil
}

func (e *Assign) Lower(tenv TypeEnv, lenv LowerEnv, offset *uint32) (mir.Op, error) {
	varType, _ := tenv.Get(e.Name)
	size, err := varType.Size()
	if err != nil {
		return nil, err
	}
	off, ok := lenv.Get(e.Name)
	if !ok {
		return nil, &VariableNotInScopeError{Name: e.Name}
	}
	valOp, err := e.Value.Lower(tenv, lenv, offset)
	if err != nil {
		return nil, err
	}
	return &mir.Do{Ops: []mir.Op{valOp, &mir.StoreLocal{Offset: off, Size: size}}}, nil
}

// Increment/Decrement adjust an Int-typed variable in place by one.
type Increment struct{ Name string }

func (e *Increment) String() string { return e.Name + "++" }

func (e *Increment) GetType(tenv TypeEnv) (Type, error) {
	t, ok := tenv.Get(e.Name)
	if !ok {
		return Type{}, &VariableNotInScopeError{Name: e.Name}
	}
	if !t.Equal(Int()) {
		return Type{}, &MismatchedTypesError{Expr: e.String(), Expected: Int(), Found: t}
	}
	return Void(), nil
}

func (e *Increment) Lower(tenv TypeEnv, lenv LowerEnv, offset *uint32) (mir.Op, error) {
	off, ok := lenv.Get(e.Name)
	if !ok {
		return nil, &VariableNotInScopeError{Name: e.Name}
	}
	return &mir.Increment{Offset: off}, nil
}

type Decrement struct{ Name string }

func (e *Decrement) String() string { return e.Name + "--" }

func (e *Decrement) GetType(tenv TypeEnv) (Type, error) {
	t, ok := tenv.Get(e.Name)
	if !ok {
		return Type{}, &VariableNotInScopeError{Name: e.Name}
	}
	if !t.Equal(Int()) {
		return Type{}, &MismatchedTypesError{Expr: e.String(), Expected: Int(), Found: t}
	}
	return Void(), nil
}

func (e *Decrement) Lower(tenv TypeEnv, lenv LowerEnv, offset *uint32) (mir.Op, error) {
	off, ok := lenv.Get(e.Name)
	if !ok {
		return nil, &VariableNotInScopeError{Name: e.Name}
	}
	return &mir.Decrement{Offset: off}, nil
}
