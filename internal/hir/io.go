package hir

import "github.com/tapeforge/tapec/internal/mir"

// Putchar writes Operand, a Char or an Int treated as a character code,
// to standard output and evaluates to Void.
type Putchar struct{ Operand Expr }

func (e *Putchar) String() string { return "putchar(" + e.Operand.String() + ")" }

func (e *Putchar) GetType(tenv TypeEnv) (Type, error) {
	t, err := e.Operand.GetType(tenv)
	if err != nil {
		return Type{}, err
	}
	if !t.Equal(Int()) && !t.Equal(Char()) {
		return Type{}, &MismatchedTypesError{Expr: e.String(), Expected: Int(), Found: t}
	}
	return Void(), nil
}

func (e *Putchar) Lower(tenv TypeEnv, lenv LowerEnv, offset *uint32) (mir.Op, error) {
	op, err := e.Operand.Lower(tenv, lenv, offset)
	if err != nil {
		return nil, err
	}
	return &mir.Do{Ops: []mir.Op{op, &mir.Putchar{}}}, nil
}

// Putnum writes Operand, an Int, to standard output in decimal and
// evaluates to Void.
type Putnum struct{ Operand Expr }

func (e *Putnum) String() string { return "putnum(" + e.Operand.String() + ")" }

func (e *Putnum) GetType(tenv TypeEnv) (Type, error) {
	t, err := e.Operand.GetType(tenv)
	if err != nil {
		return Type{}, err
	}
	if !t.Equal(Int()) {
		return Type{}, &MismatchedTypesError{Expr: e.String(), Expected: Int(), Found: t}
	}
	return Void(), nil
}

func (e *Putnum) Lower(tenv TypeEnv, lenv LowerEnv, offset *uint32) (mir.Op, error) {
	op, err := e.Operand.Lower(tenv, lenv, offset)
	if err != nil {
		return nil, err
	}
	return &mir.Do{Ops: []mir.Op{op, &mir.Putnum{}}}, nil
}

// Getchar reads one character of input and evaluates to its Char code.
type Getchar struct{}

func (e *Getchar) String() string { return "getchar()" }

func (e *Getchar) GetType(tenv TypeEnv) (Type, error) { return Char(), nil }

func (e *Getchar) Lower(tenv TypeEnv, lenv LowerEnv, offset *uint32) (mir.Op, error) {
	return &mir.Getchar{}, nil
}

// Getnum reads one decimal number from input and evaluates to an Int.
type Getnum struct{}

func (e *Getnum) String() string { return "getnum()" }

func (e *Getnum) GetType(tenv TypeEnv) (Type, error) { return Int(), nil }

func (e *Getnum) Lower(tenv TypeEnv, lenv LowerEnv, offset *uint32) (mir.Op, error) {
	return &mir.Getnum{}, nil
}
