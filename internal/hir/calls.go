package hir

import (
	"strings"

	"github.com/tapeforge/tapec/internal/mir"
)

// FunctionLit is a function value. It is never itself pushed onto the
// stack: Let recognizes it as the value of a function-typed binding and
// installs its lowered body as a macro instead of an ordinary local.
type FunctionLit struct {
	Params  []Param
	RetType Type
	Body    Expr
}

func (e *FunctionLit) String() string {
	names := make([]string, len(e.Params))
	for i, p := range e.Params {
		names[i] = p.Name + ": " + p.Type.String()
	}
	return "fn(" + strings.Join(names, ", ") + ") -> " + e.RetType.String() + " " + e.Body.String()
}

func (e *FunctionLit) argTypes() []Type {
	types := make([]Type, len(e.Params))
	for i, p := range e.Params {
		types[i] = p.Type
	}
	return types
}

// GetType checks the body in isolation: only outer function bindings and
// this literal's own parameters are visible, never an outer value.
func (e *FunctionLit) GetType(tenv TypeEnv) (Type, error) {
	bodyTenv := tenv.OnlyFunctions()
	for _, p := range e.Params {
		bodyTenv = bodyTenv.With(p.Name, p.Type)
	}
	bodyType, err := e.Body.GetType(bodyTenv)
	if err != nil {
		return Type{}, err
	}
	if !bodyType.Equal(e.RetType) {
		return Type{}, &MismatchedTypesError{Expr: e.String(), Expected: e.RetType, Found: bodyType}
	}
	return Function(e.argTypes(), e.RetType), nil
}

// Lower ignores the enclosing lenv and offset: a function literal opens
// its own frame, addressed from its own parameters at offset 0 rather
// than from anything in its lexical surroundings.
func (e *FunctionLit) Lower(tenv TypeEnv, lenv LowerEnv, offset *uint32) (mir.Op, error) {
	bodyTenv := tenv.OnlyFunctions()
	bodyLenv := NewLowerEnv()
	var argSize uint32
	for _, p := range e.Params {
		size, err := p.Type.Size()
		if err != nil {
			return nil, err
		}
		bodyTenv = bodyTenv.With(p.Name, p.Type)
		bodyLenv = bodyLenv.With(p.Name, argSize)
		argSize += size
	}
	retSize, err := e.RetType.Size()
	if err != nil {
		return nil, err
	}
	bodyOffset := argSize
	bodyOp, err := e.Body.Lower(bodyTenv, bodyLenv, &bodyOffset)
	if err != nil {
		return nil, err
	}
	return &mir.Frame{ArgSize: argSize, RetSize: retSize, Body: bodyOp}, nil
}

// Call invokes a named function binding with Args, evaluated left to
// right. The callee must be a bare variable naming a function bound by
// an enclosing let: functions are never computed or stored as ordinary
// values, so there is no other expression form a callee can take.
type Call struct {
	Callee Expr
	Args   []Expr
}

func (e *Call) String() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}
	return e.Callee.String() + "(" + strings.Join(args, ", ") + ")"
}

func (e *Call) GetType(tenv TypeEnv) (Type, error) {
	calleeType, err := e.Callee.GetType(tenv)
	if err != nil {
		return Type{}, err
	}
	if !calleeType.IsFunction() {
		return Type{}, &CallNonFunctionError{Found: calleeType}
	}
	if len(calleeType.Args) != len(e.Args) {
		return Type{}, &MismatchedTypesError{
			Expr:     e.String(),
			Expected: calleeType,
			Found:    calleeType,
		}
	}
	for i, arg := range e.Args {
		argType, err := arg.GetType(tenv)
		if err != nil {
			return Type{}, err
		}
		if !argType.Equal(calleeType.Args[i]) {
			return Type{}, &MismatchedTypesError{Expr: e.String(), Expected: calleeType.Args[i], Found: argType}
		}
	}
	return *calleeType.Ret, nil
}

// Lower reserves the saved-frame-pointer cell, pushes each argument, and
// inlines the callee's macro body. The macro body is itself a
// *mir.Frame (installed by Let when the function literal was bound), so
// the prologue/epilogue is supplied by that inlined body, once per call
// site; Call must not wrap another Frame around it here.
func (e *Call) Lower(tenv TypeEnv, lenv LowerEnv, offset *uint32) (mir.Op, error) {
	callee, ok := e.Callee.(*Variable)
	if !ok {
		return nil, &CallCalleeNotNamedError{}
	}

	ops := []mir.Op{&mir.Stalloc{N: 1}}
	for _, arg := range e.Args {
		argOp, err := arg.Lower(tenv, lenv, offset)
		if err != nil {
			return nil, err
		}
		ops = append(ops, argOp)
	}
	ops = append(ops, &mir.Call{Name: callee.Name})
	return &mir.Do{Ops: ops}, nil
}
