package hir

import "github.com/tapeforge/tapec/internal/mir"

type binOpKind int

const (
	opAdd binOpKind = iota
	opSub
	opMul
	opDiv
	opAnd
	opOr
	opEq
	opNeq
)

var binOpSymbol = map[binOpKind]string{
	opAdd: "+", opSub: "-", opMul: "*", opDiv: "/",
	opAnd: "&&", opOr: "||", opEq: "==", opNeq: "!=",
}

// BinaryOp covers the arithmetic, boolean, and comparison operators:
// all share the shape of "check both operands, lower both, combine with
// one mir op".
type BinaryOp struct {
	Kind        binOpKind
	Left, Right Expr
}

func Add(l, r Expr) *BinaryOp { return &BinaryOp{Kind: opAdd, Left: l, Right: r} }
func Sub(l, r Expr) *BinaryOp { return &BinaryOp{Kind: opSub, Left: l, Right: r} }
func Mul(l, r Expr) *BinaryOp { return &BinaryOp{Kind: opMul, Left: l, Right: r} }
func Div(l, r Expr) *BinaryOp { return &BinaryOp{Kind: opDiv, Left: l, Right: r} }
func And(l, r Expr) *BinaryOp { return &BinaryOp{Kind: opAnd, Left: l, Right: r} }
func Or(l, r Expr) *BinaryOp  { return &BinaryOp{Kind: opOr, Left: l, Right: r} }
func Eq(l, r Expr) *BinaryOp  { return &BinaryOp{Kind: opEq, Left: l, Right: r} }
func Neq(l, r Expr) *BinaryOp { return &BinaryOp{Kind: opNeq, Left: l, Right: r} }

func (e *BinaryOp) String() string {
	return "(" + e.Left.String() + " " + binOpSymbol[e.Kind] + " " + e.Right.String() + ")"
}

func (e *BinaryOp) GetType(tenv TypeEnv) (Type, error) {
	lt, err := e.Left.GetType(tenv)
	if err != nil {
		return Type{}, err
	}
	rt, err := e.Right.GetType(tenv)
	if err != nil {
		return Type{}, err
	}

	switch e.Kind {
	case opAdd, opSub, opMul, opDiv:
		if !lt.Equal(Int()) {
			return Type{}, &MismatchedTypesError{Expr: e.String(), Expected: Int(), Found: lt}
		}
		if !rt.Equal(Int()) {
			return Type{}, &MismatchedTypesError{Expr: e.String(), Expected: Int(), Found: rt}
		}
		return Int(), nil
	case opAnd, opOr:
		if !lt.Equal(Bool()) {
			return Type{}, &MismatchedTypesError{Expr: e.String(), Expected: Bool(), Found: lt}
		}
		if !rt.Equal(Bool()) {
			return Type{}, &MismatchedTypesError{Expr: e.String(), Expected: Bool(), Found: rt}
		}
		return Bool(), nil
	case opEq, opNeq:
		if lt.Kind == KindTuple {
			return Type{}, &CmpOfTupleError{Type: lt}
		}
		if lt.IsFunction() {
			return Type{}, &CmpOfTupleError{Type: lt}
		}
		if !lt.Equal(rt) {
			return Type{}, &MismatchedTypesError{Expr: e.String(), Expected: lt, Found: rt}
		}
		return Bool(), nil
	default:
		panic("hir: unreachable binary op kind")
	}
}

func (e *BinaryOp) Lower(tenv TypeEnv, lenv LowerEnv, offset *uint32) (mir.Op, error) {
	leftOp, err := e.Left.Lower(tenv, lenv, offset)
	if err != nil {
		return nil, err
	}
	rightOp, err := e.Right.Lower(tenv, lenv, offset)
	if err != nil {
		return nil, err
	}
	var combine mir.Op
	switch e.Kind {
	case opAdd:
		combine = &mir.Add{}
	case opSub:
		combine = &mir.Sub{}
	case opMul:
		combine = &mir.Mul{}
	case opDiv:
		combine = &mir.Div{}
	case opAnd:
		combine = &mir.And{}
	case opOr:
		combine = &mir.Or{}
	case opEq:
		combine = &mir.Eq{}
	case opNeq:
		combine = &mir.Neq{}
	default:
		panic("hir: unreachable binary op kind")
	}
	return &mir.Do{Ops: []mir.Op{leftOp, rightOp, combine}}, nil
}

// UnaryNot negates a boolean.
type UnaryNot struct{ Operand Expr }

func (e *UnaryNot) String() string { return "!" + e.Operand.String() }

func (e *UnaryNot) GetType(tenv TypeEnv) (Type, error) {
	t, err := e.Operand.GetType(tenv)
	if err != nil {
		return Type{}, err
	}
	if !t.Equal(Bool()) {
		return Type{}, &MismatchedTypesError{Expr: e.String(), Expected: Bool(), Found: t}
	}
	return Bool(), nil
}

func (e *UnaryNot) Lower(tenv TypeEnv, lenv LowerEnv, offset *uint32) (mir.Op, error) {
	op, err := e.Operand.Lower(tenv, lenv, offset)
	if err != nil {
		return nil, err
	}
	return &mir.Do{Ops: []mir.Op{op, &mir.Not{}}}, nil
}
