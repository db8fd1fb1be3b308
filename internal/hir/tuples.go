package hir

import (
	"strconv"
	"strings"

	"github.com/tapeforge/tapec/internal/mir"
)

type TupleExpr struct{ Elements []Expr }

func (e *TupleExpr) String() string {
	parts := make([]string, len(e.Elements))
	for i, el := range e.Elements {
		parts[i] = el.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (e *TupleExpr) GetType(tenv TypeEnv) (Type, error) {
	types := make([]Type, len(e.Elements))
	for i, el := range e.Elements {
		t, err := el.GetType(tenv)
		if err != nil {
			return Type{}, err
		}
		types[i] = t
	}
	return Tuple(types...), nil
}

func (e *TupleExpr) Lower(tenv TypeEnv, lenv LowerEnv, offset *uint32) (mir.Op, error) {
	ops := make([]mir.Op, len(e.Elements))
	for i, el := range e.Elements {
		op, err := el.Lower(tenv, lenv, offset)
		if err != nil {
			return nil, err
		}
		ops[i] = op
	}
	return &mir.Do{Ops: ops}, nil
}

// Nth projects the Index'th element out of a tuple-typed expression.
type Nth struct {
	Base  Expr
	Index uint32
}

func (e *Nth) String() string { return e.Base.String() + "." + strconv.FormatUint(uint64(e.Index), 10) }

func (e *Nth) GetType(tenv TypeEnv) (Type, error) {
	baseType, err := e.Base.GetType(tenv)
	if err != nil {
		return Type{}, err
	}
	elem, _, ok := baseType.Nth(e.Index)
	if !ok {
		return Type{}, &NthOfNonTupleError{Found: baseType, Index: e.Index}
	}
	return elem, nil
}

func (e *Nth) Lower(tenv TypeEnv, lenv LowerEnv, offset *uint32) (mir.Op, error) {
	baseType, err := e.Base.GetType(tenv)
	if err != nil {
		return nil, err
	}
	elem, elemOffset, ok := baseType.Nth(e.Index)
	if !ok {
		return nil, &NthOfNonTupleError{Found: baseType, Index: e.Index}
	}
	tupleSize, err := baseType.Size()
	if err != nil {
		return nil, err
	}
	elemSize, err := elem.Size()
	if err != nil {
		return nil, err
	}
	baseOp, err := e.Base.Lower(tenv, lenv, offset)
	if err != nil {
		return nil, err
	}
	after := tupleSize - elemOffset - elemSize
	return &mir.Do{Ops: []mir.Op{
		baseOp,
		&mir.Pop{N: after},
		&mir.Compact{Before: elemOffset, Size: elemSize},
	}}, nil
}

// Alloc reserves Count cells of ElemType on the heap, optionally
// initializing the first len(Init) of them, and evaluates to a pointer
// to the first cell.
type AllocExpr struct {
	Count    Expr
	ElemType Type
	Init     []Expr
}

func (e *AllocExpr) String() string {
	return "alloc(" + e.Count.String() + ", " + e.ElemType.String() + ")"
}

func (e *AllocExpr) GetType(tenv TypeEnv) (Type, error) {
	countType, err := e.Count.GetType(tenv)
	if err != nil {
		return Type{}, err
	}
	if !countType.Equal(Int()) {
		return Type{}, &MismatchedTypesError{Expr: e.String(), Expected: Int(), Found: countType}
	}
	size, err := e.ElemType.Size()
	if err != nil {
		return Type{}, err
	}
	if size == 0 {
		return Type{}, &AllocVoidError{}
	}
	for _, init := range e.Init {
		t, err := init.GetType(tenv)
		if err != nil {
			return Type{}, err
		}
		if !t.Equal(e.ElemType) {
			return Type{}, &MismatchedTypesError{Expr: e.String(), Expected: e.ElemType, Found: t}
		}
	}
	return Pointer(e.ElemType), nil
}

func (e *AllocExpr) Lower(tenv TypeEnv, lenv LowerEnv, offset *uint32) (mir.Op, error) {
	elemSize, err := e.ElemType.Size()
	if err != nil {
		return nil, err
	}
	countOp, err := e.Count.Lower(tenv, lenv, offset)
	if err != nil {
		return nil, err
	}
	ops := []mir.Op{
		countOp,
		&mir.PushLiteral{N: elemSize},
		&mir.Mul{},
		&mir.Alloc{},
	}
	for i, init := range e.Init {
		initOp, err := init.Lower(tenv, lenv, offset)
		if err != nil {
			return nil, err
		}
		ops = append(ops,
			initOp,
			&mir.StoreInitField{ValueSize: elemSize, FieldOffset: uint32(i) * elemSize},
		)
	}
	return &mir.Do{Ops: ops}, nil
}

// Free releases a block previously returned by AllocExpr.
type FreeExpr struct{ Ptr Expr }

func (e *FreeExpr) String() string { return "free(" + e.Ptr.String() + ")" }

func (e *FreeExpr) GetType(tenv TypeEnv) (Type, error) {
	t, err := e.Ptr.GetType(tenv)
	if err != nil {
		return Type{}, err
	}
	if t.Kind != KindPointer {
		return Type{}, &DerefNonPointerError{Found: t}
	}
	return Void(), nil
}

func (e *FreeExpr) Lower(tenv TypeEnv, lenv LowerEnv, offset *uint32) (mir.Op, error) {
	ptrOp, err := e.Ptr.Lower(tenv, lenv, offset)
	if err != nil {
		return nil, err
	}
	return &mir.Do{Ops: []mir.Op{ptrOp, &mir.Free{}}}, nil
}
