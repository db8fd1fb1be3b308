package hir

import "github.com/tapeforge/tapec/internal/mir"

type Deref struct{ Ptr Expr }

func (e *Deref) String() string { return "*" + e.Ptr.String() }

func (e *Deref) GetType(tenv TypeEnv) (Type, error) {
	t, err := e.Ptr.GetType(tenv)
	if err != nil {
		return Type{}, err
	}
	if t.Kind != KindPointer {
		return Type{}, &DerefNonPointerError{Found: t}
	}
	return *t.Pointee, nil
}

func (e *Deref) Lower(tenv TypeEnv, lenv LowerEnv, offset *uint32) (mir.Op, error) {
	t, err := e.GetType(tenv)
	if err != nil {
		return nil, err
	}
	size, err := t.Size()
	if err != nil {
		return nil, err
	}
	ptrOp, err := e.Ptr.Lower(tenv, lenv, offset)
	if err != nil {
		return nil, err
	}
	return &mir.Do{Ops: []mir.Op{ptrOp, &mir.DerefLoad{Size: size}}}, nil
}

// DerefAssign writes Value through Ptr.
type DerefAssign struct {
	Ptr   Expr
	Value Expr
}

func (e *DerefAssign) String() string { return "*" + e.Ptr.String() + " = " + e.Value.String() }

func (e *DerefAssign) GetType(tenv TypeEnv) (Type, error) {
	ptrType, err := e.Ptr.GetType(tenv)
	if err != nil {
		return Type{}, err
	}
	if ptrType.Kind != KindPointer {
		return Type{}, &DerefNonPointerError{Found: ptrType}
	}
	valType, err := e.Value.GetType(tenv)
	if err != nil {
		return Type{}, err
	}
	if !ptrType.Pointee.Equal(valType) {
		return Type{}, &MismatchedTypesError{Expr: e.String(), Expected: *ptrType.Pointee, Found: valType}
	}
	return Void(), nil
}

func (e *DerefAssign) Lower(tenv TypeEnv, lenv LowerEnv, offset *uint32) (mir.Op, error) {
	ptrType, _ := e.Ptr.GetType(tenv)
	size, err := ptrType.Pointee.Size()
	if err != nil {
		return nil, err
	}
	valOp, err := e.Value.Lower(tenv, lenv, offset)
	if err != nil {
		return nil, err
	}
	ptrOp, err := e.Ptr.Lower(tenv, lenv, offset)
	if err != nil {
		return nil, err
	}
	return &mir.Do{Ops: []mir.Op{valOp, ptrOp, &mir.DerefStore{Size: size}}}, nil
}

// indexAddress is shared by Index, ReferIndex, and IndexAssign: it
// computes base + idx*elemSize and leaves the resulting address on the
// stack.
func indexAddress(baseOp, idxOp mir.Op, elemSize uint32) mir.Op {
	return &mir.Do{Ops: []mir.Op{
		baseOp,
		idxOp,
		&mir.PushLiteral{N: elemSize},
		&mir.Mul{},
		&mir.Add{},
	}}
}

func indexElemType(tenv TypeEnv, base Expr) (Type, error) {
	t, err := base.GetType(tenv)
	if err != nil {
		return Type{}, err
	}
	if t.Kind != KindPointer {
		return Type{}, &DerefNonPointerError{Found: t}
	}
	return *t.Pointee, nil
}

func checkIndexOperands(tenv TypeEnv, self string, base, idx Expr) (Type, error) {
	elem, err := indexElemType(tenv, base)
	if err != nil {
		return Type{}, err
	}
	idxType, err := idx.GetType(tenv)
	if err != nil {
		return Type{}, err
	}
	if !idxType.Equal(Int()) {
		return Type{}, &MismatchedTypesError{Expr: self, Expected: Int(), Found: idxType}
	}
	return elem, nil
}

// Index reads base[idx], where base is a pointer into an array of
// elements of the pointee's type.
type Index struct {
	Base Expr
	Idx  Expr
}

func (e *Index) String() string { return e.Base.String() + "[" + e.Idx.String() + "]" }

func (e *Index) GetType(tenv TypeEnv) (Type, error) {
	return checkIndexOperands(tenv, e.String(), e.Base, e.Idx)
}

func (e *Index) Lower(tenv TypeEnv, lenv LowerEnv, offset *uint32) (mir.Op, error) {
	elem, err := e.GetType(tenv)
	if err != nil {
		return nil, err
	}
	size, err := elem.Size()
	if err != nil {
		return nil, err
	}
	baseOp, err := e.Base.Lower(tenv, lenv, offset)
	if err != nil {
		return nil, err
	}
	idxOp, err := e.Idx.Lower(tenv, lenv, offset)
	if err != nil {
		return nil, err
	}
	return &mir.Do{Ops: []mir.Op{indexAddress(baseOp, idxOp, size), &mir.DerefLoad{Size: size}}}, nil
}

// ReferIndex computes &base[idx] without reading through it.
type ReferIndex struct {
	Base Expr
	Idx  Expr
}

func (e *ReferIndex) String() string { return "&" + e.Base.String() + "[" + e.Idx.String() + "]" }

func (e *ReferIndex) GetType(tenv TypeEnv) (Type, error) {
	elem, err := checkIndexOperands(tenv, e.String(), e.Base, e.Idx)
	if err != nil {
		return Type{}, err
	}
	return Pointer(elem), nil
}

func (e *ReferIndex) Lower(tenv TypeEnv, lenv LowerEnv, offset *uint32) (mir.Op, error) {
	elem, err := indexElemType(tenv, e.Base)
	if err != nil {
		return nil, err
	}
	size, err := elem.Size()
	if err != nil {
		return nil, err
	}
	baseOp, err := e.Base.Lower(tenv, lenv, offset)
	if err != nil {
		return nil, err
	}
	idxOp, err := e.Idx.Lower(tenv, lenv, offset)
	if err != nil {
		return nil, err
	}
	return indexAddress(baseOp, idxOp, size), nil
}

// IndexAssign writes Value into base[idx].
type IndexAssign struct {
	Base  Expr
	Idx   Expr
	Value Expr
}

func (e *IndexAssign) String() string {
	return e.Base.String() + "[" + e.Idx.String() + "] = " + e.Value.String()
}

func (e *IndexAssign) GetType(tenv TypeEnv) (Type, error) {
	elem, err := checkIndexOperands(tenv, e.String(), e.Base, e.Idx)
	if err != nil {
		return Type{}, err
	}
	valType, err := e.Value.GetType(tenv)
	if err != nil {
		return Type{}, err
	}
	if !elem.Equal(valType) {
		return Type{}, &MismatchedTypesError{Expr: e.String(), Expected: elem, Found: valType}
	}
	return Void(), nil
}

func (e *IndexAssign) Lower(tenv TypeEnv, lenv LowerEnv, offset *uint32) (mir.Op, error) {
	elem, err := indexElemType(tenv, e.Base)
	if err != nil {
		return nil, err
	}
	size, err := elem.Size()
	if err != nil {
		return nil, err
	}
	valOp, err := e.Value.Lower(tenv, lenv, offset)
	if err != nil {
		return nil, err
	}
	baseOp, err := e.Base.Lower(tenv, lenv, offset)
	if err != nil {
		return nil, err
	}
	idxOp, err := e.Idx.Lower(tenv, lenv, offset)
	if err != nil {
		return nil, err
	}
	return &mir.Do{Ops: []mir.Op{valOp, indexAddress(baseOp, idxOp, size), &mir.DerefStore{Size: size}}}, nil
}
