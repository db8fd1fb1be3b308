package hir

import "github.com/tapeforge/tapec/internal/mir"

// Let binds Name to Value for the extent of Body. A function-typed
// Value (necessarily a *FunctionLit) is installed as a macro and
// consumes no frame cell; any other Value is evaluated and retained as
// an ordinary frame-resident local for Body's extent, then compacted
// away once Body's result is in hand, so the binding's cells do not
// survive past the let-expression itself.
type Let struct {
	Name  string
	Value Expr
	Body  Expr
}

func (e *Let) String() string {
	return "let " + e.Name + " = " + e.Value.String() + " in " + e.Body.String()
}

func (e *Let) GetType(tenv TypeEnv) (Type, error) {
	valType, err := e.Value.GetType(tenv)
	if err != nil {
		return Type{}, err
	}
	if valType.IsFunction() {
		if _, ok := e.Value.(*FunctionLit); !ok {
			return Type{}, &NonLiteralFunctionBindingError{Name: e.Name}
		}
	}
	return e.Body.GetType(tenv.With(e.Name, valType))
}

func (e *Let) Lower(tenv TypeEnv, lenv LowerEnv, offset *uint32) (mir.Op, error) {
	valType, err := e.Value.GetType(tenv)
	if err != nil {
		return nil, err
	}

	if valType.IsFunction() {
		fnLit, ok := e.Value.(*FunctionLit)
		if !ok {
			return nil, &NonLiteralFunctionBindingError{Name: e.Name}
		}
		macroBody, err := fnLit.Lower(tenv, lenv, offset)
		if err != nil {
			return nil, err
		}
		bodyTenv := tenv.With(e.Name, valType)
		restOp, err := e.Body.Lower(bodyTenv, lenv, offset)
		if err != nil {
			return nil, err
		}
		return &mir.Macro{Name: e.Name, Body: macroBody, Rest: restOp}, nil
	}

	// Value is lowered first: any nested let it contains compacts its own
	// cells away and puts offset back before returning, so offset read
	// afterwards is the cell Value's final result occupies.
	valOp, err := e.Value.Lower(tenv, lenv, offset)
	if err != nil {
		return nil, err
	}
	size, err := valType.Size()
	if err != nil {
		return nil, err
	}
	myOffset := *offset
	*offset += size

	bodyTenv := tenv.With(e.Name, valType)
	bodyLenv := lenv.With(e.Name, myOffset)
	bodyType, err := e.Body.GetType(bodyTenv)
	if err != nil {
		return nil, err
	}
	restOp, err := e.Body.Lower(bodyTenv, bodyLenv, offset)
	if err != nil {
		return nil, err
	}
	bodySize, err := bodyType.Size()
	if err != nil {
		return nil, err
	}

	// restOp leaves Body's result sitting on top of this binding's own
	// size cells; Compact discards those leading cells exactly as Nth
	// discards a tuple's non-selected fields (tuples.go), and offset
	// unwinds back to myOffset so a sibling expression, or the next pass
	// through an enclosing while loop's single static body, resolves its
	// own locals to the same frame cells instead of ones further out.
	*offset = myOffset
	return &mir.Do{Ops: []mir.Op{
		valOp,
		restOp,
		&mir.Compact{Before: size, Size: bodySize},
	}}, nil
}
