package hir

// TypeEnv maps in-scope names to their types. It is persistent:
// With always returns a new environment, leaving the receiver untouched,
// so a caller can branch into several extended scopes from one point
// without them observing each other's bindings.
type TypeEnv struct {
	vars map[string]Type
}

func NewTypeEnv() TypeEnv {
	return TypeEnv{vars: map[string]Type{}}
}

func (e TypeEnv) With(name string, t Type) TypeEnv {
	next := make(map[string]Type, len(e.vars)+1)
	for k, v := range e.vars {
		next[k] = v
	}
	next[name] = t
	return TypeEnv{vars: next}
}

func (e TypeEnv) Get(name string) (Type, bool) {
	t, ok := e.vars[name]
	return t, ok
}

// OnlyFunctions returns a new environment containing only the
// function-typed bindings of e. Function literals type-check their body
// in exactly this kind of scope plus their own arguments: a nested
// function may call an outer named function, but it may not close over
// an outer value binding.
func (e TypeEnv) OnlyFunctions() TypeEnv {
	next := make(map[string]Type, len(e.vars))
	for k, v := range e.vars {
		if v.IsFunction() {
			next[k] = v
		}
	}
	return TypeEnv{vars: next}
}
