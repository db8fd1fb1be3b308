package hir

// LowerEnv maps a value-bound name to its frame-relative cell offset.
// Function bindings carry no entry here: a function name is resolved
// entirely at MIR assembly time, through the macro scope a Let
// installs, never through a stack slot.
type LowerEnv struct {
	offsets map[string]uint32
}

func NewLowerEnv() LowerEnv {
	return LowerEnv{offsets: map[string]uint32{}}
}

func (e LowerEnv) With(name string, offset uint32) LowerEnv {
	next := make(map[string]uint32, len(e.offsets)+1)
	for k, v := range e.offsets {
		next[k] = v
	}
	next[name] = offset
	return LowerEnv{offsets: next}
}

func (e LowerEnv) Get(name string) (uint32, bool) {
	off, ok := e.offsets[name]
	return off, ok
}
