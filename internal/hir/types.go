package hir

import (
	"fmt"
	"strings"
)

// Kind distinguishes the closed set of HIR type forms.
type Kind int

const (
	KindInt Kind = iota
	KindBool
	KindChar
	KindVoid
	KindPointer
	KindTuple
	KindFunction
)

// Type is a closed sum over the HIR's type language. It is a tagged
// struct rather than an interface so that structural equality (used
// throughout the type checker) is a plain Equal call instead of a type
// switch at every comparison site.
type Type struct {
	Kind Kind

	// Pointer
	Pointee *Type

	// Tuple
	Elements []Type

	// Function
	Args []Type
	Ret  *Type
}

func Int() Type       { return Type{Kind: KindInt} }
func Bool() Type      { return Type{Kind: KindBool} }
func Char() Type      { return Type{Kind: KindChar} }
func Void() Type      { return Type{Kind: KindVoid} }
func Pointer(t Type) Type { return Type{Kind: KindPointer, Pointee: &t} }
func Tuple(ts ...Type) Type {
	return Type{Kind: KindTuple, Elements: ts}
}
func Function(args []Type, ret Type) Type {
	return Type{Kind: KindFunction, Args: args, Ret: &ret}
}

// Equal reports structural equality between two types.
func (t Type) Equal(o Type) bool {
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case KindPointer:
		return t.Pointee.Equal(*o.Pointee)
	case KindTuple:
		if len(t.Elements) != len(o.Elements) {
			return false
		}
		for i := range t.Elements {
			if !t.Elements[i].Equal(o.Elements[i]) {
				return false
			}
		}
		return true
	case KindFunction:
		if len(t.Args) != len(o.Args) {
			return false
		}
		for i := range t.Args {
			if !t.Args[i].Equal(o.Args[i]) {
				return false
			}
		}
		return t.Ret.Equal(*o.Ret)
	default:
		return true
	}
}

func (t Type) String() string {
	switch t.Kind {
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindChar:
		return "char"
	case KindVoid:
		return "void"
	case KindPointer:
		return "&" + t.Pointee.String()
	case KindTuple:
		parts := make([]string, len(t.Elements))
		for i, e := range t.Elements {
			parts[i] = e.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case KindFunction:
		parts := make([]string, len(t.Args))
		for i, a := range t.Args {
			parts[i] = a.String()
		}
		return "(" + strings.Join(parts, ", ") + ") -> " + t.Ret.String()
	default:
		return "<?>"
	}
}

// Size returns the number of tape cells a value of this type occupies.
// Integer, Bool, Character, and Pointer are all single cells; Void is
// zero cells; Tuple is the sum of its elements' sizes. Function has no
// runtime size: it is never itself stored on the tape, only bound by
// name via a let.
func (t Type) Size() (uint32, error) {
	switch t.Kind {
	case KindInt, KindBool, KindChar, KindPointer:
		return 1, nil
	case KindVoid:
		return 0, nil
	case KindTuple:
		var total uint32
		for _, e := range t.Elements {
			sz, err := e.Size()
			if err != nil {
				return 0, err
			}
			total += sz
		}
		return total, nil
	case KindFunction:
		return 0, &SizeOfFunctionError{Type: t}
	default:
		return 0, fmt.Errorf("unknown type kind %d", t.Kind)
	}
}

// Nth returns the type and cell offset (from the start of the tuple) of
// the k'th element of a tuple type. ok is false if t is not a tuple or k
// is out of range.
func (t Type) Nth(k uint32) (elem Type, offset uint32, ok bool) {
	if t.Kind != KindTuple || int(k) >= len(t.Elements) {
		return Type{}, 0, false
	}
	var off uint32
	for i := uint32(0); i < k; i++ {
		sz, err := t.Elements[i].Size()
		if err != nil {
			return Type{}, 0, false
		}
		off += sz
	}
	return t.Elements[k], off, true
}

// IsFunction reports whether t is a function type.
func (t Type) IsFunction() bool { return t.Kind == KindFunction }

// IsPointer reports whether t is a pointer type.
func (t Type) IsPointer() bool { return t.Kind == KindPointer }
