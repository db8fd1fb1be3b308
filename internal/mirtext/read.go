package mirtext

import (
	"fmt"
	"strconv"

	"github.com/tapeforge/tapec/internal/mir"
)

// Read parses a single top-level S-expression form into a mir.Op tree.
func Read(src string) (mir.Op, error) {
	n, err := parseOne(src)
	if err != nil {
		return nil, err
	}
	return decodeOp(n)
}

func unquoteAtom(s string) (string, error) {
	if len(s) >= 2 && s[0] == '"' {
		return strconv.Unquote(s)
	}
	return s, nil
}

func decodeLoc(n node) (mir.Location, error) {
	name, args, err := n.head()
	if err != nil {
		return mir.Location{}, err
	}
	switch name {
	case "addr":
		if len(args) != 1 {
			return mir.Location{}, fmt.Errorf("mirtext: (addr N) takes one argument")
		}
		v, err := parseUint(args[0].Text)
		if err != nil {
			return mir.Location{}, err
		}
		return mir.Address(v), nil
	case "off":
		if len(args) != 2 {
			return mir.Location{}, fmt.Errorf("mirtext: (off BASE DELTA) takes two arguments")
		}
		base, err := decodeLoc(args[0])
		if err != nil {
			return mir.Location{}, err
		}
		delta, err := parseInt(args[1].Text)
		if err != nil {
			return mir.Location{}, err
		}
		return mir.Offset(base, delta), nil
	case "deref":
		if len(args) != 1 {
			return mir.Location{}, fmt.Errorf("mirtext: (deref BASE) takes one argument")
		}
		base, err := decodeLoc(args[0])
		if err != nil {
			return mir.Location{}, err
		}
		return mir.Deref(base), nil
	default:
		return mir.Location{}, fmt.Errorf("mirtext: unknown location form %q", name)
	}
}

func decodeOps(nodes []node) ([]mir.Op, error) {
	ops := make([]mir.Op, len(nodes))
	for i, n := range nodes {
		op, err := decodeOp(n)
		if err != nil {
			return nil, err
		}
		ops[i] = op
	}
	return ops, nil
}

func argCount(name string, args []node, n int) error {
	if len(args) != n {
		return fmt.Errorf("mirtext: (%s ...) takes %d argument(s), got %d", name, n, len(args))
	}
	return nil
}

func decodeOp(n node) (mir.Op, error) {
	name, args, err := n.head()
	if err != nil {
		return nil, err
	}
	switch name {
	case "do":
		ops, err := decodeOps(args)
		if err != nil {
			return nil, err
		}
		return &mir.Do{Ops: ops}, nil
	case "push":
		if err := argCount(name, args, 1); err != nil {
			return nil, err
		}
		v, err := parseUint(args[0].Text)
		if err != nil {
			return nil, err
		}
		return &mir.PushLiteral{N: v}, nil
	case "pop":
		if err := argCount(name, args, 1); err != nil {
			return nil, err
		}
		v, err := parseUint(args[0].Text)
		if err != nil {
			return nil, err
		}
		return &mir.Pop{N: v}, nil
	case "load-local":
		if err := argCount(name, args, 2); err != nil {
			return nil, err
		}
		offset, err := parseUint(args[0].Text)
		if err != nil {
			return nil, err
		}
		size, err := parseUint(args[1].Text)
		if err != nil {
			return nil, err
		}
		return &mir.LoadLocal{Offset: offset, Size: size}, nil
	case "store-local":
		if err := argCount(name, args, 2); err != nil {
			return nil, err
		}
		offset, err := parseUint(args[0].Text)
		if err != nil {
			return nil, err
		}
		size, err := parseUint(args[1].Text)
		if err != nil {
			return nil, err
		}
		return &mir.StoreLocal{Offset: offset, Size: size}, nil
	case "load-from":
		if err := argCount(name, args, 2); err != nil {
			return nil, err
		}
		loc, err := decodeLoc(args[0])
		if err != nil {
			return nil, err
		}
		size, err := parseUint(args[1].Text)
		if err != nil {
			return nil, err
		}
		return &mir.LoadFrom{Loc: loc, Size: size}, nil
	case "store-at":
		if err := argCount(name, args, 2); err != nil {
			return nil, err
		}
		loc, err := decodeLoc(args[0])
		if err != nil {
			return nil, err
		}
		size, err := parseUint(args[1].Text)
		if err != nil {
			return nil, err
		}
		return &mir.StoreAt{Loc: loc, Size: size}, nil
	case "stalloc":
		if err := argCount(name, args, 1); err != nil {
			return nil, err
		}
		v, err := parseUint(args[0].Text)
		if err != nil {
			return nil, err
		}
		return &mir.Stalloc{N: v}, nil
	case "stfree":
		if err := argCount(name, args, 1); err != nil {
			return nil, err
		}
		v, err := parseUint(args[0].Text)
		if err != nil {
			return nil, err
		}
		return &mir.Stfree{N: v}, nil
	case "addr-of-local":
		if err := argCount(name, args, 1); err != nil {
			return nil, err
		}
		v, err := parseUint(args[0].Text)
		if err != nil {
			return nil, err
		}
		return &mir.AddressOfLocal{Offset: v}, nil
	case "dup":
		if err := argCount(name, args, 1); err != nil {
			return nil, err
		}
		v, err := parseUint(args[0].Text)
		if err != nil {
			return nil, err
		}
		return &mir.Duplicate{Size: v}, nil
	case "compact":
		if err := argCount(name, args, 2); err != nil {
			return nil, err
		}
		before, err := parseUint(args[0].Text)
		if err != nil {
			return nil, err
		}
		size, err := parseUint(args[1].Text)
		if err != nil {
			return nil, err
		}
		return &mir.Compact{Before: before, Size: size}, nil
	case "deref-load":
		if err := argCount(name, args, 1); err != nil {
			return nil, err
		}
		v, err := parseUint(args[0].Text)
		if err != nil {
			return nil, err
		}
		return &mir.DerefLoad{Size: v}, nil
	case "deref-store":
		if err := argCount(name, args, 1); err != nil {
			return nil, err
		}
		v, err := parseUint(args[0].Text)
		if err != nil {
			return nil, err
		}
		return &mir.DerefStore{Size: v}, nil
	case "store-init-field":
		if err := argCount(name, args, 2); err != nil {
			return nil, err
		}
		valueSize, err := parseUint(args[0].Text)
		if err != nil {
			return nil, err
		}
		fieldOffset, err := parseUint(args[1].Text)
		if err != nil {
			return nil, err
		}
		return &mir.StoreInitField{ValueSize: valueSize, FieldOffset: fieldOffset}, nil
	case "alloc":
		if err := argCount(name, args, 0); err != nil {
			return nil, err
		}
		return &mir.Alloc{}, nil
	case "free":
		if err := argCount(name, args, 0); err != nil {
			return nil, err
		}
		return &mir.Free{}, nil
	case "add":
		return &mir.Add{}, argCount(name, args, 0)
	case "sub":
		return &mir.Sub{}, argCount(name, args, 0)
	case "mul":
		return &mir.Mul{}, argCount(name, args, 0)
	case "div":
		return &mir.Div{}, argCount(name, args, 0)
	case "not":
		return &mir.Not{}, argCount(name, args, 0)
	case "and":
		return &mir.And{}, argCount(name, args, 0)
	case "or":
		return &mir.Or{}, argCount(name, args, 0)
	case "eq":
		return &mir.Eq{}, argCount(name, args, 0)
	case "neq":
		return &mir.Neq{}, argCount(name, args, 0)
	case "inc":
		if err := argCount(name, args, 1); err != nil {
			return nil, err
		}
		v, err := parseUint(args[0].Text)
		if err != nil {
			return nil, err
		}
		return &mir.Increment{Offset: v}, nil
	case "dec":
		if err := argCount(name, args, 1); err != nil {
			return nil, err
		}
		v, err := parseUint(args[0].Text)
		if err != nil {
			return nil, err
		}
		return &mir.Decrement{Offset: v}, nil
	case "putchar":
		return &mir.Putchar{}, argCount(name, args, 0)
	case "putnum":
		return &mir.Putnum{}, argCount(name, args, 0)
	case "getchar":
		return &mir.Getchar{}, argCount(name, args, 0)
	case "getnum":
		return &mir.Getnum{}, argCount(name, args, 0)
	case "if":
		if err := argCount(name, args, 2); err != nil {
			return nil, err
		}
		cond, err := decodeOp(args[0])
		if err != nil {
			return nil, err
		}
		then, err := decodeOp(args[1])
		if err != nil {
			return nil, err
		}
		return &mir.If{Cond: cond, Then: then}, nil
	case "if-else":
		if err := argCount(name, args, 4); err != nil {
			return nil, err
		}
		cond, err := decodeOp(args[0])
		if err != nil {
			return nil, err
		}
		then, err := decodeOp(args[1])
		if err != nil {
			return nil, err
		}
		els, err := decodeOp(args[2])
		if err != nil {
			return nil, err
		}
		size, err := parseUint(args[3].Text)
		if err != nil {
			return nil, err
		}
		return &mir.IfElse{Cond: cond, Then: then, Else: els, Size: size}, nil
	case "while":
		if err := argCount(name, args, 2); err != nil {
			return nil, err
		}
		cond, err := decodeOp(args[0])
		if err != nil {
			return nil, err
		}
		body, err := decodeOp(args[1])
		if err != nil {
			return nil, err
		}
		return &mir.While{Cond: cond, Body: body}, nil
	case "frame":
		if err := argCount(name, args, 3); err != nil {
			return nil, err
		}
		argSize, err := parseUint(args[0].Text)
		if err != nil {
			return nil, err
		}
		retSize, err := parseUint(args[1].Text)
		if err != nil {
			return nil, err
		}
		body, err := decodeOp(args[2])
		if err != nil {
			return nil, err
		}
		return &mir.Frame{ArgSize: argSize, RetSize: retSize, Body: body}, nil
	case "macro":
		if err := argCount(name, args, 3); err != nil {
			return nil, err
		}
		macroName, err := unquoteAtom(args[0].Text)
		if err != nil {
			return nil, err
		}
		body, err := decodeOp(args[1])
		if err != nil {
			return nil, err
		}
		rest, err := decodeOp(args[2])
		if err != nil {
			return nil, err
		}
		return &mir.Macro{Name: macroName, Body: body, Rest: rest}, nil
	case "call":
		if err := argCount(name, args, 1); err != nil {
			return nil, err
		}
		calleeName, err := unquoteAtom(args[0].Text)
		if err != nil {
			return nil, err
		}
		return &mir.Call{Name: calleeName}, nil
	default:
		return nil, fmt.Errorf("mirtext: unknown op form %q", name)
	}
}
