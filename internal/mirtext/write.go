package mirtext

import (
	"fmt"
	"strings"

	"github.com/tapeforge/tapec/internal/mir"
)

// Write renders a MIR op tree as S-expression text, one form per
// top-level call; nested ops are rendered inline as nested lists.
func Write(op mir.Op) (string, error) {
	var sb strings.Builder
	if err := writeOp(&sb, op); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func writeOps(sb *strings.Builder, ops []mir.Op) error {
	for i, op := range ops {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if err := writeOp(sb, op); err != nil {
			return err
		}
	}
	return nil
}

func writeLoc(sb *strings.Builder, loc mir.Location) {
	switch loc.Kind {
	case mir.LocAddress:
		fmt.Fprintf(sb, "(addr %d)", loc.Addr)
	case mir.LocOffset:
		sb.WriteString("(off ")
		writeLoc(sb, *loc.Base)
		fmt.Fprintf(sb, " %d)", loc.Delta)
	case mir.LocDeref:
		sb.WriteString("(deref ")
		writeLoc(sb, *loc.Base)
		sb.WriteByte(')')
	}
}

func writeOp(sb *strings.Builder, op mir.Op) error {
	switch o := op.(type) {
	case *mir.Do:
		sb.WriteString("(do ")
		if err := writeOps(sb, o.Ops); err != nil {
			return err
		}
		sb.WriteByte(')')
	case *mir.PushLiteral:
		fmt.Fprintf(sb, "(push %d)", o.N)
	case *mir.Pop:
		fmt.Fprintf(sb, "(pop %d)", o.N)
	case *mir.LoadLocal:
		fmt.Fprintf(sb, "(load-local %d %d)", o.Offset, o.Size)
	case *mir.StoreLocal:
		fmt.Fprintf(sb, "(store-local %d %d)", o.Offset, o.Size)
	case *mir.LoadFrom:
		sb.WriteString("(load-from ")
		writeLoc(sb, o.Loc)
		fmt.Fprintf(sb, " %d)", o.Size)
	case *mir.StoreAt:
		sb.WriteString("(store-at ")
		writeLoc(sb, o.Loc)
		fmt.Fprintf(sb, " %d)", o.Size)
	case *mir.Stalloc:
		fmt.Fprintf(sb, "(stalloc %d)", o.N)
	case *mir.Stfree:
		fmt.Fprintf(sb, "(stfree %d)", o.N)
	case *mir.AddressOfLocal:
		fmt.Fprintf(sb, "(addr-of-local %d)", o.Offset)
	case *mir.Duplicate:
		fmt.Fprintf(sb, "(dup %d)", o.Size)
	case *mir.Compact:
		fmt.Fprintf(sb, "(compact %d %d)", o.Before, o.Size)
	case *mir.DerefLoad:
		fmt.Fprintf(sb, "(deref-load %d)", o.Size)
	case *mir.DerefStore:
		fmt.Fprintf(sb, "(deref-store %d)", o.Size)
	case *mir.StoreInitField:
		fmt.Fprintf(sb, "(store-init-field %d %d)", o.ValueSize, o.FieldOffset)
	case *mir.Alloc:
		sb.WriteString("(alloc)")
	case *mir.Free:
		sb.WriteString("(free)")
	case *mir.Add:
		sb.WriteString("(add)")
	case *mir.Sub:
		sb.WriteString("(sub)")
	case *mir.Mul:
		sb.WriteString("(mul)")
	case *mir.Div:
		sb.WriteString("(div)")
	case *mir.Not:
		sb.WriteString("(not)")
	case *mir.And:
		sb.WriteString("(and)")
	case *mir.Or:
		sb.WriteString("(or)")
	case *mir.Eq:
		sb.WriteString("(eq)")
	case *mir.Neq:
		sb.WriteString("(neq)")
	case *mir.Increment:
		fmt.Fprintf(sb, "(inc %d)", o.Offset)
	case *mir.Decrement:
		fmt.Fprintf(sb, "(dec %d)", o.Offset)
	case *mir.Putchar:
		sb.WriteString("(putchar)")
	case *mir.Putnum:
		sb.WriteString("(putnum)")
	case *mir.Getchar:
		sb.WriteString("(getchar)")
	case *mir.Getnum:
		sb.WriteString("(getnum)")
	case *mir.If:
		sb.WriteString("(if ")
		if err := writeOp(sb, o.Cond); err != nil {
			return err
		}
		sb.WriteByte(' ')
		if err := writeOp(sb, o.Then); err != nil {
			return err
		}
		sb.WriteByte(')')
	case *mir.IfElse:
		sb.WriteString("(if-else ")
		if err := writeOp(sb, o.Cond); err != nil {
			return err
		}
		sb.WriteByte(' ')
		if err := writeOp(sb, o.Then); err != nil {
			return err
		}
		sb.WriteByte(' ')
		if err := writeOp(sb, o.Else); err != nil {
			return err
		}
		fmt.Fprintf(sb, " %d)", o.Size)
	case *mir.While:
		sb.WriteString("(while ")
		if err := writeOp(sb, o.Cond); err != nil {
			return err
		}
		sb.WriteByte(' ')
		if err := writeOp(sb, o.Body); err != nil {
			return err
		}
		sb.WriteByte(')')
	case *mir.Frame:
		sb.WriteString("(frame ")
		fmt.Fprintf(sb, "%d %d ", o.ArgSize, o.RetSize)
		if err := writeOp(sb, o.Body); err != nil {
			return err
		}
		sb.WriteByte(')')
	case *mir.Macro:
		sb.WriteString("(macro ")
		sb.WriteString(quoteAtom(o.Name))
		sb.WriteByte(' ')
		if err := writeOp(sb, o.Body); err != nil {
			return err
		}
		sb.WriteByte(' ')
		if err := writeOp(sb, o.Rest); err != nil {
			return err
		}
		sb.WriteByte(')')
	case *mir.Call:
		sb.WriteString("(call ")
		sb.WriteString(quoteAtom(o.Name))
		sb.WriteByte(')')
	default:
		return fmt.Errorf("mirtext: unknown op type %T", op)
	}
	return nil
}
