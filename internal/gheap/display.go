package gheap

import (
	"strconv"

	"garnish/internal/gvalue"
)

// Display renders the value at idx as a human-readable string. It is a
// pure ambient convenience used only by cmd/garnish's tracer and by test
// failure messages (SPEC_FULL.md §13, grounded on original_source's
// data/src/data/display.rs); nothing in the core's control flow calls it.
// Composite kinds recurse bounded by depth to avoid runaway output on a
// deeply nested Concatenation/Slice chain.
func (s *Store) Display(idx gvalue.Index) string {
	return s.display(idx, 0)
}

func (s *Store) display(idx gvalue.Index, depth int) string {
	if depth > 8 {
		return "..."
	}
	v, err := s.Get(idx)
	if err != nil {
		return "<invalid:" + err.Error() + ">"
	}
	switch v.Kind {
	case gvalue.Unit:
		return "()"
	case gvalue.True:
		return "True"
	case gvalue.False:
		return "False"
	case gvalue.Type:
		return "Type(" + v.Type.String() + ")"
	case gvalue.Number:
		return v.Number.String()
	case gvalue.Char:
		return string(v.Char)
	case gvalue.Byte:
		return "0x" + byteHex(v.Byte)
	case gvalue.Symbol:
		if name := s.SymbolName(v.Symbol); name != "" {
			return ":" + name
		}
		return ":<sym>"
	case gvalue.SymbolList:
		out := ""
		for i, p := range v.SymbolParts {
			if i > 0 {
				out += "."
			}
			if p.IsNumber {
				out += p.Number.String()
			} else if name := s.SymbolName(p.Symbol); name != "" {
				out += name
			} else {
				out += "<sym>"
			}
		}
		return out
	case gvalue.CharList:
		return string(v.Chars)
	case gvalue.ByteList:
		out := "["
		for i, b := range v.Bytes {
			if i > 0 {
				out += " "
			}
			out += byteHex(b)
		}
		return out + "]"
	case gvalue.Expression:
		return "Expression#" + strconv.Itoa(v.Expression)
	case gvalue.External:
		return "External#" + strconv.FormatUint(v.External, 10)
	case gvalue.Pair:
		return "(" + s.display(v.Left, depth+1) + " = " + s.display(v.Right, depth+1) + ")"
	case gvalue.Range:
		return s.display(v.Left, depth+1) + ".." + s.display(v.Right, depth+1)
	case gvalue.Concatenation:
		return s.display(v.Left, depth+1) + " ++ " + s.display(v.Right, depth+1)
	case gvalue.Slice:
		return s.display(v.Left, depth+1) + "[" + s.display(v.Right, depth+1) + "]"
	case gvalue.Partial:
		return s.display(v.Left, depth+1) + "(" + s.display(v.Right, depth+1) + ")"
	case gvalue.List:
		out := "["
		for i, item := range v.Items {
			if i > 0 {
				out += ", "
			}
			out += s.display(item, depth+1)
		}
		return out + "]"
	default:
		return "<unknown>"
	}
}

func byteHex(b byte) string {
	s := strconv.FormatUint(uint64(b), 16)
	if len(s) < 2 {
		return "0" + s
	}
	return s
}
