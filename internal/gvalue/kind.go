// Package gvalue defines the tagged value kinds that make up the Garnish
// heap. A Value never embeds another Value directly; composite payloads
// are indices into a gheap.Store, so the value model itself has no
// dependency on the store that owns it.
package gvalue

// Kind tags every value stored in the heap. The set is closed: every
// opcode and apply/cast dispatch table in internal/gops must cover every
// Kind, with an explicit default path to Unit or the context.
type Kind uint8

const (
	Unit Kind = iota
	True
	False
	Type
	Number
	Char
	Byte
	Symbol
	SymbolList
	CharList
	ByteList
	Expression
	External
	Pair
	Range
	Concatenation
	Slice
	Partial
	List
)

func (k Kind) String() string {
	switch k {
	case Unit:
		return "Unit"
	case True:
		return "True"
	case False:
		return "False"
	case Type:
		return "Type"
	case Number:
		return "Number"
	case Char:
		return "Char"
	case Byte:
		return "Byte"
	case Symbol:
		return "Symbol"
	case SymbolList:
		return "SymbolList"
	case CharList:
		return "CharList"
	case ByteList:
		return "ByteList"
	case Expression:
		return "Expression"
	case External:
		return "External"
	case Pair:
		return "Pair"
	case Range:
		return "Range"
	case Concatenation:
		return "Concatenation"
	case Slice:
		return "Slice"
	case Partial:
		return "Partial"
	case List:
		return "List"
	default:
		return "Unknown"
	}
}

// IsListLike reports whether a Kind supports AccessLengthInternal /
// positional Access as a sequence (List, CharList, ByteList, and the
// structural views Concatenation and Slice, which recurse onto
// list-like operands).
func (k Kind) IsListLike() bool {
	switch k {
	case List, CharList, ByteList, Concatenation, Slice:
		return true
	default:
		return false
	}
}
