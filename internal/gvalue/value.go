package gvalue

// Index is an opaque address into a gheap.Store. Index(0) is always the
// sole Unit instance (spec §3.3); there is no nil/invalid index value, so
// callers that need "no value" use Index(0) explicitly.
type Index int

// AssocEntry is one slot of a List's association table (spec §3.2): an
// open-addressed hash slot keyed by a Symbol's 64-bit hash, pointing back
// at the item index (a Pair) that produced it. Empty slots carry
// Used == false.
type AssocEntry struct {
	Used     bool
	Hash     uint64
	ItemIdx  int // position within Items that produced this entry
	ItemAddr Index
}

// Value is the tagged union backing every heap slot. Only the fields
// relevant to Kind are meaningful; this mirrors the teacher's tagged
// Object-header approach (internal/vmregister/value.go) but keeps payloads
// as plain struct fields instead of NaN-boxing a uint64, since the spec's
// dense index graph is the thing under test here, not a boxing scheme.
type Value struct {
	Kind Kind

	Number Number
	Char   rune
	Byte   byte
	Symbol uint64 // interned hash; see gheap.Store.SymbolName for display
	Type   Kind   // payload of Kind Type: the reified type tag

	Expression int    // jump-table index, for Kind Expression
	External   uint64 // opaque host handle, for Kind External

	// Pair / Range / Concatenation / Slice / Partial: two-index composites.
	// Field meaning is documented per Kind at each constructor site in
	// gheap rather than renamed per-kind, since it is always (Left, Right).
	Left  Index
	Right Index

	// SymbolList: ordered Symbol/Number parts for dotted symbolic paths.
	SymbolParts []SymbolPart

	// CharList / ByteList: ordered scalar sequences.
	Chars []rune
	Bytes []byte

	// List: ordered item indices plus the derived association table.
	Items []Index
	Assoc []AssocEntry
}

// SymbolPart is one element of a SymbolList: either a Symbol hash or a
// Number (spec §3.1 "ordered sequence of Symbol/Number parts").
type SymbolPart struct {
	IsNumber bool
	Symbol   uint64
	Number   Number
}
