package gheap

import "garnish/internal/gvalue"

// AddUnit / AddTrue / AddFalse are idempotent, returning the fixed
// singleton index (spec §4.1).
func (s *Store) AddUnit() gvalue.Index  { return UnitIndex }
func (s *Store) AddTrue() gvalue.Index  { return TrueIndex }
func (s *Store) AddFalse() gvalue.Index { return FalseIndex }

// AddNumber allocates (or returns a memoized index for) a Number value.
// Memoizing equal scalars is explicitly allowed by spec §4.1 as long as
// equality semantics are unaffected; two Numbers that compare Equal via
// Number.Equal are NOT necessarily memoized to the same index (Int(1)
// and Float(1.0) are cached separately) since spec §8 only requires
// `Equal` opcode semantics to unify them, not index identity.
func (s *Store) AddNumber(n gvalue.Number) (gvalue.Index, error) {
	if idx, ok := s.numberCache[n]; ok {
		return idx, nil
	}
	idx, err := s.alloc(gvalue.Value{Kind: gvalue.Number, Number: n})
	if err != nil {
		return 0, err
	}
	s.numberCache[n] = idx
	return idx, nil
}

func (s *Store) AddChar(c rune) (gvalue.Index, error) {
	if idx, ok := s.charCache[c]; ok {
		return idx, nil
	}
	idx, err := s.alloc(gvalue.Value{Kind: gvalue.Char, Char: c})
	if err != nil {
		return 0, err
	}
	s.charCache[c] = idx
	return idx, nil
}

func (s *Store) AddByte(b byte) (gvalue.Index, error) {
	if idx, ok := s.byteCache[b]; ok {
		return idx, nil
	}
	idx, err := s.alloc(gvalue.Value{Kind: gvalue.Byte, Byte: b})
	if err != nil {
		return 0, err
	}
	s.byteCache[b] = idx
	return idx, nil
}

// AddSymbol interns a 64-bit hash for name, recording name in the
// display table (spec §3.1: "Accompanying name table maps hash -> name").
func (s *Store) AddSymbol(hash uint64, name string) (gvalue.Index, error) {
	if idx, ok := s.symbolCache[hash]; ok {
		s.names[hash] = name
		return idx, nil
	}
	idx, err := s.alloc(gvalue.Value{Kind: gvalue.Symbol, Symbol: hash})
	if err != nil {
		return 0, err
	}
	s.symbolCache[hash] = idx
	s.names[hash] = name
	return idx, nil
}

// SymbolName looks up the display name for a symbol hash, empty if unknown.
func (s *Store) SymbolName(hash uint64) string { return s.names[hash] }

func (s *Store) AddExpression(jumpTableIndex int) (gvalue.Index, error) {
	return s.alloc(gvalue.Value{Kind: gvalue.Expression, Expression: jumpTableIndex})
}

func (s *Store) AddExternal(handle uint64) (gvalue.Index, error) {
	return s.alloc(gvalue.Value{Kind: gvalue.External, External: handle})
}

func (s *Store) AddType(t gvalue.Kind) (gvalue.Index, error) {
	if idx, ok := s.typeCache[t]; ok {
		return idx, nil
	}
	idx, err := s.alloc(gvalue.Value{Kind: gvalue.Type, Type: t})
	if err != nil {
		return 0, err
	}
	s.typeCache[t] = idx
	return idx, nil
}

// AddPair/AddRange/AddConcatenation/AddSlice/AddPartial allocate a
// composite referencing existing indices with no normalization or
// simplification (spec §4.1). Exclusive-range bounds are adjusted by the
// Make*ExclusiveRange operations in internal/gops before AddRange is
// called (SPEC_FULL.md §12.1).

func (s *Store) AddPair(left, right gvalue.Index) (gvalue.Index, error) {
	return s.alloc(gvalue.Value{Kind: gvalue.Pair, Left: left, Right: right})
}

// AddRange allocates an inclusive [start, end] Range. Both ends must be
// Number values.
func (s *Store) AddRange(start, end gvalue.Index) (gvalue.Index, error) {
	return s.alloc(gvalue.Value{Kind: gvalue.Range, Left: start, Right: end})
}

func (s *Store) AddConcatenation(left, right gvalue.Index) (gvalue.Index, error) {
	return s.alloc(gvalue.Value{Kind: gvalue.Concatenation, Left: left, Right: right})
}

func (s *Store) AddSlice(value, rangeIdx gvalue.Index) (gvalue.Index, error) {
	return s.alloc(gvalue.Value{Kind: gvalue.Slice, Left: value, Right: rangeIdx})
}

// AddPartial curries input onto receiver (spec §3.1; semantics in
// SPEC_FULL.md §12.3).
func (s *Store) AddPartial(receiver, input gvalue.Index) (gvalue.Index, error) {
	return s.alloc(gvalue.Value{Kind: gvalue.Partial, Left: receiver, Right: input})
}

// AddSymbolList allocates a SymbolList from pre-built parts.
func (s *Store) AddSymbolList(parts []gvalue.SymbolPart) (gvalue.Index, error) {
	cp := append([]gvalue.SymbolPart(nil), parts...)
	return s.alloc(gvalue.Value{Kind: gvalue.SymbolList, SymbolParts: cp})
}
