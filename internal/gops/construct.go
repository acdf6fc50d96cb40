package gops

import (
	"garnish/internal/gheap"
	"garnish/internal/gvalue"
)

// MakePair allocates a Pair(left, right) with no normalization (spec §4.1).
func MakePair(s *gheap.Store, left, right gvalue.Index) (gvalue.Index, error) {
	return s.AddPair(left, right)
}

// rangeOperands reads two Number operands for a Make*Range opcode,
// returning ok=false when either side is not a Number (soft failure to
// Unit, matching the rest of the construction opcodes' operand
// mismatch handling).
func rangeOperands(s *gheap.Store, left, right gvalue.Index) (int64, int64, bool, error) {
	lv, err := s.Get(left)
	if err != nil {
		return 0, 0, false, err
	}
	rv, err := s.Get(right)
	if err != nil {
		return 0, 0, false, err
	}
	if lv.Kind != gvalue.Number || rv.Kind != gvalue.Number {
		return 0, 0, false, nil
	}
	return lv.Number.AsInt(), rv.Number.AsInt(), true, nil
}

// MakeRange allocates an inclusive [a, b] Range (spec §4.2).
func MakeRange(s *gheap.Store, left, right gvalue.Index) (gvalue.Index, error) {
	a, b, ok, err := rangeOperands(s, left, right)
	if err != nil {
		return 0, err
	}
	if !ok {
		return s.AddUnit(), nil
	}
	return newRange(s, a, b)
}

// MakeStartExclusiveRange: (a, b] normalizes to inclusive [a+1, b]
// (SPEC_FULL.md §12.1).
func MakeStartExclusiveRange(s *gheap.Store, left, right gvalue.Index) (gvalue.Index, error) {
	a, b, ok, err := rangeOperands(s, left, right)
	if err != nil {
		return 0, err
	}
	if !ok {
		return s.AddUnit(), nil
	}
	return newRange(s, a+1, b)
}

// MakeEndExclusiveRange: [a, b) normalizes to inclusive [a, b-1].
func MakeEndExclusiveRange(s *gheap.Store, left, right gvalue.Index) (gvalue.Index, error) {
	a, b, ok, err := rangeOperands(s, left, right)
	if err != nil {
		return 0, err
	}
	if !ok {
		return s.AddUnit(), nil
	}
	return newRange(s, a, b-1)
}

// MakeExclusiveRange: (a, b) normalizes to inclusive [a+1, b-1]; may be
// empty when b <= a+1.
func MakeExclusiveRange(s *gheap.Store, left, right gvalue.Index) (gvalue.Index, error) {
	a, b, ok, err := rangeOperands(s, left, right)
	if err != nil {
		return 0, err
	}
	if !ok {
		return s.AddUnit(), nil
	}
	return newRange(s, a+1, b-1)
}

func newRange(s *gheap.Store, start, end int64) (gvalue.Index, error) {
	si, err := s.AddNumber(gvalue.Int(start))
	if err != nil {
		return 0, err
	}
	ei, err := s.AddNumber(gvalue.Int(end))
	if err != nil {
		return 0, err
	}
	return s.AddRange(si, ei)
}

// Concat structurally appends two list-like (or scalar-as-one-element-
// list, SPEC_FULL.md §12.2) values without copying (spec §4.2).
func Concat(s *gheap.Store, left, right gvalue.Index) (gvalue.Index, error) {
	return s.AddConcatenation(left, right)
}

// MakeList pops n register entries bottom-up (oldest first) and builds a
// List, auto-detecting associative items via Store.AssocHashOf (spec
// §4.2 "MakeList n").
func MakeList(s *gheap.Store, n int) (gvalue.Index, error) {
	items := make([]gvalue.Index, n)
	for i := n - 1; i >= 0; i-- {
		idx, err := s.PopRegister()
		if err != nil {
			return 0, err
		}
		items[i] = idx
	}
	s.StartList(n)
	for _, item := range items {
		hash, isAssoc := s.AssocHashOf(item)
		if err := s.AddToList(item, isAssoc, hash); err != nil {
			return 0, err
		}
	}
	return s.EndList()
}
