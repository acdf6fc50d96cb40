package gops

import (
	"garnish/internal/gcontext"
	"garnish/internal/gheap"
	"garnish/internal/gvalue"
)

// lengthOf recursively computes the logical length of a list-like value:
// List/CharList/ByteList item count, Range span, Concatenation as the sum
// of its sides, Slice as its range's length, and any scalar as a
// one-element logical list (SPEC_FULL.md §12.2). This backs elementAt's
// position routing and casting; it is NOT the same as the
// AccessLengthInternal opcode, which per spec §4.4 only defines a result
// for List/CharList/ByteList/Range/Slice and Unit for everything else.
func lengthOf(s *gheap.Store, idx gvalue.Index) (int64, error) {
	v, err := s.Get(idx)
	if err != nil {
		return 0, err
	}
	switch v.Kind {
	case gvalue.List:
		return int64(len(v.Items)), nil
	case gvalue.CharList:
		return int64(len(v.Chars)), nil
	case gvalue.ByteList:
		return int64(len(v.Bytes)), nil
	case gvalue.Range:
		start, end, err := s.RangeBounds(idx)
		if err != nil {
			return 0, err
		}
		if end < start {
			return 0, nil
		}
		return end - start + 1, nil
	case gvalue.Concatenation:
		ll, err := lengthOf(s, v.Left)
		if err != nil {
			return 0, err
		}
		rl, err := lengthOf(s, v.Right)
		if err != nil {
			return 0, err
		}
		return ll + rl, nil
	case gvalue.Slice:
		start, end, err := s.RangeBounds(v.Right)
		if err != nil {
			return 0, err
		}
		if end < start {
			return 0, nil
		}
		return end - start + 1, nil
	default:
		return 1, nil
	}
}

// elementAt recursively resolves the value at zero-based pos within a
// list-like value, returning ok=false when pos is out of range. It never
// copies underlying structure (spec §3.2 "purely structural").
func elementAt(s *gheap.Store, idx gvalue.Index, pos int64) (gvalue.Index, bool, error) {
	if pos < 0 {
		return 0, false, nil
	}
	v, err := s.Get(idx)
	if err != nil {
		return 0, false, err
	}
	switch v.Kind {
	case gvalue.List:
		if pos >= int64(len(v.Items)) {
			return 0, false, nil
		}
		return v.Items[pos], true, nil
	case gvalue.CharList:
		if pos >= int64(len(v.Chars)) {
			return 0, false, nil
		}
		ci, err := s.AddChar(v.Chars[pos])
		return ci, true, err
	case gvalue.ByteList:
		if pos >= int64(len(v.Bytes)) {
			return 0, false, nil
		}
		bi, err := s.AddByte(v.Bytes[pos])
		return bi, true, err
	case gvalue.Range:
		start, end, err := s.RangeBounds(idx)
		if err != nil {
			return 0, false, err
		}
		if end < start || pos > end-start {
			return 0, false, nil
		}
		ni, err := s.AddNumber(gvalue.Int(start + pos))
		return ni, true, err
	case gvalue.Concatenation:
		ll, err := lengthOf(s, v.Left)
		if err != nil {
			return 0, false, err
		}
		if pos < ll {
			return elementAt(s, v.Left, pos)
		}
		return elementAt(s, v.Right, pos-ll)
	case gvalue.Slice:
		start, end, err := s.RangeBounds(v.Right)
		if err != nil {
			return 0, false, err
		}
		if end < start || pos > end-start {
			return 0, false, nil
		}
		return elementAt(s, v.Left, start+pos)
	default:
		if pos == 0 {
			return idx, true, nil
		}
		return 0, false, nil
	}
}

// AccessLeftInternal: Pair->left; Range->start (if Number); Slice->value.
func AccessLeftInternal(s *gheap.Store, operand gvalue.Index) (gvalue.Index, error) {
	v, err := s.Get(operand)
	if err != nil {
		return 0, err
	}
	switch v.Kind {
	case gvalue.Pair, gvalue.Range, gvalue.Slice:
		return v.Left, nil
	default:
		return s.AddUnit(), nil
	}
}

// AccessRightInternal: Pair->right; Range->end (if Number); Slice->range.
func AccessRightInternal(s *gheap.Store, operand gvalue.Index) (gvalue.Index, error) {
	v, err := s.Get(operand)
	if err != nil {
		return 0, err
	}
	switch v.Kind {
	case gvalue.Pair, gvalue.Range, gvalue.Slice:
		return v.Right, nil
	default:
		return s.AddUnit(), nil
	}
}

// AccessLengthInternal: List/CharList/ByteList->count; Range->end-start+1;
// Slice->length of its range; others->Unit (spec §4.4, verbatim table).
func AccessLengthInternal(s *gheap.Store, operand gvalue.Index) (gvalue.Index, error) {
	v, err := s.Get(operand)
	if err != nil {
		return 0, err
	}
	switch v.Kind {
	case gvalue.List:
		return s.AddNumber(gvalue.Int(int64(len(v.Items))))
	case gvalue.CharList:
		return s.AddNumber(gvalue.Int(int64(len(v.Chars))))
	case gvalue.ByteList:
		return s.AddNumber(gvalue.Int(int64(len(v.Bytes))))
	case gvalue.Range:
		start, end, err := s.RangeBounds(operand)
		if err != nil {
			return 0, err
		}
		if end < start {
			return s.AddNumber(gvalue.Int(0))
		}
		return s.AddNumber(gvalue.Int(end - start + 1))
	case gvalue.Slice:
		start, end, err := s.RangeBounds(v.Right)
		if err != nil {
			return 0, err
		}
		if end < start {
			return s.AddNumber(gvalue.Int(0))
		}
		return s.AddNumber(gvalue.Int(end - start + 1))
	default:
		return s.AddUnit(), nil
	}
}

// symbolKeyAccess resolves a list access by Symbol or CharList key via the
// association table (spec §4.4 Access path).
func symbolKeyAccess(s *gheap.Store, listIdx gvalue.Index, hash uint64) (gvalue.Index, error) {
	result, hit, err := s.LookupAssoc(listIdx, hash)
	if err != nil {
		return 0, err
	}
	if !hit {
		return s.AddUnit(), nil
	}
	return result, nil
}

// Access implements the polymorphic Access opcode (spec §4.2, dispatch
// table spec §4.4): List/CharList/ByteList/Range positional or keyed
// access. It does not handle List-left/Range-right slicing or List/List
// rebuild — those are Apply's job (see apply.go); Access is the plain
// "index into a container" half of the protocol.
func Access(s *gheap.Store, ctx gcontext.Context, left, right gvalue.Index) (gvalue.Index, error) {
	lv, err := s.Get(left)
	if err != nil {
		return 0, err
	}
	rv, err := s.Get(right)
	if err != nil {
		return 0, err
	}

	switch lv.Kind {
	case gvalue.List:
		switch rv.Kind {
		case gvalue.Number:
			pos := rv.Number.AsInt()
			if pos < 0 {
				return s.AddUnit(), nil
			}
			if pos >= int64(len(lv.Items)) {
				return s.AddUnit(), nil
			}
			return lv.Items[pos], nil
		case gvalue.Symbol:
			return symbolKeyAccess(s, left, rv.Symbol)
		case gvalue.CharList:
			return symbolKeyAccess(s, left, gheap.HashName(string(rv.Chars)))
		}
	case gvalue.CharList:
		if rv.Kind == gvalue.Number {
			pos := rv.Number.AsInt()
			if pos < 0 || pos >= int64(len(lv.Chars)) {
				return s.AddUnit(), nil
			}
			return s.AddChar(lv.Chars[pos])
		}
	case gvalue.ByteList:
		if rv.Kind == gvalue.Number {
			pos := rv.Number.AsInt()
			if pos < 0 || pos >= int64(len(lv.Bytes)) {
				return s.AddUnit(), nil
			}
			return s.AddByte(lv.Bytes[pos])
		}
	case gvalue.Range:
		if rv.Kind == gvalue.Number {
			start, end, err := s.RangeBounds(left)
			if err != nil {
				return 0, err
			}
			n := rv.Number.AsInt()
			if end >= start && n >= 0 && n <= end-start {
				return s.AddNumber(gvalue.Int(start + n))
			}
			return s.AddUnit(), nil
		}
	case gvalue.Concatenation, gvalue.Slice:
		if rv.Kind == gvalue.Number {
			pos := rv.Number.AsInt()
			result, ok, err := elementAt(s, left, pos)
			if err != nil {
				return 0, err
			}
			if !ok {
				return s.AddUnit(), nil
			}
			return result, nil
		}
	}

	return deferOrUnit(s, ctx, "Access", left, right)
}
