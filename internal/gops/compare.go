package gops

import (
	"garnish/internal/gcontext"
	"garnish/internal/gheap"
	"garnish/internal/gvalue"
)

// TypeOf reifies the Kind of operand as a Type value (spec §4.2).
func TypeOf(s *gheap.Store, operand gvalue.Index) (gvalue.Index, error) {
	v, err := s.Get(operand)
	if err != nil {
		return 0, err
	}
	return s.AddType(v.Kind)
}

// TypeEqual compares two Type values by their tag, or compares a
// non-Type operand's own Kind against a Type operand.
func TypeEqual(s *gheap.Store, left, right gvalue.Index) (gvalue.Index, error) {
	lv, err := s.Get(left)
	if err != nil {
		return 0, err
	}
	rv, err := s.Get(right)
	if err != nil {
		return 0, err
	}
	lk, rk := lv.Kind, rv.Kind
	if lv.Kind == gvalue.Type {
		lk = lv.Type
	}
	if rv.Kind == gvalue.Type {
		rk = rv.Type
	}
	return boolIndex(s, lk == rk), nil
}

// deepEqual implements spec §3.2/§8 Number-equality-across-variants and
// general structural equality: scalars compare by value, list-likes
// compare element-wise via lengthOf/elementAt so a List, a Concatenation
// of two Lists, and a Slice spanning the same logical elements all
// compare Equal when their observable contents match (spec's "purely
// structural" rule for Concatenation/Slice, §3.2).
func deepEqual(s *gheap.Store, left, right gvalue.Index) (bool, error) {
	lv, err := s.Get(left)
	if err != nil {
		return false, err
	}
	rv, err := s.Get(right)
	if err != nil {
		return false, err
	}

	if lv.Kind.IsListLike() || rv.Kind.IsListLike() {
		ll, err := lengthOf(s, left)
		if err != nil {
			return false, err
		}
		rl, err := lengthOf(s, right)
		if err != nil {
			return false, err
		}
		if ll != rl {
			return false, nil
		}
		for i := int64(0); i < ll; i++ {
			le, _, err := elementAt(s, left, i)
			if err != nil {
				return false, err
			}
			re, _, err := elementAt(s, right, i)
			if err != nil {
				return false, err
			}
			eq, err := deepEqual(s, le, re)
			if err != nil {
				return false, err
			}
			if !eq {
				return false, nil
			}
		}
		return true, nil
	}

	if lv.Kind == gvalue.Number && rv.Kind == gvalue.Number {
		return lv.Number.Equal(rv.Number), nil
	}

	if lv.Kind != rv.Kind {
		// Unit/True/False are distinct singleton kinds; any other
		// kind mismatch (Number vs Char, etc.) is simply not equal.
		return false, nil
	}

	switch lv.Kind {
	case gvalue.Unit, gvalue.True, gvalue.False:
		return true, nil
	case gvalue.Char:
		return lv.Char == rv.Char, nil
	case gvalue.Byte:
		return lv.Byte == rv.Byte, nil
	case gvalue.Symbol:
		return lv.Symbol == rv.Symbol, nil
	case gvalue.Type:
		return lv.Type == rv.Type, nil
	case gvalue.Expression:
		return lv.Expression == rv.Expression, nil
	case gvalue.External:
		return lv.External == rv.External, nil
	case gvalue.SymbolList:
		if len(lv.SymbolParts) != len(rv.SymbolParts) {
			return false, nil
		}
		for i := range lv.SymbolParts {
			a, b := lv.SymbolParts[i], rv.SymbolParts[i]
			if a.IsNumber != b.IsNumber {
				return false, nil
			}
			if a.IsNumber {
				if !a.Number.Equal(b.Number) {
					return false, nil
				}
			} else if a.Symbol != b.Symbol {
				return false, nil
			}
		}
		return true, nil
	case gvalue.Pair:
		leq, err := deepEqual(s, lv.Left, rv.Left)
		if err != nil || !leq {
			return false, err
		}
		return deepEqual(s, lv.Right, rv.Right)
	case gvalue.Partial:
		leq, err := deepEqual(s, lv.Left, rv.Left)
		if err != nil || !leq {
			return false, err
		}
		return deepEqual(s, lv.Right, rv.Right)
	default:
		return false, nil
	}
}

func Equal(s *gheap.Store, ctx gcontext.Context, left, right gvalue.Index) (gvalue.Index, error) {
	eq, err := deepEqual(s, left, right)
	if err != nil {
		return 0, err
	}
	return boolIndex(s, eq), nil
}

func NotEqual(s *gheap.Store, ctx gcontext.Context, left, right gvalue.Index) (gvalue.Index, error) {
	eq, err := deepEqual(s, left, right)
	if err != nil {
		return 0, err
	}
	return boolIndex(s, !eq), nil
}

// orderedCompare returns (cmp, ok): ok is false when operands are not
// comparably ordered (anything but Number/Char/Byte/CharList), in which
// case the opcode handlers defer to the context.
func orderedCompare(s *gheap.Store, left, right gvalue.Index) (int, bool, error) {
	lv, err := s.Get(left)
	if err != nil {
		return 0, false, err
	}
	rv, err := s.Get(right)
	if err != nil {
		return 0, false, err
	}
	switch {
	case lv.Kind == gvalue.Number && rv.Kind == gvalue.Number:
		return lv.Number.Compare(rv.Number), true, nil
	case lv.Kind == gvalue.Char && rv.Kind == gvalue.Char:
		return compareRune(lv.Char, rv.Char), true, nil
	case lv.Kind == gvalue.Byte && rv.Kind == gvalue.Byte:
		return compareInt(int64(lv.Byte), int64(rv.Byte)), true, nil
	case lv.Kind == gvalue.CharList && rv.Kind == gvalue.CharList:
		return compareRunes(lv.Chars, rv.Chars), true, nil
	default:
		return 0, false, nil
	}
}

func compareRune(a, b rune) int { return compareInt(int64(a), int64(b)) }

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareRunes(a, b []rune) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := compareRune(a[i], b[i]); c != 0 {
			return c
		}
	}
	return compareInt(int64(len(a)), int64(len(b)))
}

func orderedOp(s *gheap.Store, ctx gcontext.Context, op string, left, right gvalue.Index, ok func(cmp int) bool) (gvalue.Index, error) {
	cmp, comparable, err := orderedCompare(s, left, right)
	if err != nil {
		return 0, err
	}
	if !comparable {
		return deferOrUnit(s, ctx, op, left, right)
	}
	return boolIndex(s, ok(cmp)), nil
}

func LessThan(s *gheap.Store, ctx gcontext.Context, left, right gvalue.Index) (gvalue.Index, error) {
	return orderedOp(s, ctx, "LessThan", left, right, func(c int) bool { return c < 0 })
}

func LessThanOrEqual(s *gheap.Store, ctx gcontext.Context, left, right gvalue.Index) (gvalue.Index, error) {
	return orderedOp(s, ctx, "LessThanOrEqual", left, right, func(c int) bool { return c <= 0 })
}

func GreaterThan(s *gheap.Store, ctx gcontext.Context, left, right gvalue.Index) (gvalue.Index, error) {
	return orderedOp(s, ctx, "GreaterThan", left, right, func(c int) bool { return c > 0 })
}

func GreaterThanOrEqual(s *gheap.Store, ctx gcontext.Context, left, right gvalue.Index) (gvalue.Index, error) {
	return orderedOp(s, ctx, "GreaterThanOrEqual", left, right, func(c int) bool { return c >= 0 })
}
