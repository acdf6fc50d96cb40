package gops

import (
	"garnish/internal/gcontext"
	"garnish/internal/gheap"
	"garnish/internal/gvalue"
)

// bitwiseOperands reads two integer Number operands. Float operands fail
// soft to Unit per spec §4.2 ("Numbers only; float operands fail soft to
// Unit"), distinct from the "defer to context" path used by arithmetic,
// since a float Number IS the right Kind, just the wrong variant.
func bitwiseOperands(s *gheap.Store, left, right gvalue.Index) (int64, int64, bool, error) {
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
	li, lok := lv.Number.AsBitwiseInt()
	ri, rok := rv.Number.AsBitwiseInt()
	if !lok || !rok {
		return 0, 0, false, nil
	}
	return li, ri, true, nil
}

func bitwiseBinary(s *gheap.Store, ctx gcontext.Context, left, right gvalue.Index, compute func(a, b int64) int64) (gvalue.Index, error) {
	a, b, ok, err := bitwiseOperands(s, left, right)
	if err != nil {
		return 0, err
	}
	if !ok {
		return s.AddUnit(), nil
	}
	return s.AddNumber(gvalue.Int(compute(a, b)))
}

func BitwiseAnd(s *gheap.Store, ctx gcontext.Context, left, right gvalue.Index) (gvalue.Index, error) {
	return bitwiseBinary(s, ctx, left, right, func(a, b int64) int64 { return a & b })
}

func BitwiseOr(s *gheap.Store, ctx gcontext.Context, left, right gvalue.Index) (gvalue.Index, error) {
	return bitwiseBinary(s, ctx, left, right, func(a, b int64) int64 { return a | b })
}

func BitwiseXor(s *gheap.Store, ctx gcontext.Context, left, right gvalue.Index) (gvalue.Index, error) {
	return bitwiseBinary(s, ctx, left, right, func(a, b int64) int64 { return a ^ b })
}

func BitwiseShiftLeft(s *gheap.Store, ctx gcontext.Context, left, right gvalue.Index) (gvalue.Index, error) {
	return bitwiseBinary(s, ctx, left, right, func(a, b int64) int64 { return a << uint64(b) })
}

func BitwiseShiftRight(s *gheap.Store, ctx gcontext.Context, left, right gvalue.Index) (gvalue.Index, error) {
	return bitwiseBinary(s, ctx, left, right, func(a, b int64) int64 { return a >> uint64(b) })
}

func BitwiseNot(s *gheap.Store, operand gvalue.Index) (gvalue.Index, error) {
	v, err := s.Get(operand)
	if err != nil {
		return 0, err
	}
	if v.Kind != gvalue.Number {
		return s.AddUnit(), nil
	}
	i, ok := v.Number.AsBitwiseInt()
	if !ok {
		return s.AddUnit(), nil
	}
	return s.AddNumber(gvalue.Int(^i))
}
