package gops

import (
	"garnish/internal/gcontext"
	"garnish/internal/gerrors"
	"garnish/internal/gheap"
	"garnish/internal/gvalue"
)

// numberOperands reads two Number operands, reporting ok=false (not an
// error) when either side is not a Number so the caller can soft-fail to
// Unit or defer to the context.
func numberOperands(s *gheap.Store, left, right gvalue.Index) (gvalue.Number, gvalue.Number, bool, error) {
	lv, err := s.Get(left)
	if err != nil {
		return gvalue.Number{}, gvalue.Number{}, false, err
	}
	rv, err := s.Get(right)
	if err != nil {
		return gvalue.Number{}, gvalue.Number{}, false, err
	}
	if lv.Kind != gvalue.Number || rv.Kind != gvalue.Number {
		return gvalue.Number{}, gvalue.Number{}, false, nil
	}
	return lv.Number, rv.Number, true, nil
}

// binaryArith is shared scaffolding for Add/Subtract/Multiply: Number
// operands compute directly; anything else defers to ctx.DeferOp, falling
// back to Unit.
func binaryArith(s *gheap.Store, ctx gcontext.Context, op string, left, right gvalue.Index, compute func(a, b gvalue.Number) gvalue.Number) (gvalue.Index, error) {
	a, b, ok, err := numberOperands(s, left, right)
	if err != nil {
		return 0, err
	}
	if ok {
		return s.AddNumber(compute(a, b))
	}
	return deferOrUnit(s, ctx, op, left, right)
}

func Add(s *gheap.Store, ctx gcontext.Context, left, right gvalue.Index) (gvalue.Index, error) {
	return binaryArith(s, ctx, "Add", left, right, gvalue.Number.Add)
}

func Subtract(s *gheap.Store, ctx gcontext.Context, left, right gvalue.Index) (gvalue.Index, error) {
	return binaryArith(s, ctx, "Subtract", left, right, gvalue.Number.Sub)
}

func Multiply(s *gheap.Store, ctx gcontext.Context, left, right gvalue.Index) (gvalue.Index, error) {
	return binaryArith(s, ctx, "Multiply", left, right, gvalue.Number.Mul)
}

func Power(s *gheap.Store, ctx gcontext.Context, left, right gvalue.Index) (gvalue.Index, error) {
	return binaryArith(s, ctx, "Power", left, right, gvalue.Number.Power)
}

// Divide always produces a float result; division by zero is a hard
// Overflow error (spec §7).
func Divide(s *gheap.Store, ctx gcontext.Context, left, right gvalue.Index) (gvalue.Index, error) {
	a, b, ok, err := numberOperands(s, left, right)
	if err != nil {
		return 0, err
	}
	if !ok {
		return deferOrUnit(s, ctx, "Divide", left, right)
	}
	result, divOk := a.Div(b)
	if !divOk {
		return 0, gerrors.New(gerrors.Overflow, "division by zero")
	}
	return s.AddNumber(result)
}

func IntegerDivide(s *gheap.Store, ctx gcontext.Context, left, right gvalue.Index) (gvalue.Index, error) {
	a, b, ok, err := numberOperands(s, left, right)
	if err != nil {
		return 0, err
	}
	if !ok {
		return deferOrUnit(s, ctx, "IntegerDivide", left, right)
	}
	result, divOk := a.IntegerDiv(b)
	if !divOk {
		return 0, gerrors.New(gerrors.Overflow, "integer division by zero")
	}
	return s.AddNumber(result)
}

func Remainder(s *gheap.Store, ctx gcontext.Context, left, right gvalue.Index) (gvalue.Index, error) {
	a, b, ok, err := numberOperands(s, left, right)
	if err != nil {
		return 0, err
	}
	if !ok {
		return deferOrUnit(s, ctx, "Remainder", left, right)
	}
	result, divOk := a.Remainder(b)
	if !divOk {
		return 0, gerrors.New(gerrors.Overflow, "remainder by zero")
	}
	return s.AddNumber(result)
}

func Opposite(s *gheap.Store, ctx gcontext.Context, operand gvalue.Index) (gvalue.Index, error) {
	v, err := s.Get(operand)
	if err != nil {
		return 0, err
	}
	if v.Kind != gvalue.Number {
		return deferOrUnitUnary(s, ctx, "Opposite", operand)
	}
	return s.AddNumber(v.Number.Opposite())
}

func AbsoluteValue(s *gheap.Store, ctx gcontext.Context, operand gvalue.Index) (gvalue.Index, error) {
	v, err := s.Get(operand)
	if err != nil {
		return 0, err
	}
	if v.Kind != gvalue.Number {
		return deferOrUnitUnary(s, ctx, "AbsoluteValue", operand)
	}
	return s.AddNumber(v.Number.Absolute())
}
