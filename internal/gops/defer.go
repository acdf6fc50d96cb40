package gops

import (
	"garnish/internal/gcontext"
	"garnish/internal/gheap"
	"garnish/internal/gvalue"
)

// deferOrUnit is the shared "last-chance dispatch" path (spec §4.4, §6.2
// defer_op): when an op receives operand kinds it doesn't handle, ask the
// context; if it doesn't handle it either, push/return Unit.
func deferOrUnit(s *gheap.Store, ctx gcontext.Context, op string, left, right gvalue.Index) (gvalue.Index, error) {
	lv, err := s.Get(left)
	if err != nil {
		return 0, err
	}
	rv, err := s.Get(right)
	if err != nil {
		return 0, err
	}
	if ctx != nil {
		handled, err := ctx.DeferOp(s, op, lv.Kind, left, rv.Kind, right)
		if err != nil {
			return 0, err
		}
		if handled {
			return s.PopRegister()
		}
	}
	return s.AddUnit(), nil
}

// deferOrUnitUnary is deferOrUnit for unary ops: right is implicitly Unit.
func deferOrUnitUnary(s *gheap.Store, ctx gcontext.Context, op string, operand gvalue.Index) (gvalue.Index, error) {
	return deferOrUnit(s, ctx, op, operand, s.AddUnit())
}
