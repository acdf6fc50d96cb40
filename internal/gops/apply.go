package gops

import (
	"garnish/internal/gcode"
	"garnish/internal/gcontext"
	"garnish/internal/gerrors"
	"garnish/internal/gheap"
	"garnish/internal/gvalue"
)

// simple wraps a plain (index, err) result as a StepEffect that never
// touches the instruction cursor — the common case for every Apply/
// Access combination that doesn't schedule a call.
func simple(idx gvalue.Index, err error) (gcode.StepEffect, error) {
	if err != nil {
		return gcode.StepEffect{}, err
	}
	return gcode.StepEffect{Result: idx, HasResult: true}, nil
}

// addOverflow reports a+b and whether it fit in an int64, used by range
// narrowing to turn silent wraparound into a hard Overflow error (spec
// §5: "violating a structural invariant ... is a hard failure").
func addOverflow(a, b int64) (int64, bool) {
	sum := a + b
	if b > 0 && sum < a {
		return 0, false
	}
	if b < 0 && sum > a {
		return 0, false
	}
	return sum, true
}

// narrowRange computes the Range produced by applying an inner
// [innerStart, innerEnd] Range as an offset/span against an outer
// [outerStart, outerEnd] Range: the result starts at outerStart+innerStart
// (innerStart positions into the outer range) and spans innerEnd-innerStart
// further (spec §8 scenario 4, "range narrowing"). Used for both Range/Range
// Apply and Slice/Range Apply (the latter narrows the slice's own
// range, then re-slices the same underlying value, so the result is a
// Slice of the original value, never a Slice of a Slice).
func narrowRange(outerStart, outerEnd, innerStart, innerEnd int64) (int64, int64, error) {
	newStart, ok := addOverflow(outerStart, innerStart)
	if !ok {
		return 0, 0, gerrors.Newf(gerrors.Overflow, "range narrowing overflow: %d + %d", outerStart, innerStart)
	}
	span := innerEnd - innerStart
	newEnd, ok := addOverflow(newStart, span)
	if !ok {
		return 0, 0, gerrors.Newf(gerrors.Overflow, "range narrowing overflow: %d + %d", newStart, span)
	}
	if newStart > outerEnd || newEnd > outerEnd {
		return 0, 0, gerrors.Newf(gerrors.Overflow, "narrowed range [%d, %d] exceeds outer range [%d, %d]", newStart, newEnd, outerStart, outerEnd)
	}
	return newStart, newEnd, nil
}

// Apply implements the unified Apply/Access dispatch protocol (spec
// §4.4). Most combinations resolve in one step and are reported as a
// StepEffect carrying only a register result; Apply of an Expression is
// the one case that redirects the instruction cursor and the driver
// (gvm) must honor NextCursor instead of advancing by one.
func Apply(s *gheap.Store, ctx gcontext.Context, left, right gvalue.Index) (gcode.StepEffect, error) {
	lv, err := s.Get(left)
	if err != nil {
		return gcode.StepEffect{}, err
	}

	switch lv.Kind {
	case gvalue.Expression:
		return applyExpression(s, lv, right)
	case gvalue.External:
		return applyExternal(s, ctx, lv, right)
	case gvalue.Partial:
		// Re-apply the bound receiver to the bound input, ignoring the
		// operand this Apply was actually given (SPEC_FULL.md §12.3;
		// this is what makes EmptyApply and Apply equivalent for a
		// Partial left operand — both discard their right side).
		return Apply(s, ctx, lv.Left, lv.Right)
	}

	rv, err := s.Get(right)
	if err != nil {
		return gcode.StepEffect{}, err
	}

	if rv.Kind == gvalue.Range {
		switch lv.Kind {
		case gvalue.List, gvalue.CharList, gvalue.ByteList, gvalue.Concatenation:
			idx, err := s.AddSlice(left, right)
			return simple(idx, err)
		case gvalue.Range:
			idx, err := applyRangeNarrow(s, left, lv, right, rv)
			return simple(idx, err)
		case gvalue.Slice:
			idx, err := applySliceNarrow(s, left, lv, right, rv)
			return simple(idx, err)
		}
	}

	if lv.Kind == gvalue.List && rv.Kind == gvalue.List {
		idx, err := applyListToList(s, ctx, left, lv, rv)
		return simple(idx, err)
	}

	idx, err := Access(s, ctx, left, right)
	return simple(idx, err)
}

// EmptyApply is Apply with an implicit Unit right operand (spec §4.2,
// testable property in spec §8: "Apply(x, Unit) and EmptyApply(x)
// always produce the same result").
func EmptyApply(s *gheap.Store, ctx gcontext.Context, left gvalue.Index) (gcode.StepEffect, error) {
	return Apply(s, ctx, left, s.AddUnit())
}

func applyExpression(s *gheap.Store, lv gvalue.Value, right gvalue.Index) (gcode.StepEffect, error) {
	target, err := s.GetFromJumpTable(lv.Expression)
	if err != nil {
		return gcode.StepEffect{}, err
	}
	returnAddr := s.GetInstructionCursor() + 1
	s.PushJumpPath(returnAddr)
	s.PushValueStack(right)
	return gcode.StepEffect{NextCursor: target, HasNextCursor: true}, nil
}

func applyExternal(s *gheap.Store, ctx gcontext.Context, lv gvalue.Value, right gvalue.Index) (gcode.StepEffect, error) {
	if ctx != nil {
		handled, err := ctx.Apply(s, lv.External, right)
		if err != nil {
			return gcode.StepEffect{}, err
		}
		if handled {
			// The context already pushed its own result register.
			return gcode.StepEffect{}, nil
		}
	}
	return gcode.StepEffect{Result: s.AddUnit(), HasResult: true}, nil
}

func applyRangeNarrow(s *gheap.Store, outerIdx gvalue.Index, outer gvalue.Value, innerIdx gvalue.Index, inner gvalue.Value) (gvalue.Index, error) {
	outerStart, outerEnd, err := s.RangeBounds(outerIdx)
	if err != nil {
		return 0, err
	}
	innerStart, innerEnd, err := s.RangeBounds(innerIdx)
	if err != nil {
		return 0, err
	}
	newStart, newEnd, err := narrowRange(outerStart, outerEnd, innerStart, innerEnd)
	if err != nil {
		return 0, err
	}
	return newRange(s, newStart, newEnd)
}

func applySliceNarrow(s *gheap.Store, sliceIdx gvalue.Index, slice gvalue.Value, rangeIdx gvalue.Index, rng gvalue.Value) (gvalue.Index, error) {
	outerStart, outerEnd, err := s.RangeBounds(slice.Right)
	if err != nil {
		return 0, err
	}
	innerStart, innerEnd, err := s.RangeBounds(rangeIdx)
	if err != nil {
		return 0, err
	}
	newStart, newEnd, err := narrowRange(outerStart, outerEnd, innerStart, innerEnd)
	if err != nil {
		return 0, err
	}
	newRangeIdx, err := newRange(s, newStart, newEnd)
	if err != nil {
		return 0, err
	}
	return s.AddSlice(slice.Left, newRangeIdx)
}

// applyListToList rebuilds a List by applying each element of right to
// left as an access key (spec §4.4's "List left, List right" row). A
// right-hand element that is a Pair whose left is a Symbol or CharList
// looks up the pair's right and stores the result under the pair's left
// (key renaming);
// a right-hand element that is itself a Symbol or CharList is used both
// as the lookup key and as the result entry's key, so the rebuilt list
// stays accessible by the same name; any other element (typically a
// Number) contributes its looked-up value positionally, with no key.
func applyListToList(s *gheap.Store, ctx gcontext.Context, left gvalue.Index, lv, rv gvalue.Value) (gvalue.Index, error) {
	s.StartList(len(rv.Items))
	for _, itemIdx := range rv.Items {
		iv, err := s.Get(itemIdx)
		if err != nil {
			return 0, err
		}

		var entry gvalue.Index
		switch {
		case iv.Kind == gvalue.Pair:
			keyIdx := iv.Left
			kv, err := s.Get(keyIdx)
			if err != nil {
				return 0, err
			}
			if kv.Kind == gvalue.Symbol || kv.Kind == gvalue.CharList {
				value, err := Access(s, ctx, left, iv.Right)
				if err != nil {
					return 0, err
				}
				entry, err = s.AddPair(keyIdx, value)
				if err != nil {
					return 0, err
				}
			} else {
				value, err := Access(s, ctx, left, itemIdx)
				if err != nil {
					return 0, err
				}
				entry = value
			}
		case iv.Kind == gvalue.Symbol || iv.Kind == gvalue.CharList:
			value, err := Access(s, ctx, left, itemIdx)
			if err != nil {
				return 0, err
			}
			entry, err = s.AddPair(itemIdx, value)
			if err != nil {
				return 0, err
			}
		default:
			value, err := Access(s, ctx, left, itemIdx)
			if err != nil {
				return 0, err
			}
			entry = value
		}

		hash, isAssoc := s.AssocHashOf(entry)
		if err := s.AddToList(entry, isAssoc, hash); err != nil {
			return 0, err
		}
	}
	return s.EndList()
}
