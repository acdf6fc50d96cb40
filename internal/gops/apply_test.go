package gops

import (
	"testing"

	"garnish/internal/gcode"
	"garnish/internal/gcontext"
	"garnish/internal/gheap"
	"garnish/internal/gvalue"
)

func TestApplyExpressionSchedulesCallAndEmptyApplyMatchesUnit(t *testing.T) {
	s := gheap.New()
	offset := s.PushInstruction(gcode.Instruction{Op: gcode.EndExpression})
	jumpID := s.PushToJumpTable(offset)
	expr := mustIdx(t, s.AddExpression(jumpID))
	input := mustIdx(t, s.AddNumber(gvalue.Int(20)))

	s.SetInstructionCursor(5)
	effect, err := Apply(s, gcontext.NoopContext{}, expr, input)
	if err != nil {
		t.Fatal(err)
	}
	if !effect.HasNextCursor || effect.NextCursor != offset {
		t.Fatalf("Apply of an Expression must redirect the cursor to its jump-table target, got %+v", effect)
	}
	if s.JumpPathLen() != 1 {
		t.Fatalf("expected a planted jump-path frame, got depth %d", s.JumpPathLen())
	}
	cur, err := s.GetCurrentValue()
	if err != nil {
		t.Fatal(err)
	}
	if cur != input {
		t.Fatal("Apply must push its right operand as the new call's input")
	}

	// EmptyApply must behave identically modulo passing Unit as input.
	s2 := gheap.New()
	offset2 := s2.PushInstruction(gcode.Instruction{Op: gcode.EndExpression})
	jumpID2 := s2.PushToJumpTable(offset2)
	expr2 := mustIdx(t, s2.AddExpression(jumpID2))
	s2.SetInstructionCursor(5)
	effect2, err := EmptyApply(s2, gcontext.NoopContext{}, expr2)
	if err != nil {
		t.Fatal(err)
	}
	if effect2.NextCursor != offset2 {
		t.Fatal("EmptyApply of an Expression should schedule a call exactly like Apply(x, Unit)")
	}
	cur2, err := s2.GetCurrentValue()
	if err != nil {
		t.Fatal(err)
	}
	if cur2 != gheap.UnitIndex {
		t.Fatal("EmptyApply must use Unit as the call's input")
	}
}

// TestApplyRangeNarrowing verifies spec §8 scenario 4: applying range
// [5, 15] to range [1, 9] narrows to [6, 14].
func TestApplyRangeNarrowing(t *testing.T) {
	s := gheap.New()
	outer := mustIdx(t, MakeRange(s, mustIdx(t, s.AddNumber(gvalue.Int(5))), mustIdx(t, s.AddNumber(gvalue.Int(15)))))
	inner := mustIdx(t, MakeRange(s, mustIdx(t, s.AddNumber(gvalue.Int(1))), mustIdx(t, s.AddNumber(gvalue.Int(9)))))

	effect, err := Apply(s, gcontext.NoopContext{}, outer, inner)
	if err != nil {
		t.Fatal(err)
	}
	if !effect.HasResult {
		t.Fatal("Range/Range Apply should produce a result, not redirect the cursor")
	}
	start, end, err := s.RangeBounds(effect.Result)
	if err != nil {
		t.Fatal(err)
	}
	if start != 6 || end != 14 {
		t.Fatalf("narrowed range = [%d, %d], want [6, 14]", start, end)
	}
}

func mustSymbol(t *testing.T, s *gheap.Store, name string) gvalue.Index {
	t.Helper()
	return mustIdx(t, s.AddSymbol(gheap.HashName(name), name))
}

func TestApplyListToListRebuildsWithAccessedValues(t *testing.T) {
	s := gheap.New()
	keyA := mustSymbol(t, s, "a")
	keyB := mustSymbol(t, s, "b")
	pairA := mustIdx(t, s.AddPair(keyA, mustIdx(t, s.AddNumber(gvalue.Int(1)))))
	pairB := mustIdx(t, s.AddPair(keyB, mustIdx(t, s.AddNumber(gvalue.Int(2)))))
	s.StartList(2)
	for _, p := range []gvalue.Index{pairA, pairB} {
		hash, isAssoc := s.AssocHashOf(p)
		if err := s.AddToList(p, isAssoc, hash); err != nil {
			t.Fatal(err)
		}
	}
	source := mustIdx(t, s.EndList())

	// keys list: ["a"] selects {a: 1} back out as a rebuilt List.
	s.StartList(1)
	if err := s.AddToList(keyA, false, 0); err != nil {
		t.Fatal(err)
	}
	keysList := mustIdx(t, s.EndList())

	effect, err := Apply(s, gcontext.NoopContext{}, source, keysList)
	if err != nil {
		t.Fatal(err)
	}
	if !effect.HasResult {
		t.Fatal("List/List Apply should produce a result")
	}
	rv, err := s.Get(effect.Result)
	if err != nil {
		t.Fatal(err)
	}
	if len(rv.Items) != 1 {
		t.Fatalf("expected 1 rebuilt item, got %d", len(rv.Items))
	}
	got, hit, err := s.LookupAssoc(effect.Result, gheap.HashName("a"))
	if err != nil || !hit {
		t.Fatalf("expected rebuilt list to still be keyed by \"a\", hit=%v err=%v", hit, err)
	}
	gv, _ := s.Get(got)
	if gv.Number.AsInt() != 1 {
		t.Fatalf("rebuilt value for \"a\" = %v, want 1", gv.Number)
	}
}
