package gvm

import (
	"testing"

	"garnish/internal/gcode"
	"garnish/internal/gcontext"
	"garnish/internal/gheap"
	"garnish/internal/gvalue"
)

func mustIdx(t *testing.T, idx gvalue.Index, err error) gvalue.Index {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
	return idx
}

// TestArithmeticExpression: "Put 10; Put 20; Add; EndExpression" leaves
// Number 30 on top of the registers (spec §8 scenario 1).
func TestArithmeticExpression(t *testing.T) {
	s := gheap.New()
	ten := mustIdx(t, s.AddNumber(gvalue.Int(10)))
	twenty := mustIdx(t, s.AddNumber(gvalue.Int(20)))

	s.PushInstruction(gcode.Instruction{Op: gcode.Put, Immediate: int(ten), HasImm: true})
	s.PushInstruction(gcode.Instruction{Op: gcode.Put, Immediate: int(twenty), HasImm: true})
	s.PushInstruction(gcode.Instruction{Op: gcode.Add})
	s.PushInstruction(gcode.Instruction{Op: gcode.EndExpression})

	vm := New(s, gcontext.NoopContext{})
	vm.Start()
	if err := vm.Run(); err != nil {
		t.Fatal(err)
	}
	if vm.State() != Ended {
		t.Fatalf("expected Ended, got %v", vm.State())
	}
	if s.JumpPathLen() != 0 {
		t.Fatalf("expected balanced jump path, got depth %d", s.JumpPathLen())
	}
	resultIdx, ok := vm.Result()
	if !ok {
		t.Fatal("expected a result on the registers")
	}
	rv, err := s.Get(resultIdx)
	if err != nil {
		t.Fatal(err)
	}
	if rv.Kind != gvalue.Number || rv.Number.AsInt() != 30 {
		t.Fatalf("result = %v, want Number 30", rv)
	}
}

// TestExpressionCallThroughJumpTable: a main body applies an Expression
// to 20; the called expression adds its own Put 10 to PutValue (its
// input) and returns 30, with the jump path back to empty by the time
// the whole program ends (spec §8 scenario 2).
func TestExpressionCallThroughJumpTable(t *testing.T) {
	s := gheap.New()

	// Callee laid out first so its offset is known before the main
	// body's Put instruction needs to reference the Expression value
	// that wraps it: Put 10; PutValue; Add; EndExpression.
	ten := mustIdx(t, s.AddNumber(gvalue.Int(10)))
	calleeStart := s.PushInstruction(gcode.Instruction{Op: gcode.Put, Immediate: int(ten), HasImm: true})
	s.PushInstruction(gcode.Instruction{Op: gcode.PutValue})
	s.PushInstruction(gcode.Instruction{Op: gcode.Add})
	s.PushInstruction(gcode.Instruction{Op: gcode.EndExpression})

	jumpID := s.PushToJumpTable(calleeStart)
	exprIdx := mustIdx(t, s.AddExpression(jumpID))
	twenty := mustIdx(t, s.AddNumber(gvalue.Int(20)))

	// Main body: Put Expression(exprIdx); Put 20; Apply; EndExpression.
	mainStart := s.PushInstruction(gcode.Instruction{Op: gcode.Put, Immediate: int(exprIdx), HasImm: true})
	s.PushInstruction(gcode.Instruction{Op: gcode.Put, Immediate: int(twenty), HasImm: true})
	s.PushInstruction(gcode.Instruction{Op: gcode.Apply})
	s.PushInstruction(gcode.Instruction{Op: gcode.EndExpression})

	vm := New(s, gcontext.NoopContext{})
	s.PushValueStack(s.AddUnit())
	s.SetInstructionCursor(mainStart)
	if err := vm.Run(); err != nil {
		t.Fatal(err)
	}

	if s.JumpPathLen() != 0 {
		t.Fatalf("expected empty jump path at top level, got depth %d", s.JumpPathLen())
	}
	resultIdx, ok := vm.Result()
	if !ok {
		t.Fatal("expected a result")
	}
	rv, err := s.Get(resultIdx)
	if err != nil {
		t.Fatal(err)
	}
	if rv.Kind != gvalue.Number || rv.Number.AsInt() != 30 {
		t.Fatalf("result = %v, want Number 30", rv)
	}
}

// TestReapplyGating covers spec §8 scenario 6: Reapply is a no-op when
// its gate is False (falling through to the next instruction), and
// retargets the cursor plus replaces the value-stack top when the gate
// is True (jumping straight to the gated target instead).
func TestReapplyGating(t *testing.T) {
	run := func(t *testing.T, gateTrue bool) int64 {
		s := gheap.New()
		markerB := mustIdx(t, s.AddNumber(gvalue.Int(2)))
		markerA := mustIdx(t, s.AddNumber(gvalue.Int(1)))
		newInput := mustIdx(t, s.AddNumber(gvalue.Int(99)))

		// Reached only if Reapply actually jumps.
		calleeEnd := s.PushInstruction(gcode.Instruction{Op: gcode.Put, Immediate: int(markerB), HasImm: true})
		s.PushInstruction(gcode.Instruction{Op: gcode.EndExpression})
		jumpID := s.PushToJumpTable(calleeEnd)

		gate := s.AddFalse()
		if gateTrue {
			gate = s.AddTrue()
		}
		start := s.PushInstruction(gcode.Instruction{Op: gcode.Put, Immediate: int(gate), HasImm: true})
		s.PushInstruction(gcode.Instruction{Op: gcode.Put, Immediate: int(newInput), HasImm: true})
		s.PushInstruction(gcode.Instruction{Op: gcode.Reapply, Immediate: jumpID, HasImm: true})
		// Reached only if Reapply did NOT jump.
		s.PushInstruction(gcode.Instruction{Op: gcode.Put, Immediate: int(markerA), HasImm: true})
		s.PushInstruction(gcode.Instruction{Op: gcode.EndExpression})

		vm := New(s, gcontext.NoopContext{})
		s.PushValueStack(s.AddUnit())
		s.SetInstructionCursor(start)
		if err := vm.Run(); err != nil {
			t.Fatal(err)
		}
		resultIdx, ok := vm.Result()
		if !ok {
			t.Fatal("expected a result")
		}
		rv, err := s.Get(resultIdx)
		if err != nil {
			t.Fatal(err)
		}
		return rv.Number.AsInt()
	}

	if got := run(t, false); got != 1 {
		t.Fatalf("false gate should fall through to markerA (1), got %d", got)
	}
	if got := run(t, true); got != 2 {
		t.Fatalf("true gate should jump to the gated target and leave markerB (2), got %d", got)
	}
}
