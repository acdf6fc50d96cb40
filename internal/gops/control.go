package gops

// This file covers the control-flow opcodes: the ones that may
// redirect the instruction cursor instead of just contributing a
// register result (call/return semantics, jump opcodes).

import (
	"garnish/internal/gcode"
	"garnish/internal/gheap"
	"garnish/internal/gvalue"
)

// EndExpression closes out the current call (spec §4.3): it always
// pops the value stack (the input the call consumed) and then either
// ends execution (no outstanding jump path) or returns to the caller.
// On return, whatever single value the callee left on top of its
// registers survives as the call's result — pop_jump_path's frame
// cleanup discards the register stack down through the frame marker,
// so that value is saved before the pop and restored after it
// (this is what makes `Put 10; PutValue; Add;
// EndExpression`, called via Apply, leave its sum as the caller's next
// register rather than losing it to frame teardown).
func EndExpression(s *gheap.Store) (gcode.StepEffect, error) {
	if _, err := s.PopValueStack(); err != nil {
		return gcode.StepEffect{}, err
	}

	if s.JumpPathLen() == 0 {
		return gcode.StepEffect{NextCursor: s.GetInstructionLen(), HasNextCursor: true}, nil
	}

	result, hasResult := s.PeekTopValueRegister()
	if hasResult {
		if _, err := s.PopRegister(); err != nil {
			return gcode.StepEffect{}, err
		}
	}

	returnAddr, err := s.PopJumpPath()
	if err != nil {
		return gcode.StepEffect{}, err
	}

	if hasResult {
		s.PushRegister(result)
	}
	return gcode.StepEffect{NextCursor: returnAddr, HasNextCursor: true}, nil
}

// Reapply retargets the current call to jump_table[target], replacing
// the value-stack top with the new input, without altering jump-path
// depth — but only when gate is truthy; otherwise it is a no-op and the
// driver simply advances past it (spec §4.2, scenario 6 in spec §8).
func Reapply(s *gheap.Store, gate, newInput gvalue.Index, target int) (gcode.StepEffect, error) {
	truthy, err := IsTruthy(s, gate)
	if err != nil {
		return gcode.StepEffect{}, err
	}
	if !truthy {
		return gcode.StepEffect{}, nil
	}
	entry, err := s.GetFromJumpTable(target)
	if err != nil {
		return gcode.StepEffect{}, err
	}
	if err := s.SetCurrentValue(newInput); err != nil {
		return gcode.StepEffect{}, err
	}
	return gcode.StepEffect{NextCursor: entry, HasNextCursor: true}, nil
}

// JumpTo unconditionally redirects the cursor to instruction offset
// target.
func JumpTo(target int) (gcode.StepEffect, error) {
	return gcode.StepEffect{NextCursor: target, HasNextCursor: true}, nil
}

// JumpIfTrue/JumpIfFalse jump to target when cond's truthiness matches,
// otherwise fall through (spec §4.2). The driver's And/Or short-circuit
// redirects the cursor itself and does not go through these.
func JumpIfTrue(s *gheap.Store, cond gvalue.Index, target int) (gcode.StepEffect, error) {
	truthy, err := IsTruthy(s, cond)
	if err != nil {
		return gcode.StepEffect{}, err
	}
	if !truthy {
		return gcode.StepEffect{}, nil
	}
	return gcode.StepEffect{NextCursor: target, HasNextCursor: true}, nil
}

func JumpIfFalse(s *gheap.Store, cond gvalue.Index, target int) (gcode.StepEffect, error) {
	truthy, err := IsTruthy(s, cond)
	if err != nil {
		return gcode.StepEffect{}, err
	}
	if truthy {
		return gcode.StepEffect{}, nil
	}
	return gcode.StepEffect{NextCursor: target, HasNextCursor: true}, nil
}
