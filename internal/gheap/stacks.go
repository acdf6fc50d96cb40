package gheap

import (
	"garnish/internal/gcode"
	"garnish/internal/gerrors"
	"garnish/internal/gvalue"
)

// frameMarker is the register-stack sentinel planted by PushJumpPath.
// Indices are always >= 0, so -1 can never collide with a real index.
const frameMarker = -1

// PushRegister pushes an operand index for the next opcode.
func (s *Store) PushRegister(idx gvalue.Index) {
	s.registers = append(s.registers, int(idx))
}

// PopRegister pops the top register entry. It fails if that would pop a
// frame marker (spec §4.1: "discipline to prevent inter-call leakage").
func (s *Store) PopRegister() (gvalue.Index, error) {
	if len(s.registers) == 0 {
		return 0, gerrors.New(gerrors.DataAccess, "pop_register on empty register stack")
	}
	top := s.registers[len(s.registers)-1]
	if top == frameMarker {
		return 0, gerrors.New(gerrors.DataAccess, "pop_register would pop a call-frame marker")
	}
	s.registers = s.registers[:len(s.registers)-1]
	return gvalue.Index(top), nil
}

// GetRegister reads register i (0 = bottom of stack) without popping.
func (s *Store) GetRegister(i int) (gvalue.Index, error) {
	if i < 0 || i >= len(s.registers) {
		return 0, gerrors.Newf(gerrors.DataAccess, "register index %d out of bounds (len %d)", i, len(s.registers))
	}
	v := s.registers[i]
	if v == frameMarker {
		return 0, gerrors.Newf(gerrors.DataAccess, "register %d is a call-frame marker", i)
	}
	return gvalue.Index(v), nil
}

// GetRegisterLen reports the register stack's current length (including
// any frame markers), for call/return depth-balance checks (spec §8).
func (s *Store) GetRegisterLen() int { return len(s.registers) }

// PeekTopValueRegister reports the top register entry and true, or
// ok=false if the stack is empty or the top entry is a frame marker
// (i.e. the current call produced no pending result). Used by
// EndExpression to carry a callee's final register across the return
// boundary without disturbing PopRegister's frame discipline.
func (s *Store) PeekTopValueRegister() (gvalue.Index, bool) {
	if len(s.registers) == 0 {
		return 0, false
	}
	top := s.registers[len(s.registers)-1]
	if top == frameMarker {
		return 0, false
	}
	return gvalue.Index(top), true
}

// PushValueStack pushes idx as the new current-call input.
func (s *Store) PushValueStack(idx gvalue.Index) {
	s.valueStack = append(s.valueStack, idx)
}

// PopValueStack pops and returns the value-stack top.
func (s *Store) PopValueStack() (gvalue.Index, error) {
	if len(s.valueStack) == 0 {
		return 0, gerrors.New(gerrors.DataAccess, "pop_value_stack on empty value stack")
	}
	top := s.valueStack[len(s.valueStack)-1]
	s.valueStack = s.valueStack[:len(s.valueStack)-1]
	return top, nil
}

// GetCurrentValue returns the value-stack top without popping.
func (s *Store) GetCurrentValue() (gvalue.Index, error) {
	if len(s.valueStack) == 0 {
		return 0, gerrors.New(gerrors.DataAccess, "get_current_value on empty value stack")
	}
	return s.valueStack[len(s.valueStack)-1], nil
}

// SetCurrentValue replaces the value-stack top (UpdateValue / Reapply).
func (s *Store) SetCurrentValue(idx gvalue.Index) error {
	if len(s.valueStack) == 0 {
		return gerrors.New(gerrors.DataAccess, "update_value on empty value stack")
	}
	s.valueStack[len(s.valueStack)-1] = idx
	return nil
}

// GetValue reads value-stack slot i (0 = bottom) without popping.
func (s *Store) GetValue(i int) (gvalue.Index, error) {
	if i < 0 || i >= len(s.valueStack) {
		return 0, gerrors.Newf(gerrors.DataAccess, "value-stack index %d out of bounds (len %d)", i, len(s.valueStack))
	}
	return s.valueStack[i], nil
}

// ValueStackLen reports the value stack's current depth.
func (s *Store) ValueStackLen() int { return len(s.valueStack) }

// PushInstruction appends one instruction to the program and returns its
// offset.
func (s *Store) PushInstruction(instr gcode.Instruction) int {
	s.instructions = append(s.instructions, instr)
	return len(s.instructions) - 1
}

// GetInstruction reads the instruction at offset i.
func (s *Store) GetInstruction(i int) (gcode.Instruction, error) {
	if i < 0 || i >= len(s.instructions) {
		return gcode.Instruction{}, gerrors.Newf(gerrors.DataAccess, "instruction offset %d out of bounds (len %d)", i, len(s.instructions))
	}
	return s.instructions[i], nil
}

func (s *Store) GetInstructionLen() int { return len(s.instructions) }

// PushToJumpTable appends a new Expression-id -> instruction-offset
// mapping and returns its id.
func (s *Store) PushToJumpTable(instructionOffset int) int {
	s.jumpTable = append(s.jumpTable, instructionOffset)
	return len(s.jumpTable) - 1
}

func (s *Store) GetFromJumpTable(exprID int) (int, error) {
	if exprID < 0 || exprID >= len(s.jumpTable) {
		return 0, gerrors.Newf(gerrors.DataAccess, "jump-table id %d out of bounds (len %d)", exprID, len(s.jumpTable))
	}
	return s.jumpTable[exprID], nil
}

func (s *Store) GetJumpTableLen() int { return len(s.jumpTable) }

// PushJumpPath records target as a return address and plants a register
// frame marker (spec §4.3 call semantics).
func (s *Store) PushJumpPath(returnTarget int) {
	s.jumpPath = append(s.jumpPath, returnTarget)
	s.registers = append(s.registers, frameMarker)
}

// PopJumpPath pops the most recent return address, discarding register
// entries down to (and including) its frame marker (spec §4.1). It fails
// with StateInvariant if the jump path is empty when a frame was
// expected (e.g. EndExpression with nothing to return to is NOT an
// error — see gops.EndExpression; this method itself only errors if called directly
// with nothing to pop).
func (s *Store) PopJumpPath() (int, error) {
	if len(s.jumpPath) == 0 {
		return 0, gerrors.New(gerrors.StateInvariant, "pop_jump_path with empty jump path")
	}
	target := s.jumpPath[len(s.jumpPath)-1]
	s.jumpPath = s.jumpPath[:len(s.jumpPath)-1]

	for len(s.registers) > 0 {
		top := s.registers[len(s.registers)-1]
		s.registers = s.registers[:len(s.registers)-1]
		if top == frameMarker {
			break
		}
	}
	return target, nil
}

// JumpPathLen reports outstanding call depth (spec §8 depth-balance check).
func (s *Store) JumpPathLen() int { return len(s.jumpPath) }

// GetInstructionCursor reads the program counter (spec §4.1: the Data
// Store owns the cursor, not the driver, so Apply/Reapply/EndExpression
// in the Operations Library can retarget it directly).
func (s *Store) GetInstructionCursor() int { return s.cursor }

// SetInstructionCursor overwrites the program counter.
func (s *Store) SetInstructionCursor(i int) { s.cursor = i }
